package controllers

import (
	"github.com/gin-gonic/gin"

	"payledger/internal/models/request_models"
	"payledger/internal/services"
	"payledger/pkg/utils"
)

type MerchantController struct {
	merchantService services.MerchantServiceInterface
	accountService  services.AccountServiceInterface
	summary         services.MerchantSummaryAggregator
}

func NewMerchantController(
	merchantService services.MerchantServiceInterface,
	accountService services.AccountServiceInterface,
	summary services.MerchantSummaryAggregator,
) *MerchantController {
	return &MerchantController{
		merchantService: merchantService,
		accountService:  accountService,
		summary:         summary,
	}
}

// CreateMerchant godoc
// @Summary Create a merchant
// @Tags Merchants
// @Accept json
// @Produce json
// @Param request body request_models.CreateMerchantRequest true "Merchant payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /merchants [post]
func (m *MerchantController) CreateMerchant(c *gin.Context) {
	var req request_models.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	merchant, err := m.merchantService.CreateMerchant(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, merchant, "Merchant created successfully")
}

// GetAllMerchants godoc
// @Summary List merchants
// @Tags Merchants
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /merchants [get]
func (m *MerchantController) GetAllMerchants(c *gin.Context) {
	var query request_models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	page, err := m.merchantService.GetAllMerchants(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Merchants retrieved successfully")
}

// GetMerchantById godoc
// @Summary Get a merchant
// @Tags Merchants
// @Produce json
// @Param id path string true "Merchant ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /merchants/{id} [get]
func (m *MerchantController) GetMerchantById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	merchant, err := m.merchantService.GetMerchantById(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, merchant, "Merchant retrieved successfully")
}

// GetAccountsByMerchantId godoc
// @Summary List a merchant's accounts
// @Tags Merchants
// @Produce json
// @Param id path string true "Merchant ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param search query string false "Holder name contains"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /merchants/{id}/accounts [get]
func (m *MerchantController) GetAccountsByMerchantId(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query request_models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	page, err := m.accountService.GetAccountsByMerchantId(c.Request.Context(), id, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Accounts retrieved successfully")
}

// GetMerchantSummary godoc
// @Summary Merchant summary
// @Description Holder count, total balance and transaction counts by type
// @Tags Merchants
// @Produce json
// @Param id path string true "Merchant ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /merchants/{id}/summary [get]
func (m *MerchantController) GetMerchantSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := m.summary.GetMerchantSummary(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Merchant summary retrieved successfully")
}
