package controllers

import (
	"github.com/gin-gonic/gin"

	"payledger/internal/models/request_models"
	"payledger/internal/services"
	"payledger/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	refundService  services.RefundServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface, refundService services.RefundServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
		refundService:  refundService,
	}
}

// CreateAccount godoc
// @Summary Open an account
// @Description Creates an account for a merchant with an optional opening balance
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.CreateAccountRequest true "Account payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts [post]
func (a *AccountController) CreateAccount(c *gin.Context) {
	var req request_models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	account, err := a.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, account, "Account created successfully")
}

// GetAccountById godoc
// @Summary Get an account
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (a *AccountController) GetAccountById(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := a.accountService.GetAccountById(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account retrieved successfully")
}

// GetRefundRequestsByAccount godoc
// @Summary Refund request history
// @Description Newest first
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id}/refund-requests [get]
func (a *AccountController) GetRefundRequestsByAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requests, err := a.refundService.GetRefundRequestsByAccount(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requests, "Refund requests retrieved successfully")
}
