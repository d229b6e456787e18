package controllers

import (
	"github.com/gin-gonic/gin"

	"payledger/internal/models/request_models"
	"payledger/internal/services"
	"payledger/pkg/middleware"
	"payledger/pkg/utils"
)

type AdminController struct {
	refundService         services.RefundServiceInterface
	reconciliationService services.ReconciliationServiceInterface
}

func NewAdminController(
	refundService services.RefundServiceInterface,
	reconciliationService services.ReconciliationServiceInterface,
) *AdminController {
	return &AdminController{
		refundService:         refundService,
		reconciliationService: reconciliationService,
	}
}

// GetPendingRefundRequests godoc
// @Summary List pending refund requests
// @Description Oldest first
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/refund-requests/pending [get]
func (a *AdminController) GetPendingRefundRequests(c *gin.Context) {
	requests, err := a.refundService.GetPendingRefundRequests(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requests, "Pending refund requests retrieved successfully")
}

// ApproveRefund godoc
// @Summary Approve a refund request
// @Description Creates the refund transaction and debits the account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Refund request ID"
// @Param request body request_models.ApproveRefundRequest false "Optional comments"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/refund-requests/{id}/approve [post]
func (a *AdminController) ApproveRefund(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.HandleServiceError(c, utils.Unauthorized("Missing user identity"))
		return
	}

	var req request_models.ApproveRefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondBindError(c, err)
			return
		}
	}

	txn, err := a.refundService.ApproveRefund(c.Request.Context(), requestID, adminID, req.Comments)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Refund approved and processed")
}

// RejectRefund godoc
// @Summary Reject a refund request
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Refund request ID"
// @Param request body request_models.RejectRefundRequest true "Rejection reason"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/refund-requests/{id}/reject [post]
func (a *AdminController) RejectRefund(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.HandleServiceError(c, utils.Unauthorized("Missing user identity"))
		return
	}

	var req request_models.RejectRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	request, err := a.refundService.RejectRefund(c.Request.Context(), requestID, adminID, req.Reason)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, request, "Refund request rejected")
}

// Reconcile godoc
// @Summary Reconcile balances against the ledger
// @Description Lists accounts whose balance differs from opening balance plus completed transactions
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/reconciliation [get]
func (a *AdminController) Reconcile(c *gin.Context) {
	report, err := a.reconciliationService.Reconcile(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Reconciliation completed")
}
