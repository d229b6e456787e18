package controllers

import (
	"github.com/gin-gonic/gin"

	"payledger/internal/models/request_models"
	"payledger/internal/services"
	"payledger/pkg/utils"
)

type TransactionController struct {
	paymentService     services.PaymentServiceInterface
	refundService      services.RefundServiceInterface
	transactionService services.TransactionServiceInterface
}

func NewTransactionController(
	paymentService services.PaymentServiceInterface,
	refundService services.RefundServiceInterface,
	transactionService services.TransactionServiceInterface,
) *TransactionController {
	return &TransactionController{
		paymentService:     paymentService,
		refundService:      refundService,
		transactionService: transactionService,
	}
}

// MakePayment godoc
// @Summary Make a payment
// @Description Records a completed payment and credits the account
// @Tags Transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request_models.PaymentRequest true "Payment payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/payment [post]
func (t *TransactionController) MakePayment(c *gin.Context) {
	var req request_models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	txn, err := t.paymentService.MakePayment(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, txn, "Payment processed successfully")
}

// RequestRefund godoc
// @Summary Request a refund
// @Description Files a pending refund request against a completed payment; an admin must approve it
// @Tags Transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request_models.RefundRequest true "Refund payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/refund [post]
func (t *TransactionController) RequestRefund(c *gin.Context) {
	var req request_models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	request, err := t.refundService.RequestRefund(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, request, "Refund request submitted for approval")
}

// GetAccountTransactions godoc
// @Summary List account transactions
// @Tags Transactions
// @Produce json
// @Param id path string true "Account ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param type query string false "Payment | Refund"
// @Param status query string false "Pending | Completed | Failed"
// @Param start_date query string false "RFC3339 lower bound"
// @Param end_date query string false "RFC3339 upper bound"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (t *TransactionController) GetAccountTransactions(c *gin.Context) {
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query request_models.TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	page, err := t.transactionService.GetAccountTransactions(c.Request.Context(), accountID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Transactions retrieved successfully")
}

// GetMerchantTransactions godoc
// @Summary List a merchant's transactions across all of its accounts
// @Tags Transactions
// @Produce json
// @Param id path string true "Merchant ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /merchants/{id}/transactions [get]
func (t *TransactionController) GetMerchantTransactions(c *gin.Context) {
	merchantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txns, err := t.transactionService.GetMerchantTransactions(c.Request.Context(), merchantID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "Transactions retrieved successfully")
}
