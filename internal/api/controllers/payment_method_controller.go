package controllers

import (
	"github.com/gin-gonic/gin"

	"payledger/internal/services"
	"payledger/pkg/utils"
)

type PaymentMethodController struct {
	paymentMethodService services.PaymentMethodServiceInterface
}

func NewPaymentMethodController(paymentMethodService services.PaymentMethodServiceInterface) *PaymentMethodController {
	return &PaymentMethodController{paymentMethodService: paymentMethodService}
}

// GetPaymentMethods godoc
// @Summary List payment methods
// @Tags Payment Methods
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (p *PaymentMethodController) GetPaymentMethods(c *gin.Context) {
	methods, err := p.paymentMethodService.GetPaymentMethods(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, methods, "Payment methods retrieved successfully")
}
