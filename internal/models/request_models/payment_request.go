package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	AccountID       uuid.UUID       `json:"account_id" binding:"required"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	ReferenceNo     string          `json:"reference_no" binding:"required,max=100"`
}
