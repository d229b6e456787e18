package response_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	ReferenceNo     string          `json:"reference_no"`
	AccountID       uuid.UUID       `json:"account_id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	Date            time.Time       `json:"date"`
}
