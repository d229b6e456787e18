package response_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	HolderName     string          `json:"holder_name"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	MerchantID     uuid.UUID       `json:"merchant_id"`
	CreatedAt      int64           `json:"created_at"`
}
