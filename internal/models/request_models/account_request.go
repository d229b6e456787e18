package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	HolderName string    `json:"holder_name" binding:"required,min=1,max=100"`
	MerchantID uuid.UUID `json:"merchant_id" binding:"required"`
	// Opening balance defaults to zero.
	OpeningBalance *decimal.Decimal `json:"opening_balance" binding:"omitempty,gte=0"`
}
