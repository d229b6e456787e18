package response_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MerchantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt int64     `json:"created_at"`
}

// MerchantSummaryResponse is the read-only rollup over a merchant's accounts
// and their transactions.
type MerchantSummaryResponse struct {
	MerchantID        uuid.UUID       `json:"merchant_id"`
	MerchantName      string          `json:"merchant_name"`
	Email             string          `json:"email"`
	TotalHolders      int64           `json:"total_holders"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalPayments     int64           `json:"total_payments"`
	TotalRefunds      int64           `json:"total_refunds"`
}
