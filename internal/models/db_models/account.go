package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a merchant-owned balance holder. Balance is only ever changed
// through the ledger; Version is bumped on every balance mutation.
// OpeningBalance is the balance the account was created with and never changes,
// so Balance - OpeningBalance always equals the signed sum of completed transactions.
type Account struct {
	BaseModel
	HolderName     string          `gorm:"size:100;not null"`
	Balance        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	MerchantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Version        int64           `gorm:"not null;default:0"`
}
