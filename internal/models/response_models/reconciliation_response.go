package response_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountDrift struct {
	AccountID       uuid.UUID       `json:"account_id"`
	MerchantID      uuid.UUID       `json:"merchant_id"`
	Balance         decimal.Decimal `json:"balance"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	Difference      decimal.Decimal `json:"difference"`
}

type ReconciliationReport struct {
	CheckedAt       time.Time      `json:"checked_at"`
	AccountsChecked int            `json:"accounts_checked"`
	Drifted         []AccountDrift `json:"drifted"`
}

func (r *ReconciliationReport) Balanced() bool {
	return len(r.Drifted) == 0
}
