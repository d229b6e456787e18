package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnTypePayment TransactionType = "Payment"
	TxnTypeRefund  TransactionType = "Refund"
)

type TransactionStatus string

const (
	TxnStatusPending   TransactionStatus = "Pending"
	TxnStatusCompleted TransactionStatus = "Completed"
	TxnStatusFailed    TransactionStatus = "Failed"
)

// RefundReferenceSuffix is appended to a payment reference to form the
// reference of the refund transaction it produces.
const RefundReferenceSuffix = "-REF"

// Transaction rows are append-only: created once, never updated or deleted.
type Transaction struct {
	BaseModel
	Amount          decimal.Decimal   `gorm:"type:numeric(18,2);not null"`
	Type            TransactionType   `gorm:"size:50;not null;index"`
	Status          TransactionStatus `gorm:"size:50;not null;index"`
	ReferenceNumber string            `gorm:"size:100;not null;uniqueIndex:idx_transactions_reference_number"`
	AccountID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID         `gorm:"type:uuid;index"`
	Date            time.Time         `gorm:"not null;index"`
}

func RefundReferenceFor(paymentReference string) string {
	return paymentReference + RefundReferenceSuffix
}

// SignedAmount is the transaction's effect on the account balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TxnTypeRefund {
		return t.Amount.Neg()
	}
	return t.Amount
}
