package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "Pending"
	RefundStatusApproved RefundStatus = "Approved"
	RefundStatusRejected RefundStatus = "Rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s RefundStatus) IsTerminal() bool {
	return s == RefundStatusApproved || s == RefundStatusRejected
}

type RefundRequest struct {
	BaseModel
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`

	// At most one pending request may exist per original reference.
	OriginalPaymentReference string `gorm:"size:100;not null;index;uniqueIndex:idx_refund_requests_pending_reference,where:status = 'Pending'"`
	Reason                   string `gorm:"size:500;not null"`

	Status      RefundStatus `gorm:"size:20;not null;default:Pending;index"`
	RequestDate time.Time    `gorm:"not null"`

	// Review fields (set once on approve/reject)
	ReviewDate          *time.Time
	ReviewedByUserID    *uuid.UUID `gorm:"type:uuid"`
	AdminComments       *string    `gorm:"size:1000"`
	RefundTransactionID *uuid.UUID `gorm:"type:uuid"`
}
