package response_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundRequestResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Amount              decimal.Decimal `json:"amount"`
	AccountID           uuid.UUID       `json:"account_id"`
	OriginalReferenceNo string          `json:"original_reference_no"`
	Reason              string          `json:"reason"`
	Status              string          `json:"status"`
	RequestDate         time.Time       `json:"request_date"`
	ReviewDate          *time.Time      `json:"review_date,omitempty"`
	ReviewedByUserID    *uuid.UUID      `json:"reviewed_by_user_id,omitempty"`
	AdminComments       *string         `json:"admin_comments,omitempty"`
	RefundTransactionID *uuid.UUID      `json:"refund_transaction_id,omitempty"`
}
