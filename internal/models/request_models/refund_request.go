package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundRequest struct {
	AccountID           uuid.UUID       `json:"account_id" binding:"required"`
	OriginalReferenceNo string          `json:"original_reference_no" binding:"required,max=100"`
	Amount              decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Reason              string          `json:"reason" binding:"required,max=500"`
}

type ApproveRefundRequest struct {
	Comments *string `json:"comments" binding:"omitempty,max=1000"`
}

type RejectRefundRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}
