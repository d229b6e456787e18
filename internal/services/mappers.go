package services

import (
	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/response_models"
	"payledger/pkg/utils"
)

func toTransactionResponse(t *dbm.Transaction) *response_models.TransactionResponse {
	return &response_models.TransactionResponse{
		ID:              t.ID,
		Amount:          t.Amount,
		Type:            string(t.Type),
		Status:          string(t.Status),
		ReferenceNo:     t.ReferenceNumber,
		AccountID:       t.AccountID,
		PaymentMethodID: t.PaymentMethodID,
		Date:            t.Date,
	}
}

func toRefundRequestResponse(r *dbm.RefundRequest) *response_models.RefundRequestResponse {
	return &response_models.RefundRequestResponse{
		ID:                  r.ID,
		Amount:              r.Amount,
		AccountID:           r.AccountID,
		OriginalReferenceNo: r.OriginalPaymentReference,
		Reason:              r.Reason,
		Status:              string(r.Status),
		RequestDate:         r.RequestDate,
		ReviewDate:          r.ReviewDate,
		ReviewedByUserID:    r.ReviewedByUserID,
		AdminComments:       r.AdminComments,
		RefundTransactionID: r.RefundTransactionID,
	}
}

func toRefundRequestResponses(requests []dbm.RefundRequest) []response_models.RefundRequestResponse {
	out := make([]response_models.RefundRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, *toRefundRequestResponse(&requests[i]))
	}
	return out
}

func toAccountResponse(a *dbm.Account) *response_models.AccountResponse {
	return &response_models.AccountResponse{
		ID:             a.ID,
		HolderName:     a.HolderName,
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
		MerchantID:     a.MerchantID,
		CreatedAt:      a.CreatedAt,
	}
}

func toMerchantResponse(m *dbm.Merchant) *response_models.MerchantResponse {
	return &response_models.MerchantResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

// normalizePage fills in defaults for an unset page or page size and then
// validates the result.
func normalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = utils.DefaultPageSize
	}
	if err := utils.ValidatePage(page, pageSize); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
