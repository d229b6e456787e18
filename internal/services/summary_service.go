package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

// MerchantSummaryAggregator is read-only; it costs two queries regardless of
// how many accounts the merchant has.
type MerchantSummaryAggregator interface {
	GetMerchantSummary(ctx context.Context, merchantID uuid.UUID) (*response_models.MerchantSummaryResponse, error)
}

type merchantSummaryAggregator struct {
	merchants   MerchantLookup
	accountRepo repositories.AccountRepository
	txnRepo     repositories.TransactionRepository
}

func NewMerchantSummaryAggregator(
	merchants MerchantLookup,
	accountRepo repositories.AccountRepository,
	txnRepo repositories.TransactionRepository,
) MerchantSummaryAggregator {
	return &merchantSummaryAggregator{
		merchants:   merchants,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

func (s *merchantSummaryAggregator) GetMerchantSummary(ctx context.Context, merchantID uuid.UUID) (*response_models.MerchantSummaryResponse, error) {
	merchant, err := s.merchants.FindById(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	if merchant == nil {
		return nil, utils.NotFound("Merchant not found")
	}

	rollup, err := s.accountRepo.MerchantRollup(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("aggregate accounts: %w", err)
	}

	counts, err := s.txnRepo.CountByTypeForMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}

	summary := &response_models.MerchantSummaryResponse{
		MerchantID:   merchant.ID,
		MerchantName: merchant.Name,
		Email:        merchant.Email,
		TotalHolders: rollup.Holders,
		TotalBalance: rollup.TotalBalance,
	}
	for _, c := range counts {
		summary.TotalTransactions += c.Count
		switch c.Type {
		case dbm.TxnTypePayment:
			summary.TotalPayments = c.Count
		case dbm.TxnTypeRefund:
			summary.TotalRefunds = c.Count
		}
	}

	return summary, nil
}
