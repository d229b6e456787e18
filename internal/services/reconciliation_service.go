package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

// ReconciliationServiceInterface checks every account's stored balance
// against its opening balance plus the signed sum of completed transactions.
type ReconciliationServiceInterface interface {
	Reconcile(ctx context.Context) (*response_models.ReconciliationReport, error)
}

type ReconciliationService struct {
	accountRepo repositories.AccountRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewReconciliationService(accountRepo repositories.AccountRepository, log *zap.Logger) ReconciliationServiceInterface {
	return &ReconciliationService{
		accountRepo: accountRepo,
		log:         log.Named("reconciliation"),
		now:         utils.NowUTC,
	}
}

func (s *ReconciliationService) Reconcile(ctx context.Context) (*response_models.ReconciliationReport, error) {
	positions, err := s.accountRepo.LedgerPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger positions: %w", err)
	}

	report := &response_models.ReconciliationReport{
		CheckedAt:       s.now(),
		AccountsChecked: len(positions),
		Drifted:         []response_models.AccountDrift{},
	}

	for _, p := range positions {
		expected := p.Expected()
		if p.Balance.Equal(expected) {
			continue
		}
		drift := response_models.AccountDrift{
			AccountID:       p.AccountID,
			MerchantID:      p.MerchantID,
			Balance:         p.Balance,
			ExpectedBalance: expected,
			Difference:      p.Balance.Sub(expected),
		}
		report.Drifted = append(report.Drifted, drift)

		s.log.Error("account balance drifted from ledger",
			zap.Stringer("account_id", p.AccountID),
			zap.String("balance", p.Balance.StringFixed(2)),
			zap.String("expected", expected.StringFixed(2)))
	}

	s.log.Info("reconciliation finished",
		zap.Int("accounts_checked", report.AccountsChecked),
		zap.Int("drifted", len(report.Drifted)))

	return report, nil
}
