package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

// AccountLedger is the only component allowed to change an account balance.
// Both operations run on the caller's open transaction so the balance change
// commits or rolls back together with the transaction row that explains it.
type AccountLedger interface {
	Credit(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

type accountLedger struct {
	accountRepo repositories.AccountRepository
	log         *zap.Logger
}

func NewAccountLedger(accountRepo repositories.AccountRepository, log *zap.Logger) AccountLedger {
	return &accountLedger{
		accountRepo: accountRepo,
		log:         log.Named("ledger"),
	}
}

func (l *accountLedger) Credit(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	return l.apply(ctx, tx, "credit", accountID, amount)
}

func (l *accountLedger) Debit(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	return l.apply(ctx, tx, "debit", accountID, amount.Neg())
}

func (l *accountLedger) apply(ctx context.Context, tx *gorm.DB, op string, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	account, err := l.accountRepo.WithTx(tx).AdjustBalance(ctx, accountID, delta)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s account %s: %w", op, accountID, err)
	}
	if account == nil {
		l.log.Warn("account not found", zap.String("operation", op), zap.Stringer("account_id", accountID))
		return decimal.Zero, utils.NotFound("Account not found")
	}

	l.log.Info("balance updated",
		zap.String("operation", op),
		zap.Stringer("account_id", accountID),
		zap.String("previous_balance", account.Balance.Sub(delta).StringFixed(2)),
		zap.String("new_balance", account.Balance.StringFixed(2)),
		zap.Int64("version", account.Version))

	if account.Balance.IsNegative() {
		l.log.Warn("balance went negative",
			zap.Stringer("account_id", accountID),
			zap.String("balance", account.Balance.StringFixed(2)))
	}

	return account.Balance, nil
}
