package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

type PaymentServiceInterface interface {
	MakePayment(ctx context.Context, request request_models.PaymentRequest) (*response_models.TransactionResponse, error)
}

type PaymentService struct {
	db             *gorm.DB
	accountRepo    repositories.AccountRepository
	paymentMethods PaymentMethodLookup
	txnRepo        repositories.TransactionRepository
	ledger         AccountLedger
	log            *zap.Logger
	now            func() time.Time
}

func NewPaymentService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	paymentMethods PaymentMethodLookup,
	txnRepo repositories.TransactionRepository,
	ledger AccountLedger,
	log *zap.Logger,
) PaymentServiceInterface {
	return &PaymentService{
		db:             db,
		accountRepo:    accountRepo,
		paymentMethods: paymentMethods,
		txnRepo:        txnRepo,
		ledger:         ledger,
		log:            log.Named("payments"),
		now:            utils.NowUTC,
	}
}

// MakePayment records a completed payment and credits the account in one
// database transaction.
func (p *PaymentService) MakePayment(ctx context.Context, request request_models.PaymentRequest) (*response_models.TransactionResponse, error) {
	p.log.Info("processing payment",
		zap.Stringer("account_id", request.AccountID),
		zap.String("reference", request.ReferenceNo),
		zap.String("amount", request.Amount.String()))

	if err := validateAmount(request.Amount); err != nil {
		return nil, err
	}

	account, err := p.accountRepo.FindById(ctx, request.AccountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		p.log.Warn("payment rejected: account not found", zap.Stringer("account_id", request.AccountID))
		return nil, utils.NotFound("Account not found")
	}

	method, err := p.paymentMethods.FindById(ctx, request.PaymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("find payment method: %w", err)
	}
	if method == nil {
		p.log.Warn("payment rejected: payment method not found", zap.Stringer("payment_method_id", request.PaymentMethodID))
		return nil, utils.NotFound("Payment method not found")
	}

	existing, err := p.txnRepo.FindByReference(ctx, request.ReferenceNo)
	if err != nil {
		return nil, fmt.Errorf("find transaction by reference: %w", err)
	}
	if existing != nil {
		p.log.Warn("payment rejected: duplicate reference", zap.String("reference", request.ReferenceNo))
		return nil, utils.Conflict("Reference number already exists")
	}

	txn := &dbm.Transaction{
		Amount:          request.Amount,
		Type:            dbm.TxnTypePayment,
		Status:          dbm.TxnStatusCompleted,
		ReferenceNumber: request.ReferenceNo,
		AccountID:       account.ID,
		PaymentMethodID: method.ID,
		Date:            p.now(),
	}

	var newBalance decimal.Decimal
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.txnRepo.WithTx(tx).Insert(ctx, txn); err != nil {
			if errors.Is(err, repositories.ErrDuplicateReference) {
				return utils.Conflict("Reference number already exists")
			}
			return fmt.Errorf("insert payment: %w", err)
		}

		balance, err := p.ledger.Credit(ctx, tx, account.ID, request.Amount)
		if err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		p.log.Warn("payment failed",
			zap.String("reference", request.ReferenceNo),
			zap.Error(err))
		return nil, err
	}

	p.log.Info("payment completed",
		zap.Stringer("transaction_id", txn.ID),
		zap.String("reference", txn.ReferenceNumber),
		zap.String("new_balance", newBalance.StringFixed(2)))

	return toTransactionResponse(txn), nil
}

// validateAmount rejects non-positive amounts and amounts with more than two
// decimal places.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return utils.Invalid("Amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return utils.Invalid("Amount must have at most two decimal places")
	}
	return nil
}
