package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/repositories"
	"payledger/internal/testutil"
	"payledger/pkg/utils"
)

// harness wires every service against one sqlite database with a fixed clock.
type harness struct {
	db       *gorm.DB
	accounts repositories.AccountRepository
	txns     repositories.TransactionRepository
	refunds  repositories.RefundRequestRepository

	payments       *PaymentService
	refundSvc      *RefundService
	history        TransactionServiceInterface
	summary        MerchantSummaryAggregator
	reconciliation *ReconciliationService

	merchant *dbm.Merchant
	account  *dbm.Account
	method   *dbm.PaymentMethod
	admin    uuid.UUID

	mu    sync.Mutex
	clock time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	log := zaptest.NewLogger(t)

	h := &harness{
		db:       db,
		accounts: repositories.NewAccountRepository(db),
		txns:     repositories.NewTransactionRepository(db),
		refunds:  repositories.NewRefundRequestRepository(db),
		admin:    uuid.New(),
		clock:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	ledger := NewAccountLedger(h.accounts, log)
	methods := repositories.NewPaymentMethodRepository(db)
	merchants := repositories.NewMerchantRepository(db)

	h.payments = NewPaymentService(db, h.accounts, methods, h.txns, ledger, log).(*PaymentService)
	h.payments.now = h.tick

	h.refundSvc = NewRefundService(db, h.accounts, h.txns, h.refunds, ledger, log).(*RefundService)
	h.refundSvc.now = h.tick

	h.history = NewTransactionService(h.accounts, merchants, h.txns)
	h.summary = NewMerchantSummaryAggregator(merchants, h.accounts, h.txns)
	h.reconciliation = NewReconciliationService(h.accounts, log).(*ReconciliationService)

	h.merchant = testutil.CreateMerchant(t, db, "TechMart")
	h.account = testutil.CreateAccount(t, db, h.merchant, "TechMart Main", "1000")
	h.method = testutil.CreatePaymentMethod(t, db)
	return h
}

// tick advances the clock one minute per call so every record gets a
// distinct, ordered timestamp.
func (h *harness) tick() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clock = h.clock.Add(time.Minute)
	return h.clock
}

func (h *harness) pay(reference, amount string) (*dbm.Transaction, error) {
	return h.payTo(h.account, reference, amount)
}

func (h *harness) payTo(account *dbm.Account, reference, amount string) (*dbm.Transaction, error) {
	resp, err := h.payments.MakePayment(context.Background(), request_models.PaymentRequest{
		AccountID:       account.ID,
		PaymentMethodID: h.method.ID,
		Amount:          testutil.Dec(amount),
		ReferenceNo:     reference,
	})
	if err != nil {
		return nil, err
	}
	return &dbm.Transaction{
		BaseModel:       dbm.BaseModel{ID: resp.ID},
		Amount:          resp.Amount,
		Type:            dbm.TransactionType(resp.Type),
		Status:          dbm.TransactionStatus(resp.Status),
		ReferenceNumber: resp.ReferenceNo,
		AccountID:       resp.AccountID,
		PaymentMethodID: resp.PaymentMethodID,
		Date:            resp.Date,
	}, nil
}

func (h *harness) mustPay(t *testing.T, reference, amount string) {
	t.Helper()
	_, err := h.pay(reference, amount)
	require.NoError(t, err)
}

func (h *harness) requestRefund(reference, amount string) (uuid.UUID, error) {
	resp, err := h.refundSvc.RequestRefund(context.Background(), request_models.RefundRequest{
		AccountID:           h.account.ID,
		OriginalReferenceNo: reference,
		Amount:              testutil.Dec(amount),
		Reason:              "customer returned item",
	})
	if err != nil {
		return uuid.Nil, err
	}
	return resp.ID, nil
}

func (h *harness) mustRequestRefund(t *testing.T, reference, amount string) uuid.UUID {
	t.Helper()
	id, err := h.requestRefund(reference, amount)
	require.NoError(t, err)
	return id
}

func (h *harness) balance(t *testing.T) string {
	t.Helper()
	return testutil.Balance(t, h.db, h.account).StringFixed(2)
}

func (h *harness) requireBalanced(t *testing.T) {
	t.Helper()
	report, err := h.reconciliation.Reconcile(context.Background())
	require.NoError(t, err)
	require.Truef(t, report.Balanced(), "drifted accounts: %+v", report.Drifted)
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind, message string) {
	t.Helper()
	require.Error(t, err)
	se, ok := utils.AsServiceError(err)
	require.Truef(t, ok, "expected a service error, got %v", err)
	require.Equal(t, kind, se.Kind)
	if message != "" {
		require.Equal(t, message, se.Message)
	}
}

// failAccountUpdates makes every UPDATE against accounts fail, standing in
// for a crash between the transaction insert and the balance change.
func failAccountUpdates(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_account_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "accounts" {
			_ = tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
}

var errInjected = errors.New("injected failure")

// cancelAfterAccountUpdate cancels the caller's context once the balance
// UPDATE has run, leaving the surrounding transaction uncommitted.
func cancelAfterAccountUpdate(t *testing.T, db *gorm.DB, cancel context.CancelFunc) {
	t.Helper()
	err := db.Callback().Update().After("gorm:update").Register("test:cancel_after_account_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "accounts" {
			cancel()
		}
	})
	require.NoError(t, err)
}
