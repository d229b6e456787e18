package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/testutil"
	"payledger/pkg/utils"
)

func TestMakePaymentCreditsAccount(t *testing.T) {
	h := newHarness(t)

	txn, err := h.pay("PAY-001", "500")
	require.NoError(t, err)

	assert.Equal(t, dbm.TxnTypePayment, txn.Type)
	assert.Equal(t, dbm.TxnStatusCompleted, txn.Status)
	assert.Equal(t, "PAY-001", txn.ReferenceNumber)
	assert.Equal(t, h.account.ID, txn.AccountID)
	assert.Equal(t, h.method.ID, txn.PaymentMethodID)
	assert.NotEqual(t, uuid.Nil, txn.ID)
	testutil.RequireDecimal(t, "500", txn.Amount)

	assert.Equal(t, "1500.00", h.balance(t))

	stored, err := h.txns.FindByReference(context.Background(), "PAY-001")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, txn.ID, stored.ID)

	h.requireBalanced(t)
}

func TestMakePaymentDuplicateReference(t *testing.T) {
	h := newHarness(t)
	h.mustPay(t, "PAY-001", "500")

	_, err := h.pay("PAY-001", "500")
	requireKind(t, err, utils.KindConflict, "Reference number already exists")

	assert.Equal(t, "1500.00", h.balance(t))
	assert.EqualValues(t, 1, testutil.CountRows(t, h.db, &dbm.Transaction{}, ""))
}

func TestMakePaymentValidation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		request request_models.PaymentRequest
		kind    utils.ErrorKind
		message string
	}{
		{
			name: "zero amount",
			request: request_models.PaymentRequest{
				AccountID: h.account.ID, PaymentMethodID: h.method.ID,
				Amount: testutil.Dec("0"), ReferenceNo: "PAY-Z",
			},
			kind:    utils.KindInvalid,
			message: "Amount must be greater than zero",
		},
		{
			name: "negative amount",
			request: request_models.PaymentRequest{
				AccountID: h.account.ID, PaymentMethodID: h.method.ID,
				Amount: testutil.Dec("-5"), ReferenceNo: "PAY-N",
			},
			kind:    utils.KindInvalid,
			message: "Amount must be greater than zero",
		},
		{
			name: "three decimals",
			request: request_models.PaymentRequest{
				AccountID: h.account.ID, PaymentMethodID: h.method.ID,
				Amount: testutil.Dec("1.005"), ReferenceNo: "PAY-D",
			},
			kind:    utils.KindInvalid,
			message: "Amount must have at most two decimal places",
		},
		{
			name: "unknown account",
			request: request_models.PaymentRequest{
				AccountID: uuid.New(), PaymentMethodID: h.method.ID,
				Amount: testutil.Dec("10"), ReferenceNo: "PAY-A",
			},
			kind:    utils.KindNotFound,
			message: "Account not found",
		},
		{
			name: "unknown payment method",
			request: request_models.PaymentRequest{
				AccountID: h.account.ID, PaymentMethodID: uuid.New(),
				Amount: testutil.Dec("10"), ReferenceNo: "PAY-M",
			},
			kind:    utils.KindNotFound,
			message: "Payment method not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.payments.MakePayment(context.Background(), tt.request)
			requireKind(t, err, tt.kind, tt.message)
		})
	}

	assert.Equal(t, "1000.00", h.balance(t))
	assert.EqualValues(t, 0, testutil.CountRows(t, h.db, &dbm.Transaction{}, ""))
}

func TestMakePaymentConcurrentCredits(t *testing.T) {
	h := newHarness(t)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.pay(fmt.Sprintf("PAY-%03d", i), "10")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, "1200.00", h.balance(t))
	assert.EqualValues(t, workers, testutil.CountRows(t, h.db, &dbm.Transaction{}, ""))
	h.requireBalanced(t)
}

func TestMakePaymentConcurrentSameReference(t *testing.T) {
	h := newHarness(t)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.pay("PAY-RACE", "100")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireKind(t, err, utils.KindConflict, "Reference number already exists")
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, "1100.00", h.balance(t))
	assert.EqualValues(t, 1, testutil.CountRows(t, h.db, &dbm.Transaction{}, "reference_number = ?", "PAY-RACE"))
}

func TestMakePaymentRollsBackWhenBalanceUpdateFails(t *testing.T) {
	h := newHarness(t)
	failAccountUpdates(t, h.db)

	_, err := h.pay("PAY-001", "500")
	require.ErrorIs(t, err, errInjected)

	assert.Equal(t, "1000.00", h.balance(t))
	assert.EqualValues(t, 0, testutil.CountRows(t, h.db, &dbm.Transaction{}, ""))
}

func TestMakePaymentCancelledBeforeCommit(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelAfterAccountUpdate(t, h.db, cancel)

	_, err := h.payments.MakePayment(ctx, request_models.PaymentRequest{
		AccountID:       h.account.ID,
		PaymentMethodID: h.method.ID,
		Amount:          testutil.Dec("500"),
		ReferenceNo:     "PAY-001",
	})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, "1000.00", h.balance(t))
	assert.EqualValues(t, 0, testutil.CountRows(t, h.db, &dbm.Transaction{}, ""))
}
