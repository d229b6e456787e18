package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/testutil"
)

func TestReconcileCleanLedger(t *testing.T) {
	h := newHarness(t)
	h.mustPay(t, "PAY-001", "500")
	h.mustPay(t, "PAY-002", "75")
	id := h.mustRequestRefund(t, "PAY-002", "25")
	_, err := h.refundSvc.ApproveRefund(context.Background(), id, h.admin, nil)
	require.NoError(t, err)

	checkedAt := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	h.reconciliation.now = func() time.Time { return checkedAt }

	report, err := h.reconciliation.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, checkedAt, report.CheckedAt)
	assert.Equal(t, 1, report.AccountsChecked)
	assert.True(t, report.Balanced())
	assert.NotNil(t, report.Drifted)
}

func TestReconcileReportsDrift(t *testing.T) {
	h := newHarness(t)
	h.mustPay(t, "PAY-001", "500")
	untouched := testutil.CreateAccount(t, h.db, h.merchant, "Untouched", "40")

	// a balance written behind the ledger's back
	require.NoError(t, h.db.Model(&dbm.Account{}).Where("id = ?", h.account.ID).
		UpdateColumn("balance", 1600).Error)

	report, err := h.reconciliation.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.AccountsChecked)
	require.Len(t, report.Drifted, 1)

	drift := report.Drifted[0]
	assert.Equal(t, h.account.ID, drift.AccountID)
	assert.Equal(t, h.merchant.ID, drift.MerchantID)
	testutil.RequireDecimal(t, "1600", drift.Balance)
	testutil.RequireDecimal(t, "1500", drift.ExpectedBalance)
	testutil.RequireDecimal(t, "100", drift.Difference)
	assert.NotEqual(t, untouched.ID, drift.AccountID)
}
