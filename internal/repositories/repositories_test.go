package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	merchant *dbm.Merchant
	account  *dbm.Account
	method   *dbm.PaymentMethod
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	merchant := testutil.CreateMerchant(t, db, "TechMart")
	return &fixture{
		db:       db,
		merchant: merchant,
		account:  testutil.CreateAccount(t, db, merchant, "TechMart Main", "1000"),
		method:   testutil.CreatePaymentMethod(t, db),
	}
}

func (f *fixture) transaction(reference string, txnType dbm.TransactionType, amount string, at time.Time) *dbm.Transaction {
	return &dbm.Transaction{
		Amount:          testutil.Dec(amount),
		Type:            txnType,
		Status:          dbm.TxnStatusCompleted,
		ReferenceNumber: reference,
		AccountID:       f.account.ID,
		PaymentMethodID: f.method.ID,
		Date:            at,
	}
}

func (f *fixture) refundRequest(reference string) *dbm.RefundRequest {
	return &dbm.RefundRequest{
		Amount:                   testutil.Dec("10"),
		AccountID:                f.account.ID,
		OriginalPaymentReference: reference,
		Reason:                   "damaged",
		Status:                   dbm.RefundStatusPending,
		RequestDate:              time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionInsertDuplicateReference(t *testing.T) {
	f := newFixture(t)
	repo := NewTransactionRepository(f.db)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, f.transaction("PAY-001", dbm.TxnTypePayment, "100", at)))

	err := repo.Insert(ctx, f.transaction("PAY-001", dbm.TxnTypePayment, "100", at))
	require.ErrorIs(t, err, ErrDuplicateReference)

	found, err := repo.FindByReference(ctx, "PAY-001")
	require.NoError(t, err)
	require.NotNil(t, found)

	byID, err := repo.FindById(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAY-001", byID.ReferenceNumber)

	missing, err := repo.FindByReference(ctx, "PAY-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionFindByMerchant(t *testing.T) {
	f := newFixture(t)
	repo := NewTransactionRepository(f.db)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, f.transaction("PAY-001", dbm.TxnTypePayment, "100", at)))
	require.NoError(t, repo.Insert(ctx, f.transaction("PAY-002", dbm.TxnTypePayment, "50", at.Add(time.Hour))))
	require.NoError(t, repo.Insert(ctx, f.transaction("PAY-001-REF", dbm.TxnTypeRefund, "20", at.Add(2*time.Hour))))

	other := testutil.CreateMerchant(t, f.db, "StyleHub")
	otherAccount := testutil.CreateAccount(t, f.db, other, "StyleHub Wallet", "0")
	foreign := f.transaction("PAY-900", dbm.TxnTypePayment, "5", at)
	foreign.AccountID = otherAccount.ID
	require.NoError(t, repo.Insert(ctx, foreign))

	txns, err := repo.FindByMerchant(ctx, f.merchant.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "PAY-001-REF", txns[0].ReferenceNumber)

	counts, err := repo.CountByTypeForMerchant(ctx, f.merchant.ID)
	require.NoError(t, err)
	byType := map[dbm.TransactionType]int64{}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}
	assert.Equal(t, map[dbm.TransactionType]int64{dbm.TxnTypePayment: 2, dbm.TxnTypeRefund: 1}, byType)
}

func TestRefundRequestPendingUniqueness(t *testing.T) {
	f := newFixture(t)
	repo := NewRefundRequestRepository(f.db)
	ctx := context.Background()

	first := f.refundRequest("PAY-001")
	require.NoError(t, repo.Insert(ctx, first))

	err := repo.Insert(ctx, f.refundRequest("PAY-001"))
	require.ErrorIs(t, err, ErrPendingRefundExists)

	// other references are unaffected
	require.NoError(t, repo.Insert(ctx, f.refundRequest("PAY-002")))

	claimed, err := repo.ClaimPending(ctx, first.ID, RefundReview{
		Status:     dbm.RefundStatusRejected,
		ReviewedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		ReviewerID: uuid.New(),
	})
	require.NoError(t, err)
	require.True(t, claimed)

	// once the first leaves Pending the reference is free again
	require.NoError(t, repo.Insert(ctx, f.refundRequest("PAY-001")))

	pending, err := repo.FindPendingByReference(ctx, "PAY-001")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.NotEqual(t, first.ID, pending.ID)
}

func TestRefundRequestClaimPendingOnce(t *testing.T) {
	f := newFixture(t)
	repo := NewRefundRequestRepository(f.db)
	ctx := context.Background()

	request := f.refundRequest("PAY-001")
	require.NoError(t, repo.Insert(ctx, request))

	reviewer := uuid.New()
	comments := "ok"
	review := RefundReview{
		Status:     dbm.RefundStatusApproved,
		ReviewedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		ReviewerID: reviewer,
		Comments:   &comments,
	}

	claimed, err := repo.ClaimPending(ctx, request.ID, review)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimPending(ctx, request.ID, RefundReview{Status: dbm.RefundStatusRejected, ReviewerID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, claimed)

	txnID := uuid.New()
	require.NoError(t, repo.SetRefundTransaction(ctx, request.ID, txnID))

	stored, err := repo.FindById(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, dbm.RefundStatusApproved, stored.Status)
	require.NotNil(t, stored.ReviewedByUserID)
	assert.Equal(t, reviewer, *stored.ReviewedByUserID)
	require.NotNil(t, stored.AdminComments)
	assert.Equal(t, "ok", *stored.AdminComments)
	require.NotNil(t, stored.RefundTransactionID)
	assert.Equal(t, txnID, *stored.RefundTransactionID)

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAccountAdjustBalance(t *testing.T) {
	f := newFixture(t)
	repo := NewAccountRepository(f.db)
	ctx := context.Background()

	var updated *dbm.Account
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = repo.WithTx(tx).AdjustBalance(ctx, f.account.ID, testutil.Dec("-250"))
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	testutil.RequireDecimal(t, "750", updated.Balance)
	testutil.RequireDecimal(t, "1000", updated.OpeningBalance)
	assert.EqualValues(t, 1, updated.Version)

	missing, err := repo.AdjustBalance(ctx, uuid.New(), testutil.Dec("1"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountLedgerPositions(t *testing.T) {
	f := newFixture(t)
	txns := NewTransactionRepository(f.db)
	accounts := NewAccountRepository(f.db)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, txns.Insert(ctx, f.transaction("PAY-001", dbm.TxnTypePayment, "300", at)))
	require.NoError(t, txns.Insert(ctx, f.transaction("PAY-001-REF", dbm.TxnTypeRefund, "100", at)))
	failed := f.transaction("PAY-002", dbm.TxnTypePayment, "999", at)
	failed.Status = dbm.TxnStatusFailed
	require.NoError(t, txns.Insert(ctx, failed))

	idle := testutil.CreateAccount(t, f.db, f.merchant, "Idle", "40")

	positions, err := accounts.LedgerPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)

	byAccount := map[uuid.UUID]LedgerPosition{}
	for _, p := range positions {
		byAccount[p.AccountID] = p
	}

	primary := byAccount[f.account.ID]
	assert.Equal(t, f.merchant.ID, primary.MerchantID)
	testutil.RequireDecimal(t, "200", primary.LedgerTotal)
	testutil.RequireDecimal(t, "1200", primary.Expected())

	testutil.RequireDecimal(t, "0", byAccount[idle.ID].LedgerTotal)
	testutil.RequireDecimal(t, "40", byAccount[idle.ID].Expected())

	rollup, err := accounts.MerchantRollup(ctx, f.merchant.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, rollup.Holders)
	testutil.RequireDecimal(t, "1040", rollup.TotalBalance)
}

func TestAccountFindByMerchantSearch(t *testing.T) {
	f := newFixture(t)
	repo := NewAccountRepository(f.db)
	testutil.CreateAccount(t, f.db, f.merchant, "Savings Pot", "0")

	accounts, total, err := repo.FindByMerchant(context.Background(), f.merchant.ID, "SAVINGS", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Savings Pot", accounts[0].HolderName)
}

func TestUserInsertDuplicateUsername(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &dbm.User{Username: "admin", PasswordHash: "x", Role: dbm.RoleAdmin}))
	err := repo.Insert(ctx, &dbm.User{Username: "admin", PasswordHash: "y", Role: dbm.RoleUser})
	require.ErrorIs(t, err, ErrUsernameTaken)

	user, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, dbm.RoleAdmin, user.Role)
	assert.Nil(t, user.MerchantID)

	missing, err := repo.FindByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMerchantInsertDuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMerchantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &dbm.Merchant{Name: "A", Email: "a@example.com"}))
	err := repo.Insert(ctx, &dbm.Merchant{Name: "B", Email: "a@example.com"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
