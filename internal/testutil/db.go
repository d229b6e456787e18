// Package testutil opens throwaway sqlite databases and fixtures for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"payledger/internal/infra"
	dbm "payledger/internal/models/db_models"
)

// NewDB returns a migrated sqlite database in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infra.OpenSqlite(filepath.Join(t.TempDir(), "ledger.db"), false)
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func CreateMerchant(t *testing.T, db *gorm.DB, name string) *dbm.Merchant {
	t.Helper()
	m := &dbm.Merchant{Name: name, Email: name + "@example.com"}
	require.NoError(t, db.WithContext(context.Background()).Create(m).Error)
	return m
}

// CreateAccount inserts an account whose opening balance equals balance.
func CreateAccount(t *testing.T, db *gorm.DB, merchant *dbm.Merchant, holder string, balance string) *dbm.Account {
	t.Helper()
	a := &dbm.Account{
		HolderName:     holder,
		Balance:        Dec(balance),
		OpeningBalance: Dec(balance),
		MerchantID:     merchant.ID,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func CreatePaymentMethod(t *testing.T, db *gorm.DB) *dbm.PaymentMethod {
	t.Helper()
	pm := &dbm.PaymentMethod{MethodName: "Credit Card", Provider: "Visa"}
	require.NoError(t, db.Create(pm).Error)
	return pm
}

// Balance reads the stored balance straight from the table.
func Balance(t *testing.T, db *gorm.DB, account *dbm.Account) decimal.Decimal {
	t.Helper()
	var a dbm.Account
	require.NoError(t, db.First(&a, "id = ?", account.ID).Error)
	return a.Balance
}

func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func RequireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, Dec(want).Equal(got), "want %s, got %s", want, got.String())
}
