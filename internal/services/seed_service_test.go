package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/repositories"
	"payledger/internal/testutil"
	"payledger/pkg/utils"
)

func TestSeederLoadsOnce(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	accounts := repositories.NewAccountRepository(db)
	merchants := repositories.NewMerchantRepository(db)
	methods := repositories.NewPaymentMethodRepository(db)
	txns := repositories.NewTransactionRepository(db)
	ledger := NewAccountLedger(accounts, log)

	seeder := NewSeeder(
		merchants,
		methods,
		NewAccountService(accounts, merchants, log),
		NewPaymentService(db, accounts, methods, txns, ledger, log),
		NewAuthService(repositories.NewUserRepository(db), merchants, utils.NewTokenIssuer("seed", time.Hour), log),
		log,
	)

	require.NoError(t, seeder.Seed(ctx))

	assert.EqualValues(t, len(seedMerchants), testutil.CountRows(t, db, &dbm.Merchant{}, ""))
	assert.EqualValues(t, len(seedMerchants), testutil.CountRows(t, db, &dbm.Account{}, ""))
	assert.EqualValues(t, len(seedPaymentMethods), testutil.CountRows(t, db, &dbm.PaymentMethod{}, ""))
	assert.EqualValues(t, len(seedPayments), testutil.CountRows(t, db, &dbm.Transaction{}, ""))
	assert.EqualValues(t, 3, testutil.CountRows(t, db, &dbm.User{}, ""))
	assert.EqualValues(t, 1, testutil.CountRows(t, db, &dbm.User{}, "role = ?", dbm.RoleAdmin))

	report, err := NewReconciliationService(accounts, log).Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedMerchants), report.AccountsChecked)

	// a second run is a no-op
	require.NoError(t, seeder.Seed(ctx))
	assert.EqualValues(t, len(seedMerchants), testutil.CountRows(t, db, &dbm.Merchant{}, ""))
	assert.EqualValues(t, len(seedPayments), testutil.CountRows(t, db, &dbm.Transaction{}, ""))
}
