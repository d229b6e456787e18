package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/repositories"
	"payledger/internal/services"
)

var Module = fx.Provide(
	providePaymentMethodRepo, providePaymentMethodLookup, provideTransactionRepo,
	provideLedger, providePaymentService, provideTransactionService,
	providePaymentMethodService,
)

func providePaymentMethodRepo(db *gorm.DB) repositories.PaymentMethodRepository {
	return repositories.NewPaymentMethodRepository(db)
}

func providePaymentMethodLookup(repo repositories.PaymentMethodRepository) services.PaymentMethodLookup {
	return repo
}

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideLedger(accountRepo repositories.AccountRepository, log *zap.Logger) services.AccountLedger {
	return services.NewAccountLedger(accountRepo, log)
}

func providePaymentService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	paymentMethods services.PaymentMethodLookup,
	txnRepo repositories.TransactionRepository,
	ledger services.AccountLedger,
	log *zap.Logger,
) services.PaymentServiceInterface {
	return services.NewPaymentService(db, accountRepo, paymentMethods, txnRepo, ledger, log)
}

func provideTransactionService(
	accountRepo repositories.AccountRepository,
	merchants services.MerchantLookup,
	txnRepo repositories.TransactionRepository,
) services.TransactionServiceInterface {
	return services.NewTransactionService(accountRepo, merchants, txnRepo)
}

func providePaymentMethodService(repo repositories.PaymentMethodRepository) services.PaymentMethodServiceInterface {
	return services.NewPaymentMethodService(repo)
}
