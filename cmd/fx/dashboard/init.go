package dashboard

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"payledger/internal/repositories"
	"payledger/internal/services"
)

var Module = fx.Provide(
	provideSummaryAggregator, provideReconciliationService,
)

func provideSummaryAggregator(
	merchants services.MerchantLookup,
	accountRepo repositories.AccountRepository,
	txnRepo repositories.TransactionRepository,
) services.MerchantSummaryAggregator {
	return services.NewMerchantSummaryAggregator(merchants, accountRepo, txnRepo)
}

func provideReconciliationService(accountRepo repositories.AccountRepository, log *zap.Logger) services.ReconciliationServiceInterface {
	return services.NewReconciliationService(accountRepo, log)
}
