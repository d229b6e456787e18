package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/repositories"
	"payledger/internal/services"
)

var Module = fx.Provide(
	provideAccountRepo, provideMerchantRepo, provideMerchantLookup,
	provideAccountService, provideMerchantService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideMerchantRepo(db *gorm.DB) repositories.MerchantRepository {
	return repositories.NewMerchantRepository(db)
}

func provideMerchantLookup(merchantRepo repositories.MerchantRepository) services.MerchantLookup {
	return merchantRepo
}

func provideAccountService(accountRepo repositories.AccountRepository, merchants services.MerchantLookup, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, merchants, log)
}

func provideMerchantService(merchantRepo repositories.MerchantRepository, log *zap.Logger) services.MerchantServiceInterface {
	return services.NewMerchantService(merchantRepo, log)
}
