package auth_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/config"
	"payledger/internal/repositories"
	"payledger/internal/services"
	"payledger/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer, provideUserRepo, provideAuthService)

func provideTokenIssuer(cfg config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAuthService(
	userRepo repositories.UserRepository,
	merchants services.MerchantLookup,
	tokens *utils.TokenIssuer,
	log *zap.Logger,
) services.AuthServiceInterface {
	return services.NewAuthService(userRepo, merchants, tokens, log)
}
