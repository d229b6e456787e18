package refund_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/repositories"
	"payledger/internal/services"
)

var Module = fx.Provide(
	provideRefundRequestRepo, provideRefundService)

func provideRefundRequestRepo(db *gorm.DB) repositories.RefundRequestRepository {
	return repositories.NewRefundRequestRepository(db)
}

func provideRefundService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	txnRepo repositories.TransactionRepository,
	refundRepo repositories.RefundRequestRepository,
	ledger services.AccountLedger,
	log *zap.Logger,
) services.RefundServiceInterface {
	return services.NewRefundService(db, accountRepo, txnRepo, refundRepo, ledger, log)
}
