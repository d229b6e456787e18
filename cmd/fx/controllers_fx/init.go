package controllers_fx

import (
	"go.uber.org/fx"

	"payledger/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTransactionController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewMerchantController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewPaymentMethodController),
	fx.Provide(controllers.NewHealthController))
