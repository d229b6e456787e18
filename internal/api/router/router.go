package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	_ "payledger/docs"
	"payledger/internal/api/controllers"
	"payledger/internal/config"
	"payledger/internal/models/db_models"
	mem "payledger/pkg/memcache"
	"payledger/pkg/middleware"
	"payledger/pkg/utils"
)

type Params struct {
	fx.In

	Config      config.Config
	Log         *zap.Logger
	Tokens      *utils.TokenIssuer
	Idempotency mem.IdempotencyStore

	Transactions *controllers.TransactionController
	Admin        *controllers.AdminController
	Merchants    *controllers.MerchantController
	Accounts     *controllers.AccountController
	Auth         *controllers.AuthController
	Methods      *controllers.PaymentMethodController
	Health       *controllers.HealthController
}

func ProvideRouter(p Params) (*gin.Engine, error) {
	if p.Config.Server.GinMode != "" {
		gin.SetMode(p.Config.Server.GinMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, p)

	return r, nil
}

func RegisterRoutes(r *gin.Engine, p Params) {
	r.GET("/healthz", p.Health.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	authGroup.POST("/register", p.Auth.Register)
	authGroup.POST("/login", p.Auth.Login)

	api := r.Group("/")
	api.Use(middleware.JWTAuthMiddleware(p.Tokens))
	idempotent := middleware.IdempotencyMiddleware(p.Idempotency, p.Config.Idempotency.TTL)

	merchantGroup := api.Group("/merchants")
	merchantGroup.POST("", idempotent, p.Merchants.CreateMerchant)
	merchantGroup.GET("", p.Merchants.GetAllMerchants)
	merchantGroup.GET("/:id", p.Merchants.GetMerchantById)
	merchantGroup.GET("/:id/accounts", p.Merchants.GetAccountsByMerchantId)
	merchantGroup.GET("/:id/summary", p.Merchants.GetMerchantSummary)
	merchantGroup.GET("/:id/transactions", p.Transactions.GetMerchantTransactions)

	accountGroup := api.Group("/accounts")
	accountGroup.POST("", idempotent, p.Accounts.CreateAccount)
	accountGroup.GET("/:id", p.Accounts.GetAccountById)
	accountGroup.GET("/:id/transactions", p.Transactions.GetAccountTransactions)
	accountGroup.GET("/:id/refund-requests", p.Accounts.GetRefundRequestsByAccount)

	api.GET("/payment-methods", p.Methods.GetPaymentMethods)

	transactionGroup := api.Group("/transactions")
	transactionGroup.POST("/payment", idempotent, p.Transactions.MakePayment)
	transactionGroup.POST("/refund", idempotent, p.Transactions.RequestRefund)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RoleMiddleware(db_models.RoleAdmin))
	adminGroup.GET("/refund-requests/pending", p.Admin.GetPendingRefundRequests)
	adminGroup.POST("/refund-requests/:id/approve", idempotent, p.Admin.ApproveRefund)
	adminGroup.POST("/refund-requests/:id/reject", idempotent, p.Admin.RejectRefund)
	adminGroup.GET("/reconciliation", p.Admin.Reconcile)
}
