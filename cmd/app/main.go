package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"payledger/cmd/fx/account_fx"
	"payledger/cmd/fx/auth_fx"
	"payledger/cmd/fx/config_fx"
	"payledger/cmd/fx/controllers_fx"
	"payledger/cmd/fx/dashboard"
	"payledger/cmd/fx/db_fx"
	"payledger/cmd/fx/jobs_fx"
	"payledger/cmd/fx/memcache_fx"
	"payledger/cmd/fx/payment_service_fx"
	"payledger/cmd/fx/refund_fx"
	"payledger/cmd/fx/seed_fx"
	"payledger/internal/api/router"
	"payledger/internal/config"
)

// @title Payledger API
// @version 1.0
// @description Payments, refund approvals and merchant reporting over a balance ledger.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		payment_service_fx.Module,
		refund_fx.Module,
		dashboard.Module,
		auth_fx.Module,
		controllers_fx.Module,
		seed_fx.Module,
		jobs_fx.Module,

		fx.Provide(router.ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("starting HTTP server", zap.String("addr", server.Addr))
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
