package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"burger_pos/internal/app"
	"burger_pos/internal/config"
	"burger_pos/internal/handlers"
	"burger_pos/internal/logger"
	"burger_pos/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zl.Sync()

	a, err := app.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to start services", zap.Error(err))
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go services.NewPoller(cfg.PollInterval, a.Orders, zl.Named("poller")).Run(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(zl.Named("http")))

	apiHandler := handlers.NewAPIHandler(handlers.HandlerDeps{
		Orders:   a.Orders,
		Catalog:  a.Catalog,
		Kitchen:  a.Kitchen,
		Reports:  a.Reports,
		Health:   a.Health,
		Location: cfg.Location,
	}, zl.Named("api"))
	apiHandler.RegisterRoutes(router, handlers.RequireConfirmation(cfg.ManagerPinHash))

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		zl.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
