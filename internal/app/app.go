// Package app wires configuration into the running set of services shared
// by the HTTP server and the operator CLI.
package app

import (
	"fmt"

	"burger_pos/internal/config"
	"burger_pos/internal/database"
	"burger_pos/internal/export"
	"burger_pos/internal/handlers"
	"burger_pos/internal/persistence"
	"burger_pos/internal/redis"
	"burger_pos/internal/repository"
	"burger_pos/internal/services"
	"burger_pos/pkg/whatsapp"

	"go.uber.org/zap"
)

var _ persistence.KeyValueStore = (*redis.Client)(nil)

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   persistence.Service
	Orders  services.OrderService
	Catalog services.CatalogService
	Kitchen services.KitchenService
	Reports services.ReportService
	Health  handlers.HealthChecker

	closers []func() error
}

func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	kv, err := a.openStore()
	if err != nil {
		return nil, err
	}

	a.Store = persistence.NewService(kv, persistence.Options{
		Namespace: cfg.StorageNamespace,
		Location:  cfg.Location,
	}, logger.Named("persistence"))

	a.Orders = services.NewOrderService(a.Store, services.OrderServiceOptions{
		DefaultCustomer: cfg.DefaultCustomerLabel,
	}, logger.Named("orders"))

	catalog, err := services.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.Catalog, err = services.NewCatalogService(catalog); err != nil {
		a.Close()
		return nil, err
	}

	a.Kitchen = services.NewKitchenService(a.Orders, cfg.LateThresholdMinutes, nil)

	deps := services.ReportDeps{
		Orders:   a.Orders,
		Exporter: export.NewExcelExporter(cfg.ExportFilePrefix),
		TaxRate:  cfg.TaxRate,
		Location: cfg.Location,
	}
	if cfg.ArchiveEnabled() {
		db, err := database.Initialize(cfg.DatabaseURL, logger.Named("database"))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		deps.Archive = repository.NewClosingRepository(db)
	}
	if cfg.UploadEnabled() {
		uploader, err := export.NewS3Uploader(cfg.ExportS3Region, cfg.ExportS3Bucket)
		if err != nil {
			a.Close()
			return nil, err
		}
		deps.Uploader = uploader
	}
	if cfg.NotifyEnabled() {
		deps.Notifier = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
		deps.OwnerPhone = cfg.OwnerWhatsAppNumber
	}
	a.Reports = services.NewReportService(deps, logger.Named("reports"))

	logger.Info("services ready",
		zap.String("storage", cfg.StorageDriver),
		zap.String("timezone", cfg.Location.String()),
		zap.Bool("archive", deps.Archive != nil),
		zap.Bool("upload", deps.Uploader != nil),
		zap.Bool("notify", deps.Notifier != nil))
	return a, nil
}

func (a *App) openStore() (persistence.KeyValueStore, error) {
	switch a.Config.StorageDriver {
	case config.StorageMemory:
		a.Logger.Warn("using in-memory storage, orders will not survive a restart")
		return persistence.NewMemoryStore(), nil
	case config.StorageRedis:
		client, err := redis.Initialize(a.Config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.Health = client
		a.closers = append(a.closers, client.Close)
		return client, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", a.Config.StorageDriver)
}

// Close releases every connection opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
