package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"burger_pos/internal/pricing"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string

	StorageDriver    string
	RedisURL         string
	StorageNamespace string
	DatabaseURL      string

	BusinessTimezone     string
	Location             *time.Location
	TaxRate              decimal.Decimal
	LateThresholdMinutes int
	PollInterval         time.Duration
	DefaultCustomerLabel string
	CatalogFile          string
	ManagerPinHash       string

	ExportFilePrefix string
	ExportS3Bucket   string
	ExportS3Region   string

	WhatsAppAPIURL      string
	WhatsAppUsername    string
	WhatsAppPassword    string
	WhatsAppPath        string
	OwnerWhatsAppNumber string
	NotifyOnClose       bool
}

func Load() (*Config, error) {
	// Load .env file if exists
	godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageRedis)),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", "burger_pos"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),

		BusinessTimezone:     getEnv("BUSINESS_TIMEZONE", "America/Argentina/Buenos_Aires"),
		LateThresholdMinutes: getEnvAsInt("LATE_THRESHOLD_MINUTES", 15),
		PollInterval:         getEnvAsDuration("POLL_INTERVAL", 30*time.Second),
		DefaultCustomerLabel: getEnv("DEFAULT_CUSTOMER_LABEL", "Walk-in"),
		CatalogFile:          os.Getenv("CATALOG_FILE"),
		ManagerPinHash:       os.Getenv("MANAGER_PIN_HASH"),

		ExportFilePrefix: getEnv("EXPORT_FILE_PREFIX", "closing"),
		ExportS3Bucket:   os.Getenv("EXPORT_S3_BUCKET"),
		ExportS3Region:   getEnv("EXPORT_S3_REGION", "us-east-1"),

		WhatsAppAPIURL:      os.Getenv("WHATSAPP_API_URL"),
		WhatsAppUsername:    os.Getenv("WHATSAPP_USERNAME"),
		WhatsAppPassword:    os.Getenv("WHATSAPP_PASSWORD"),
		WhatsAppPath:        os.Getenv("WHATSAPP_PATH"),
		OwnerWhatsAppNumber: os.Getenv("OWNER_WHATSAPP_NUMBER"),
		NotifyOnClose:       getEnvAsBool("NOTIFY_ON_CLOSE", true),
	}

	if cfg.StorageDriver != StorageRedis && cfg.StorageDriver != StorageMemory {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want redis or memory)", cfg.StorageDriver)
	}

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", cfg.BusinessTimezone, err)
	}
	cfg.Location = loc

	rate, err := pricing.ParseRate(os.Getenv("TAX_RATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}
	cfg.TaxRate = rate

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) UploadEnabled() bool {
	return c.ExportS3Bucket != ""
}

func (c *Config) NotifyEnabled() bool {
	return c.NotifyOnClose && c.WhatsAppAPIURL != "" && c.OwnerWhatsAppNumber != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
