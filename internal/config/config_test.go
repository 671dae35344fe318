package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORAGE_DRIVER", "BUSINESS_TIMEZONE", "TAX_RATE", "POLL_INTERVAL", "LATE_THRESHOLD_MINUTES", "DATABASE_URL", "EXPORT_S3_BUCKET", "WHATSAPP_API_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StorageDriver != StorageRedis {
		t.Errorf("StorageDriver = %q, want redis", cfg.StorageDriver)
	}
	if cfg.Location.String() != "America/Argentina/Buenos_Aires" {
		t.Errorf("Location = %s", cfg.Location)
	}
	if !cfg.TaxRate.IsZero() {
		t.Errorf("TaxRate = %s, want 0", cfg.TaxRate)
	}
	if cfg.PollInterval != 30*time.Second || cfg.LateThresholdMinutes != 15 {
		t.Errorf("PollInterval = %s LateThresholdMinutes = %d", cfg.PollInterval, cfg.LateThresholdMinutes)
	}
	if cfg.ArchiveEnabled() || cfg.UploadEnabled() || cfg.NotifyEnabled() {
		t.Error("optional side channels enabled without configuration")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("BUSINESS_TIMEZONE", "UTC")
	t.Setenv("TAX_RATE", "0.21")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("LATE_THRESHOLD_MINUTES", "20")
	t.Setenv("WHATSAPP_API_URL", "http://gateway")
	t.Setenv("OWNER_WHATSAPP_NUMBER", "5491100000000")
	t.Setenv("NOTIFY_ON_CLOSE", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Errorf("StorageDriver = %q, want memory", cfg.StorageDriver)
	}
	if cfg.TaxRate.String() != "0.21" {
		t.Errorf("TaxRate = %s, want 0.21", cfg.TaxRate)
	}
	if cfg.PollInterval != 5*time.Second || cfg.LateThresholdMinutes != 20 {
		t.Errorf("PollInterval = %s LateThresholdMinutes = %d", cfg.PollInterval, cfg.LateThresholdMinutes)
	}
	if !cfg.NotifyEnabled() {
		t.Error("NotifyEnabled() = false, want true (bad bool falls back to default)")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storageDriver", key: "STORAGE_DRIVER", value: "etcd"},
		{name: "timezone", key: "BUSINESS_TIMEZONE", value: "Mars/Olympus"},
		{name: "taxRate", key: "TAX_RATE", value: "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%s expected error", tt.key, tt.value)
			}
		})
	}
}
