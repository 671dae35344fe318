package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"burger_pos/internal/app"
	"burger_pos/internal/config"
	"burger_pos/internal/models"
	"burger_pos/internal/persistence"
	"burger_pos/internal/services"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(&config.Config{
		StorageDriver:        config.StorageMemory,
		StorageNamespace:     "cli",
		Location:             time.UTC,
		TaxRate:              decimal.RequireFromString("0.1"),
		LateThresholdMinutes: 15,
		ExportFilePrefix:     "closing",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	return a
}

func sell(t *testing.T, a *app.App, productID string, method models.PaymentMethod) {
	t.Helper()
	line, err := a.Catalog.BuildLine(services.LineRequest{ProductID: productID})
	if err != nil {
		t.Fatalf("BuildLine() error = %v", err)
	}
	if _, err := a.Orders.CreateOrder([]models.OrderLine{line}, "", "", method); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
}

func run(a *app.App, args ...string) (string, error) {
	cmd := newRootCmd(func() (*app.App, error) { return a, nil }, func() (*config.Config, error) {
		return &config.Config{}, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	a := newTestApp(t)
	sell(t, a, "d1", models.PaymentCash)
	sell(t, a, "n1", models.PaymentCard)

	out, err := run(a, "report")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	for _, want := range []string{"Orders:         2", "Total sales:    $6.800", "Total with tax: $7.480", "card", "$4.800"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestOrdersCommand(t *testing.T) {
	a := newTestApp(t)
	sell(t, a, "d1", models.PaymentCash)

	out, err := run(a, "orders")
	if err != nil {
		t.Fatalf("orders error = %v", err)
	}
	if !strings.Contains(out, "#1") || !strings.Contains(out, "1x Soda 500ml") {
		t.Errorf("orders output = %q", out)
	}
}

func TestCloseDayCommand(t *testing.T) {
	a := newTestApp(t)
	sell(t, a, "d1", models.PaymentCash)
	dir := t.TempDir()

	if _, err := run(a, "close-day", "--out", dir); !errors.Is(err, errNeedsYes) {
		t.Fatalf("close-day without --yes error = %v", err)
	}

	out, err := run(a, "close-day", "--out", dir, "--yes")
	if err != nil {
		t.Fatalf("close-day error = %v", err)
	}
	if !strings.Contains(out, "Day closed") {
		t.Errorf("close-day output = %q", out)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "closing_*.xlsx"))
	if len(files) != 1 {
		t.Fatalf("found %d spreadsheets, want 1", len(files))
	}
	if info, err := os.Stat(files[0]); err != nil || info.Size() == 0 {
		t.Errorf("spreadsheet is empty: %v", err)
	}
	if active, _ := a.Orders.ListActive(); len(active) != 0 {
		t.Errorf("%d orders still active after close-day", len(active))
	}

	if _, err := run(a, "close-day", "--out", dir, "--yes"); !errors.Is(err, services.ErrNothingToClose) {
		t.Errorf("second close-day error = %v, want ErrNothingToClose", err)
	}
}

func TestCloseDayCommandUnwritableOutput(t *testing.T) {
	a := newTestApp(t)
	sell(t, a, "d1", models.PaymentCash)
	dir := t.TempDir()

	// a directory where the spreadsheet should go makes the write fail
	date := strings.ReplaceAll(persistence.BusinessDate(time.Now(), time.UTC), "/", "-")
	if err := os.Mkdir(filepath.Join(dir, "closing_"+date+".xlsx"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	if _, err := run(a, "close-day", "--out", dir, "--yes"); !errors.Is(err, services.ErrExportFailed) {
		t.Fatalf("close-day error = %v, want ErrExportFailed", err)
	}
	if active, _ := a.Orders.ListActive(); len(active) != 1 {
		t.Errorf("%d orders active after a failed close-day, want 1", len(active))
	}
}

func TestResetDayCommand(t *testing.T) {
	a := newTestApp(t)
	sell(t, a, "d1", models.PaymentCash)

	if _, err := run(a, "reset-day"); !errors.Is(err, errNeedsYes) {
		t.Fatalf("reset-day without --yes error = %v", err)
	}
	if _, err := run(a, "reset-day", "--yes"); err != nil {
		t.Fatalf("reset-day error = %v", err)
	}
	if sales, _ := a.Orders.Sales(); len(sales) != 0 {
		t.Errorf("%d sales left after reset-day", len(sales))
	}
}

func TestHashPinCommand(t *testing.T) {
	out, err := run(nil, "hash-pin", "4321")
	if err != nil {
		t.Fatalf("hash-pin error = %v", err)
	}
	if !strings.HasPrefix(out, "$2a$") {
		t.Errorf("hash-pin output = %q", out)
	}
	if _, err := run(nil, "hash-pin"); err == nil {
		t.Error("hash-pin without an argument should fail")
	}
}

func TestMigrateRequiresDatabase(t *testing.T) {
	if _, err := run(nil, "migrate"); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("migrate error = %v, want DATABASE_URL complaint", err)
	}
}
