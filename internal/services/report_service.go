package services

import (
	"fmt"
	"strings"
	"time"

	"burger_pos/internal/models"
	"burger_pos/internal/persistence"
	"burger_pos/internal/pricing"
	"burger_pos/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Exporter turns a frozen closing snapshot into a downloadable artifact.
type Exporter interface {
	Export(snap models.ClosingSnapshot) (*models.ExportArtifact, error)
}

type ArtifactUploader interface {
	Upload(artifact *models.ExportArtifact) error
}

type ClosingNotifier interface {
	SendTextMessage(phone, message string) error
}

type DailyReport struct {
	BusinessDate    string                         `json:"business_date"`
	Orders          []models.Order                 `json:"orders"`
	OrderCount      int                            `json:"order_count"`
	TotalSales      int64                          `json:"total_sales"`
	AverageTicket   int64                          `json:"average_ticket"`
	TaxRate         string                         `json:"tax_rate"`
	TaxAmount       int64                          `json:"tax_amount"`
	TotalWithTax    int64                          `json:"total_with_tax"`
	ByPaymentMethod map[models.PaymentMethod]int64 `json:"by_payment_method"`
	GeneratedAt     time.Time                      `json:"generated_at"`
}

type ReportService interface {
	DailyReport() (*DailyReport, error)
	CloseDay() (*models.ExportArtifact, error)
	CloseDayWith(deliver func(artifact *models.ExportArtifact) error) (*models.ExportArtifact, error)
	Closings(from, to *time.Time) ([]models.DailyClosing, error)
	Closing(id uint) (*models.DailyClosing, error)
}

// ReportDeps wires the report service. Archive, Uploader and Notifier are
// optional side channels of a close.
type ReportDeps struct {
	Orders     OrderService
	Exporter   Exporter
	Archive    repository.ClosingRepository
	Uploader   ArtifactUploader
	Notifier   ClosingNotifier
	OwnerPhone string
	TaxRate    decimal.Decimal
	Location   *time.Location
	Now        func() time.Time
}

type reportService struct {
	deps   ReportDeps
	logger *zap.Logger
}

func NewReportService(deps ReportDeps, logger *zap.Logger) ReportService {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{deps: deps, logger: logger}
}

func (s *reportService) DailyReport() (*DailyReport, error) {
	sales, err := s.deps.Orders.Sales()
	if err != nil {
		return nil, err
	}

	now := s.deps.Now()
	report := &DailyReport{
		BusinessDate:    persistence.BusinessDate(now, s.deps.Location),
		Orders:          sales,
		OrderCount:      len(sales),
		TaxRate:         s.deps.TaxRate.String(),
		ByPaymentMethod: make(map[models.PaymentMethod]int64),
		GeneratedAt:     now,
	}
	for _, o := range sales {
		report.TotalSales += o.Total
		report.ByPaymentMethod[o.PaymentMethod] += o.Total
	}
	report.AverageTicket = pricing.Average(report.TotalSales, report.OrderCount)
	report.TaxAmount = pricing.TaxAmount(report.TotalSales, s.deps.TaxRate)
	report.TotalWithTax = report.TotalSales + report.TaxAmount
	return report, nil
}

// CloseDay exports today's sales and, only once the export succeeded,
// resets the day. Archive, upload and notification failures are logged and
// never undo a close.
func (s *reportService) CloseDay() (*models.ExportArtifact, error) {
	return s.CloseDayWith(nil)
}

// CloseDayWith is CloseDay with a delivery step that runs before the reset.
// A delivery error fails the export and leaves the day open. deliver runs
// while orders are locked and must not call back into the order service.
func (s *reportService) CloseDayWith(deliver func(artifact *models.ExportArtifact) error) (*models.ExportArtifact, error) {
	var (
		snap     models.ClosingSnapshot
		artifact *models.ExportArtifact
	)

	err := s.deps.Orders.CloseBusinessDay(func(sales []models.Order) error {
		if len(sales) == 0 {
			return ErrNothingToClose
		}
		snap = s.snapshot(sales)

		a, err := s.deps.Exporter.Export(snap)
		if err != nil {
			s.logger.Error("closing export failed, day left open", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
		if deliver != nil {
			if err := deliver(a); err != nil {
				s.logger.Error("closing delivery failed, day left open",
					zap.String("artifact", a.Filename), zap.Error(err))
				return fmt.Errorf("%w: %w", ErrExportFailed, err)
			}
		}
		artifact = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("business day closed",
		zap.String("business_date", snap.BusinessDate),
		zap.Int("orders", len(snap.Rows)),
		zap.Int64("grand_total", snap.GrandTotal),
		zap.String("artifact", artifact.Filename))

	s.archive(snap, artifact)
	s.upload(artifact)
	s.notify(snap)
	return artifact, nil
}

func (s *reportService) Closings(from, to *time.Time) ([]models.DailyClosing, error) {
	if s.deps.Archive == nil {
		return nil, ErrArchiveUnavailable
	}
	if from != nil || to != nil {
		start, end := time.Time{}, s.deps.Now()
		if from != nil {
			start = *from
		}
		if to != nil {
			end = *to
		}
		return s.deps.Archive.GetByDateRange(start, end)
	}
	return s.deps.Archive.GetAll()
}

func (s *reportService) Closing(id uint) (*models.DailyClosing, error) {
	if s.deps.Archive == nil {
		return nil, ErrArchiveUnavailable
	}
	return s.deps.Archive.GetByID(id)
}

// snapshot freezes the sales into export rows, newest first.
func (s *reportService) snapshot(sales []models.Order) models.ClosingSnapshot {
	now := s.deps.Now()
	snap := models.ClosingSnapshot{
		BusinessDate: persistence.BusinessDate(now, s.deps.Location),
		ClosedAt:     now,
		Rows:         make([]models.ClosingRow, 0, len(sales)),
	}
	for _, o := range sales {
		snap.Rows = append(snap.Rows, models.ClosingRow{
			OrderNumber: o.Number,
			Time:        o.CreatedAt.In(s.deps.Location).Format("15:04"),
			Customer:    o.Customer,
			ItemSummary: o.ItemSummary(),
			LineTotal:   o.Total,
		})
		snap.GrandTotal += o.Total
	}
	snap.TaxTotal = pricing.TaxAmount(snap.GrandTotal, s.deps.TaxRate)
	return snap
}

func (s *reportService) archive(snap models.ClosingSnapshot, artifact *models.ExportArtifact) {
	if s.deps.Archive == nil {
		return
	}
	if err := s.deps.Archive.Create(models.NewDailyClosing(snap, artifact.Filename)); err != nil {
		s.logger.Error("failed to archive closing", zap.String("business_date", snap.BusinessDate), zap.Error(err))
	}
}

func (s *reportService) upload(artifact *models.ExportArtifact) {
	if s.deps.Uploader == nil {
		return
	}
	if err := s.deps.Uploader.Upload(artifact); err != nil {
		s.logger.Error("failed to upload closing artifact", zap.String("artifact", artifact.Filename), zap.Error(err))
	}
}

func (s *reportService) notify(snap models.ClosingSnapshot) {
	if s.deps.Notifier == nil || s.deps.OwnerPhone == "" {
		return
	}
	if err := s.deps.Notifier.SendTextMessage(s.deps.OwnerPhone, ClosingSummary(snap)); err != nil {
		s.logger.Warn("failed to send closing summary", zap.Error(err))
	}
}

// ClosingSummary is the short text sent to the owner after a close.
func ClosingSummary(snap models.ClosingSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day closed %s\n", snap.BusinessDate)
	fmt.Fprintf(&b, "Orders: %d\n", len(snap.Rows))
	fmt.Fprintf(&b, "Total sales: %s", FormatAmount(snap.GrandTotal))
	if snap.TaxTotal > 0 {
		fmt.Fprintf(&b, "\nTax: %s", FormatAmount(snap.TaxTotal))
	}
	return b.String()
}

// FormatAmount renders whole currency units as "$12.500".
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
