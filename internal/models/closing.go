package models

import (
	"time"

	"gorm.io/gorm"
)

// ClosingRow is one frozen line of the end-of-day export.
type ClosingRow struct {
	OrderNumber int    `json:"order_number"`
	Time        string `json:"time"`
	Customer    string `json:"customer"`
	ItemSummary string `json:"item_summary"`
	LineTotal   int64  `json:"line_total"`
}

// ClosingSnapshot is handed to the exporter and must not change afterwards.
type ClosingSnapshot struct {
	BusinessDate string       `json:"business_date"`
	ClosedAt     time.Time    `json:"closed_at"`
	Rows         []ClosingRow `json:"rows"`
	GrandTotal   int64        `json:"grand_total"`
	TaxTotal     int64        `json:"tax_total"`
}

// ExportArtifact is the downloadable result of an export.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DailyClosing archives a closed business day.
type DailyClosing struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	BusinessDate string         `json:"business_date" gorm:"not null;index"`
	ClosedAt     time.Time      `json:"closed_at" gorm:"not null"`
	OrderCount   int            `json:"order_count" gorm:"not null"`
	GrandTotal   int64          `json:"grand_total" gorm:"not null"`
	TaxTotal     int64          `json:"tax_total"`
	ArtifactName string         `json:"artifact_name"`
	Entries      []ClosingEntry `json:"entries" gorm:"foreignKey:DailyClosingID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ClosingEntry struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	DailyClosingID uint      `json:"daily_closing_id" gorm:"not null;index"`
	OrderNumber    int       `json:"order_number" gorm:"not null"`
	Time           string    `json:"time"`
	Customer       string    `json:"customer"`
	ItemSummary    string    `json:"item_summary" gorm:"type:text"`
	LineTotal      int64     `json:"line_total" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewDailyClosing converts a snapshot into its archive record.
func NewDailyClosing(snap ClosingSnapshot, artifactName string) *DailyClosing {
	entries := make([]ClosingEntry, 0, len(snap.Rows))
	for _, r := range snap.Rows {
		entries = append(entries, ClosingEntry{
			OrderNumber: r.OrderNumber,
			Time:        r.Time,
			Customer:    r.Customer,
			ItemSummary: r.ItemSummary,
			LineTotal:   r.LineTotal,
		})
	}
	return &DailyClosing{
		BusinessDate: snap.BusinessDate,
		ClosedAt:     snap.ClosedAt,
		OrderCount:   len(snap.Rows),
		GrandTotal:   snap.GrandTotal,
		TaxTotal:     snap.TaxTotal,
		ArtifactName: artifactName,
		Entries:      entries,
	}
}
