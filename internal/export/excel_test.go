package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"burger_pos/internal/models"

	"github.com/xuri/excelize/v2"
)

func testSnapshot() models.ClosingSnapshot {
	return models.ClosingSnapshot{
		BusinessDate: "18/10/2026",
		ClosedAt:     time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC),
		Rows: []models.ClosingRow{
			{OrderNumber: 2, Time: "21:40", Customer: "Ana", ItemSummary: "2x Cheese Burger JR", LineTotal: 12000},
			{OrderNumber: 1, Time: "20:05", Customer: "Walk-in", ItemSummary: "1x Soda 500ml", LineTotal: 2000},
		},
		GrandTotal: 14000,
	}
}

func openArtifact(t *testing.T, a *models.ExportArtifact) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExcelExport(t *testing.T) {
	artifact, err := NewExcelExporter("").Export(testSnapshot())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if artifact.Filename != "closing_18-10-2026.xlsx" {
		t.Errorf("Filename = %q, want closing_18-10-2026.xlsx", artifact.Filename)
	}
	if artifact.ContentType != XLSXContentType {
		t.Errorf("ContentType = %q", artifact.ContentType)
	}

	f := openArtifact(t, artifact)
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	want := [][]string{
		{"Ticket", "Time", "Customer", "Items", "Total"},
		{"2", "21:40", "Ana", "2x Cheese Burger JR", "12000"},
		{"1", "20:05", "Walk-in", "1x Soda 500ml", "2000"},
		nil,
		{"", "", "", "DAY TOTAL:", "14000"},
	}
	if len(rows) != len(want) {
		t.Fatalf("sheet has %d rows, want %d: %q", len(rows), len(want), rows)
	}
	for i := range want {
		if len(rows[i]) != len(want[i]) {
			t.Errorf("row %d = %q, want %q", i+1, rows[i], want[i])
			continue
		}
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("cell (%d,%d) = %q, want %q", i+1, j+1, rows[i][j], want[i][j])
			}
		}
	}
}

func TestExcelExportHeaderStyle(t *testing.T) {
	artifact, err := NewExcelExporter("").Export(testSnapshot())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	f := openArtifact(t, artifact)

	id, err := f.GetCellStyle(SheetName, "A1")
	if err != nil {
		t.Fatalf("GetCellStyle() error = %v", err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatalf("GetStyle() error = %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("header font is not bold")
	}
	if len(style.Fill.Color) == 0 || !strings.HasSuffix(strings.ToUpper(style.Fill.Color[0]), headerFillColour) {
		t.Errorf("header fill = %v, want %s", style.Fill.Color, headerFillColour)
	}
}

func TestExcelExportTaxRow(t *testing.T) {
	snap := testSnapshot()
	snap.TaxTotal = 2940

	artifact, err := NewExcelExporter("cierre").Export(snap)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if artifact.Filename != "cierre_18-10-2026.xlsx" {
		t.Errorf("Filename = %q", artifact.Filename)
	}

	f := openArtifact(t, artifact)
	label, _ := f.GetCellValue(SheetName, "D6")
	amount, _ := f.GetCellValue(SheetName, "E6", excelize.Options{RawCellValue: true})
	if label != "TAX:" || amount != "2940" {
		t.Errorf("tax row = %q %q, want TAX: 2940", label, amount)
	}
}
