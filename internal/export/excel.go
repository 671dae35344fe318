// Package export renders closing snapshots into spreadsheet artifacts and
// ships them to object storage.
package export

import (
	"fmt"
	"strings"

	"burger_pos/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName        = "Closing"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultPrefix    = "closing"
	amountFormat     = `"$"#,##0`
	headerFillColour = "15803D"
)

var columns = []struct {
	header string
	width  float64
}{
	{"Ticket", 10},
	{"Time", 10},
	{"Customer", 20},
	{"Items", 40},
	{"Total", 15},
}

type ExcelExporter struct {
	prefix string
}

// NewExcelExporter returns an exporter naming files "<prefix>_<d-m-yyyy>.xlsx".
func NewExcelExporter(prefix string) *ExcelExporter {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ExcelExporter{prefix: prefix}
}

// Filename derives the artifact name from the snapshot's business date.
func (e *ExcelExporter) Filename(snap models.ClosingSnapshot) string {
	return fmt.Sprintf("%s_%s.xlsx", e.prefix, strings.ReplaceAll(snap.BusinessDate, "/", "-"))
}

// Export writes one row per sale, a blank spacer row and a bold total row.
func (e *ExcelExporter) Export(snap models.ClosingSnapshot) (*models.ExportArtifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.header
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", styles.header); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, r := range snap.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{r.OrderNumber, r.Time, r.Customer, r.ItemSummary, r.LineTotal}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write ticket #%d: %w", r.OrderNumber, err)
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.amount); err != nil {
			return nil, fmt.Errorf("failed to style ticket #%d: %w", r.OrderNumber, err)
		}
		row++
	}

	// Leave one empty row before the totals.
	row++
	if err := e.writeTotal(f, row, "DAY TOTAL:", snap.GrandTotal, styles.total); err != nil {
		return nil, err
	}
	if snap.TaxTotal > 0 {
		row++
		if err := e.writeTotal(f, row, "TAX:", snap.TaxTotal, styles.total); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return &models.ExportArtifact{
		Filename:    e.Filename(snap),
		ContentType: XLSXContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (e *ExcelExporter) writeTotal(f *excelize.File, row int, label string, amount int64, style int) error {
	labelCell := fmt.Sprintf("D%d", row)
	amountCell := fmt.Sprintf("E%d", row)
	if err := f.SetCellValue(SheetName, labelCell, label); err != nil {
		return fmt.Errorf("failed to write %s: %w", label, err)
	}
	if err := f.SetCellValue(SheetName, amountCell, amount); err != nil {
		return fmt.Errorf("failed to write %s: %w", label, err)
	}
	return f.SetCellStyle(SheetName, labelCell, amountCell, style)
}

type sheetStyles struct {
	header int
	amount int
	total  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var (
		s   sheetStyles
		err error
	)
	format := amountFormat

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColour}},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	s.amount, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return s, fmt.Errorf("failed to create amount style: %w", err)
	}
	s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 14},
		CustomNumFmt: &format,
	})
	if err != nil {
		return s, fmt.Errorf("failed to create total style: %w", err)
	}
	return s, nil
}
