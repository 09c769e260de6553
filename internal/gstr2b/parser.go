package gstr2b

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tallymap/internal/domain"
)

// displayDateLayout is the dd/mm/yyyy form Tally vouchers carry.
const displayDateLayout = "02/01/2006"

// textDateLayouts are tried in order for date cells that are not Excel
// serials.
var textDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02-Jan-06",
	"02-Jan-2006",
}

// ParseWorkbook decodes the B2B sheet of an uploaded GSTR-2B workbook into
// typed rows. The first 6 sheet rows are header decoration and skipped;
// fully blank rows are dropped; all other rows are kept in sheet order.
// Returns domain.ErrSheetNotFound when the workbook has no B2B sheet.
func ParseWorkbook(f *excelize.File) ([]domain.ImportedRow, error) {
	idx, err := f.GetSheetIndex(SheetName)
	if err != nil || idx < 0 {
		return nil, domain.ErrSheetNotFound
	}

	sheetRows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", SheetName, err)
	}

	rows := make([]domain.ImportedRow, 0)
	if len(sheetRows) <= headerRows {
		return rows, nil
	}

	for _, raw := range sheetRows[headerRows:] {
		if rowEmpty(raw) {
			continue
		}
		rows = append(rows, decodeRow(raw))
	}
	return rows, nil
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func decodeRow(cells []string) domain.ImportedRow {
	var row domain.ImportedRow
	for i := range b2bColumns {
		col := &b2bColumns[i]
		cell := cellAt(cells, i)
		switch col.kind {
		case kindNumber:
			col.setNum(&row, parseNumber(cell))
		case kindDate:
			col.setStr(&row, parseDate(cell, time.RFC3339))
		case kindDisplayDate:
			col.setStr(&row, parseDate(cell, displayDateLayout))
		default:
			col.setStr(&row, parseString(cell))
		}
	}
	return row
}

// cellAt tolerates short rows: excelize trims trailing empty cells.
func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func parseString(cell string) *string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	return &s
}

// parseNumber accepts plain or comma-grouped numeric text. Anything
// non-finite or unparseable decodes to nil, never an error.
func parseNumber(cell string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// parseDate accepts an Excel date serial (1900 epoch) or a text date and
// renders it in the given layout. Unparseable values decode to nil.
func parseDate(cell string, layout string) *string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		formatted := t.UTC().Format(layout)
		return &formatted
	}

	for _, l := range textDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			formatted := t.UTC().Format(layout)
			return &formatted
		}
	}
	return nil
}
