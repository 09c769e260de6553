package gstr2b

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tallymap/internal/domain"
)

// ExportMode selects which output column layout a workbook export uses.
type ExportMode int

const (
	// ExportMatched renders the full 42-column Tally import layout.
	ExportMatched ExportMode = iota
	// ExportMismatched renders review rows: the slab ledger/tax columns are
	// excluded and the custom bucket columns appear instead.
	ExportMismatched
)

var slabLabels = []string{"5%", "12%", "18%", "28%"}

var baseColumns = []string{
	"Sr no.",
	"Date",
	"Vch No",
	"VCH Type",
	"Reference No.",
	"Reference Date",
	"Supplier Name",
	"GST Registration Type",
	"GSTIN/UIN",
	"State",
	"Supplier State",
	"Supplier Amount",
	"Supplier Dr/Cr",
}

var tailColumns = []string{
	"GRO Amount",
	"Round Off Dr",
	"Round Off Cr",
	"Invoice Amount",
	"Change Mode",
}

var customColumns = []string{
	"Ledger Name Custom",
	"Ledger Amount Custom",
	"Ledger DR/CR Custom",
	"IGST Rate Custom",
	"CGST Rate Custom",
	"SGST/UTGST Rate Custom",
}

// matchedColumns is the fixed 42-column Tally layout: identity columns,
// ledger columns per slab, tax columns per slab, then totals.
var matchedColumns = buildMatchedColumns()

// mismatchedColumns excludes every slab column and carries the custom
// bucket instead. Defined as data once, not per call.
var mismatchedColumns = buildMismatchedColumns()

func buildMatchedColumns() []string {
	cols := append([]string{}, baseColumns...)
	for _, slab := range slabLabels {
		cols = append(cols,
			"Ledger Name "+slab,
			"Ledger Amount "+slab,
			"Ledger DR/CR "+slab,
		)
	}
	for _, slab := range slabLabels {
		cols = append(cols,
			"IGST Rate "+slab,
			"CGST Rate "+slab,
			"SGST/UTGST Rate "+slab,
		)
	}
	return append(cols, tailColumns...)
}

func buildMismatchedColumns() []string {
	cols := append([]string{}, baseColumns...)
	cols = append(cols, customColumns...)
	return append(cols, tailColumns...)
}

// Columns returns the output column labels for the given export mode.
func Columns(mode ExportMode) []string {
	if mode == ExportMismatched {
		return mismatchedColumns
	}
	return matchedColumns
}

// flatten spreads a ledger row over the flat label→value layout used for
// spreadsheet export. Absent values are simply not present in the map.
func flatten(r *domain.LedgerRow) map[string]interface{} {
	m := map[string]interface{}{
		"Sr no.":         r.SerialNo,
		"VCH Type":       r.VchType,
		"Supplier Dr/Cr": r.SupplierDrCr,
		"Supplier Amount": r.SupplierAmount,
		"GRO Amount":     r.GroAmount,
		"Invoice Amount": r.InvoiceAmount,
		"Change Mode":    r.ChangeMode,
	}
	putStr(m, "Date", r.Date)
	putStr(m, "Vch No", r.VchNo)
	putStr(m, "Reference No.", r.ReferenceNo)
	putStr(m, "Reference Date", r.ReferenceDate)
	putStr(m, "Supplier Name", r.SupplierName)
	putStr(m, "GST Registration Type", r.GSTRegistrationType)
	putStr(m, "GSTIN/UIN", r.GSTINUIN)
	putStr(m, "State", r.State)
	putStr(m, "Supplier State", r.SupplierState)
	putNum(m, "Round Off Dr", r.RoundOffDr)
	putNum(m, "Round Off Cr", r.RoundOffCr)

	if r.Ledger != nil {
		m["Ledger Name "+r.Slab] = r.Ledger.LedgerName
		m["Ledger Amount "+r.Slab] = r.Ledger.LedgerAmount
		m["Ledger DR/CR "+r.Slab] = r.Ledger.LedgerDrCr
		if r.Mode == domain.TaxModeIGST {
			m["IGST Rate "+r.Slab] = r.Ledger.IGST
		} else {
			m["CGST Rate "+r.Slab] = r.Ledger.CGST
			m["SGST/UTGST Rate "+r.Slab] = r.Ledger.SGST
		}
	}

	if r.Custom != nil {
		m["Ledger Name Custom"] = r.Custom.LedgerName
		m["Ledger Amount Custom"] = r.Custom.LedgerAmount
		m["Ledger DR/CR Custom"] = r.Custom.LedgerDrCr
		putNum(m, "IGST Rate Custom", r.Custom.IGST)
		putNum(m, "CGST Rate Custom", r.Custom.CGST)
		putNum(m, "SGST/UTGST Rate Custom", r.Custom.SGST)
	}
	return m
}

func putStr(m map[string]interface{}, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putNum(m map[string]interface{}, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

// CellValues aligns one row's values to the mode's column layout. Absent
// values are nil so spreadsheet and CSV writers can render blanks their
// own way.
func CellValues(r *domain.LedgerRow, mode ExportMode) []interface{} {
	cols := Columns(mode)
	values := flatten(r)
	cells := make([]interface{}, len(cols))
	for i, c := range cols {
		cells[i] = values[c]
	}
	return cells
}

// WriteWorkbook renders ledger rows to a single-sheet workbook using the
// column layout of the given export mode.
func WriteWorkbook(sheetName string, rows []domain.LedgerRow, mode ExportMode) (*excelize.File, error) {
	cols := Columns(mode)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	for i := range rows {
		cells := CellValues(&rows[i], mode)
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row address: %w", err)
		}
		if err := f.SetSheetRow(sheetName, addr, &cells); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return f, nil
}
