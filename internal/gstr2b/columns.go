package gstr2b

import "tallymap/internal/domain"

// SheetName is the workbook sheet the importer consumes.
const SheetName = "B2B"

// headerRows is the number of leading title/header rows discarded before
// data starts.
const headerRows = 6

type columnKind int

const (
	kindString columnKind = iota
	kindNumber
	// kindDate normalizes to an RFC3339 timestamp.
	kindDate
	// kindDisplayDate renders as dd/mm/yyyy, the form Tally expects for
	// voucher dates.
	kindDisplayDate
)

// column describes one position of the fixed B2B sheet layout: the display
// label used when round-tripping to a spreadsheet, how the cell is decoded,
// and where the decoded value lands on an ImportedRow.
type column struct {
	label  string
	kind   columnKind
	setStr func(r *domain.ImportedRow, v *string)
	setNum func(r *domain.ImportedRow, v *float64)
}

// b2bColumns is the fixed 21-column order of the government GSTR-2B B2B
// sheet. Labels are load-bearing literals; preserve them exactly.
var b2bColumns = []column{
	{label: "GSTIN of supplier", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.GSTIN = v }},
	{label: "Trade/Legal name", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.TradeName = v }},
	{label: "Invoice number", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.InvoiceNumber = v }},
	{label: "Invoice type", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.InvoiceType = v }},
	{label: "Invoice Date", kind: kindDisplayDate, setStr: func(r *domain.ImportedRow, v *string) { r.InvoiceDate = v }},
	{label: "Invoice Value(₹)", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.InvoiceValue = v }},
	{label: "Place of supply", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.PlaceOfSupply = v }},
	{label: "Supply Attract Reverse Charge", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.ReverseCharge = v }},
	{label: "Taxable Value (₹)", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.TaxableValue = v }},
	{label: "Integrated Tax(₹)", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.IGST = v }},
	{label: "Central Tax(₹)", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.CGST = v }},
	{label: "State/UT Tax(₹)", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.SGST = v }},
	{label: "Cess(₹)", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.Cess = v }},
	{label: "GSTR-1/1A/IFF/GSTR-5 Period", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.GSTRPeriod = v }},
	{label: "GSTR-1/1A/IFF/GSTR-5 Filing Date", kind: kindDate, setStr: func(r *domain.ImportedRow, v *string) { r.GSTRFilingDate = v }},
	{label: "ITC Availability", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.ITCAvailability = v }},
	{label: "Reason", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.Reason = v }},
	{label: "Applicable % of Tax Rate", kind: kindNumber, setNum: func(r *domain.ImportedRow, v *float64) { r.TaxRatePercent = v }},
	{label: "Source", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.Source = v }},
	{label: "IRN", kind: kindString, setStr: func(r *domain.ImportedRow, v *string) { r.IRN = v }},
	{label: "IRN Date", kind: kindDate, setStr: func(r *domain.ImportedRow, v *string) { r.IRNDate = v }},
}

// ColumnLabels returns the 21 source-sheet display labels in column order.
func ColumnLabels() []string {
	labels := make([]string, len(b2bColumns))
	for i := range b2bColumns {
		labels[i] = b2bColumns[i].label
	}
	return labels
}
