package gstr2b

import (
	"context"
	"math"
	"strings"

	"tallymap/internal/domain"
)

// Builder assembles one Tally ledger row per imported row. It is a pure
// function of its inputs apart from reads of the shared state-code cache;
// every input yields a row, classified or not.
type Builder struct {
	states *StateResolver
}

// NewBuilder creates a Builder over the given state resolver.
func NewBuilder(states *StateResolver) *Builder {
	return &Builder{states: states}
}

// Build derives the ledger row for the imported row at the given 0-based
// batch position and reports whether it fell back to the custom bucket.
func (b *Builder) Build(ctx context.Context, row *domain.ImportedRow, index int) (domain.LedgerRow, bool) {
	gstin := strings.TrimSpace(strVal(row.GSTIN))
	state, err := b.states.Resolve(ctx, gstin)
	if err != nil {
		// The caller warms the cache before batch processing; an
		// unresolved state degrades to blank rather than failing the row.
		state = ""
	}

	taxableValue := numVal(row.TaxableValue)
	invoiceValue := numVal(row.InvoiceValue)
	igst := numVal(row.IGST)
	cgst := numVal(row.CGST)
	sgst := numVal(row.SGST)

	out := domain.LedgerRow{
		SerialNo:            index + 1,
		Date:                row.InvoiceDate,
		VchNo:               row.InvoiceNumber,
		VchType:             domain.VoucherTypePurchase,
		ReferenceNo:         row.InvoiceNumber,
		ReferenceDate:       row.InvoiceDate,
		SupplierName:        row.TradeName,
		GSTRegistrationType: row.InvoiceType,
		GSTINUIN:            optional(gstin),
		State:               optional(state),
		SupplierState:       row.PlaceOfSupply,
		SupplierDrCr:        domain.SupplierCredit,
		ChangeMode:          domain.ChangeModeAccInv,
	}

	match := Classify(taxableValue, igst, cgst)

	ledgerAmount := taxableValue
	igstApplied := igst
	cgstApplied := cgst
	sgstApplied := sgst
	mismatched := false

	if match != nil && ledgerAmount != 0 {
		out.Slab = match.Slab.Label
		out.Mode = match.Mode
		ledger := &domain.SlabLedger{
			LedgerName:   "Purchase " + match.Slab.Label,
			LedgerAmount: ledgerAmount,
			LedgerDrCr:   domain.LedgerDebit,
		}
		if match.Mode == domain.TaxModeIGST {
			ledger.IGST = igstApplied
			cgstApplied = 0
			sgstApplied = 0
		} else {
			ledger.CGST = cgstApplied
			ledger.SGST = sgstApplied
			igstApplied = 0
		}
		out.Ledger = ledger
	} else {
		mismatched = true
		if invoiceValue != 0 {
			ledgerAmount = invoiceValue
		}
		out.Custom = &domain.CustomLedger{
			LedgerName:   "Custom Purchase",
			LedgerAmount: ledgerAmount,
			LedgerDrCr:   domain.LedgerDebit,
			IGST:         nonzero(igstApplied),
			CGST:         nonzero(cgstApplied),
			SGST:         nonzero(sgstApplied),
		}
	}

	groAmount := round2(ledgerAmount + igstApplied + cgstApplied + sgstApplied)

	var roundOffDr, roundOffCr float64
	if frac := groAmount - math.Floor(groAmount); frac > 0 {
		if frac >= 0.5 {
			roundOffCr = round2(math.Ceil(groAmount) - groAmount)
		} else {
			roundOffDr = round2(frac)
		}
	}
	invoiceAmount := round2(groAmount + roundOffCr - roundOffDr)

	out.GroAmount = groAmount
	out.RoundOffDr = nonzero(roundOffDr)
	out.RoundOffCr = nonzero(roundOffCr)
	out.InvoiceAmount = invoiceAmount
	out.SupplierAmount = invoiceAmount

	return out, mismatched
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func numVal(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonzero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
