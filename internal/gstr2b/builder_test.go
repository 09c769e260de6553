package gstr2b_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
	"tallymap/mocks"
)

func strp(s string) *string   { return &s }
func nump(v float64) *float64 { return &v }

func newBuilder() *gstr2b.Builder {
	repo := new(mocks.MockStateCodeRepo)
	repo.On("LoadAll", mock.Anything).Return(seedEntries(), nil)
	return gstr2b.NewBuilder(gstr2b.NewStateResolver(repo))
}

func TestBuild_MatchedIGST(t *testing.T) {
	b := newBuilder()

	row := domain.ImportedRow{
		GSTIN:         strp("27ABCDE1234F1Z5"),
		TradeName:     strp("Acme Traders"),
		InvoiceNumber: strp("INV-001"),
		InvoiceType:   strp("Regular"),
		InvoiceDate:   strp("01/04/2024"),
		InvoiceValue:  nump(1180),
		PlaceOfSupply: strp("27-Maharashtra"),
		TaxableValue:  nump(1000),
		IGST:          nump(180),
	}

	out, mismatched := b.Build(context.Background(), &row, 0)

	assert.False(t, mismatched)
	assert.Equal(t, 1, out.SerialNo)
	assert.Equal(t, domain.VoucherTypePurchase, out.VchType)
	assert.Equal(t, domain.SupplierCredit, out.SupplierDrCr)
	assert.Equal(t, domain.ChangeModeAccInv, out.ChangeMode)
	assert.Equal(t, "18%", out.Slab)
	assert.Equal(t, domain.TaxModeIGST, out.Mode)

	require.NotNil(t, out.Ledger)
	assert.Nil(t, out.Custom)
	assert.Equal(t, "Purchase 18%", out.Ledger.LedgerName)
	assert.Equal(t, 1000.0, out.Ledger.LedgerAmount)
	assert.Equal(t, domain.LedgerDebit, out.Ledger.LedgerDrCr)
	assert.Equal(t, 180.0, out.Ledger.IGST)
	assert.Equal(t, 0.0, out.Ledger.CGST)
	assert.Equal(t, 0.0, out.Ledger.SGST)

	require.NotNil(t, out.State)
	assert.Equal(t, "Maharashtra", *out.State)

	assert.Equal(t, 1180.0, out.GroAmount)
	assert.Nil(t, out.RoundOffDr)
	assert.Nil(t, out.RoundOffCr)
	assert.Equal(t, 1180.0, out.InvoiceAmount)
	assert.Equal(t, 1180.0, out.SupplierAmount)
}

func TestBuild_MatchedCGSTSGST(t *testing.T) {
	b := newBuilder()

	row := domain.ImportedRow{
		TaxableValue: nump(1000),
		CGST:         nump(90),
		SGST:         nump(90),
	}

	out, mismatched := b.Build(context.Background(), &row, 3)

	assert.False(t, mismatched)
	assert.Equal(t, 4, out.SerialNo)
	assert.Equal(t, "18%", out.Slab)
	assert.Equal(t, domain.TaxModeCGSTSGST, out.Mode)

	require.NotNil(t, out.Ledger)
	assert.Equal(t, 0.0, out.Ledger.IGST)
	assert.Equal(t, 90.0, out.Ledger.CGST)
	assert.Equal(t, 90.0, out.Ledger.SGST)
	assert.Equal(t, 1180.0, out.GroAmount)
}

func TestBuild_MatchedIGSTDropsStrayCGST(t *testing.T) {
	b := newBuilder()

	// A junk CGST amount on an IGST-classified row must not leak into the
	// gross total.
	row := domain.ImportedRow{
		TaxableValue: nump(1000),
		IGST:         nump(50),
		CGST:         nump(3),
	}

	out, mismatched := b.Build(context.Background(), &row, 0)

	assert.False(t, mismatched)
	assert.Equal(t, "5%", out.Slab)
	assert.Equal(t, 1050.0, out.GroAmount)
}

func TestBuild_MismatchedCustomBucket(t *testing.T) {
	b := newBuilder()

	row := domain.ImportedRow{
		InvoiceValue: nump(1240),
		TaxableValue: nump(1200),
		IGST:         nump(40),
	}

	out, mismatched := b.Build(context.Background(), &row, 0)

	assert.True(t, mismatched)
	assert.True(t, out.Mismatched())
	assert.Nil(t, out.Ledger)
	require.NotNil(t, out.Custom)
	assert.Equal(t, "Custom Purchase", out.Custom.LedgerName)
	// invoice value wins over taxable value for the custom ledger amount
	assert.Equal(t, 1240.0, out.Custom.LedgerAmount)
	require.NotNil(t, out.Custom.IGST)
	assert.Equal(t, 40.0, *out.Custom.IGST)
	assert.Nil(t, out.Custom.CGST)
	assert.Nil(t, out.Custom.SGST)
	assert.Equal(t, 1280.0, out.GroAmount)
}

func TestBuild_MismatchedFallsBackToTaxableValue(t *testing.T) {
	b := newBuilder()

	row := domain.ImportedRow{
		TaxableValue: nump(500),
	}

	out, mismatched := b.Build(context.Background(), &row, 0)

	assert.True(t, mismatched)
	require.NotNil(t, out.Custom)
	assert.Equal(t, 500.0, out.Custom.LedgerAmount)
	assert.Nil(t, out.Custom.IGST)
}

func TestBuild_RoundOffCredit(t *testing.T) {
	b := newBuilder()

	// gro 1234.56: fraction >= 0.5 rounds up via a credit of 0.44
	row := domain.ImportedRow{
		TaxableValue: nump(1200),
		IGST:         nump(34.56),
	}

	out, _ := b.Build(context.Background(), &row, 0)

	assert.Equal(t, 1234.56, out.GroAmount)
	require.NotNil(t, out.RoundOffCr)
	assert.InDelta(t, 0.44, *out.RoundOffCr, 1e-9)
	assert.Nil(t, out.RoundOffDr)
	assert.Equal(t, 1235.0, out.InvoiceAmount)
	assert.Equal(t, out.InvoiceAmount, out.SupplierAmount)
}

func TestBuild_RoundOffDebit(t *testing.T) {
	b := newBuilder()

	// gro 1234.30: fraction < 0.5 rounds down via a debit of 0.30
	row := domain.ImportedRow{
		TaxableValue: nump(1200),
		IGST:         nump(34.30),
	}

	out, _ := b.Build(context.Background(), &row, 0)

	assert.Equal(t, 1234.30, out.GroAmount)
	require.NotNil(t, out.RoundOffDr)
	assert.InDelta(t, 0.30, *out.RoundOffDr, 1e-9)
	assert.Nil(t, out.RoundOffCr)
	assert.Equal(t, 1234.0, out.InvoiceAmount)
}

func TestBuild_EmptyRow(t *testing.T) {
	b := newBuilder()

	out, mismatched := b.Build(context.Background(), &domain.ImportedRow{}, 9)

	assert.True(t, mismatched)
	assert.Equal(t, 10, out.SerialNo)
	require.NotNil(t, out.Custom)
	assert.Equal(t, 0.0, out.Custom.LedgerAmount)
	assert.Equal(t, 0.0, out.GroAmount)
	assert.Equal(t, 0.0, out.InvoiceAmount)
	assert.Nil(t, out.GSTINUIN)
	assert.Nil(t, out.State)
}
