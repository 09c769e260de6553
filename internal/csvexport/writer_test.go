package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, gstr2b.ExportMatched)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 42)
	assert.Equal(t, "Sr no.", row[0])
	assert.Equal(t, "Change Mode", row[41])
}

func TestWriteRows_Matched(t *testing.T) {
	name := "Acme Traders"
	rows := []domain.LedgerRow{{
		SerialNo:     1,
		VchType:      domain.VoucherTypePurchase,
		SupplierName: &name,
		SupplierDrCr: domain.SupplierCredit,
		Slab:         "18%",
		Mode:         domain.TaxModeIGST,
		Ledger: &domain.SlabLedger{
			LedgerName:   "Purchase 18%",
			LedgerAmount: 1000,
			LedgerDrCr:   domain.LedgerDebit,
			IGST:         180,
		},
		GroAmount:      1180,
		InvoiceAmount:  1180,
		SupplierAmount: 1180,
		ChangeMode:     domain.ChangeModeAccInv,
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf, gstr2b.ExportMatched)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows(rows))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header, data := records[0], records[1]
	byLabel := make(map[string]string, len(header))
	for i, h := range header {
		byLabel[h] = data[i]
	}

	assert.Equal(t, "1", byLabel["Sr no."])
	assert.Equal(t, "Acme Traders", byLabel["Supplier Name"])
	assert.Equal(t, "Purchase 18%", byLabel["Ledger Name 18%"])
	assert.Equal(t, "1000.00", byLabel["Ledger Amount 18%"])
	assert.Equal(t, "180.00", byLabel["IGST Rate 18%"])
	assert.Equal(t, "", byLabel["CGST Rate 18%"])
	assert.Equal(t, "", byLabel["Ledger Name 5%"])
	assert.Equal(t, "1180.00", byLabel["Invoice Amount"])
}

func TestWriteRows_MismatchedLayout(t *testing.T) {
	igst := 40.0
	rows := []domain.LedgerRow{{
		SerialNo:     1,
		VchType:      domain.VoucherTypePurchase,
		SupplierDrCr: domain.SupplierCredit,
		Custom: &domain.CustomLedger{
			LedgerName:   "Custom Purchase",
			LedgerAmount: 1240,
			LedgerDrCr:   domain.LedgerDebit,
			IGST:         &igst,
		},
		ChangeMode: domain.ChangeModeAccInv,
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf, gstr2b.ExportMismatched)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows(rows))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0], 24)

	byLabel := make(map[string]string, len(records[0]))
	for i, h := range records[0] {
		byLabel[h] = records[1][i]
	}
	assert.Equal(t, "Custom Purchase", byLabel["Ledger Name Custom"])
	assert.Equal(t, "40.00", byLabel["IGST Rate Custom"])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Acme_Pvt_Ltd", SanitizeFilename("Acme Pvt. Ltd!"))
	assert.Equal(t, "a_b", SanitizeFilename("a___b"))
	assert.Equal(t, "trimmed", SanitizeFilename("__trimmed__"))
}
