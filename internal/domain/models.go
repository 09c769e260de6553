package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Company is the master record for a business the user files GSTR-2B for.
type Company struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	MailingName string    `db:"mailing_name" json:"mailing_name"`
	Address     string    `db:"address" json:"address"`
	State       string    `db:"state" json:"state"`
	Country     string    `db:"country" json:"country"`
	Pincode     string    `db:"pincode" json:"pincode"`
	Telephone   string    `db:"telephone" json:"telephone"`
	Mobile      string    `db:"mobile" json:"mobile"`
	Email       string    `db:"email" json:"email"`
	TANNumber   string    `db:"tan_number" json:"tan_number"`
	GSTIN       string    `db:"gstin" json:"gstin"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CompanySnapshot is the frozen copy of a company's profile taken at upload
// time. It travels with the import batch and is never refreshed from the
// live company row, so later edits do not rewrite history.
type CompanySnapshot struct {
	CompanyName string `json:"company_name"`
	MailingName string `json:"mailing_name,omitempty"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Email       string `json:"email,omitempty"`
	TANNumber   string `json:"tan_number,omitempty"`
	GSTIN       string `json:"gstin,omitempty"`
}

// SnapshotOf freezes the profile fields of a company.
func SnapshotOf(c *Company) CompanySnapshot {
	return CompanySnapshot{
		CompanyName: c.CompanyName,
		MailingName: c.MailingName,
		Address:     c.Address,
		State:       c.State,
		Country:     c.Country,
		Pincode:     c.Pincode,
		Telephone:   c.Telephone,
		Mobile:      c.Mobile,
		Email:       c.Email,
		TANNumber:   c.TANNumber,
		GSTIN:       c.GSTIN,
	}
}

// StateCode maps a 2-digit GST jurisdiction code to a state/territory name.
type StateCode struct {
	ID        int       `db:"id" json:"id"`
	StateName string    `db:"state_name" json:"state_name"`
	GSTCode   string    `db:"gst_code" json:"gst_code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ImportedRow is one parsed line of the B2B sheet. All 21 columns are
// present as explicit fields; nil means the source cell was empty or could
// not be decoded. InvoiceDate is a dd/mm/yyyy display string; the other two
// date columns are RFC3339 timestamps.
type ImportedRow struct {
	GSTIN           *string  `json:"gstin"`
	TradeName       *string  `json:"trade_name"`
	InvoiceNumber   *string  `json:"invoice_number"`
	InvoiceType     *string  `json:"invoice_type"`
	InvoiceDate     *string  `json:"invoice_date"`
	InvoiceValue    *float64 `json:"invoice_value"`
	PlaceOfSupply   *string  `json:"place_of_supply"`
	ReverseCharge   *string  `json:"reverse_charge"`
	TaxableValue    *float64 `json:"taxable_value"`
	IGST            *float64 `json:"igst"`
	CGST            *float64 `json:"cgst"`
	SGST            *float64 `json:"sgst"`
	Cess            *float64 `json:"cess"`
	GSTRPeriod      *string  `json:"gstr_period"`
	GSTRFilingDate  *string  `json:"gstr_filing_date"`
	ITCAvailability *string  `json:"itc_availability"`
	Reason          *string  `json:"reason"`
	TaxRatePercent  *float64 `json:"tax_rate_percent"`
	Source          *string  `json:"source"`
	IRN             *string  `json:"irn"`
	IRNDate         *string  `json:"irn_date"`
}

// ImportBatch groups the parsed rows of one uploaded workbook.
type ImportBatch struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	CompanyID       uuid.UUID       `db:"company_id" json:"company_id"`
	CompanySnapshot CompanySnapshot `db:"-" json:"company_snapshot"`
	SheetName       string          `db:"sheet_name" json:"sheet_name"`
	Rows            []ImportedRow   `db:"-" json:"rows"`
	SourceFileName  string          `db:"source_file_name" json:"source_file_name"`
	StorageKey      string          `db:"storage_key" json:"storage_key,omitempty"`
	UploadedAt      time.Time       `db:"uploaded_at" json:"uploaded_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// ImportBatchRecord is the storage shape of an ImportBatch with the JSONB
// columns still raw. Repositories decode it into ImportBatch.
type ImportBatchRecord struct {
	ID              uuid.UUID       `db:"id"`
	CompanyID       uuid.UUID       `db:"company_id"`
	CompanySnapshot json.RawMessage `db:"company_snapshot"`
	SheetName       string          `db:"sheet_name"`
	Rows            json.RawMessage `db:"source_rows"`
	SourceFileName  string          `db:"source_file_name"`
	StorageKey      string          `db:"storage_key"`
	UploadedAt      time.Time       `db:"uploaded_at"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TaxMode says which side of the GST split a matched row settled on.
type TaxMode string

const (
	TaxModeIGST     TaxMode = "IGST"
	TaxModeCGSTSGST TaxMode = "CGST_SGST"
)

// Tally voucher constants shared by every generated row.
const (
	VoucherTypePurchase = "PURCHASE"
	SupplierCredit      = "CR"
	LedgerDebit         = "DR"
	ChangeModeAccInv    = "Accounting Invoice"
)

// SlabLedger carries the ledger and tax fields of the single slab a matched
// row was classified into. For IGST mode CGST/SGST are zero, and vice versa,
// so downstream summation never double counts.
type SlabLedger struct {
	LedgerName   string  `json:"ledger_name"`
	LedgerAmount float64 `json:"ledger_amount"`
	LedgerDrCr   string  `json:"ledger_dr_cr"`
	IGST         float64 `json:"igst"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
}

// CustomLedger is the generic bucket for rows whose tax amounts fit no slab.
// Tax fields keep whatever nonzero values the source row carried.
type CustomLedger struct {
	LedgerName   string   `json:"ledger_name"`
	LedgerAmount float64  `json:"ledger_amount"`
	LedgerDrCr   string   `json:"ledger_dr_cr"`
	IGST         *float64 `json:"igst"`
	CGST         *float64 `json:"cgst"`
	SGST         *float64 `json:"sgst"`
}

// LedgerRow is one Tally-importable accounting record derived from an
// ImportedRow. Exactly one of Ledger (with Slab/Mode set) or Custom is
// populated, never both.
type LedgerRow struct {
	SerialNo            int           `json:"sl_no"`
	Date                *string       `json:"date"`
	VchNo               *string       `json:"vch_no"`
	VchType             string        `json:"vch_type"`
	ReferenceNo         *string       `json:"reference_no"`
	ReferenceDate       *string       `json:"reference_date"`
	SupplierName        *string       `json:"supplier_name"`
	GSTRegistrationType *string       `json:"gst_registration_type"`
	GSTINUIN            *string       `json:"gstin_uin"`
	State               *string       `json:"state"`
	SupplierState       *string       `json:"supplier_state"`
	SupplierAmount      float64       `json:"supplier_amount"`
	SupplierDrCr        string        `json:"supplier_dr_cr"`
	Slab                string        `json:"slab,omitempty"`
	Mode                TaxMode       `json:"mode,omitempty"`
	Ledger              *SlabLedger   `json:"ledger,omitempty"`
	Custom              *CustomLedger `json:"custom,omitempty"`
	GroAmount           float64       `json:"gro_amount"`
	RoundOffDr          *float64      `json:"round_off_dr"`
	RoundOffCr          *float64      `json:"round_off_cr"`
	InvoiceAmount       float64       `json:"invoice_amount"`
	ChangeMode          string        `json:"change_mode"`
}

// Mismatched reports whether the row fell back to the custom bucket.
func (r *LedgerRow) Mismatched() bool {
	return r.Custom != nil
}

// ProcessedFile is the derived artifact of processing one import batch.
// Its ID equals the batch ID; reprocessing replaces it in place.
type ProcessedFile struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Company         string          `db:"company" json:"company"`
	CompanySnapshot CompanySnapshot `db:"-" json:"company_snapshot"`
	ProcessedRows   []LedgerRow     `db:"-" json:"processed_rows"`
	MismatchedRows  []LedgerRow     `db:"-" json:"mismatched_rows"`
	ProcessedAt     time.Time       `db:"processed_at" json:"processed_at"`
}

// ProcessedFileRecord is the storage shape of a ProcessedFile.
type ProcessedFileRecord struct {
	ID              uuid.UUID       `db:"id"`
	Company         string          `db:"company"`
	CompanySnapshot json.RawMessage `db:"company_snapshot"`
	ProcessedRows   json.RawMessage `db:"processed_rows"`
	MismatchedRows  json.RawMessage `db:"mismatched_rows"`
	ProcessedAt     time.Time       `db:"processed_at"`
}
