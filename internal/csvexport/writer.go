package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer renders ledger rows as CSV in the same column layout the
// spreadsheet export uses.
type Writer struct {
	csv  *csv.Writer
	mode gstr2b.ExportMode
}

// NewWriter creates a Writer that writes CSV to w in the given export
// mode's layout.
func NewWriter(w io.Writer, mode gstr2b.ExportMode) *Writer {
	return &Writer{csv: csv.NewWriter(w), mode: mode}
}

// WriteHeader writes the column label row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(gstr2b.Columns(w.mode))
}

// WriteRows converts ledger rows to CSV records and writes them.
func (w *Writer) WriteRows(rows []domain.LedgerRow) error {
	for i := range rows {
		record := rowToRecord(&rows[i], w.mode)
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// rowToRecord formats one ledger row as CSV cells. Absent values render as
// empty strings; monetary amounts keep two decimals.
func rowToRecord(r *domain.LedgerRow, mode gstr2b.ExportMode) []string {
	cells := gstr2b.CellValues(r, mode)
	record := make([]string, len(cells))
	for i, cell := range cells {
		record[i] = formatCell(cell)
	}
	return record
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprint(x)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a company name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_company}_{suffix}_{YYYY-MM-DD}.csv
func BuildFilename(company, suffix string) string {
	sanitized := SanitizeFilename(company)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%s.csv", sanitized, suffix, date)
}
