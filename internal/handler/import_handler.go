package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tallymap/internal/csvexport"
	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
	"tallymap/internal/service"
)

// maxUploadSize caps GSTR-2B workbook uploads at 25 MB.
const maxUploadSize = 25 << 20

// ImportHandler handles GSTR-2B upload, processing, and export endpoints.
type ImportHandler struct {
	importService  service.ImportService
	processService service.ProcessService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, processService service.ProcessService) *ImportHandler {
	return &ImportHandler{importService: importService, processService: processService}
}

// batchSummary is the list-view shape of an import batch: the row payload
// is replaced by its count.
type batchSummary struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uuid.UUID `json:"company_id"`
	SheetName      string    `json:"sheet_name"`
	RowCount       int       `json:"row_count"`
	SourceFileName string    `json:"source_file_name"`
	UploadedAt     string    `json:"uploaded_at"`
}

func summarize(b *domain.ImportBatch) batchSummary {
	return batchSummary{
		ID:             b.ID,
		CompanyID:      b.CompanyID,
		SheetName:      b.SheetName,
		RowCount:       len(b.Rows),
		SourceFileName: b.SourceFileName,
		UploadedAt:     b.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// UploadB2B handles POST /api/gstr2b-imports/b2b?company_id=
func (h *ImportHandler) UploadB2B(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid or missing company_id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return
	}
	if fileHeader.Size > maxUploadSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	batch, err := h.importService.UploadB2B(c.Request.Context(), service.ImportUploadInput{
		CompanyID: companyID,
		FileName:  fileHeader.Filename,
		File:      file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, batch)
}

// ListByCompany handles GET /api/gstr2b-imports/company/:companyId
func (h *ImportHandler) ListByCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	batches, err := h.importService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	summaries := make([]batchSummary, len(batches))
	for i := range batches {
		summaries[i] = summarize(&batches[i])
	}
	RespondOK(c, summaries)
}

// GetByID handles GET /api/gstr2b-imports/:id
func (h *ImportHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.importService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// Process handles POST /api/gstr2b-imports/:id/process
//
// A batch with zero rows is a no-op, not a failure: the response is 200
// with an explanatory message and no artifact.
func (h *ImportHandler) Process(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	file, err := h.processService.Process(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyBatch) {
			RespondOK(c, gin.H{"message": "no rows to process"})
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"id":         file.ID,
		"company":    file.Company,
		"processed":  len(file.ProcessedRows),
		"mismatched": len(file.MismatchedRows),
	})
}

// GetProcessed handles GET /api/gstr2b-imports/:id/processed
func (h *ImportHandler) GetProcessed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	file, err := h.processService.GetProcessed(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, file)
}

// Export handles GET /api/gstr2b-imports/:id/processed/export?rows=matched|mismatched&format=xlsx|csv
//
// Streams an attachment with either the full Tally import layout or the
// mismatched review layout. The default format is xlsx.
func (h *ImportHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	file, err := h.processService.GetProcessed(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	mode := gstr2b.ExportMatched
	rows := file.ProcessedRows
	suffix := "matched"
	switch c.DefaultQuery("rows", "matched") {
	case "matched":
	case "mismatched":
		mode = gstr2b.ExportMismatched
		rows = file.MismatchedRows
		suffix = "mismatched"
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_ROWS", "rows must be matched or mismatched")
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		wb, err := gstr2b.WriteWorkbook("Tally Import", rows, mode)
		if err != nil {
			HandleError(c, err)
			return
		}
		defer func() { _ = wb.Close() }()

		var buf bytes.Buffer
		if err := wb.Write(&buf); err != nil {
			HandleError(c, err)
			return
		}

		name := fmt.Sprintf("%s-%s-%s.xlsx", csvexport.SanitizeFilename(file.Company), suffix, file.ID)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	case "csv":
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf, mode)
		if err := w.WriteHeader(); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteRows(rows); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}

		name := csvexport.BuildFilename(file.Company, suffix)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
	}
}
