package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tallymap/internal/domain"
	"tallymap/internal/handler"
	"tallymap/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newImportHandler() (*handler.ImportHandler, *mocks.MockImportService, *mocks.MockProcessService) {
	importSvc := new(mocks.MockImportService)
	processSvc := new(mocks.MockProcessService)
	h := handler.NewImportHandler(importSvc, processSvc)
	return h, importSvc, processSvc
}

func TestImportHandler_Process_Success(t *testing.T) {
	h, _, processSvc := newImportHandler()

	batchID := uuid.New()
	file := &domain.ProcessedFile{
		ID:             batchID,
		Company:        "Acme Pvt Ltd",
		ProcessedRows:  []domain.LedgerRow{{SerialNo: 1}, {SerialNo: 3}},
		MismatchedRows: []domain.LedgerRow{{SerialNo: 2}},
	}
	processSvc.On("Process", mock.Anything, batchID).Return(file, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/gstr2b-imports/"+batchID.String()+"/process", nil)
	c.Params = gin.Params{{Key: "id", Value: batchID.String()}}

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["processed"])
	assert.Equal(t, float64(1), data["mismatched"])
	processSvc.AssertExpectations(t)
}

func TestImportHandler_Process_EmptyBatchIsNoOp(t *testing.T) {
	h, _, processSvc := newImportHandler()

	batchID := uuid.New()
	processSvc.On("Process", mock.Anything, batchID).Return(nil, domain.ErrEmptyBatch)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/gstr2b-imports/"+batchID.String()+"/process", nil)
	c.Params = gin.Params{{Key: "id", Value: batchID.String()}}

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "no rows to process", data["message"])
}

func TestImportHandler_Process_InvalidID(t *testing.T) {
	h, _, processSvc := newImportHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/gstr2b-imports/nope/process", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	processSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestImportHandler_GetProcessed_NotFound(t *testing.T) {
	h, _, processSvc := newImportHandler()

	batchID := uuid.New()
	processSvc.On("GetProcessed", mock.Anything, batchID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/gstr2b-imports/"+batchID.String()+"/processed", nil)
	c.Params = gin.Params{{Key: "id", Value: batchID.String()}}

	h.GetProcessed(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestImportHandler_Export_StreamsWorkbook(t *testing.T) {
	h, _, processSvc := newImportHandler()

	batchID := uuid.New()
	file := &domain.ProcessedFile{
		ID:      batchID,
		Company: "Acme Pvt Ltd",
		ProcessedRows: []domain.LedgerRow{{
			SerialNo:     1,
			VchType:      domain.VoucherTypePurchase,
			SupplierDrCr: domain.SupplierCredit,
			ChangeMode:   domain.ChangeModeAccInv,
		}},
	}
	processSvc.On("GetProcessed", mock.Anything, batchID).Return(file, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/gstr2b-imports/"+batchID.String()+"/processed/export?rows=matched", nil)
	c.Params = gin.Params{{Key: "id", Value: batchID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "matched")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestImportHandler_Export_RejectsUnknownRowsParam(t *testing.T) {
	h, _, processSvc := newImportHandler()

	batchID := uuid.New()
	processSvc.On("GetProcessed", mock.Anything, batchID).Return(&domain.ProcessedFile{ID: batchID}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/gstr2b-imports/"+batchID.String()+"/processed/export?rows=bogus", nil)
	c.Params = gin.Params{{Key: "id", Value: batchID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportHandler_UploadB2B_MissingCompanyID(t *testing.T) {
	h, importSvc, _ := newImportHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/gstr2b-imports/b2b", nil)

	h.UploadB2B(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	importSvc.AssertNotCalled(t, "UploadB2B", mock.Anything, mock.Anything)
}

func TestImportHandler_ListByCompany_Summarizes(t *testing.T) {
	h, importSvc, _ := newImportHandler()

	companyID := uuid.New()
	batches := []domain.ImportBatch{
		{ID: uuid.New(), CompanyID: companyID, SheetName: "B2B", Rows: make([]domain.ImportedRow, 3)},
	}
	importSvc.On("ListByCompany", mock.Anything, companyID).Return(batches, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/gstr2b-imports/company/"+companyID.String(), nil)
	c.Params = gin.Params{{Key: "companyId", Value: companyID.String()}}

	h.ListByCompany(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp.Data.([]interface{})
	require.Len(t, list, 1)
	first := list[0].(map[string]interface{})
	assert.Equal(t, float64(3), first["row_count"])
	_, hasRows := first["rows"]
	assert.False(t, hasRows)
}
