package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"tallymap/internal/config"
	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
	"tallymap/internal/port"
)

// ImportUploadInput is the DTO for uploading a GSTR-2B workbook.
type ImportUploadInput struct {
	CompanyID uuid.UUID
	FileName  string
	File      io.Reader
}

// ImportService defines the GSTR-2B upload and retrieval contract.
type ImportService interface {
	UploadB2B(ctx context.Context, input ImportUploadInput) (*domain.ImportBatch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.ImportBatch, error)
}

type importService struct {
	imports   port.ImportRepository
	companies port.CompanyRepository
	storage   port.ObjectStorage
	s3cfg     *config.S3Config
}

// NewImportService creates a new ImportService implementation. storage may
// be nil when workbook archiving is disabled.
func NewImportService(
	imports port.ImportRepository,
	companies port.CompanyRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) ImportService {
	return &importService{imports: imports, companies: companies, storage: storage, s3cfg: s3cfg}
}

// UploadB2B parses the B2B sheet of the uploaded workbook and persists a
// new immutable import batch carrying a frozen snapshot of the company's
// profile. The source workbook is archived to object storage best-effort;
// archive failures never fail the import.
func (s *importService) UploadB2B(ctx context.Context, input ImportUploadInput) (*domain.ImportBatch, error) {
	if input.File == nil {
		return nil, domain.ErrMissingFile
	}
	ext := strings.ToLower(filepath.Ext(input.FileName))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, domain.ErrUnsupportedFileType
	}

	company, err := s.companies.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrUnsupportedFileType
	}
	defer func() { _ = wb.Close() }()

	rows, err := gstr2b.ParseWorkbook(wb)
	if err != nil {
		return nil, err
	}

	batch := &domain.ImportBatch{
		ID:              uuid.New(),
		CompanyID:       company.ID,
		CompanySnapshot: domain.SnapshotOf(company),
		SheetName:       gstr2b.SheetName,
		Rows:            rows,
		SourceFileName:  input.FileName,
		UploadedAt:      time.Now().UTC(),
	}

	if s.storage != nil && s.s3cfg != nil && s.s3cfg.Enabled {
		key := fmt.Sprintf("gstr2b/%s/%s%s", company.ID, batch.ID, ext)
		_, upErr := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(data),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Size:        int64(len(data)),
		})
		if upErr != nil {
			log.Printf("importService.UploadB2B: archiving workbook for batch %s: %v", batch.ID, upErr)
		} else {
			batch.StorageKey = key
		}
	}

	if err := s.imports.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *importService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	return s.imports.GetByID(ctx, id)
}

func (s *importService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.ImportBatch, error) {
	return s.imports.ListByCompany(ctx, companyID)
}
