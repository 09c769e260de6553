package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tallymap/internal/domain"
	"tallymap/internal/port"
)

type importRepo struct {
	db *sqlx.DB
}

// NewImportRepo creates a new PostgreSQL-backed ImportRepository.
func NewImportRepo(db *sqlx.DB) port.ImportRepository {
	return &importRepo{db: db}
}

func (r *importRepo) Create(ctx context.Context, batch *domain.ImportBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	batch.CreatedAt = time.Now().UTC()

	snapshot, err := json.Marshal(batch.CompanySnapshot)
	if err != nil {
		return fmt.Errorf("importRepo.Create marshal snapshot: %w", err)
	}
	rows, err := json.Marshal(batch.Rows)
	if err != nil {
		return fmt.Errorf("importRepo.Create marshal rows: %w", err)
	}

	query := `INSERT INTO gstr2b_imports
		(id, company_id, company_snapshot, sheet_name, source_rows, source_file_name,
		 storage_key, uploaded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		batch.ID, batch.CompanyID, snapshot, batch.SheetName, rows,
		batch.SourceFileName, batch.StorageKey, batch.UploadedAt, batch.CreatedAt)
	if err != nil {
		return fmt.Errorf("importRepo.Create: %w", err)
	}
	return nil
}

func (r *importRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	var rec domain.ImportBatchRecord
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM gstr2b_imports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("importRepo.GetByID: %w", err)
	}
	return decodeBatch(&rec)
}

func (r *importRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.ImportBatch, error) {
	var recs []domain.ImportBatchRecord
	err := r.db.SelectContext(ctx, &recs,
		"SELECT * FROM gstr2b_imports WHERE company_id = $1 ORDER BY uploaded_at DESC",
		companyID)
	if err != nil {
		return nil, fmt.Errorf("importRepo.ListByCompany: %w", err)
	}
	return decodeBatches(recs)
}

func (r *importRepo) ListPage(ctx context.Context, offset, limit int) ([]domain.ImportBatch, error) {
	var recs []domain.ImportBatchRecord
	err := r.db.SelectContext(ctx, &recs,
		"SELECT * FROM gstr2b_imports ORDER BY created_at LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("importRepo.ListPage: %w", err)
	}
	return decodeBatches(recs)
}

func decodeBatches(recs []domain.ImportBatchRecord) ([]domain.ImportBatch, error) {
	batches := make([]domain.ImportBatch, 0, len(recs))
	for i := range recs {
		batch, err := decodeBatch(&recs[i])
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	return batches, nil
}

func decodeBatch(rec *domain.ImportBatchRecord) (*domain.ImportBatch, error) {
	batch := &domain.ImportBatch{
		ID:             rec.ID,
		CompanyID:      rec.CompanyID,
		SheetName:      rec.SheetName,
		SourceFileName: rec.SourceFileName,
		StorageKey:     rec.StorageKey,
		UploadedAt:     rec.UploadedAt,
		CreatedAt:      rec.CreatedAt,
	}
	if len(rec.CompanySnapshot) > 0 {
		if err := json.Unmarshal(rec.CompanySnapshot, &batch.CompanySnapshot); err != nil {
			return nil, fmt.Errorf("decoding batch %s snapshot: %w", rec.ID, err)
		}
	}
	if len(rec.Rows) > 0 {
		if err := json.Unmarshal(rec.Rows, &batch.Rows); err != nil {
			return nil, fmt.Errorf("decoding batch %s rows: %w", rec.ID, err)
		}
	}
	return batch, nil
}
