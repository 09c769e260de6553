package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tallymap/internal/domain"
	"tallymap/internal/port"
)

type processedFileRepo struct {
	db *sqlx.DB
}

// NewProcessedFileRepo creates a new PostgreSQL-backed
// ProcessedFileRepository.
func NewProcessedFileRepo(db *sqlx.DB) port.ProcessedFileRepository {
	return &processedFileRepo{db: db}
}

// Upsert writes the artifact keyed by its batch ID, replacing any previous
// run's output atomically. Reprocessing the same batch is idempotent.
func (r *processedFileRepo) Upsert(ctx context.Context, file *domain.ProcessedFile) error {
	snapshot, err := json.Marshal(file.CompanySnapshot)
	if err != nil {
		return fmt.Errorf("processedFileRepo.Upsert marshal snapshot: %w", err)
	}
	processed, err := json.Marshal(file.ProcessedRows)
	if err != nil {
		return fmt.Errorf("processedFileRepo.Upsert marshal processed rows: %w", err)
	}
	mismatched, err := json.Marshal(file.MismatchedRows)
	if err != nil {
		return fmt.Errorf("processedFileRepo.Upsert marshal mismatched rows: %w", err)
	}

	query := `INSERT INTO processed_files
		(id, company, company_snapshot, processed_rows, mismatched_rows, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			company = EXCLUDED.company,
			company_snapshot = EXCLUDED.company_snapshot,
			processed_rows = EXCLUDED.processed_rows,
			mismatched_rows = EXCLUDED.mismatched_rows,
			processed_at = EXCLUDED.processed_at`

	_, err = r.db.ExecContext(ctx, query,
		file.ID, file.Company, snapshot, processed, mismatched, file.ProcessedAt)
	if err != nil {
		return fmt.Errorf("processedFileRepo.Upsert: %w", err)
	}
	return nil
}

func (r *processedFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProcessedFile, error) {
	var rec domain.ProcessedFileRecord
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM processed_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("processedFileRepo.GetByID: %w", err)
	}

	file := &domain.ProcessedFile{
		ID:          rec.ID,
		Company:     rec.Company,
		ProcessedAt: rec.ProcessedAt,
	}
	if len(rec.CompanySnapshot) > 0 {
		if err := json.Unmarshal(rec.CompanySnapshot, &file.CompanySnapshot); err != nil {
			return nil, fmt.Errorf("decoding processed file %s snapshot: %w", rec.ID, err)
		}
	}
	if len(rec.ProcessedRows) > 0 {
		if err := json.Unmarshal(rec.ProcessedRows, &file.ProcessedRows); err != nil {
			return nil, fmt.Errorf("decoding processed file %s rows: %w", rec.ID, err)
		}
	}
	if len(rec.MismatchedRows) > 0 {
		if err := json.Unmarshal(rec.MismatchedRows, &file.MismatchedRows); err != nil {
			return nil, fmt.Errorf("decoding processed file %s mismatched rows: %w", rec.ID, err)
		}
	}
	return file, nil
}
