package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"tallymap/internal/domain"
	"tallymap/internal/gstr2b"
	"tallymap/internal/port"
)

// sweepPageSize bounds how many batches one sweep query loads at a time.
const sweepPageSize = 100

// SweepFailure records one batch the sweep could not process.
type SweepFailure struct {
	BatchID uuid.UUID `json:"batch_id"`
	Error   string    `json:"error"`
}

// SweepResult summarizes a full reprocessing sweep.
type SweepResult struct {
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Failures  []SweepFailure `json:"failures,omitempty"`
}

// ProcessService runs the GSTR-2B batch processing pipeline.
type ProcessService interface {
	// Process builds and persists the ProcessedFile for one batch.
	Process(ctx context.Context, batchID uuid.UUID) (*domain.ProcessedFile, error)
	// GetProcessed returns the stored artifact for a batch.
	GetProcessed(ctx context.Context, batchID uuid.UUID) (*domain.ProcessedFile, error)
	// ProcessAll sweeps every stored batch in storage order, continuing
	// past per-batch failures.
	ProcessAll(ctx context.Context) (*SweepResult, error)
}

type processService struct {
	imports   port.ImportRepository
	processed port.ProcessedFileRepository
	states    *gstr2b.StateResolver
	builder   *gstr2b.Builder
}

// NewProcessService creates a new ProcessService implementation.
func NewProcessService(
	imports port.ImportRepository,
	processed port.ProcessedFileRepository,
	states *gstr2b.StateResolver,
) ProcessService {
	return &processService{
		imports:   imports,
		processed: processed,
		states:    states,
		builder:   gstr2b.NewBuilder(states),
	}
}

func (s *processService) Process(ctx context.Context, batchID uuid.UUID) (*domain.ProcessedFile, error) {
	batch, err := s.imports.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return s.processBatch(ctx, batch)
}

// processBatch builds one ledger row per imported row in sheet order,
// partitions matched from mismatched, and upserts the artifact keyed by
// the batch ID.
func (s *processService) processBatch(ctx context.Context, batch *domain.ImportBatch) (*domain.ProcessedFile, error) {
	if batch.CompanyID == uuid.Nil {
		return nil, domain.ErrMissingSnapshot
	}
	if len(batch.Rows) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	if err := s.states.Warm(ctx); err != nil {
		return nil, err
	}

	matched := make([]domain.LedgerRow, 0, len(batch.Rows))
	mismatched := make([]domain.LedgerRow, 0)
	for i := range batch.Rows {
		row, isMismatched := s.builder.Build(ctx, &batch.Rows[i], i)
		if isMismatched {
			mismatched = append(mismatched, row)
		} else {
			matched = append(matched, row)
		}
	}

	company := batch.CompanySnapshot.CompanyName
	if company == "" {
		company = "Unknown"
	}

	file := &domain.ProcessedFile{
		ID:              batch.ID,
		Company:         company,
		CompanySnapshot: batch.CompanySnapshot,
		ProcessedRows:   matched,
		MismatchedRows:  mismatched,
		ProcessedAt:     time.Now().UTC(),
	}
	if err := s.processed.Upsert(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *processService) GetProcessed(ctx context.Context, batchID uuid.UUID) (*domain.ProcessedFile, error) {
	return s.processed.GetByID(ctx, batchID)
}

func (s *processService) ProcessAll(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	offset := 0
	for {
		batches, err := s.imports.ListPage(ctx, offset, sweepPageSize)
		if err != nil {
			return result, err
		}
		if len(batches) == 0 {
			break
		}

		for i := range batches {
			batch := &batches[i]
			if _, err := s.processBatch(ctx, batch); err != nil {
				if err == domain.ErrEmptyBatch {
					result.Skipped++
					continue
				}
				log.Printf("processService.ProcessAll: batch %s: %v", batch.ID, err)
				result.Failures = append(result.Failures, SweepFailure{
					BatchID: batch.ID,
					Error:   err.Error(),
				})
				continue
			}
			result.Processed++
		}

		offset += len(batches)
	}
	return result, nil
}
