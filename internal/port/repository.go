package port

import (
	"context"

	"github.com/google/uuid"

	"tallymap/internal/domain"
)

// CompanyRepository defines the contract for company master persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StateCodeRepository defines the contract for the GST state-code reference
// table. The table is seeded once when empty and never auto-mutated
// afterward.
type StateCodeRepository interface {
	LoadAll(ctx context.Context) ([]domain.StateCode, error)
	EnsureSeeded(ctx context.Context) error
}

// ImportRepository defines the contract for GSTR-2B import batch
// persistence. Batches are immutable after creation.
type ImportRepository interface {
	Create(ctx context.Context, batch *domain.ImportBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.ImportBatch, error)
	// ListPage returns batches in storage order for sweep processing.
	ListPage(ctx context.Context, offset, limit int) ([]domain.ImportBatch, error)
}

// ProcessedFileRepository defines the contract for derived processing
// artifacts, keyed 1:1 by the originating batch ID.
type ProcessedFileRepository interface {
	// Upsert creates the artifact or replaces it in place for its batch ID.
	Upsert(ctx context.Context, file *domain.ProcessedFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProcessedFile, error)
}
