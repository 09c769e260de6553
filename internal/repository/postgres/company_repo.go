package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tallymap/internal/domain"
	"tallymap/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.ID = uuid.New()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `INSERT INTO companies
		(id, company_name, mailing_name, address, state, country, pincode,
		 telephone, mobile, email, tan_number, gstin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		company.ID, company.CompanyName, company.MailingName, company.Address,
		company.State, company.Country, company.Pincode, company.Telephone,
		company.Mobile, company.Email, company.TANNumber, company.GSTIN,
		company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company, "SELECT * FROM companies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.SelectContext(ctx, &companies,
		"SELECT * FROM companies ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("companyRepo.List: %w", err)
	}
	return companies, nil
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	company.UpdatedAt = time.Now().UTC()
	query := `UPDATE companies SET
		company_name = $1, mailing_name = $2, address = $3, state = $4,
		country = $5, pincode = $6, telephone = $7, mobile = $8, email = $9,
		tan_number = $10, gstin = $11, updated_at = $12
		WHERE id = $13`
	result, err := r.db.ExecContext(ctx, query,
		company.CompanyName, company.MailingName, company.Address, company.State,
		company.Country, company.Pincode, company.Telephone, company.Mobile,
		company.Email, company.TANNumber, company.GSTIN, company.UpdatedAt,
		company.ID)
	if err != nil {
		return fmt.Errorf("companyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("companyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
