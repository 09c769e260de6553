package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tallymap/internal/domain"
	"tallymap/internal/port"
)

type stateCodeRepo struct {
	db *sqlx.DB
}

// NewStateCodeRepo creates a new PostgreSQL-backed StateCodeRepository.
func NewStateCodeRepo(db *sqlx.DB) port.StateCodeRepository {
	return &stateCodeRepo{db: db}
}

func (r *stateCodeRepo) LoadAll(ctx context.Context) ([]domain.StateCode, error) {
	var codes []domain.StateCode
	err := r.db.SelectContext(ctx, &codes,
		"SELECT * FROM state_codes ORDER BY gst_code")
	if err != nil {
		return nil, fmt.Errorf("stateCodeRepo.LoadAll: %w", err)
	}
	return codes, nil
}

// EnsureSeeded inserts the fixed reference table when the store is empty.
// Once seeded the table is never auto-mutated again.
func (r *stateCodeRepo) EnsureSeeded(ctx context.Context) error {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM state_codes"); err != nil {
		return fmt.Errorf("stateCodeRepo.EnsureSeeded count: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("stateCodeRepo.EnsureSeeded begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, seed := range stateCodeSeed {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO state_codes (state_name, gst_code) VALUES ($1, $2)",
			seed.StateName, seed.GSTCode)
		if err != nil {
			return fmt.Errorf("stateCodeRepo.EnsureSeeded insert %s: %w", seed.GSTCode, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("stateCodeRepo.EnsureSeeded commit: %w", err)
	}
	return nil
}

// stateCodeSeed is the fixed GST jurisdiction table: Indian states and
// union territories plus the two administrative catch-alls 97 and 99.
var stateCodeSeed = []domain.StateCode{
	{StateName: "Jammu & Kashmir", GSTCode: "01"},
	{StateName: "Himachal Pradesh", GSTCode: "02"},
	{StateName: "Punjab", GSTCode: "03"},
	{StateName: "Chandigarh", GSTCode: "04"},
	{StateName: "Uttarakhand", GSTCode: "05"},
	{StateName: "Haryana", GSTCode: "06"},
	{StateName: "Delhi", GSTCode: "07"},
	{StateName: "Rajasthan", GSTCode: "08"},
	{StateName: "Uttar Pradesh", GSTCode: "09"},
	{StateName: "Bihar", GSTCode: "10"},
	{StateName: "Sikkim", GSTCode: "11"},
	{StateName: "Arunachal Pradesh", GSTCode: "12"},
	{StateName: "Nagaland", GSTCode: "13"},
	{StateName: "Manipur", GSTCode: "14"},
	{StateName: "Mizoram", GSTCode: "15"},
	{StateName: "Tripura", GSTCode: "16"},
	{StateName: "Meghalaya", GSTCode: "17"},
	{StateName: "Assam", GSTCode: "18"},
	{StateName: "West Bengal", GSTCode: "19"},
	{StateName: "Jharkhand", GSTCode: "20"},
	{StateName: "Odisha", GSTCode: "21"},
	{StateName: "Chhattisgarh", GSTCode: "22"},
	{StateName: "Madhya Pradesh", GSTCode: "23"},
	{StateName: "Gujarat", GSTCode: "24"},
	{StateName: "Daman & Diu", GSTCode: "25"},
	{StateName: "Dadra & Nagar Haveli", GSTCode: "26"},
	{StateName: "Maharashtra", GSTCode: "27"},
	{StateName: "Andhra Pradesh (Old)", GSTCode: "28"},
	{StateName: "Karnataka", GSTCode: "29"},
	{StateName: "Goa", GSTCode: "30"},
	{StateName: "Lakshadweep", GSTCode: "31"},
	{StateName: "Kerala", GSTCode: "32"},
	{StateName: "Tamil Nadu", GSTCode: "33"},
	{StateName: "Puducherry", GSTCode: "34"},
	{StateName: "Andaman & Nicobar Islands", GSTCode: "35"},
	{StateName: "Telangana", GSTCode: "36"},
	{StateName: "Andhra Pradesh (Newly Added)", GSTCode: "37"},
	{StateName: "Ladakh (Newly Added)", GSTCode: "38"},
	{StateName: "Others Territory", GSTCode: "97"},
	{StateName: "Center Jurisdiction", GSTCode: "99"},
}
