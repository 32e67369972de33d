// file: internal/repositories/company_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"fresherjobs/internal/database"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// companyRepository implements CompanyRepository over the companies table
type companyRepository struct {
	*BaseRepository
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *database.Manager, logger *zap.Logger) CompanyRepository {
	return &companyRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

func scanCompany(row interface{ Scan(...interface{}) error }) (*models.Company, error) {
	var company models.Company
	err := row.Scan(
		&company.ID, &company.UserID, &company.CompanyName,
		&company.Website, &company.Location, &company.Description,
		&company.LogoURL, &company.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Create inserts a company profile for a recruiter
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (user_id, company_name, website, location, description, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.QueryRowContext(
		ctx, query,
		company.UserID, company.CompanyName, company.Website,
		company.Location, company.Description, company.LogoURL,
	).Scan(&company.ID, &company.CreatedAt)

	if err != nil {
		if r.IsUniqueViolation(err) {
			return err
		}
		r.GetLogger().Error("Failed to create company",
			zap.Error(err),
			zap.Int64("user_id", company.UserID),
		)
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by its ID
func (r *companyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `
		SELECT id, user_id, company_name, website, location, description, logo_url, created_at
		FROM companies WHERE id = $1`

	company, err := scanCompany(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by ID: %w", err)
	}
	return company, nil
}

// GetByUserID retrieves the company owned by a recruiter
func (r *companyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	query := `
		SELECT id, user_id, company_name, website, location, description, logo_url, created_at
		FROM companies WHERE user_id = $1`

	company, err := scanCompany(r.QueryRowContext(ctx, query, userID))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by user ID: %w", err)
	}
	return company, nil
}

// Update writes the mutable company fields
func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies SET
			company_name = $2, website = $3, location = $4,
			description = $5, logo_url = $6
		WHERE id = $1`

	result, err := r.ExecContext(
		ctx, query,
		company.ID, company.CompanyName, company.Website,
		company.Location, company.Description, company.LogoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
