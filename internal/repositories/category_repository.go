// file: internal/repositories/category_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"fresherjobs/internal/database"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// categoryRepository implements CategoryRepository over the job_categories table
type categoryRepository struct {
	*BaseRepository
}

// NewCategoryRepository creates a new job category repository
func NewCategoryRepository(db *database.Manager, logger *zap.Logger) CategoryRepository {
	return &categoryRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a new category
func (r *categoryRepository) Create(ctx context.Context, category *models.JobCategory) error {
	query := `
		INSERT INTO job_categories (name, description)
		VALUES ($1, $2)
		RETURNING id`

	err := r.QueryRowContext(ctx, query, category.Name, category.Description).
		Scan(&category.ID)
	if err != nil {
		if r.IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.JobCategory, error) {
	query := `SELECT id, name, description FROM job_categories WHERE id = $1`

	var category models.JobCategory
	err := r.QueryRowContext(ctx, query, id).
		Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}
	return &category, nil
}

// List returns all categories in name order
func (r *categoryRepository) List(ctx context.Context) ([]*models.JobCategory, error) {
	query := `SELECT id, name, description FROM job_categories ORDER BY name ASC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.JobCategory
	for rows.Next() {
		var category models.JobCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

// Delete removes a category. Jobs pointing at it keep a NULL category.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM job_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}

	r.GetLogger().Info("Category deleted", zap.Int64("category_id", id))
	return nil
}
