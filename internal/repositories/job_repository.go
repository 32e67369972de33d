// file: internal/repositories/job_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fresherjobs/internal/database"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// jobRepository implements JobRepository over the jobs table
type jobRepository struct {
	*BaseRepository
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *database.Manager, logger *zap.Logger) JobRepository {
	return &jobRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const jobColumns = `
	j.id, j.company_id, j.category_id, j.title, j.description,
	j.skills_required, j.job_type, j.experience_required, j.graduation_year,
	j.salary_min, j.salary_max, j.location, j.is_active, j.posted_at, j.expires_at,
	c.company_name, c.logo_url, c.website, cat.name`

const jobJoins = `
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
	LEFT JOIN job_categories cat ON cat.id = j.category_id`

func scanJob(row interface{ Scan(...interface{}) error }) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.CategoryID, &job.Title, &job.Description,
		&job.SkillsRequired, &job.JobType, &job.ExperienceRequired,
		&job.GraduationYear, &job.SalaryMin, &job.SalaryMax, &job.Location,
		&job.IsActive, &job.PostedAt, &job.ExpiresAt,
		&job.CompanyName, &job.CompanyLogoURL, &job.CompanyWebsite,
		&job.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func collectJobs(rows *sql.Rows) ([]*models.Job, error) {
	var jobs []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ===============================
// BASIC CRUD OPERATIONS
// ===============================

// Create inserts a new job posting
func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (
			company_id, category_id, title, description, skills_required,
			job_type, experience_required, graduation_year,
			salary_min, salary_max, location, is_active, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, posted_at`

	err := r.QueryRowContext(
		ctx, query,
		job.CompanyID, job.CategoryID, job.Title, job.Description,
		job.SkillsRequired, job.JobType, job.ExperienceRequired,
		job.GraduationYear, job.SalaryMin, job.SalaryMax, job.Location,
		job.IsActive, job.ExpiresAt,
	).Scan(&job.ID, &job.PostedAt)

	if err != nil {
		r.GetLogger().Error("Failed to create job",
			zap.Error(err),
			zap.Int64("company_id", job.CompanyID),
		)
		return fmt.Errorf("failed to create job: %w", err)
	}

	r.GetLogger().Info("Job created",
		zap.Int64("job_id", job.ID),
		zap.Int64("company_id", job.CompanyID),
	)
	return nil
}

// GetByID retrieves a job with its company and category joined in
func (r *jobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + jobJoins + ` WHERE j.id = $1`

	job, err := scanJob(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return job, nil
}

// Update writes the mutable posting fields
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	query := `
		UPDATE jobs SET
			category_id = $2, title = $3, description = $4,
			skills_required = $5, job_type = $6, experience_required = $7,
			graduation_year = $8, salary_min = $9, salary_max = $10,
			location = $11, is_active = $12, expires_at = $13
		WHERE id = $1`

	result, err := r.ExecContext(
		ctx, query,
		job.ID, job.CategoryID, job.Title, job.Description,
		job.SkillsRequired, job.JobType, job.ExperienceRequired,
		job.GraduationYear, job.SalaryMin, job.SalaryMax, job.Location,
		job.IsActive, job.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ===============================
// LISTING QUERIES
// ===============================

// ListActive returns active postings newest first, optionally filtered
func (r *jobRepository) ListActive(ctx context.Context, filter JobFilter) ([]*models.Job, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "j.is_active = true")

	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(j.title ILIKE $%d OR j.description ILIKE $%d OR j.skills_required ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Keyword+"%")
		argIndex++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("j.location ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Location+"%")
		argIndex++
	}
	if filter.JobType != "" {
		conditions = append(conditions, fmt.Sprintf("j.job_type = $%d", argIndex))
		args = append(args, filter.JobType)
		argIndex++
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("j.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	query := `SELECT ` + jobColumns + jobJoins +
		` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY j.posted_at DESC`

	// Pagination is opt-in; the unpaged listing returns every active
	// posting.
	if filter.Limit > 0 {
		limit := filter.Limit
		if limit > 100 {
			limit = 100
		}
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListByCompany returns every posting owned by a company, active or not
func (r *jobRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + jobJoins +
		` WHERE j.company_id = $1 ORDER BY j.posted_at DESC`

	rows, err := r.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by company: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListAll returns every posting for the admin view
func (r *jobRepository) ListAll(ctx context.Context) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + jobJoins + ` ORDER BY j.posted_at DESC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ===============================
// MAINTENANCE OPERATIONS
// ===============================

// DeactivateExpired deactivates every active job whose expiry has passed.
// Running it twice for the same day changes nothing on the second run.
func (r *jobRepository) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE jobs SET is_active = false
		WHERE is_active = true AND expires_at IS NOT NULL AND expires_at < $1`

	result, err := r.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired jobs: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected > 0 {
		r.GetLogger().Info("Expired jobs deactivated",
			zap.Int64("count", affected),
			zap.Time("before", before),
		)
	}
	return affected, nil
}

// DeleteWithApplications removes a job and its applications atomically
func (r *jobRepository) DeleteWithApplications(ctx context.Context, jobID int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM applications WHERE job_id = $1`, jobID); err != nil {
			return fmt.Errorf("failed to delete job applications: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
		if err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}

		r.GetLogger().Info("Job deleted with applications", zap.Int64("job_id", jobID))
		return nil
	})
}
