// file: internal/repositories/application_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"fresherjobs/internal/database"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// applicationRepository implements ApplicationRepository over the applications table
type applicationRepository struct {
	*BaseRepository
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *database.Manager, logger *zap.Logger) ApplicationRepository {
	return &applicationRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// CreateWithNotification inserts the application and the recruiter's
// notification in one transaction. The unique (user_id, job_id) index
// closes the race two concurrent applies would otherwise win together.
func (r *applicationRepository) CreateWithNotification(ctx context.Context, app *models.Application, notif *models.Notification) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO applications (user_id, job_id, resume_url, cover_letter, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, applied_at`

		err := tx.QueryRowContext(
			ctx, query,
			app.UserID, app.JobID, app.ResumeURL, app.CoverLetter, app.Status,
		).Scan(&app.ID, &app.AppliedAt)
		if err != nil {
			if r.IsUniqueViolation(err) {
				return err
			}
			return fmt.Errorf("failed to create application: %w", err)
		}

		if notif != nil {
			notifQuery := `
				INSERT INTO notifications (user_id, message, type)
				VALUES ($1, $2, $3)
				RETURNING id, created_at`

			err = tx.QueryRowContext(
				ctx, notifQuery,
				notif.UserID, notif.Message, notif.Type,
			).Scan(&notif.ID, &notif.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to create application notification: %w", err)
			}
		}

		r.GetLogger().Info("Application created",
			zap.Int64("application_id", app.ID),
			zap.Int64("user_id", app.UserID),
			zap.Int64("job_id", app.JobID),
		)
		return nil
	})
}

// profileColumns are the applicant profile fields merged into every
// enriched application view. The COALESCE substitutes the profile
// resume for display when the application stored none; the row itself
// is never rewritten.
const profileColumns = `
	COALESCE(a.resume_url, fp.resume_url),
	fp.profile_photo, fp.college_name, fp.degree,
	fp.graduation_year, fp.cgpa, fp.skills, fp.about`

// GetByID retrieves an application enriched with the job, the applicant
// with their profile, and the recruiter who owns the posting
func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.cover_letter,
			a.status, a.applied_at,
			j.title, c.company_name,
			u.name, u.email,
			ru.id, ru.name, ru.email,` + profileColumns + `
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		JOIN users u ON u.id = a.user_id
		JOIN users ru ON ru.id = c.user_id
		LEFT JOIN fresher_profiles fp ON fp.user_id = a.user_id
		WHERE a.id = $1`

	var app models.Application
	err := r.QueryRowContext(ctx, query, id).Scan(
		&app.ID, &app.UserID, &app.JobID, &app.CoverLetter,
		&app.Status, &app.AppliedAt,
		&app.JobTitle, &app.CompanyName,
		&app.ApplicantName, &app.ApplicantEmail,
		&app.RecruiterID, &app.RecruiterName, &app.RecruiterEmail,
		&app.ResumeURL,
		&app.ApplicantPhoto, &app.CollegeName, &app.Degree,
		&app.GraduationYear, &app.CGPA, &app.Skills, &app.About,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	return &app, nil
}

// HasApplied reports whether the user already applied to the job
func (r *applicationRepository) HasApplied(ctx context.Context, userID, jobID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`

	var exists bool
	if err := r.QueryRowContext(ctx, query, userID, jobID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return exists, nil
}

// ListByUser returns the job seeker's applications with job and
// profile context joined in
func (r *applicationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Application, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.cover_letter,
			a.status, a.applied_at,
			j.title, c.company_name,` + profileColumns + `
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		LEFT JOIN fresher_profiles fp ON fp.user_id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by user: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		err := rows.Scan(
			&app.ID, &app.UserID, &app.JobID, &app.CoverLetter,
			&app.Status, &app.AppliedAt,
			&app.JobTitle, &app.CompanyName,
			&app.ResumeURL,
			&app.ApplicantPhoto, &app.CollegeName, &app.Degree,
			&app.GraduationYear, &app.CGPA, &app.Skills, &app.About,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

// ListByJob returns a job's applications with applicant and profile
// context joined in
func (r *applicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	query := `
		SELECT
			a.id, a.user_id, a.job_id, a.cover_letter,
			a.status, a.applied_at,
			j.title, c.company_name,
			u.name, u.email,` + profileColumns + `
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		JOIN users u ON u.id = a.user_id
		LEFT JOIN fresher_profiles fp ON fp.user_id = a.user_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		err := rows.Scan(
			&app.ID, &app.UserID, &app.JobID, &app.CoverLetter,
			&app.Status, &app.AppliedAt,
			&app.JobTitle, &app.CompanyName,
			&app.ApplicantName, &app.ApplicantEmail,
			&app.ResumeURL,
			&app.ApplicantPhoto, &app.CollegeName, &app.Degree,
			&app.GraduationYear, &app.CGPA, &app.Skills, &app.About,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

// UpdateStatusWithNotification writes the new status and the applicant's
// notification in one transaction
func (r *applicationRepository) UpdateStatusWithNotification(ctx context.Context, id int64, status models.AppStatus, notif *models.Notification) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE applications SET status = $2 WHERE id = $1`, id, status)
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}

		if notif != nil {
			notifQuery := `
				INSERT INTO notifications (user_id, message, type)
				VALUES ($1, $2, $3)
				RETURNING id, created_at`

			err = tx.QueryRowContext(
				ctx, notifQuery,
				notif.UserID, notif.Message, notif.Type,
			).Scan(&notif.ID, &notif.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to create status notification: %w", err)
			}
		}

		r.GetLogger().Info("Application status updated",
			zap.Int64("application_id", id),
			zap.String("status", string(status)),
		)
		return nil
	})
}
