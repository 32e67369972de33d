// file: internal/repositories/profile_repository.go
package repositories

import (
	"context"
	"fmt"

	"fresherjobs/internal/database"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// profileRepository implements ProfileRepository over the fresher_profiles table
type profileRepository struct {
	*BaseRepository
}

// NewProfileRepository creates a new fresher profile repository
func NewProfileRepository(db *database.Manager, logger *zap.Logger) ProfileRepository {
	return &profileRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetByUserID retrieves the profile owned by a job seeker
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.FresherProfile, error) {
	query := `
		SELECT id, user_id, college_name, degree, graduation_year, cgpa,
			skills, resume_url, profile_photo, about, updated_at
		FROM fresher_profiles WHERE user_id = $1`

	var profile models.FresherProfile
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.CollegeName, &profile.Degree,
		&profile.GraduationYear, &profile.CGPA, &profile.Skills,
		&profile.ResumeURL, &profile.ProfilePhoto, &profile.About,
		&profile.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by user ID: %w", err)
	}
	return &profile, nil
}

// Upsert creates the profile on first write and updates it on later ones.
// The user_id unique constraint makes concurrent first writes converge.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.FresherProfile) error {
	query := `
		INSERT INTO fresher_profiles (
			user_id, college_name, degree, graduation_year, cgpa,
			skills, resume_url, profile_photo, about
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			college_name = EXCLUDED.college_name,
			degree = EXCLUDED.degree,
			graduation_year = EXCLUDED.graduation_year,
			cgpa = EXCLUDED.cgpa,
			skills = EXCLUDED.skills,
			resume_url = EXCLUDED.resume_url,
			profile_photo = EXCLUDED.profile_photo,
			about = EXCLUDED.about,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		profile.UserID, profile.CollegeName, profile.Degree,
		profile.GraduationYear, profile.CGPA, profile.Skills,
		profile.ResumeURL, profile.ProfilePhoto, profile.About,
	).Scan(&profile.ID, &profile.UpdatedAt)

	if err != nil {
		r.GetLogger().Error("Failed to upsert profile",
			zap.Error(err),
			zap.Int64("user_id", profile.UserID),
		)
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
