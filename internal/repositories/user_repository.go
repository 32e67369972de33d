// file: internal/repositories/user_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fresherjobs/internal/database"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// userRepository implements UserRepository over the users table
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.role, u.is_approved,
	u.reset_token, u.reset_token_expires_at, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.IsApproved,
		&user.ResetToken, &user.ResetTokenExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ===============================
// BASIC CRUD OPERATIONS
// ===============================

// Create inserts a new user and fills in the generated fields
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, is_approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.IsApproved,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if r.IsUniqueViolation(err) {
			return err
		}
		r.GetLogger().Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return nil
}

// CreateWithCompany inserts a recruiter and their company profile in
// one transaction. Neither row survives if the other insert fails.
func (r *userRepository) CreateWithCompany(ctx context.Context, user *models.User, company *models.Company) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (name, email, password_hash, role, is_approved)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowContext(
			ctx, query,
			user.Name, user.Email, user.PasswordHash, user.Role, user.IsApproved,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if r.IsUniqueViolation(err) {
				return err
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		company.UserID = user.ID
		companyQuery := `
			INSERT INTO companies (user_id, company_name, website, location, description, logo_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`

		err = tx.QueryRowContext(
			ctx, companyQuery,
			company.UserID, company.CompanyName, company.Website,
			company.Location, company.Description, company.LogoURL,
		).Scan(&company.ID, &company.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		r.GetLogger().Info("Recruiter created with company",
			zap.Int64("user_id", user.ID),
			zap.Int64("company_id", company.ID),
		)
		return nil
	})
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUser(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (for authentication)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`

	user, err := scanUser(r.QueryRowContext(ctx, query, email))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByResetToken retrieves a user by their active password reset token
func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.reset_token = $1`

	user, err := scanUser(r.QueryRowContext(ctx, query, token))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return user, nil
}

// List returns all users, newest first
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.created_at DESC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListByRole returns every user holding the given role, newest first
func (r *userRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.role = $1
		ORDER BY u.created_at DESC`

	rows, err := r.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListPendingRecruiters returns recruiters awaiting admin approval
func (r *userRepository) ListPendingRecruiters(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.role = $1 AND u.is_approved = false
		ORDER BY u.created_at ASC`

	rows, err := r.QueryContext(ctx, query, models.RoleRecruiter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending recruiters: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update writes the mutable account fields
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			name = $2, email = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, user.ID, user.Name, user.Email).
		Scan(&user.UpdatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// SetApproved flips the recruiter approval gate
func (r *userRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	query := `
		UPDATE users SET is_approved = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.ExecContext(ctx, query, id, approved)
	if err != nil {
		return fmt.Errorf("failed to set approval: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}

	r.GetLogger().Info("Recruiter approval updated",
		zap.Int64("user_id", id),
		zap.Bool("approved", approved),
	)
	return nil
}

// SetResetToken stores a fresh password reset token, replacing any prior one
func (r *userRepository) SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	query := `
		UPDATE users SET
			reset_token = $2, reset_token_expires_at = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.ExecContext(ctx, query, id, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword writes a new password hash and clears the reset token
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE users SET
			password_hash = $2, reset_token = NULL,
			reset_token_expires_at = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ===============================
// CASCADING DELETE
// ===============================

// DeleteWithDependents removes the account and everything owned by it.
// Job seekers lose their profile, applications and notifications;
// recruiters additionally lose their company, its jobs and the
// applications on those jobs.
func (r *userRepository) DeleteWithDependents(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		statements := []struct {
			query string
			args  []interface{}
		}{
			{`DELETE FROM applications WHERE job_id IN (
				SELECT j.id FROM jobs j
				JOIN companies c ON c.id = j.company_id
				WHERE c.user_id = $1)`, []interface{}{id}},
			{`DELETE FROM jobs WHERE company_id IN (
				SELECT id FROM companies WHERE user_id = $1)`, []interface{}{id}},
			{`DELETE FROM companies WHERE user_id = $1`, []interface{}{id}},
			{`DELETE FROM applications WHERE user_id = $1`, []interface{}{id}},
			{`DELETE FROM fresher_profiles WHERE user_id = $1`, []interface{}{id}},
			{`DELETE FROM notifications WHERE user_id = $1`, []interface{}{id}},
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
				return fmt.Errorf("failed to delete user dependents: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}

		r.GetLogger().Info("User deleted with dependents", zap.Int64("user_id", id))
		return nil
	})
}
