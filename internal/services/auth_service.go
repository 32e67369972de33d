// file: internal/services/auth_service.go
package services

import (
	"context"
	"strings"
	"time"

	"fresherjobs/internal/config"
	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService
type authService struct {
	userRepo     repositories.UserRepository
	tokens       *TokenManager
	emailService EmailService
	logger       *zap.Logger
	validate     *validator.Validate
	config       *config.AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *TokenManager,
	emailService EmailService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokens:       tokens,
		emailService: emailService,
		logger:       logger,
		validate:     validator.New(),
		config:       cfg,
	}
}

// ===============================
// REGISTRATION
// ===============================

// Register creates a new account. Recruiters start unapproved; when
// company details accompany the registration both rows land in one
// transaction.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid registration request", err)
	}
	if !req.Role.Valid() {
		return nil, NewValidationError("role must be ADMIN, RECRUITER or JOB_SEEKER", nil)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, NewInternalError("failed to check existing account")
	}
	if existing != nil {
		return nil, NewConflictError("an account with this email already exists", "EMAIL_TAKEN")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, NewInternalError("failed to process registration")
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsApproved:   req.Role != models.RoleRecruiter,
	}

	if req.Role == models.RoleRecruiter && strings.TrimSpace(req.CompanyName) != "" {
		company := &models.Company{
			CompanyName: strings.TrimSpace(req.CompanyName),
			Website:     req.CompanyWebsite,
			Location:    req.CompanyLocation,
			Description: req.CompanyDescription,
		}
		err = s.userRepo.CreateWithCompany(ctx, user, company)
	} else {
		err = s.userRepo.Create(ctx, user)
	}
	if err != nil {
		// The unique index on email closes the race two concurrent
		// registrations would otherwise win together.
		if repositories.IsUniqueViolation(err) {
			return nil, NewConflictError("an account with this email already exists", "EMAIL_TAKEN")
		}
		return nil, NewInternalError("failed to create account")
	}

	s.emailService.SendWelcomeEmail(user)

	s.logger.Info("Account registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, NewInternalError("failed to issue token")
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// ===============================
// LOGIN
// ===============================

// Login verifies credentials and issues a bearer token
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid login request", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, NewInternalError("failed to look up account")
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, NewInternalError("failed to issue token")
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// ===============================
// PASSWORD RECOVERY
// ===============================

// ForgotPassword stores a single-use reset token and mails a reset link
func (s *authService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return NewValidationError("invalid request", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return NewInternalError("failed to look up account")
	}
	if user == nil {
		return NewNotFoundError("no account with this email")
	}

	tokenID, err := uuid.NewV4()
	if err != nil {
		return NewInternalError("failed to generate reset token")
	}
	token := tokenID.String()
	expiresAt := time.Now().Add(s.config.ResetTokenExpiry)

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		s.logger.Error("Failed to store reset token", zap.Error(err), zap.Int64("user_id", user.ID))
		return NewInternalError("failed to start password reset")
	}

	s.emailService.SendPasswordResetEmail(user, token)

	s.logger.Info("Password reset requested", zap.Int64("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token and writes a new password
func (s *authService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return NewValidationError("invalid request", err)
	}

	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		return NewInternalError("failed to look up reset token")
	}
	if user == nil {
		return NewInvalidTokenError("unknown reset token")
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return NewExpiredTokenError("reset token has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.config.BCryptCost)
	if err != nil {
		return NewInternalError("failed to process new password")
	}

	// UpdatePassword clears the token, making it single use.
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err), zap.Int64("user_id", user.ID))
		return NewInternalError("failed to reset password")
	}

	s.logger.Info("Password reset completed", zap.Int64("user_id", user.ID))
	return nil
}
