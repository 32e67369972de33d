// file: internal/services/user_service.go
package services

import (
	"context"
	"database/sql"
	"errors"

	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"go.uber.org/zap"
)

// userService implements UserService
type userService struct {
	userRepo    repositories.UserRepository
	fileService FileService
	logger      *zap.Logger
}

// NewUserService creates a new user service. fileService may be nil
// when blob storage is not configured.
func NewUserService(userRepo repositories.UserRepository, fileService FileService, logger *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		fileService: fileService,
		logger:      logger,
	}
}

// GetUserByID returns a single account
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to look up account")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", id)
	}
	return user, nil
}

// ListUsers returns all accounts, newest first
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list users")
	}
	return users, nil
}

// DeleteUser removes an account and everything it owns
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return NewInternalError("failed to look up account")
	}
	if user == nil {
		return EntityNotFoundError("user", id)
	}
	if user.Role == models.RoleAdmin {
		return NewForbiddenError("admin accounts cannot be deleted")
	}

	if err := s.userRepo.DeleteWithDependents(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EntityNotFoundError("user", id)
		}
		return NewInternalError("failed to delete account")
	}

	// Stored files live outside the transaction; clean them up best
	// effort once the rows are gone.
	if s.fileService != nil {
		s.fileService.DeleteUserAssets(ctx, user.Email)
	}

	s.logger.Info("Account deleted", zap.Int64("user_id", id))
	return nil
}
