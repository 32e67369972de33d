// file: internal/services/admin_service.go
package services

import (
	"context"
	"database/sql"
	"errors"

	"fresherjobs/internal/cache"
	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// adminService implements AdminService
type adminService struct {
	userRepo     repositories.UserRepository
	jobRepo      repositories.JobRepository
	categoryRepo repositories.CategoryRepository
	notifRepo    repositories.NotificationRepository
	userService  UserService
	emailService EmailService
	cache        cache.Cache
	logger       *zap.Logger
	validate     *validator.Validate
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	categoryRepo repositories.CategoryRepository,
	notifRepo repositories.NotificationRepository,
	userService UserService,
	emailService EmailService,
	c cache.Cache,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		notifRepo:    notifRepo,
		userService:  userService,
		emailService: emailService,
		cache:        c,
		logger:       logger,
		validate:     validator.New(),
	}
}

// ===============================
// RECRUITER APPROVAL
// ===============================

// ListRecruiters returns every recruiter account, approved or not
func (s *adminService) ListRecruiters(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListByRole(ctx, models.RoleRecruiter)
	if err != nil {
		return nil, NewInternalError("failed to list recruiters")
	}
	return users, nil
}

// ListPendingRecruiters returns recruiters awaiting approval
func (s *adminService) ListPendingRecruiters(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListPendingRecruiters(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list pending recruiters")
	}
	return users, nil
}

// ApproveRecruiter opens the platform to a recruiter account. Approving
// an already approved recruiter changes nothing and succeeds.
func (s *adminService) ApproveRecruiter(ctx context.Context, recruiterID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, recruiterID)
	if err != nil {
		return nil, NewInternalError("failed to look up account")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", recruiterID)
	}
	if user.Role != models.RoleRecruiter {
		return nil, NewInvalidStateError("account is not a recruiter", "NOT_A_RECRUITER")
	}
	if user.IsApproved {
		return user, nil
	}

	if err := s.userRepo.SetApproved(ctx, recruiterID, true); err != nil {
		return nil, NewInternalError("failed to approve recruiter")
	}
	user.IsApproved = true

	notif := &models.Notification{
		UserID:  user.ID,
		Message: "Your recruiter account has been approved. You can now post jobs.",
		Type:    models.NotifInApp,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		s.logger.Warn("Failed to create approval notification",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
	}

	s.emailService.SendRecruiterApprovedEmail(user)

	s.logger.Info("Recruiter approved", zap.Int64("user_id", user.ID))
	return user, nil
}

// ===============================
// USER MANAGEMENT
// ===============================

// ListUsers returns every account
func (s *adminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userService.ListUsers(ctx)
}

// DeleteUser removes an account and its dependents
func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userService.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

// ===============================
// JOB MODERATION
// ===============================

// ListAllJobs returns every posting, active or not
func (s *adminService) ListAllJobs(ctx context.Context) ([]*models.Job, error) {
	jobs, err := s.jobRepo.ListAll(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list jobs")
	}
	return jobs, nil
}

// RemoveJob takes down a posting and its applications
func (s *adminService) RemoveJob(ctx context.Context, jobID int64) error {
	if err := s.jobRepo.DeleteWithApplications(ctx, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EntityNotFoundError("job", jobID)
		}
		return NewInternalError("failed to remove job")
	}

	s.invalidateListings(ctx)
	s.logger.Info("Job removed by admin", zap.Int64("job_id", jobID))
	return nil
}

// ===============================
// CATEGORY MANAGEMENT
// ===============================

// CreateCategory adds a job category
func (s *adminService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.JobCategory, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid category request", err)
	}

	category := &models.JobCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, NewConflictError("a category with this name already exists", "CATEGORY_EXISTS")
		}
		return nil, NewInternalError("failed to create category")
	}
	return category, nil
}

// DeleteCategory removes a category; jobs keep a NULL category
func (s *adminService) DeleteCategory(ctx context.Context, categoryID int64) error {
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EntityNotFoundError("category", categoryID)
		}
		return NewInternalError("failed to delete category")
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *adminService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "jobs:*"); err != nil {
		s.logger.Warn("Failed to invalidate job listing cache", zap.Error(err))
	}
}
