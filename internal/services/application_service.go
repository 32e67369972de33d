// file: internal/services/application_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// applicationService implements ApplicationService
type applicationService struct {
	appRepo      repositories.ApplicationRepository
	jobRepo      repositories.JobRepository
	companyRepo  repositories.CompanyRepository
	userRepo     repositories.UserRepository
	emailService EmailService
	logger       *zap.Logger
	validate     *validator.Validate
}

// NewApplicationService creates a new application service
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	emailService EmailService,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		appRepo:      appRepo,
		jobRepo:      jobRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
		validate:     validator.New(),
	}
}

// ===============================
// APPLY WORKFLOW
// ===============================

// Apply submits a job seeker's application. The application insert and
// the recruiter's notification land in one transaction; the two
// confirmation emails go out afterwards without blocking the response.
func (s *applicationService) Apply(ctx context.Context, req *ApplyRequest) (*models.Application, error) {
	seeker, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, NewInternalError("failed to look up account")
	}
	if seeker == nil {
		return nil, EntityNotFoundError("user", req.UserID)
	}
	if seeker.Role != models.RoleJobSeeker {
		return nil, NewForbiddenError("only job seekers can apply")
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, NewInternalError("failed to look up job")
	}
	if job == nil {
		return nil, EntityNotFoundError("job", req.JobID)
	}
	if !job.IsActive {
		return nil, NewInvalidStateError("job is no longer accepting applications", "JOB_INACTIVE")
	}

	applied, err := s.appRepo.HasApplied(ctx, req.UserID, req.JobID)
	if err != nil {
		return nil, NewInternalError("failed to check existing application")
	}
	if applied {
		return nil, NewConflictError("you have already applied to this job", "ALREADY_APPLIED")
	}

	// The row stores exactly what was submitted; when no resume came
	// along the applicant's profile resume is merged in at read time.
	app := &models.Application{
		UserID:      req.UserID,
		JobID:       req.JobID,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
		Status:      models.StatusApplied,
	}

	company, err := s.companyRepo.GetByID(ctx, job.CompanyID)
	if err != nil || company == nil {
		return nil, NewInternalError("failed to look up hiring company")
	}

	notif := &models.Notification{
		UserID:  company.UserID,
		Message: fmt.Sprintf("%s applied to %s", seeker.Name, job.Title),
		Type:    models.NotifInApp,
	}

	if err := s.appRepo.CreateWithNotification(ctx, app, notif); err != nil {
		// The unique (user, job) index catches the racing duplicate the
		// pre-check above could not see.
		if repositories.IsUniqueViolation(err) {
			return nil, NewConflictError("you have already applied to this job", "ALREADY_APPLIED")
		}
		return nil, NewInternalError("failed to submit application")
	}

	enriched, err := s.appRepo.GetByID(ctx, app.ID)
	if err == nil && enriched != nil {
		s.emailService.SendApplicationReceivedEmail(enriched)
		s.emailService.SendApplicationSubmittedEmail(enriched)
		return enriched, nil
	}

	return app, nil
}

// ListMyApplications returns the seeker's applications with job context
func (s *applicationService) ListMyApplications(ctx context.Context, userID int64) ([]*models.Application, error) {
	apps, err := s.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list applications")
	}
	return apps, nil
}

// ===============================
// REVIEW WORKFLOW
// ===============================

// ListJobApplications returns a posting's applications to its owner
func (s *applicationService) ListJobApplications(ctx context.Context, recruiterID, jobID int64) ([]*models.Application, error) {
	if err := s.requireJobOwner(ctx, recruiterID, jobID); err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, NewInternalError("failed to list applications")
	}
	return apps, nil
}

// UpdateStatus records the recruiter's decision on an application. The
// status change and the applicant's notification land in one
// transaction; the applicant's email follows without blocking.
func (s *applicationService) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*models.Application, error) {
	if !validStatus(req.Status) {
		return nil, NewValidationError("invalid application status", nil)
	}

	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, NewInternalError("failed to look up application")
	}
	if app == nil {
		return nil, EntityNotFoundError("application", req.ApplicationID)
	}
	if app.RecruiterID != req.RecruiterID {
		return nil, NewForbiddenError("application belongs to another company's job")
	}

	notif := &models.Notification{
		UserID:  app.UserID,
		Message: buildStatusMessage(app.JobTitle, req.Status),
		Type:    models.NotifInApp,
	}

	if err := s.appRepo.UpdateStatusWithNotification(ctx, app.ID, req.Status, notif); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, EntityNotFoundError("application", req.ApplicationID)
		}
		return nil, NewInternalError("failed to update application status")
	}

	app.Status = req.Status
	s.emailService.SendStatusUpdateEmail(app)

	return app, nil
}

// ===============================
// HELPERS
// ===============================

func (s *applicationService) requireJobOwner(ctx context.Context, recruiterID, jobID int64) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return NewInternalError("failed to look up job")
	}
	if job == nil {
		return EntityNotFoundError("job", jobID)
	}

	company, err := s.companyRepo.GetByUserID(ctx, recruiterID)
	if err != nil {
		return NewInternalError("failed to look up company")
	}
	if company == nil || job.CompanyID != company.ID {
		return NewForbiddenError("job belongs to another company")
	}
	return nil
}

// buildStatusMessage words the applicant's notification by decision
func buildStatusMessage(jobTitle string, status models.AppStatus) string {
	switch status {
	case models.StatusShortlisted:
		return fmt.Sprintf("Congratulations! You have been shortlisted for: %s", jobTitle)
	case models.StatusHired:
		return fmt.Sprintf("Great news! You have been hired for: %s", jobTitle)
	case models.StatusRejected:
		return fmt.Sprintf("We regret to inform you that your application for %s was not selected.", jobTitle)
	default:
		return fmt.Sprintf("Your application status for %s has been updated to: %s", jobTitle, status)
	}
}

func validStatus(status models.AppStatus) bool {
	switch status {
	case models.StatusApplied, models.StatusShortlisted,
		models.StatusHired, models.StatusRejected:
		return true
	}
	return false
}
