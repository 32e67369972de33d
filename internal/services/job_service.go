// file: internal/services/job_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fresherjobs/internal/cache"
	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxFresherExperience is the most experience a posting on the platform
// may require.
const maxFresherExperience = 1

// jobService implements JobService
type jobService struct {
	jobRepo      repositories.JobRepository
	companyRepo  repositories.CompanyRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
	validate     *validator.Validate
}

// NewJobService creates a new job service
func NewJobService(
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	categoryRepo repositories.CategoryRepository,
	userRepo repositories.UserRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) JobService {
	return &jobService{
		jobRepo:      jobRepo,
		companyRepo:  companyRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
		logger:       logger,
		validate:     validator.New(),
	}
}

// ===============================
// POSTING MANAGEMENT
// ===============================

// CreateJob creates a posting for the recruiter's company. The approval
// gate comes before any look at the fields: an unapproved recruiter is
// turned away no matter what they submitted.
func (s *jobService) CreateJob(ctx context.Context, req *CreateJobRequest) (*models.Job, error) {
	_, company, err := s.requireApprovedRecruiter(ctx, req.RecruiterID)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid job request", err)
	}
	if !validJobType(req.JobType) {
		return nil, NewValidationError("invalid job type", nil)
	}
	if req.ExperienceRequired > maxFresherExperience {
		return nil, NewPolicyViolationError(
			fmt.Sprintf("fresher postings may require at most %d year of experience", maxFresherExperience),
			"EXPERIENCE_LIMIT",
		)
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, NewInternalError("failed to look up category")
		}
		if category == nil {
			return nil, NewNotFoundError("category not found")
		}
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		CompanyID:          company.ID,
		CategoryID:         req.CategoryID,
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		SkillsRequired:     req.SkillsRequired,
		JobType:            req.JobType,
		ExperienceRequired: req.ExperienceRequired,
		GraduationYear:     req.GraduationYear,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		Location:           req.Location,
		IsActive:           true,
		ExpiresAt:          expiresAt,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, NewInternalError("failed to create job")
	}

	s.invalidateListings(ctx)
	return s.GetJob(ctx, job.ID)
}

// UpdateJob edits a posting owned by the recruiter. Every field is
// overwritten except id, postedAt and isActive, which only the expiry
// sweep may flip.
func (s *jobService) UpdateJob(ctx context.Context, req *UpdateJobRequest) (*models.Job, error) {
	job, err := s.requireOwnedJob(ctx, req.RecruiterID, req.JobID)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid job request", err)
	}
	if !validJobType(req.JobType) {
		return nil, NewValidationError("invalid job type", nil)
	}
	if req.ExperienceRequired > maxFresherExperience {
		return nil, NewPolicyViolationError(
			fmt.Sprintf("fresher postings may require at most %d year of experience", maxFresherExperience),
			"EXPERIENCE_LIMIT",
		)
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	job.CategoryID = req.CategoryID
	job.Title = strings.TrimSpace(req.Title)
	job.Description = req.Description
	job.SkillsRequired = req.SkillsRequired
	job.JobType = req.JobType
	job.ExperienceRequired = req.ExperienceRequired
	job.GraduationYear = req.GraduationYear
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.Location = req.Location
	job.ExpiresAt = expiresAt

	if err := s.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, EntityNotFoundError("job", req.JobID)
		}
		return nil, NewInternalError("failed to update job")
	}

	s.invalidateListings(ctx)
	return s.GetJob(ctx, job.ID)
}

// GetJob returns a single posting with company context
func (s *jobService) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to look up job")
	}
	if job == nil {
		return nil, EntityNotFoundError("job", id)
	}
	return job, nil
}

// ListJobs serves the public listing through a short-lived cache
func (s *jobService) ListJobs(ctx context.Context, req *ListJobsRequest) ([]*models.Job, error) {
	key := listingCacheKey(req)

	var cached []*models.Job
	if cache.GetJSON(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	jobs, err := s.jobRepo.ListActive(ctx, repositories.JobFilter{
		Keyword:    req.Keyword,
		Location:   req.Location,
		JobType:    req.JobType,
		CategoryID: req.CategoryID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, NewInternalError("failed to list jobs")
	}

	if err := cache.SetJSON(ctx, s.cache, key, jobs, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache job listing", zap.Error(err))
	}
	return jobs, nil
}

// ListMyJobs returns every posting of the recruiter's company
func (s *jobService) ListMyJobs(ctx context.Context, recruiterID int64) ([]*models.Job, error) {
	company, err := s.companyRepo.GetByUserID(ctx, recruiterID)
	if err != nil {
		return nil, NewInternalError("failed to look up company")
	}
	if company == nil {
		return nil, NewNotFoundError("no company profile for this account")
	}

	jobs, err := s.jobRepo.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, NewInternalError("failed to list jobs")
	}
	return jobs, nil
}

// DeleteJob removes a posting owned by the recruiter, applications included
func (s *jobService) DeleteJob(ctx context.Context, recruiterID, jobID int64) error {
	if _, err := s.requireOwnedJob(ctx, recruiterID, jobID); err != nil {
		return err
	}

	if err := s.jobRepo.DeleteWithApplications(ctx, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EntityNotFoundError("job", jobID)
		}
		return NewInternalError("failed to delete job")
	}

	s.invalidateListings(ctx)
	return nil
}

// ListCategories returns the category reference data
func (s *jobService) ListCategories(ctx context.Context) ([]*models.JobCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list categories")
	}
	return categories, nil
}

// ===============================
// EXPIRY SWEEP
// ===============================

// DeactivateExpired flips off every posting whose expiry date has passed.
// Safe to run repeatedly; only the first run of a day changes rows.
func (s *jobService) DeactivateExpired(ctx context.Context) (int64, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.jobRepo.DeactivateExpired(ctx, today)
	if err != nil {
		return 0, NewInternalError("failed to deactivate expired jobs")
	}
	if count > 0 {
		s.invalidateListings(ctx)
	}
	return count, nil
}

// ===============================
// HELPERS
// ===============================

func (s *jobService) requireApprovedRecruiter(ctx context.Context, userID int64) (*models.User, *models.Company, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, NewInternalError("failed to look up account")
	}
	if user == nil {
		return nil, nil, EntityNotFoundError("user", userID)
	}
	if user.Role != models.RoleRecruiter {
		return nil, nil, NewForbiddenError("only recruiters can manage jobs")
	}
	if !user.IsApproved {
		return nil, nil, NewForbiddenError("recruiter account is pending admin approval")
	}

	company, err := s.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, NewInternalError("failed to look up company")
	}
	if company == nil {
		return nil, nil, NewNotFoundError("no company profile for this account")
	}
	return user, company, nil
}

func (s *jobService) requireOwnedJob(ctx context.Context, recruiterID, jobID int64) (*models.Job, error) {
	_, company, err := s.requireApprovedRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, NewInternalError("failed to look up job")
	}
	if job == nil {
		return nil, EntityNotFoundError("job", jobID)
	}
	if job.CompanyID != company.ID {
		return nil, NewForbiddenError("job belongs to another company")
	}
	return job, nil
}

func (s *jobService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "jobs:*"); err != nil {
		s.logger.Warn("Failed to invalidate job listing cache", zap.Error(err))
	}
}

func listingCacheKey(req *ListJobsRequest) string {
	category := int64(0)
	if req.CategoryID != nil {
		category = *req.CategoryID
	}
	return fmt.Sprintf("jobs:%s:%s:%s:%d:%d:%d",
		strings.ToLower(req.Keyword), strings.ToLower(req.Location),
		req.JobType, category, req.Limit, req.Offset)
}

func validJobType(t models.JobType) bool {
	switch t {
	case models.JobTypeFullTime, models.JobTypePartTime,
		models.JobTypeInternship, models.JobTypeContract:
		return true
	}
	return false
}

// parseExpiry parses the optional YYYY-MM-DD expiry date
func parseExpiry(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, NewValidationError("expires_at must be a YYYY-MM-DD date", err)
	}
	return &t, nil
}
