// file: internal/services/profile_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// profileService implements ProfileService for both fresher profiles
// and recruiter company profiles
type profileService struct {
	profileRepo repositories.ProfileRepository
	companyRepo repositories.CompanyRepository
	userRepo    repositories.UserRepository
	fileService FileService
	logger      *zap.Logger
	validate    *validator.Validate
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo repositories.ProfileRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	fileService FileService,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		fileService: fileService,
		logger:      logger,
		validate:    validator.New(),
	}
}

// ===============================
// FRESHER PROFILE
// ===============================

// GetProfile returns the seeker's profile. An empty profile comes back
// for accounts that never wrote one.
func (s *profileService) GetProfile(ctx context.Context, userID int64) (*models.FresherProfile, error) {
	if err := s.requireRole(ctx, userID, models.RoleJobSeeker); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to look up profile")
	}
	if profile == nil {
		return &models.FresherProfile{UserID: userID}, nil
	}
	return profile, nil
}

// UpdateProfile writes profile fields, creating the row on first write
func (s *profileService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.FresherProfile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid profile request", err)
	}
	if err := s.requireRole(ctx, req.UserID, models.RoleJobSeeker); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, NewInternalError("failed to look up profile")
	}
	if profile == nil {
		profile = &models.FresherProfile{UserID: req.UserID}
	}

	profile.CollegeName = req.CollegeName
	profile.Degree = req.Degree
	profile.GraduationYear = req.GraduationYear
	profile.CGPA = req.CGPA
	profile.Skills = req.Skills
	profile.About = req.About

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, NewInternalError("failed to save profile")
	}
	return profile, nil
}

// UploadResume stores the resume and records its URL on the profile
func (s *profileService) UploadResume(ctx context.Context, userID int64, file *FileUploadRequest) (*models.FresherProfile, error) {
	if err := s.requireFileStorage(); err != nil {
		return nil, err
	}
	user, err := s.requireUser(ctx, userID, models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	file.UserID = userID
	file.UserEmail = user.Email
	result, err := s.fileService.UploadResume(ctx, file)
	if err != nil {
		return nil, err
	}

	return s.attachProfileFile(ctx, userID, func(p *models.FresherProfile) {
		p.ResumeURL = &result.URL
	})
}

// UploadProfilePhoto stores the photo and records its URL on the profile
func (s *profileService) UploadProfilePhoto(ctx context.Context, userID int64, file *FileUploadRequest) (*models.FresherProfile, error) {
	if err := s.requireFileStorage(); err != nil {
		return nil, err
	}
	user, err := s.requireUser(ctx, userID, models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	file.UserID = userID
	file.UserEmail = user.Email
	result, err := s.fileService.UploadProfilePhoto(ctx, file)
	if err != nil {
		return nil, err
	}

	return s.attachProfileFile(ctx, userID, func(p *models.FresherProfile) {
		p.ProfilePhoto = &result.URL
	})
}

func (s *profileService) attachProfileFile(ctx context.Context, userID int64, set func(*models.FresherProfile)) (*models.FresherProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to look up profile")
	}
	if profile == nil {
		profile = &models.FresherProfile{UserID: userID}
	}

	set(profile)

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, NewInternalError("failed to save profile")
	}
	return profile, nil
}

// ===============================
// COMPANY PROFILE
// ===============================

// GetCompany returns the recruiter's company profile
func (s *profileService) GetCompany(ctx context.Context, userID int64) (*models.Company, error) {
	if err := s.requireRole(ctx, userID, models.RoleRecruiter); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to look up company")
	}
	if company == nil {
		return nil, NewNotFoundError("no company profile for this account")
	}
	return company, nil
}

// UpdateCompany writes the recruiter's company fields
func (s *profileService) UpdateCompany(ctx context.Context, req *UpdateCompanyRequest) (*models.Company, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid company request", err)
	}

	company, err := s.GetCompany(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	company.CompanyName = strings.TrimSpace(req.CompanyName)
	company.Website = req.Website
	company.Location = req.Location
	company.Description = req.Description

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFoundError("no company profile for this account")
		}
		return nil, NewInternalError("failed to save company")
	}
	return company, nil
}

// UploadCompanyLogo stores the logo and records its URL on the company
func (s *profileService) UploadCompanyLogo(ctx context.Context, userID int64, file *FileUploadRequest) (*models.Company, error) {
	if err := s.requireFileStorage(); err != nil {
		return nil, err
	}
	user, err := s.requireUser(ctx, userID, models.RoleRecruiter)
	if err != nil {
		return nil, err
	}

	company, err := s.GetCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	file.UserID = userID
	file.UserEmail = user.Email
	result, err := s.fileService.UploadCompanyLogo(ctx, file)
	if err != nil {
		return nil, err
	}

	company.LogoURL = &result.URL
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, NewInternalError("failed to save company")
	}
	return company, nil
}

// ===============================
// HELPERS
// ===============================

func (s *profileService) requireFileStorage() error {
	if s.fileService == nil {
		return NewInvalidStateError("file storage is not configured", "STORAGE_DISABLED")
	}
	return nil
}

func (s *profileService) requireUser(ctx context.Context, userID int64, role models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to look up account")
	}
	if user == nil {
		return nil, EntityNotFoundError("user", userID)
	}
	if user.Role != role {
		return nil, NewForbiddenError("operation not allowed for this role")
	}
	return user, nil
}

func (s *profileService) requireRole(ctx context.Context, userID int64, role models.Role) error {
	_, err := s.requireUser(ctx, userID, role)
	return err
}
