// file: internal/services/interface.go
package services

import (
	"context"

	"fresherjobs/internal/models"
)

// ===============================
// CORE SERVICE INTERFACES
// ===============================

// AuthService defines registration, login and password recovery
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

// UserService defines account-level operations
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProfileService defines fresher profile and recruiter company management
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.FresherProfile, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.FresherProfile, error)
	UploadResume(ctx context.Context, userID int64, file *FileUploadRequest) (*models.FresherProfile, error)
	UploadProfilePhoto(ctx context.Context, userID int64, file *FileUploadRequest) (*models.FresherProfile, error)

	GetCompany(ctx context.Context, userID int64) (*models.Company, error)
	UpdateCompany(ctx context.Context, req *UpdateCompanyRequest) (*models.Company, error)
	UploadCompanyLogo(ctx context.Context, userID int64, file *FileUploadRequest) (*models.Company, error)
}

// JobService defines posting management and the public listing
type JobService interface {
	CreateJob(ctx context.Context, req *CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, req *UpdateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, req *ListJobsRequest) ([]*models.Job, error)
	ListMyJobs(ctx context.Context, recruiterID int64) ([]*models.Job, error)
	DeleteJob(ctx context.Context, recruiterID, jobID int64) error

	ListCategories(ctx context.Context) ([]*models.JobCategory, error)

	// DeactivateExpired is the daily sweep entry point.
	DeactivateExpired(ctx context.Context) (int64, error)
}

// ApplicationService defines the apply and review workflows
type ApplicationService interface {
	Apply(ctx context.Context, req *ApplyRequest) (*models.Application, error)
	ListMyApplications(ctx context.Context, userID int64) ([]*models.Application, error)
	ListJobApplications(ctx context.Context, recruiterID, jobID int64) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*models.Application, error)
}

// AdminService defines platform administration
type AdminService interface {
	ListRecruiters(ctx context.Context) ([]*models.User, error)
	ListPendingRecruiters(ctx context.Context) ([]*models.User, error)
	ApproveRecruiter(ctx context.Context, recruiterID int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	ListAllJobs(ctx context.Context) ([]*models.Job, error)
	RemoveJob(ctx context.Context, jobID int64) error
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.JobCategory, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// NotificationService defines in-app notification access
type NotificationService interface {
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// FileService defines blob storage operations
type FileService interface {
	UploadResume(ctx context.Context, req *FileUploadRequest) (*FileUploadResult, error)
	UploadProfilePhoto(ctx context.Context, req *FileUploadRequest) (*FileUploadResult, error)
	UploadCompanyLogo(ctx context.Context, req *FileUploadRequest) (*FileUploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error

	// DeleteUserAssets removes every stored file slot of an account.
	// Best effort: failures are logged, never returned.
	DeleteUserAssets(ctx context.Context, email string)
}

// EmailService defines outbound mail. Sends never block or fail the
// workflow that triggered them.
type EmailService interface {
	SendWelcomeEmail(user *models.User)
	SendRecruiterApprovedEmail(user *models.User)
	SendApplicationReceivedEmail(app *models.Application)
	SendApplicationSubmittedEmail(app *models.Application)
	SendStatusUpdateEmail(app *models.Application)
	SendPasswordResetEmail(user *models.User, token string)
}
