package repositories

import (
	"context"
	"time"

	"fresherjobs/internal/models"
)

// JobFilter narrows the public job listing.
type JobFilter struct {
	Keyword    string
	Location   string
	JobType    models.JobType
	CategoryID *int64
	Limit      int
	Offset     int
}

// UserRepository manages user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	// CreateWithCompany inserts the user and their company profile in
	// one transaction.
	CreateWithCompany(ctx context.Context, user *models.User, company *models.Company) error

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	ListPendingRecruiters(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetApproved(ctx context.Context, id int64, approved bool) error
	SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// DeleteWithDependents removes the user and every row that hangs off
	// the account (profile, company, jobs, applications, notifications)
	// in a single transaction.
	DeleteWithDependents(ctx context.Context, id int64) error
}

// CompanyRepository manages recruiter company profiles.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
}

// ProfileRepository manages job seeker fresher profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.FresherProfile, error)

	// Upsert creates the profile on first write and updates it afterwards.
	Upsert(ctx context.Context, profile *models.FresherProfile) error
}

// CategoryRepository manages the job category reference data.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.JobCategory) error
	GetByID(ctx context.Context, id int64) (*models.JobCategory, error)
	List(ctx context.Context) ([]*models.JobCategory, error)
	Delete(ctx context.Context, id int64) error
}

// JobRepository manages job postings.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	ListActive(ctx context.Context, filter JobFilter) ([]*models.Job, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*models.Job, error)
	ListAll(ctx context.Context) ([]*models.Job, error)

	// DeactivateExpired flips is_active off for every job whose expiry
	// date has passed. Idempotent; returns the number of rows changed.
	DeactivateExpired(ctx context.Context, before time.Time) (int64, error)

	// DeleteWithApplications removes a job and its applications atomically.
	DeleteWithApplications(ctx context.Context, jobID int64) error
}

// ApplicationRepository manages job applications.
type ApplicationRepository interface {
	// CreateWithNotification inserts the application and the recruiter's
	// in-app notification in one transaction.
	CreateWithNotification(ctx context.Context, app *models.Application, notif *models.Notification) error

	GetByID(ctx context.Context, id int64) (*models.Application, error)
	HasApplied(ctx context.Context, userID, jobID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error)

	// UpdateStatusWithNotification writes the new status and the
	// applicant's in-app notification in one transaction.
	UpdateStatusWithNotification(ctx context.Context, id int64, status models.AppStatus, notif *models.Notification) error
}

// NotificationRepository manages in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notif *models.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}
