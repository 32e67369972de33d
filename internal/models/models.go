// file: internal/models/models.go
package models

import (
	"time"
)

// ===============================
// ENUMS
// ===============================

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleJobSeeker Role = "JOB_SEEKER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleJobSeeker:
		return true
	}
	return false
}

// AppStatus is the review state of a job application.
type AppStatus string

const (
	StatusApplied     AppStatus = "APPLIED"
	StatusShortlisted AppStatus = "SHORTLISTED"
	StatusHired       AppStatus = "HIRED"
	StatusRejected    AppStatus = "REJECTED"
)

// NotifType distinguishes delivery channels for notifications.
type NotifType string

const (
	NotifInApp NotifType = "IN_APP"
)

// JobType is the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeContract   JobType = "CONTRACT"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents an account in any of the three roles.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required,max=100"`
	Email        string `json:"email" db:"email" validate:"required,email,max=320"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role" validate:"required"`

	// Recruiters start unapproved and are gated by an admin.
	IsApproved bool `json:"is_approved" db:"is_approved"`

	// Password reset, single use.
	ResetToken          *string    `json:"-" db:"reset_token"`
	ResetTokenExpiresAt *time.Time `json:"-" db:"reset_token_expires_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Company is the 1:1 employer profile owned by a recruiter user.
type Company struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id" validate:"required"`
	CompanyName string  `json:"company_name" db:"company_name" validate:"required,max=150"`
	Website     *string `json:"website,omitempty" db:"website" validate:"omitempty,url"`
	Location    *string `json:"location,omitempty" db:"location"`
	Description *string `json:"description,omitempty" db:"description"`
	LogoURL     *string `json:"logo_url,omitempty" db:"logo_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FresherProfile is the 1:1 candidate profile owned by a job seeker,
// created lazily on first write.
type FresherProfile struct {
	ID             int64    `json:"id" db:"id"`
	UserID         int64    `json:"user_id" db:"user_id" validate:"required"`
	CollegeName    *string  `json:"college_name,omitempty" db:"college_name"`
	Degree         *string  `json:"degree,omitempty" db:"degree"`
	GraduationYear *int     `json:"graduation_year,omitempty" db:"graduation_year"`
	CGPA           *float64 `json:"cgpa,omitempty" db:"cgpa"`
	Skills         *string  `json:"skills,omitempty" db:"skills"`
	ResumeURL      *string  `json:"resume_url,omitempty" db:"resume_url"`
	ProfilePhoto   *string  `json:"profile_photo,omitempty" db:"profile_photo"`
	About          *string  `json:"about,omitempty" db:"about"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// JobCategory is an independent reference entity jobs may point at.
type JobCategory struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" db:"description"`
}

// Job is a fresher posting owned by a company. ExperienceRequired is
// constrained to 0 or 1 at both the service and schema level.
type Job struct {
	ID                 int64   `json:"id" db:"id"`
	CompanyID          int64   `json:"company_id" db:"company_id"`
	CategoryID         *int64  `json:"category_id,omitempty" db:"category_id"`
	Title              string  `json:"title" db:"title" validate:"required,max=200"`
	Description        string  `json:"description" db:"description" validate:"required"`
	SkillsRequired     *string `json:"skills_required,omitempty" db:"skills_required"`
	JobType            JobType `json:"job_type" db:"job_type"`
	ExperienceRequired int     `json:"experience_required" db:"experience_required" validate:"min=0"`
	GraduationYear     *int    `json:"graduation_year,omitempty" db:"graduation_year"`
	SalaryMin          *int64  `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax          *int64  `json:"salary_max,omitempty" db:"salary_max"`
	Location           *string `json:"location,omitempty" db:"location"`

	// IsActive flips true->false exactly once, via the daily expiry sweep.
	IsActive  bool       `json:"is_active" db:"is_active"`
	PostedAt  time.Time  `json:"posted_at" db:"posted_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`

	// Joined fields (not in jobs table)
	CompanyName    *string `json:"company_name,omitempty" db:"-"`
	CompanyLogoURL *string `json:"company_logo_url,omitempty" db:"-"`
	CompanyWebsite *string `json:"company_website,omitempty" db:"-"`
	CategoryName   *string `json:"category_name,omitempty" db:"-"`
}

// Application links one job seeker to one job; the (user, job) pair is unique.
type Application struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	JobID       int64     `json:"job_id" db:"job_id"`
	ResumeURL   *string   `json:"resume_url,omitempty" db:"resume_url"`
	CoverLetter *string   `json:"cover_letter,omitempty" db:"cover_letter"`
	Status      AppStatus `json:"status" db:"status"`
	AppliedAt   time.Time `json:"applied_at" db:"applied_at"`

	// Joined fields (not in applications table)
	JobTitle       string `json:"job_title,omitempty" db:"-"`
	CompanyName    string `json:"company_name,omitempty" db:"-"`
	ApplicantName  string `json:"applicant_name,omitempty" db:"-"`
	ApplicantEmail string `json:"applicant_email,omitempty" db:"-"`
	RecruiterID    int64  `json:"-" db:"-"`
	RecruiterName  string `json:"-" db:"-"`
	RecruiterEmail string `json:"-" db:"-"`

	// Applicant profile fields, merged in from fresher_profiles.
	ApplicantPhoto *string  `json:"applicant_photo,omitempty" db:"-"`
	CollegeName    *string  `json:"college_name,omitempty" db:"-"`
	Degree         *string  `json:"degree,omitempty" db:"-"`
	GraduationYear *int     `json:"graduation_year,omitempty" db:"-"`
	CGPA           *float64 `json:"cgpa,omitempty" db:"-"`
	Skills         *string  `json:"skills,omitempty" db:"-"`
	About          *string  `json:"about,omitempty" db:"-"`
}

// Notification is an in-app message persisted as a workflow side effect.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Type      NotifType `json:"type" db:"type"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
