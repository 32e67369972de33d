// file: internal/services/types.go
package services

import (
	"io"

	"fresherjobs/internal/models"
)

// ===============================
// AUTH TYPES
// ===============================

// RegisterRequest carries a new account registration
type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=320"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"required"`

	// Company details, required when registering as a recruiter
	CompanyName        string  `json:"company_name,omitempty" validate:"omitempty,max=150"`
	CompanyWebsite     *string `json:"company_website,omitempty" validate:"omitempty,url"`
	CompanyLocation    *string `json:"company_location,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// ===============================
// JOB TYPES
// ===============================

// CreateJobRequest carries a new posting from a recruiter
type CreateJobRequest struct {
	RecruiterID        int64          `json:"-"`
	CategoryID         *int64         `json:"category_id,omitempty"`
	Title              string         `json:"title" validate:"required,max=200"`
	Description        string         `json:"description" validate:"required"`
	SkillsRequired     *string        `json:"skills_required,omitempty"`
	JobType            models.JobType `json:"job_type" validate:"required"`
	ExperienceRequired int            `json:"experience_required" validate:"min=0"`
	GraduationYear     *int           `json:"graduation_year,omitempty"`
	SalaryMin          *int64         `json:"salary_min,omitempty"`
	SalaryMax          *int64         `json:"salary_max,omitempty"`
	Location           *string        `json:"location,omitempty"`
	ExpiresAt          *string        `json:"expires_at,omitempty"` // YYYY-MM-DD
}

// UpdateJobRequest carries edits to an existing posting
type UpdateJobRequest struct {
	RecruiterID        int64          `json:"-"`
	JobID              int64          `json:"-"`
	CategoryID         *int64         `json:"category_id,omitempty"`
	Title              string         `json:"title" validate:"required,max=200"`
	Description        string         `json:"description" validate:"required"`
	SkillsRequired     *string        `json:"skills_required,omitempty"`
	JobType            models.JobType `json:"job_type" validate:"required"`
	ExperienceRequired int            `json:"experience_required" validate:"min=0"`
	GraduationYear     *int           `json:"graduation_year,omitempty"`
	SalaryMin          *int64         `json:"salary_min,omitempty"`
	SalaryMax          *int64         `json:"salary_max,omitempty"`
	Location           *string        `json:"location,omitempty"`
	ExpiresAt          *string        `json:"expires_at,omitempty"` // YYYY-MM-DD
}

// ListJobsRequest filters the public listing
type ListJobsRequest struct {
	Keyword    string         `json:"keyword,omitempty"`
	Location   string         `json:"location,omitempty"`
	JobType    models.JobType `json:"job_type,omitempty"`
	CategoryID *int64         `json:"category_id,omitempty"`
	Limit      int            `json:"limit,omitempty"`
	Offset     int            `json:"offset,omitempty"`
}

// CreateCategoryRequest carries a new job category
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

// ===============================
// APPLICATION TYPES
// ===============================

// ApplyRequest carries a job application from a seeker
type ApplyRequest struct {
	UserID      int64   `json:"-"`
	JobID       int64   `json:"-"`
	ResumeURL   *string `json:"resume_url,omitempty"`
	CoverLetter *string `json:"cover_letter,omitempty"`
}

// UpdateStatusRequest carries a recruiter's status decision
type UpdateStatusRequest struct {
	RecruiterID   int64            `json:"-"`
	ApplicationID int64            `json:"-"`
	Status        models.AppStatus `json:"status" validate:"required"`
}

// ===============================
// PROFILE TYPES
// ===============================

// UpdateProfileRequest carries fresher profile fields
type UpdateProfileRequest struct {
	UserID         int64    `json:"-"`
	CollegeName    *string  `json:"college_name,omitempty"`
	Degree         *string  `json:"degree,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	CGPA           *float64 `json:"cgpa,omitempty" validate:"omitempty,min=0,max=10"`
	Skills         *string  `json:"skills,omitempty"`
	About          *string  `json:"about,omitempty"`
}

// UpdateCompanyRequest carries recruiter company fields
type UpdateCompanyRequest struct {
	UserID      int64   `json:"-"`
	CompanyName string  `json:"company_name" validate:"required,max=150"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ===============================
// FILE TYPES
// ===============================

// FileUploadRequest carries an upload destined for blob storage
type FileUploadRequest struct {
	UserID      int64
	UserEmail   string
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// FileUploadResult describes a stored file
type FileUploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Size     int64  `json:"size"`
	Format   string `json:"format,omitempty"`
}

// ===============================
// EMAIL TYPES
// ===============================

// SendEmailRequest is a rendered outbound message
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
