// file: internal/services/email_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"fresherjobs/internal/config"
	"fresherjobs/internal/models"

	"go.uber.org/zap"
)

// EmailSender delivers a rendered message. The default implementation
// logs the send; a real SMTP or API sender plugs in behind the same
// interface.
type EmailSender interface {
	Send(ctx context.Context, req *SendEmailRequest) error
}

// logSender writes outbound mail to the log instead of the wire
type logSender struct {
	logger *zap.Logger
}

func (l *logSender) Send(ctx context.Context, req *SendEmailRequest) error {
	l.logger.Info("Sending email",
		zap.String("to", req.To),
		zap.String("subject", req.Subject),
	)
	return nil
}

// emailService implements EmailService. Every send runs on its own
// goroutine; a failed or panicking send is logged and never surfaces
// to the workflow that triggered it.
type emailService struct {
	sender EmailSender
	logger *zap.Logger
	config *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(sender EmailSender, logger *zap.Logger, cfg *config.EmailConfig) EmailService {
	if sender == nil {
		sender = &logSender{logger: logger}
	}
	return &emailService{
		sender: sender,
		logger: logger,
		config: cfg,
	}
}

// SendWelcomeEmail greets a newly registered account
func (s *emailService) SendWelcomeEmail(user *models.User) {
	body := s.wrap(fmt.Sprintf(`
		<h2 style="color:#111827;">Welcome to %s, %s!</h2>
		<p>Your account has been created as a <strong>%s</strong>.</p>
		%s
		<p>Good luck out there!</p>`,
		s.config.FromName, user.Name, roleLabel(user.Role), welcomeExtra(user)))

	s.dispatch(user.Email, fmt.Sprintf("Welcome to %s", s.config.FromName), body)
}

// SendRecruiterApprovedEmail tells a recruiter the gate is open
func (s *emailService) SendRecruiterApprovedEmail(user *models.User) {
	body := s.wrap(fmt.Sprintf(`
		<h2 style="color:#059669;">You're approved!</h2>
		<p>Hi %s, your recruiter account has been approved by our team.</p>
		<p>You can now sign in and start posting fresher jobs.</p>`,
		user.Name))

	s.dispatch(user.Email, "Your recruiter account is approved", body)
}

// SendApplicationReceivedEmail tells a recruiter a candidate applied
func (s *emailService) SendApplicationReceivedEmail(app *models.Application) {
	body := s.wrap(fmt.Sprintf(`
		<h2 style="color:#111827;">New application for %s</h2>
		<p><strong>%s</strong> (%s) just applied to your posting at %s.</p>
		<p>Sign in to review the application.</p>`,
		app.JobTitle, app.ApplicantName, app.ApplicantEmail, app.CompanyName))

	s.dispatch(app.RecruiterEmail, fmt.Sprintf("New application: %s", app.JobTitle), body)
}

// SendApplicationSubmittedEmail confirms the submission to the applicant
func (s *emailService) SendApplicationSubmittedEmail(app *models.Application) {
	body := s.wrap(fmt.Sprintf(`
		<h2 style="color:#111827;">Application submitted</h2>
		<p>Hi %s, your application for <strong>%s</strong> at %s has been
		received.</p>
		<p>We will notify you as soon as the recruiter reviews it.</p>`,
		app.ApplicantName, app.JobTitle, app.CompanyName))

	s.dispatch(app.ApplicantEmail, fmt.Sprintf("Application Submitted: %s", app.JobTitle), body)
}

// SendStatusUpdateEmail tells an applicant their status changed. The
// banner colors track the decision.
func (s *emailService) SendStatusUpdateEmail(app *models.Application) {
	bg, border, accent := statusColors(app.Status)

	body := s.wrap(fmt.Sprintf(`
		<div style="background:%s;border:1px solid %s;border-radius:8px;padding:16px;">
			<h2 style="color:%s;margin-top:0;">Application update</h2>
			<p>Hi %s, your application for <strong>%s</strong> at %s is now:</p>
			<p style="font-size:18px;font-weight:bold;color:%s;">%s</p>
		</div>`,
		bg, border, accent, app.ApplicantName, app.JobTitle, app.CompanyName,
		accent, app.Status))

	s.dispatch(app.ApplicantEmail, fmt.Sprintf("Update on your %s application", app.JobTitle), body)
}

// SendPasswordResetEmail mails the single-use reset link
func (s *emailService) SendPasswordResetEmail(user *models.User, token string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)

	body := s.wrap(fmt.Sprintf(`
		<h2 style="color:#111827;">Password reset</h2>
		<p>Hi %s, someone requested a password reset for your account.</p>
		<p><a href="%s" style="color:#4f46e5;">Reset your password</a></p>
		<p>The link is valid for one hour and can be used once. If this
		wasn't you, you can ignore this email.</p>`,
		user.Name, resetURL))

	s.dispatch(user.Email, "Reset your password", body)
}

// ===============================
// DELIVERY
// ===============================

// dispatch hands the message to the sender on a fresh goroutine
func (s *emailService) dispatch(to, subject, html string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Email send panicked",
					zap.Any("panic", r),
					zap.String("to", to),
					zap.String("subject", subject),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.sender.Send(ctx, &SendEmailRequest{To: to, Subject: subject, HTML: html}); err != nil {
			s.logger.Error("Failed to send email",
				zap.Error(err),
				zap.String("to", to),
				zap.String("subject", subject),
			)
		}
	}()
}

func (s *emailService) wrap(inner string) string {
	return fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;color:#374151;">
			%s
			<hr style="border:none;border-top:1px solid #e5e7eb;margin-top:24px;">
			<p style="font-size:12px;color:#9ca3af;">%s</p>
		</div>`, inner, s.config.FromName)
}

// statusColors maps a decision to its banner palette
func statusColors(status models.AppStatus) (bg, border, accent string) {
	switch status {
	case models.StatusHired:
		return "#ecfdf5", "#a7f3d0", "#059669"
	case models.StatusShortlisted:
		return "#fffbeb", "#fde68a", "#d97706"
	case models.StatusRejected:
		return "#fef2f2", "#fecaca", "#dc2626"
	default:
		return "#f5f3ff", "#ddd6fe", "#4f46e5"
	}
}

func roleLabel(role models.Role) string {
	switch role {
	case models.RoleRecruiter:
		return "recruiter"
	case models.RoleJobSeeker:
		return "job seeker"
	default:
		return "member"
	}
}

func welcomeExtra(user *models.User) string {
	if user.Role == models.RoleRecruiter && !user.IsApproved {
		return `<p>Your account is pending admin approval. We will email you
			as soon as you can start posting jobs.</p>`
	}
	return ""
}
