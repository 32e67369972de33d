// file: internal/services/application_service_test.go
package services

import (
	"context"
	"testing"

	"fresherjobs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type applicationFixture struct {
	svc       ApplicationService
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	profiles  *fakeProfileRepo
	jobs      *fakeJobRepo
	apps      *fakeApplicationRepo
	email     *recordingEmail

	seeker    *models.User
	recruiter *models.User
	company   *models.Company
	job       *models.Job
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		users:     newFakeUserRepo(),
		companies: newFakeCompanyRepo(),
		profiles:  newFakeProfileRepo(),
		jobs:      newFakeJobRepo(),
		apps:      newFakeApplicationRepo(),
		email:     &recordingEmail{},
	}
	f.apps.profiles = f.profiles
	f.svc = NewApplicationService(f.apps, f.jobs, f.companies, f.users, f.email, zap.NewNop())

	f.seeker = f.users.add(&models.User{
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Role:  models.RoleJobSeeker,
	})
	f.recruiter = f.users.add(&models.User{
		Name:       "Ravi Kumar",
		Email:      "ravi@acme.com",
		Role:       models.RoleRecruiter,
		IsApproved: true,
	})
	f.company = f.companies.add(&models.Company{
		UserID:      f.recruiter.ID,
		CompanyName: "Acme Hiring",
	})
	f.job = f.jobs.add(&models.Job{
		CompanyID: f.company.ID,
		Title:     "Junior Backend Engineer",
		IsActive:  true,
	})
	return f
}

func TestApplyHappyPath(t *testing.T) {
	f := newApplicationFixture()
	resume := "https://cdn.example.com/asha-resume.pdf"

	app, err := f.svc.Apply(context.Background(), &ApplyRequest{
		UserID:    f.seeker.ID,
		JobID:     f.job.ID,
		ResumeURL: &resume,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApplied, app.Status)
	require.NotNil(t, app.ResumeURL)
	assert.Equal(t, resume, *app.ResumeURL)

	require.Len(t, f.apps.notifications, 1)
	notif := f.apps.notifications[0]
	assert.Equal(t, f.recruiter.ID, notif.UserID, "the recruiter is notified")
	assert.Contains(t, notif.Message, "Asha Verma")
	assert.Contains(t, notif.Message, "Junior Backend Engineer")

	assert.Len(t, f.email.received, 1, "the recruiter gets a new-application notice")
	assert.Len(t, f.email.submitted, 1, "the applicant gets a submission confirmation")
}

func TestApplyShowsProfileResumeWithoutRewritingRow(t *testing.T) {
	f := newApplicationFixture()
	profileResume := "https://cdn.example.com/profile-resume.pdf"
	require.NoError(t, f.profiles.Upsert(context.Background(), &models.FresherProfile{
		UserID:    f.seeker.ID,
		ResumeURL: &profileResume,
	}))

	app, err := f.svc.Apply(context.Background(), &ApplyRequest{
		UserID: f.seeker.ID,
		JobID:  f.job.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, app.ResumeURL, "the view substitutes the profile resume")
	assert.Equal(t, profileResume, *app.ResumeURL)

	// The substitution is display only; the stored row keeps what was
	// submitted, which here was nothing.
	stored := f.apps.apps[app.ID]
	require.NotNil(t, stored)
	assert.Nil(t, stored.ResumeURL)
}

func TestListMyApplicationsMergesProfileFields(t *testing.T) {
	f := newApplicationFixture()
	college := "IIT Delhi"
	cgpa := 8.7
	require.NoError(t, f.profiles.Upsert(context.Background(), &models.FresherProfile{
		UserID:      f.seeker.ID,
		CollegeName: &college,
		CGPA:        &cgpa,
	}))

	_, err := f.svc.Apply(context.Background(), &ApplyRequest{UserID: f.seeker.ID, JobID: f.job.ID})
	require.NoError(t, err)

	apps, err := f.svc.ListMyApplications(context.Background(), f.seeker.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].CollegeName)
	assert.Equal(t, college, *apps[0].CollegeName)
	require.NotNil(t, apps[0].CGPA)
	assert.Equal(t, cgpa, *apps[0].CGPA)
}

func TestApplyWithoutAnyResume(t *testing.T) {
	f := newApplicationFixture()

	app, err := f.svc.Apply(context.Background(), &ApplyRequest{
		UserID: f.seeker.ID,
		JobID:  f.job.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, app.ResumeURL, "applications without a resume are allowed")
}

func TestApplyTwiceConflicts(t *testing.T) {
	f := newApplicationFixture()

	_, err := f.svc.Apply(context.Background(), &ApplyRequest{UserID: f.seeker.ID, JobID: f.job.ID})
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), &ApplyRequest{UserID: f.seeker.ID, JobID: f.job.ID})
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "CONFLICT", svcErr.Type)
	assert.Equal(t, "ALREADY_APPLIED", svcErr.Code)
}

func TestApplyLosingInsertRaceConflicts(t *testing.T) {
	f := newApplicationFixture()

	// The pre-check sees nothing but the unique index rejects the
	// insert, as when two requests race.
	f.apps.forceDuplicate = true

	_, err := f.svc.Apply(context.Background(), &ApplyRequest{UserID: f.seeker.ID, JobID: f.job.ID})
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "CONFLICT", svcErr.Type)
	assert.Equal(t, "ALREADY_APPLIED", svcErr.Code)
}

func TestApplyToInactiveJob(t *testing.T) {
	f := newApplicationFixture()
	f.job.IsActive = false

	_, err := f.svc.Apply(context.Background(), &ApplyRequest{UserID: f.seeker.ID, JobID: f.job.ID})
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "INVALID_STATE", svcErr.Type)
	assert.Equal(t, "JOB_INACTIVE", svcErr.Code)
}

func TestApplyRejectsNonSeeker(t *testing.T) {
	f := newApplicationFixture()

	_, err := f.svc.Apply(context.Background(), &ApplyRequest{UserID: f.recruiter.ID, JobID: f.job.ID})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)
}

func TestListJobApplicationsOwnershipGate(t *testing.T) {
	f := newApplicationFixture()

	outsider := f.users.add(&models.User{
		Name:       "Other Recruiter",
		Email:      "other@globex.com",
		Role:       models.RoleRecruiter,
		IsApproved: true,
	})
	f.companies.add(&models.Company{UserID: outsider.ID, CompanyName: "Globex"})

	_, err := f.svc.ListJobApplications(context.Background(), outsider.ID, f.job.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)

	apps, err := f.svc.ListJobApplications(context.Background(), f.recruiter.ID, f.job.ID)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestUpdateStatusNotifiesApplicant(t *testing.T) {
	f := newApplicationFixture()
	app := f.apps.add(&models.Application{
		UserID:      f.seeker.ID,
		JobID:       f.job.ID,
		Status:      models.StatusApplied,
		JobTitle:    f.job.Title,
		CompanyName: f.company.CompanyName,
		RecruiterID: f.recruiter.ID,
	})

	updated, err := f.svc.UpdateStatus(context.Background(), &UpdateStatusRequest{
		RecruiterID:   f.recruiter.ID,
		ApplicationID: app.ID,
		Status:        models.StatusShortlisted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, updated.Status)

	require.Len(t, f.apps.notifications, 1)
	notif := f.apps.notifications[0]
	assert.Equal(t, f.seeker.ID, notif.UserID, "the applicant is notified")
	assert.Contains(t, notif.Message, "shortlisted")
	assert.Contains(t, notif.Message, f.job.Title)

	assert.Len(t, f.email.status, 1)
}

func TestStatusMessageVariants(t *testing.T) {
	title := "Junior Backend Engineer"

	assert.Equal(t,
		"Congratulations! You have been shortlisted for: Junior Backend Engineer",
		buildStatusMessage(title, models.StatusShortlisted))
	assert.Equal(t,
		"Great news! You have been hired for: Junior Backend Engineer",
		buildStatusMessage(title, models.StatusHired))
	assert.Equal(t,
		"We regret to inform you that your application for Junior Backend Engineer was not selected.",
		buildStatusMessage(title, models.StatusRejected))
	assert.Equal(t,
		"Your application status for Junior Backend Engineer has been updated to: APPLIED",
		buildStatusMessage(title, models.StatusApplied))
}

func TestUpdateStatusForeignApplicationForbidden(t *testing.T) {
	f := newApplicationFixture()
	app := f.apps.add(&models.Application{
		UserID:      f.seeker.ID,
		JobID:       f.job.ID,
		Status:      models.StatusApplied,
		RecruiterID: f.recruiter.ID,
	})

	_, err := f.svc.UpdateStatus(context.Background(), &UpdateStatusRequest{
		RecruiterID:   f.recruiter.ID + 100,
		ApplicationID: app.ID,
		Status:        models.StatusHired,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newApplicationFixture()

	_, err := f.svc.UpdateStatus(context.Background(), &UpdateStatusRequest{
		RecruiterID:   f.recruiter.ID,
		ApplicationID: 1,
		Status:        models.AppStatus("ON_HOLD"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", GetServiceError(err).Type)
}
