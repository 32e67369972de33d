// file: internal/services/job_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"fresherjobs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type jobFixture struct {
	svc        JobService
	users      *fakeUserRepo
	companies  *fakeCompanyRepo
	categories *fakeCategoryRepo
	jobs       *fakeJobRepo
	cache      *fakeCache

	recruiter *models.User
	company   *models.Company
}

func newJobFixture() *jobFixture {
	f := &jobFixture{
		users:      newFakeUserRepo(),
		companies:  newFakeCompanyRepo(),
		categories: newFakeCategoryRepo(),
		jobs:       newFakeJobRepo(),
		cache:      newFakeCache(),
	}
	f.svc = NewJobService(f.jobs, f.companies, f.categories, f.users, f.cache, time.Minute, zap.NewNop())

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
	return f
}

func validCreateJob(recruiterID int64) *CreateJobRequest {
	return &CreateJobRequest{
		RecruiterID:        recruiterID,
		Title:              "Junior Backend Engineer",
		Description:        "Build and ship APIs.",
		JobType:            models.JobTypeFullTime,
		ExperienceRequired: 0,
	}
}

func TestCreateJobSucceedsForApprovedRecruiter(t *testing.T) {
	f := newJobFixture()

	job, err := f.svc.CreateJob(context.Background(), validCreateJob(f.recruiter.ID))
	require.NoError(t, err)

	assert.Equal(t, f.company.ID, job.CompanyID)
	assert.True(t, job.IsActive, "new postings start active")
	assert.Contains(t, f.cache.deletedPatterns, "jobs:*", "creating a job invalidates cached listings")
}

func TestCreateJobExperienceLimit(t *testing.T) {
	f := newJobFixture()

	for _, years := range []int{0, 1} {
		req := validCreateJob(f.recruiter.ID)
		req.ExperienceRequired = years
		_, err := f.svc.CreateJob(context.Background(), req)
		require.NoError(t, err, "up to one year of experience is allowed")
	}

	req := validCreateJob(f.recruiter.ID)
	req.ExperienceRequired = 2
	_, err := f.svc.CreateJob(context.Background(), req)
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "POLICY_VIOLATION", svcErr.Type)
	assert.Equal(t, "EXPERIENCE_LIMIT", svcErr.Code)
}

func TestCreateJobRejectsUnapprovedRecruiter(t *testing.T) {
	f := newJobFixture()
	pending := f.users.add(&models.User{
		Name:  "Pending Recruiter",
		Email: "pending@acme.com",
		Role:  models.RoleRecruiter,
	})

	_, err := f.svc.CreateJob(context.Background(), validCreateJob(pending.ID))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)

	// The gate holds even when the fields would fail their own checks:
	// an over-the-limit experience requirement must not leak through as
	// a policy error.
	req := validCreateJob(pending.ID)
	req.ExperienceRequired = 5
	_, err = f.svc.CreateJob(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)
}

func TestCreateJobRejectsJobSeeker(t *testing.T) {
	f := newJobFixture()
	seeker := f.users.add(&models.User{
		Name:       "Asha Verma",
		Email:      "asha@example.com",
		Role:       models.RoleJobSeeker,
		IsApproved: true,
	})

	_, err := f.svc.CreateJob(context.Background(), validCreateJob(seeker.ID))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)
}

func TestCreateJobUnknownCategory(t *testing.T) {
	f := newJobFixture()
	missing := int64(999)

	req := validCreateJob(f.recruiter.ID)
	req.CategoryID = &missing
	_, err := f.svc.CreateJob(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)
}

func TestCreateJobBadExpiryDate(t *testing.T) {
	f := newJobFixture()
	bad := "next tuesday"

	req := validCreateJob(f.recruiter.ID)
	req.ExpiresAt = &bad
	_, err := f.svc.CreateJob(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", GetServiceError(err).Type)
}

func TestUpdateJobOwnership(t *testing.T) {
	f := newJobFixture()

	otherRecruiter := f.users.add(&models.User{
		Name:       "Other Recruiter",
		Email:      "other@globex.com",
		Role:       models.RoleRecruiter,
		IsApproved: true,
	})
	f.companies.add(&models.Company{UserID: otherRecruiter.ID, CompanyName: "Globex"})

	job, err := f.svc.CreateJob(context.Background(), validCreateJob(f.recruiter.ID))
	require.NoError(t, err)

	_, err = f.svc.UpdateJob(context.Background(), &UpdateJobRequest{
		RecruiterID:        otherRecruiter.ID,
		JobID:              job.ID,
		Title:              "Hijacked Title",
		Description:        "x",
		JobType:            models.JobTypeFullTime,
		ExperienceRequired: 0,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", GetServiceError(err).Type)

	updated, err := f.svc.UpdateJob(context.Background(), &UpdateJobRequest{
		RecruiterID:        f.recruiter.ID,
		JobID:              job.ID,
		Title:              "Senior of Juniors",
		Description:        "Updated description.",
		JobType:            models.JobTypePartTime,
		ExperienceRequired: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior of Juniors", updated.Title)
	assert.True(t, updated.IsActive, "an edit never touches the active flag")
}

func TestUpdateJobCannotReactivateExpiredPosting(t *testing.T) {
	f := newJobFixture()

	job := f.jobs.add(&models.Job{
		CompanyID: f.company.ID,
		Title:     "Lapsed Posting",
		JobType:   models.JobTypeFullTime,
		IsActive:  false,
	})

	updated, err := f.svc.UpdateJob(context.Background(), &UpdateJobRequest{
		RecruiterID:        f.recruiter.ID,
		JobID:              job.ID,
		Title:              "Lapsed Posting",
		Description:        "Still lapsed.",
		JobType:            models.JobTypeFullTime,
		ExperienceRequired: 0,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive, "a deactivated posting stays deactivated through edits")
}

func TestDeleteJobRemovesApplications(t *testing.T) {
	f := newJobFixture()

	job, err := f.svc.CreateJob(context.Background(), validCreateJob(f.recruiter.ID))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteJob(context.Background(), f.recruiter.ID, job.ID))
	assert.Contains(t, f.jobs.deletedWithApps, job.ID)

	err = f.svc.DeleteJob(context.Background(), f.recruiter.ID, job.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)
}

func TestListJobsCachesResults(t *testing.T) {
	f := newJobFixture()

	_, err := f.svc.CreateJob(context.Background(), validCreateJob(f.recruiter.ID))
	require.NoError(t, err)

	first, err := f.svc.ListJobs(context.Background(), &ListJobsRequest{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Bypass the service and add a job directly; the cached listing
	// must still serve the old result until invalidated.
	f.jobs.add(&models.Job{CompanyID: f.company.ID, Title: "Sneaky Job", IsActive: true})

	second, err := f.svc.ListJobs(context.Background(), &ListJobsRequest{})
	require.NoError(t, err)
	assert.Len(t, second, 1, "listing is served from cache")
}

func TestDeactivateExpiredSweep(t *testing.T) {
	f := newJobFixture()

	past := time.Now().AddDate(0, 0, -2)
	future := time.Now().AddDate(0, 0, 30)
	expired := f.jobs.add(&models.Job{CompanyID: f.company.ID, Title: "Expired", IsActive: true, ExpiresAt: &past})
	fresh := f.jobs.add(&models.Job{CompanyID: f.company.ID, Title: "Fresh", IsActive: true, ExpiresAt: &future})
	undated := f.jobs.add(&models.Job{CompanyID: f.company.ID, Title: "Undated", IsActive: true})

	count, err := f.svc.DeactivateExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.False(t, expired.IsActive)
	assert.True(t, fresh.IsActive)
	assert.True(t, undated.IsActive, "postings without an expiry never lapse")
	assert.Contains(t, f.cache.deletedPatterns, "jobs:*")

	// A second run of the same day changes nothing.
	count, err = f.svc.DeactivateExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListMyJobsRequiresCompany(t *testing.T) {
	f := newJobFixture()
	orphan := f.users.add(&models.User{
		Name:       "No Company",
		Email:      "no@company.com",
		Role:       models.RoleRecruiter,
		IsApproved: true,
	})

	_, err := f.svc.ListMyJobs(context.Background(), orphan.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)

	jobs, err := f.svc.ListMyJobs(context.Background(), f.recruiter.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
