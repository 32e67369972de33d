// file: internal/services/admin_service_test.go
package services

import (
	"context"
	"testing"

	"fresherjobs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adminFixture struct {
	svc        AdminService
	users      *fakeUserRepo
	jobs       *fakeJobRepo
	categories *fakeCategoryRepo
	notifs     *fakeNotificationRepo
	cache      *fakeCache
	email      *recordingEmail
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:      newFakeUserRepo(),
		jobs:       newFakeJobRepo(),
		categories: newFakeCategoryRepo(),
		notifs:     newFakeNotificationRepo(),
		cache:      newFakeCache(),
		email:      &recordingEmail{},
	}
	userService := NewUserService(f.users, nil, zap.NewNop())
	f.svc = NewAdminService(f.users, f.jobs, f.categories, f.notifs, userService, f.email, f.cache, zap.NewNop())
	return f
}

func TestApproveRecruiter(t *testing.T) {
	f := newAdminFixture()
	recruiter := f.users.add(&models.User{
		Name:  "Ravi Kumar",
		Email: "ravi@acme.com",
		Role:  models.RoleRecruiter,
	})

	pending, err := f.svc.ListPendingRecruiters(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := f.svc.ApproveRecruiter(context.Background(), recruiter.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	pending, err = f.svc.ListPendingRecruiters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	notifs, err := f.notifs.ListByUser(context.Background(), recruiter.ID, true)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Message, "approved")

	assert.Len(t, f.email.approved, 1)
}

func TestListRecruitersIncludesApprovedAndPending(t *testing.T) {
	f := newAdminFixture()
	f.users.add(&models.User{Name: "Approved", Email: "a@acme.com", Role: models.RoleRecruiter, IsApproved: true})
	f.users.add(&models.User{Name: "Pending", Email: "p@acme.com", Role: models.RoleRecruiter})
	f.users.add(&models.User{Name: "Seeker", Email: "s@example.com", Role: models.RoleJobSeeker, IsApproved: true})

	recruiters, err := f.svc.ListRecruiters(context.Background())
	require.NoError(t, err)
	assert.Len(t, recruiters, 2, "approval state does not filter the recruiter listing")
	for _, u := range recruiters {
		assert.Equal(t, models.RoleRecruiter, u.Role)
	}

	pending, err := f.svc.ListPendingRecruiters(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestApproveRecruiterIsIdempotent(t *testing.T) {
	f := newAdminFixture()
	recruiter := f.users.add(&models.User{
		Name:       "Ravi Kumar",
		Email:      "ravi@acme.com",
		Role:       models.RoleRecruiter,
		IsApproved: true,
	})

	approved, err := f.svc.ApproveRecruiter(context.Background(), recruiter.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// No second notification or email for an already approved account.
	notifs, err := f.notifs.ListByUser(context.Background(), recruiter.ID, false)
	require.NoError(t, err)
	assert.Empty(t, notifs)
	assert.Empty(t, f.email.approved)
}

func TestApproveRecruiterRejectsOtherRoles(t *testing.T) {
	f := newAdminFixture()
	seeker := f.users.add(&models.User{
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Role:  models.RoleJobSeeker,
	})

	_, err := f.svc.ApproveRecruiter(context.Background(), seeker.ID)
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "INVALID_STATE", svcErr.Type)
	assert.Equal(t, "NOT_A_RECRUITER", svcErr.Code)
}

func TestApproveUnknownRecruiter(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.ApproveRecruiter(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)
}

func TestAdminDeleteUser(t *testing.T) {
	f := newAdminFixture()
	user := f.users.add(&models.User{
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Role:  models.RoleJobSeeker,
	})

	require.NoError(t, f.svc.DeleteUser(context.Background(), user.ID))
	assert.Contains(t, f.users.deleted, user.ID)

	err := f.svc.DeleteUser(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)
}

func TestAdminRemoveJob(t *testing.T) {
	f := newAdminFixture()
	job := f.jobs.add(&models.Job{Title: "Spam Posting", IsActive: true})

	require.NoError(t, f.svc.RemoveJob(context.Background(), job.ID))
	assert.Contains(t, f.jobs.deletedWithApps, job.ID)
	assert.Contains(t, f.cache.deletedPatterns, "jobs:*")

	err := f.svc.RemoveJob(context.Background(), job.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	f := newAdminFixture()

	created, err := f.svc.CreateCategory(context.Background(), &CreateCategoryRequest{Name: "Engineering"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = f.svc.CreateCategory(context.Background(), &CreateCategoryRequest{Name: "Engineering"})
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "CONFLICT", svcErr.Type)
	assert.Equal(t, "CATEGORY_EXISTS", svcErr.Code)
}

func TestDeleteCategory(t *testing.T) {
	f := newAdminFixture()
	category := f.categories.add(&models.JobCategory{Name: "Engineering"})

	require.NoError(t, f.svc.DeleteCategory(context.Background(), category.ID))

	err := f.svc.DeleteCategory(context.Background(), category.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", GetServiceError(err).Type)
}
