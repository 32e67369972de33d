// file: internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"fresherjobs/internal/config"
	"fresherjobs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeCompanyRepo, *recordingEmail) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	email := &recordingEmail{}
	tokens := NewTokenManager("test-secret", time.Hour)
	cfg := &config.AuthConfig{
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		BCryptCost:       bcrypt.MinCost,
		ResetTokenExpiry: time.Hour,
	}
	users.companies = companies
	svc := NewAuthService(users, tokens, email, zap.NewNop(), cfg)
	return svc, users, companies, email
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, role models.Role, approved bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return users.add(&models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsApproved:   approved,
	})
}

func TestRegisterJobSeekerIssuesToken(t *testing.T) {
	svc, _, _, email := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Verma",
		Email:    "Asha@Example.com",
		Password: "password123",
		Role:     models.RoleJobSeeker,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token, "job seekers sign in immediately")
	assert.True(t, resp.User.IsApproved)
	assert.Equal(t, "asha@example.com", resp.User.Email, "email is normalized")
	assert.Len(t, email.welcome, 1)
}

func TestRegisterRecruiterStartsUnapproved(t *testing.T) {
	svc, _, companies, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:        "Ravi Kumar",
		Email:       "ravi@acme.com",
		Password:    "password123",
		Role:        models.RoleRecruiter,
		CompanyName: "Acme Hiring",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token, "recruiters sign in immediately; posting stays gated")
	assert.False(t, resp.User.IsApproved)

	company, err := companies.GetByUserID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, company, "registration creates the company profile")
	assert.Equal(t, "Acme Hiring", company.CompanyName)
}

func TestRegisterRecruiterWithoutCompanyInfo(t *testing.T) {
	svc, _, companies, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@acme.com",
		Password: "password123",
		Role:     models.RoleRecruiter,
	})
	require.NoError(t, err, "company details are optional at registration")

	company, err := companies.GetByUserID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Nil(t, company, "no company row without company details")
}

func TestRegisterAdminIsAutoApproved(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Platform Admin",
		Email:    "admin@fresherjobs.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, resp.User.IsApproved)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedUser(t, users, "taken@example.com", "password123", models.RoleJobSeeker, true)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Second Account",
		Email:    "TAKEN@example.com",
		Password: "password123",
		Role:     models.RoleJobSeeker,
	})
	require.Error(t, err)

	svcErr := GetServiceError(err)
	assert.Equal(t, "CONFLICT", svcErr.Type)
	assert.Equal(t, "EMAIL_TAKEN", svcErr.Code)
}

func TestLoginSuccess(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedUser(t, users, "asha@example.com", "password123", models.RoleJobSeeker, true)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedUser(t, users, "asha@example.com", "password123", models.RoleJobSeeker, true)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", GetServiceError(err).Type)
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", GetServiceError(err).Type)
}

func TestLoginPendingRecruiterSucceeds(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedUser(t, users, "ravi@acme.com", "password123", models.RoleRecruiter, false)

	// Credentials are the only login gate; the approval gate lives on
	// job posting, not on signing in.
	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ravi@acme.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.User.IsApproved)
}

func TestForgotPasswordStoresSingleUseToken(t *testing.T) {
	svc, users, _, email := newAuthFixture()
	user := seedUser(t, users, "asha@example.com", "password123", models.RoleJobSeeker, true)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "asha@example.com"})
	require.NoError(t, err)
	require.Len(t, email.resets, 1)
	require.NotNil(t, user.ResetToken)
	assert.Equal(t, *user.ResetToken, email.resets[0], "mailed token matches the stored one")

	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       email.resets[0],
		NewPassword: "newpassword456",
	})
	require.NoError(t, err)
	assert.Nil(t, user.ResetToken, "token is cleared on use")

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "newpassword456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// The consumed token cannot be replayed.
	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       email.resets[0],
		NewPassword: "anotherpassword",
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", GetServiceError(err).Type)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	user := seedUser(t, users, "asha@example.com", "password123", models.RoleJobSeeker, true)

	expired := time.Now().Add(-time.Minute)
	token := "11111111-2222-3333-4444-555555555555"
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expired

	err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "newpassword456",
	})
	require.Error(t, err)
	assert.Equal(t, "EXPIRED_TOKEN", GetServiceError(err).Type)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Role: models.RoleRecruiter}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleRecruiter, claims.Role)

	// A token signed under a different secret never verifies.
	other := NewTokenManager("other-secret", time.Hour)
	_, err = other.Verify(signed)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", GetServiceError(err).Type)
}
