// file: internal/handlers/api/v1/auth/auth_controller.go
package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

type AuthController struct {
	authService     services.AuthService
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewAuthController creates a new auth controller
func NewAuthController(authService services.AuthService, logger *zap.Logger, responseBuilder *response.Builder) *AuthController {
	return &AuthController{
		authService:     authService,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// Register handles account registration
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.authService.Register(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, resp)
}

// Login handles credential authentication
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.authService.Login(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, resp)
}

// ForgotPassword starts a password reset. The response does not reveal
// whether the address exists.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	if err := c.authService.ForgotPassword(r.Context(), &req); err != nil {
		// An unknown address gets the same response as a known one.
		if !services.IsNotFoundError(err) {
			c.responseBuilder.WriteError(w, r, err)
			return
		}
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{
		"message": "If the email exists, a reset link has been sent",
	})
}

// ResetPassword completes a password reset with a token
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	if err := c.authService.ResetPassword(r.Context(), &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{
		"message": "Password has been reset successfully",
	})
}
