// file: internal/router/router.go
package router

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"fresherjobs/internal/cache"
	"fresherjobs/internal/database"
	"fresherjobs/internal/handlers/api/v1/admin"
	"fresherjobs/internal/handlers/api/v1/applications"
	"fresherjobs/internal/handlers/api/v1/auth"
	"fresherjobs/internal/handlers/api/v1/jobs"
	"fresherjobs/internal/handlers/api/v1/notifications"
	"fresherjobs/internal/handlers/api/v1/profiles"
	"fresherjobs/internal/middleware"
	"fresherjobs/internal/models"
	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

// SetupRouter configures all HTTP routes and returns the main handler
func SetupRouter(
	serviceCollection *services.ServiceCollection,
	authMiddleware *middleware.AuthMiddleware,
	responseBuilder *response.Builder,
	store cache.Cache,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	authController := auth.NewAuthController(serviceCollection.Auth, logger, responseBuilder)
	jobController := jobs.NewJobController(serviceCollection.Job, logger, responseBuilder)
	applicationController := applications.NewApplicationController(serviceCollection.Application, logger, responseBuilder)
	profileController := profiles.NewProfileController(serviceCollection.Profile, logger, responseBuilder)
	adminController := admin.NewAdminController(serviceCollection.Admin, logger, responseBuilder)
	notificationController := notifications.NewNotificationController(serviceCollection.Notification, logger, responseBuilder)

	authed := func(h http.Handler) http.Handler {
		return authMiddleware.Authenticate(h)
	}
	seeker := authMiddleware.RequireRole(models.RoleJobSeeker)
	recruiter := authMiddleware.RequireRole(models.RoleRecruiter)
	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)

	// Health probe
	mux.HandleFunc("GET /health", healthHandler(store))

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authController.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authController.Login)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", authController.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", authController.ResetPassword)

	// Public listing
	mux.HandleFunc("GET /api/v1/jobs", jobController.ListJobs)
	mux.HandleFunc("GET /api/v1/jobs/{id}", jobController.GetJob)
	mux.HandleFunc("GET /api/v1/categories", jobController.ListCategories)

	// Recruiter posting management
	mux.Handle("POST /api/v1/jobs", authed(recruiter(http.HandlerFunc(jobController.CreateJob))))
	mux.Handle("PUT /api/v1/jobs/{id}", authed(recruiter(http.HandlerFunc(jobController.UpdateJob))))
	mux.Handle("DELETE /api/v1/jobs/{id}", authed(recruiter(http.HandlerFunc(jobController.DeleteJob))))
	mux.Handle("GET /api/v1/jobs/mine", authed(recruiter(http.HandlerFunc(jobController.ListMyJobs))))
	mux.Handle("GET /api/v1/jobs/{id}/applicants", authed(recruiter(http.HandlerFunc(applicationController.ListApplicants))))
	mux.Handle("PUT /api/v1/applications/{id}/status", authed(recruiter(http.HandlerFunc(applicationController.UpdateStatus))))

	// Seeker applications
	mux.Handle("POST /api/v1/jobs/{id}/apply", authed(seeker(http.HandlerFunc(applicationController.Apply))))
	mux.Handle("GET /api/v1/applications/me", authed(seeker(http.HandlerFunc(applicationController.ListMyApplications))))

	// Seeker profile
	mux.Handle("GET /api/v1/profiles/me", authed(seeker(http.HandlerFunc(profileController.GetMyProfile))))
	mux.Handle("PUT /api/v1/profiles/me", authed(seeker(http.HandlerFunc(profileController.UpdateMyProfile))))
	mux.Handle("POST /api/v1/profiles/me/resume", authed(seeker(http.HandlerFunc(profileController.UploadResume))))
	mux.Handle("POST /api/v1/profiles/me/photo", authed(seeker(http.HandlerFunc(profileController.UploadProfilePhoto))))

	// Recruiter company
	mux.Handle("GET /api/v1/companies/me", authed(recruiter(http.HandlerFunc(profileController.GetMyCompany))))
	mux.Handle("PUT /api/v1/companies/me", authed(recruiter(http.HandlerFunc(profileController.UpdateMyCompany))))
	mux.Handle("POST /api/v1/companies/me/logo", authed(recruiter(http.HandlerFunc(profileController.UploadCompanyLogo))))

	// Notifications, any authenticated role
	mux.Handle("GET /api/v1/notifications", authed(http.HandlerFunc(notificationController.ListNotifications)))
	mux.Handle("GET /api/v1/notifications/unread-count", authed(http.HandlerFunc(notificationController.CountUnread)))
	mux.Handle("PUT /api/v1/notifications/{id}/read", authed(http.HandlerFunc(notificationController.MarkRead)))
	mux.Handle("PUT /api/v1/notifications/read-all", authed(http.HandlerFunc(notificationController.MarkAllRead)))

	// Admin
	mux.Handle("GET /api/v1/admin/recruiters", authed(adminOnly(http.HandlerFunc(adminController.ListRecruiters))))
	mux.Handle("GET /api/v1/admin/recruiters/pending", authed(adminOnly(http.HandlerFunc(adminController.ListPendingRecruiters))))
	mux.Handle("PUT /api/v1/admin/recruiters/{id}/approve", authed(adminOnly(http.HandlerFunc(adminController.ApproveRecruiter))))
	mux.Handle("GET /api/v1/admin/users", authed(adminOnly(http.HandlerFunc(adminController.ListUsers))))
	mux.Handle("DELETE /api/v1/admin/users/{id}", authed(adminOnly(http.HandlerFunc(adminController.DeleteUser))))
	mux.Handle("GET /api/v1/admin/jobs", authed(adminOnly(http.HandlerFunc(adminController.ListAllJobs))))
	mux.Handle("DELETE /api/v1/admin/jobs/{id}", authed(adminOnly(http.HandlerFunc(adminController.RemoveJob))))
	mux.Handle("POST /api/v1/admin/categories", authed(adminOnly(http.HandlerFunc(adminController.CreateCategory))))
	mux.Handle("DELETE /api/v1/admin/categories/{id}", authed(adminOnly(http.HandlerFunc(adminController.DeleteCategory))))

	logger.Info("Router setup completed")

	return mux
}

// healthHandler reports database and cache reachability. Probes get a
// bare payload, no response envelope.
func healthHandler(store cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "database": "up", "cache": "up"}
		code := http.StatusOK

		if err := database.Health(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if store != nil {
			if err := store.Health(r.Context()); err != nil {
				status["cache"] = "down"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(status)
	}
}
