// file: internal/handlers/api/v1/admin/admin_controller.go
package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

type AdminController struct {
	adminService    services.AdminService
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewAdminController creates a new admin controller
func NewAdminController(adminService services.AdminService, logger *zap.Logger, responseBuilder *response.Builder) *AdminController {
	return &AdminController{
		adminService:    adminService,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// ListRecruiters handles the full recruiter listing, approved or not
func (c *AdminController) ListRecruiters(w http.ResponseWriter, r *http.Request) {
	recruiters, err := c.adminService.ListRecruiters(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, recruiters)
}

// ListPendingRecruiters handles the approval queue
func (c *AdminController) ListPendingRecruiters(w http.ResponseWriter, r *http.Request) {
	recruiters, err := c.adminService.ListPendingRecruiters(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, recruiters)
}

// ApproveRecruiter handles recruiter approval
func (c *AdminController) ApproveRecruiter(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid recruiter ID", err))
		return
	}

	recruiter, err := c.adminService.ApproveRecruiter(r.Context(), recruiterID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, recruiter)
}

// ListUsers handles the full account listing
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.adminService.ListUsers(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, users)
}

// DeleteUser handles account removal with its dependent records
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	if err := c.adminService.DeleteUser(r.Context(), userID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{"message": "User deleted successfully"})
}

// ListAllJobs handles the unfiltered posting listing
func (c *AdminController) ListAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.adminService.ListAllJobs(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, jobs)
}

// RemoveJob handles moderation removal of any posting
func (c *AdminController) RemoveJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid job ID", err))
		return
	}

	if err := c.adminService.RemoveJob(r.Context(), jobID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{"message": "Job removed successfully"})
}

// CreateCategory handles new category creation
func (c *AdminController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	category, err := c.adminService.CreateCategory(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, category)
}

// DeleteCategory handles category removal
func (c *AdminController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid category ID", err))
		return
	}

	if err := c.adminService.DeleteCategory(r.Context(), categoryID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{"message": "Category deleted successfully"})
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}
