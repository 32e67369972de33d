// file: internal/handlers/api/v1/applications/applications_controller.go
package applications

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"fresherjobs/internal/contextutils"
	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

type ApplicationController struct {
	applicationService services.ApplicationService
	logger             *zap.Logger
	responseBuilder    *response.Builder
}

// NewApplicationController creates a new application controller
func NewApplicationController(applicationService services.ApplicationService, logger *zap.Logger, responseBuilder *response.Builder) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
		responseBuilder:    responseBuilder,
	}
}

// Apply handles a seeker applying to a job
func (c *ApplicationController) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid job ID", err))
		return
	}

	var req services.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.JobID = jobID
	req.UserID = contextutils.GetUserID(r.Context())

	application, err := c.applicationService.Apply(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, application)
}

// ListMyApplications handles the seeker's application history
func (c *ApplicationController) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	applications, err := c.applicationService.ListMyApplications(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, applications)
}

// ListApplicants handles the recruiter's view of a job's applicants
func (c *ApplicationController) ListApplicants(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid job ID", err))
		return
	}

	recruiterID := contextutils.GetUserID(r.Context())
	applications, err := c.applicationService.ListJobApplications(r.Context(), recruiterID, jobID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, applications)
}

// UpdateStatus handles a recruiter's decision on an application
func (c *ApplicationController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid application ID", err))
		return
	}

	var req services.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ApplicationID = applicationID
	req.RecruiterID = contextutils.GetUserID(r.Context())

	application, err := c.applicationService.UpdateStatus(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, application)
}
