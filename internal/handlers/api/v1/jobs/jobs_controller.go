// file: internal/handlers/api/v1/jobs/jobs_controller.go
package jobs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"fresherjobs/internal/contextutils"
	"fresherjobs/internal/models"
	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

type JobController struct {
	jobService      services.JobService
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewJobController creates a new job controller
func NewJobController(jobService services.JobService, logger *zap.Logger, responseBuilder *response.Builder) *JobController {
	return &JobController{
		jobService:      jobService,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// ListJobs handles the public active listing with filters
func (c *JobController) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &services.ListJobsRequest{
		Keyword:  query.Get("keyword"),
		Location: query.Get("location"),
		JobType:  models.JobType(query.Get("job_type")),
	}

	if categoryStr := query.Get("category_id"); categoryStr != "" {
		if categoryID, err := strconv.ParseInt(categoryStr, 10, 64); err == nil {
			req.CategoryID = &categoryID
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			req.Offset = offset
		}
	}

	jobs, err := c.jobService.ListJobs(r.Context(), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, jobs)
}

// GetJob handles retrieving a single posting
func (c *JobController) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid job ID", err))
		return
	}

	job, err := c.jobService.GetJob(r.Context(), jobID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, job)
}

// CreateJob handles posting creation by an approved recruiter
func (c *JobController) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req services.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.RecruiterID = contextutils.GetUserID(r.Context())

	job, err := c.jobService.CreateJob(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, job)
}

// UpdateJob handles edits to an owned posting
func (c *JobController) UpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid job ID", err))
		return
	}

	var req services.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.JobID = jobID
	req.RecruiterID = contextutils.GetUserID(r.Context())

	job, err := c.jobService.UpdateJob(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, job)
}

// DeleteJob handles removal of an owned posting and its applications
func (c *JobController) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid job ID", err))
		return
	}

	recruiterID := contextutils.GetUserID(r.Context())
	if err := c.jobService.DeleteJob(r.Context(), recruiterID, jobID); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, map[string]string{"message": "Job deleted successfully"})
}

// ListMyJobs handles the recruiter's own postings, active or not
func (c *JobController) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	recruiterID := contextutils.GetUserID(r.Context())

	jobs, err := c.jobService.ListMyJobs(r.Context(), recruiterID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, jobs)
}

// ListCategories handles the public category listing
func (c *JobController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.jobService.ListCategories(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, categories)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}
