// file: internal/handlers/api/v1/profiles/profiles_controller.go
package profiles

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"fresherjobs/internal/contextutils"
	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

// maxUploadBytes bounds multipart memory before spilling to disk.
const maxUploadBytes = 10 << 20

type ProfileController struct {
	profileService  services.ProfileService
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewProfileController creates a new profile controller
func NewProfileController(profileService services.ProfileService, logger *zap.Logger, responseBuilder *response.Builder) *ProfileController {
	return &ProfileController{
		profileService:  profileService,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// GetMyProfile handles the seeker's own profile
func (c *ProfileController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	profile, err := c.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, profile)
}

// UpdateMyProfile handles profile field updates
func (c *ProfileController) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = contextutils.GetUserID(r.Context())

	profile, err := c.profileService.UpdateProfile(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, profile)
}

// UploadResume handles a multipart resume upload
func (c *ProfileController) UploadResume(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	file, err := c.fileFromForm(r, "resume")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	profile, err := c.profileService.UploadResume(r.Context(), userID, file)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, profile)
}

// UploadProfilePhoto handles a multipart photo upload
func (c *ProfileController) UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	file, err := c.fileFromForm(r, "photo")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	profile, err := c.profileService.UploadProfilePhoto(r.Context(), userID, file)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, profile)
}

// GetMyCompany handles the recruiter's own company
func (c *ProfileController) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	company, err := c.profileService.GetCompany(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, company)
}

// UpdateMyCompany handles company field updates
func (c *ProfileController) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = contextutils.GetUserID(r.Context())

	company, err := c.profileService.UpdateCompany(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, company)
}

// UploadCompanyLogo handles a multipart logo upload
func (c *ProfileController) UploadCompanyLogo(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	file, err := c.fileFromForm(r, "logo")
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	company, err := c.profileService.UploadCompanyLogo(r.Context(), userID, file)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteSuccess(w, r, company)
}

// fileFromForm extracts the named multipart file. The caller's email is
// filled in by the service layer.
func (c *ProfileController) fileFromForm(r *http.Request, field string) (*services.FileUploadRequest, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, services.NewValidationError("invalid multipart form", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, services.NewValidationError("missing file field: "+field, err)
	}

	return &services.FileUploadRequest{
		UserID:      contextutils.GetUserID(r.Context()),
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}
