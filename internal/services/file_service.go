// file: internal/services/file_service.go
package services

import (
	"context"
	"regexp"
	"time"

	"fresherjobs/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// fileService implements FileService on Cloudinary
type fileService struct {
	cloudinary *cloudinary.Cloudinary
	logger     *zap.Logger
	config     *config.CloudinaryConfig
}

// NewFileService creates a new file service
func NewFileService(cld *cloudinary.Cloudinary, logger *zap.Logger, cfg *config.CloudinaryConfig) FileService {
	return &fileService{
		cloudinary: cld,
		logger:     logger,
		config:     cfg,
	}
}

var publicIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// publicIDFor derives the stable storage key for a user's asset. Each
// user has exactly one resume, photo or logo slot; re-uploading
// overwrites the previous file instead of accumulating orphans.
func publicIDFor(email, suffix string) string {
	return publicIDSanitizer.ReplaceAllString(email, "_") + suffix
}

// UploadResume stores a resume document
func (s *fileService) UploadResume(ctx context.Context, req *FileUploadRequest) (*FileUploadResult, error) {
	return s.upload(ctx, req, publicIDFor(req.UserEmail, "_resume"), "raw")
}

// UploadProfilePhoto stores a profile photo
func (s *fileService) UploadProfilePhoto(ctx context.Context, req *FileUploadRequest) (*FileUploadResult, error) {
	return s.upload(ctx, req, publicIDFor(req.UserEmail, "_photo"), "image")
}

// UploadCompanyLogo stores a company logo
func (s *fileService) UploadCompanyLogo(ctx context.Context, req *FileUploadRequest) (*FileUploadResult, error) {
	return s.upload(ctx, req, publicIDFor(req.UserEmail, "_logo"), "image")
}

func (s *fileService) upload(ctx context.Context, req *FileUploadRequest, publicID, resourceType string) (*FileUploadResult, error) {
	if req.File == nil {
		return nil, NewValidationError("file is required", nil)
	}
	if req.Size > s.config.MaxFileSize {
		return nil, NewValidationError("file exceeds the maximum allowed size", nil)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	overwrite := true
	result, err := s.cloudinary.Upload.Upload(uploadCtx, req.File, uploader.UploadParams{
		Folder:       s.config.RootFolder,
		PublicID:     publicID,
		ResourceType: resourceType,
		Overwrite:    &overwrite,
	})
	if err != nil {
		s.logger.Error("Failed to upload file",
			zap.Error(err),
			zap.Int64("user_id", req.UserID),
			zap.String("public_id", publicID),
		)
		return nil, NewInternalError("failed to upload file")
	}

	s.logger.Info("File uploaded",
		zap.Int64("user_id", req.UserID),
		zap.String("public_id", result.PublicID),
		zap.Int64("size", int64(result.Bytes)),
	)

	return &FileUploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Size:     int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// DeleteUserAssets removes the account's resume, photo and logo slots.
// The blob store cannot participate in the deletion transaction, so
// misses and failures are logged and swallowed.
func (s *fileService) DeleteUserAssets(ctx context.Context, email string) {
	for _, suffix := range []string{"_resume", "_photo", "_logo"} {
		publicID := s.config.RootFolder + "/" + publicIDFor(email, suffix)
		if err := s.DeleteFile(ctx, publicID); err != nil {
			s.logger.Warn("Failed to delete user asset",
				zap.String("public_id", publicID),
				zap.Error(err),
			)
		}
	}
}

// DeleteFile removes a stored file
func (s *fileService) DeleteFile(ctx context.Context, publicID string) error {
	if publicID == "" {
		return NewValidationError("public ID is required", nil)
	}

	deleteCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.cloudinary.Upload.Destroy(deleteCtx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		s.logger.Error("Failed to delete file",
			zap.Error(err),
			zap.String("public_id", publicID),
		)
		return NewInternalError("failed to delete file")
	}
	if result.Result != "ok" {
		s.logger.Warn("File deletion result was not OK",
			zap.String("public_id", publicID),
			zap.String("result", result.Result),
		)
	}
	return nil
}
