// file: internal/services/service_collection.go
package services

import (
	"fmt"

	"fresherjobs/internal/cache"
	"fresherjobs/internal/config"
	"fresherjobs/internal/repositories"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// ServiceCollection holds all service instances for dependency injection
type ServiceCollection struct {
	Auth         AuthService
	User         UserService
	Profile      ProfileService
	Job          JobService
	Application  ApplicationService
	Admin        AdminService
	Notification NotificationService
	File         FileService
	Email        EmailService
	Tokens       *TokenManager

	logger *zap.Logger
}

// NewServiceCollection wires every service with its dependencies
func NewServiceCollection(
	repos *repositories.Collection,
	c cache.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository collection is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	tokens := NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	emailService := NewEmailService(nil, logger, &cfg.Email)

	var fileService FileService
	if cfg.Cloudinary.CloudName != "" {
		cld, err := cloudinary.NewFromParams(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
		}
		fileService = NewFileService(cld, logger, &cfg.Cloudinary)
	}

	authService := NewAuthService(
		repos.User, tokens, emailService, logger, &cfg.Auth)
	userService := NewUserService(repos.User, fileService, logger)
	profileService := NewProfileService(
		repos.Profile, repos.Company, repos.User, fileService, logger)
	jobService := NewJobService(
		repos.Job, repos.Company, repos.Category, repos.User,
		c, cfg.Cache.TTL, logger)
	applicationService := NewApplicationService(
		repos.Application, repos.Job, repos.Company,
		repos.User, emailService, logger)
	adminService := NewAdminService(
		repos.User, repos.Job, repos.Category, repos.Notification,
		userService, emailService, c, logger)
	notificationService := NewNotificationService(repos.Notification, logger)

	logger.Info("Service collection initialized")

	return &ServiceCollection{
		Auth:         authService,
		User:         userService,
		Profile:      profileService,
		Job:          jobService,
		Application:  applicationService,
		Admin:        adminService,
		Notification: notificationService,
		File:         fileService,
		Email:        emailService,
		Tokens:       tokens,
		logger:       logger,
	}, nil
}
