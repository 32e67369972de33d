// file: internal/repositories/collection.go
package repositories

import (
	"fmt"

	"fresherjobs/internal/database"

	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	User         UserRepository
	Company      CompanyRepository
	Profile      ProfileRepository
	Category     CategoryRepository
	Job          JobRepository
	Application  ApplicationRepository
	Notification NotificationRepository

	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	collection := &Collection{
		db:     db,
		logger: logger,
	}

	collection.User = NewUserRepository(db, logger)
	collection.Company = NewCompanyRepository(db, logger)
	collection.Profile = NewProfileRepository(db, logger)
	collection.Category = NewCategoryRepository(db, logger)
	collection.Job = NewJobRepository(db, logger)
	collection.Application = NewApplicationRepository(db, logger)
	collection.Notification = NewNotificationRepository(db, logger)

	logger.Info("Repository collection initialized")

	return collection, nil
}
