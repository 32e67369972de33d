package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fresherjobs/internal/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DB is the global database manager instance.
var DB *Manager

var initMutex sync.Mutex

// InitDB initializes the database manager, retrying the initial
// connection with exponential backoff, and runs migrations.
func InitDB(cfg *config.Config, logger *zap.Logger) error {
	initMutex.Lock()
	defer initMutex.Unlock()

	if DB != nil {
		logger.Info("Database manager already initialized")
		return nil
	}

	var manager *Manager
	connect := func() error {
		var err error
		manager, err = NewManager(&cfg.Database, logger)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxElapsedTime = 0 // bounded by retry count below
	err := backoff.RetryNotify(
		connect,
		backoff.WithMaxRetries(b, uint64(cfg.Database.ConnectMaxRetries)),
		func(err error, d time.Duration) {
			logger.Warn("Database connection attempt failed",
				zap.Error(err),
				zap.Duration("backoff", d),
			)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d attempts: %w",
			cfg.Database.ConnectMaxRetries, err)
	}

	if err := manager.Migrate(cfg.Database.MigrationsPath); err != nil {
		manager.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	DB = manager
	return nil
}

// GetDB returns the global manager, or nil when uninitialized.
func GetDB() *Manager {
	return DB
}

// Health pings the database within the context deadline.
func Health(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	return DB.DB().PingContext(ctx)
}

// Close shuts down the global manager.
func Close() error {
	initMutex.Lock()
	defer initMutex.Unlock()
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}
