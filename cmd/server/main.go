package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/awave-app/backend/internal/cron"
	"github.com/awave-app/backend/internal/repositories"
	"github.com/awave-app/backend/internal/router"
	"github.com/awave-app/backend/pkg/config"
	"github.com/awave-app/backend/validators"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration; missing secrets are fatal at startup
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to setup routes")
	}

	// Start the notification retention job
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	retention := cron.NewRetentionJob(notificationRepo, cfg.RetentionDays, logger)
	scheduler, err := cron.StartScheduler(retention, cfg.RetentionCron, cfg.RetentionTimezone)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start retention scheduler")
	}
	defer scheduler.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
