package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/awave-app/backend/internal/handlers"
	"github.com/awave-app/backend/internal/middleware"
	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/notifier"
	"github.com/awave-app/backend/internal/realtime"
	"github.com/awave-app/backend/internal/repositories"
	"github.com/awave-app/backend/internal/token"
	"github.com/awave-app/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, cfg *config.Config, log zerolog.Logger) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Feed{},
		&models.Comment{},
		&models.Reaction{},
		&models.Report{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	log.Info().Msg("PostgreSQL auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	feedRepo := repositories.NewPostgresFeedRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Core services ---
	tokens := token.NewService(cfg.JWTSecret, token.SessionTTL)
	registry := realtime.NewRegistry(log)
	notify := notifier.New(notificationRepo, registry, log)

	// --- Realtime channel (token verified at handshake, not by middleware) ---
	rtHandler := realtime.NewHandler(registry, tokens, cfg.ChannelCORSOrigin, realtime.ReconnectHints{
		Attempts: cfg.ReconnectAttempts,
		DelayMS:  cfg.ReconnectDelayMS,
	}, log)
	e.GET("/ws", rtHandler.Serve)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(tokens))

	// --- Moderator-only routes ---
	moderation := e.Group("/api")
	moderation.Use(middleware.JWTAuthMiddleware(tokens), middleware.RequireModerator())

	feedHandler := handlers.NewFeedHandler(feedRepo)
	feedHandler.RegisterFeedRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, feedRepo, userRepo, notify)
	commentHandler.RegisterCommentRoutes(api)

	reactionHandler := handlers.NewReactionHandler(reactionRepo, feedRepo, userRepo, notify)
	reactionHandler.RegisterReactionRoutes(api)

	reportHandler := handlers.NewReportHandler(reportRepo, feedRepo, userRepo, notify)
	reportHandler.RegisterReportRoutes(api, moderation)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Info().Msg("All routes configured")
	return nil
}
