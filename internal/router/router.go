package router

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/anonto42/review-portal/backend/internal/handlers"
	"github.com/anonto42/review-portal/backend/internal/metrics"
	"github.com/anonto42/review-portal/backend/internal/middleware"
	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/anonto42/review-portal/backend/internal/repositories"
	"github.com/anonto42/review-portal/backend/internal/services"
	"github.com/anonto42/review-portal/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Dependencies are the collaborators SetupRoutes wires into handlers.
type Dependencies struct {
	Postgres          *gorm.DB
	Mongo             *mongo.Database
	BlobStore         storage.BlobStore
	UploadDir         string // served under /uploads when set
	FirebaseAuth      handlers.IDTokenVerifier
	JWTSecret         string
	JWTTTL            time.Duration
	DashboardCacheTTL time.Duration
	Metrics           *metrics.Metrics
	Logger            *slog.Logger
}

// Repositories is returned so main can share them with background jobs.
type Repositories struct {
	Users         repositories.UserRepository
	Clients       repositories.ClientRepository
	Resources     repositories.ResourceRepository
	Projects      repositories.ProjectRepository
	Comments      repositories.CommentRepository
	Notifications repositories.NotificationRepository
}

// Migrate creates or updates the PostgreSQL tables.
func Migrate(pgdb *gorm.DB) error {
	if err := pgdb.AutoMigrate(&models.User{}, &models.Client{}, &models.Resource{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) *Repositories {
	logger := deps.Logger

	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.GET("/health", handlers.HealthCheck)
	if deps.UploadDir != "" {
		e.Static("/uploads", deps.UploadDir)
	}

	// --- Initialize Repositories ---
	repos := &Repositories{
		Users:         repositories.NewPostgresUserRepository(deps.Postgres),
		Clients:       repositories.NewPostgresClientRepository(deps.Postgres),
		Resources:     repositories.NewPostgresResourceRepository(deps.Postgres),
		Projects:      repositories.NewMongoProjectRepository(deps.Mongo),
		Comments:      repositories.NewMongoCommentRepository(deps.Mongo),
		Notifications: repositories.NewMongoNotificationRepository(deps.Mongo),
	}

	// --- Services ---
	notificationService := services.NewNotificationService(repos.Notifications, deps.Metrics, logger)
	projectService := services.NewProjectService(repos.Projects, repos.Comments, repos.Notifications, notificationService, deps.Metrics, logger)
	commentService := services.NewCommentService(repos.Comments, repos.Projects, notificationService, logger)
	dashboardService := services.NewDashboardService(repos.Projects, repos.Comments, deps.DashboardCacheTTL, logger)
	projectService.OnChange(dashboardService.Invalidate)
	commentService.OnChange(dashboardService.Invalidate)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(repos.Users, deps.FirebaseAuth, deps.JWTSecret, deps.JWTTTL).RegisterAuthRoutes(authGroup)

	// --- Client-facing routes; clients review without an account ---
	api := e.Group("/api/v1")

	// --- Admin routes (require JWT with the admin role) ---
	admin := e.Group("/api/v1", middleware.JWTAuthMiddleware(deps.JWTSecret), middleware.RequireAdmin())

	handlers.NewProjectHandler(projectService, commentService, deps.BlobStore).RegisterProjectRoutes(api, admin)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(admin)
	handlers.NewClientHandler(repos.Clients).RegisterClientRoutes(admin)
	handlers.NewResourceHandler(repos.Resources, deps.BlobStore).RegisterResourceRoutes(admin)
	handlers.NewUserHandler(repos.Users).RegisterUserRoutes(admin)
	handlers.NewDashboardHandler(dashboardService).RegisterDashboardRoutes(admin)

	logger.Info("routes configured")
	return repos
}
