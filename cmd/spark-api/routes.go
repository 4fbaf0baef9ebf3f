package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/internal/dto"
	"github.com/noah-isme/spark-api/internal/handler"
	"github.com/noah-isme/spark-api/internal/middleware"
	"github.com/noah-isme/spark-api/internal/models"
	"github.com/noah-isme/spark-api/internal/service"
	"github.com/noah-isme/spark-api/pkg/config"
	"github.com/noah-isme/spark-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/spark-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/spark-api/pkg/middleware/requestid"
)

type authAPI interface {
	middleware.TokenValidator
	Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, userID string) (*models.UserInfo, error)
}

type bookmarkAPI interface {
	Add(ctx context.Context, userID string, programID int) error
	Remove(ctx context.Context, userID string, programID int) error
	IDs(ctx context.Context, userID string) ([]int, error)
	List(ctx context.Context, userID string) ([]models.Program, error)
	Reminders(ctx context.Context, userID string) ([]models.DeadlineReminder, error)
}

type submissionAPI interface {
	Submit(ctx context.Context, req models.SubmissionRequest, submittedBy string) (*dto.SubmissionAccepted, error)
	List(ctx context.Context, filter models.IntakeFilter) ([]models.ProgramSubmission, error)
}

type contactAPI interface {
	Send(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context, filter models.IntakeFilter) ([]models.ContactMessage, error)
}

type routeDeps struct {
	auth        authAPI
	catalog     *service.CatalogService
	bookmarks   bookmarkAPI
	submissions submissionAPI
	contacts    contactAPI
	metrics     *service.MetricsService
	programs    service.ProgramCatalog
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if deps.metrics != nil {
		r.Use(middleware.Metrics(deps.metrics))
	}

	metricsHandler := handler.NewMetricsHandler(deps.metrics, deps.programs)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if deps.metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(deps.auth)
	catalogHandler := handler.NewCatalogHandler(deps.catalog)
	bookmarkHandler := handler.NewBookmarkHandler(deps.bookmarks)
	intakeHandler := handler.NewIntakeHandler(deps.submissions, deps.contacts)

	requireAuth := middleware.JWT(deps.auth)
	optionalAuth := middleware.OptionalJWT(deps.auth)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", requireAuth, authHandler.Me)

	programs := api.Group("/programs", optionalAuth)
	programs.GET("", catalogHandler.List)
	programs.GET("/smart-search", catalogHandler.SmartSearch)
	programs.GET("/parse", catalogHandler.Parse)
	programs.GET("/states", catalogHandler.States)
	programs.GET("/options", catalogHandler.Options)
	programs.GET("/export", catalogHandler.Export)
	programs.GET("/:id", catalogHandler.Get)

	bookmarks := api.Group("/bookmarks", requireAuth)
	bookmarks.GET("", bookmarkHandler.List)
	bookmarks.GET("/ids", bookmarkHandler.IDs)
	bookmarks.GET("/reminders", bookmarkHandler.Reminders)
	bookmarks.POST("/:programId", bookmarkHandler.Add)
	bookmarks.DELETE("/:programId", bookmarkHandler.Remove)

	api.POST("/submissions", optionalAuth, intakeHandler.Submit)
	api.POST("/contact", intakeHandler.Contact)

	admin := api.Group("/admin", requireAuth, middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/submissions", intakeHandler.ListSubmissions)
	admin.GET("/contact-messages", intakeHandler.ListContactMessages)
	admin.GET("/metrics", metricsHandler.Snapshot)

	return r
}
