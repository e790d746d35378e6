package cli

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yukikurage/category-task-api/internal/config"
	"github.com/yukikurage/category-task-api/internal/database"
	"github.com/yukikurage/category-task-api/internal/handlers"
	"github.com/yukikurage/category-task-api/internal/metrics"
	"github.com/yukikurage/category-task-api/internal/middleware"
	"github.com/yukikurage/category-task-api/internal/repository"
	"github.com/yukikurage/category-task-api/internal/services"
	"github.com/yukikurage/category-task-api/internal/token"
	"gorm.io/gorm"
)

// App holds the wired components shared by the commands.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB

	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	AuthService     *services.AuthService
	CategoryService *services.CategoryService
	TaskService     *services.TaskService
	CleanupService  *services.CleanupService

	authLimiter *middleware.RateLimiter
}

// NewApp connects to the database, migrates the schema and builds the services.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	issuer := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)

	return &App{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Registry:        registry,
		Metrics:         collector,
		AuthService:     services.NewAuthService(userRepo, issuer),
		CategoryService: services.NewCategoryService(categoryRepo, collector),
		TaskService:     services.NewTaskService(taskRepo, categoryRepo, aiService),
		CleanupService:  services.NewCleanupService(taskRepo, collector, logger),
	}, nil
}

// Router builds the HTTP handler.
func (a *App) Router() *gin.Engine {
	if a.authLimiter == nil && a.Config.AuthRatePerMinute > 0 {
		a.authLimiter = middleware.NewRateLimiter(
			middleware.PerMinute(a.Config.AuthRatePerMinute, a.Config.AuthRateBurst),
		)
	}

	return handlers.NewRouter(handlers.RouterConfig{
		AuthService:     a.AuthService,
		CategoryService: a.CategoryService,
		TaskService:     a.TaskService,
		Logger:          a.Logger,
		Metrics:         a.Metrics,
		MetricsHandler:  metrics.Handler(a.Registry),
		AuthLimiter:     a.authLimiter,
		RequestTimeout:  a.Config.RequestTimeout,
	})
}

// Close releases the database connection and background goroutines.
func (a *App) Close() error {
	if a.authLimiter != nil {
		a.authLimiter.Stop()
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
