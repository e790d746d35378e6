package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/category-task-api/internal/metrics"
	"github.com/yukikurage/category-task-api/internal/middleware"
	"github.com/yukikurage/category-task-api/internal/services"
)

// AIRequestTimeout bounds task generation, which waits on an external model.
const AIRequestTimeout = 60 * time.Second

// RouterConfig collects what the HTTP surface is built from.
type RouterConfig struct {
	AuthService     *services.AuthService
	CategoryService *services.CategoryService
	TaskService     *services.TaskService

	Logger         *slog.Logger
	Metrics        metrics.Recorder
	MetricsHandler http.Handler // served at /metrics when set
	AuthLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
}

// NewRouter wires middleware, handlers and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Metrics(cfg.Metrics),
	)

	authHandler := NewAuthHandler(cfg.AuthService)
	categoryHandler := NewCategoryHandler(cfg.CategoryService)
	taskHandler := NewTaskHandler(cfg.TaskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task API is running",
		})
	})
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	timeout := middleware.Timeout(cfg.RequestTimeout)
	requireAuth := middleware.RequireAuth(cfg.AuthService)
	withID := middleware.RequireIDParam("id")

	api := r.Group("/api")
	{
		// Credential routes (public, rate limited)
		credentials := api.Group("", timeout)
		if cfg.AuthLimiter != nil {
			credentials.Use(cfg.AuthLimiter.Middleware())
		}
		credentials.POST("/register", authHandler.Register)
		credentials.POST("/login", authHandler.Login)

		api.GET("/me", timeout, requireAuth, authHandler.GetCurrentUser)

		categories := api.Group("/categories", requireAuth)
		{
			categories.GET("", timeout, categoryHandler.ListCategories)
			categories.POST("", timeout, categoryHandler.CreateCategory)
			categories.DELETE("/:id", timeout, withID, categoryHandler.DeleteCategory)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("", timeout, taskHandler.ListTasks)
			tasks.POST("", timeout, taskHandler.CreateTask)
			tasks.POST("/generate", middleware.Timeout(AIRequestTimeout), taskHandler.GenerateTasks)
			tasks.GET("/:id", timeout, withID, taskHandler.GetTask)
			tasks.PUT("/:id", timeout, withID, taskHandler.UpdateTask)
			tasks.PATCH("/:id", timeout, withID, taskHandler.UpdateTask)
			tasks.DELETE("/:id", timeout, withID, taskHandler.DeleteTask)
		}
	}

	return r
}
