package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/repotutor/repotutor-backend/internal/handlers"
	"github.com/repotutor/repotutor-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName        string
	AllowedOrigins     []string
	TracingEnabled     bool
	AuthMiddleware     *middleware.AuthMiddleware
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	CourseHandler      *handlers.CourseHandler
	CourseGenHandler   *handlers.CourseGenHandler
	ProgressHandler    *handlers.ProgressHandler
	AchievementHandler *handlers.AchievementHandler
	ModelsHandler      *handlers.ModelsHandler
	AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/models", cfg.ModelsHandler.ListModels)
		api.GET("/courses", cfg.CourseHandler.ListPublicCourses)
	}

	// Optionally authenticated: anonymous generation is allowed, and
	// private courses resolve only for their owner.
	optional := router.Group("/api")
	optional.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		optional.POST("/courses/generate", cfg.CourseGenHandler.Generate)
		optional.GET("/courses/:id", cfg.CourseHandler.GetCourse)
	}

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/user", cfg.UserHandler.GetMe)
		protected.PUT("/user/apikey", cfg.UserHandler.UpdateAPIKey)
		protected.GET("/user/courses", cfg.CourseHandler.ListUserCourses)
		protected.DELETE("/user/courses/:id", cfg.CourseHandler.DeleteUserCourse)
		protected.GET("/user/progress", cfg.ProgressHandler.ListProgress)
		protected.GET("/user/progress/:courseId", cfg.ProgressHandler.GetCourseProgress)
		protected.POST("/user/progress/:courseId/steps/:stepId/complete", cfg.ProgressHandler.MarkStepComplete)
		protected.GET("/user/achievements", cfg.AchievementHandler.ListUserAchievements)
	}

	// Admin
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/prompts", cfg.AdminHandler.ListPrompts)
		admin.PUT("/prompts/:type", cfg.AdminHandler.UpdatePrompt)
		admin.POST("/prompts/:type/reset", cfg.AdminHandler.ResetPrompt)
	}

	return router
}
