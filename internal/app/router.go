package app

import (
	"github.com/gin-gonic/gin"

	"github.com/repotutor/repotutor-backend/internal/middleware"
	"github.com/repotutor/repotutor-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, authMW *middleware.AuthMiddleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AllowedOrigins:     cfg.AllowedOrigins,
		TracingEnabled:     cfg.TracingEnabled,
		AuthMiddleware:     authMW,
		AuthHandler:        h.Auth,
		UserHandler:        h.User,
		CourseHandler:      h.Course,
		CourseGenHandler:   h.CourseGen,
		ProgressHandler:    h.Progress,
		AchievementHandler: h.Achievement,
		ModelsHandler:      h.Models,
		AdminHandler:       h.Admin,
	})
}
