package app

import (
	"github.com/repotutor/repotutor-backend/internal/handlers"
	"github.com/repotutor/repotutor-backend/internal/logger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Course      *handlers.CourseHandler
	CourseGen   *handlers.CourseGenHandler
	Progress    *handlers.ProgressHandler
	Achievement *handlers.AchievementHandler
	Models      *handlers.ModelsHandler
	Admin       *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	return Handlers{
		Auth:        handlers.NewAuthHandler(log, s.Auth),
		User:        handlers.NewUserHandler(log, s.User),
		Course:      handlers.NewCourseHandler(log, s.Course),
		CourseGen:   handlers.NewCourseGenHandler(log, s.Generation),
		Progress:    handlers.NewProgressHandler(log, s.Progress),
		Achievement: handlers.NewAchievementHandler(log, s.Achievement),
		Models:      handlers.NewModelsHandler(log, s.Models),
		Admin:       handlers.NewAdminHandler(log, s.PromptStore),
	}
}
