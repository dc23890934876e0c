package app

import (
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	Course      repos.CourseRepo
	Tag         repos.TagRepo
	Progress    repos.ProgressRepo
	Achievement repos.AchievementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Course:      repos.NewCourseRepo(db, log),
		Tag:         repos.NewTagRepo(db, log),
		Progress:    repos.NewProgressRepo(db, log),
		Achievement: repos.NewAchievementRepo(db, log),
	}
}
