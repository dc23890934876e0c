package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/course"
	"github.com/repotutor/repotutor-backend/internal/llm"
	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/prompts"
	"github.com/repotutor/repotutor-backend/internal/services"
	"github.com/repotutor/repotutor-backend/internal/source"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Course      services.CourseService
	Generation  services.GenerationService
	Progress    services.ProgressService
	Achievement services.AchievementService
	Models      services.ModelsService
	PromptStore *prompts.Store
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, cache *redis.Client) (Services, error) {
	promptStore := prompts.NewStore(log)
	if cfg.PromptsFile != "" {
		if err := promptStore.LoadFile(cfg.PromptsFile); err != nil {
			return Services{}, err
		}
	}

	llmClient := llm.NewClient(log)
	repoFetcher := source.NewRepoFetcher(log, cfg.GitHubToken)
	llmsFetcher := source.NewLlmsTxtFetcher(log, source.NewGoqueryExtractor())

	authService := services.NewAuthService(log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	userService := services.NewUserService(log, r.User)
	courseService := services.NewCourseService(db, log, r.Course, r.Tag)
	achievementService := services.NewAchievementService(db, log, r.Achievement, r.Progress, r.Course)
	progressService := services.NewProgressService(db, log, r.Progress, r.Course, achievementService)
	generationService := services.NewGenerationService(
		db,
		log,
		repoFetcher,
		llmsFetcher,
		promptStore,
		llmClient,
		course.NewRepairer(log),
		r.Course,
		r.Tag,
		r.User,
		cfg.OpenRouterAPIKey,
	)
	modelsService := services.NewModelsService(log, llmClient, cache)

	return Services{
		Auth:        authService,
		User:        userService,
		Course:      courseService,
		Generation:  generationService,
		Progress:    progressService,
		Achievement: achievementService,
		Models:      modelsService,
		PromptStore: promptStore,
	}, nil
}
