package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/course"
	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/prompts"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

// SourceFetcher is the contract both source fetchers satisfy.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Generator is the LLM call boundary, satisfied by llm.Client.
type Generator interface {
	Generate(ctx context.Context, pair prompts.PromptPair, model, apiKey string) (string, error)
}

type GenerateCourseInput struct {
	SourceURL string
	Kind      types.SourceKind
	Context   string
	Model     string
	IsPublic  bool
	UserID    *uuid.UUID
}

type GenerationService interface {
	GenerateCourse(ctx context.Context, input GenerateCourseInput) (*types.Course, error)
}

type generationService struct {
	db  *gorm.DB
	log *logger.Logger

	repoFetcher SourceFetcher
	llmsFetcher SourceFetcher
	promptStore *prompts.Store
	generator   Generator
	repairer    *course.Repairer

	courseRepo repos.CourseRepo
	tagRepo    repos.TagRepo
	userRepo   repos.UserRepo

	fallbackAPIKey string
}

func NewGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	repoFetcher SourceFetcher,
	llmsFetcher SourceFetcher,
	promptStore *prompts.Store,
	generator Generator,
	repairer *course.Repairer,
	courseRepo repos.CourseRepo,
	tagRepo repos.TagRepo,
	userRepo repos.UserRepo,
	fallbackAPIKey string,
) GenerationService {
	return &generationService{
		db:             db,
		log:            baseLog.With("service", "GenerationService"),
		repoFetcher:    repoFetcher,
		llmsFetcher:    llmsFetcher,
		promptStore:    promptStore,
		generator:      generator,
		repairer:       repairer,
		courseRepo:     courseRepo,
		tagRepo:        tagRepo,
		userRepo:       userRepo,
		fallbackAPIKey: fallbackAPIKey,
	}
}

// GenerateCourse runs the whole pipeline on the request goroutine:
// fetch source, build prompt, call the model, repair the output,
// persist, tag. No stage retries a downstream stage's work.
func (gs *generationService) GenerateCourse(ctx context.Context, input GenerateCourseInput) (*types.Course, error) {
	fetcher := gs.repoFetcher
	if input.Kind == types.SourceKindLlmsTxt {
		fetcher = gs.llmsFetcher
	}
	sourceBlob, err := fetcher.Fetch(ctx, input.SourceURL)
	if err != nil {
		return nil, err
	}

	pair, err := prompts.Build(sourceBlob, input.Context, input.Kind, gs.promptStore)
	if err != nil {
		return nil, err
	}

	apiKey := gs.resolveAPIKey(ctx, input.UserID)
	raw, err := gs.generator.Generate(ctx, pair, input.Model, apiKey)
	if err != nil {
		return nil, err
	}

	draft := gs.repairer.Repair(raw, input.SourceURL)
	tags := course.DeriveTags(draft.Title, input.Context)

	content, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode course content: %w", err)
	}

	stored := &types.Course{
		ID:        uuid.New(),
		Title:     draft.Title,
		RepoURL:   input.SourceURL,
		Context:   input.Context,
		Content:   datatypes.JSON(content),
		ModelUsed: input.Model,
		UserID:    input.UserID,
		IsPublic:  input.IsPublic,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := gs.courseRepo.Create(ctx, tx, stored); err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		for _, name := range tags {
			tag, err := gs.tagRepo.GetOrCreate(ctx, tx, name)
			if err != nil {
				return fmt.Errorf("get or create tag %q: %w", name, err)
			}
			if err := gs.tagRepo.AttachToCourse(ctx, tx, stored.ID, tag.ID); err != nil {
				return fmt.Errorf("attach tag %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stored.Tags = tags
	if stored.Tags == nil {
		stored.Tags = []string{}
	}
	gs.log.Info("course generated",
		"course_id", stored.ID.String(),
		"source_kind", string(input.Kind),
		"model", input.Model,
		"steps", len(draft.Steps),
		"tags", len(tags),
	)
	return stored, nil
}

// resolveAPIKey prefers the requesting user's stored key, then the
// process-wide fallback.
func (gs *generationService) resolveAPIKey(ctx context.Context, userID *uuid.UUID) string {
	if userID != nil {
		user, err := gs.userRepo.GetByID(ctx, nil, *userID)
		if err != nil {
			gs.log.Warn("could not load user for API key lookup, using fallback", "error", err)
		} else if user.OpenRouterKey != "" {
			return user.OpenRouterKey
		}
	}
	return gs.fallbackAPIKey
}
