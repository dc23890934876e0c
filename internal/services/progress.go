package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type ProgressService interface {
	GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*types.UserProgress, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*types.UserProgress, error)
	MarkStepComplete(ctx context.Context, userID, courseID uuid.UUID, stepID int) (*types.UserProgress, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRepo
	courseRepo   repos.CourseRepo
	achievements AchievementService
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	progressRepo repos.ProgressRepo,
	courseRepo repos.CourseRepo,
	achievements AchievementService,
) ProgressService {
	return &progressService{
		db:           db,
		log:          baseLog.With("service", "ProgressService"),
		progressRepo: progressRepo,
		courseRepo:   courseRepo,
		achievements: achievements,
	}
}

func (ps *progressService) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*types.UserProgress, error) {
	progress, err := ps.progressRepo.Get(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if progress == nil {
		progress = &types.UserProgress{
			ID:             uuid.New(),
			UserID:         userID,
			CourseID:       courseID,
			CompletedSteps: datatypes.JSON([]byte("[]")),
		}
	}
	return progress, nil
}

func (ps *progressService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*types.UserProgress, error) {
	return ps.progressRepo.ListByUser(ctx, nil, userID)
}

// MarkStepComplete records a completed step; when every step of the
// course is complete it stamps CompletedAt and runs achievement checks.
func (ps *progressService) MarkStepComplete(ctx context.Context, userID, courseID uuid.UUID, stepID int) (*types.UserProgress, error) {
	crs, err := ps.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found")
	}
	var draft types.CourseDraft
	if err := json.Unmarshal(crs.Content, &draft); err != nil {
		return nil, fmt.Errorf("decode course content: %w", err)
	}
	if !stepExists(draft.Steps, stepID) {
		return nil, fmt.Errorf("step %d not found in course", stepID)
	}

	progress, err := ps.GetProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	var completed []int
	if err := json.Unmarshal(progress.CompletedSteps, &completed); err != nil {
		completed = nil
	}
	if !containsStep(completed, stepID) {
		completed = append(completed, stepID)
	}
	raw, err := json.Marshal(completed)
	if err != nil {
		return nil, fmt.Errorf("encode completed steps: %w", err)
	}
	progress.CompletedSteps = datatypes.JSON(raw)
	progress.UpdatedAt = time.Now()
	if len(completed) >= len(draft.Steps) && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if _, err := ps.progressRepo.Upsert(ctx, nil, progress); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	if ps.achievements != nil {
		if _, err := ps.achievements.CheckAndAward(ctx, userID); err != nil {
			ps.log.Warn("achievement check failed", "error", err)
		}
	}
	return progress, nil
}

func stepExists(steps []types.Step, stepID int) bool {
	for _, step := range steps {
		if step.ID == stepID {
			return true
		}
	}
	return false
}

func containsStep(completed []int, stepID int) bool {
	for _, id := range completed {
		if id == stepID {
			return true
		}
	}
	return false
}
