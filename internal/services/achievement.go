package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

const (
	achievementFirstSteps     = "first_steps"
	achievementCourseComplete = "course_complete"
	achievementCourseCreator  = "course_creator"
)

func defaultAchievements() []*types.Achievement {
	return []*types.Achievement{
		{ID: uuid.New(), Code: achievementFirstSteps, Name: "First Steps", Description: "Complete your first course step."},
		{ID: uuid.New(), Code: achievementCourseComplete, Name: "Course Complete", Description: "Finish every step of a course."},
		{ID: uuid.New(), Code: achievementCourseCreator, Name: "Course Creator", Description: "Generate five courses."},
	}
}

type AchievementService interface {
	Seed(ctx context.Context) error
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error)
	CheckAndAward(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error)
}

type achievementService struct {
	db              *gorm.DB
	log             *logger.Logger
	achievementRepo repos.AchievementRepo
	progressRepo    repos.ProgressRepo
	courseRepo      repos.CourseRepo
}

func NewAchievementService(
	db *gorm.DB,
	baseLog *logger.Logger,
	achievementRepo repos.AchievementRepo,
	progressRepo repos.ProgressRepo,
	courseRepo repos.CourseRepo,
) AchievementService {
	return &achievementService{
		db:              db,
		log:             baseLog.With("service", "AchievementService"),
		achievementRepo: achievementRepo,
		progressRepo:    progressRepo,
		courseRepo:      courseRepo,
	}
}

func (as *achievementService) Seed(ctx context.Context) error {
	return as.achievementRepo.SeedDefaults(ctx, nil, defaultAchievements())
}

func (as *achievementService) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error) {
	achievements, err := as.achievementRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	if achievements == nil {
		achievements = []*types.Achievement{}
	}
	return achievements, nil
}

// CheckAndAward evaluates every rule and awards whichever newly apply.
// Rules are cheap count queries; awarding is idempotent.
func (as *achievementService) CheckAndAward(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error) {
	var awarded []*types.Achievement

	progressList, err := as.progressRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	hasAnyStep := false
	for _, progress := range progressList {
		var steps []int
		if err := json.Unmarshal(progress.CompletedSteps, &steps); err == nil && len(steps) > 0 {
			hasAnyStep = true
			break
		}
	}
	if hasAnyStep {
		if a, err := as.awardOnce(ctx, userID, achievementFirstSteps); err == nil && a != nil {
			awarded = append(awarded, a)
		}
	}

	completedCourses, err := as.progressRepo.CountCompletedByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count completed courses: %w", err)
	}
	if completedCourses > 0 {
		if a, err := as.awardOnce(ctx, userID, achievementCourseComplete); err == nil && a != nil {
			awarded = append(awarded, a)
		}
	}

	createdCourses, err := as.courseRepo.CountByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count created courses: %w", err)
	}
	if createdCourses >= 5 {
		if a, err := as.awardOnce(ctx, userID, achievementCourseCreator); err == nil && a != nil {
			awarded = append(awarded, a)
		}
	}

	return awarded, nil
}

func (as *achievementService) awardOnce(ctx context.Context, userID uuid.UUID, code string) (*types.Achievement, error) {
	achievement, err := as.achievementRepo.GetByCode(ctx, nil, code)
	if err != nil {
		return nil, err
	}
	has, err := as.achievementRepo.HasAward(ctx, nil, userID, achievement.ID)
	if err != nil || has {
		return nil, err
	}
	if _, err := as.achievementRepo.Award(ctx, nil, userID, achievement.ID); err != nil {
		return nil, err
	}
	as.log.Info("achievement awarded", "user_id", userID.String(), "code", code)
	return achievement, nil
}
