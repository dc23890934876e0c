package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type AchievementRepo interface {
	SeedDefaults(ctx context.Context, tx *gorm.DB, achievements []*types.Achievement) error
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Achievement, error)
	Award(ctx context.Context, tx *gorm.DB, userID, achievementID uuid.UUID) (*types.UserAchievement, error)
	HasAward(ctx context.Context, tx *gorm.DB, userID, achievementID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (ar *achievementRepo) SeedDefaults(ctx context.Context, tx *gorm.DB, achievements []*types.Achievement) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(achievements) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&achievements).Error
}

func (ar *achievementRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var achievement types.Achievement
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (ar *achievementRepo) Award(ctx context.Context, tx *gorm.DB, userID, achievementID uuid.UUID) (*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	award := &types.UserAchievement{ID: uuid.New(), UserID: userID, AchievementID: achievementID, AwardedAt: time.Now()}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(award).Error; err != nil {
		return nil, err
	}
	return award, nil
}

func (ar *achievementRepo) HasAward(ctx context.Context, tx *gorm.DB, userID, achievementID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *achievementRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Achievement
	if err := transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Joins("JOIN user_achievement ON user_achievement.achievement_id = achievement.id").
		Where("user_achievement.user_id = ?", userID).
		Order("user_achievement.awarded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
