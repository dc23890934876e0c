package types

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"not null;column:description" json:"description"`
}

func (Achievement) TableName() string {
	return "achievement"
}

type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement;column:user_id" json:"user_id"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement;column:achievement_id" json:"achievement_id"`
	AwardedAt     time.Time `gorm:"not null" json:"awarded_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievement"
}
