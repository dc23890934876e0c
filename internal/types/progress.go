package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserProgress tracks which steps of a course a user has completed.
// CompletedSteps holds a JSON array of step ids.
type UserProgress struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_course;column:user_id" json:"user_id"`
	CourseID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_course;column:course_id" json:"course_id"`
	CompletedSteps datatypes.JSON `gorm:"not null;column:completed_steps" json:"completed_steps"`
	CompletedAt    *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
