package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Step is one unit of a generated course. It is stored inside the
// course content JSON, not as its own table.
type Step struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CourseDraft is the validated but not yet persisted course document.
// Steps is always non-nil after repair, possibly empty.
type CourseDraft struct {
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

type Course struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	RepoURL   string         `gorm:"not null;column:repo_url" json:"repoUrl"`
	Context   string         `gorm:"not null;column:context" json:"context"`
	Content   datatypes.JSON `gorm:"not null;column:content" json:"content"`
	ModelUsed string         `gorm:"not null;column:model_used" json:"modelUsed"`
	UserID    *uuid.UUID     `gorm:"type:uuid;column:user_id" json:"userId,omitempty"`
	IsPublic  bool           `gorm:"not null;default:false;column:is_public" json:"isPublic"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`

	Tags []string `gorm:"-" json:"tags"`
}

func (Course) TableName() string {
	return "course"
}
