package types

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (Tag) TableName() string {
	return "tag"
}

type CourseTag struct {
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;column:tag_id" json:"tag_id"`
}

func (CourseTag) TableName() string {
	return "course_tag"
}
