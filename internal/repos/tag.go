package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type TagRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error)
	AttachToCourse(ctx context.Context, tx *gorm.DB, courseID, tagID uuid.UUID) error
	GetCourseTagNames(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]string, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (tr *tagRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var tag types.Tag
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&tag).Error; err == nil {
		return &tag, nil
	}
	tag = types.Tag{ID: uuid.New(), Name: name}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&tag).Error; err != nil {
		return nil, err
	}
	// Re-read in case the conflict clause skipped the insert.
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (tr *tagRepo) AttachToCourse(ctx context.Context, tx *gorm.DB, courseID, tagID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	link := types.CourseTag{CourseID: courseID, TagID: tagID}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (tr *tagRepo) GetCourseTagNames(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var names []string
	if err := transaction.WithContext(ctx).
		Model(&types.CourseTag{}).
		Select("tag.name").
		Joins("JOIN tag ON tag.id = course_tag.tag_id").
		Where("course_tag.course_id = ?", courseID).
		Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
