package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type CourseService interface {
	GetPublicCourses(ctx context.Context) ([]*types.Course, error)
	GetCourse(ctx context.Context, courseID uuid.UUID, requester *uuid.UUID) (*types.Course, error)
	GetUserCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error)
	DeleteUserCourse(ctx context.Context, courseID, userID uuid.UUID) error
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	tagRepo    repos.TagRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo, tagRepo repos.TagRepo) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
		tagRepo:    tagRepo,
	}
}

func (cs *courseService) GetPublicCourses(ctx context.Context) ([]*types.Course, error) {
	courses, err := cs.courseRepo.GetPublic(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load public courses: %w", err)
	}
	return cs.attachTags(ctx, courses)
}

// GetCourse returns a course if it is public or owned by the requester.
func (cs *courseService) GetCourse(ctx context.Context, courseID uuid.UUID, requester *uuid.UUID) (*types.Course, error) {
	crs, err := cs.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found")
	}
	if !crs.IsPublic {
		if requester == nil || crs.UserID == nil || *crs.UserID != *requester {
			return nil, fmt.Errorf("course not found")
		}
	}
	courses, err := cs.attachTags(ctx, []*types.Course{crs})
	if err != nil {
		return nil, err
	}
	return courses[0], nil
}

func (cs *courseService) GetUserCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error) {
	courses, err := cs.courseRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user courses: %w", err)
	}
	return cs.attachTags(ctx, courses)
}

func (cs *courseService) DeleteUserCourse(ctx context.Context, courseID, userID uuid.UUID) error {
	deleted, err := cs.courseRepo.DeleteOwned(ctx, nil, courseID, userID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if !deleted {
		return fmt.Errorf("course not found")
	}
	return nil
}

func (cs *courseService) attachTags(ctx context.Context, courses []*types.Course) ([]*types.Course, error) {
	for _, crs := range courses {
		names, err := cs.tagRepo.GetCourseTagNames(ctx, nil, crs.ID)
		if err != nil {
			return nil, fmt.Errorf("load course tags: %w", err)
		}
		if names == nil {
			names = []string{}
		}
		crs.Tags = names
	}
	return courses, nil
}
