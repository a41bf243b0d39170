package repository

import (
	"Awareness/internal/model"
	"context"

	"gorm.io/gorm"
)

type CourseRepo interface {
	ListCourses(ctx context.Context) ([]*model.Course, error)
	CountCourses(ctx context.Context) (int64, error)
	BatchCreateCourses(ctx context.Context, courses []*model.Course) error
}

type CourseRepoImpl struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) CourseRepo {
	return &CourseRepoImpl{db: db}
}

func (s *CourseRepoImpl) ListCourses(ctx context.Context) ([]*model.Course, error) {
	courses := make([]*model.Course, 0)
	result := s.db.WithContext(ctx).
		Order("id ASC").
		Find(&courses)
	if result.Error != nil {
		return nil, result.Error
	}
	return courses, nil
}

func (s *CourseRepoImpl) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	result := s.db.WithContext(ctx).Model(&model.Course{}).Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

func (s *CourseRepoImpl) BatchCreateCourses(ctx context.Context, courses []*model.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(courses, 100).Error
}
