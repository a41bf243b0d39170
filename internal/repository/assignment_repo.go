package repository

import (
	"Awareness/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type AssignmentRepo interface {
	// CountDistinctCompleted counts the distinct users of a unit that are
	// active as of asOf and hold at least one assignment completed on or
	// before asOf. A user with several completed assignments counts once.
	CountDistinctCompleted(ctx context.Context, unit string, asOf time.Time) (int64, error)
	ListAssignments(ctx context.Context) ([]*model.Assignment, error)
	BatchCreateAssignments(ctx context.Context, assignments []*model.Assignment) error
}

type AssignmentRepoImpl struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepo {
	return &AssignmentRepoImpl{db: db}
}

func (s *AssignmentRepoImpl) CountDistinctCompleted(ctx context.Context, unit string, asOf time.Time) (int64, error) {
	var n int64
	result := s.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Joins("JOIN users ON users.username = assignments.username").
		Where("users.business_unit = ?", unit).
		Where("users.start_date <= ?", asOf).
		Where("(users.end_date IS NULL OR users.end_date >= ?)", asOf).
		Where("assignments.completion_date IS NOT NULL").
		Where("assignments.completion_date <= ?", asOf).
		Distinct("assignments.username").
		Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

func (s *AssignmentRepoImpl) ListAssignments(ctx context.Context) ([]*model.Assignment, error) {
	assignments := make([]*model.Assignment, 0)
	result := s.db.WithContext(ctx).
		Order("id ASC").
		Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}
	return assignments, nil
}

func (s *AssignmentRepoImpl) BatchCreateAssignments(ctx context.Context, assignments []*model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(assignments, 100).Error
}
