package repository

import (
	"Awareness/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type UserRepo interface {
	// CountCohort counts the users of a unit that had started on or
	// before asOf, regardless of whether they have since left.
	CountCohort(ctx context.Context, unit string, asOf time.Time) (int64, error)
	// CountActive narrows the cohort to users whose end date is unset or
	// on/after asOf.
	CountActive(ctx context.Context, unit string, asOf time.Time) (int64, error)
	// CountActiveExternal narrows the active subset to external users.
	CountActiveExternal(ctx context.Context, unit string, asOf time.Time) (int64, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	BatchCreateUsers(ctx context.Context, users []*model.User) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) CountCohort(ctx context.Context, unit string, asOf time.Time) (int64, error) {
	var n int64
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("business_unit = ?", unit).
		Where("start_date <= ?", asOf).
		Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

func (s *UserRepoImpl) CountActive(ctx context.Context, unit string, asOf time.Time) (int64, error) {
	var n int64
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("business_unit = ?", unit).
		Where("start_date <= ?", asOf).
		Where("(end_date IS NULL OR end_date >= ?)", asOf).
		Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

func (s *UserRepoImpl) CountActiveExternal(ctx context.Context, unit string, asOf time.Time) (int64, error) {
	var n int64
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("business_unit = ?", unit).
		Where("start_date <= ?", asOf).
		Where("(end_date IS NULL OR end_date >= ?)", asOf).
		Where("is_external = ?", true).
		Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

func (s *UserRepoImpl) ListUsers(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Order("username ASC").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) BatchCreateUsers(ctx context.Context, users []*model.User) error {
	if len(users) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(users, 100).Error
}
