package repository

import (
	"Awareness/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo interface {
	// SaveOrUpdateSnapshot upserts on (checkpoint_date, business_unit),
	// so re-running the aggregator never accumulates duplicate rows.
	SaveOrUpdateSnapshot(ctx context.Context, snapshot *model.MetricSnapshot) error
	GetSnapshotsByYear(ctx context.Context, year int) ([]*model.MetricSnapshot, error)
	ListSnapshots(ctx context.Context) ([]*model.MetricSnapshot, error)
}

type SnapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &SnapshotRepoImpl{db: db}
}

func (s *SnapshotRepoImpl) SaveOrUpdateSnapshot(ctx context.Context, snapshot *model.MetricSnapshot) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "checkpoint_date"}, {Name: "business_unit"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"active_rate", "external_rate", "completion_rate", "updated_at",
		}),
	}).Create(snapshot).Error
}

func (s *SnapshotRepoImpl) GetSnapshotsByYear(ctx context.Context, year int) ([]*model.MetricSnapshot, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	snapshots := make([]*model.MetricSnapshot, 0)
	result := s.db.WithContext(ctx).
		Where("checkpoint_date BETWEEN ? AND ?", from, to).
		Order("checkpoint_date ASC, business_unit ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}

func (s *SnapshotRepoImpl) ListSnapshots(ctx context.Context) ([]*model.MetricSnapshot, error) {
	snapshots := make([]*model.MetricSnapshot, 0)
	result := s.db.WithContext(ctx).
		Order("checkpoint_date ASC, business_unit ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}
