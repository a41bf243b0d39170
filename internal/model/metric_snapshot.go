package model

import "time"

// MetricSnapshot is the derived monthly fact row, one per
// (checkpoint_date, business_unit). The composite unique index makes the
// aggregator upsert instead of append, so re-runs converge.
type MetricSnapshot struct {
	ID             uint64    `gorm:"primaryKey"`
	CheckpointDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_checkpoint_unit"`
	BusinessUnit   string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_checkpoint_unit"`
	ActiveRate     float64   `gorm:"not null"`
	ExternalRate   float64   `gorm:"not null"`
	CompletionRate float64   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (MetricSnapshot) TableName() string {
	return "metric_snapshots"
}
