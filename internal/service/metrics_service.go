package service

import (
	"Awareness/internal/model"
	"Awareness/internal/pkg/consts"
	"Awareness/internal/pkg/util"
	"Awareness/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

type MetricsService interface {
	// RunYearly walks the twelve month-end checkpoints of the year and
	// upserts one snapshot per (checkpoint, business unit).
	RunYearly(ctx context.Context, year int) error
}

type metricsServiceImpl struct {
	userRepo       repository.UserRepo
	assignmentRepo repository.AssignmentRepo
	snapshotRepo   repository.SnapshotRepo
}

func NewMetricsService(
	userRepo repository.UserRepo,
	assignmentRepo repository.AssignmentRepo,
	snapshotRepo repository.SnapshotRepo,
) MetricsService {
	return &metricsServiceImpl{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		snapshotRepo:   snapshotRepo,
	}
}

func (s *metricsServiceImpl) RunYearly(ctx context.Context, year int) error {
	if year < 2000 || year > 2100 {
		return ErrYearInvalid
	}

	started := time.Now()
	for _, checkpoint := range util.MonthEnds(year) {
		for _, unit := range consts.BusinessUnits {
			if err := s.computeSnapshot(ctx, checkpoint, unit); err != nil {
				// Fail loudly with the exact (checkpoint, unit); a silent
				// zero row would be indistinguishable from an empty cohort.
				return fmt.Errorf("snapshot %s / %s: %w",
					checkpoint.Format(time.DateOnly), unit, err)
			}
		}
	}

	log.InfoContext(ctx, "yearly metrics aggregation finished",
		"year", year,
		"checkpoints", 12,
		"units", len(consts.BusinessUnits),
		"elapsed", time.Since(started),
	)
	return nil
}

// computeSnapshot derives the three rates of one (checkpoint, unit) cell.
//
// Cohort = users of the unit with start_date <= checkpoint. Active = cohort
// members not yet deactivated at the checkpoint. External rate shares the
// cohort denominator with the active rate, so external <= active always.
// Completion is counted over the active subset only.
func (s *metricsServiceImpl) computeSnapshot(ctx context.Context, checkpoint time.Time, unit string) error {
	snapshot := &model.MetricSnapshot{
		CheckpointDate: checkpoint,
		BusinessUnit:   unit,
	}

	total, err := s.userRepo.CountCohort(ctx, unit, checkpoint)
	if err != nil {
		return fmt.Errorf("count cohort: %w", err)
	}

	// A unit with no starters yet is a legitimate all-zero row, not an error.
	if total == 0 {
		return s.snapshotRepo.SaveOrUpdateSnapshot(ctx, snapshot)
	}

	active, err := s.userRepo.CountActive(ctx, unit, checkpoint)
	if err != nil {
		return fmt.Errorf("count active: %w", err)
	}

	external, err := s.userRepo.CountActiveExternal(ctx, unit, checkpoint)
	if err != nil {
		return fmt.Errorf("count active external: %w", err)
	}

	snapshot.ActiveRate = float64(active) / float64(total) * 100
	snapshot.ExternalRate = float64(external) / float64(total) * 100

	if active > 0 {
		completed, err := s.assignmentRepo.CountDistinctCompleted(ctx, unit, checkpoint)
		if err != nil {
			return fmt.Errorf("count completed: %w", err)
		}
		snapshot.CompletionRate = float64(completed) / float64(active) * 100
	}

	return s.snapshotRepo.SaveOrUpdateSnapshot(ctx, snapshot)
}
