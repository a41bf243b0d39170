package job

import (
	"Awareness/internal/pkg/logger"
	"Awareness/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// MetricsRefreshJob recomputes the yearly snapshot series. Writes are
// upserts, so an overlapping or repeated run converges instead of
// duplicating rows.
type MetricsRefreshJob struct {
	metricsSvc   service.MetricsService
	dashboardSvc service.DashboardService
	year         int
}

func NewMetricsRefreshJob(
	metricsSvc service.MetricsService,
	dashboardSvc service.DashboardService,
	year int,
) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		metricsSvc:   metricsSvc,
		dashboardSvc: dashboardSvc,
		year:         year,
	}
}

func (s *MetricsRefreshJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	log.InfoContext(ctx, "metrics refresh started", "year", s.year)

	if err := s.metricsSvc.RunYearly(ctx, s.year); err != nil {
		log.ErrorContext(ctx, "metrics refresh failed", "year", s.year, "err", err)
		return
	}

	s.dashboardSvc.InvalidateSeriesCache(ctx, s.year)
	log.InfoContext(ctx, "metrics refresh finished", "year", s.year)
}
