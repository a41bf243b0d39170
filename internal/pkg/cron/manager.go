package cron

import (
	"Awareness/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const defaultRefreshSpec = "0 0 4 1 * *" // 04:00 on the first of every month

type Manager struct {
	engine      *cron.Cron
	refreshSpec string
	refreshJob  *job.MetricsRefreshJob
}

func NewCronManager(refreshJob *job.MetricsRefreshJob, refreshSpec string) *Manager {
	if refreshSpec == "" {
		refreshSpec = defaultRefreshSpec
	}
	return &Manager{
		engine:      cron.New(cron.WithSeconds()),
		refreshSpec: refreshSpec,
		refreshJob:  refreshJob,
	}
}

// RegisterJobs wires the scheduled jobs into the engine.
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.refreshSpec, s.refreshJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started", "refresh_spec", s.refreshSpec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopped")
	s.engine.Stop()
}
