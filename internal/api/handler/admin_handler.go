package handler

import (
	"Awareness/internal/api/config"
	"Awareness/internal/api/dto"
	"Awareness/internal/pkg/response"
	"Awareness/internal/service"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	metricsSvc   service.MetricsService
	dashboardSvc service.DashboardService
	seedSvc      service.SeedService
}

func NewAdminHandler(
	metricsSvc service.MetricsService,
	dashboardSvc service.DashboardService,
	seedSvc service.SeedService,
) *AdminHandler {
	return &AdminHandler{
		metricsSvc:   metricsSvc,
		dashboardSvc: dashboardSvc,
		seedSvc:      seedSvc,
	}
}

// Refresh recomputes the snapshot series for the requested (or configured)
// year. The write path upserts, so operators can re-run freely.
func (s *AdminHandler) Refresh(c *gin.Context) {
	var req dto.RefreshDTO
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return
	}
	if req.Year == 0 {
		req.Year = config.Cfg.Metrics.Year
	}

	if err := s.metricsSvc.RunYearly(c.Request.Context(), req.Year); err != nil {
		response.Error(c, err)
		return
	}
	s.dashboardSvc.InvalidateSeriesCache(c.Request.Context(), req.Year)

	response.Success(c, gin.H{"year": req.Year})
}

// Seed loads demo fixtures into the store.
func (s *AdminHandler) Seed(c *gin.Context) {
	var req dto.SeedDTO
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return
	}
	if req.Users == 0 {
		req.Users = config.Cfg.Seed.Users
	}

	if err := s.seedSvc.Seed(c.Request.Context(), req.Users); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"users": req.Users})
}
