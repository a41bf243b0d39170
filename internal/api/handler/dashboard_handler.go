package handler

import (
	"Awareness/internal/api/config"
	"Awareness/internal/api/dto"
	"Awareness/internal/pkg/response"
	"Awareness/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
	}
}

func (s *DashboardHandler) GetSeries(c *gin.Context) {
	query, err := bindSeriesQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	series, err := s.dashboardSvc.GetSeries(c.Request.Context(), query.Units, query.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, series)
}

func (s *DashboardHandler) GetPivot(c *gin.Context) {
	query, err := bindSeriesQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	pivot, err := s.dashboardSvc.GetPivot(c.Request.Context(), query.Units, query.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pivot)
}

func (s *DashboardHandler) GetProportion(c *gin.Context) {
	query, err := bindSeriesQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	proportion, err := s.dashboardSvc.GetProportion(c.Request.Context(), query.Units, query.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, proportion)
}

func (s *DashboardHandler) GetRanking(c *gin.Context) {
	query, err := bindSeriesQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ranking, err := s.dashboardSvc.GetRanking(c.Request.Context(), query.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ranking)
}

// bindSeriesQuery parses units/year, accepting both repeated unit params
// and a single comma-separated value; the year defaults to the configured
// reporting year.
func bindSeriesQuery(c *gin.Context) (*dto.SeriesQueryDTO, error) {
	var query dto.SeriesQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		return nil, err
	}

	if len(query.Units) == 1 && strings.Contains(query.Units[0], ",") {
		query.Units = strings.Split(query.Units[0], ",")
	}
	for i, unit := range query.Units {
		query.Units[i] = strings.TrimSpace(unit)
	}

	if query.Year == 0 {
		query.Year = config.Cfg.Metrics.Year
	}
	return &query, nil
}
