package service

import (
	"Awareness/internal/api/dto"
	"Awareness/internal/model"
	"Awareness/internal/pkg/consts"
	"Awareness/internal/pkg/redis"
	"Awareness/internal/pkg/util"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type DashboardService interface {
	GetSeries(ctx context.Context, units []string, year int) ([]*dto.SnapshotPointDTO, error)
	GetPivot(ctx context.Context, units []string, year int) (*dto.CompletionPivotDTO, error)
	GetProportion(ctx context.Context, units []string, year int) ([]*dto.UnitProportionDTO, error)
	GetRanking(ctx context.Context, year int) (*dto.UnitRankingDTO, error)
	// InvalidateSeriesCache drops the cached series after a refresh run.
	InvalidateSeriesCache(ctx context.Context, year int)
}

type dashboardServiceImpl struct {
	snapshotRepo SnapshotReader
}

// SnapshotReader is the slice of the snapshot repository the dashboard needs.
type SnapshotReader interface {
	GetSnapshotsByYear(ctx context.Context, year int) ([]*model.MetricSnapshot, error)
}

func NewDashboardService(snapshotRepo SnapshotReader) DashboardService {
	return &dashboardServiceImpl{snapshotRepo: snapshotRepo}
}

func (s *dashboardServiceImpl) GetSeries(ctx context.Context, units []string, year int) ([]*dto.SnapshotPointDTO, error) {
	units, err := normalizeUnits(units)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.yearSnapshots(ctx, year)
	if err != nil {
		return nil, err
	}

	return buildSeries(filterByUnits(snapshots, units)), nil
}

func (s *dashboardServiceImpl) GetPivot(ctx context.Context, units []string, year int) (*dto.CompletionPivotDTO, error) {
	units, err := normalizeUnits(units)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.yearSnapshots(ctx, year)
	if err != nil {
		return nil, err
	}

	return buildPivot(filterByUnits(snapshots, units), units, year), nil
}

func (s *dashboardServiceImpl) GetProportion(ctx context.Context, units []string, year int) ([]*dto.UnitProportionDTO, error) {
	units, err := normalizeUnits(units)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.yearSnapshots(ctx, year)
	if err != nil {
		return nil, err
	}

	return buildProportion(filterByUnits(snapshots, units), units), nil
}

func (s *dashboardServiceImpl) GetRanking(ctx context.Context, year int) (*dto.UnitRankingDTO, error) {
	snapshots, err := s.yearSnapshots(ctx, year)
	if err != nil {
		return nil, err
	}

	return buildRanking(snapshots), nil
}

func (s *dashboardServiceImpl) InvalidateSeriesCache(ctx context.Context, year int) {
	key := consts.SnapshotSeriesKey + strconv.Itoa(year)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "failed to invalidate snapshot cache", "key", key, "err", err)
	}
}

// yearSnapshots serves the unfiltered year series from redis when possible;
// unit filtering happens in memory afterwards.
func (s *dashboardServiceImpl) yearSnapshots(ctx context.Context, year int) ([]*model.MetricSnapshot, error) {
	key := consts.SnapshotSeriesKey + strconv.Itoa(year)

	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		snapshots := make([]*model.MetricSnapshot, 0)
		if err := json.Unmarshal([]byte(cached), &snapshots); err == nil {
			return snapshots, nil
		}
	}

	snapshots, err := s.snapshotRepo.GetSnapshotsByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	s.cacheSnapshots(ctx, key, snapshots)
	return snapshots, nil
}

func (s *dashboardServiceImpl) cacheSnapshots(ctx context.Context, key string, snapshots []*model.MetricSnapshot) {
	raw, err := json.Marshal(snapshots)
	if err != nil {
		return
	}

	// Expire shortly before midnight so a stale series never survives the day.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	expiration := time.Until(midnight) - time.Minute*5
	if expiration < 0 {
		return
	}

	_ = redis.SetWithExpiration(ctx, key, string(raw), expiration)
}

func normalizeUnits(units []string) ([]string, error) {
	if len(units) == 0 {
		return consts.BusinessUnits, nil
	}
	for _, u := range units {
		if !consts.IsBusinessUnit(u) {
			return nil, ErrUnknownBusinessUnit
		}
	}
	return units, nil
}

func filterByUnits(snapshots []*model.MetricSnapshot, units []string) []*model.MetricSnapshot {
	allowed := make(map[string]struct{}, len(units))
	for _, u := range units {
		allowed[u] = struct{}{}
	}

	filtered := make([]*model.MetricSnapshot, 0, len(snapshots))
	for _, snap := range snapshots {
		if _, ok := allowed[snap.BusinessUnit]; ok {
			filtered = append(filtered, snap)
		}
	}
	return filtered
}

func buildSeries(snapshots []*model.MetricSnapshot) []*dto.SnapshotPointDTO {
	points := make([]*dto.SnapshotPointDTO, 0, len(snapshots))
	for _, snap := range snapshots {
		points = append(points, &dto.SnapshotPointDTO{
			Date:           snap.CheckpointDate.Format(time.DateOnly),
			Month:          util.MonthLabel(snap.CheckpointDate),
			BusinessUnit:   snap.BusinessUnit,
			ActiveRate:     snap.ActiveRate,
			ExternalRate:   snap.ExternalRate,
			CompletionRate: snap.CompletionRate,
		})
	}
	return points
}

func buildPivot(snapshots []*model.MetricSnapshot, units []string, year int) *dto.CompletionPivotDTO {
	byMonth := make(map[string]map[string]float64)
	for _, snap := range snapshots {
		label := util.MonthLabel(snap.CheckpointDate)
		if byMonth[label] == nil {
			byMonth[label] = make(map[string]float64)
		}
		byMonth[label][snap.BusinessUnit] = snap.CompletionRate
	}

	rows := make([]*dto.PivotRowDTO, 0, 12)
	for _, label := range util.MonthLabels(year) {
		values := byMonth[label]
		if values == nil {
			values = make(map[string]float64)
		}
		rows = append(rows, &dto.PivotRowDTO{Month: label, Values: values})
	}

	return &dto.CompletionPivotDTO{Units: units, Rows: rows}
}

func buildProportion(snapshots []*model.MetricSnapshot, units []string) []*dto.UnitProportionDTO {
	type acc struct {
		active   float64
		external float64
		n        int
	}
	sums := make(map[string]*acc, len(units))
	for _, snap := range snapshots {
		a := sums[snap.BusinessUnit]
		if a == nil {
			a = &acc{}
			sums[snap.BusinessUnit] = a
		}
		a.active += snap.ActiveRate
		a.external += snap.ExternalRate
		a.n++
	}

	proportions := make([]*dto.UnitProportionDTO, 0, len(units))
	for _, unit := range units {
		p := &dto.UnitProportionDTO{BusinessUnit: unit}
		if a := sums[unit]; a != nil && a.n > 0 {
			meanActive := a.active / float64(a.n)
			meanExternal := a.external / float64(a.n)
			// Renormalize over the active base; both shares sum to 100
			// when any activity exists.
			if meanActive > 0 {
				p.InternalShare = (meanActive - meanExternal) / meanActive * 100
				p.ExternalShare = meanExternal / meanActive * 100
			}
		}
		proportions = append(proportions, p)
	}
	return proportions
}

func buildRanking(snapshots []*model.MetricSnapshot) *dto.UnitRankingDTO {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, snap := range snapshots {
		sums[snap.BusinessUnit] += snap.CompletionRate
		counts[snap.BusinessUnit]++
	}

	entries := make([]*dto.RankingEntryDTO, 0, len(sums))
	for unit, sum := range sums {
		entries = append(entries, &dto.RankingEntryDTO{
			BusinessUnit:      unit,
			AvgCompletionRate: sum / float64(counts[unit]),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgCompletionRate != entries[j].AvgCompletionRate {
			return entries[i].AvgCompletionRate > entries[j].AvgCompletionRate
		}
		return entries[i].BusinessUnit < entries[j].BusinessUnit
	})

	ranking := &dto.UnitRankingDTO{Entries: entries}
	if len(entries) > 0 {
		ranking.Top = entries[0].BusinessUnit
		ranking.Bottom = entries[len(entries)-1].BusinessUnit
	}
	return ranking
}
