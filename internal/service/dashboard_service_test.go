package service

import (
	"Awareness/internal/model"
	"Awareness/internal/pkg/consts"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(date time.Time, unit string, active, external, completion float64) *model.MetricSnapshot {
	return &model.MetricSnapshot{
		CheckpointDate: date,
		BusinessUnit:   unit,
		ActiveRate:     active,
		ExternalRate:   external,
		CompletionRate: completion,
	}
}

func TestNormalizeUnits(t *testing.T) {
	t.Run("Should default to all business units", func(t *testing.T) {
		units, err := normalizeUnits(nil)
		require.NoError(t, err)
		assert.Equal(t, consts.BusinessUnits, units)
	})

	t.Run("Should pass known units through", func(t *testing.T) {
		units, err := normalizeUnits([]string{consts.UnitMercadoPago})
		require.NoError(t, err)
		assert.Equal(t, []string{consts.UnitMercadoPago}, units)
	})

	t.Run("Should reject an unknown unit", func(t *testing.T) {
		_, err := normalizeUnits([]string{"Mercado Shops"})
		require.ErrorIs(t, err, ErrUnknownBusinessUnit)
	})
}

func TestFilterByUnits(t *testing.T) {
	jan := day(2024, time.January, 31)
	snapshots := []*model.MetricSnapshot{
		snap(jan, consts.UnitMercadoLibre, 80, 20, 50),
		snap(jan, consts.UnitMercadoPago, 90, 10, 60),
		snap(jan, consts.UnitMercadoEnvios, 70, 30, 40),
	}

	t.Run("Should keep only the requested units", func(t *testing.T) {
		filtered := filterByUnits(snapshots, []string{consts.UnitMercadoPago})
		require.Len(t, filtered, 1)
		assert.Equal(t, consts.UnitMercadoPago, filtered[0].BusinessUnit)
	})

	t.Run("Should return an empty slice for an empty selection", func(t *testing.T) {
		assert.Empty(t, filterByUnits(snapshots, nil))
	})
}

func TestBuildSeries(t *testing.T) {
	t.Run("Should expose dates and Spanish month labels", func(t *testing.T) {
		points := buildSeries([]*model.MetricSnapshot{
			snap(day(2024, time.February, 29), consts.UnitMercadoLibre, 80, 20, 50),
		})
		require.Len(t, points, 1)
		assert.Equal(t, "2024-02-29", points[0].Date)
		assert.Equal(t, "Feb 2024", points[0].Month)
		assert.Equal(t, 80.0, points[0].ActiveRate)
		assert.Equal(t, 20.0, points[0].ExternalRate)
		assert.Equal(t, 50.0, points[0].CompletionRate)
	})
}

func TestBuildPivot(t *testing.T) {
	snapshots := []*model.MetricSnapshot{
		snap(day(2024, time.January, 31), consts.UnitMercadoLibre, 80, 20, 25),
		snap(day(2024, time.January, 31), consts.UnitMercadoPago, 90, 10, 75),
		snap(day(2024, time.March, 31), consts.UnitMercadoLibre, 80, 20, 50),
	}
	units := []string{consts.UnitMercadoLibre, consts.UnitMercadoPago}

	pivot := buildPivot(snapshots, units, 2024)

	t.Run("Should emit twelve ordered month rows", func(t *testing.T) {
		require.Len(t, pivot.Rows, 12)
		assert.Equal(t, "Ene 2024", pivot.Rows[0].Month)
		assert.Equal(t, "Dic 2024", pivot.Rows[11].Month)
	})

	t.Run("Should place completion rates under their unit column", func(t *testing.T) {
		assert.Equal(t, 25.0, pivot.Rows[0].Values[consts.UnitMercadoLibre])
		assert.Equal(t, 75.0, pivot.Rows[0].Values[consts.UnitMercadoPago])
		assert.Equal(t, 50.0, pivot.Rows[2].Values[consts.UnitMercadoLibre])
	})

	t.Run("Should leave months without snapshots empty", func(t *testing.T) {
		assert.Empty(t, pivot.Rows[1].Values)
	})
}

func TestBuildProportion(t *testing.T) {
	t.Run("Should renormalize shares over the active base", func(t *testing.T) {
		snapshots := []*model.MetricSnapshot{
			snap(day(2024, time.January, 31), consts.UnitMercadoLibre, 80, 20, 0),
			snap(day(2024, time.February, 29), consts.UnitMercadoLibre, 60, 30, 0),
		}
		proportions := buildProportion(snapshots, []string{consts.UnitMercadoLibre})
		require.Len(t, proportions, 1)

		// Mean active 70, mean external 25.
		p := proportions[0]
		assert.InDelta(t, 25.0/70.0*100, p.ExternalShare, 1e-9)
		assert.InDelta(t, 45.0/70.0*100, p.InternalShare, 1e-9)
		assert.InDelta(t, 100.0, p.InternalShare+p.ExternalShare, 1e-9)
	})

	t.Run("Should zero both shares when the unit never had activity", func(t *testing.T) {
		snapshots := []*model.MetricSnapshot{
			snap(day(2024, time.January, 31), consts.UnitMercadoEnvios, 0, 0, 0),
		}
		proportions := buildProportion(snapshots, []string{consts.UnitMercadoEnvios})
		require.Len(t, proportions, 1)
		assert.Zero(t, proportions[0].InternalShare)
		assert.Zero(t, proportions[0].ExternalShare)
	})

	t.Run("Should keep the requested unit order", func(t *testing.T) {
		units := []string{consts.UnitMercadoEnvios, consts.UnitMercadoLibre}
		proportions := buildProportion(nil, units)
		require.Len(t, proportions, 2)
		assert.Equal(t, consts.UnitMercadoEnvios, proportions[0].BusinessUnit)
		assert.Equal(t, consts.UnitMercadoLibre, proportions[1].BusinessUnit)
	})
}

func TestBuildRanking(t *testing.T) {
	t.Run("Should rank units by average completion descending", func(t *testing.T) {
		snapshots := []*model.MetricSnapshot{
			snap(day(2024, time.January, 31), consts.UnitMercadoLibre, 80, 20, 40),
			snap(day(2024, time.February, 29), consts.UnitMercadoLibre, 80, 20, 60),
			snap(day(2024, time.January, 31), consts.UnitMercadoPago, 90, 10, 90),
			snap(day(2024, time.January, 31), consts.UnitMercadoEnvios, 70, 30, 10),
		}
		ranking := buildRanking(snapshots)

		require.Len(t, ranking.Entries, 3)
		assert.Equal(t, consts.UnitMercadoPago, ranking.Top)
		assert.Equal(t, consts.UnitMercadoEnvios, ranking.Bottom)
		assert.Equal(t, 50.0, ranking.Entries[1].AvgCompletionRate)
	})

	t.Run("Should break ties alphabetically", func(t *testing.T) {
		snapshots := []*model.MetricSnapshot{
			snap(day(2024, time.January, 31), consts.UnitMercadoPago, 0, 0, 50),
			snap(day(2024, time.January, 31), consts.UnitMercadoEnvios, 0, 0, 50),
		}
		ranking := buildRanking(snapshots)
		require.Len(t, ranking.Entries, 2)
		assert.Equal(t, consts.UnitMercadoEnvios, ranking.Entries[0].BusinessUnit)
	})

	t.Run("Should handle an empty series", func(t *testing.T) {
		ranking := buildRanking(nil)
		assert.Empty(t, ranking.Entries)
		assert.Empty(t, ranking.Top)
		assert.Empty(t, ranking.Bottom)
	})
}
