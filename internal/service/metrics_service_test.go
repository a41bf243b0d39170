package service

import (
	"Awareness/internal/model"
	"Awareness/internal/pkg/consts"
	"Awareness/internal/pkg/util"
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// fakeUserRepo answers the cohort counts from an in-memory slice, applying
// the same date predicates the SQL layer does.
type fakeUserRepo struct {
	users []*model.User
	err   error
}

func (f *fakeUserRepo) inCohort(u *model.User, unit string, asOf time.Time) bool {
	return u.BusinessUnit == unit && !u.StartDate.After(asOf)
}

func (f *fakeUserRepo) isActive(u *model.User, asOf time.Time) bool {
	return u.EndDate == nil || !u.EndDate.Before(asOf)
}

func (f *fakeUserRepo) CountCohort(_ context.Context, unit string, asOf time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, u := range f.users {
		if f.inCohort(u, unit, asOf) {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CountActive(_ context.Context, unit string, asOf time.Time) (int64, error) {
	var n int64
	for _, u := range f.users {
		if f.inCohort(u, unit, asOf) && f.isActive(u, asOf) {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CountActiveExternal(_ context.Context, unit string, asOf time.Time) (int64, error) {
	var n int64
	for _, u := range f.users {
		if f.inCohort(u, unit, asOf) && f.isActive(u, asOf) && u.IsExternal {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) BatchCreateUsers(_ context.Context, users []*model.User) error {
	f.users = append(f.users, users...)
	return nil
}

type fakeAssignmentRepo struct {
	assignments []*model.Assignment
	userRepo    *fakeUserRepo
}

func (f *fakeAssignmentRepo) CountDistinctCompleted(_ context.Context, unit string, asOf time.Time) (int64, error) {
	byName := make(map[string]*model.User, len(f.userRepo.users))
	for _, u := range f.userRepo.users {
		byName[u.Username] = u
	}

	seen := make(map[string]struct{})
	for _, a := range f.assignments {
		if a.CompletionDate == nil || a.CompletionDate.After(asOf) {
			continue
		}
		u := byName[a.Username]
		if u == nil || !f.userRepo.inCohort(u, unit, asOf) || !f.userRepo.isActive(u, asOf) {
			continue
		}
		seen[a.Username] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (f *fakeAssignmentRepo) ListAssignments(_ context.Context) ([]*model.Assignment, error) {
	return f.assignments, nil
}

func (f *fakeAssignmentRepo) BatchCreateAssignments(_ context.Context, assignments []*model.Assignment) error {
	f.assignments = append(f.assignments, assignments...)
	return nil
}

// fakeSnapshotRepo keeps one row per (checkpoint, unit), mirroring the
// unique-index upsert of the real table.
type fakeSnapshotRepo struct {
	rows  map[string]*model.MetricSnapshot
	saves int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{rows: make(map[string]*model.MetricSnapshot)}
}

func (f *fakeSnapshotRepo) key(snap *model.MetricSnapshot) string {
	return snap.CheckpointDate.Format(time.DateOnly) + "/" + snap.BusinessUnit
}

func (f *fakeSnapshotRepo) SaveOrUpdateSnapshot(_ context.Context, snap *model.MetricSnapshot) error {
	f.saves++
	clone := *snap
	f.rows[f.key(snap)] = &clone
	return nil
}

func (f *fakeSnapshotRepo) GetSnapshotsByYear(_ context.Context, year int) ([]*model.MetricSnapshot, error) {
	out := make([]*model.MetricSnapshot, 0)
	for _, snap := range f.rows {
		if snap.CheckpointDate.Year() == year {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (f *fakeSnapshotRepo) ListSnapshots(_ context.Context) ([]*model.MetricSnapshot, error) {
	out := make([]*model.MetricSnapshot, 0, len(f.rows))
	for _, snap := range f.rows {
		out = append(out, snap)
	}
	return out, nil
}

func (f *fakeSnapshotRepo) get(t *testing.T, date time.Time, unit string) *model.MetricSnapshot {
	t.Helper()
	snap := f.rows[date.Format(time.DateOnly)+"/"+unit]
	require.NotNil(t, snap, "missing snapshot %s/%s", date.Format(time.DateOnly), unit)
	return snap
}

func newMetricsFixture(users []*model.User, assignments []*model.Assignment) (MetricsService, *fakeSnapshotRepo) {
	userRepo := &fakeUserRepo{users: users}
	assignmentRepo := &fakeAssignmentRepo{assignments: assignments, userRepo: userRepo}
	snapshotRepo := newFakeSnapshotRepo()
	return NewMetricsService(userRepo, assignmentRepo, snapshotRepo), snapshotRepo
}

func TestRunYearly(t *testing.T) {
	ctx := context.Background()

	t.Run("Should emit all-zero rates for a unit with no starters", func(t *testing.T) {
		svc, snapshots := newMetricsFixture(nil, nil)
		require.NoError(t, svc.RunYearly(ctx, 2024))

		require.Len(t, snapshots.rows, 12*len(consts.BusinessUnits))
		for _, snap := range snapshots.rows {
			assert.Zero(t, snap.ActiveRate)
			assert.Zero(t, snap.ExternalRate)
			assert.Zero(t, snap.CompletionRate)
		}
	})

	t.Run("Should flip completion between February and March", func(t *testing.T) {
		users := []*model.User{{
			Username:     "ana.perez01",
			StartDate:    day(2024, time.January, 10),
			BusinessUnit: consts.UnitMercadoLibre,
		}}
		assignments := []*model.Assignment{{
			Username:       "ana.perez01",
			CourseID:       1,
			AssignmentDate: day(2024, time.January, 10),
			CompletionDate: dayPtr(2024, time.March, 15),
		}}
		svc, snapshots := newMetricsFixture(users, assignments)
		require.NoError(t, svc.RunYearly(ctx, 2024))

		feb := snapshots.get(t, day(2024, time.February, 29), consts.UnitMercadoLibre)
		assert.Equal(t, 100.0, feb.ActiveRate)
		assert.Equal(t, 0.0, feb.ExternalRate)
		assert.Equal(t, 0.0, feb.CompletionRate, "completion date is after the checkpoint")

		mar := snapshots.get(t, day(2024, time.March, 31), consts.UnitMercadoLibre)
		assert.Equal(t, 100.0, mar.CompletionRate)
	})

	t.Run("Should keep a leaver in the cohort but not in the active subset", func(t *testing.T) {
		users := []*model.User{{
			Username:     "juan.gomez02",
			StartDate:    day(2024, time.June, 1),
			EndDate:      dayPtr(2024, time.August, 15),
			BusinessUnit: consts.UnitMercadoPago,
		}}
		svc, snapshots := newMetricsFixture(users, nil)
		require.NoError(t, svc.RunYearly(ctx, 2024))

		may := snapshots.get(t, day(2024, time.May, 31), consts.UnitMercadoPago)
		assert.Zero(t, may.ActiveRate, "not yet started, cohort empty")

		jul := snapshots.get(t, day(2024, time.July, 31), consts.UnitMercadoPago)
		assert.Equal(t, 100.0, jul.ActiveRate, "end date is after the checkpoint")

		sep := snapshots.get(t, day(2024, time.September, 30), consts.UnitMercadoPago)
		assert.Equal(t, 0.0, sep.ActiveRate, "still in cohort, no longer active")
	})

	t.Run("Should guard completion against a fully departed cohort", func(t *testing.T) {
		users := []*model.User{{
			Username:     "eva.sosa03",
			StartDate:    day(2024, time.January, 5),
			EndDate:      dayPtr(2024, time.February, 10),
			BusinessUnit: consts.UnitMercadoEnvios,
		}}
		assignments := []*model.Assignment{{
			Username:       "eva.sosa03",
			CourseID:       2,
			AssignmentDate: day(2024, time.January, 5),
			CompletionDate: dayPtr(2024, time.January, 20),
		}}
		svc, snapshots := newMetricsFixture(users, assignments)
		require.NoError(t, svc.RunYearly(ctx, 2024))

		dec := snapshots.get(t, day(2024, time.December, 31), consts.UnitMercadoEnvios)
		assert.Equal(t, 0.0, dec.ActiveRate)
		assert.Equal(t, 0.0, dec.ExternalRate)
		assert.Equal(t, 0.0, dec.CompletionRate, "no division by zero on an empty active subset")
	})

	t.Run("Should count a user with several completed assignments once", func(t *testing.T) {
		users := []*model.User{
			{
				Username:     "leo.rios04",
				StartDate:    day(2024, time.January, 2),
				BusinessUnit: consts.UnitMercadoLibre,
			},
			{
				Username:     "mia.luna05",
				StartDate:    day(2024, time.January, 2),
				BusinessUnit: consts.UnitMercadoLibre,
			},
		}
		assignments := []*model.Assignment{
			{Username: "leo.rios04", CourseID: 1, AssignmentDate: day(2024, time.January, 2), CompletionDate: dayPtr(2024, time.February, 1)},
			{Username: "leo.rios04", CourseID: 2, AssignmentDate: day(2024, time.January, 2), CompletionDate: dayPtr(2024, time.March, 1)},
			{Username: "leo.rios04", CourseID: 3, AssignmentDate: day(2024, time.January, 2), CompletionDate: dayPtr(2024, time.April, 1)},
		}
		svc, snapshots := newMetricsFixture(users, assignments)
		require.NoError(t, svc.RunYearly(ctx, 2024))

		jun := snapshots.get(t, day(2024, time.June, 30), consts.UnitMercadoLibre)
		assert.Equal(t, 50.0, jun.CompletionRate, "one of two active users is trained")
	})

	t.Run("Should converge to the same rows when run twice", func(t *testing.T) {
		users := []*model.User{{
			Username:     "ana.perez01",
			StartDate:    day(2024, time.January, 10),
			BusinessUnit: consts.UnitMercadoLibre,
		}}
		svc, snapshots := newMetricsFixture(users, nil)
		require.NoError(t, svc.RunYearly(ctx, 2024))
		first := make(map[string]model.MetricSnapshot, len(snapshots.rows))
		for k, v := range snapshots.rows {
			first[k] = *v
		}

		require.NoError(t, svc.RunYearly(ctx, 2024))
		require.Len(t, snapshots.rows, 12*len(consts.BusinessUnits), "upsert keeps one row per cell")
		for k, v := range snapshots.rows {
			assert.Equal(t, first[k], *v)
		}
	})

	t.Run("Should reject a year outside the supported range", func(t *testing.T) {
		svc, _ := newMetricsFixture(nil, nil)
		require.ErrorIs(t, svc.RunYearly(ctx, 1789), ErrYearInvalid)
	})

	t.Run("Should abort the run naming the failing checkpoint and unit", func(t *testing.T) {
		userRepo := &fakeUserRepo{err: errors.New("connection reset")}
		assignmentRepo := &fakeAssignmentRepo{userRepo: userRepo}
		svc := NewMetricsService(userRepo, assignmentRepo, newFakeSnapshotRepo())

		err := svc.RunYearly(ctx, 2024)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2024-01-31")
		assert.Contains(t, err.Error(), consts.UnitMercadoLibre)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestRunYearlyRandomCohorts(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 7))

	users := generateUsers(rng, 150, 2024)
	assignments := generateAssignments(rng, users, 3, 2024)

	userRepo := &fakeUserRepo{users: users}
	assignmentRepo := &fakeAssignmentRepo{assignments: assignments, userRepo: userRepo}
	snapshotRepo := newFakeSnapshotRepo()
	svc := NewMetricsService(userRepo, assignmentRepo, snapshotRepo)

	require.NoError(t, svc.RunYearly(ctx, 2024))
	require.Len(t, snapshotRepo.rows, 12*len(consts.BusinessUnits))

	t.Run("Should keep every rate within bounds and external within active", func(t *testing.T) {
		for _, snap := range snapshotRepo.rows {
			assert.GreaterOrEqual(t, snap.ActiveRate, 0.0)
			assert.LessOrEqual(t, snap.ActiveRate, 100.0)
			assert.GreaterOrEqual(t, snap.ExternalRate, 0.0)
			assert.LessOrEqual(t, snap.ExternalRate, 100.0)
			assert.GreaterOrEqual(t, snap.CompletionRate, 0.0)
			assert.LessOrEqual(t, snap.CompletionRate, 100.0)
			assert.LessOrEqual(t, snap.ExternalRate, snap.ActiveRate+1e-9,
				"an external user must also be active to be counted")
		}
	})

	t.Run("Should grow cohorts monotonically across checkpoints", func(t *testing.T) {
		for _, unit := range consts.BusinessUnits {
			var prev int64
			for _, checkpoint := range util.MonthEnds(2024) {
				n, err := userRepo.CountCohort(ctx, unit, checkpoint)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, n, prev, "a starter admitted once never leaves the cohort")
				prev = n
			}
		}
	})
}
