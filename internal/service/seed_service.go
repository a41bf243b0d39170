package service

import (
	"Awareness/internal/model"
	"Awareness/internal/pkg/consts"
	"context"
	"fmt"
	log "log/slog"
	"math/rand/v2"
	"time"
)

type SeedService interface {
	// Seed fills the store with demo data: n users, the fixed course
	// catalog and 1-3 assignments per user.
	Seed(ctx context.Context, users int) error
}

type UserWriter interface {
	BatchCreateUsers(ctx context.Context, users []*model.User) error
}

type CourseWriter interface {
	CountCourses(ctx context.Context) (int64, error)
	BatchCreateCourses(ctx context.Context, courses []*model.Course) error
}

type AssignmentWriter interface {
	BatchCreateAssignments(ctx context.Context, assignments []*model.Assignment) error
}

type seedServiceImpl struct {
	userRepo       UserWriter
	courseRepo     CourseWriter
	assignmentRepo AssignmentWriter
	year           int
	randSeed       uint64
}

func NewSeedService(
	userRepo UserWriter,
	courseRepo CourseWriter,
	assignmentRepo AssignmentWriter,
	year int,
	randSeed uint64,
) SeedService {
	return &seedServiceImpl{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		year:           year,
		randSeed:       randSeed,
	}
}

func (s *seedServiceImpl) Seed(ctx context.Context, users int) error {
	// The username pool holds 40k combinations; cap well below it so
	// uniqueness retries stay cheap.
	if users <= 0 || users > 5000 {
		return ErrSeedCountInvalid
	}

	rng := rand.New(rand.NewPCG(s.randSeed, s.randSeed))

	courses := defaultCourses()
	existing, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if existing == 0 {
		if err := s.courseRepo.BatchCreateCourses(ctx, courses); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
	}

	generated := generateUsers(rng, users, s.year)
	if err := s.userRepo.BatchCreateUsers(ctx, generated); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	assignments := generateAssignments(rng, generated, len(courses), s.year)
	if err := s.assignmentRepo.BatchCreateAssignments(ctx, assignments); err != nil {
		return fmt.Errorf("seed assignments: %w", err)
	}

	log.InfoContext(ctx, "seed finished",
		"users", len(generated),
		"courses", len(courses),
		"assignments", len(assignments),
	)
	return nil
}

// defaultCourses mirrors the fixed mandatory-training catalog.
func defaultCourses() []*model.Course {
	return []*model.Course{
		{
			Name:         "Ciberseguridad",
			Link:         "https://meli.ciberseguridad.training.com",
			CreationDate: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:         "Código de Ética",
			Link:         "https://meli.etica.training.com",
			CreationDate: time.Date(2023, time.December, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:         "Onboarding",
			Link:         "https://meli.onboarding.training.com",
			CreationDate: time.Date(2022, time.October, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

var seedFirstNames = []string{
	"agustina", "bruno", "camila", "diego", "elena", "facundo", "gabriela",
	"hernan", "ines", "joaquin", "karen", "lucas", "mariana", "nicolas",
	"olivia", "pablo", "rocio", "santiago", "tomas", "valentina",
}

var seedLastNames = []string{
	"acosta", "benitez", "castro", "dominguez", "espinoza", "fernandez",
	"gimenez", "herrera", "ibarra", "juarez", "ledesma", "martinez",
	"navarro", "ortiz", "pereyra", "quiroga", "rios", "sosa", "torres",
	"vazquez",
}

// generateUsers produces n users with coherent dates: start within the
// year, a 50% chance of an end date at or after the start, a last update
// between start and year end.
func generateUsers(rng *rand.Rand, n, year int) []*model.User {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	users := make([]*model.User, 0, n)
	seen := make(map[string]struct{}, n)

	for len(users) < n {
		username := randomUsername(rng)
		if _, dup := seen[username]; dup {
			continue
		}
		seen[username] = struct{}{}

		startDate := randomDate(rng, yearStart, yearEnd)

		var endDate *time.Time
		if rng.IntN(2) == 0 {
			d := randomDate(rng, startDate, yearEnd)
			endDate = &d
		}

		users = append(users, &model.User{
			Username:     username,
			StartDate:    startDate,
			EndDate:      endDate,
			BusinessUnit: consts.BusinessUnits[rng.IntN(len(consts.BusinessUnits))],
			Manager:      randomUsername(rng),
			LastUpdate:   randomDate(rng, startDate, yearEnd),
			IsExternal:   rng.IntN(2) == 0,
		})
	}
	return users
}

// generateAssignments gives every user 1-3 assignments, assigned on the
// user's start date, each completed with 70% probability somewhere between
// that date and year end.
func generateAssignments(rng *rand.Rand, users []*model.User, courseCount, year int) []*model.Assignment {
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	assignments := make([]*model.Assignment, 0, len(users)*2)
	for _, user := range users {
		for i := 0; i < 1+rng.IntN(3); i++ {
			assignment := &model.Assignment{
				Username:       user.Username,
				CourseID:       uint64(rng.IntN(courseCount) + 1),
				AssignmentDate: user.StartDate,
			}
			if rng.IntN(10) < 7 {
				d := randomDate(rng, user.StartDate, yearEnd)
				assignment.CompletionDate = &d
			}
			assignments = append(assignments, assignment)
		}
	}
	return assignments
}

func randomUsername(rng *rand.Rand) string {
	return fmt.Sprintf("%s.%s%02d",
		seedFirstNames[rng.IntN(len(seedFirstNames))],
		seedLastNames[rng.IntN(len(seedLastNames))],
		rng.IntN(100),
	)
}

// randomDate picks a day in [from, to]; both bounds are midnight UTC dates.
func randomDate(rng *rand.Rand, from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return from
	}
	return from.AddDate(0, 0, rng.IntN(days+1))
}
