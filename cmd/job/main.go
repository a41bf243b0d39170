package main

import (
	"Awareness/internal/api/config"
	"Awareness/internal/pkg/database"
	"Awareness/internal/pkg/logger"
	"Awareness/internal/pkg/redis"
	"Awareness/internal/repository"
	"Awareness/internal/service"
	"context"
	"flag"
	log "log/slog"
	"os"

	"github.com/google/uuid"
)

// One-shot runner: migrates the schema, optionally seeds demo fixtures and
// recomputes the yearly snapshot series, then exits.
func main() {
	seed := flag.Bool("seed", false, "seed demo fixtures before aggregating")
	year := flag.Int("year", 0, "override the configured reporting year")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg := config.Cfg

	logger.InitLogger()

	if *year == 0 {
		*year = cfg.Metrics.Year
	}

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		os.Exit(1)
	}

	if err = database.AutoMigrate(db); err != nil {
		log.Error("Fatal error: failed to migrate schema", "err", err)
		os.Exit(1)
	}

	// Redis is optional here; without it the cached series just ages out.
	redisOK := true
	if err = redis.InitRedis(cfg.Redis); err != nil {
		redisOK = false
		log.Warn("redis unavailable, skipping cache invalidation", "err", err)
	}

	userRepo := repository.NewUserRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	assignmentRepo := repository.NewAssignmentRepo(db)
	snapshotRepo := repository.NewSnapshotRepo(db)

	metricsService := service.NewMetricsService(userRepo, assignmentRepo, snapshotRepo)
	seedService := service.NewSeedService(userRepo, courseRepo, assignmentRepo, *year, cfg.Seed.RandSeed)

	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if *seed {
		if err = seedService.Seed(ctx, cfg.Seed.Users); err != nil {
			log.ErrorContext(ctx, "seeding failed", "err", err)
			os.Exit(1)
		}
	}

	if err = metricsService.RunYearly(ctx, *year); err != nil {
		log.ErrorContext(ctx, "aggregation failed", "year", *year, "err", err)
		os.Exit(1)
	}

	if redisOK {
		dashboardService := service.NewDashboardService(snapshotRepo)
		dashboardService.InvalidateSeriesCache(ctx, *year)
	}

	log.InfoContext(ctx, "job finished", "year", *year, "seeded", *seed)
}
