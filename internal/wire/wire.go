package wire

import (
	"Awareness/internal/api"
	"Awareness/internal/api/config"
	"Awareness/internal/api/handler"
	"Awareness/internal/job"
	"Awareness/internal/pkg/cron"
	"Awareness/internal/repository"
	"Awareness/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer bundles the top-level components of the app.
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	assignmentRepo := repository.NewAssignmentRepo(db)
	snapshotRepo := repository.NewSnapshotRepo(db)

	metricsService := service.NewMetricsService(userRepo, assignmentRepo, snapshotRepo)
	dashboardService := service.NewDashboardService(snapshotRepo)
	auditService := service.NewAuditService(userRepo, courseRepo, assignmentRepo, snapshotRepo)
	seedService := service.NewSeedService(userRepo, courseRepo, assignmentRepo, cfg.Metrics.Year, cfg.Seed.RandSeed)

	refreshJob := job.NewMetricsRefreshJob(metricsService, dashboardService, cfg.Metrics.Year)
	cronMgr := cron.NewCronManager(refreshJob, cfg.Metrics.RefreshSpec)

	handlers := &api.HandlersGroup{
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		AuditHandler:     handler.NewAuditHandler(auditService),
		AdminHandler:     handler.NewAdminHandler(metricsService, dashboardService, seedService),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
