package api

import (
	"Awareness/internal/api/middleware"
	"Awareness/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("/series", group.DashboardHandler.GetSeries)
			metricsGroup.GET("/pivot", group.DashboardHandler.GetPivot)
			metricsGroup.GET("/proportion", group.DashboardHandler.GetProportion)
			metricsGroup.GET("/ranking", group.DashboardHandler.GetRanking)
		}

		auditGroup := apiGroup.Group("/audit")
		{
			auditGroup.GET("/users", group.AuditHandler.ListUsers)
			auditGroup.GET("/courses", group.AuditHandler.ListCourses)
			auditGroup.GET("/assignments", group.AuditHandler.ListAssignments)
			auditGroup.GET("/snapshots", group.AuditHandler.ListSnapshots)
		}

		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/metrics/refresh", group.AdminHandler.Refresh)
			adminGroup.POST("/seed", group.AdminHandler.Seed)
		}
	}

	return r
}
