package app

import (
	"muniplan_backend/docs"
	"muniplan_backend/internal/config"
	"muniplan_backend/internal/middleware"
	"muniplan_backend/internal/model"
	"muniplan_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, no login required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/departments", c.plan.ListDepartments)

		// Plan reading is open to every authenticated role.
		authGroup.GET("/goals", c.plan.ListGoals)
		authGroup.GET("/indicators", c.plan.ListIndicators)
		authGroup.GET("/indicators/:id/targets", c.plan.ListYearlyTargets)

		// Plan authoring is admin-only.
		admin := authGroup.Group("/")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/goals", c.plan.CreateGoal)
			admin.PUT("/goals/:id", c.plan.UpdateGoal)
			admin.DELETE("/goals/:id", c.plan.DeleteGoal)
			admin.POST("/indicators", c.plan.CreateIndicator)
			admin.PUT("/indicators/:id", c.plan.UpdateIndicator)
			admin.DELETE("/indicators/:id", c.plan.DeleteIndicator)
			admin.PUT("/indicators/:id/targets", c.plan.SetYearlyTarget)
		}

		// Entries: any role submits; the workflow table decides who may act.
		authGroup.POST("/entries", c.entry.CreateEntry)
		authGroup.GET("/entries", c.entry.ListByIndicator)
		authGroup.POST("/entries/:id/submit", c.entry.Submit)

		review := authGroup.Group("/entries")
		review.Use(middleware.RoleMiddleware(model.Director, model.Admin))
		{
			review.GET("/queue", c.entry.Queue)
			review.POST("/:id/approve", c.entry.Approve)
			review.POST("/:id/reject", c.entry.Reject)
		}

		// Reports.
		reports := authGroup.Group("/reports")
		{
			reports.GET("/indicators/:id", c.report.IndicatorAchievement)
			reports.GET("/goals/:id", c.report.GoalRollup)
			reports.GET("/departments/:id", c.report.DepartmentRollup)
			reports.GET("/dashboard", c.report.DashboardSummary)
		}
	}
}
