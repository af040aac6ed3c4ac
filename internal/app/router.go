package app

import (
	"wellbeing_dashboard/docs"
	"wellbeing_dashboard/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 页面
	router.GET("/", c.page.Index)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/dataset", c.health.GetDataset)

		// 仪表盘
		api.GET("/layout", c.dashboard.GetLayout)
		api.POST("/dashboard/update", c.dashboard.Update)
		api.GET("/charts/:output", c.dashboard.GetChart)

		png := []gin.HandlerFunc{c.dashboard.GetChartPNG}
		if a.renderLimiter != nil {
			png = append([]gin.HandlerFunc{a.renderLimiter.Middleware()}, png...)
		}
		api.GET("/charts/:output/png", png...)
	}
}
