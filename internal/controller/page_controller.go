package controller

import (
	"encoding/json"
	"html/template"
	"net/http"
	"wellbeing_dashboard/internal/service"
	"wellbeing_dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PageController struct {
	DashboardService *service.DashboardService
}

func NewPageController(dashboardService *service.DashboardService) *PageController {
	return &PageController{DashboardService: dashboardService}
}

// Index 渲染仪表盘页面，控件在服务端生成，图表由浏览器通过 /api/dashboard/update 获取
func (c *PageController) Index(ctx *gin.Context) {
	layout := c.DashboardService.Layout()

	graph, err := json.Marshal(layout.Callbacks)
	if err != nil {
		logger.Log.Error("Failed to encode callback graph", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Dashboard": layout,
		"Callbacks": template.JS(graph),
	})
}
