package controller

import (
	"net/http"
	"wellbeing_dashboard/internal/repository"
	"wellbeing_dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Dataset *repository.DatasetRepository
}

func NewHealthController(dataset *repository.DatasetRepository) *HealthController {
	return &HealthController{Dataset: dataset}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if c.Dataset == nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Dataset unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"dataset": gin.H{
				"status": "up",
				"rows":   c.Dataset.Rows(),
			},
		},
	})
}

// @Summary 数据集概况
// @Description 返回数据集的行数以及各列类型和非空数量
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response{data=model.DatasetSummary}
// @Router /dataset [get]
func (c *HealthController) GetDataset(ctx *gin.Context) {
	if c.Dataset == nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Dataset unavailable")
		return
	}
	util.Success(ctx, c.Dataset.Summary())
}
