package controller

import (
	"bytes"
	"net/http"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/service"
	"wellbeing_dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	RenderService    *service.RenderService
}

func NewDashboardController(dashboardService *service.DashboardService, renderService *service.RenderService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, RenderService: renderService}
}

// @Summary 获取仪表盘布局
// @Description 返回标签页、控件（含默认值）以及输出与输入的依赖关系
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} util.Response{data=model.Dashboard}
// @Router /layout [get]
func (c *DashboardController) GetLayout(ctx *gin.Context) {
	util.Success(ctx, c.DashboardService.Layout())
}

// @Summary 重算图表
// @Description 控件取值变化后重新生成指定输出区域的图表，未提供的输入使用默认值
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Param request body model.UpdateRequest true "输出ID与输入取值"
// @Success 200 {object} util.Response{data=model.Figure}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /dashboard/update [post]
func (c *DashboardController) Update(ctx *gin.Context) {
	var req model.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fig, err := c.DashboardService.Update(ctx.Request.Context(), req.Output, req.Inputs)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, fig)
}

// queryInputs 把查询参数作为输入取值
func queryInputs(ctx *gin.Context) map[string]string {
	inputs := make(map[string]string)
	for k, v := range ctx.Request.URL.Query() {
		if len(v) > 0 {
			inputs[k] = v[0]
		}
	}
	return inputs
}

// @Summary 获取图表
// @Description 与 /dashboard/update 相同，输入通过查询参数传递，如 ?cat-variable=Gender&bar-orientation=h
// @Tags 仪表盘
// @Produce json
// @Param output path string true "输出ID" Enums(bar-chart, histogram, scatter-plot, pie-chart)
// @Success 200 {object} util.Response{data=model.Figure}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /charts/{output} [get]
func (c *DashboardController) GetChart(ctx *gin.Context) {
	fig, err := c.DashboardService.Update(ctx.Request.Context(), ctx.Param("output"), queryInputs(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, fig)
}

// @Summary 获取图表PNG
// @Description 使用 go-chart 在服务端渲染图表
// @Tags 仪表盘
// @Produce png
// @Param output path string true "输出ID" Enums(bar-chart, histogram, scatter-plot, pie-chart)
// @Param width query int false "宽度" default(800)
// @Param height query int false "高度" default(500)
// @Success 200 {file} binary
// @Failure 422 {object} util.Response
// @Router /charts/{output}/png [get]
func (c *DashboardController) GetChartPNG(ctx *gin.Context) {
	inputs := queryInputs(ctx)
	width := util.ParseSide(inputs["width"], util.DefaultPNGWidth)
	height := util.ParseSide(inputs["height"], util.DefaultPNGHeight)

	fig, err := c.DashboardService.Update(ctx.Request.Context(), ctx.Param("output"), inputs)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := c.RenderService.RenderPNG(fig, &buf, width, height); err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, util.MimePNG, buf.Bytes())
}
