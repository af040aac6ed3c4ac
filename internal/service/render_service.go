package service

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/util"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderService 使用 go-chart 将图表描述渲染为 PNG
//
// go-chart 的柱状图只有竖直方向，水平方向的图同样按竖直方向输出
type RenderService struct{}

func NewRenderService() *RenderService {
	return &RenderService{}
}

var chartPadding = chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}

// RenderPNG 渲染成功后才写入 w
func (s *RenderService) RenderPNG(fig *model.Figure, w io.Writer, width, height int) error {
	if fig == nil || len(fig.Traces) == 0 {
		return fmt.Errorf("%w: empty figure", util.ErrNotRenderable)
	}

	var buf bytes.Buffer
	var err error
	switch fig.Kind {
	case model.ChartBar:
		err = s.renderBars(&buf, fig.Title, fig.Traces[0].Labels, fig.Traces[0].Values, width, height)
	case model.ChartHistogram:
		labels, values := binBars(fig.Traces[0].Bins)
		err = s.renderBars(&buf, fig.Title, labels, values, width, height)
	case model.ChartScatter:
		err = s.renderScatter(&buf, fig, width, height)
	case model.ChartPie:
		err = s.renderPie(&buf, fig, width, height)
	default:
		return fmt.Errorf("%w: unsupported kind %q", util.ErrNotRenderable, fig.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrNotRenderable, err)
	}

	_, err = buf.WriteTo(w)
	return err
}

func binBars(bins []model.Bin) ([]string, []float64) {
	labels := make([]string, len(bins))
	values := make([]float64, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%.4g-%.4g", b.Lower, b.Upper)
		values[i] = float64(b.Count)
	}
	return labels, values
}

func (s *RenderService) renderBars(w io.Writer, title string, labels []string, values []float64, width, height int) error {
	if len(values) == 0 {
		return fmt.Errorf("no bars")
	}

	top := 0.0
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{Label: labels[i], Value: v}
		top = math.Max(top, v)
	}
	if top == 0 {
		top = 1
	}

	barWidth := (width - 80) / len(bars)
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chartPadding},
		YAxis: chart.YAxis{
			Name:  model.CountLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func (s *RenderService) renderScatter(w io.Writer, fig *model.Figure, width, height int) error {
	points := fig.Traces[0]
	if len(points.X) < 2 {
		return fmt.Errorf("scatter needs at least two points, got %d", len(points.X))
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name: points.Name,
			Style: chart.Style{
				StrokeColor: drawing.ColorTransparent,
				DotWidth:    3,
				DotColor:    chart.ColorBlue,
			},
			XValues: points.X,
			YValues: points.Y,
		},
	}
	for _, t := range fig.Traces[1:] {
		if t.Type != model.TraceLine || len(t.X) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name: t.Name,
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 2,
			},
			XValues: t.X,
			YValues: t.Y,
		})
	}

	c := chart.Chart{
		Title:      fig.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chartPadding},
		XAxis:      chart.XAxis{Name: fig.XAxis.Title},
		YAxis:      chart.YAxis{Name: fig.YAxis.Title},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return c.Render(chart.PNG, w)
}

func (s *RenderService) renderPie(w io.Writer, fig *model.Figure, width, height int) error {
	t := fig.Traces[0]
	values := make([]chart.Value, 0, len(t.Values))
	for i, v := range t.Values {
		if v <= 0 {
			continue
		}
		label := t.Labels[i]
		if i < len(t.Shares) {
			label = fmt.Sprintf("%s (%.1f%%)", label, t.Shares[i]*100)
		}
		values = append(values, chart.Value{Label: label, Value: v})
	}
	if len(values) == 0 {
		return fmt.Errorf("pie has no slices")
	}

	pc := chart.PieChart{
		Title:      fig.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chartPadding},
		TitleStyle: chart.Style{FontSize: float64(fig.Layout.FontSize)},
		Values:     values,
	}
	return pc.Render(chart.PNG, w)
}
