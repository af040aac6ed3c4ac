package service

import (
	"fmt"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/repository"
)

const (
	DefaultHistogramBins = 10

	pieTemplate = "simple_white"
	pieFontSize = 14
	trendName   = "OLS trendline"
)

// ChartService 把控件取值映射为图表描述。所有方法都是数据集上的纯函数，可并发调用
type ChartService struct {
	Dataset *repository.DatasetRepository
	Bins    int
}

func NewChartService(dataset *repository.DatasetRepository, bins int) *ChartService {
	if bins < 1 {
		bins = DefaultHistogramBins
	}
	return &ChartService{Dataset: dataset, Bins: bins}
}

func distributionTitle(column string) string {
	return fmt.Sprintf("Distribution of %s", column)
}

// orientAxes 竖直时数据轴在 x，水平时数据轴在 y
func orientAxes(o model.Orientation, data, count model.Axis) (x, y model.Axis) {
	if o == model.Horizontal {
		return count, data
	}
	return data, count
}

func normalizeOrientation(o model.Orientation) model.Orientation {
	if o == model.Horizontal {
		return model.Horizontal
	}
	return model.Vertical
}

// BarChart 类别列的频数分布
func (s *ChartService) BarChart(column string, orientation model.Orientation) (*model.Figure, error) {
	counts, err := s.Dataset.ValueCounts(column)
	if err != nil {
		return nil, err
	}
	counts = byCountDesc(counts)

	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Category
		values[i] = float64(c.Count)
	}

	orientation = normalizeOrientation(orientation)
	fig := &model.Figure{
		Kind:  model.ChartBar,
		Title: distributionTitle(column),
		Traces: []model.Trace{{
			Name:        column,
			Type:        model.TraceBar,
			Orientation: orientation,
			Labels:      labels,
			Values:      values,
		}},
	}
	fig.XAxis, fig.YAxis = orientAxes(orientation,
		model.Axis{Title: column, Type: model.AxisCategory},
		model.Axis{Title: model.CountLabel, Type: model.AxisValue},
	)
	return fig, nil
}

// Histogram 数值列的等宽分箱分布
func (s *ChartService) Histogram(column string, orientation model.Orientation) (*model.Figure, error) {
	values, err := s.Dataset.Floats(column)
	if err != nil {
		return nil, err
	}

	orientation = normalizeOrientation(orientation)
	fig := &model.Figure{
		Kind:  model.ChartHistogram,
		Title: distributionTitle(column),
		Traces: []model.Trace{{
			Name:        column,
			Type:        model.TraceHistogram,
			Orientation: orientation,
			Bins:        equalWidthBins(values, s.Bins),
		}},
	}
	fig.XAxis, fig.YAxis = orientAxes(orientation,
		model.Axis{Title: column, Type: model.AxisValue},
		model.Axis{Title: model.CountLabel, Type: model.AxisValue},
	)
	return fig, nil
}

// Scatter 两个数值列的散点图并叠加最小二乘趋势线；swap 时交换 x 与 y
func (s *ChartService) Scatter(x, y string, assignment model.AxisAssignment) (*model.Figure, error) {
	if assignment == model.AxisSwap {
		x, y = y, x
	}

	pairs, err := s.Dataset.Pairs(x, y)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i], ys[i] = p.X, p.Y
	}

	fig := &model.Figure{
		Kind:  model.ChartScatter,
		Title: fmt.Sprintf("%s vs %s", y, x),
		XAxis: model.Axis{Title: x, Type: model.AxisValue},
		YAxis: model.Axis{Title: y, Type: model.AxisValue},
		Traces: []model.Trace{{
			Name: fmt.Sprintf("%s, %s", x, y),
			Type: model.TraceScatter,
			X:    xs,
			Y:    ys,
		}},
	}

	if fit := fitLine(xs, ys); fit != nil {
		lx, ly := trendLine(xs, fit)
		fig.Traces = append(fig.Traces, model.Trace{
			Name: trendName,
			Type: model.TraceLine,
			X:    lx,
			Y:    ly,
			Fit:  fit,
		})
		fig.Layout.ShowLegend = true
	}
	return fig, nil
}

// PieChart 类别列各取值占非空行的比例，切片按首次出现顺序
func (s *ChartService) PieChart(column string) (*model.Figure, error) {
	counts, err := s.Dataset.ValueCounts(column)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	shares := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Category
		values[i] = float64(c.Count)
		shares[i] = float64(c.Count) / float64(total)
	}

	return &model.Figure{
		Kind:  model.ChartPie,
		Title: distributionTitle(column),
		Traces: []model.Trace{{
			Name:   column,
			Type:   model.TracePie,
			Labels: labels,
			Values: values,
			Shares: shares,
		}},
		Layout: model.FigureLayout{
			Template:   pieTemplate,
			FontSize:   pieFontSize,
			TitleX:     0.5,
			ShowLegend: true,
		},
	}, nil
}
