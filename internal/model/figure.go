package model

// ChartKind 图表类型
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartHistogram ChartKind = "histogram"
	ChartScatter   ChartKind = "scatter"
	ChartPie       ChartKind = "pie"
)

// TraceType 数据序列的绘制方式
type TraceType string

const (
	TraceBar       TraceType = "bar"
	TraceHistogram TraceType = "histogram"
	TraceScatter   TraceType = "scatter"
	TraceLine      TraceType = "line"
	TracePie       TraceType = "pie"
)

// AxisType 坐标轴类型
type AxisType string

const (
	AxisCategory AxisType = "category"
	AxisValue    AxisType = "value"
)

// Orientation 柱状图/直方图方向
type Orientation string

const (
	Vertical   Orientation = "v"
	Horizontal Orientation = "h"
)

// AxisAssignment 散点图坐标分配
type AxisAssignment string

const (
	AxisNormal AxisAssignment = "normal"
	AxisSwap   AxisAssignment = "swap"
)

// CountLabel 计数轴标题
const CountLabel = "Count"

// Figure 图表描述，与渲染技术无关；每次重算都新建
type Figure struct {
	Kind   ChartKind    `json:"kind"`
	Title  string       `json:"title"`
	XAxis  Axis         `json:"xAxis"`
	YAxis  Axis         `json:"yAxis"`
	Traces []Trace      `json:"traces"`
	Layout FigureLayout `json:"layout"`
}

// Axis 坐标轴
type Axis struct {
	Title string   `json:"title,omitempty"`
	Type  AxisType `json:"type,omitempty"`
}

// Trace 单个数据序列
//
// bar/pie: Labels + Values（pie 另有 Shares）
// histogram: Bins
// scatter/line: X + Y
type Trace struct {
	Name        string      `json:"name"`
	Type        TraceType   `json:"type"`
	Orientation Orientation `json:"orientation,omitempty"`
	Labels      []string    `json:"labels,omitempty"`
	Values      []float64   `json:"values,omitempty"`
	Shares      []float64   `json:"shares,omitempty"`
	X           []float64   `json:"x,omitempty"`
	Y           []float64   `json:"y,omitempty"`
	Bins        []Bin       `json:"bins,omitempty"`
	Fit         *LinearFit  `json:"fit,omitempty"`
}

// Bin 直方图分箱 [Lower, Upper)，最后一个分箱包含上界
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// LinearFit 最小二乘拟合结果 y = Intercept + Slope*x
type LinearFit struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	RSquared  float64 `json:"rSquared"`
	N         int     `json:"n"`
}

// FigureLayout 图表外观
type FigureLayout struct {
	Template   string  `json:"template,omitempty"`
	FontSize   int     `json:"fontSize,omitempty"`
	TitleX     float64 `json:"titleX,omitempty"`
	ShowLegend bool    `json:"showLegend"`
}

// Orientation 返回首个序列的方向，未设置时为竖直
func (f *Figure) Orientation() Orientation {
	if len(f.Traces) > 0 && f.Traces[0].Orientation == Horizontal {
		return Horizontal
	}
	return Vertical
}
