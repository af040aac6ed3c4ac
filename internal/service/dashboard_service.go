package service

import (
	"context"
	"fmt"
	"time"
	"wellbeing_dashboard/internal/config"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/util"
	"wellbeing_dashboard/pkg/logger"
	"wellbeing_dashboard/pkg/monitoring"
	"wellbeing_dashboard/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Inputs 一次重算时各输入控件的取值
type Inputs map[string]string

// ComputeFunc 根据输入生成图表
type ComputeFunc func(ctx context.Context, in Inputs) (*model.Figure, error)

// Callback 输出区域、其依赖的输入以及计算函数
type Callback struct {
	Output  string
	Inputs  []string
	Compute ComputeFunc
}

type DashboardService struct {
	Charts    *ChartService
	controls  map[string]model.Control
	callbacks map[string]Callback
	order     []string
	dashboard *model.Dashboard
}

func NewDashboardService(charts *ChartService, cfg *config.DashboardConfig) *DashboardService {
	s := &DashboardService{
		Charts:    charts,
		controls:  make(map[string]model.Control),
		callbacks: make(map[string]Callback),
	}
	s.buildControls(cfg)
	s.registerCallbacks(cfg.AxisSwap)
	s.dashboard = s.compose(cfg)
	return s
}

func columnOptions(columns []string) []model.Option {
	opts := make([]model.Option, len(columns))
	for i, c := range columns {
		opts[i] = model.Option{Label: c, Value: c}
	}
	return opts
}

var (
	orientationOptions = []model.Option{
		{Label: "Upright", Value: string(model.Vertical)},
		{Label: "Sideways", Value: string(model.Horizontal)},
	}
	assignmentOptions = []model.Option{
		{Label: "Normal", Value: string(model.AxisNormal)},
		{Label: "Swap", Value: string(model.AxisSwap)},
	}
)

// pick 优先使用 preferred（若在列表中），否则取第 fallback 个
func pick(columns []string, preferred string, fallback int) string {
	for _, c := range columns {
		if c == preferred {
			return c
		}
	}
	if len(columns) == 0 {
		return ""
	}
	if fallback >= len(columns) {
		fallback = len(columns) - 1
	}
	return columns[fallback]
}

func (s *DashboardService) buildControls(cfg *config.DashboardConfig) {
	num, cat := cfg.NumericalColumns, cfg.CategoricalColumns
	first := func(cols []string) string {
		if len(cols) == 0 {
			return ""
		}
		return cols[0]
	}

	for _, c := range []model.Control{
		{ID: model.ControlCatVariable, Kind: model.ControlDropdown, Options: columnOptions(cat), Value: first(cat)},
		{ID: model.ControlBarOrientation, Kind: model.ControlRadio, Options: orientationOptions, Value: string(model.Vertical)},
		{ID: model.ControlNumVariable, Kind: model.ControlDropdown, Options: columnOptions(num), Value: first(num)},
		{ID: model.ControlHistOrient, Kind: model.ControlRadio, Options: orientationOptions, Value: string(model.Vertical)},
		{ID: model.ControlXAxis, Kind: model.ControlDropdown, Label: "X axis", Options: columnOptions(num), Value: pick(num, "Age", 0)},
		{ID: model.ControlYAxis, Kind: model.ControlDropdown, Label: "Y axis", Options: columnOptions(num), Value: pick(num, "CGPA", 1)},
		{ID: model.ControlAxisAssignment, Kind: model.ControlRadio, Options: assignmentOptions, Value: string(model.AxisNormal)},
		{ID: model.ControlPieVariable, Kind: model.ControlDropdown, Label: "Choose a Categorical Variable:", Options: columnOptions(cat), Value: first(cat)},
	} {
		s.controls[c.ID] = c
	}
}

func (s *DashboardService) register(cb Callback) {
	s.callbacks[cb.Output] = cb
	s.order = append(s.order, cb.Output)
}

func (s *DashboardService) registerCallbacks(axisSwap bool) {
	s.register(Callback{
		Output: model.OutputBarChart,
		Inputs: []string{model.ControlCatVariable, model.ControlBarOrientation},
		Compute: func(_ context.Context, in Inputs) (*model.Figure, error) {
			return s.Charts.BarChart(in[model.ControlCatVariable], model.Orientation(in[model.ControlBarOrientation]))
		},
	})

	s.register(Callback{
		Output: model.OutputHistogram,
		Inputs: []string{model.ControlNumVariable, model.ControlHistOrient},
		Compute: func(_ context.Context, in Inputs) (*model.Figure, error) {
			return s.Charts.Histogram(in[model.ControlNumVariable], model.Orientation(in[model.ControlHistOrient]))
		},
	})

	scatterInputs := []string{model.ControlXAxis, model.ControlYAxis}
	if axisSwap {
		scatterInputs = append(scatterInputs, model.ControlAxisAssignment)
	}
	s.register(Callback{
		Output: model.OutputScatterPlot,
		Inputs: scatterInputs,
		Compute: func(_ context.Context, in Inputs) (*model.Figure, error) {
			assignment := model.AxisNormal
			if v, ok := in[model.ControlAxisAssignment]; ok {
				assignment = model.AxisAssignment(v)
			}
			return s.Charts.Scatter(in[model.ControlXAxis], in[model.ControlYAxis], assignment)
		},
	})

	s.register(Callback{
		Output: model.OutputPieChart,
		Inputs: []string{model.ControlPieVariable},
		Compute: func(_ context.Context, in Inputs) (*model.Figure, error) {
			return s.Charts.PieChart(in[model.ControlPieVariable])
		},
	})
}

func (s *DashboardService) section(title, graph string, controls ...string) model.Section {
	sec := model.Section{Title: title, Graph: graph}
	for _, id := range controls {
		sec.Controls = append(sec.Controls, s.controls[id])
	}
	return sec
}

func (s *DashboardService) compose(cfg *config.DashboardConfig) *model.Dashboard {
	scatter := []string{model.ControlXAxis, model.ControlYAxis}
	if cfg.AxisSwap {
		scatter = append(scatter, model.ControlAxisAssignment)
	}

	d := &model.Dashboard{
		Title: cfg.Title,
		Tabs: []model.Tab{
			{
				ID:    "distributions",
				Label: "Distributions",
				Sections: []model.Section{
					s.section("Categorical Variable Analysis (Bar Chart)", model.OutputBarChart,
						model.ControlCatVariable, model.ControlBarOrientation),
					s.section("Numerical Variable Analysis (Histogram)", model.OutputHistogram,
						model.ControlNumVariable, model.ControlHistOrient),
				},
			},
			{
				ID:    "relationships",
				Label: "Scatter Plot and Pie Chart Analysis",
				Sections: []model.Section{
					s.section("Scatter Plot", model.OutputScatterPlot, scatter...),
					s.section("Pie Chart", model.OutputPieChart, model.ControlPieVariable),
				},
			},
			{
				ID:    "about",
				Label: "About the Data",
				Notes: aboutNotes,
			},
		},
	}
	for _, out := range s.order {
		cb := s.callbacks[out]
		d.Callbacks = append(d.Callbacks, model.Dependency{
			Output: cb.Output,
			Inputs: append([]string(nil), cb.Inputs...),
		})
	}
	return d
}

var aboutNotes = []model.Note{
	{
		Heading: "Dataset Description",
		Body:    "This dataset contains valuable information about student wellbeing and academic performance. Key attributes include:",
		Items: []string{
			"Demographics: Age, Gender, City",
			"Academic Metrics: CGPA, Degree, Study Hours",
			"Wellbeing Indicators: Depression, Sleep Duration, Work/Academic Pressure",
			"Satisfaction Metrics: Study and Job Satisfaction",
			"Lifestyle: Dietary Habits",
		},
	},
	{
		Heading: "Why This Data is Interesting",
		Body:    "This dataset combines academic performance metrics with wellbeing indicators, allowing us to:",
		Items: []string{
			"Analyze the relationship between study hours and academic performance",
			"Investigate the impact of sleep duration on depression levels",
			"Understand how academic pressure affects study satisfaction",
			"Explore the connection between dietary habits and overall performance",
		},
	},
	{
		Heading: "Implementation Notes",
		Items: []string{
			"Separate visualizations for categorical (bar charts) and numerical (histograms) data",
			"Interactive variable selection for flexible analysis",
			"Toggles to switch between upright and sideways chart orientations",
			"Scatter plot with an ordinary least squares trend line for pairwise analysis",
			"A pie chart showing the distribution of a chosen categorical variable",
		},
	},
}

// Layout 返回页面结构，调用方不得修改
func (s *DashboardService) Layout() *model.Dashboard {
	return s.dashboard
}

func (s *DashboardService) Control(id string) (model.Control, bool) {
	c, ok := s.controls[id]
	return c, ok
}

// Dependents 返回依赖 inputID 的输出区域
func (s *DashboardService) Dependents(inputID string) []string {
	var outputs []string
	for _, out := range s.order {
		for _, in := range s.callbacks[out].Inputs {
			if in == inputID {
				outputs = append(outputs, out)
				break
			}
		}
	}
	return outputs
}

// resolve 补全缺省值并校验取值；不属于该输出的输入被忽略
func (s *DashboardService) resolve(cb Callback, values map[string]string) (Inputs, error) {
	in := make(Inputs, len(cb.Inputs))
	for _, id := range cb.Inputs {
		ctrl := s.controls[id]
		v, ok := values[id]
		if !ok || v == "" {
			v = ctrl.Value
		}
		if !ctrl.Allows(v) {
			return nil, fmt.Errorf("%w: %s=%q", util.ErrInvalidInput, id, v)
		}
		in[id] = v
	}
	return in, nil
}

// Update 重算 output 对应的图表
func (s *DashboardService) Update(ctx context.Context, output string, values map[string]string) (fig *model.Figure, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "dashboard.update",
		trace.WithAttributes(attribute.String("dashboard.output", output)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cb, ok := s.callbacks[output]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownOutput, output)
	}

	start := time.Now()
	defer func() {
		monitoring.ObserveRecompute(output, start, err)
	}()

	in, err := s.resolve(cb, values)
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("Recomputing figure", zap.String("output", output), zap.Any("inputs", in))
	return cb.Compute(ctx, in)
}
