package model

// 控件 ID
const (
	ControlCatVariable    = "cat-variable"
	ControlBarOrientation = "bar-orientation"
	ControlNumVariable    = "num-variable"
	ControlHistOrient     = "hist-orientation"
	ControlXAxis          = "x-axis"
	ControlYAxis          = "y-axis"
	ControlAxisAssignment = "axis-assignment"
	ControlPieVariable    = "pie-variable"
)

// 输出区域 ID
const (
	OutputBarChart    = "bar-chart"
	OutputHistogram   = "histogram"
	OutputScatterPlot = "scatter-plot"
	OutputPieChart    = "pie-chart"
)

type ControlKind string

const (
	ControlDropdown ControlKind = "dropdown"
	ControlRadio    ControlKind = "radio"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Control 单个输入控件及其默认值
type Control struct {
	ID      string      `json:"id"`
	Kind    ControlKind `json:"kind"`
	Label   string      `json:"label,omitempty"`
	Options []Option    `json:"options"`
	Value   string      `json:"value"`
}

// Allows 判断 value 是否为可选项之一
func (c Control) Allows(value string) bool {
	for _, o := range c.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Section 一组控件加一个图表区域
type Section struct {
	Title    string    `json:"title"`
	Controls []Control `json:"controls"`
	Graph    string    `json:"graph"`
}

// Note 说明文字
type Note struct {
	Heading string   `json:"heading"`
	Body    string   `json:"body,omitempty"`
	Items   []string `json:"items,omitempty"`
}

type Tab struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Sections []Section `json:"sections,omitempty"`
	Notes    []Note    `json:"notes,omitempty"`
}

// Dependency 输出与其依赖的输入
type Dependency struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

// Dashboard 页面结构与回调依赖图
type Dashboard struct {
	Title     string       `json:"title"`
	Tabs      []Tab        `json:"tabs"`
	Callbacks []Dependency `json:"callbacks"`
}

// UpdateRequest 控件变化后的重算请求
type UpdateRequest struct {
	Output string            `json:"output" binding:"required"`
	Inputs map[string]string `json:"inputs"`
}
