package model

// ColumnSummary 数据列概况
type ColumnSummary struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	NonNull int    `json:"nonNull"`
	Role    string `json:"role,omitempty"` // numerical, categorical
}

// DatasetSummary 数据集概况
type DatasetSummary struct {
	Source  string          `json:"source"`
	Rows    int             `json:"rows"`
	Columns []ColumnSummary `json:"columns"`
}

// CategoryCount 类别频数
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Pair 一行中两个数值列的取值
type Pair struct {
	X float64
	Y float64
}
