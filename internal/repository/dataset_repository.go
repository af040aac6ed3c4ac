package repository

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/util"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// NullValues 视为缺失值的单元格内容
var NullValues = []string{"", "NA", "NaN", "N/A", "null", "<nil>"}

type LoadOptions struct {
	Delimiter   rune
	Numerical   []string
	Categorical []string
}

// DatasetRepository 启动时加载一次的只读数据表，可被并发读取
type DatasetRepository struct {
	df          dataframe.DataFrame
	source      string
	numerical   map[string]bool
	categorical map[string]bool
}

// LoadDataset 解析带表头的分隔文本。配置的数值列按 Float 读取，类别列按 String 读取，其余列由 gota 推断类型
func LoadDataset(r io.Reader, source string, opts LoadOptions) (*DatasetRepository, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	types := make(map[string]series.Type, len(opts.Numerical)+len(opts.Categorical))
	numerical := make(map[string]bool, len(opts.Numerical))
	categorical := make(map[string]bool, len(opts.Categorical))
	for _, name := range opts.Numerical {
		types[name] = series.Float
		numerical[name] = true
	}
	for _, name := range opts.Categorical {
		types[name] = series.String
		categorical[name] = true
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.NaNValues(NullValues),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "parse dataset %s", source)
	}

	return &DatasetRepository{
		df:          df,
		source:      source,
		numerical:   numerical,
		categorical: categorical,
	}, nil
}

func (r *DatasetRepository) Source() string {
	return r.source
}

func (r *DatasetRepository) Rows() int {
	return r.df.Nrow()
}

func (r *DatasetRepository) Names() []string {
	return r.df.Names()
}

func (r *DatasetRepository) HasColumn(name string) bool {
	for _, n := range r.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// MissingColumns 返回 names 中数据集不存在的列
func (r *DatasetRepository) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if !r.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

func (r *DatasetRepository) column(name string) (series.Series, error) {
	if !r.HasColumn(name) {
		return series.Series{}, fmt.Errorf("%w: %s", util.ErrColumnNotFound, name)
	}
	col := r.df.Col(name)
	if col.Err != nil {
		return series.Series{}, col.Err
	}
	return col, nil
}

// ValueCounts 统计各非空取值的出现次数，按首次出现顺序返回
func (r *DatasetRepository) ValueCounts(name string) ([]model.CategoryCount, error) {
	col, err := r.column(name)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var counts []model.CategoryCount
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if isNull(e) {
			continue
		}
		key := elemString(col.Type(), e)
		if j, ok := index[key]; ok {
			counts[j].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, model.CategoryCount{Category: key, Count: 1})
	}
	return counts, nil
}

// Floats 返回列中全部非空数值，保持行顺序
func (r *DatasetRepository) Floats(name string) ([]float64, error) {
	col, err := r.column(name)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if isNull(e) {
			continue
		}
		v := e.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// Pairs 返回 x、y 两列都非空的行
func (r *DatasetRepository) Pairs(x, y string) ([]model.Pair, error) {
	xs, err := r.column(x)
	if err != nil {
		return nil, err
	}
	ys, err := r.column(y)
	if err != nil {
		return nil, err
	}

	pairs := make([]model.Pair, 0, xs.Len())
	for i := 0; i < xs.Len(); i++ {
		xe, ye := xs.Elem(i), ys.Elem(i)
		if isNull(xe) || isNull(ye) {
			continue
		}
		xv, yv := xe.Float(), ye.Float()
		if math.IsNaN(xv) || math.IsNaN(yv) || math.IsInf(xv, 0) || math.IsInf(yv, 0) {
			continue
		}
		pairs = append(pairs, model.Pair{X: xv, Y: yv})
	}
	return pairs, nil
}

func (r *DatasetRepository) Summary() model.DatasetSummary {
	summary := model.DatasetSummary{
		Source: r.source,
		Rows:   r.df.Nrow(),
	}
	for _, name := range r.df.Names() {
		col := r.df.Col(name)
		nonNull := 0
		for i := 0; i < col.Len(); i++ {
			if !isNull(col.Elem(i)) {
				nonNull++
			}
		}
		cs := model.ColumnSummary{
			Name:    name,
			Type:    string(col.Type()),
			NonNull: nonNull,
		}
		switch {
		case r.numerical[name]:
			cs.Role = "numerical"
		case r.categorical[name]:
			cs.Role = "categorical"
		}
		summary.Columns = append(summary.Columns, cs)
	}
	return summary
}

func isNull(e series.Element) bool {
	if e.IsNA() {
		return true
	}
	if e.Type() == series.Float {
		return math.IsNaN(e.Float())
	}
	return false
}

// elemString 数值类别（如 0/1）格式化为最短形式
func elemString(t series.Type, e series.Element) string {
	if t == series.Float {
		return strconv.FormatFloat(e.Float(), 'f', -1, 64)
	}
	return e.String()
}
