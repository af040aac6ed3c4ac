package service

import (
	"math"
	"sort"
	"wellbeing_dashboard/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// equalWidthBins 将 values 分入 n 个等宽分箱，覆盖 [min, max]，max 落在最后一个分箱
func equalWidthBins(values []float64, n int) []model.Bin {
	lo, hi := 0.0, 1.0
	if len(values) > 0 {
		lo, hi = floats.Min(values), floats.Max(values)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, n+1), lo, hi)

	// stat.Histogram 的区间是左闭右开，最后一个分割点上移一点让 max 计入末箱
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]model.Bin, n)
	for i := range bins {
		bins[i] = model.Bin{
			Lower: edges[i],
			Upper: edges[i+1],
			Count: int(counts[i]),
		}
	}
	return bins
}

// fitLine 普通最小二乘拟合；点数不足或 x 无方差时返回 nil
func fitLine(xs, ys []float64) *model.LinearFit {
	if len(xs) < 2 || stat.Variance(xs, nil) == 0 {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// y 为常数时总平方和为 0
		r2 = 0
	}
	return &model.LinearFit{
		Intercept: alpha,
		Slope:     beta,
		RSquared:  r2,
		N:         len(xs),
	}
}

// trendLine 在去重排序后的 x 上计算拟合值
func trendLine(xs []float64, fit *model.LinearFit) (lx, ly []float64) {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	for i, x := range sorted {
		if i > 0 && x == sorted[i-1] {
			continue
		}
		lx = append(lx, x)
		ly = append(ly, fit.Intercept+fit.Slope*x)
	}
	return lx, ly
}

// byCountDesc 频数降序，频数相同时保持原有（首次出现）顺序
func byCountDesc(counts []model.CategoryCount) []model.CategoryCount {
	out := make([]model.CategoryCount, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
