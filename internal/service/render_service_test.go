package service

import (
	"bytes"
	"errors"
	"testing"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderPNG(t *testing.T) {
	charts := sampleCharts(t)
	r := NewRenderService()

	bar, err := charts.BarChart("City", model.Horizontal)
	require.NoError(t, err)
	hist, err := charts.Histogram("Age", model.Vertical)
	require.NoError(t, err)
	scatter, err := charts.Scatter("Age", "CGPA", model.AxisNormal)
	require.NoError(t, err)
	pie, err := charts.PieChart("Dietary Habits")
	require.NoError(t, err)

	for _, fig := range []*model.Figure{bar, hist, scatter, pie} {
		t.Run(string(fig.Kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.RenderPNG(fig, &buf, util.DefaultPNGWidth, util.DefaultPNGHeight))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderPNGNotRenderable(t *testing.T) {
	r := NewRenderService()

	var buf bytes.Buffer
	err := r.RenderPNG(nil, &buf, 400, 300)
	assert.True(t, errors.Is(err, util.ErrNotRenderable))

	err = r.RenderPNG(&model.Figure{Kind: model.ChartScatter, Traces: []model.Trace{{X: []float64{1}, Y: []float64{2}}}}, &buf, 400, 300)
	assert.True(t, errors.Is(err, util.ErrNotRenderable))

	err = r.RenderPNG(&model.Figure{Kind: model.ChartBar, Traces: []model.Trace{{}}}, &buf, 400, 300)
	assert.True(t, errors.Is(err, util.ErrNotRenderable))

	err = r.RenderPNG(&model.Figure{Kind: "radar", Traces: []model.Trace{{}}}, &buf, 400, 300)
	assert.True(t, errors.Is(err, util.ErrNotRenderable))

	assert.Zero(t, buf.Len())
}

func TestBinBars(t *testing.T) {
	labels, values := binBars([]model.Bin{
		{Lower: 0, Upper: 2.5, Count: 3},
		{Lower: 2.5, Upper: 5, Count: 1},
	})
	assert.Equal(t, []string{"0-2.5", "2.5-5"}, labels)
	assert.Equal(t, []float64{3, 1}, values)
}
