package repository

import (
	"errors"
	"strings"
	"testing"
	"wellbeing_dashboard/internal/model"
	"wellbeing_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,Gender,Age,City,CGPA,Depression
1,Male,18,Delhi,6.5,1
2,Female,22,Pune,7.5,0
3,Male,26,Delhi,8.5,1
4,Female,30,Pune,,0
5,Male,NA,Mumbai,9.0,1
6,NA,34,Delhi,7.0,
`

func loadSample(t *testing.T) *DatasetRepository {
	t.Helper()
	ds, err := LoadDataset(strings.NewReader(sampleCSV), "sample.csv", LoadOptions{
		Numerical:   []string{"Age", "CGPA"},
		Categorical: []string{"Gender", "City", "Depression"},
	})
	require.NoError(t, err)
	return ds
}

func TestLoadDataset(t *testing.T) {
	ds := loadSample(t)

	assert.Equal(t, 6, ds.Rows())
	assert.Equal(t, "sample.csv", ds.Source())
	assert.Equal(t, []string{"id", "Gender", "Age", "City", "CGPA", "Depression"}, ds.Names())
	assert.True(t, ds.HasColumn("CGPA"))
	assert.False(t, ds.HasColumn("Profession"))
	assert.Equal(t, []string{"Profession"}, ds.MissingColumns([]string{"Age", "Profession"}))
}

func TestLoadDatasetDelimiter(t *testing.T) {
	ds, err := LoadDataset(strings.NewReader("a;b\n1;x\n2;y\n"), "semi.csv", LoadOptions{Delimiter: ';'})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, []string{"a", "b"}, ds.Names())
}

func TestValueCountsFirstAppearance(t *testing.T) {
	ds := loadSample(t)

	counts, err := ds.ValueCounts("City")
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryCount{
		{Category: "Delhi", Count: 3},
		{Category: "Pune", Count: 2},
		{Category: "Mumbai", Count: 1},
	}, counts)
}

func TestValueCountsSkipsNulls(t *testing.T) {
	ds := loadSample(t)

	counts, err := ds.ValueCounts("Gender")
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryCount{
		{Category: "Male", Count: 3},
		{Category: "Female", Count: 2},
	}, counts)

	counts, err = ds.ValueCounts("Depression")
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryCount{
		{Category: "1", Count: 3},
		{Category: "0", Count: 2},
	}, counts)
}

func TestFloats(t *testing.T) {
	ds := loadSample(t)

	ages, err := ds.Floats("Age")
	require.NoError(t, err)
	assert.Equal(t, []float64{18, 22, 26, 30, 34}, ages)

	cgpa, err := ds.Floats("CGPA")
	require.NoError(t, err)
	assert.Equal(t, []float64{6.5, 7.5, 8.5, 9.0, 7.0}, cgpa)
}

func TestPairsDropIncompleteRows(t *testing.T) {
	ds := loadSample(t)

	pairs, err := ds.Pairs("Age", "CGPA")
	require.NoError(t, err)
	assert.Equal(t, []model.Pair{
		{X: 18, Y: 6.5},
		{X: 22, Y: 7.5},
		{X: 26, Y: 8.5},
		{X: 34, Y: 7.0},
	}, pairs)
}

func TestUnknownColumn(t *testing.T) {
	ds := loadSample(t)

	_, err := ds.ValueCounts("Profession")
	assert.True(t, errors.Is(err, util.ErrColumnNotFound))

	_, err = ds.Floats("Profession")
	assert.True(t, errors.Is(err, util.ErrColumnNotFound))

	_, err = ds.Pairs("Age", "Profession")
	assert.True(t, errors.Is(err, util.ErrColumnNotFound))
}

func TestSummary(t *testing.T) {
	ds := loadSample(t)

	summary := ds.Summary()
	assert.Equal(t, 6, summary.Rows)
	require.Len(t, summary.Columns, 6)

	byName := make(map[string]model.ColumnSummary)
	for _, c := range summary.Columns {
		byName[c.Name] = c
	}
	assert.Equal(t, "numerical", byName["Age"].Role)
	assert.Equal(t, 5, byName["Age"].NonNull)
	assert.Equal(t, "float", byName["CGPA"].Type)
	assert.Equal(t, "categorical", byName["Gender"].Role)
	assert.Equal(t, "string", byName["Gender"].Type)
	assert.Equal(t, 5, byName["Gender"].NonNull)
	assert.Empty(t, byName["id"].Role)
}
