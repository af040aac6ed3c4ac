package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATASET_PATH", "")
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8050", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "local", cfg.Dataset.Source)
	assert.Equal(t, "final_merged_data.csv", cfg.Dataset.Path)
	assert.Equal(t, ",", cfg.Dataset.Delimiter)
	assert.Equal(t, 10, cfg.Dashboard.HistogramBins)
	assert.True(t, cfg.Dashboard.AxisSwap)
	assert.Equal(t, DefaultNumericalColumns, cfg.Dashboard.NumericalColumns)
	assert.Equal(t, DefaultCategoricalColumns, cfg.Dashboard.CategoricalColumns)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfigFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9000"
dashboard:
  histogram_bins: 20
  axis_swap: false
  numerical_columns: [Age, CGPA]
  categorical_columns: [Gender]
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 20, cfg.Dashboard.HistogramBins)
	assert.False(t, cfg.Dashboard.AxisSwap)
	assert.Equal(t, []string{"Age", "CGPA"}, cfg.Dashboard.NumericalColumns)
	assert.Equal(t, []string{"Gender"}, cfg.Dashboard.CategoricalColumns)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("DATASET_PATH", "/data/students.csv")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "/data/students.csv", cfg.Dataset.Path)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero bins", "dashboard:\n  histogram_bins: 0\n"},
		{"long delimiter", "dataset:\n  delimiter: \";;\"\n"},
		{"minio without bucket", "dataset:\n  source: minio\n  object: data.csv\n"},
		{"malformed yaml", "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
