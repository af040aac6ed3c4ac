package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"wellbeing_dashboard/internal/config"
	"wellbeing_dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageConfig(path string) *config.Config {
	return &config.Config{
		Dataset: config.DatasetConfig{
			Source:    util.SourceLocal,
			Path:      path,
			Delimiter: ",",
		},
		Dashboard: *dashboardConfig(true),
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestStorageServiceLoadLocal(t *testing.T) {
	path := writeFile(t, "final_merged_data.csv", []byte(sampleCSV))

	s, err := NewStorageService(storageConfig(path))
	require.NoError(t, err)
	assert.IsType(t, &LocalStorageProvider{}, s.Provider)

	ds, err := s.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Rows())
	assert.Equal(t, "file://"+path, ds.Source())
}

func TestStorageServiceDelimiter(t *testing.T) {
	path := writeFile(t, "data.tsv", []byte("Gender\tAge\nM\t20\nF\t21\n"))
	cfg := storageConfig(path)
	cfg.Dataset.Delimiter = "\t"

	s, err := NewStorageService(cfg)
	require.NoError(t, err)

	ds, err := s.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gender", "Age"}, ds.Names())
}

func TestStorageServiceMissingFile(t *testing.T) {
	s, err := NewStorageService(storageConfig(filepath.Join(t.TempDir(), "missing.csv")))
	require.NoError(t, err)

	_, err = s.LoadDataset(context.Background())
	assert.Error(t, err)
}

func TestStorageServiceRejectsBinary(t *testing.T) {
	path := writeFile(t, "image.csv", append(append([]byte{}, pngMagic...), make([]byte, 64)...))

	s, err := NewStorageService(storageConfig(path))
	require.NoError(t, err)

	_, err = s.LoadDataset(context.Background())
	assert.True(t, errors.Is(err, util.ErrBinaryDataset))
}

func TestNewStorageServiceSources(t *testing.T) {
	cfg := storageConfig("data.csv")
	cfg.Dataset.Source = "ftp"
	_, err := NewStorageService(cfg)
	assert.Error(t, err)

	cfg.Dataset.Source = util.SourceMinio
	cfg.Dataset.Object = "datasets/final_merged_data.csv"
	cfg.Storage = config.StorageConfig{
		MinioEndpoint: "localhost:9000",
		MinioAccessID: "minioadmin",
		MinioSecret:   "minioadmin",
		MinioBucket:   "wellbeing",
	}
	s, err := NewStorageService(cfg)
	require.NoError(t, err)
	assert.Equal(t, "minio://wellbeing/datasets/final_merged_data.csv", s.Provider.Describe(s.objectName()))
}
