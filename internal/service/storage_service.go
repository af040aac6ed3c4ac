package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"wellbeing_dashboard/internal/config"
	"wellbeing_dashboard/internal/repository"
	"wellbeing_dashboard/internal/util"
	"wellbeing_dashboard/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 数据集来源
type StorageProvider interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Describe(name string) string
}

// LocalStorageProvider 本地文件
type LocalStorageProvider struct{}

func (p *LocalStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (p *LocalStorageProvider) Describe(name string) string {
	return "file://" + name
}

// MinioStorageProvider MinIO对象存储
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject 是惰性的，Stat 才会真正发起请求
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (p *MinioStorageProvider) Describe(name string) string {
	return "minio://" + p.Config.MinioBucket + "/" + name
}

// StorageService 负责在启动时读取数据集
type StorageService struct {
	Provider StorageProvider
	Dataset  *config.DatasetConfig
	columns  *config.DashboardConfig
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	var provider StorageProvider
	switch cfg.Dataset.Source {
	case util.SourceMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("init minio client: %w", err)
		}
		provider = p
	case util.SourceLocal, "":
		provider = &LocalStorageProvider{}
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", cfg.Dataset.Source)
	}

	return &StorageService{
		Provider: provider,
		Dataset:  &cfg.Dataset,
		columns:  &cfg.Dashboard,
	}, nil
}

func (s *StorageService) objectName() string {
	if s.Dataset.Source == util.SourceMinio {
		return s.Dataset.Object
	}
	return s.Dataset.Path
}

// LoadDataset 读取并解析数据集，只在启动时调用一次
func (s *StorageService) LoadDataset(ctx context.Context) (*repository.DatasetRepository, error) {
	name := s.objectName()
	source := s.Provider.Describe(name)

	rc, err := s.Provider.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", source, err)
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	if _, err := util.ValidateMimeType(br, util.AllowedDatasetMimeTypes); err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", source, err)
	}

	delimiter := ','
	if r := []rune(s.Dataset.Delimiter); len(r) > 0 {
		delimiter = r[0]
	}

	ds, err := repository.LoadDataset(br, source, repository.LoadOptions{
		Delimiter:   delimiter,
		Numerical:   s.columns.NumericalColumns,
		Categorical: s.columns.CategoricalColumns,
	})
	if err != nil {
		return nil, err
	}

	if missing := ds.MissingColumns(append(append([]string{}, s.columns.NumericalColumns...), s.columns.CategoricalColumns...)); len(missing) > 0 {
		logger.Log.Warn("Configured columns missing from dataset", zap.Strings("columns", missing), zap.String("source", source))
	}

	logger.Log.Info("Dataset loaded",
		zap.String("source", source),
		zap.Int("rows", ds.Rows()),
		zap.Int("columns", len(ds.Names())),
	)
	return ds, nil
}
