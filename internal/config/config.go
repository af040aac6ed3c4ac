package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig `mapstructure:"log"`
	Dataset   DatasetConfig
	Dashboard DashboardConfig
	Storage   StorageConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时字段（非配置文件）
	ConfigFile string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type DatasetConfig struct {
	Source    string `mapstructure:"source"`
	Path      string `mapstructure:"path"`
	Object    string `mapstructure:"object"`
	Delimiter string `mapstructure:"delimiter"`
}

type DashboardConfig struct {
	Title              string   `mapstructure:"title"`
	NumericalColumns   []string `mapstructure:"numerical_columns"`
	CategoricalColumns []string `mapstructure:"categorical_columns"`
	HistogramBins      int      `mapstructure:"histogram_bins"`
	AxisSwap           bool     `mapstructure:"axis_swap"`
}

type StorageConfig struct {
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
	// PNG 渲染单独限流，每分钟次数
	RenderPerMinute int `mapstructure:"render_per_minute"`
}

var (
	DefaultNumericalColumns = []string{
		"Age", "CGPA", "Work/Study Hours", "Work Pressure",
		"Academic Pressure", "Study Satisfaction", "Job Satisfaction",
	}
	DefaultCategoricalColumns = []string{
		"Gender", "City", "Degree", "Sleep Duration", "Profession", "Dietary Habits",
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8050")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("dataset.source", "local")
	v.SetDefault("dataset.path", "final_merged_data.csv")
	v.SetDefault("dataset.delimiter", ",")

	v.SetDefault("dashboard.title", "Student Wellbeing Analysis Dashboard")
	v.SetDefault("dashboard.numerical_columns", DefaultNumericalColumns)
	v.SetDefault("dashboard.categorical_columns", DefaultCategoricalColumns)
	v.SetDefault("dashboard.histogram_bins", 10)
	v.SetDefault("dashboard.axis_swap", true)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("rate_limit.render_per_minute", 120)
}

// LoadConfig 读取 path 目录下的 config.yaml；文件不存在时使用默认值
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("WELLBEING")
	v.AutomaticEnv()

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Dataset
	v.BindEnv("dataset.source", "DATASET_SOURCE")
	v.BindEnv("dataset.path", "DATASET_PATH")
	v.BindEnv("dataset.object", "DATASET_OBJECT")

	// Storage / MinIO
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	} else {
		cfg.ConfigFile = filepath.Join(path, "config.yaml")
	}

	if cfg.Dashboard.HistogramBins < 1 {
		return nil, fmt.Errorf("dashboard.histogram_bins must be positive, got %d", cfg.Dashboard.HistogramBins)
	}
	if len(cfg.Dataset.Delimiter) != 1 {
		return nil, fmt.Errorf("dataset.delimiter must be a single character, got %q", cfg.Dataset.Delimiter)
	}
	if cfg.Dataset.Source == "minio" && (cfg.Storage.MinioBucket == "" || cfg.Dataset.Object == "") {
		return nil, fmt.Errorf("dataset.source=minio requires storage.minio_bucket and dataset.object")
	}

	return &cfg, nil
}
