package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config contains all configuration for the wine quality pipeline.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Datasets  DatasetsConfig  `mapstructure:"datasets"`
	Model     ModelConfig     `mapstructure:"model"`
	Selection SelectionConfig `mapstructure:"selection"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// StorageConfig contains object-storage connection configuration.
// AccessKey and SecretKey are only read from the environment, never
// from the config file.
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	AccessKey string `mapstructure:"-"`
	SecretKey string `mapstructure:"-"`
}

// DatasetsConfig names the dataset objects inside the bucket.
type DatasetsConfig struct {
	Training   string `mapstructure:"training"`
	Validation string `mapstructure:"validation"`
	Test       string `mapstructure:"test"`
	LabelCol   string `mapstructure:"label_column"`
}

// ModelConfig describes where the persisted model artifact lives.
type ModelConfig struct {
	Prefix     string `mapstructure:"prefix"`
	LandingDir string `mapstructure:"landing_dir"`
}

// SelectionConfig contains model-selection parameters.
type SelectionConfig struct {
	Folds              int `mapstructure:"folds"`
	CategoricalCeiling int `mapstructure:"categorical_ceiling"`
	CardinalityFloor   int `mapstructure:"cardinality_floor"`
}

// EngineConfig contains compute-session configuration.
type EngineConfig struct {
	Workers int `mapstructure:"workers"`
}

// LoggingConfig contains logging-related configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads the pipeline configuration from the given path.
// If configPath is empty, it looks for winequality.yaml in the config/
// directory or the working directory. Environment variables with WINE_
// prefix override config file values. Storage credentials come from
// WINE_STORAGE_ACCESS_KEY / WINE_STORAGE_SECRET_KEY, falling back to
// the conventional AWS variable names.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.endpoint", "s3.amazonaws.com")
	v.SetDefault("storage.bucket", "winequality")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("datasets.training", "TrainingDataset.csv")
	v.SetDefault("datasets.validation", "ValidationDataset.csv")
	v.SetDefault("datasets.test", "TestDataset.csv")
	v.SetDefault("datasets.label_column", "quality")
	v.SetDefault("model.prefix", "bestmodel/")
	v.SetDefault("model.landing_dir", filepath.Join(os.TempDir(), "winequality"))
	v.SetDefault("selection.folds", 5)
	v.SetDefault("selection.categorical_ceiling", 10)
	v.SetDefault("selection.cardinality_floor", 20)
	v.SetDefault("engine.workers", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("winequality")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("WINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Storage.AccessKey = firstEnv("WINE_STORAGE_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	cfg.Storage.SecretKey = firstEnv("WINE_STORAGE_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")

	return &cfg, nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}
