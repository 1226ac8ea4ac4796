package utils

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	logger = LakeLogger("config")
)

//go:embed config_template.yml
var defaultConfig []byte

var DefaultHomePath = defaultHomePath()

func defaultHomePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".lakeload", "config.yml")
}

func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("already initialized")
	}

	logger.Info().Str("path", configPath).Msg("creating default config")

	dirPath := filepath.Dir(configPath)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directories %s: %w", dirPath, err)
	}

	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err = validateConfig(&config); err != nil {
		return nil, err
	}

	setLogLevel(config.LogLevel)

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Pipeline.ChunkSize <= 0 {
		return fmt.Errorf("pipeline.chunk_size must be positive, got %d", config.Pipeline.ChunkSize)
	}
	if len(config.Pipeline.Columns) == 0 {
		return fmt.Errorf("pipeline.columns must not be empty")
	}
	if config.Pipeline.FilenamePattern == "" {
		return fmt.Errorf("pipeline.filename_pattern must not be empty")
	}
	if config.Reader.BatchSize <= 0 {
		config.Reader.BatchSize = 50_000
	}
	if config.Reader.SampleRows <= 0 {
		config.Reader.SampleRows = 1_000
	}
	if config.Reader.MaxRamGB <= 0 {
		config.Reader.MaxRamGB = 8
	}
	return nil
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "none":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}
