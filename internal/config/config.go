// Package config loads swapstat settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Extract ExtractConfig `yaml:"extract"`
	Report  ReportConfig  `yaml:"report"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig selects the statement files
type InputConfig struct {
	Dir       string `yaml:"dir"       env:"SWAPSTAT_DIR"       env-default:"."`
	Recursive bool   `yaml:"recursive" env:"SWAPSTAT_RECURSIVE"`
}

// ExtractConfig tunes decoding and row reconstruction.
//
// RowUnit is the vertical distance in page points that maps to one row key.
// Larger values tolerate more baseline jitter but start merging adjacent
// lines; smaller values keep tight tables apart but split lines whose words
// sit on slightly different baselines. 1.0 suits statements printed at
// their native scale.
type ExtractConfig struct {
	Backend    string   `yaml:"backend"      env:"SWAPSTAT_BACKEND"       env-default:"auto"`
	Validate   bool     `yaml:"validate"     env:"SWAPSTAT_VALIDATE"`
	RowUnit    float64  `yaml:"row_unit"     env:"SWAPSTAT_ROW_UNIT"      env-default:"1.0"`
	XTolerance float64  `yaml:"x_tolerance"  env:"SWAPSTAT_X_TOLERANCE"   env-default:"3.0"`
	PageMarker string   `yaml:"page_marker"  env:"SWAPSTAT_PAGE_MARKER"   env-default:"電池服務明細表"`
	FoldWidth  bool     `yaml:"fold_width"   env:"SWAPSTAT_FOLD_WIDTH"`
	Suffixes   []string `yaml:"suffixes"     env:"SWAPSTAT_SUFFIXES"      env-separator:","`
	Exclusions []string `yaml:"exclusions"   env:"SWAPSTAT_EXCLUSIONS"    env-separator:","`
}

// ReportConfig controls the outputs written after a run
type ReportConfig struct {
	ChartPath       string `yaml:"chart_path"       env:"SWAPSTAT_CHART_PATH"       env-default:"Gogoro換電分析報告.png"`
	ChartMinCount   int    `yaml:"chart_min_count"  env:"SWAPSTAT_CHART_MIN_COUNT"  env-default:"2"`
	FontPath        string `yaml:"font_path"        env:"SWAPSTAT_FONT_PATH"`
	CSVPath         string `yaml:"csv_path"         env:"SWAPSTAT_CSV_PATH"`
	XLSXPath        string `yaml:"xlsx_path"        env:"SWAPSTAT_XLSX_PATH"`
	SimilarDistance int    `yaml:"similar_distance" env:"SWAPSTAT_SIMILAR_DISTANCE"`
}

// LogConfig controls diagnostics written to stderr
type LogConfig struct {
	Level string `yaml:"level" env:"SWAPSTAT_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An empty path loads from ENV + defaults only; a path that does not exist
// is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate performs business-rule validation on the loaded configuration.
func (c *Config) Validate() error {
	if c.Extract.RowUnit <= 0 {
		return fmt.Errorf("extract.row_unit must be > 0 (got %v)", c.Extract.RowUnit)
	}
	if c.Extract.XTolerance < 0 {
		return fmt.Errorf("extract.x_tolerance must be >= 0 (got %v)", c.Extract.XTolerance)
	}
	if strings.TrimSpace(c.Extract.PageMarker) == "" {
		return fmt.Errorf("extract.page_marker must not be empty")
	}
	if c.Report.ChartMinCount < 1 {
		return fmt.Errorf("report.chart_min_count must be >= 1 (got %d)", c.Report.ChartMinCount)
	}
	if c.Report.SimilarDistance < 0 {
		return fmt.Errorf("report.similar_distance must be >= 0 (got %d)", c.Report.SimilarDistance)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q", name)
	}
}
