package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ─── Section configs ────────────────────────────────────────────────────

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

type ParserConfig struct {
	TimestampLayouts []string `yaml:"timestamp_layouts"`
	Timezone         string   `yaml:"timezone"`
}

type AlignmentConfig struct {
	ToleranceMs int `yaml:"tolerance_ms"`
}

type ExportConfig struct {
	BaseDir       string `yaml:"base_dir"`
	SessionPrefix string `yaml:"session_prefix"`
	Compress      bool   `yaml:"compress"`
	WriteHeader   bool   `yaml:"write_header"`
	BufferSizeKB  int    `yaml:"buffer_size_kb"`
	Overwrite     bool   `yaml:"overwrite"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Config is the top-level structure for spraylog.yaml.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Parser    ParserConfig    `yaml:"parser"`
	Alignment AlignmentConfig `yaml:"alignment"`
	Export    ExportConfig    `yaml:"export"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Parser:  ParserConfig{Timezone: "UTC"},
		Alignment: AlignmentConfig{
			ToleranceMs: 1000,
		},
		Export: ExportConfig{
			BaseDir:       "exports",
			SessionPrefix: "flight",
			WriteHeader:   true,
			BufferSizeKB:  256,
		},
	}
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig reads and parses spraylog.yaml. A missing file is not an
// error: the defaults are returned. Keys absent from the file keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, ok := ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Alignment.ToleranceMs < 0 {
		return fmt.Errorf("%w: alignment.tolerance_ms must be >= 0, got %d", ErrInvalidConfig, c.Alignment.ToleranceMs)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Export.BufferSizeKB < 0 {
		return fmt.Errorf("%w: export.buffer_size_kb must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Location resolves parser.timezone; empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Parser.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Parser.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Parser.Timezone, err)
	}
	return loc, nil
}

// Tolerance returns the alignment window; zero selects the aligner default.
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.Alignment.ToleranceMs) * time.Millisecond
}

// TimestampParser builds the parser described by the parser section.
func (c *Config) TimestampParser() (*TimestampParser, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return NewTimestampParser(c.Parser.TimestampLayouts, loc), nil
}
