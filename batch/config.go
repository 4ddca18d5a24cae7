// Package batch recovers prefetch files in bulk.
//
// It walks input trees for containers, decodes them on a bounded worker pool, writes
// each recovered payload next to the others in an output directory (optionally
// recompressed with an output codec), and records the outcome of every file in a
// manifest and in Prometheus metrics.
//
// Configuration is loaded from an optional YAML file. Command-line flags override the
// values it contains.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/mam/format"
)

// Backend selects the decompression service used for decoding.
type Backend string

const (
	// BackendNative is the pure-Go service, available on every platform.
	BackendNative Backend = "native"
	// BackendNtdll is the Windows ntdll service.
	BackendNtdll Backend = "ntdll"
)

// DefaultPattern selects prefetch files by name when walking a directory.
const DefaultPattern = "*.pf"

// Config is the batch run configuration.
type Config struct {
	// Workers is the number of files decoded concurrently.
	// Default: number of CPUs
	Workers int `yaml:"workers"`

	// Backend is "native" or "ntdll".
	// Default: native
	Backend Backend `yaml:"backend"`

	// Compression is the codec applied to recovered files before writing them.
	// Values: none, zstd, s2, lz4, snappy
	Compression format.CompressionType `yaml:"compress"`

	// Pattern is the file name glob used in directory mode.
	// Default: *.pf
	Pattern string `yaml:"pattern"`

	// Manifest is the path of the JSON manifest. Empty disables it.
	Manifest string `yaml:"manifest"`

	// MetricsFile is the path of the Prometheus textfile. Empty disables it.
	MetricsFile string `yaml:"metrics_file"`

	// Log configures logging.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is a logrus level name.
	// Default: info
	Level string `yaml:"level"`

	// Format is "text" or "json".
	// Default: text
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		Backend:     BackendNative,
		Compression: format.CompressionNone,
		Pattern:     DefaultPattern,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile loads configuration from path on top of Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	switch c.Backend {
	case BackendNative, BackendNtdll:
	default:
		errs = append(errs, fmt.Errorf("invalid backend: %q", c.Backend))
	}

	if c.Compression.String() == "Unknown" {
		errs = append(errs, fmt.Errorf("invalid output compression: %d", uint8(c.Compression)))
	}

	if _, err := filepath.Match(c.Pattern, ""); err != nil || c.Pattern == "" {
		errs = append(errs, fmt.Errorf("invalid pattern: %q", c.Pattern))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
