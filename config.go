package fetcher

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout          = 30 * time.Second
	DefaultImageConcurrency = 4
	DefaultLogLevel         = "warn"
	DefaultIndexFile        = "index.db"
	DefaultConfigFile       = "config.yaml"
)

// Config holds the settings of an archiving run.
type Config struct {
	// Home is the directory that contains the .fetcher root.
	Home string `yaml:"home"`

	// Timeout bounds every GET request.
	Timeout time.Duration `yaml:"timeout"`

	// ImageConcurrency is the number of simultaneous image downloads.
	ImageConcurrency int `yaml:"image_concurrency"`

	// ImageRPS limits image requests per host per second. Zero disables pacing.
	ImageRPS float64 `yaml:"image_rps"`

	// StrictImages keeps the remote source of images that failed to
	// download instead of pointing them at a missing local file.
	StrictImages bool `yaml:"strict_images"`

	// Index enables recording runs in the archive index.
	Index bool `yaml:"index"`

	// DBPath overrides the location of the archive index.
	DBPath string `yaml:"db_path"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig(home string) Config {
	return Config{
		Home:             home,
		Timeout:          DefaultTimeout,
		ImageConcurrency: DefaultImageConcurrency,
		Index:            true,
		LogLevel:         DefaultLogLevel,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.Home == "" {
		return Errorf(EINVALID, "home directory required")
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive, got %s", c.Timeout)
	}
	if c.ImageConcurrency < 1 {
		return Errorf(EINVALID, "image concurrency must be at least 1, got %d", c.ImageConcurrency)
	}
	if c.ImageRPS < 0 {
		return Errorf(EINVALID, "image rps must not be negative, got %v", c.ImageRPS)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// RootDir returns the .fetcher directory.
func (c *Config) RootDir() string {
	return filepath.Join(c.Home, RootDirName)
}

// IndexPath returns the archive index location.
func (c *Config) IndexPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.RootDir(), DefaultIndexFile)
}

// ParseLogLevel converts a level name to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, Errorf(EINVALID, "unknown log level %q", name)
}
