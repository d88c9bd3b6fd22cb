package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TimeUnit is the unit of the EMI period input.
type TimeUnit string

const (
	Months TimeUnit = "months"
	Years  TimeUnit = "years"
)

// Theme names for the console display.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Log levels understood by LOG_LEVEL.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelError = "error"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	// DBPath is the SQLite file backing the operation log (default: "operations.db")
	DBPath string

	// DBDebug enables GORM SQL logging
	DBDebug bool

	// ReportPath is the default CSV export destination (default: "report.csv")
	ReportPath string

	// HistorySize is the number of recent entries shown after each calculation
	HistorySize int

	// EMITimeUnit is the unit of the EMI period input
	EMITimeUnit TimeUnit

	// Theme is the initial console theme
	Theme string

	// LogLevel is the framework log level: "debug", "info" or "error"
	LogLevel string

	// ArchiveDir is the JetStream storage directory for archived reports.
	// Empty disables archiving.
	ArchiveDir string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:      "operations.db",
		DBDebug:     false,
		ReportPath:  "report.csv",
		HistorySize: 10,
		EMITimeUnit: Months,
		Theme:       ThemeLight,
		LogLevel:    LogLevelInfo,
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithDBPath sets the SQLite file path.
func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithDBDebug toggles GORM SQL logging.
func WithDBDebug(debug bool) Option {
	return func(c *Config) {
		c.DBDebug = debug
	}
}

// WithReportPath sets the default export destination.
func WithReportPath(path string) Option {
	return func(c *Config) {
		c.ReportPath = path
	}
}

// WithHistorySize sets how many recent entries are displayed.
func WithHistorySize(n int) Option {
	return func(c *Config) {
		c.HistorySize = n
	}
}

// WithEMITimeUnit sets the unit of the EMI period.
func WithEMITimeUnit(unit TimeUnit) Option {
	return func(c *Config) {
		c.EMITimeUnit = unit
	}
}

// WithTheme sets the initial console theme.
func WithTheme(theme string) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLogLevel sets the framework log level.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithArchiveDir enables report archiving under dir.
func WithArchiveDir(dir string) Option {
	return func(c *Config) {
		c.ArchiveDir = dir
	}
}

// New builds a Config from the defaults and the given options.
func New(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FromEnv reads configuration from the environment on top of the defaults.
//
//	DB_PATH, DB_DEBUG, REPORT_PATH, HISTORY_SIZE, EMI_TIME_UNIT, THEME, LOG_LEVEL, ARCHIVE_DIR
func FromEnv() (Config, error) {
	opts, err := EnvOptions()
	if err != nil {
		return Config{}, err
	}

	cfg := New(opts...)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvOptions returns one Option per configuration variable set in the
// environment. Unset variables keep their defaults.
func EnvOptions() ([]Option, error) {
	var opts []Option

	if v := os.Getenv("DB_PATH"); v != "" {
		opts = append(opts, WithDBPath(v))
	}
	if v := os.Getenv("DB_DEBUG"); v != "" {
		opts = append(opts, WithDBDebug(v == "true"))
	}
	if v := os.Getenv("REPORT_PATH"); v != "" {
		opts = append(opts, WithReportPath(v))
	}
	if v := os.Getenv("HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: HISTORY_SIZE %q is not an integer", ErrInvalidConfig, v)
		}
		opts = append(opts, WithHistorySize(n))
	}
	if v := os.Getenv("EMI_TIME_UNIT"); v != "" {
		opts = append(opts, WithEMITimeUnit(TimeUnit(strings.ToLower(v))))
	}
	if v := os.Getenv("THEME"); v != "" {
		opts = append(opts, WithTheme(strings.ToLower(v)))
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts = append(opts, WithLogLevel(strings.ToLower(v)))
	}
	if v := os.Getenv("ARCHIVE_DIR"); v != "" {
		opts = append(opts, WithArchiveDir(v))
	}
	return opts, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: database path is empty", ErrInvalidConfig)
	}
	if c.ReportPath == "" {
		return fmt.Errorf("%w: report path is empty", ErrInvalidConfig)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("%w: history size must be positive, got %d", ErrInvalidConfig, c.HistorySize)
	}
	if c.EMITimeUnit != Months && c.EMITimeUnit != Years {
		return fmt.Errorf("%w: EMI time unit must be %q or %q, got %q", ErrInvalidConfig, Months, Years, c.EMITimeUnit)
	}
	if c.Theme != ThemeLight && c.Theme != ThemeDark {
		return fmt.Errorf("%w: theme must be %q or %q, got %q", ErrInvalidConfig, ThemeLight, ThemeDark, c.Theme)
	}
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelError:
	default:
		return fmt.Errorf("%w: log level must be %q, %q or %q, got %q",
			ErrInvalidConfig, LogLevelDebug, LogLevelInfo, LogLevelError, c.LogLevel)
	}
	return nil
}

// ArchiveEnabled reports whether exported reports are archived.
func (c Config) ArchiveEnabled() bool {
	return c.ArchiveDir != ""
}
