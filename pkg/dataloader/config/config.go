package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/randalmurphal/dataloader/pkg/dataloader"
	"github.com/randalmurphal/dataloader/pkg/dataloader/stats"
)

// Stats store drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Settings configures a registry.
type Settings struct {
	// Name is the registry name.
	Name string `yaml:"name" json:"name"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is json or text.
	LogFormat string `yaml:"log_format" json:"log_format"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OpenTelemetry tracing.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// StatsStore selects where statistics snapshots are saved.
	StatsStore StatsStore `yaml:"stats_store" json:"stats_store"`
}

// StatsStore selects a stats.Store implementation.
type StatsStore struct {
	// Driver is one of none, memory, sqlite.
	Driver string `yaml:"driver" json:"driver"`

	// Path is the SQLite database path. Required for the sqlite driver.
	Path string `yaml:"path" json:"path"`
}

// Defaults returns the settings used for fields a file leaves out.
func Defaults() Settings {
	return Settings{
		Name:       dataloader.DefaultName,
		LogLevel:   "info",
		LogFormat:  "json",
		StatsStore: StatsStore{Driver: DriverNone},
	}
}

// Validate checks field values.
func (s Settings) Validate() error {
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format: %q", s.LogFormat)
	}
	switch s.StatsStore.Driver {
	case DriverNone, DriverMemory:
	case DriverSQLite:
		if s.StatsStore.Path == "" {
			return fmt.Errorf("stats_store: sqlite driver requires a path")
		}
	default:
		return fmt.Errorf("stats_store: unsupported driver: %q", s.StatsStore.Driver)
	}
	return nil
}

// Options returns registry options for these settings.
// logger may be nil to disable logging.
func (s Settings) Options(logger *slog.Logger) []dataloader.Option {
	return []dataloader.Option{
		dataloader.WithName(s.Name),
		dataloader.WithLogger(logger),
		dataloader.WithMetrics(s.Metrics),
		dataloader.WithTracing(s.Tracing),
	}
}

// Logger creates a logger writing to w with the configured level and format.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(s.LogFormat) == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// OpenStatsStore opens the configured statistics store.
// It returns nil and no error for the none driver.
func (s Settings) OpenStatsStore() (stats.Store, error) {
	switch s.StatsStore.Driver {
	case DriverNone, "":
		return nil, nil
	case DriverMemory:
		return stats.NewMemoryStore(), nil
	case DriverSQLite:
		if s.StatsStore.Path == "" {
			return nil, fmt.Errorf("stats_store: sqlite driver requires a path")
		}
		return stats.NewSQLiteStore(s.StatsStore.Path)
	default:
		return nil, fmt.Errorf("stats_store: unsupported driver: %q", s.StatsStore.Driver)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unsupported log level: %q", s)
	}
	return level, nil
}
