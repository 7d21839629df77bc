package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dataloader/pkg/dataloader"
	"github.com/randalmurphal/dataloader/pkg/dataloader/config"
	"github.com/randalmurphal/dataloader/pkg/dataloader/stats"
)

func TestDefaults(t *testing.T) {
	s := config.Defaults()
	assert.Equal(t, dataloader.DefaultName, s.Name)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, config.DriverNone, s.StatsStore.Driver)
	assert.NoError(t, s.Validate())
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
name: request
log_level: debug
log_format: text
metrics: true
tracing: true
stats_store:
  driver: memory
`)
	s, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "request", s.Name)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.True(t, s.Metrics)
	assert.True(t, s.Tracing)
	assert.Equal(t, config.DriverMemory, s.StatsStore.Driver)
}

func TestFromYAMLPartialKeepsDefaults(t *testing.T) {
	s, err := config.FromYAML([]byte("name: partial\n"))
	require.NoError(t, err)

	assert.Equal(t, "partial", s.Name)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, config.DriverNone, s.StatsStore.Driver)
}

func TestFromJSON(t *testing.T) {
	s, err := config.FromJSON([]byte(`{"name":"api","stats_store":{"driver":"sqlite","path":"x.db"}}`))
	require.NoError(t, err)

	assert.Equal(t, "api", s.Name)
	assert.Equal(t, config.DriverSQLite, s.StatsStore.Driver)
	assert.Equal(t, "x.db", s.StatsStore.Path)
}

func TestInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad level", "log_level: loud\n"},
		{"bad format", "log_format: xml\n"},
		{"bad driver", "stats_store:\n  driver: redis\n"},
		{"sqlite without path", "stats_store:\n  driver: sqlite\n"},
		{"malformed", "name: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromYAML([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := config.FromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "registry.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: from-yaml\n"), 0o600))
	s, err := config.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", s.Name)

	jsonPath := filepath.Join(dir, "registry.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name":"from-json"}`), 0o600))
	s, err = config.FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "from-json", s.Name)

	tomlPath := filepath.Join(dir, "registry.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`name = "x"`), 0o600))
	_, err = config.FromFile(tomlPath)
	assert.Error(t, err)

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	s := config.Defaults()
	s.Name = "configured"

	reg := dataloader.New(s.Options(nil)...)
	assert.Equal(t, "configured", reg.Name())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	s := config.Defaults()
	s.LogLevel = "warn"
	logger := s.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	s.LogFormat = "text"
	s.Logger(&buf).Warn("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestLoggerWiredIntoRegistry(t *testing.T) {
	var buf bytes.Buffer
	s := config.Defaults()
	s.Name = "wired"
	s.LogLevel = "debug"

	reg := dataloader.New(s.Options(s.Logger(&buf))...)
	reg.Unregister("nothing")
	require.NoError(t, reg.DispatchAll(t.Context()))

	assert.Contains(t, buf.String(), `"registry":"wired"`)
	assert.Contains(t, buf.String(), "dispatch completed")
}

func TestOpenStatsStore(t *testing.T) {
	s := config.Defaults()
	store, err := s.OpenStatsStore()
	require.NoError(t, err)
	assert.Nil(t, store)

	s.StatsStore.Driver = config.DriverMemory
	store, err = s.OpenStatsStore()
	require.NoError(t, err)
	assert.IsType(t, &stats.MemoryStore{}, store)
	require.NoError(t, store.Close())

	s.StatsStore = config.StatsStore{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "s.db")}
	store, err = s.OpenStatsStore()
	require.NoError(t, err)
	assert.IsType(t, &stats.SQLiteStore{}, store)
	require.NoError(t, store.Close())

	s.StatsStore = config.StatsStore{Driver: config.DriverSQLite}
	_, err = s.OpenStatsStore()
	assert.Error(t, err)

	s.StatsStore = config.StatsStore{Driver: "redis"}
	_, err = s.OpenStatsStore()
	assert.Error(t, err)
}
