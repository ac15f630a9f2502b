package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/대항해시대4-도시정보.csv", cfg.Source.Cities)
	assert.Equal(t, "data/대항해시대4-Pk-시세표.csv", cfg.Source.Prices)
	assert.Equal(t, "", cfg.Tables.Path)
	assert.Equal(t, "data/trade_database.json", cfg.Output.Path)
	assert.Equal(t, "", cfg.Output.SQLite)
	assert.Equal(t, "2.0", cfg.Metadata.Version)
	assert.NotEmpty(t, cfg.Metadata.Title)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
source:
  cities: in/cities.xlsx
  city_sheet: 도시
tables:
  path: tables.toml
output:
  path: out/db.json
  sqlite: out/db.sqlite
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "in/cities.xlsx", cfg.Source.Cities)
	assert.Equal(t, "도시", cfg.Source.CitySheet)
	assert.Equal(t, "tables.toml", cfg.Tables.Path)
	assert.Equal(t, "out/db.json", cfg.Output.Path)
	assert.Equal(t, "out/db.sqlite", cfg.Output.SQLite)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "data/대항해시대4-Pk-시세표.csv", cfg.Source.Prices)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
output:
  path: out/db.json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("TRADEDB_OUTPUT_PATH", "env/db.json")
	t.Setenv("TRADEDB_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "env/db.json", cfg.Output.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRADEDB_SERVER_PORT=3000\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TRADEDB_SERVER_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("source: [\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Source:   SourceConfig{Cities: "c.csv", Prices: "p.csv"},
			Output:   OutputConfig{Path: "out.json"},
			Metadata: MetadataConfig{Version: "1"},
			Log:      LogConfig{Level: "info", Format: "json"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing cities", func(c *Config) { c.Source.Cities = "" }, "Source.Cities"},
		{"missing prices", func(c *Config) { c.Source.Prices = "" }, "Source.Prices"},
		{"missing output", func(c *Config) { c.Output.Path = "" }, "Output.Path"},
		{"missing version", func(c *Config) { c.Metadata.Version = "" }, "Metadata.Version"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "Server.Port"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "Log.Format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
