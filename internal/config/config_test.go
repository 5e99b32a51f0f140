package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insight/internal/data"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, DefaultDataPath, c.Data.Path)
	assert.Equal(t, "8080", c.API.Port)
	assert.Equal(t, 10*time.Minute, c.API.CacheTTL)
	assert.Equal(t, data.LoadOptions{DateOrder: data.DayFirst}, c.Data.LoadOptions())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  path: /srv/orders.csv
  date_order: mdy
format:
  currency_symbol: "€"
api:
  cache_ttl: 0s
  reload_schedule: "@every 1h"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/orders.csv", c.Data.Path)
	assert.Equal(t, data.LoadOptions{DateOrder: data.MonthFirst}, c.Data.LoadOptions())
	assert.Equal(t, "€", c.Format.CurrencySymbol)
	assert.Equal(t, "8080", c.API.Port, "unset keys keep their defaults")
	assert.Zero(t, c.API.CacheTTL)
	assert.Equal(t, "@every 1h", c.API.ReloadSchedule)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad date order", "data:\n  date_order: ymd\n"},
		{"bad schedule", "api:\n  reload_schedule: whenever\n"},
		{"negative ttl", "api:\n  cache_ttl: -1m\n"},
		{"empty path", "data:\n  path: \"  \"\n"},
		{"not yaml", "data: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := *Default()
	out := Merge(base, Config{
		Data: DataConfig{Path: "other.csv"},
		API:  APIConfig{Port: "9090"},
	})
	assert.Equal(t, "other.csv", out.Data.Path)
	assert.Equal(t, "9090", out.API.Port)
	assert.Equal(t, base.Data.DateOrder, out.Data.DateOrder)
	assert.Equal(t, base.API.CacheTTL, out.API.CacheTTL)
	assert.Equal(t, base.Format, out.Format)

	assert.Equal(t, base, Merge(base, Config{}))
}

func TestValidate_Nil(t *testing.T) {
	var c *Config
	assert.Error(t, c.Validate())
}
