package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"sales-insight/internal/data"
	"sales-insight/internal/query"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Format FormatConfig `yaml:"format"`
	API    APIConfig    `yaml:"api"`
}

type DataConfig struct {
	Path string `yaml:"path"`
	// "dmy" (default) reads 03/04/2017 as 3 April; "mdy" as March 4.
	DateOrder string `yaml:"date_order"`
}

type FormatConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

type APIConfig struct {
	Port string `yaml:"port"`
	// Answers are cached per dataset for this long; 0 disables the cache.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Cron schedule for reloading the dataset, e.g. "@every 1h". Empty disables.
	ReloadSchedule string `yaml:"reload_schedule"`
}

// DefaultDataPath is used when neither config nor flags name a dataset.
const DefaultDataPath = "data/Sample - Superstore.csv"

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Data:   DataConfig{Path: DefaultDataPath, DateOrder: string(data.DayFirst)},
		Format: FormatConfig{CurrencySymbol: query.DefaultCurrencySymbol},
		API:    APIConfig{Port: "8080", CacheTTL: 10 * time.Minute},
	}
}

// Load reads path (or returns Default when path is empty), fills defaults and
// validates the result. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		return errors.New("data.path is required")
	}
	if _, err := data.ParseDateOrder(c.Data.DateOrder); err != nil {
		return fmt.Errorf("data.date_order: %w", err)
	}
	if c.API.CacheTTL < 0 {
		return errors.New("api.cache_ttl must not be negative")
	}
	if c.API.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.API.ReloadSchedule); err != nil {
			return fmt.Errorf("api.reload_schedule invalid: %w", err)
		}
	}
	return nil
}

// LoadOptions converts the data section into loader options.
// Call after Validate; an invalid date order falls back to day-first.
func (d DataConfig) LoadOptions() data.LoadOptions {
	order, err := data.ParseDateOrder(d.DateOrder)
	if err != nil {
		order = data.DayFirst
	}
	return data.LoadOptions{DateOrder: order}
}

// Merge overlays non-zero fields from override onto base.
// Used for file-over-defaults and flags-over-file.
func Merge(base, override Config) Config {
	out := base
	if override.Data.Path != "" {
		out.Data.Path = override.Data.Path
	}
	if override.Data.DateOrder != "" {
		out.Data.DateOrder = override.Data.DateOrder
	}
	if override.Format.CurrencySymbol != "" {
		out.Format.CurrencySymbol = override.Format.CurrencySymbol
	}
	if override.API.Port != "" {
		out.API.Port = override.API.Port
	}
	if override.API.CacheTTL != 0 {
		out.API.CacheTTL = override.API.CacheTTL
	}
	if override.API.ReloadSchedule != "" {
		out.API.ReloadSchedule = override.API.ReloadSchedule
	}
	return out
}
