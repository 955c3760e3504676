// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and SHOPEASE_ env vars on top of the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/shopease/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the CSV extracts.
	DataDir string `koanf:"data_dir"`

	// TopCities is the number of rows in the top cities chart.
	TopCities int `koanf:"top_cities"`

	// TopGeoCities bounds the customer cities plotted on the geographic view.
	TopGeoCities int `koanf:"top_geo_cities"`

	// TopSellers bounds the seller locations plotted on the geographic view.
	TopSellers int `koanf:"top_sellers"`

	// DefaultSections are rendered when a request selects none.
	DefaultSections []string `koanf:"default_sections"`

	// ChartWidthIn and ChartHeightIn size the PNG charts, in inches.
	ChartWidthIn  float64 `koanf:"chart_width_in"`
	ChartHeightIn float64 `koanf:"chart_height_in"`

	// ChartCacheSize bounds the rendered chart cache; 0 disables it.
	ChartCacheSize int `koanf:"chart_cache_size"`

	// ChartCacheTTL is how long a rendered chart is served before redrawing.
	ChartCacheTTL time.Duration `koanf:"chart_cache_ttl"`

	// RenderWorkers bounds how many report sections render concurrently.
	RenderWorkers int `koanf:"render_workers"`
}

// New creates a Config with defaults. Context is accepted first to match the
// rest of the package API and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataDir:         "dashboard",
		TopCities:       5,
		TopGeoCities:    20,
		TopSellers:      20,
		DefaultSections: []string{},
		ChartWidthIn:    8,
		ChartHeightIn:   5,
		ChartCacheSize:  64,
		ChartCacheTTL:   30 * time.Second,
		RenderWorkers:   3,
	}
}

// Sections parses DefaultSections. Validate has already rejected unknown names
// for a loaded Config.
func (c *Config) Sections() []model.Section {
	s, err := model.ParseSections(c.DefaultSections)
	if err != nil {
		return nil
	}
	return s
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.TopCities <= 0:
		return fmt.Errorf("%w: top_cities must be positive, got %d", ErrInvalidConfig, c.TopCities)
	case c.TopGeoCities <= 0:
		return fmt.Errorf("%w: top_geo_cities must be positive, got %d", ErrInvalidConfig, c.TopGeoCities)
	case c.TopSellers <= 0:
		return fmt.Errorf("%w: top_sellers must be positive, got %d", ErrInvalidConfig, c.TopSellers)
	case c.ChartWidthIn <= 0 || c.ChartHeightIn <= 0:
		return fmt.Errorf("%w: chart size must be positive, got %gx%g", ErrInvalidConfig, c.ChartWidthIn, c.ChartHeightIn)
	case c.RenderWorkers <= 0:
		return fmt.Errorf("%w: render_workers must be positive, got %d", ErrInvalidConfig, c.RenderWorkers)
	case c.ChartCacheSize < 0:
		return fmt.Errorf("%w: chart_cache_size must not be negative, got %d", ErrInvalidConfig, c.ChartCacheSize)
	case c.ChartCacheTTL <= 0:
		return fmt.Errorf("%w: chart_cache_ttl must be positive, got %s", ErrInvalidConfig, c.ChartCacheTTL)
	}
	if _, err := model.ParseSections(c.DefaultSections); err != nil {
		return fmt.Errorf("%w: default_sections: %w", ErrInvalidConfig, err)
	}
	return nil
}
