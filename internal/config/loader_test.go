package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/shopease/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "dashboard")
				convey.So(cfg.TopCities, convey.ShouldEqual, 5)
				convey.So(cfg.DefaultSections, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SHOPEASE_ADDR", ":8080")
			_ = os.Setenv("SHOPEASE_DATA_DIR", "/srv/extracts")
			_ = os.Setenv("SHOPEASE_TOP_CITIES", "10")
			_ = os.Setenv("SHOPEASE_LOG_FORMAT", "json")
			_ = os.Setenv("SHOPEASE_DEFAULT_SECTIONS", "geographics, reviews")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/extracts")
				convey.So(cfg.TopCities, convey.ShouldEqual, 10)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.DefaultSections, convey.ShouldResemble, []string{"geographics", "reviews"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dashboard settings
addr: ":9090"
data_dir: ./testdata
top_sellers: 15
chart_width_in: 10
default_sections:
  - reviews
  - product_detail
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SHOPEASE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "./testdata")
				convey.So(cfg.TopSellers, convey.ShouldEqual, 15)
				convey.So(cfg.ChartWidthIn, convey.ShouldEqual, 10)
				convey.So(cfg.ChartHeightIn, convey.ShouldEqual, 5)
				convey.So(cfg.TopCities, convey.ShouldEqual, 5)
				convey.So(cfg.DefaultSections, convey.ShouldResemble, []string{"reviews", "product_detail"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "addr: \":9090\"\ntop_cities: 7\n")
			_ = os.Setenv("SHOPEASE_CONFIG", tmpFile)
			_ = os.Setenv("SHOPEASE_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TopCities, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When loading chart cache settings from the environment", func() {
			_ = os.Setenv("SHOPEASE_CHART_CACHE_SIZE", "0")
			_ = os.Setenv("SHOPEASE_CHART_CACHE_TTL", "2m")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the size and duration are parsed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ChartCacheSize, convey.ShouldEqual, 0)
				convey.So(cfg.ChartCacheTTL, convey.ShouldEqual, 2*time.Minute)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("SHOPEASE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SHOPEASE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SHOPEASE_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SHOPEASE_TOP_CITIES", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with zero top cities", func() {
			_ = os.Setenv("SHOPEASE_TOP_CITIES", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown default section", func() {
			_ = os.Setenv("SHOPEASE_DEFAULT_SECTIONS", "reviews,weather")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "weather")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SHOPEASE_CONFIG",
		"SHOPEASE_ADDR",
		"SHOPEASE_DATA_DIR",
		"SHOPEASE_TOP_CITIES",
		"SHOPEASE_LOG_FORMAT",
		"SHOPEASE_DEFAULT_SECTIONS",
		"SHOPEASE_CHART_CACHE_SIZE",
		"SHOPEASE_CHART_CACHE_TTL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shopease.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
