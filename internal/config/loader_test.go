package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-mc-reports/internal/config"
)

var configEnvVars = []string{
	"MCREPORTS_CONFIG",
	"MCREPORTS_LOG_LEVEL",
	"MCREPORTS_DB_PATH",
	"MCREPORTS_DEFAULT_TEAM_COLOR",
	"MCREPORTS_OUTPUT_DIR",
	"MCREPORTS_JOBS",
	"MCREPORTS_METRICS_FILE",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "mcreports.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.DefaultTeamColor, convey.ShouldEqual, "NONE")
				convey.So(cfg.Jobs, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.DBPath, convey.ShouldNotBeEmpty)
				convey.So(cfg.OutputDir, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MCREPORTS_DB_PATH", "/tmp/reports.db")
			_ = os.Setenv("MCREPORTS_JOBS", "3")
			_ = os.Setenv("MCREPORTS_DEFAULT_TEAM_COLOR", "dark_red")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/reports.db")
				convey.So(cfg.Jobs, convey.ShouldEqual, 3)
				convey.So(cfg.DefaultTeamColor, convey.ShouldEqual, "dark_red")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile(t, `
log_level: debug
output_dir: ./processed
jobs: 8
metrics_file: ./metrics.prom
`)
			_ = os.Setenv("MCREPORTS_CONFIG", path)
			_ = os.Setenv("MCREPORTS_JOBS", "2")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "./processed")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "./metrics.prom")
				convey.So(cfg.Jobs, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv("MCREPORTS_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MCREPORTS_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When jobs is zero", func() {
			_ = os.Setenv("MCREPORTS_JOBS", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "jobs")
			})
		})

		convey.Convey("When the default team color is unknown", func() {
			_ = os.Setenv("MCREPORTS_DEFAULT_TEAM_COLOR", "magenta")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "default_team_color")
			})
		})

		convey.Convey("When the log level is unknown", func() {
			_ = os.Setenv("MCREPORTS_LOG_LEVEL", "chatty")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
