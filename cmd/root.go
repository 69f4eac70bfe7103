package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/config"
	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/pkg/logger"
	"github.com/pable/go-mc-reports/pkg/metrics"
)

var (
	cfg *config.Config

	dbPath       string
	logLevel     string
	noColor      bool
	metricsFile  string
	defaultColor string
)

var rootCmd = &cobra.Command{
	Use:   "mcreports",
	Short: "Minecraft match report processor",
	Long: `Turn raw Minecraft match reports into processed reports: merged damages,
winners, ranks, per-player alterations and displayable statistics.

Configuration is read from the YAML file named by MCREPORTS_CONFIG and from
MCREPORTS_* environment variables; flags win over both.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default ~/.mcreports/reports.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text-format metrics to this file")
	rootCmd.PersistentFlags().StringVar(&defaultColor, "default-color", "", "team color for players without a team")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(reprocessCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(recapCmd)
}

// loadConfig layers config file and env under the flags that were set
// explicitly, then sets up logging and colors.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		c.DBPath = dbPath
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("metrics-file") {
		c.MetricsFile = metricsFile
	}
	if flags.Changed("default-color") {
		c.DefaultTeamColor = defaultColor
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	dbPath = c.DBPath

	if err := logger.Init(os.Stderr, logger.Options{JSON: c.LogJSON}); err != nil {
		return err
	}
	if err := logger.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	if noColor {
		color.NoColor = true
	}
	return nil
}

// teamColor returns the configured color for players without a team.
func teamColor() model.TeamColor {
	c, err := model.ParseTeamColor(cfg.DefaultTeamColor)
	if err != nil {
		return model.ColorNone
	}
	return c
}

// flushMetrics writes the batch metrics when a metrics file is configured.
func flushMetrics(ctx context.Context, m *metrics.Manager) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Get().Warn(ctx, "metrics not written", logger.String("path", cfg.MetricsFile), logger.Error(err))
	}
}
