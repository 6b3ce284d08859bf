// Package cli implements the spraylog commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"spray-logger/controller"
	"spray-logger/metric"
	"spray-logger/utils"
)

var (
	configPath  string
	logLevel    string
	logFile     string
	metricsFile string
)

var rootCmd = &cobra.Command{
	Use:   "spraylog",
	Short: "Parse flight-controller logs and align spray telemetry to vehicle position",
	Long: `Spraylog reads a flight-controller text log, decodes its MISSION_INFO and
SPRAY_INFO records and tags every spray sample with the nearest vehicle
position recorded within the alignment tolerance.`,
	SilenceUsage: true,
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "config/spraylog.yaml", "path to spraylog.yaml (defaults apply when missing)")
	pf.StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "also append diagnostics to this file")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics after each load")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}

// env bundles what every command needs to load a log.
type env struct {
	cfg     *utils.Config
	log     *utils.Logger
	reg     *prometheus.Registry
	metrics *metric.Metrics
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if metricsFile != "" {
		cfg.Metrics.Textfile = metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := utils.ParseLevel(cfg.Logging.Level)
	lg, err := utils.NewLogger(utils.LoggerOptions{
		Level:    level,
		FilePath: cfg.Logging.File,
		JSON:     cfg.Logging.JSON,
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	return &env{
		cfg:     cfg,
		log:     lg,
		reg:     reg,
		metrics: metric.NewMetrics(reg),
	}, nil
}

// load runs the pipeline for path with the configured options.
func (e *env) load(path string) (*controller.Log, error) {
	ts, err := e.cfg.TimestampParser()
	if err != nil {
		return nil, err
	}
	lg, err := controller.Load(path,
		controller.WithLogger(e.log),
		controller.WithTolerance(e.cfg.Tolerance()),
		controller.WithTimestampParser(ts),
		controller.WithMetrics(e.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if e.cfg.Metrics.Textfile != "" {
		if err := metric.WriteTextfile(e.cfg.Metrics.Textfile, e.reg); err != nil {
			e.log.Warn("write metrics textfile %s: %v", e.cfg.Metrics.Textfile, err)
		}
	}
	return lg, nil
}

func (e *env) close() {
	_ = e.log.Close()
}
