package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/missionmap/missionmap/internal/config"
	"github.com/missionmap/missionmap/internal/logging"
	intOtel "github.com/missionmap/missionmap/internal/otel"
	"github.com/missionmap/missionmap/internal/stats"
)

const appName = "missionmap"

// set at build time via -ldflags
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var rootFlags struct {
	config   string
	logLevel string
	logFile  string
	quiet    bool
}

// run-wide services, wired by setupRun
var (
	slogManager  *logging.SlogManager
	otelProvider *intOtel.Provider
	statsManager *stats.Manager

	logFile      *os.File
	sessionStart = time.Now()
)

var rootCmd = &cobra.Command{
	Use:   "missionmap",
	Short: "Convert geo-referenced mission sets to KML, CSV, GeoJSON, GPX and HTML maps",
	Long: "Missionmap converts a geo-referenced JSON mission set (nested missions of\n" +
		"portals, a flat point list, or a GeoJSON FeatureCollection) into alternate\n" +
		"formats: KML/KMZ with colored placemarks and route lines, CSV, GeoJSON,\n" +
		"GPX, a self-contained interactive HTML map, or a static map image.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: setupRun,
	PersistentPostRun: teardownRun,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.config, "config", "", "Path to config file (default: ./"+config.FileName+")")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	pf.StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file instead of stdout")
	pf.BoolVarP(&rootFlags.quiet, "quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(staticmapCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version
}

// setupRun loads the configuration and initializes logging for every
// subcommand. Log records go to a file when one is selected, either
// explicitly via --log-file or as a timestamped session log under the
// configured logsDir; otherwise they go to stdout.
func setupRun(cmd *cobra.Command, _ []string) error {
	if err := config.Load(rootFlags.config); err != nil {
		return err
	}

	level := viper.GetString("logLevel")
	if rootFlags.logLevel != "" {
		level = rootFlags.logLevel
	}
	if rootFlags.quiet {
		level = "error"
	}

	logPath := rootFlags.logFile
	if logPath == "" {
		if dir := viper.GetString("logsDir"); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create logs dir: %w", err)
			}
			logPath = logging.LogFilePath(dir, appName, sessionStart)
		}
	}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
	}

	// OTel first so the slog bridge can attach to its provider
	var provider *sdklog.LoggerProvider
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		logWriter := io.Writer(os.Stdout)
		if logFile != nil {
			logWriter = logFile
		}
		p, err := intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logWriter,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			return fmt.Errorf("initialize OTel provider: %w", err)
		}
		otelProvider = p
		provider = p.LoggerProvider()
	}

	var extra []slog.Handler
	graylogCfg := config.GetGraylogConfig()
	if graylogCfg.Enabled {
		gelfHandler, err := logging.NewGELFHandler(graylogCfg.Address, level)
		if err != nil {
			return fmt.Errorf("connect to graylog: %w", err)
		}
		extra = append(extra, gelfHandler)
	}

	slogManager = logging.NewSlogManager()
	var fileWriter io.Writer
	if logFile != nil {
		fileWriter = logFile
	}
	slogManager.Setup(fileWriter, level, provider, extra...)

	return nil
}

// teardownRun flushes telemetry and releases the log file.
func teardownRun(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()

	if statsManager != nil {
		statsManager.Close()
		statsManager = nil
	}
	if otelProvider != nil {
		if err := otelProvider.Flush(ctx); err != nil {
			slogManager.Logger().Warn("Failed to flush OTel logs", "error", err)
		}
		if err := otelProvider.Shutdown(ctx); err != nil {
			slogManager.Logger().Warn("Failed to shut down OTel provider", "error", err)
		}
		otelProvider = nil
	}
	if slogManager != nil {
		if err := slogManager.Flush(ctx); err != nil {
			slogManager.Logger().Warn("Failed to flush logs", "error", err)
		}
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
