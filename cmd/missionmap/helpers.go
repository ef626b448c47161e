package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/missionmap/missionmap/internal/config"
	"github.com/missionmap/missionmap/internal/model"
	"github.com/missionmap/missionmap/internal/normalize"
	"github.com/missionmap/missionmap/internal/stats"
	"github.com/missionmap/missionmap/internal/util"
)

// setRunContext tags every subsequent log record with the input file
// being processed.
func setRunContext(input string) {
	slogManager.ContextAttrs = func() []slog.Attr {
		return []slog.Attr{slog.String("input", filepath.Base(input))}
	}
}

// loadDocument reads, parses and normalizes one input file. The
// document name falls back to the input file stem when name is empty.
func loadDocument(path, name string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var raw any
	if err := json.Unmarshal(util.StripBOM(data), &raw); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	if name == "" {
		name = util.FileStem(path)
	}
	return normalize.New(slogManager.Logger()).Document(name, raw), nil
}

// reportRun records one finished conversion when telemetry is enabled.
// The manager is connected lazily so runs without telemetry never pay
// for it.
func reportRun(ctx context.Context, s model.RunStats) {
	if !config.GetInfluxConfig().Enabled {
		return
	}

	if statsManager == nil {
		statsOut := io.Writer(os.Stderr)
		if logFile != nil {
			statsOut = logFile
		}
		statsLog := zerolog.New(zerolog.ConsoleWriter{
			Out:        statsOut,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}).With().Timestamp().Logger()

		statsManager = stats.NewManager(statsLog, statsBackupPath())
		if err := statsManager.Connect(); err != nil {
			slogManager.Logger().Warn("Run statistics disabled", "error", err)
			statsManager = nil
			return
		}
	}

	statsManager.WriteRunStats(ctx, s)
}

// statsBackupPath places the line-protocol backup next to the session
// logs, or under the system temp dir when console logging is active.
func statsBackupPath() string {
	dir := viper.GetString("logsDir")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "missionmap_influx_backup.log.gz")
}
