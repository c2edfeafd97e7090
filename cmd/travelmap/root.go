package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"travelmap/internal/chapter"
	"travelmap/internal/config"
	"travelmap/internal/worldmap"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "travelmap",
	Short:         "Interactive travel map with chapter markers and flight paths",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "travelmap.toml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger writes JSON records to w at the configured level.
func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// fileLogger logs to [log] file, or nowhere when none is set. The terminal
// UI owns stdout and stderr.
func fileLogger() (*slog.Logger, func() error, error) {
	if cfg.Log.File == "" {
		l, err := newLogger(io.Discard)
		return l, func() error { return nil }, err
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f.Close, nil
}

func loadChapters() ([]chapter.Chapter, error) {
	if cfg.Chapters.File == "" {
		return chapter.Defaults(), nil
	}
	return chapter.Load(cfg.Chapters.File)
}

// mapOptions wires configuration into a map component.
func mapOptions(log *slog.Logger) []worldmap.Option {
	return []worldmap.Option{
		worldmap.WithProjector(cfg.Projector()),
		worldmap.WithCrop(cfg.CropWindow()),
		worldmap.WithObject(cfg.Topology.Object),
		worldmap.WithLogger(log),
	}
}

func newWorld(log *slog.Logger) (*worldmap.Map, error) {
	chs, err := loadChapters()
	if err != nil {
		return nil, err
	}
	return worldmap.New(chs, mapOptions(log)...), nil
}
