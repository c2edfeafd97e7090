package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"travelmap/internal/worldmap"
)

var (
	renderOut    string
	renderHover  string
	renderWidth  int
	renderStatic bool
	renderWait   time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the map as an SVG document",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		world, err := mountAndWait(log, renderWait)
		if err != nil {
			return err
		}
		defer world.Unmount()

		opt := worldmap.DefaultSVGOptions()
		opt.Hover = renderHover
		opt.Width = renderWidth
		opt.Animate = !renderStatic

		return writeOutput(renderOut, func(w io.Writer) error {
			return world.WriteSVG(w, opt)
		})
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "-", "Output file, - for stdout")
	renderCmd.Flags().StringVar(&renderHover, "hover", "", "Chapter to render as hovered")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Width attribute in pixels")
	renderCmd.Flags().BoolVar(&renderStatic, "static", false, "Omit animations")
	renderCmd.Flags().DurationVar(&renderWait, "wait", 15*time.Second, "How long to wait for boundaries")
	rootCmd.AddCommand(renderCmd)
}

// mountAndWait builds the map and waits up to d for the boundaries. A map
// without boundaries is still returned; the load failure has been logged.
func mountAndWait(log *slog.Logger, d time.Duration) (*worldmap.Map, error) {
	world, err := newWorld(log)
	if err != nil {
		return nil, err
	}
	select {
	case <-world.Mount(context.Background(), cfg.Source()):
	case <-time.After(d):
		log.Warn("boundaries not loaded in time", "wait", d)
	}
	return world, nil
}

func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
