package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportWait time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export decoded country boundaries as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		world, err := mountAndWait(log, exportWait)
		if err != nil {
			return err
		}
		defer world.Unmount()

		geo := world.Geography()
		if len(geo.Rings) == 0 {
			return errors.New("no boundaries loaded")
		}
		data, err := geo.FeatureCollection().MarshalJSON()
		if err != nil {
			return err
		}
		log.Debug("exporting boundaries", "rings", len(geo.Rings), "skipped", geo.Skipped)
		return writeOutput(exportOut, func(w io.Writer) error {
			_, err := w.Write(append(data, '\n'))
			return err
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output file, - for stdout")
	exportCmd.Flags().DurationVar(&exportWait, "wait", 15*time.Second, "How long to wait for boundaries")
	rootCmd.AddCommand(exportCmd)
}
