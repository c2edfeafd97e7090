package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"travelmap/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the map in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := fileLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		chs, err := loadChapters()
		if err != nil {
			return err
		}
		m := tui.New(chs, cfg.Source(), mapOptions(log)...)
		defer m.World().Unmount()

		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.RunE = tuiCmd.RunE
}
