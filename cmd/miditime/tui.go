package main

import (
	"github.com/spf13/cobra"

	"github.com/kaimusic/miditime/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [file.mid]",
	Short: "Launch the interactive terminal browser",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	return tui.Run(path)
}
