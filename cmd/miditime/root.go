package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kaimusic/miditime/internal/cliutil"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "miditime",
	Short: "Inspect, dump, convert, and transpose Standard MIDI Files",
	Long: `miditime parses Standard MIDI Files into a bar|beat|tick musical-time
model and re-emits them, normalizing tempo, time signature, and program
change events along the way.

Examples:
  miditime inspect song.mid
  miditime dump song.mid
  miditime convert song.mid -o out.mid --format 1
  miditime transpose song.mid -o out.mid --semitones 12
  miditime tui song.mid
  miditime serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(transposeCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func logger() *log.Logger {
	cfg, err := cliutil.Load()
	if err != nil {
		cfg = cliutil.Config{LogLevel: "info"}
	}
	if verbose {
		cfg.Verbose = true
	}
	return cliutil.NewLogger(cfg.LogLevel, cfg.Verbose)
}
