// Command miditimed runs the miditime HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/kaimusic/miditime/internal/cliutil"
	"github.com/kaimusic/miditime/pkg/httpapi"
)

func main() {
	cfg, err := cliutil.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := cliutil.NewLogger(cfg.LogLevel, cfg.Verbose)
	if err := httpapi.Serve(cfg.Port, logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
