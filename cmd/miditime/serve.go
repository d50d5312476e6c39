package main

import (
	"github.com/spf13/cobra"

	"github.com/kaimusic/miditime/pkg/httpapi"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API in-process",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	return httpapi.Serve(servePort, logger())
}
