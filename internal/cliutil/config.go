// Package cliutil holds the configuration and logging plumbing shared by
// cmd/miditime and cmd/miditimed.
package cliutil

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved set of runtime settings for either binary: CLI
// flags win, then environment variables (MIDITIME_*), then .env, then
// these defaults.
type Config struct {
	Port     int
	LogLevel string
	Verbose  bool
}

// Load reads .env (if present) and environment variables into a Config.
// Callers then override fields from their own flag parsing.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("miditime")
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("verbose", false)

	return Config{
		Port:     v.GetInt("port"),
		LogLevel: strings.ToLower(v.GetString("log_level")),
		Verbose:  v.GetBool("verbose"),
	}, nil
}
