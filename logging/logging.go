// Package logging sets up the environment and global logger shared by the
// binaries in cmd/.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init loads a .env file from the working directory if there is one, and
// configures the global logger from LOG_LEVEL (default "info"). It must run
// before flags are parsed, so flags can be set from the .env file.
func Init() {
	envErr := godotenv.Load()
	Setup(os.Stderr, os.Getenv("LOG_LEVEL"))
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("Failed to load .env file")
	}
}

// Setup points the global logger at a human-friendly writer on w. Unknown
// levels fall back to info.
func Setup(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown LOG_LEVEL, using info")
	}
}
