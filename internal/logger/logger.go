// Package logger provides a configured zerolog instance.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
)

// NewLogger creates a new configured instance of zerolog.Logger.
// It reads the log level from the config and adds default fields like service name and caller.
func NewLogger(cfg *config.Config) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		// Default to info level if config is invalid or missing
		level = zerolog.InfoLevel
	}

	// For local development, a pretty console output is much more readable.
	// For production, you'd typically remove ConsoleWriter to get pure JSON.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}

	logger := zerolog.New(consoleWriter).With().
		Timestamp().
		Str("service", "telegram-relay").
		Caller().
		Logger().
		Level(level)

	if cfg.Auth.APIKey == config.DefaultAPIKey {
		logger.Warn().Msg("auth.api_key is the built-in default; set AUTH_API_KEY to a real secret")
	}

	return &logger, nil
}
