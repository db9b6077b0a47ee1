package logger

import (
	"io"
	"os"

	"github.com/ahmetcinarr/selvigsm/internal/config"
	"github.com/rs/zerolog"
)

// New builds the process logger from the Log config section.
func New(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
