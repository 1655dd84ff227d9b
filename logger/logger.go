package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Console output is used unless
// json is set.
func Init(level string, json bool) zerolog.Logger {
	return InitWriter(os.Stdout, level, json)
}

func InitWriter(w io.Writer, level string, json bool) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(level))
	if !json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}
