package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// zerologLogger adapts zerolog to calculation.Logger
type zerologLogger struct {
	log zerolog.Logger
}

func (l zerologLogger) Debugf(format string, args ...interface{}) { l.log.Debug().Msgf(format, args...) }
func (l zerologLogger) Infof(format string, args ...interface{})  { l.log.Info().Msgf(format, args...) }
func (l zerologLogger) Warnf(format string, args ...interface{})  { l.log.Warn().Msgf(format, args...) }
func (l zerologLogger) Errorf(format string, args ...interface{}) { l.log.Error().Msgf(format, args...) }

// newLogger writes JSON lines, or the console format when w is a terminal.
func newLogger(w io.Writer, level string) (zerologLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerologLogger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	return zerologLogger{log: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}
