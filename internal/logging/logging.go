// Package logging configures process diagnostics.
//
// Everything is written to stderr: when the bridge serves MCP over stdio, stdout carries
// protocol frames only.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to w, debug enables debug level
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Stderr creates a console logger writing to stderr
func Stderr(debug bool) zerolog.Logger {
	return New(os.Stderr, debug)
}
