// Package logging builds [slog.Handler]s from the level and format strings
// accepted on the command line.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
)

var (
	ErrUnknownFormat = errors.New("unknown log format")
	ErrUnknownLevel  = errors.New("unknown log level")
)

// CreateHandlerWithStrings creates a [slog.Handler] writing to w by strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return CreateHandler(w, level, logFormat)
}

// CreateHandler creates a [slog.Handler] writing to w. Text and logfmt output is
// rendered by charmbracelet/log, JSON output by log/slog.
func CreateHandler(w io.Writer, level slog.Level, logFormat string) (slog.Handler, error) {
	var formatter log.Formatter

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case TextFormat, "":
		formatter = log.TextFormatter
	case LogfmtFormat:
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, logFormat)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		Formatter:       formatter,
		ReportTimestamp: true,
	}), nil
}

// GetLevel parses a level name. Names are case-insensitive; "warning" and
// "trace" are accepted as aliases of "warn" and "debug".
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "warning":
		return slog.LevelWarn, nil
	case "trace":
		return slog.LevelDebug, nil
	case "":
		return slog.LevelInfo, nil
	}

	l, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnknownLevel, err)
	}
	return slog.Level(l), nil
}
