// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LevelFatal is the FATAL threshold. It sits above slog.LevelError and maps
// onto charmbracelet/log's fatal level; logging at it never exits the process.
const LevelFatal = slog.LevelError + 4

// Formatter names accepted by Options.Format.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Options configures New.
type Options struct {
	// Level is the minimum level that is emitted.
	Level slog.Level
	// Format is one of FormatText, FormatJSON or FormatLogfmt. Empty means text.
	Format string
	// Prefix is printed before every message.
	Prefix string
	// Timestamps enables time reporting on every record.
	Timestamps bool
}

// New returns a slog logger writing to w through a charmbracelet/log handler.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	formatter, err := parseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(opts.Level),
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.TimeOnly,
		Formatter:       formatter,
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses debug, info, warn, error or fatal (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected debug, info, warn, error or fatal)", s)
	}
}

// Fatal logs msg at LevelFatal with err attached.
func Fatal(ctx context.Context, logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err)
	}
	logger.Log(ctx, LevelFatal, msg, args...)
}

// DebugEnabled reports whether logger emits debug records. Callers use it to
// skip building expensive diagnostic strings.
func DebugEnabled(ctx context.Context, logger *slog.Logger) bool {
	return logger.Enabled(ctx, slog.LevelDebug)
}

func parseFormatter(name string) (log.Formatter, error) {
	switch strings.ToLower(name) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q (expected text, json or logfmt)", name)
	}
}
