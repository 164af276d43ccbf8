// Package output provides console and file logging plus terminal styling for mocotch.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Splog
type Options struct {
	// Writer receives console output. Defaults to os.Stdout.
	Writer io.Writer
	// Debug shows debug messages and every diagnostic on the console
	Debug bool
	// LogFile enables rotating file logging when non-empty
	LogFile string
	// MaxSize is the size in megabytes at which the log file is rotated
	MaxSize int
	// MaxBackups is the number of rotated files to keep
	MaxBackups int
	// MaxAge is the number of days rotated files are kept
	MaxAge int
}

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes.
// With showAttrs set, record attributes follow the message as key=value pairs.
type simpleHandler struct {
	writer    io.Writer
	level     slog.Level
	showAttrs bool
	attrs     []slog.Attr
	quiet     *bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	if !h.showAttrs {
		_, err := fmt.Fprintln(h.writer, record.Message)
		return err
	}

	var b strings.Builder
	b.WriteString(record.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	record.Attrs(write)
	_, err := fmt.Fprintln(h.writer, b.String())
	return err
}

func (h *simpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = slices.Concat(h.attrs, attrs)
	return &clone
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// createLumberjackLogger creates a rotating file writer, falling back to defaults for unset limits
func createLumberjackLogger(opts Options) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   opts.LogFile,
		MaxSize:    1,  // 1MB (in megabytes) - default
		MaxBackups: 2,  // Keep 2 old files - default
		MaxAge:     30, // Keep for 30 days - default
		Compress:   false,
	}
	if opts.MaxSize > 0 {
		config.MaxSize = opts.MaxSize
	}
	if opts.MaxBackups > 0 {
		config.MaxBackups = opts.MaxBackups
	}
	if opts.MaxAge > 0 {
		config.MaxAge = opts.MaxAge
	}
	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog provides user-facing messages and the diagnostics logger handed to
// project handles. Both fan out to the console and, when configured, to a
// rotating log file.
type Splog struct {
	logger      *slog.Logger
	diagnostics *slog.Logger
	writer      io.Writer
	logWriter   io.WriteCloser
	quiet       bool
}

// NewSplogWithOptions creates a new splog instance with optional file logging
func NewSplogWithOptions(opts Options) (*Splog, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	splog := &Splog{writer: writer}

	messageLevel := slog.LevelInfo
	diagnosticLevel := slog.LevelWarn
	if opts.Debug {
		messageLevel = slog.LevelDebug
		diagnosticLevel = slog.LevelDebug
	}

	messageHandlers := []slog.Handler{&simpleHandler{
		writer: writer,
		level:  messageLevel,
		quiet:  &splog.quiet,
	}}
	diagnosticHandlers := []slog.Handler{&simpleHandler{
		writer:    writer,
		level:     diagnosticLevel,
		showAttrs: true,
		quiet:     &splog.quiet,
	}}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(opts)
		splog.logWriter = lumberjackLogger

		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug, // Always log everything to file
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		messageHandlers = append(messageHandlers, fileHandler)
		diagnosticHandlers = append(diagnosticHandlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: messageHandlers})
	splog.diagnostics = slog.New(&multiHandler{handlers: diagnosticHandlers})
	return splog, nil
}

// Logger returns the structured logger for repository diagnostics
func (s *Splog) Logger() *slog.Logger {
	return s.diagnostics
}

// SetQuiet suppresses all console output while quiet is true
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

func (s *Splog) logMessage(level slog.Level, prefix, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...any) {
	s.logMessage(slog.LevelInfo, "", format, args...)
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...any) {
	s.logMessage(slog.LevelWarn, "⚠️  ", format, args...)
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...any) {
	s.logMessage(slog.LevelError, "❌ ", format, args...)
}

// Debug writes a debug message, shown only in debug mode
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...any) {
	s.logMessage(slog.LevelDebug, "", format, args...)
}

// Tip writes a tip message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Tip(format string, args ...any) {
	s.logMessage(slog.LevelInfo, "💡 ", format, args...)
}

// Newline writes a newline
func (s *Splog) Newline() {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprintln(s.writer)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
