package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"salesreport/internal/config"
)

// contextKey is a type for context keys
type contextKey string

// TraceIDContextKey is the key for storing the run trace ID in context
const TraceIDContextKey contextKey = "trace_id"

// logSink owns the process logger and the file it writes to
type logSink struct {
	mu     sync.Mutex
	once   sync.Once
	logger *slog.Logger
	file   *os.File
}

var sink = &logSink{}

// InitializeLogger builds the process logger from cfg and installs it as the
// slog default. Console output goes to console, or stderr when nil, so stdout
// only carries the completion line. Only the first call configures anything;
// later calls return the same logger.
func InitializeLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, error) {
	if console == nil {
		console = os.Stderr
	}
	var err error
	sink.once.Do(func() {
		var logger *slog.Logger
		logger, err = NewLogger(cfg, console)
		if err != nil {
			return
		}
		sink.mu.Lock()
		sink.logger = logger
		sink.mu.Unlock()
		slog.SetDefault(logger)
	})
	return GetLogger(), err
}

// GetLogger returns the process logger, or slog.Default before InitializeLogger
func GetLogger() *slog.Logger {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.logger == nil {
		return slog.Default()
	}
	return sink.logger
}

// NewLogger builds a logger writing to console, the configured file, or both.
// Every record carries the application name and version.
func NewLogger(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, error) {
	output, err := logOutput(cfg, console)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		AddSource:   parseLogLevel(cfg.Level) == slog.LevelDebug,
		Level:       parseLogLevel(cfg.Level),
		ReplaceAttr: replaceDuration,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(&traceHandler{Handler: handler}).With(
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
	), nil
}

// logOutput resolves the writer for cfg.Output, opening the log file if needed
func logOutput(cfg config.LoggingConfig, console io.Writer) (io.Writer, error) {
	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink.setFile(file)
		if strings.EqualFold(cfg.Output, "both") {
			return io.MultiWriter(console, file), nil
		}
		return file, nil
	default:
		return console, nil
	}
}

// replaceDuration renders durations as Go duration strings ("1.5s")
func replaceDuration(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.String(a.Key, a.Value.Duration().Round(time.Microsecond).String())
	}
	return a
}

// traceHandler adds the run trace ID and, inside a recording span, the
// OpenTelemetry trace and span IDs
type traceHandler struct {
	slog.Handler
}

// Handle implements slog.Handler
func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("otel_trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler
func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler
func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel converts a configured level name to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTraceID adds a trace ID to the context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(TraceIDContextKey).(string)
	return traceID
}

// CloseLogFile closes the log file opened by the process logger, if any
func CloseLogFile() error {
	return sink.setFile(nil)
}

// ResetLoggerForTesting forgets the process logger so the next
// InitializeLogger call configures a new one
func ResetLoggerForTesting() {
	CloseLogFile()
	sink.mu.Lock()
	sink.logger = nil
	sink.once = sync.Once{}
	sink.mu.Unlock()
}

// setFile replaces the tracked log file, closing the previous one
func (s *logSink) setFile(file *os.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.file != nil {
		err = s.file.Close()
	}
	s.file = file
	return err
}

// openLogFile opens or creates a log file, creating its directory
func openLogFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return nil, fmt.Errorf("no log file path configured")
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
