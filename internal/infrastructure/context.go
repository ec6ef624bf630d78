package infrastructure

import (
	"log/slog"

	"github.com/google/uuid"

	apperrors "salesreport/internal/errors"
)

// GenerateTraceID returns a new random run identifier
func GenerateTraceID() string {
	return uuid.NewString()
}

// WithComponent returns a logger tagged with component
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}

// WithError returns a logger carrying err and, for application errors, its type
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	attrs := []any{slog.String("error", err.Error())}
	if errType := apperrors.TypeOf(err); errType != "" {
		attrs = append(attrs, slog.String("error_type", string(errType)))
	}
	return logger.With(attrs...)
}
