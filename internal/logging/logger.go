package logging

import (
	"log/slog"

	"github.com/baitwatch/baitwatch/internal/database"
)

var logger *slog.Logger

// Setup installs a database-backed logger as the global instance and returns it.
func Setup(queries *database.Queries, debug bool) *slog.Logger {
	l := slog.New(NewDatabaseHandlerWithDebug(queries, debug))
	SetLogger(l)
	return l
}

// SetLogger sets the global logger instance
func SetLogger(l *slog.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

func Info(msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

func Debug(msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}
