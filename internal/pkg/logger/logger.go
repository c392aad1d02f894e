package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var globalLogger *slog.Logger

// Init builds the process-wide loggers: a zap production logger for the
// infrastructure clients and a slog logger bridged onto the same zap core
// for the application services. Returns the zap logger for direct use.
func Init(levelStr string) (*zap.Logger, error) {
	var parsedLevel zapcore.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		parsedLevel = zapcore.DebugLevel
	case "INFO":
		parsedLevel = zapcore.InfoLevel
	case "WARN":
		parsedLevel = zapcore.WarnLevel
	case "ERROR":
		parsedLevel = zapcore.ErrorLevel
	default:
		parsedLevel = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(parsedLevel)
	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	handler := zapslog.NewHandler(zapLogger.Core())
	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
	return zapLogger, nil
}

func ensureInitialized() {
	if globalLogger == nil {
		if _, err := Init("INFO"); err != nil {
			globalLogger = slog.Default()
		}
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
	os.Exit(1)
}
