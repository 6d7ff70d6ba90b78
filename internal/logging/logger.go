package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "TETHERPANEL_LOG_LEVEL"

// refreshTimeLayout matches the time line shown on the panel.
const refreshTimeLayout = "01/02 15:04:05"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks TETHERPANEL_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the TETHERPANEL_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogButton logs a button press and the action it was dispatched to
func LogButton(button string, action string) {
	Debug("Button pressed",
		zap.String("button", button),
		zap.String("action", action),
	)
}

// LogConfirmation logs a guarded action changing state
func LogConfirmation(action string, state string, deadline time.Time) {
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("state", state),
	}
	if !deadline.IsZero() {
		fields = append(fields, zap.Time("deadline", deadline))
	}
	Info("Confirmation event", fields...)
}

// LogRouteSwitch logs the result of a default route switch request
func LogRouteSwitch(iface string, outcome string, err error) {
	if err != nil {
		Warn("Default route switch failed",
			zap.String("interface", iface),
			zap.Error(err),
		)
		return
	}
	Info("Default route switch",
		zap.String("interface", iface),
		zap.String("outcome", outcome),
	)
}

// LogRefresh logs a dashboard redraw
func LogRefresh(at time.Time, forced bool) {
	Info("Refreshed at: "+at.Format(refreshTimeLayout),
		zap.Bool("forced", forced),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
