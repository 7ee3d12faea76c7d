// Package logger wraps a process-wide zap SugaredLogger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sugar is a no-op until Init is called, so packages can log from tests.
var sugar = zap.NewNop().Sugar()

// Init builds the global logger. format is "console" or "json"; an unparsable
// level falls back to info.
func Init(level, format string) error {
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Encoding = "json"
	}
	zapConfig.Level = logLevel
	zapConfig.OutputPaths = []string{"stdout"}

	l, err := zapConfig.Build()
	if err != nil {
		return err
	}
	sugar = l.Sugar()
	return nil
}

// Use replaces the global logger. Mostly useful in tests with zaptest/observer.
func Use(l *zap.Logger) {
	sugar = l.Sugar()
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

// Infow logs a message with key/value pairs.
func Infow(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	sugar.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

// Fatal logs err and exits the process.
func Fatal(msg string, err error) {
	sugar.Fatalw(msg, "error", err)
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = sugar.Sync()
}
