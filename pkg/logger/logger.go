// Package logger wraps zap behind a small package-level API so callers can
// log structured fields without carrying a logger instance around.
package logger

import (
	"go.uber.org/zap"
)

// Fields carries structured context for a single log entry.
type Fields map[string]interface{}

// WithError is shorthand for the common error field.
func WithError(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

var log = zap.Must(zap.NewDevelopment())

// Init replaces the default development logger. Call once at startup, before
// any other goroutine logs.
func Init(appEnv string) {
	if appEnv == "production" {
		log = zap.Must(zap.NewProduction())
		return
	}
	log = zap.Must(zap.NewDevelopment())
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() {
	_ = log.Sync()
}

func Debug(msg string, fields ...Fields) {
	log.Debug(msg, convert(fields)...)
}

func Info(msg string, fields ...Fields) {
	log.Info(msg, convert(fields)...)
}

func Warn(msg string, fields ...Fields) {
	log.Warn(msg, convert(fields)...)
}

func Error(msg string, fields ...Fields) {
	log.Error(msg, convert(fields)...)
}

// Fatal logs the entry and exits the process.
func Fatal(msg string, fields ...Fields) {
	log.Fatal(msg, convert(fields)...)
}

func convert(fields []Fields) []zap.Field {
	var out []zap.Field
	for _, f := range fields {
		for k, v := range f {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
