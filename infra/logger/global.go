package logger

import (
	"io"
	"sync"

	"github.com/mstgnz/goepay/infra/config"
)

var (
	globalLogger *SystemLogger
	globalMu     sync.Mutex
	once         sync.Once
)

// InitGlobalLogger initializes the global system logger writing to out
// (os.Stdout when nil). A nil sink keeps logging on the console only.
func InitGlobalLogger(sink Sink, out io.Writer) {
	once.Do(func() {
		appConfig := config.GetAppConfig()
		cfg := SystemLoggerConfig{
			EnableConsole: true,
			EnableSink:    sink != nil && appConfig.EnableLogging,
			MinLevel:      ParseLevel(appConfig.LoggingLevel),
			Service:       "goepay",
			Version:       "1.0.0",
			Environment:   appConfig.Environment,
			Output:        out,
		}

		if cfg.Environment == "development" {
			cfg.MinLevel = LevelDebug
		}

		globalMu.Lock()
		globalLogger = NewSystemLogger(sink, cfg)
		globalMu.Unlock()
	})
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *SystemLogger {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger == nil {
		// Fallback to console-only logger if not initialized
		globalLogger = NewSystemLogger(nil, SystemLoggerConfig{
			EnableConsole: true,
			MinLevel:      LevelInfo,
			Service:       "goepay",
			Version:       "1.0.0",
			Environment:   "development",
		})
	}
	return globalLogger
}

// SetGlobalLogger replaces the global logger, mainly for tests and embedding.
func SetGlobalLogger(sl *SystemLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = sl
}

// Debug logs a debug message using the global logger
func Debug(message string, ctx ...LogContext) {
	GetGlobalLogger().Debug(message, ctx...)
}

// Info logs an info message using the global logger
func Info(message string, ctx ...LogContext) {
	GetGlobalLogger().Info(message, ctx...)
}

// Warn logs a warning message using the global logger
func Warn(message string, ctx ...LogContext) {
	GetGlobalLogger().Warn(message, ctx...)
}

// Error logs an error message using the global logger
func Error(message string, err error, ctx ...LogContext) {
	GetGlobalLogger().Error(message, err, ctx...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, ctx ...LogContext) {
	GetGlobalLogger().Fatal(message, err, ctx...)
}

// WithContext creates a context logger from the global logger
func WithContext(ctx LogContext) *ContextLogger {
	return GetGlobalLogger().WithContext(ctx)
}

// WithRequest creates a context logger for one inbound request
func WithRequest(requestID string) *ContextLogger {
	return WithContext(LogContext{RequestID: requestID})
}

// WithInvoice creates a context logger for one invoice
func WithInvoice(invoice string) *ContextLogger {
	return WithContext(LogContext{Invoice: invoice})
}
