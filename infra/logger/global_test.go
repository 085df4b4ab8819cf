package logger

import (
	"bytes"
	"sync"
	"testing"

	"github.com/mstgnz/goepay/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	globalLogger = nil
	once = sync.Once{}
	t.Cleanup(func() {
		globalLogger = nil
		once = sync.Once{}
	})
}

func TestInitGlobalLogger(t *testing.T) {
	resetGlobal(t)

	InitGlobalLogger(nil, &bytes.Buffer{})

	require.NotNil(t, globalLogger)
	assert.Equal(t, "goepay", globalLogger.service)
	assert.Equal(t, "1.0.0", globalLogger.version)
	assert.False(t, globalLogger.enableSink)
}

func TestInitGlobalLogger_SinkFollowsConfig(t *testing.T) {
	t.Setenv("ENABLE_OPENSEARCH_LOGGING", "true")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOGGING_LEVEL", "warn")
	resetGlobal(t)
	resetAppConfig(t)

	InitGlobalLogger(&recordingSink{}, &bytes.Buffer{})

	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.enableSink)
	assert.Equal(t, LevelWarn, globalLogger.minLevel)
	assert.Equal(t, "production", globalLogger.environment)
}

func TestGetGlobalLogger(t *testing.T) {
	resetGlobal(t)

	logger := GetGlobalLogger()
	require.NotNil(t, logger)
	assert.Equal(t, "goepay", logger.service)
	assert.Same(t, logger, GetGlobalLogger())
}

func TestGlobalLoggerConvenienceFunctions(t *testing.T) {
	resetGlobal(t)

	buf := &bytes.Buffer{}
	SetGlobalLogger(NewSystemLogger(nil, SystemLoggerConfig{EnableConsole: true, MinLevel: LevelDebug, Output: buf}))

	Debug("debug message")
	Info("info message", LogContext{Invoice: "1"})
	Warn("warn message")
	Error("error message", nil)
	WithRequest("req-1").Info("request message")
	WithInvoice("55").Info("invoice message")

	out := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message", "request message", "invoice message"} {
		assert.Contains(t, out, msg)
	}
	assert.Contains(t, out, "req_id=req-1")
	assert.Contains(t, out, "invoice=55")
}

// resetAppConfig makes GetAppConfig re-read the environment.
func resetAppConfig(t *testing.T) {
	t.Helper()
	config.ResetAppConfig()
	t.Cleanup(config.ResetAppConfig)
}
