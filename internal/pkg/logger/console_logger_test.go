//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/sitebill/sitebill/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(&buf, config.LogLevelInfo)

	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	logger.Debug("debug message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.NotContains(t, output, "debug message")
}

func TestConsoleLogger_StructuredAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(&buf, config.LogLevelDebug)

	logger.Debug("invoice published", "invoice_id", 42, "status", "published")

	output := buf.String()
	assert.Contains(t, output, "invoice published")
	assert.Contains(t, output, "invoice_id=42")
	assert.Contains(t, output, "status=published")
}

func TestConsoleLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(&buf, config.LogLevelInfo)

	exitCode := -1
	logger.exit = func(code int) { exitCode = code }

	logger.Fatal("cannot continue")
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, buf.String(), "cannot continue")
}

func TestConsoleLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger := newConsoleLogger(&buf, config.LogLevelInfo)

	assert.PanicsWithValue(t, "boom", func() {
		logger.Panic("boom")
	})
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}
