package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"ERROR":  LogLevelError,
		"warn":   LogLevelWarn,
		"":       LogLevelInfo,
		"bogus":  LogLevelInfo,
		"DEBUG":  LogLevelDebug,
		" trace": LogLevelTrace,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := newLogger(LogLevelWarn, zap.New(core))

	l.Info("dropped %d", 1)
	l.Debug("dropped")
	l.Warn("kept %s", "warn")
	l.Error("kept %s", "error")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "kept warn", entries[0].Message)
		assert.Equal(t, "kept error", entries[1].Message)
	}
}

func TestTraceUsesDebugLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := newLogger(LogLevelTrace, zap.New(core))

	l.Trace("row %d", 7)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "[TRACE] row 7", entries[0].Message)
		assert.Equal(t, zap.DebugLevel, entries[0].Level)
	}
}

func TestNewDefaultLoggerReadsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	l := NewDefaultLogger()
	defer l.Sync()
	assert.Equal(t, LogLevelDebug, l.level)
}
