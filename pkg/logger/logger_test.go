package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
		"fatal":   FATAL,
		"info":    INFO,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, DEBUG.zapLevel())
	assert.Equal(t, zapcore.ErrorLevel, ERROR.zapLevel())
	assert.Equal(t, zapcore.InfoLevel, LogLevel(42).zapLevel())
}

func TestNopLoggerAcceptsCalls(t *testing.T) {
	log := NewNop().Named("test")

	assert.NotPanics(t, func() {
		log.Info("value %d", 1)
		log.Warnw("structured", "key", "value")
	})
}

func TestNewWithCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewWithCore(core, INFO)

	log.Debugw("hidden")
	log.Infow("visible", "key", "value")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Message)
	assert.Equal(t, "value", entries[0].ContextMap()["key"])
}
