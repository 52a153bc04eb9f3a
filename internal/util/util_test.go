package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromVerbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose int
		want    LogLevel
	}{
		{"error", 1, ErrorLevel},
		{"warn", 2, WarnLevel},
		{"info", 3, InfoLevel},
		{"debug", 4, DebugLevel},
		{"trace", 5, TraceLevel},
		{"clamped_low", -3, ErrorLevel},
		{"clamped_high", 42, TraceLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LevelFromVerbosity(tt.verbose))
		})
	}
}

func TestZerologLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.TraceLevel, ZerologLevel(TraceLevel))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(99), "unknown levels must fall back to info")
}

func TestGetLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	InitializeLoggerTo(&buf, InfoLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger := GetLogger("unit")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "component")
	assert.Contains(t, buf.String(), "unit")
}

func TestValueOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ValueOrDefault(Pointer(7), 3))
	assert.Equal(t, 3, ValueOrDefault[int](nil, 3))
}
