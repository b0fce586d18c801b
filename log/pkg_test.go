package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useDefault replaces the default logger for the duration of t.
func useDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	original := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})

	var buf bytes.Buffer

	Config(append([]Option{WithOutput(&buf), WithPretty(false)}, opts...)...)

	return &buf
}

func TestPackage_Functions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		log   func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"TraceContext", func(m string, a ...slog.Attr) { TraceContext(ctx, m, a...) }, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"DebugContext", func(m string, a ...slog.Attr) { DebugContext(ctx, m, a...) }, "DEBUG"},
		{"Info", Info, "INFO"},
		{"InfoContext", func(m string, a ...slog.Attr) { InfoContext(ctx, m, a...) }, "INFO"},
		{"Warn", Warn, "WARN"},
		{"WarnContext", func(m string, a ...slog.Attr) { WarnContext(ctx, m, a...) }, "WARN"},
		{"Error", Error, "ERROR"},
		{"ErrorContext", func(m string, a ...slog.Attr) { ErrorContext(ctx, m, a...) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := useDefault(t, WithLevel(LevelTrace))

			tt.log("order complete", slog.Int("entries", 4))

			rec := decode(t, buf)
			require.Len(t, rec, 1)
			assert.Equal(t, tt.level, rec[0]["level"])
			assert.Equal(t, "order complete", rec[0]["msg"])
			assert.InDelta(t, 4, rec[0]["entries"], 0)
		})
	}
}

func TestPackage_ConfigKeepsEarlierOptions(t *testing.T) {
	buf := useDefault(t, WithLevel(LevelWarn))

	Config(WithFormat(FormatJSON))

	assert.Equal(t, LevelWarn, Default().Level())

	Info("hidden")
	Warn("shown")

	rec := decode(t, buf)
	require.Len(t, rec, 1)
	assert.Equal(t, "shown", rec[0]["msg"])
}

func TestPackage_With(t *testing.T) {
	buf := useDefault(t)

	With(slog.String("command", "order")).Info("start")

	rec := decode(t, buf)
	require.Len(t, rec, 1)
	assert.Equal(t, "order", rec[0]["command"])
}
