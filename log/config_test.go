package log

import (
	"bytes"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name  string
		opt   Option
		check func(t *testing.T, c config)
	}{
		{"level", WithLevel(LevelTrace), func(t *testing.T, c config) {
			assert.Equal(t, LevelTrace, c.level)
		}},
		{"format", WithFormat(FormatText), func(t *testing.T, c config) {
			assert.Equal(t, FormatText, c.format)
		}},
		{"caller", WithCaller(true), func(t *testing.T, c config) {
			assert.True(t, c.caller)
		}},
		{"pretty off", WithPretty(false), func(t *testing.T, c config) {
			assert.False(t, c.pretty)
		}},
		{"output", WithOutput(&buf), func(t *testing.T, c config) {
			assert.Same(t, &buf, c.output)
		}},
		{"nil output discards", WithOutput(nil), func(t *testing.T, c config) {
			assert.Equal(t, io.Discard, c.output)
		}},
		{"nil option", nil, func(t *testing.T, c config) {
			assert.Equal(t, DefaultLevel, c.level)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, makeConfig(io.Discard, tt.opt))
		})
	}
}

func TestWithDefaults_Resets(t *testing.T) {
	c := apply(config{}, WithLevel(LevelTrace), WithCaller(true), WithPretty(false),
		WithDefaults(nil))

	assert.Equal(t, DefaultLevel, c.level)
	assert.Equal(t, DefaultFormat, c.format)
	assert.Equal(t, DefaultCaller, c.caller)
	assert.Equal(t, DefaultPretty, c.pretty)
	assert.Equal(t, io.Discard, c.output)
	assert.NotEmpty(t, c.formatTime(time.Now()))
}

func TestConfig_Handler(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		pretty bool
		want   any
	}{
		{"json", FormatJSON, false, &slog.JSONHandler{}},
		{"text", FormatText, false, &slog.TextHandler{}},
		{"pretty json", FormatJSON, true, &prettyJSONHandler{}},
		{"pretty text", FormatText, true, &prettyTextHandler{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := makeConfig(io.Discard, WithFormat(tt.format), WithPretty(tt.pretty))

			assert.IsType(t, tt.want, c.handler())
		})
	}

	assert.Equal(t, slog.DiscardHandler, config{}.handler(), "no output")
}

func TestConfig_FormatTime(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2026-03-14T15:09:26Z"},
		{"rfc3339 nano", "rfc3339-nano", "2026-03-14T15:09:26.535897932Z"},
		{"kitchen", "Kitchen", "3:09PM"},
		{"milli alias", "ms", "Mar 14 15:09:26.535"},
		{"custom keeps whitespace", "  2006-01-02", "  2026-03-14"},
		{"unknown name is a layout", "FLOW", "FLOW"},
		{"none", "none", ""},
		{"empty", "", ""},
		{"blank", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})

			assert.Equal(t, tt.want, c.formatTime(at))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{" TRACE ", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+2", Level(slog.LevelInfo + 2)},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat(" Text"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, DefaultFormat, ParseFormat("xml"))
}

func TestLevelsAndFormats(t *testing.T) {
	assert.Equal(t,
		[]string{"trace", "debug", "info", "warn", "error"},
		slices.Collect(Levels()))
	assert.Equal(t, []string{"json", "text"}, slices.Collect(Formats()))

	for name := range Levels() {
		assert.Equal(t, name, ParseLevel(name).String())
	}
}

func BenchmarkConfig_FormatTime(b *testing.B) {
	now := time.Now()

	for _, layout := range []string{"RFC3339", "RFC3339Nano", "none"} {
		b.Run(layout, func(b *testing.B) {
			c := WithTimeLayout(layout)(config{})

			for b.Loop() {
				_ = c.formatTime(now)
			}
		})
	}
}
