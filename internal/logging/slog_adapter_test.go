// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// --- Test: NewSlogHandlerWithLogger ---

func TestNewSlogHandlerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
	slogger.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected 'test message' in output: %s", buf.String())
	}
}

// --- Test: SlogHandler.Enabled ---

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{name: "debug logger enables debug", zerologLevel: zerolog.DebugLevel, slogLevel: slog.LevelDebug, want: true},
		{name: "info logger disables debug", zerologLevel: zerolog.InfoLevel, slogLevel: slog.LevelDebug, want: false},
		{name: "info logger enables warn", zerologLevel: zerolog.InfoLevel, slogLevel: slog.LevelWarn, want: true},
		{name: "warn logger disables info", zerologLevel: zerolog.WarnLevel, slogLevel: slog.LevelInfo, want: false},
		{name: "error logger enables error", zerologLevel: zerolog.ErrorLevel, slogLevel: slog.LevelError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(tt.zerologLevel))
			if got := handler.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Test: SlogHandler.Handle ---

func TestSlogHandler_Handle(t *testing.T) {
	// The global level gates every logger, so lower it for the debug case.
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	tests := []struct {
		level     slog.Level
		wantLevel string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantLevel, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewSlogHandlerWithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

			record := slog.NewRecord(time.Now(), tt.level, "service restarted", 0)
			record.AddAttrs(slog.String("service", "catalog-reload"), slog.Int("attempt", 2))
			if err := handler.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			out := buf.String()
			for _, want := range []string{
				`"level":"` + tt.wantLevel + `"`,
				`"message":"service restarted"`,
				`"service":"catalog-reload"`,
				`"attempt":2`,
			} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %s: %s", want, out)
				}
			}
		})
	}
}

// --- Test: SlogHandler.WithAttrs / WithGroup ---

func TestSlogHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewSlogHandlerWithLogger(zerolog.New(&buf))
	child := base.WithAttrs([]slog.Attr{slog.String("supervisor", "vidrec")})

	slog.New(child).Info("child")
	if !strings.Contains(buf.String(), `"supervisor":"vidrec"`) {
		t.Errorf("expected pre-configured attr in output: %s", buf.String())
	}

	buf.Reset()
	slog.New(base).Info("parent")
	if strings.Contains(buf.String(), "supervisor") {
		t.Errorf("WithAttrs mutated the parent handler: %s", buf.String())
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(zerolog.New(&buf))

	if got := handler.WithGroup(""); got != handler {
		t.Error("WithGroup(\"\") should return the same handler")
	}

	slog.New(handler.WithGroup("outer").WithGroup("inner")).Info("grouped", "key", "v")
	if !strings.Contains(buf.String(), `"outer.inner.key":"v"`) {
		t.Errorf("expected group-prefixed key in output: %s", buf.String())
	}
}

// --- Test: addAttr ---

func TestAddAttr_AllTypes(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{name: "string", attr: slog.String("s", "x"), want: `"s":"x"`},
		{name: "int64", attr: slog.Int64("i", -4), want: `"i":-4`},
		{name: "uint64", attr: slog.Uint64("u", 7), want: `"u":7`},
		{name: "float64", attr: slog.Float64("f", 0.5), want: `"f":0.5`},
		{name: "bool", attr: slog.Bool("b", true), want: `"b":true`},
		{name: "duration", attr: slog.Duration("d", time.Second), want: `"d":1000`},
		{name: "time", attr: slog.Time("t", ts), want: `"t":"2026-01-02T03:04:05Z"`},
		{name: "error", attr: slog.Any("err", errors.New("bad")), want: `"err":"bad"`},
		{name: "any", attr: slog.Any("m", map[string]int{"k": 1}), want: `"m":{"k":1}`},
		{name: "group", attr: slog.Group("g", slog.Int("n", 1)), want: `"g.n":1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := zerolog.New(&buf)
			addAttr(logger.Info(), tt.attr, nil).Msg("")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %s missing %s", buf.String(), tt.want)
			}
		})
	}
}

// --- Test: slogToZerologLevel ---

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelInfo + 2, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// --- Test: NewSlogLogger ---

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	NewSlogLogger().Warn("through global", "count", 3)

	if !strings.Contains(buf.String(), `"count":3`) {
		t.Errorf("expected slog output through global logger: %s", buf.String())
	}
}
