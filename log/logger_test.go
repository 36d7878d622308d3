package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestTerminalHandlerWithAttrs(t *testing.T) {
	out := new(bytes.Buffer)
	var level slog.LevelVar
	level.Set(LevelTrace)
	handler := NewTerminalHandlerWithLevel(out, &level, false).WithAttrs([]slog.Attr{slog.String("baz", "bat")})
	logger := NewLogger(handler)
	logger.Trace("a message", "foo", "bar")

	have := out.String()
	if !strings.Contains(have, "a message") {
		t.Fatalf("expected message in output, got %q", have)
	}
	if !strings.Contains(have, "baz=bat") || !strings.Contains(have, "foo=bar") {
		t.Fatalf("expected both attrs in output, got %q", have)
	}
}

func TestTerminalHandlerLevelGating(t *testing.T) {
	out := new(bytes.Buffer)
	var level slog.LevelVar
	level.Set(LevelInfo)
	logger := NewLogger(NewTerminalHandlerWithLevel(out, &level, false))

	logger.Debug("should not appear")
	if out.Len() != 0 {
		t.Fatalf("expected no output for Debug below LevelInfo, got %q", out.String())
	}

	logger.Info("should appear")
	if !strings.Contains(out.String(), "should appear") {
		t.Fatalf("expected Info output, got %q", out.String())
	}
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	handler := JSONHandler(out)
	logger := slog.New(handler)
	logger.Debug("hi there")
	if out.Len() == 0 {
		t.Error("expected non-empty debug log output from default JSON Handler")
	}

	out.Reset()

	var level slog.LevelVar
	level.Set(LevelInfo)

	handler = JSONHandlerWithLevel(out, &level)
	logger = slog.New(handler)
	logger.Debug("hi there")
	if out.Len() != 0 {
		t.Errorf("expected empty debug log output, but got: %v", out.String())
	}
}

func TestTerminalHandlerColorizesLevelWhenEnabled(t *testing.T) {
	out := new(bytes.Buffer)
	var level slog.LevelVar
	level.Set(LevelInfo)
	logger := NewLogger(NewTerminalHandlerWithLevel(out, &level, true))
	logger.Info("colorized")

	have := out.String()
	if !strings.Contains(have, "\x1b[32mINFO\x1b[0m") {
		t.Fatalf("expected ANSI-colorized INFO tag, got %q", have)
	}
}

func TestIsTerminalFalseForBuffer(t *testing.T) {
	if IsTerminal(new(bytes.Buffer)) {
		t.Fatal("expected a non-*os.File writer to never report as a terminal")
	}
}

func TestLoggerOutputCarriesErrValue(t *testing.T) {
	out := new(bytes.Buffer)
	var level slog.LevelVar
	level.Set(LevelInfo)
	NewLogger(NewTerminalHandlerWithLevel(out, &level, false)).Info("message",
		"foo", int16(123),
		"err", errors.New("oh nooes it's crap"))

	have := out.String()
	if !strings.Contains(have, "foo=123") {
		t.Errorf("expected foo=123 in output, got %q", have)
	}
	if !strings.Contains(have, "oh nooes it's crap") {
		t.Errorf("expected wrapped error text in output, got %q", have)
	}
}
