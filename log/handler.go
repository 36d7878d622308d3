// Copyright 2017 The go-ethereum Authors, adapted.

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether out is a real terminal (and thus a
// reasonable candidate for ANSI colorization) rather than a redirected
// file or pipe — the same check cmd/ldb uses to decide useColor.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const termTimeFormat = "01-02|15:04:05.000"

func writeTimeTermFormat(buf *bytes.Buffer, t time.Time) {
	buf.Write(t.AppendFormat(nil, termTimeFormat))
}

func levelString(l slog.Level) string {
	switch {
	case l < LevelDebug:
		return "TRACE"
	case l < LevelInfo:
		return "DEBUG"
	case l < LevelWarn:
		return "INFO"
	case l < LevelError:
		return "WARN"
	case l < LevelCrit:
		return "ERROR"
	default:
		return "CRIT"
	}
}

// levelColor maps a level name to its ANSI color code, a trimmed-down
// version of the original's full 256-color table (no comma-grouped
// numeric highlighting, no per-key coloring — just the level tag).
func levelColor(name string) string {
	switch name {
	case "TRACE", "DEBUG":
		return "36" // cyan
	case "INFO":
		return "32" // green
	case "WARN":
		return "33" // yellow
	case "ERROR", "CRIT":
		return "31" // red
	default:
		return "37"
	}
}

// terminalHandler renders records as a single human-readable line:
// "LEVEL [timestamp] message key=value ...", optionally ANSI-colorizing
// the level tag when useColor is set (see IsTerminal for the usual way
// a caller decides that).
type terminalHandler struct {
	mu       sync.Mutex
	out      io.Writer
	level    slog.Leveler
	attrs    []slog.Attr
	useColor bool
}

// NewTerminalHandler returns a terminal handler at LevelInfo.
func NewTerminalHandler(out io.Writer, useColor bool) slog.Handler {
	var lv slog.LevelVar
	lv.Set(LevelInfo)
	return NewTerminalHandlerWithLevel(out, &lv, useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler gated at level.
func NewTerminalHandlerWithLevel(out io.Writer, level slog.Leveler, useColor bool) slog.Handler {
	return &terminalHandler{out: out, level: level, useColor: useColor}
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	lvl := levelString(r.Level)
	if h.useColor {
		fmt.Fprintf(&buf, "\x1b[%sm%s\x1b[0m", levelColor(lvl), lvl)
	} else {
		buf.WriteString(lvl)
	}
	buf.WriteString(" [")
	writeTimeTermFormat(&buf, r.Time)
	buf.WriteString("] ")
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&buf, " %s=%v", a.Key, a.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&buf, " %s=%v", a.Key, a.Value.Any())
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &cp
}

func (h *terminalHandler) WithGroup(name string) slog.Handler {
	return h // groups aren't meaningful for this flat line format
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelString(lvl))
		}
	}
	return a
}

// JSONHandler returns a handler emitting one JSON object per record at
// LevelDebug and above.
func JSONHandler(out io.Writer) slog.Handler {
	var lv slog.LevelVar
	lv.Set(LevelDebug)
	return JSONHandlerWithLevel(out, &lv)
}

// JSONHandlerWithLevel returns a JSON handler gated at level.
func JSONHandlerWithLevel(out io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel})
}

// LogfmtHandler returns a handler emitting logfmt-style "key=value"
// lines at LevelDebug and above.
func LogfmtHandler(out io.Writer) slog.Handler {
	var lv slog.LevelVar
	lv.Set(LevelDebug)
	return slog.NewTextHandler(out, &slog.HandlerOptions{Level: &lv, ReplaceAttr: replaceLevel})
}
