// Copyright 2017 The go-ethereum Authors, adapted.

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin, log15-API-compatible wrapper over log/slog:
// Trace/Debug/Info/Warn/Error/Crit methods over alternating key-value
// pairs, pluggable handlers (terminal, logfmt, JSON), and a settable
// package-level default logger. store, bcast, and cmd/ldb all
// log through this package rather than slog directly, so the output
// format stays uniform and swappable in one place.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Level aliases slog.Level with a Trace level one step below Debug,
// matching the original log15/go-ethereum level set.
const (
	LevelCrit  = slog.Level(12)
	LevelError = slog.LevelError
	LevelWarn  = slog.LevelWarn
	LevelInfo  = slog.LevelInfo
	LevelDebug = slog.LevelDebug
	LevelTrace = slog.Level(-8)
)

// Logger is the handle every package in this module logs through.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
	With(ctx ...any) Logger
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger wraps handler into a Logger.
func NewLogger(handler slog.Handler) Logger {
	return &logger{inner: slog.New(handler)}
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...any)  { l.write(LevelCrit, msg, ctx) }

func (l *logger) With(ctx ...any) Logger {
	return &logger{inner: l.inner.With(ctx...)}
}

func (l *logger) Handler() slog.Handler { return l.inner.Handler() }

var root = NewLogger(NewTerminalHandler(os.Stderr, false))

// SetDefault installs l as the package-level default logger used by the
// top-level Trace/Debug/... functions.
func SetDefault(l Logger) { root = l }

// Root returns the current package-level default logger.
func Root() Logger { return root }

func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { root.Crit(msg, ctx...) }
