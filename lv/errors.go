package lv

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// LogicError reports a programming error such as an out-of-range tuple
// index or an invariant violation caught in a debug build. Unlike the
// other error kinds it is not meant to be handled: callers should treat
// it as fatal and let it surface with its captured source location.
type LogicError struct {
	msg   string
	file  string
	line  int
	stack error
}

// NewLogicError constructs a LogicError capturing the caller's source
// location, mirroring the original's source_location-stamped asserts.
func NewLogicError(format string, args ...any) *LogicError {
	_, file, line, _ := runtime.Caller(1)
	return &LogicError{
		msg:   fmt.Sprintf(format, args...),
		file:  file,
		line:  line,
		stack: errors.New(fmt.Sprintf(format, args...)),
	}
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("%s:%d: logic error: %s", e.file, e.line, e.msg)
}

// Unwrap exposes the underlying stack-carrying error for errors.Is/As.
func (e *LogicError) Unwrap() error { return e.stack }

// NotFoundError reports that a non-blocking query matched nothing.
type NotFoundError struct {
	Template fmt.Stringer
}

func (e *NotFoundError) Error() string {
	if e.Template == nil {
		return "ldb: no matching tuple"
	}
	return fmt.Sprintf("ldb: no tuple matches %s", e.Template)
}

// ErrNotFound is the sentinel for the NotFound error kind. It is not a
// fatal condition. The store's non-blocking queries (Inp/Rdp) report a
// miss with a false result and do not return this error.
var ErrNotFound = errors.New("ldb: not found")

// ReplicationError wraps a failure surfaced by a bcast.Awaiter. The store
// treats the originating mutation as local-only; it does not retry.
type ReplicationError struct {
	Cause error
}

func (e *ReplicationError) Error() string {
	return errors.Wrap(e.Cause, "ldb: replication failed").Error()
}

func (e *ReplicationError) Unwrap() error { return e.Cause }

// InvalidWireError reports a malformed tuple on the wire. The replicator
// is expected to discard the offending message rather than crash.
type InvalidWireError struct {
	Reason string
}

func (e *InvalidWireError) Error() string {
	return fmt.Sprintf("ldb: invalid wire encoding: %s", e.Reason)
}

// ErrTypeMismatch is the sentinel for the TypeMismatch error kind. Matching
// does not return it: a typed wildcard that disagrees with a dynamic type
// yields MatchIncomparable (see match.go), which non-blocking queries turn
// into an empty result and blocking queries into a wait cycle.
var ErrTypeMismatch = errors.New("ldb: type mismatch")
