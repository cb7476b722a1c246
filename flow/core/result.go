package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrPanic carries a panic recovered from a user-supplied function, such as
// an expansion function, so that it can travel through a stream as an error.
// Stack holds the capture point with treeflow's own frames removed.
type ErrPanic struct {
	Value any
	Stack string
}

func (e ErrPanic) Error() string {
	if e.Stack == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
}

// NewPanicError builds an ErrPanic from a value returned by recover.
// It must be called from the deferred function that recovered.
func NewPanicError(recovered any) ErrPanic {
	// skip runtime.Callers, captureStack, NewPanicError and the deferred func
	return ErrPanic{Value: recovered, Stack: cleanStack(captureStack(4))}
}

func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

// internalFramePrefix marks frames that belong to the library itself.
const internalFramePrefix = "github.com/lguimbarda/treeflow/flow/"

// cleanStack drops library frames (function line and its file:line) and keeps
// everything else in order.
func cleanStack(stack string) string {
	var kept []string
	dropping := false
	for _, line := range strings.Split(stack, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "\t") {
			dropping = strings.Contains(line, internalFramePrefix)
		}
		if dropping {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Result is one item travelling through a Stream. It is either
//   - a value (IsValue),
//   - an error (IsError), which in a recursive traversal ends the traversal,
//   - or a sentinel (IsSentinel), a control signal such as EndOfStream.
type Result[OUT any] struct {
	value      OUT
	err        error
	isSentinel bool
}

// NewResult creates a Result with every field given explicitly.
func NewResult[OUT any](value OUT, err error, isSentinel bool) Result[OUT] {
	return Result[OUT]{value: value, err: err, isSentinel: isSentinel}
}

// Ok wraps a value.
func Ok[OUT any](value OUT) Result[OUT] {
	return Result[OUT]{value: value}
}

// Err wraps an error.
func Err[OUT any](err error) Result[OUT] {
	return Result[OUT]{err: err}
}

// Sentinel creates a control signal with an optional descriptive error.
func Sentinel[OUT any](err error) Result[OUT] {
	return Result[OUT]{err: err, isSentinel: true}
}

// ErrEndOfStream is the sentinel error of a normally terminated stream.
var ErrEndOfStream = errors.New("end of stream")

// EndOfStream creates the sentinel that marks a stream as exhausted.
func EndOfStream[OUT any]() Result[OUT] {
	return Sentinel[OUT](ErrEndOfStream)
}

func (r Result[OUT]) IsValue() bool { return r.err == nil && !r.isSentinel }

func (r Result[OUT]) IsError() bool { return r.err != nil && !r.isSentinel }

func (r Result[OUT]) IsSentinel() bool { return r.isSentinel }

// IsEndOfStream reports whether r is the EndOfStream sentinel.
func (r Result[OUT]) IsEndOfStream() bool {
	return r.isSentinel && errors.Is(r.err, ErrEndOfStream)
}

// Value returns the wrapped value, or the zero value for errors and sentinels.
func (r Result[OUT]) Value() OUT { return r.value }

// Error returns the error of an error Result and nil otherwise.
func (r Result[OUT]) Error() error {
	if r.isSentinel {
		return nil
	}
	return r.err
}

// Sentinel returns the error carried by a sentinel and nil otherwise.
func (r Result[OUT]) Sentinel() error {
	if !r.isSentinel {
		return nil
	}
	return r.err
}

// Unwrap returns the value and the raw error regardless of kind.
func (r Result[OUT]) Unwrap() (OUT, error) {
	return r.value, r.err
}
