// Package skerr provides error wrapping that records the call sites an error
// passed through. Errors created or wrapped here remain compatible with
// errors.Is and errors.As via Unwrap.
package skerr

import (
	"fmt"
	"runtime"
	"strings"
)

// StackTrace identifies a line of code that an error passed through.
type StackTrace struct {
	File string
	Line int
}

func (st StackTrace) String() string {
	return fmt.Sprintf("%s:%d", st.File, st.Line)
}

// ErrorWithContext wraps an underlying error with the call sites it passed
// through and an optional message added at wrap time.
type ErrorWithContext struct {
	Wrapped   error
	Message   string
	CallStack []StackTrace
}

// Error implements error.
func (e *ErrorWithContext) Error() string {
	var sb strings.Builder
	if e.Message != "" {
		sb.WriteString(e.Message)
		if e.Wrapped != nil {
			sb.WriteString(": ")
		}
	}
	if e.Wrapped != nil {
		sb.WriteString(e.Wrapped.Error())
	}
	if len(e.CallStack) > 0 {
		sb.WriteString(" At")
		for _, st := range e.CallStack {
			sb.WriteString(" ")
			sb.WriteString(st.String())
		}
	}
	return sb.String()
}

// Unwrap supports errors.Is and errors.As.
func (e *ErrorWithContext) Unwrap() error {
	return e.Wrapped
}

// callStack returns up to height frames, starting skip frames above the
// caller of callStack itself.
func callStack(height, skip int) []StackTrace {
	stack := make([]StackTrace, 0, height)
	for i := 0; i < height; i++ {
		_, file, line, ok := runtime.Caller(skip + i)
		if !ok {
			break
		}
		stack = append(stack, StackTrace{File: file[strings.LastIndexByte(file, '/')+1:], Line: line})
	}
	return stack
}

// Fmt creates a new error with a formatted message and the caller's location.
func Fmt(format string, args ...interface{}) error {
	return &ErrorWithContext{
		Message:   fmt.Sprintf(format, args...),
		CallStack: callStack(1, 2),
	}
}

// Wrap adds the caller's location to err. Returns nil if err is nil, so it
// is safe to wrap return values unconditionally.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &ErrorWithContext{
		Wrapped:   err,
		CallStack: callStack(1, 2),
	}
}

// Wrapf is like Wrap but also prepends a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ErrorWithContext{
		Wrapped:   err,
		Message:   fmt.Sprintf(format, args...),
		CallStack: callStack(1, 2),
	}
}

// Unwrap returns the innermost non-skerr error, for callers that need the
// original error value rather than errors.Is semantics.
func Unwrap(err error) error {
	for {
		wrapper, ok := err.(*ErrorWithContext)
		if !ok || wrapper.Wrapped == nil {
			return err
		}
		err = wrapper.Wrapped
	}
}
