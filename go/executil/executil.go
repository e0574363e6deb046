// Package executil provides a mostly transparent way to make os/exec
// testable. The helpers here replace a call to an arbitrary executable (and
// arguments) with a call to the underlying test binary, with a flag to run
// exactly one test. That test can then be a fake implementation of the
// binary, do assertions on the arguments, etc.
//
// See the clip package tests for example usage.
package executil

import (
	"context"
	"os"
	"os/exec"
	"sync"
)

const (
	// OverrideEnvironmentVariable is set when a test invoked via
	// CommandContext should behave as a fake of an executable. The value it
	// is set to is arbitrary and must not be relied upon.
	OverrideEnvironmentVariable = "RESULTCHECK_OVERRIDE_TEST"

	// overrideKey is the context.Value key holding a *fakeTestTracker.
	overrideKey = contextKey("resultcheck_override_cmd")
)

type contextKey string

// WithFakeTests returns a context.Context loaded with the given test names.
// When this Context is passed into CommandContext, faked *exec.Cmd objects
// are returned, consuming one test name per call, in order. Panics if the
// provided context already has fake tests associated with it.
func WithFakeTests(parent context.Context, fakeTestNames ...string) context.Context {
	if _, ok := parent.Value(overrideKey).(*fakeTestTracker); ok {
		panic("parent context already has fake tests associated with it")
	}
	return context.WithValue(parent, overrideKey, &fakeTestTracker{
		fakeTestNames: fakeTestNames,
	})
}

// FakeTestsContext is a convenient wrapper around WithFakeTests using
// context.Background().
func FakeTestsContext(fakeTestNames ...string) context.Context {
	return WithFakeTests(context.Background(), fakeTestNames...)
}

// fakeTestTracker keeps track of which test should be faked next. Stored by
// pointer in the context so the index can advance without re-deriving the
// context.
type fakeTestTracker struct {
	index         int
	fakeTestNames []string
	mutex         sync.Mutex
}

// CommandContext looks for the special value on the provided Context (see
// WithFakeTests). If it exists, the next fake test name is consumed and a
// faked *exec.Cmd is returned; it panics when the fake tests run out.
// Without the special value it is a passthrough to exec.CommandContext.
func CommandContext(ctx context.Context, cmd string, args ...string) *exec.Cmd {
	override, ok := ctx.Value(overrideKey).(*fakeTestTracker)
	if !ok {
		return exec.CommandContext(ctx, cmd, args...)
	}
	override.mutex.Lock()
	defer override.mutex.Unlock()
	// We are going to shell out to the current test executable and tell it
	// to run the next faked test.
	if override.index >= len(override.fakeTestNames) {
		panic("Not enough fake tests provided")
	}
	fakeTest := override.fakeTestNames[override.index]
	override.index++
	argsWithOverride := append([]string{"-test.run=" + fakeTest, "--", cmd}, args...)
	fakedCmd := exec.CommandContext(ctx, os.Args[0], argsWithOverride...)
	fakedCmd.Env = []string{OverrideEnvironmentVariable + "=1"}
	return fakedCmd
}

// FakeCommandsReturned returns how many times CommandContext was called
// with the given context, i.e. how many fake commands were handed out.
func FakeCommandsReturned(ctx context.Context) int {
	override, ok := ctx.Value(overrideKey).(*fakeTestTracker)
	if !ok {
		panic("A Context was passed in that was not produced by the executil package.")
	}
	override.mutex.Lock()
	defer override.mutex.Unlock()
	return override.index
}

// OriginalArgs returns the original arguments passed into a faked command.
// Concretely, it strips the first 3 elements of os.Args (the test binary,
// the test to run, and "--").
func OriginalArgs() []string {
	return os.Args[3:]
}

// IsCallingFakeCommand returns whether the current process is a test
// process running a mocked-out CLI invocation. Call it at the beginning of
// each Test_FakeExe_... test and return early if false.
func IsCallingFakeCommand() bool {
	return os.Getenv(OverrideEnvironmentVariable) != ""
}
