package testutil

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestRNG returns a rand.Rand with a fixed seed so generated maps
// come out the same on every run.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a logger that discards everything. Battle tests
// pass it wherever an engine or search asks for one.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// CaptureLogger returns a debug-level JSON logger together with the
// buffer it writes to, for asserting on emitted log lines.
func CaptureLogger() (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}

// AssertPanic fails the test unless fn panics.
func AssertPanic(t *testing.T, fn func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic, got none: %v", msgAndArgs)
		}
	}()
	fn()
}
