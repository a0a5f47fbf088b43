package lang

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ardnew/equex/log"
)

// testLogger returns a trace-level logger so tests exercise every log call.
func testLogger(t *testing.T) log.Logger {
	t.Helper()

	return log.Make(io.Discard,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatText),
	)
}

// approxEqual reports whether a and b agree within a relative tolerance
// of 1e-9.
func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}

	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}

	return math.Abs(a-b) <= 1e-9*max(1, math.Abs(a), math.Abs(b))
}

// errAttr returns the attribute key of an *Error in err's chain.
func errAttr(t *testing.T, err error, key string) any {
	t.Helper()

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not an *Error", err)
	}

	v, ok := e.Attr(key)
	if !ok {
		t.Fatalf("error %v has no attribute %q", err, key)
	}

	return v.Any()
}
