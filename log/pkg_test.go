package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func()
		level string
	}{
		{"TraceContext", func() { TraceContext(t.Context(), "pkg message") }, "TRACE"},
		{"Debug", func() { Debug("pkg message") }, "DEBUG"},
		{"DebugContext", func() { DebugContext(t.Context(), "pkg message") }, "DEBUG"},
		{"Info", func() { Info("pkg message") }, "INFO"},
		{"InfoContext", func() { InfoContext(t.Context(), "pkg message") }, "INFO"},
		{"Warn", func() { Warn("pkg message") }, "WARN"},
		{"WarnContext", func() { WarnContext(t.Context(), "pkg message") }, "WARN"},
		{"Error", func() { Error("pkg message") }, "ERROR"},
		{"ErrorContext", func() { ErrorContext(context.Background(), "pkg message") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()

			output := buf.String()
			if !strings.Contains(output, "pkg message") || !strings.Contains(output, `"level":"`+tt.level+`"`) {
				t.Errorf("unexpected output: %s", output)
			}
		})
	}
}

func TestPackage_Config(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf)

	Info("hidden")
	Config(WithLevel(LevelInfo), WithPretty(false))
	With(slog.String("run", "1")).Info("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("message below default level was written")
	}

	if !strings.Contains(output, "shown") || !strings.Contains(output, "run=1") {
		t.Errorf("unexpected output: %q", output)
	}

	if Default().Level() != LevelInfo {
		t.Errorf("Default().Level() = %v, want info", Default().Level())
	}
}
