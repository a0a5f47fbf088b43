package cli

import (
	"os"
	"testing"

	"github.com/ardnew/equex/log"
)

func TestLogConfig_Scan(t *testing.T) {
	defer log.Config(log.WithDefaults(os.Stderr))

	tests := []struct {
		name       string
		args       []string
		wantLevel  logLevel
		wantFormat logFormat
		wantCaller bool
		wantPretty bool
	}{
		{
			name:       "separate values",
			args:       []string{"run", "--log-level", "debug", "--log-format", "json", "zad.txt"},
			wantLevel:  "debug",
			wantFormat: "json",
			wantPretty: true,
		},
		{
			name:       "assigned values",
			args:       []string{"--log-level=trace", "--log-caller", "--no-log-pretty"},
			wantLevel:  "trace",
			wantCaller: true,
		},
		{
			name:       "boolean assignment",
			args:       []string{"--log-caller=false", "--log-pretty=true", "--no-log-caller=false"},
			wantCaller: true,
			wantPretty: true,
		},
		{
			name:       "after terminator",
			args:       []string{"eval", "--", "--log-level=error"},
			wantPretty: true,
		},
		{
			name:       "missing value",
			args:       []string{"--log-level", "--log-caller"},
			wantCaller: true,
			wantPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.wantLevel || f.Format != tt.wantFormat ||
				f.Caller != tt.wantCaller || f.Pretty != tt.wantPretty {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}

func TestLogConfig_Start(t *testing.T) {
	defer log.Config(log.WithDefaults(os.Stderr))

	f := logConfig{Level: "info", Format: "json", TimeLayout: "none", Pretty: false}
	f.start(t.Context())

	if got := log.Default().Level(); got != log.LevelInfo {
		t.Errorf("level = %v, want info", got)
	}

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("format = %v, want json", got)
	}
}
