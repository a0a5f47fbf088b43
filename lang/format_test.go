package lang

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestResult_Text(t *testing.T) {
	a, b := 0.1, 0.2

	tests := []struct {
		name      string
		result    Result
		precision int
		want      string
	}{
		{"labeled", Result{Name: "x", Value: 5, Label: "result"}, -1, "x -> 5 result"},
		{"unlabeled", Result{Name: "h", Value: 5}, -1, "h -> 5"},
		{"shortest form", Result{Name: "v", Value: a + b}, -1, "v -> 0.30000000000000004"},
		{"fixed precision", Result{Name: "p", Value: math.Pi, Label: "rad"}, 2, "p -> 3.14 rad"},
		{"zero precision", Result{Name: "n", Value: 2.5}, 0, "n -> 2"},
		{"infinity", Result{Name: "q", Value: math.Inf(1)}, -1, "q -> +Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Text(tt.precision); got != tt.want {
				t.Errorf("Text(%d) = %q, want %q", tt.precision, got, tt.want)
			}
		})
	}
}

func TestWriteReport_Text(t *testing.T) {
	results := []Result{
		{Name: "x", Value: 5, Label: "result"},
		{Name: "h", Value: 1.5},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, results, ReportText, -1); err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), "x -> 5 result\nh -> 1.5\n"; got != want {
		t.Errorf("text report = %q, want %q", got, want)
	}
}

func TestWriteReport_JSON(t *testing.T) {
	results := []Result{
		{Name: "x", Value: 1.23456, Label: "m"},
		{Name: "y", Value: math.Inf(1)},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, results, ReportJSON, 2); err != nil {
		t.Fatal(err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}

	if got[0]["name"] != "x" || got[0]["value"] != 1.23 || got[0]["label"] != "m" {
		t.Errorf("entry 0 = %v", got[0])
	}

	if got[1]["value"] != "+Inf" || got[1]["label"] != "" {
		t.Errorf("entry 1 = %v", got[1])
	}
}

func TestWriteReport_YAML(t *testing.T) {
	results := []Result{
		{Name: "x", Value: 5, Label: "result"},
		{Name: "h", Value: 0.25},
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, results, ReportYAML, -1); err != nil {
		t.Fatal(err)
	}

	var got []Result
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML %q: %v", buf.String(), err)
	}

	if len(got) != 2 || got[0] != results[0] || got[1] != results[1] {
		t.Errorf("round trip = %v, want %v", got, results)
	}
}

func TestParseReportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ReportFormat
		wantErr bool
	}{
		{"text", ReportText, false},
		{"JSON", ReportJSON, false},
		{" yaml ", ReportYAML, false},
		{"xml", ReportText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReportFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReportFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseReportFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	var f ReportFormat
	if err := f.UnmarshalText([]byte("yaml")); err != nil || f != ReportYAML {
		t.Errorf("UnmarshalText(yaml) = %v, %v", f, err)
	}

	if text, _ := ReportJSON.MarshalText(); string(text) != "json" {
		t.Errorf("MarshalText = %q, want json", text)
	}
}
