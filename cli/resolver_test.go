package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolveYAML(t *testing.T) {
	const doc = `
log_level: debug
log-pretty: false
precision: 2
seed: 42
ratio: 0.5
path:
  - /tmp/a
  - /tmp/b
`

	r, err := resolveYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolveYAML() error: %v", err)
	}

	if err := r.Validate(nil); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"precision", "2"},
		{"seed", "42"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve(%s) error: %v", tt.flag, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "path"}})

	list, ok := got.([]any)
	if !ok || !slices.Equal(list, []any{"/tmp/a", "/tmp/b"}) {
		t.Errorf("Resolve(path) = %#v", got)
	}
}

func TestResolveYAML_Empty(t *testing.T) {
	r, err := resolveYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolveYAML(empty) error: %v", err)
	}

	if got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "x"}}); got != nil {
		t.Errorf("Resolve() on empty config = %v", got)
	}
}

func TestResolveYAML_Invalid(t *testing.T) {
	if _, err := resolveYAML(strings.NewReader("log_level: [unclosed")); err == nil {
		t.Error("resolveYAML() accepted invalid YAML")
	}
}
