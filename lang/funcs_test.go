package lang

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestFunc_Apply(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"abs", -2.5, 2.5},
		{"exp", 0, 1},
		{"ln", math.E, 1},
		{"log2", 8, 3},
		{"log10", 1000, 3},
		{"sin", 90, 1},
		{"sinr", math.Pi / 2, 1},
		{"cos", 180, -1},
		{"tg", 45, 1},
		{"tan", 45, 1},
		{"ctg", 45, 1},
		{"ctgr", math.Pi / 4, 1},
		{"sinhr", 0, 0},
		{"coshr", 0, 1},
		{"tanhr", 1, math.Tanh(1)},
		{"tgh", 180, math.Tanh(math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mustFunc(t, tt.name).Apply(tt.x)
			if err != nil {
				t.Fatalf("%s(%v) error: %v", tt.name, tt.x, err)
			}

			if !approxEqual(got, tt.want) && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.x, got, tt.want)
			}
		})
	}
}

func TestFunc_Apply_Domain(t *testing.T) {
	tests := []struct {
		name string
		x    float64
	}{
		{"ln", -1},
		{"ln", 0},
		{"log10", -5},
		{"ctgr", 0},
		{"ctghr", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustFunc(t, tt.name).Apply(tt.x)
			if !errors.Is(err, ErrDomain) {
				t.Fatalf("%s(%v) error = %v, want domain error", tt.name, tt.x, err)
			}

			if got := errAttr(t, err, "func"); got != tt.name {
				t.Errorf("func attr = %v, want %s", got, tt.name)
			}
		})
	}

	// Infinite input may give an infinite result.
	if v, err := mustFunc(t, "exp").Apply(math.Inf(1)); err != nil || !math.IsInf(v, 1) {
		t.Errorf("exp(+Inf) = %v, %v", v, err)
	}
}

func TestFunc_Unit(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sin", "degrees"},
		{"sinr", "radians"},
		{"ctgh", "degrees"},
		{"ctghr", "radians"},
		{"ln", ""},
	}

	for _, tt := range tests {
		if got := mustFunc(t, tt.name).Unit(); got != tt.want {
			t.Errorf("%s.Unit() = %q, want %q", tt.name, got, tt.want)
		}
	}

	if got := Func(255).Unit(); got != "" {
		t.Errorf("invalid Func Unit() = %q", got)
	}
}

func TestFuncNames(t *testing.T) {
	names := FuncNames()

	if !slices.IsSorted(names) {
		t.Errorf("FuncNames() not sorted: %v", names)
	}

	// 5 plain functions plus 10 angle functions and their r variants.
	if len(names) != 25 {
		t.Errorf("len(FuncNames()) = %d, want 25", len(names))
	}

	for _, name := range names {
		f, ok := LookupFunc(name)
		if !ok || f.String() != name {
			t.Errorf("LookupFunc(%q) = %v, %v", name, f, ok)
		}
	}

	if _, ok := LookupFunc("sqrt"); ok {
		t.Error("LookupFunc(sqrt) found")
	}

	if _, err := Func(255).Apply(1); !errors.Is(err, ErrMalformedExpression) {
		t.Errorf("invalid Func Apply() error = %v", err)
	}
}
