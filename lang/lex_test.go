package lang

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/equex/log"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}

	return out
}

func TestTokenize_Kinds(t *testing.T) {
	const (
		N = KindNumber
		O = KindOperator
		L = KindLeftParen
		R = KindRightParen
		F = KindFunction
		I = KindIdentifier
	)

	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"arithmetic", "2+3*4", []Kind{N, O, N, O, N}},
		{"function call", "sin(30)", []Kind{F, L, N, R}},
		{"identifiers", "x_1 + log10(y)", []Kind{I, O, F, L, I, R}},
		{"function prefix is identifier", "sinx", []Kind{I}},
		{"radian hyperbolic", "sinhr(1)", []Kind{F, L, N, R}},
		{"commas dropped", "a,b", []Kind{I, I}},
		{"stray symbols dropped", "a $ # b", []Kind{I, I}},
		{"identifier after digit dropped", "2x+1", []Kind{N, O, N}},
		{"trailing dot", "3.", []Kind{N}},
		{"incomplete exponent", "2e", []Kind{N}},
		{"all operators", "1+2-3*4/5^6", []Kind{N, O, N, O, N, O, N, O, N, O, N}},
		{"empty", "", []Kind{}},
		{"whitespace", " \t ", []Kind{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Tokenize(tt.input))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) kinds = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{"3.25", 3.25},
		{".5", 0.5},
		{"1.5e-3", 0.0015},
		{"2E+2", 200},
		{"3.", 3},
		{"2e", 2},
		{"007", 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) == 0 || tokens[0].Kind != KindNumber {
				t.Fatalf("Tokenize(%q) = %v, want a number first", tt.input, tokens)
			}

			if tokens[0].Num != tt.want {
				t.Errorf("Tokenize(%q) value = %v, want %v", tt.input, tokens[0].Num, tt.want)
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize("a + 10*(b)")

	want := []int{0, 2, 4, 6, 7, 8, 9}
	got := make([]int, len(tokens))

	for i, tok := range tokens {
		got[i] = tok.Pos
	}

	if !slices.Equal(got, want) {
		t.Errorf("positions = %v, want %v", got, want)
	}
}

func TestTokenize_Functions(t *testing.T) {
	for _, name := range FuncNames() {
		tokens := Tokenize(name + "(1)")
		if len(tokens) != 4 || tokens[0].Kind != KindFunction {
			t.Errorf("Tokenize(%s(1)) = %v, want function call", name, tokens)

			continue
		}

		if tokens[0].Func.String() != name {
			t.Errorf("function = %s, want %s", tokens[0].Func, name)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"x", true},
		{"_tmp", true},
		{"v0", true},
		{"0v", false},
		{"a-b", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsIdentifier(tt.name); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTokenizeCached(t *testing.T) {
	ClearCache()

	const expr = "a*(b+1)"

	first := tokenizeCached(t.Context(), testLogger(t), expr)
	second := tokenizeCached(t.Context(), testLogger(t), expr)

	if len(first) == 0 || &first[0] != &second[0] {
		t.Error("expected second lookup to reuse cached tokens")
	}

	ClearCache()

	third := tokenizeCached(t.Context(), testLogger(t), expr)
	if &first[0] == &third[0] {
		t.Error("expected ClearCache to drop cached tokens")
	}

	if !slices.Equal(kinds(first), kinds(third)) {
		t.Errorf("kinds differ after ClearCache: %v vs %v", kinds(first), kinds(third))
	}
}

func TestTokenizeCached_LogsDroppedIdentifier(t *testing.T) {
	ClearCache()

	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"),
		log.WithPretty(false),
	)

	tokens := tokenizeCached(t.Context(), logger, "2x+1")
	if got, want := kinds(tokens), []Kind{KindNumber, KindOperator, KindNumber}; !slices.Equal(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	out := buf.String()
	if !strings.Contains(out, "identifier after number dropped") ||
		!strings.Contains(out, "text=x") || !strings.Contains(out, "pos=1") {
		t.Errorf("dropped identifier not logged: %q", out)
	}
}
