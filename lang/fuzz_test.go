package lang

import (
	"errors"
	"testing"
)

// FuzzConvert checks that conversion and evaluation never panic and only
// fail with package errors.
func FuzzConvert(f *testing.F) {
	f.Add("2+3*4")
	f.Add("-(3+4)")
	f.Add("sin(cos(x))^2 + y")
	f.Add("((1)")
	f.Add("1.5e-3*-x")
	f.Add("2x + 3.")
	f.Add(")(")
	f.Add("ln(-1)")
	f.Add("--5")

	var store Store

	store.Set("x", -2)
	store.Set("y", 0.5)

	f.Fuzz(func(t *testing.T, input string) {
		postfix, err := Convert(input, &store)
		if err != nil {
			var e *Error
			if !errors.As(err, &e) {
				t.Errorf("Convert(%q) returned foreign error %T: %v", input, err, err)
			}

			return
		}

		for _, tok := range postfix {
			switch tok.Kind {
			case KindIdentifier, KindLeftParen, KindRightParen:
				t.Errorf("Convert(%q) left %s in postfix", input, tok)
			}
		}

		if _, err := Evaluate(postfix); err != nil {
			var e *Error
			if !errors.As(err, &e) {
				t.Errorf("Evaluate(%q) returned foreign error %T: %v", input, err, err)
			}
		}
	})
}

// FuzzTokenize checks that token positions are increasing and in range.
func FuzzTokenize(f *testing.F) {
	f.Add("a + 10*(b)")
	f.Add(".5.5e+e-")
	f.Add("log10log2")

	f.Fuzz(func(t *testing.T, input string) {
		last := -1

		for _, tok := range Tokenize(input) {
			if tok.Pos <= last || tok.Pos >= len(input) {
				t.Fatalf("Tokenize(%q): bad position %d after %d", input, tok.Pos, last)
			}

			last = tok.Pos
		}
	})
}
