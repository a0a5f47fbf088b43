package lang

import (
	"errors"
	"strconv"
	"strings"
)

// Tokenize splits an expression into classified tokens in a single
// left-to-right scan.
//
// Whitespace, commas and any other unrecognized bytes are dropped. An
// identifier run that immediately follows a digit (the "x" in "2x") is
// dropped as well. Tokenize only classifies: structural problems are
// reported later by [Convert] and [Evaluate].
func Tokenize(expr string) []Token {
	return tokenize(expr, nil)
}

// tokenize implements [Tokenize]. If dropped is not nil it receives each
// identifier run discarded after a number, with its offset.
func tokenize(expr string, dropped func(text string, pos int)) []Token {
	tokens := make([]Token, 0, len(expr)/2+1)

	for i := 0; i < len(expr); {
		c := expr[i]

		switch {
		case isDigit(c) || c == '.':
			end := scanNumber(expr, i)
			if end == i {
				i++ // lone '.'

				continue
			}

			tokens = append(tokens, numberToken(parseNumber(expr[i:end]), expr[i:end], i))

			i = end
			if i < len(expr) && isIdentStart(expr[i]) {
				end := scanIdent(expr, i)
				if dropped != nil {
					dropped(expr[i:end], i)
				}

				i = end
			}

		case isIdentStart(c):
			end := scanIdent(expr, i)
			name := expr[i:end]

			if f, ok := LookupFunc(name); ok {
				tokens = append(tokens, Token{Kind: KindFunction, Text: name, Pos: i, Func: f})
			} else {
				tokens = append(tokens, Token{Kind: KindIdentifier, Text: name, Pos: i})
			}

			i = end

		case strings.IndexByte(Operators, c) >= 0:
			tokens = append(tokens, Token{Kind: KindOperator, Text: expr[i : i+1], Pos: i, Op: c})
			i++

		case c == '(':
			tokens = append(tokens, Token{Kind: KindLeftParen, Text: "(", Pos: i})
			i++

		case c == ')':
			tokens = append(tokens, Token{Kind: KindRightParen, Text: ")", Pos: i})
			i++

		default:
			i++
		}
	}

	return tokens
}

// scanNumber returns the end offset of the numeric literal starting at i,
// or i if there is none. Literals have the form
//
//	[0-9]* \.? [0-9]+ ([eE][+-]?[0-9]+)?
//
// A trailing '.' or an incomplete exponent is not part of the literal.
func scanNumber(s string, i int) int {
	j := skipDigits(s, i)

	switch {
	case j < len(s)-1 && s[j] == '.' && isDigit(s[j+1]):
		j = skipDigits(s, j+1)

	case j == i:
		return i
	}

	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}

		if k < len(s) && isDigit(s[k]) {
			j = skipDigits(s, k)
		}
	}

	return j
}

// parseNumber converts a literal accepted by scanNumber. Literals beyond
// the float64 range become ±Inf or ±0.
func parseNumber(lit string) float64 {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}

	return v
}

func scanIdent(s string, i int) int {
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}

	return i
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}

	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// IsIdentifier reports whether name is a valid variable name.
func IsIdentifier(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}

	return scanIdent(name, 0) == len(name)
}
