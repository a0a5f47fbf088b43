package lang

import (
	"strconv"
	"strings"
)

// Kind classifies a [Token].
type Kind int

const (
	// KindNumber is a numeric literal or a substituted variable value.
	KindNumber Kind = iota

	// KindOperator is one of the binary operators + - * / ^.
	KindOperator

	// KindLeftParen is an opening parenthesis.
	KindLeftParen

	// KindRightParen is a closing parenthesis.
	KindRightParen

	// KindFunction is the name of a unary function.
	KindFunction

	// KindIdentifier is a variable name awaiting substitution. Identifiers
	// never reach the postfix converter.
	KindIdentifier
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"

	case KindOperator:
		return "Operator"

	case KindLeftParen:
		return "LeftParen"

	case KindRightParen:
		return "RightParen"

	case KindFunction:
		return "Function"

	case KindIdentifier:
		return "Identifier"

	default:
		return "Unknown"
	}
}

// Operators contains the bytes recognized as binary operators.
const Operators = "+-*/^"

// Token is a classified lexeme. Exactly one of Num, Op and Func is
// meaningful, depending on Kind.
type Token struct {
	Kind Kind
	Text string  // Source lexeme (identifier name for substituted values)
	Pos  int     // Byte offset in the expression source
	Num  float64 // KindNumber
	Op   byte    // KindOperator
	Func Func    // KindFunction
}

// numberToken returns a number token for a value that has no source lexeme
// of its own.
func numberToken(v float64, text string, pos int) Token {
	return Token{Kind: KindNumber, Text: text, Pos: pos, Num: v}
}

// Lexeme returns the token as it appears in a postfix listing.
func (t Token) Lexeme() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)

	case KindOperator:
		return string(t.Op)

	case KindFunction:
		return t.Func.String()

	default:
		return t.Text
	}
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return t.Kind.String() + ":" + t.Lexeme() + "@" + strconv.Itoa(t.Pos)
}

// priority returns the binding strength of a binary operator.
// Parentheses and unknown bytes have priority 0.
func priority(op byte) int {
	switch op {
	case '+', '-':
		return 1

	case '*', '/':
		return 2

	case '^':
		return 3

	default:
		return 0
	}
}

// Postfix is a token sequence in reverse-Polish order.
type Postfix []Token

// String returns the space-separated lexemes of the sequence.
func (p Postfix) String() string {
	var sb strings.Builder

	for i, t := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(t.Lexeme())
	}

	return sb.String()
}
