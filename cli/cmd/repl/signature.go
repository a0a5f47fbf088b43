package repl

import (
	"github.com/ardnew/equex/lang"
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name   string
	fn     lang.Func
	inCall bool // cursor is inside the argument's parentheses
}

// detectFunctionCall reports the innermost built-in function whose
// parenthesized argument contains the cursor.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	depth := 0

	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++

			continue

		case '(':
			if depth > 0 {
				depth--

				continue
			}
		default:
			continue
		}

		// Unmatched '(' before the cursor; the preceding word names the call.
		word, _, _ := wordBounds(input[:i], i)
		if word == "" {
			// A plain group; keep looking for an enclosing call.
			continue
		}

		if f, ok := lang.LookupFunc(word); ok {
			return functionCall{name: word, fn: f, inCall: true}
		}
	}

	return functionCall{}
}

// renderSignatureHint renders the signature of a built-in function, for
// example "sin(x) · x in degrees".
func renderSignatureHint(call functionCall) string {
	hint := signatureNameStyle.Render(call.name) +
		signatureStyle.Render("(") +
		currentParamStyle.Render("x") +
		signatureStyle.Render(")")

	if unit := call.fn.Unit(); unit != "" {
		hint += signatureStyle.Render(" · x in " + unit)
	}

	return hint
}
