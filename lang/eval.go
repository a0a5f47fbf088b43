package lang

import (
	"log/slog"
	"math"
	"strconv"
)

// Evaluate reduces a postfix sequence to a single value.
func Evaluate(postfix Postfix) (float64, error) {
	stack := make([]float64, 0, len(postfix)/2+1)

	for _, tok := range postfix {
		switch tok.Kind {
		case KindNumber:
			stack = append(stack, tok.Num)

		case KindOperator:
			if len(stack) < 2 {
				return 0, underflow(tok, 2, len(stack))
			}

			v2 := stack[len(stack)-1]
			v1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			r, err := binary(tok.Op, v1, v2)
			if err != nil {
				return 0, err
			}

			stack = append(stack, r)

		case KindFunction:
			if len(stack) < 1 {
				return 0, underflow(tok, 1, 0)
			}

			r, err := tok.Func.Apply(stack[len(stack)-1])
			if err != nil {
				return 0, err
			}

			stack[len(stack)-1] = r

		default:
			return 0, ErrMalformedExpression.Wrapf("unexpected %s %q", tok.Kind, tok.Text).
				With(slog.Int("pos", tok.Pos))
		}
	}

	if len(stack) != 1 {
		return 0, ErrMalformedExpression.Wrapf("%d values remain", len(stack)).
			With(
				slog.Int("depth", len(stack)),
				slog.String("postfix", postfix.String()),
			)
	}

	return stack[0], nil
}

func binary(op byte, v1, v2 float64) (float64, error) {
	switch op {
	case '+':
		return v1 + v2, nil

	case '-':
		return v1 - v2, nil

	case '*':
		return v1 * v2, nil

	case '/':
		return v1 / v2, nil

	case '^':
		r := math.Pow(v1, v2)
		if math.IsNaN(r) && !math.IsNaN(v1) && !math.IsNaN(v2) {
			return 0, ErrComplexResult.Wrapf("%s^%s", formatFloat(v1), formatFloat(v2)).
				With(
					slog.Float64("base", v1),
					slog.Float64("exponent", v2),
				)
		}

		return r, nil

	default:
		return 0, ErrMalformedExpression.Wrapf("unknown operator '%c'", op)
	}
}

func underflow(tok Token, need, have int) error {
	return ErrStackUnderflow.Wrapf("%q needs %d operands, have %d", tok.Lexeme(), need, have).
		With(
			slog.String("token", tok.Lexeme()),
			slog.Int("pos", tok.Pos),
		)
}

// formatFloat returns the shortest representation of v that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
