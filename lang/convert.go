package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/equex/log"
)

// Convert substitutes stored variable values into expr and converts the
// result from infix to postfix order.
func Convert(expr string, store *Store) (Postfix, error) {
	return convertContext(context.Background(), log.Logger{}, expr, store)
}

func convertContext(
	ctx context.Context,
	logger log.Logger,
	expr string,
	store *Store,
) (Postfix, error) {
	tokens, err := substitute(tokenizeCached(ctx, logger, expr), store)
	if err != nil {
		return nil, err
	}

	postfix, err := convert(tokens)
	if err != nil {
		return nil, WrapError(err).With(slog.String("expr", expr))
	}

	logger.TraceContext(ctx, "convert",
		slog.String("expr", expr),
		slog.String("postfix", postfix.String()),
	)

	return postfix, nil
}

// substitute returns a copy of tokens with every identifier replaced by a
// number token holding its stored value.
func substitute(tokens []Token, store *Store) ([]Token, error) {
	out := make([]Token, len(tokens))

	for i, tok := range tokens {
		if tok.Kind == KindIdentifier {
			v, ok := store.Get(tok.Text)
			if !ok {
				return nil, ErrUndefinedVariable.Wrapf("%s", tok.Text).With(
					slog.String("name", tok.Text),
					slog.Int("pos", tok.Pos),
				)
			}

			tok = numberToken(v, tok.Text, tok.Pos)
		}

		out[i] = tok
	}

	return out, nil
}

// pending is a unary operation waiting for its operand to be complete.
type pending struct {
	depth int
	tok   Token
}

// converter holds shunting-yard state for one expression.
type converter struct {
	out     Postfix
	ops     []Token
	pending []pending
	depth   int
	// begin is set where a value is expected: at the start, after '(' and
	// after a binary operator.
	begin bool
}

// convert reorders substituted infix tokens into postfix.
//
// A leading '-' in a subexpression emits 0 and registers a pending binary
// '-' at the current depth. Functions are registered the same way. Pending
// operations are emitted, in registration order, once the operand at their
// depth is complete: after a number at that depth, or after the ')' that
// returns to it.
func convert(tokens []Token) (Postfix, error) {
	c := converter{
		out:   make(Postfix, 0, len(tokens)+1),
		begin: true,
	}

	for _, tok := range tokens {
		var err error

		switch tok.Kind {
		case KindNumber:
			c.out = append(c.out, tok)
			c.begin = false
			c.flush()

		case KindLeftParen:
			c.ops = append(c.ops, tok)
			c.depth++
			c.begin = true

		case KindRightParen:
			err = c.closeParen(tok)

		case KindOperator:
			err = c.operator(tok)

		case KindFunction:
			c.pending = append(c.pending, pending{depth: c.depth, tok: tok})

		default:
			err = ErrUndefinedVariable.Wrapf("%s", tok.Text).With(
				slog.String("name", tok.Text),
				slog.Int("pos", tok.Pos),
			)
		}

		if err != nil {
			return nil, err
		}
	}

	for len(c.ops) > 0 {
		top := c.pop()
		if top.Kind == KindLeftParen {
			return nil, ErrUnmatchedParen.Wrapf("unclosed '(' at %d", top.Pos).
				With(slog.Int("pos", top.Pos))
		}

		c.out = append(c.out, top)
	}

	if len(c.pending) > 0 {
		return nil, dangling(c.pending[0].tok)
	}

	return c.out, nil
}

func (c *converter) operator(tok Token) error {
	if c.begin {
		switch tok.Op {
		case '-':
			c.out = append(c.out, numberToken(0, "0", tok.Pos))
			c.pending = append(c.pending, pending{depth: c.depth, tok: tok})

		case '+':

		default:
			return ErrUnexpectedOperator.Wrapf("'%c' at %d", tok.Op, tok.Pos).With(
				slog.String("op", string(tok.Op)),
				slog.Int("pos", tok.Pos),
			)
		}

		return nil
	}

	p := priority(tok.Op)

	for len(c.ops) > 0 {
		top := c.ops[len(c.ops)-1]
		if top.Kind != KindOperator || priority(top.Op) < p {
			break
		}

		c.out = append(c.out, c.pop())
	}

	c.ops = append(c.ops, tok)
	c.begin = true

	return nil
}

func (c *converter) closeParen(tok Token) error {
	for len(c.ops) > 0 && c.ops[len(c.ops)-1].Kind != KindLeftParen {
		c.out = append(c.out, c.pop())
	}

	if len(c.ops) == 0 {
		return ErrUnmatchedParen.Wrapf("unexpected ')' at %d", tok.Pos).
			With(slog.Int("pos", tok.Pos))
	}

	// Anything still pending inside the group never received its operand.
	for _, p := range c.pending {
		if p.depth == c.depth {
			return dangling(p.tok)
		}
	}

	c.pop()
	c.depth--
	c.begin = false
	c.flush()

	return nil
}

// flush emits the pending operations registered at the current depth.
func (c *converter) flush() {
	keep := c.pending[:0]

	for _, p := range c.pending {
		if p.depth == c.depth {
			c.out = append(c.out, p.tok)
		} else {
			keep = append(keep, p)
		}
	}

	c.pending = keep
}

func (c *converter) pop() Token {
	top := c.ops[len(c.ops)-1]
	c.ops = c.ops[:len(c.ops)-1]

	return top
}

// dangling reports a unary operation that has no operand.
func dangling(tok Token) error {
	if tok.Kind == KindFunction {
		return ErrMalformedExpression.Wrapf("%s at %d has no argument", tok.Text, tok.Pos).
			With(
				slog.String("func", tok.Text),
				slog.Int("pos", tok.Pos),
			)
	}

	return ErrUnexpectedOperator.Wrapf("'%c' at %d has no operand", tok.Op, tok.Pos).
		With(
			slog.String("op", string(tok.Op)),
			slog.Int("pos", tok.Pos),
		)
}
