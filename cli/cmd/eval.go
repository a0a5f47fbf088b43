package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ardnew/equex/lang"
	"github.com/ardnew/equex/log"
)

// Eval converts and evaluates a single expression.
type Eval struct {
	Expr      string   `arg:""    help:"Expression to evaluate"                           name:"expr"`
	Var       []string `          help:"Variable binding name=value (repeatable)"         short:"v"     placeholder:"NAME=VALUE"`
	File      string   `          help:"Exercise whose variables are preloaded"           short:"f"`
	Postfix   bool     `          help:"Print the postfix form before the value"          short:"p"`
	Precision int      `          help:"Decimal places in the value (-1 for full)"        default:"-1"`

	out io.Writer `kong:"-"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exec := lang.NewExecutor(lang.WithLogger(log.Default()))

	if e.File != "" {
		src, err := openSource(ctx, e.File)
		if err != nil {
			return err
		}
		defer src.Close()

		if err := exec.ExecuteReader(ctx, src); err != nil {
			return lang.WrapError(err).With(slog.String("file", e.File))
		}
	}

	if err := bindVars(exec.Store(), e.Var); err != nil {
		return err
	}

	w := e.writer()

	if e.Postfix {
		postfix, err := exec.Postfix(ctx, e.Expr)
		if err != nil {
			return lang.WrapError(err).With(slog.String("command", "eval"))
		}

		fmt.Fprintln(w, postfix)
	}

	v, err := exec.Eval(ctx, e.Expr)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	fmt.Fprintln(w, lang.FormatValue(v, e.Precision))

	return nil
}

// bindVars parses each "name=value" binding into store.
func bindVars(store *lang.Store, vars []string) error {
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)

		if !ok || !lang.IsIdentifier(name) {
			return ErrVariable.With(slog.String("var", kv))
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return ErrVariable.With(slog.String("var", kv)).Wrap(err)
		}

		store.Set(name, v)
	}

	return nil
}

func (e *Eval) writer() io.Writer {
	if e.out != nil {
		return e.out
	}

	return os.Stdout
}
