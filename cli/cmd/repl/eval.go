package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/equex/lang"
)

// evalLine runs one line of eval-mode input against e and returns the text
// to print. Lines carrying an unknown or range declaration are declared as
// exercise prose. "name = expr" assigns. Anything else is evaluated as an
// expression without changing the store.
func evalLine(ctx context.Context, e *lang.Executor, line string) (string, error) {
	if strings.Contains(line, "=?") || strings.Contains(line, "=[") {
		n := e.Declare(ctx, line)
		if n == 0 {
			return "", lang.ErrFormat.Wrapf("no declaration in %q", line)
		}

		return fmt.Sprintf("declared %d", n), nil
	}

	if name, _, ok := strings.Cut(line, "="); ok && lang.IsIdentifier(strings.TrimSpace(name)) {
		if err := e.Assign(ctx, line); err != nil {
			return "", err
		}

		name = strings.TrimSpace(name)
		v, _ := e.Store().Get(name)

		return name + " = " + lang.FormatValue(v, -1), nil
	}

	v, err := e.Eval(ctx, line)
	if err != nil {
		return "", err
	}

	return lang.FormatValue(v, -1), nil
}

// listVars renders every variable in assignment order. Unknowns are marked
// with their label.
func listVars(e *lang.Executor) string {
	if e.Store().Len() == 0 && e.Unknowns().Len() == 0 {
		return hintStyle.Render("  (no variables)")
	}

	var b strings.Builder

	for name, v := range e.Store().All() {
		fmt.Fprintf(&b, "  %s = %s", name, resultStyle.Render(lang.FormatValue(v, -1)))

		if label, ok := e.Unknowns().Label(name); ok {
			b.WriteString(hintStyle.Render("  ? " + label))
		}

		b.WriteByte('\n')
	}

	for u := range e.Unknowns().All() {
		if _, ok := e.Store().Get(u.Name); !ok {
			fmt.Fprintf(&b, "  %s %s\n", u.Name, hintStyle.Render("? "+u.Label+" (unset)"))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// report renders the exercise report in text form.
func report(e *lang.Executor) (string, error) {
	results, err := e.Report()
	if err != nil {
		return "", err
	}

	var b strings.Builder

	if err := lang.WriteReport(&b, results, lang.ReportText, -1); err != nil {
		return "", err
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
