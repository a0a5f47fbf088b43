package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/equex/lang"
	"github.com/ardnew/equex/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-execute-retry loop.
// It writes the exercise to a temp file, opens the user's editor and runs the
// result in a fresh executor. On error the user is prompted to re-edit;
// declining exits the program.
type editCommand struct {
	source  string
	opts    []lang.Option
	ctxFunc func() context.Context
	logger  log.Logger

	// Set when the edited exercise executed successfully.
	exec *lang.Executor
	text string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. An empty file cancels the edit.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "equex-repl-*.txt")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	f.Close()

	content := c.source

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		content = string(data)

		e := lang.NewExecutor(c.opts...)
		execErr := e.Execute(ctx, content)

		c.logger.TraceContext(ctx, "editor execute attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", execErr == nil),
		)

		if execErr == nil {
			c.exec, c.text = e, content

			return nil
		}

		fmt.Fprintf(c.stderr, "\nError: %s\n", execErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor launches $EDITOR, or vi, on the given file.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
