package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/equex/lang"
	"github.com/ardnew/equex/log"
)

// DefaultSource is the exercise file read when none is given.
const DefaultSource = "zad.txt"

// Run executes an exercise file and prints the value of every unknown.
type Run struct {
	File      string            `arg:"" default:"${defaultSource}" help:"Exercise file or '-' for stdin"              name:"file" optional:""`
	Format    lang.ReportFormat `       default:"text"             help:"Report format (${enum})"                    enum:"${reportFormatEnum}" short:"o"`
	Precision int               `       default:"-1"               help:"Decimal places in the report (-1 for full)"`
	Seed      uint64            `       default:"0"                help:"Seed for range declarations (0 for random)"`
	Sentinel  string            `       default:"${sentinel}"      help:"Line separating the exercise phases"`

	out io.Writer `kong:"-"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := openSource(ctx, r.File)
	if err != nil {
		return err
	}
	defer src.Close()

	exec := lang.NewExecutor(r.options()...)

	if err := exec.ExecuteReader(ctx, src); err != nil {
		return lang.WrapError(err).With(slog.String("file", r.File))
	}

	results, err := exec.Report()
	if err != nil {
		return lang.WrapError(err).With(slog.String("file", r.File))
	}

	log.DebugContext(ctx, "exercise complete",
		slog.String("file", r.File),
		slog.Int("variables", exec.Store().Len()),
		slog.Int("unknowns", len(results)),
	)

	if err := lang.WriteReport(r.writer(), results, r.Format, r.Precision); err != nil {
		return ErrWriteReport.Wrap(err).With(slog.String("format", r.Format.String()))
	}

	return nil
}

func (r *Run) options() []lang.Option {
	opts := []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithSentinel(r.Sentinel),
	}

	if r.Seed != 0 {
		opts = append(opts, lang.WithSeed(r.Seed))
	}

	return opts
}

func (r *Run) writer() io.Writer {
	if r.out != nil {
		return r.out
	}

	return os.Stdout
}
