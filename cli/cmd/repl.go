package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/equex/cli/cmd/repl"
	"github.com/ardnew/equex/lang"
	"github.com/ardnew/equex/log"
)

// Repl starts an interactive shell over an executor.
type Repl struct {
	File    string `arg:"" help:"Exercise executed before the first prompt" name:"file" optional:""`
	Seed    uint64 `       help:"Seed for range declarations (0 for random)" default:"0"`
	History bool   `       help:"Persist input history in the cache directory" default:"true" negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var src io.Reader

	if r.File != "" {
		rc, err := openSource(ctx, r.File)
		if err != nil {
			return err
		}
		defer rc.Close()

		src = rc
	}

	var cacheDir string

	if ktx := kongContextFrom(ctx); r.History && ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	var opts []lang.Option
	if r.Seed != 0 {
		opts = append(opts, lang.WithSeed(r.Seed))
	}

	if err := repl.Run(ctx, src, cacheDir, log.Default(), opts...); err != nil {
		return lang.WrapError(err).With(slog.String("command", "repl"))
	}

	return nil
}
