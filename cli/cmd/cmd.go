package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/ardnew/equex/log"
	"github.com/ardnew/equex/pkg"
)

// PathEnv is the environment variable holding extra exercise directories.
var PathEnv = strings.ToUpper(pkg.Name) + "_PATH"

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

type (
	contextKey    struct{}
	searchPathKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithSearchPath returns a new context.Context carrying the directories
// searched for exercise files. The given directories come first, followed by
// the entries of [PathEnv]. Entries that are not directories are dropped.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, searchPath(os.Getenv(PathEnv), dirs...))
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// searchPath joins prefix and the list-separated env value with mung,
// keeping only existing directories in the order given.
func searchPath(env string, prefix ...string) []string {
	// mung prepends each prefix item in turn.
	prefix = slices.Clone(prefix)
	slices.Reverse(prefix)

	joined := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()

	if joined == "" {
		return nil
	}

	return filepath.SplitList(joined)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// resolveSource locates name. Absolute names and names found relative to the
// working directory are used as given; otherwise each search directory is
// tried in order.
func resolveSource(ctx context.Context, name string) (string, error) {
	if name == stdinSource {
		return name, nil
	}

	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) {
		return name, nil
	}

	for _, dir := range searchPathFrom(ctx) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			log.DebugContext(ctx, "found in search path",
				slog.String("file", name),
				slog.String("path", path),
			)

			return path, nil
		}
	}

	return "", ErrOpenSource.
		With(slog.String("file", name)).
		Wrap(os.ErrNotExist)
}

// openSource resolves and opens name for reading. The name "-" reads stdin.
// The returned closer is always safe to call.
func openSource(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := resolveSource(ctx, name)
	if err != nil {
		return nil, err
	}

	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.
			With(slog.String("file", path)).
			Wrap(err)
	}

	return file, nil
}
