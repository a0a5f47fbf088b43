package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/equex/log"
)

// globalCache stores lexed token templates keyed by the xxh3 hash of the
// expression text. Entries are never mutated after the first scan.
var globalCache sync.Map

// entry holds the tokens scanned from one expression.
type entry struct {
	once   sync.Once
	source string
	tokens []Token
}

// tokenizeCached returns the tokens of expr, scanning it only on the first
// request. Callers must not modify the returned slice.
func tokenizeCached(ctx context.Context, logger log.Logger, expr string) []Token {
	hash := xxh3.HashString(expr)

	value, cacheHit := globalCache.LoadOrStore(hash, new(entry))

	e, _ := value.(*entry)

	e.once.Do(func() {
		e.source = expr
		e.tokens = tokenize(expr, func(text string, pos int) {
			logger.TraceContext(ctx, "identifier after number dropped",
				slog.String("text", text),
				slog.Int("pos", pos),
			)
		})
	})

	// Hash collision: scan without caching.
	if e.source != expr {
		cacheHit = false

		logger.TraceContext(ctx, "cache collision",
			slog.String("hash", strconv.FormatUint(hash, 16)),
		)

		return Tokenize(expr)
	}

	logger.TraceContext(ctx, "cache lookup",
		slog.String("hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", cacheHit),
		slog.Int("tokens", len(e.tokens)),
	)

	return e.tokens
}

// ClearCache removes all cached token templates.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
