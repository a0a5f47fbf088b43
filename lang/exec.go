package lang

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/readahead"

	"github.com/ardnew/equex/log"
)

// DefaultSentinel separates the declaration phase from the execution phase.
const DefaultSentinel = "---"

// Phases of an exercise. Lines after a second sentinel are ignored.
const (
	PhaseContent = iota
	PhaseExecution
	PhaseIgnored
)

const (
	identPattern  = `[A-Za-z_][A-Za-z0-9_]*`
	numberPattern = `[+-]?[0-9]*\.?[0-9]+(?:[eE][+-]?[0-9]+)?`
	// Names must start at a word boundary; RE2 has no lookbehind.
	namePrefix = `(?:^|[^0-9A-Za-z_])(` + identPattern + `)`
)

var (
	directPattern  = regexp.MustCompile(namePrefix + `=(` + numberPattern + `)`)
	rangePattern   = regexp.MustCompile(namePrefix + `=\[\s*(` + numberPattern + `)\s*;\s*(` + numberPattern + `)\s*\]`)
	unknownPattern = regexp.MustCompile(namePrefix + `=\?([A-Za-z0-9_/*^()]+)?`)
	assignPattern  = regexp.MustCompile(`^\s*(` + identPattern + `)\s*=\s*([0-9A-Za-z_.+\-*/^()\s]+?)\s*$`)
)

// Executor runs exercises line by line against its own variable store and
// unknown registry. An Executor is not safe for concurrent use.
type Executor struct {
	store    Store
	unknowns Unknowns
	rng      *rand.Rand
	logger   log.Logger
	sentinel string
	phase    int
	line     int
}

// Option configures an [Executor].
type Option func(*Executor)

// WithSeed seeds the random source used for range declarations, making runs
// reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Executor) {
		e.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand sets the random source used for range declarations.
func WithRand(r *rand.Rand) Option {
	return func(e *Executor) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithSentinel sets the line that advances the executor to its next phase.
// Surrounding whitespace on input lines is ignored when matching it.
func WithSentinel(sentinel string) Option {
	return func(e *Executor) {
		if s := strings.TrimSpace(sentinel); s != "" {
			e.sentinel = s
		}
	}
}

// NewExecutor returns an executor in the content phase with an empty store.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{sentinel: DefaultSentinel}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
	}

	return e
}

// Store returns the executor's variable store.
func (e *Executor) Store() *Store { return &e.store }

// Unknowns returns the executor's unknown registry.
func (e *Executor) Unknowns() *Unknowns { return &e.unknowns }

// Phase returns the current phase, one of [PhaseContent],
// [PhaseExecution] or [PhaseIgnored].
func (e *Executor) Phase() int { return min(e.phase, PhaseIgnored) }

// ExecuteReader reads all of r and executes it.
func (e *Executor) ExecuteReader(ctx context.Context, r io.Reader) error {
	// Wrap reader with async read-ahead so reading overlaps with setup.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	e.logger.TraceContext(ctx, "read input", slog.Int("source_bytes", len(data)))

	return e.Execute(ctx, string(data))
}

// Execute processes each line of text in order and stops at the first error.
func (e *Executor) Execute(ctx context.Context, text string) error {
	for line := range strings.Lines(text) {
		if err := context.Cause(ctx); err != nil {
			return err
		}

		if err := e.Line(ctx, line); err != nil {
			return err
		}
	}

	return nil
}

// Line processes a single line according to the current phase.
func (e *Executor) Line(ctx context.Context, line string) error {
	e.line++
	line = strings.TrimRight(line, "\r\n")

	if strings.TrimSpace(line) == e.sentinel {
		e.phase++

		e.logger.TraceContext(ctx, "phase",
			slog.Int("line", e.line),
			slog.Int("phase", e.Phase()),
		)

		return nil
	}

	switch e.phase {
	case PhaseContent:
		e.Declare(ctx, line)

		return nil

	case PhaseExecution:
		if err := e.Assign(ctx, line); err != nil {
			return WrapError(err).With(slog.Int("line", e.line))
		}

		return nil

	default:
		e.logger.DebugContext(ctx, "ignored",
			slog.Int("line", e.line),
			slog.String("text", line),
		)

		return nil
	}
}

// Declare applies every declaration embedded in a line of prose and returns
// how many it found. Direct values are applied first, then range samples,
// then unknowns.
func (e *Executor) Declare(ctx context.Context, line string) int {
	n := 0

	for _, m := range directPattern.FindAllStringSubmatch(line, -1) {
		v, _ := strconv.ParseFloat(m[2], 64)
		e.store.Set(m[1], v)
		n++

		e.logger.TraceContext(ctx, "declare value",
			slog.String("name", m[1]),
			slog.Float64("value", v),
		)
	}

	for _, m := range rangePattern.FindAllStringSubmatch(line, -1) {
		lo, _ := strconv.ParseFloat(m[2], 64)
		hi, _ := strconv.ParseFloat(m[3], 64)
		v := e.sample(lo, hi)
		e.store.Set(m[1], v)
		n++

		e.logger.TraceContext(ctx, "declare range",
			slog.String("name", m[1]),
			slog.Float64("low", lo),
			slog.Float64("high", hi),
			slog.Float64("value", v),
		)
	}

	for _, m := range unknownPattern.FindAllStringSubmatch(line, -1) {
		e.unknowns.Declare(m[1], m[2])
		n++

		e.logger.TraceContext(ctx, "declare unknown",
			slog.String("name", m[1]),
			slog.String("label", m[2]),
		)
	}

	return n
}

// sample draws a value uniformly from [lo, hi] rounded to two decimals.
func (e *Executor) sample(lo, hi float64) float64 {
	v := lo + e.rng.Float64()*(hi-lo)

	return math.Round(v*100) / 100
}

// Assign evaluates a "name = expression" line and stores the result.
// Blank lines are skipped.
func (e *Executor) Assign(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	m := assignPattern.FindStringSubmatch(line)
	if m == nil {
		return ErrFormat.Wrapf("expected name = expression: %q", line).
			With(slog.String("text", line))
	}

	v, err := e.Eval(ctx, m[2])
	if err != nil {
		return WrapError(err).With(slog.String("name", m[1]))
	}

	e.store.Set(m[1], v)

	e.logger.TraceContext(ctx, "assign",
		slog.String("name", m[1]),
		slog.Float64("value", v),
	)

	return nil
}

// Postfix converts expr against the current store.
func (e *Executor) Postfix(ctx context.Context, expr string) (Postfix, error) {
	return convertContext(ctx, e.logger, expr, &e.store)
}

// Eval converts and evaluates expr against the current store without
// modifying it.
func (e *Executor) Eval(ctx context.Context, expr string) (float64, error) {
	postfix, err := e.Postfix(ctx, expr)
	if err != nil {
		return 0, err
	}

	v, err := Evaluate(postfix)
	if err != nil {
		return 0, WrapError(err).With(slog.String("expr", expr))
	}

	return v, nil
}

// Report returns the value of every declared unknown in declaration order.
func (e *Executor) Report() ([]Result, error) {
	results := make([]Result, 0, e.unknowns.Len())

	for u := range e.unknowns.All() {
		v, ok := e.store.Get(u.Name)
		if !ok {
			return nil, ErrUndefinedVariable.Wrapf("%s", u.Name).
				With(slog.String("name", u.Name))
		}

		results = append(results, Result{Name: u.Name, Value: v, Label: u.Label})
	}

	return results, nil
}
