package lang

import (
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Func identifies one of the built-in unary functions.
type Func uint8

// funcSpec describes how a built-in function is applied.
type funcSpec struct {
	name  string
	apply func(float64) float64
	// angle functions take degrees unless radians is set.
	angle   bool
	radians bool
}

var (
	funcTable []funcSpec
	funcIndex map[string]Func
)

func init() {
	plain := []struct {
		name  string
		apply func(float64) float64
	}{
		{"abs", math.Abs},
		{"exp", math.Exp},
		{"ln", math.Log},
		{"log2", math.Log2},
		{"log10", math.Log10},
	}

	// tg is the common short name for tan; ctg is the cotangent.
	angle := []struct {
		name  string
		apply func(float64) float64
	}{
		{"sin", math.Sin},
		{"cos", math.Cos},
		{"tan", math.Tan},
		{"tg", math.Tan},
		{"ctg", func(x float64) float64 { return 1 / math.Tan(x) }},
		{"sinh", math.Sinh},
		{"cosh", math.Cosh},
		{"tanh", math.Tanh},
		{"tgh", math.Tanh},
		{"ctgh", func(x float64) float64 { return 1 / math.Tanh(x) }},
	}

	funcIndex = make(map[string]Func, len(plain)+2*len(angle))

	add := func(s funcSpec) {
		funcIndex[s.name] = Func(len(funcTable))
		funcTable = append(funcTable, s)
	}

	for _, p := range plain {
		add(funcSpec{name: p.name, apply: p.apply})
	}

	for _, a := range angle {
		add(funcSpec{name: a.name, apply: a.apply, angle: true})
		add(funcSpec{name: a.name + "r", apply: a.apply, angle: true, radians: true})
	}
}

// LookupFunc returns the built-in function with the given name.
func LookupFunc(name string) (Func, bool) {
	f, ok := funcIndex[name]

	return f, ok
}

// FuncNames returns the names of all built-in functions in sorted order.
func FuncNames() []string {
	return slices.Sorted(maps.Keys(funcIndex))
}

// String returns the function name.
func (f Func) String() string {
	if int(f) >= len(funcTable) {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}

	return funcTable[f].name
}

// Apply evaluates the function at x. Angle functions interpret x in degrees
// unless their name carries the r suffix.
func (f Func) Apply(x float64) (float64, error) {
	if int(f) >= len(funcTable) {
		return 0, ErrMalformedExpression.Wrapf("unknown function %s", f)
	}

	spec := funcTable[f]

	arg := x
	if spec.angle && !spec.radians {
		arg = x * math.Pi / 180
	}

	r := spec.apply(arg)

	if math.IsNaN(r) || (math.IsInf(r, 0) && !math.IsInf(x, 0)) {
		return 0, ErrDomain.Wrapf("%s(%s)", spec.name, formatFloat(x)).
			With(
				slog.String("func", spec.name),
				slog.Float64("arg", x),
			)
	}

	return r, nil
}

// Unit returns the angle unit of the function argument, "degrees" or
// "radians", or the empty string for functions not taking an angle.
func (f Func) Unit() string {
	if int(f) >= len(funcTable) || !funcTable[f].angle {
		return ""
	}

	if funcTable[f].radians {
		return "radians"
	}

	return "degrees"
}
