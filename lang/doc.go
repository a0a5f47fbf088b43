// Package lang interprets equation exercises: plain-text files that declare
// known values, name the unknowns to report, and list the assignments that
// compute them.
//
// # Exercise format
//
// An exercise has two phases separated by a sentinel line ("---"):
//
//	A car with v=20 travels for t=[1;3] seconds. Find the distance s=?m.
//	---
//	s = v*t
//
// Lines before the sentinel are prose. Every embedded declaration is
// applied, in this order:
//
//   - name=number stores a value (v=20, k=-1.5e3)
//   - name=[low;high] stores a uniform sample rounded to two decimals
//   - name=?label declares an unknown to report, with an optional label
//
// Lines after the sentinel must have the form "name = expression". Each
// expression is evaluated against the values known at that point and the
// result is stored under name. Lines after a second sentinel are ignored.
//
// # Expressions
//
// Expressions combine numbers, variables, parentheses, the binary operators
// + - * / ^ and the unary functions
//
//	abs exp ln log2 log10
//	sin cos tan tg ctg
//
// Functions of the second row accept an h suffix (hyperbolic) and an r
// suffix (radian argument); without r their argument is in degrees.
// All operators are left-associative, so 2^3^2 is 64. A leading minus
// negates the operand that follows it: -2^2 is 4. When that operand is a
// function call the minus applies to the argument, so -cos(60) is cos(-60).
//
// Evaluation runs in three steps, each exposed on its own: [Tokenize],
// [Convert] (variable substitution and infix-to-postfix conversion) and
// [Evaluate]. [Executor] drives them for whole exercises.
package lang
