// Package eval walks a syntax tree and records the instructions produced by
// calls to native library functions.
//
// An [Evaluator] owns a root [runtime.Environment], a diagnostic bag, and the
// compiled [emit.Unit]. Evaluation never stops at the first error: problems
// are reported as diagnostics and the offending expression evaluates to null,
// so a single run reports everything it can find.
package eval
