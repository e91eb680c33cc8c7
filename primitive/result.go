package primitive

// Result is the generic sum-type substitute every fallible core
// operation returns: either Ok with a value (plus optional non-fatal
// diagnostics), or Err with only diagnostics. No component panics or
// returns a bare error for pipeline-domain failures; Result is the
// single channel diagnostics travel through.
type Result[T any] struct {
	value       T
	diagnostics []Diagnostic
	isErr       bool
}

// Ok wraps a successful value, optionally carrying non-fatal diagnostics
// (warnings/info accumulated while producing it).
func Ok[T any](value T, diags ...Diagnostic) Result[T] {
	return Result[T]{value: value, diagnostics: diags}
}

// Err wraps a failure. At least one diagnostic should carry
// [CategoryError], though this is not enforced here -- the coordinator
// is the single point that decides escalation (spec.md §7).
func Err[T any](diags ...Diagnostic) Result[T] {
	return Result[T]{diagnostics: diags, isErr: true}
}

// IsErr reports whether this Result represents a failure.
func (r Result[T]) IsErr() bool {
	return r.isErr
}

// Value returns the wrapped value. It is the zero value of T when IsErr
// is true.
func (r Result[T]) Value() T {
	return r.value
}

// Diagnostics returns the diagnostics accumulated producing this Result.
func (r Result[T]) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Map transforms an Ok value, leaving Err results and diagnostics
// untouched.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.isErr {
		return Result[U]{diagnostics: r.diagnostics, isErr: true}
	}

	return Result[U]{value: f(r.value), diagnostics: r.diagnostics}
}
