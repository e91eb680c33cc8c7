// Package primitive defines the building blocks shared by every stage of
// the extraction pipeline: opaque symbol identifiers, source spans,
// diagnostics, error codes, and the [Result] value every fallible
// operation returns.
//
// No component in this module throws. [Result] is the sum-type substitute
// spec'd for the core: an operation either produced a value (optionally
// carrying non-fatal diagnostics) or failed outright (diagnostics only).
// Callers branch on [Result.IsErr] the same way they would match Ok/Err
// in a language with real tagged unions.
package primitive
