// Package facade defines the narrow capability surface the core
// extraction pipeline consumes from a host compiler (spec.md §4.D). This
// package contains only interfaces and plain data -- it knows nothing
// about Go's own type system. [github.com/flizzeri/schemaforge/goast]
// is the one concrete implementation this module ships, built against
// go/types; any other host language's type checker could implement this
// same interface without the rest of the pipeline changing.
package facade
