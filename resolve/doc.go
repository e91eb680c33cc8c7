// Package resolve normalizes a [facade.HostType] into [ResolvedType], a
// closed algebraic shape with one variant per spec.md §3: primitive,
// literal, literal union, array, tuple, object, union, named reference,
// and unsupported. The variant family is expressed the way go/ast
// expresses Expr -- a sealed interface with an unexported marker method
// and one concrete struct per case -- rather than a class hierarchy, so
// no type outside this package can add a variant (spec.md §4.E). Go does
// not check type switches for exhaustiveness; a switch over the family
// needs its own default case.
package resolve
