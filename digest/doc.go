// Package digest computes the stable content hash every cache entry and
// every IR node is keyed by: SHA-256 over the [canon] package's canonical
// encoding of a value (spec.md §4.C). Hash never panics; encoder failures
// surface as diagnostics on the returned slice, exactly like [canon.Encode].
package digest
