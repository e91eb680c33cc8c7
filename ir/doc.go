// Package ir lowers a [resolve.ResolvedType] plus its validated
// annotations into the IR shape spec.md §4.H and §3 define: the same
// variant set as ResolvedType, but with symbol/span/annotation
// metadata attached only at the node's root, and per-property
// optional/readonly/annotation bookkeeping threaded through nested
// object members.
package ir
