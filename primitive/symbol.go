package primitive

import "strings"

// SymbolID is an opaque, stable identifier derived from a declaration's
// fully-qualified path. It is created once at discovery and never mutated;
// it is the single primary key used by every per-symbol map downstream.
type SymbolID string

// NewSymbolID builds a [SymbolID] from a fully-qualified declaration path
// (typically "<import path>#<type name>"), normalizing path separators to
// forward slashes and stripping host-specific quoting (Go import paths
// never carry quotes, but this keeps the constructor symmetric with hosts
// that do).
func NewSymbolID(path string) SymbolID {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.Trim(path, `"`)

	return SymbolID(path)
}

// String returns the raw identifier string.
func (s SymbolID) String() string {
	return string(s)
}

// Span is an optional, purely diagnostic source location. It never
// influences hashing or caching and is 1-based in both line and column.
type Span struct {
	File        string `json:"file"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// NormalizeFile rewrites backslashes to forward slashes in File, matching
// the cross-platform span contract of spec.md §3.
func (s Span) NormalizeFile() Span {
	s.File = strings.ReplaceAll(s.File, "\\", "/")

	return s
}
