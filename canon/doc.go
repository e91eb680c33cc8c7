// Package canon implements the canonical encoder: the single point of
// determinism enforcement for the whole extraction pipeline (spec.md
// §4.B, §9). Every hash and every cache file is derived from the byte
// sequence [Encode] produces.
//
// The output is parseable as JSON, but under stricter-than-JSON
// determinism rules: object keys are sorted, there is no incidental
// whitespace, numbers are rendered in shortest exact form, and every
// ambiguous encoding (arbitrary precision integers, temporal values,
// binary buffers, undefined fields, unordered sets) is resolved by an
// explicit, overridable [Option] policy rather than left to chance.
//
// Types participate in canonical encoding either natively (bool, string,
// integers, floats, nil, []byte, map[string]V, slices) or by implementing
// [Marshaler], which [resolve.ResolvedType] and [ir.Node] both do so the
// encoder never needs a type switch over pipeline-specific types.
package canon
