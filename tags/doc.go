// Package tags parses raw docblock tags (spec.md §3, "@entity",
// "@pk", "@index", ...) into a closed [Annotation] variant family,
// driven by a per-tag grammar table the way magicschema's bitnami
// annotator drives "## @param" parsing from a declarative rule set.
package tags
