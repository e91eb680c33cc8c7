package tags

import (
	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

// ParsedAnnotations is the result of parsing one declaration's raw
// docblock tags.
type ParsedAnnotations struct {
	Annotations []Annotation
	// ResolvedTags holds the names (from raw, in raw's order) that are
	// both recognized and present in the caller's resolve set, for the
	// pipeline coordinator to fold into its global tagIndex.
	ResolvedTags []string
}

// Parse implements the five-step pipeline of spec.md §4.F over decl's
// raw docblock tags: unknown-tag and duplicate-tag tags are skipped
// with a warning, payload requirements and shapes are enforced, and
// recognized tags are built into [Annotation] values.
func Parse(decl facade.Declaration, raw []facade.RawTag, resolveSet map[string]bool) (ParsedAnnotations, []primitive.Diagnostic) {
	var (
		out   ParsedAnnotations
		diags []primitive.Diagnostic
		seen  = map[string]bool{}
	)

	for _, rt := range raw {
		grammar, known := grammarTable[rt.Name]
		if !known {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeTagUnknown, primitive.CategoryWarning,
				"unknown tag %s on %s", rt.Name, decl.Name(),
			))

			continue
		}

		if seen[rt.Name] && !grammar.repeatable {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeTagDuplicate, primitive.CategoryWarning,
				"duplicate tag %s on %s, first wins", rt.Name, decl.Name(),
			))

			continue
		}

		seen[rt.Name] = true

		if grammar.payloadRequired && rt.Text == "" {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeTagPayloadMissing, primitive.CategoryError,
				"tag %s on %s requires a payload", rt.Name, decl.Name(),
			))

			continue
		}

		if grammar.regex != nil && rt.Text != "" && !grammar.regex.MatchString(rt.Text) {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeTagPayloadInvalid, primitive.CategoryError,
				"tag %s on %s has an invalid payload: %s", rt.Name, decl.Name(), rt.Text,
			))

			continue
		}

		ann, buildDiags := grammar.build(rt.Text)
		diags = append(diags, buildDiags...)
		out.Annotations = append(out.Annotations, ann)

		if resolveSet[rt.Name] {
			out.ResolvedTags = append(out.ResolvedTags, rt.Name)
		}
	}

	return out, diags
}

// DefaultResolveSet is the configurable "resolve set" spec.md §4.F
// defaults to: just "entity".
func DefaultResolveSet() map[string]bool {
	return map[string]bool{"entity": true}
}
