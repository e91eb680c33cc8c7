package validate

import (
	"fmt"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/resolve"
	"github.com/flizzeri/schemaforge/tags"
)

// Validate checks anns against t per the applicability table of
// spec.md §4.G, accumulating every violation before returning.
func Validate(t resolve.ResolvedType, anns []tags.Annotation) []primitive.Diagnostic {
	var diags []primitive.Diagnostic

	for _, a := range anns {
		switch v := a.(type) {
		case tags.Entity, tags.RenameFrom, tags.Check, tags.Version, tags.Description:
			// Unrestricted.

		case tags.PK, tags.Unique, tags.Default, tags.SQLType, tags.Decimal:
			if !isScalar(t) {
				diags = append(diags, incompatible(a, t, "requires a scalar type"))
			}

		case tags.Index:
			diags = append(diags, validateIndex(v, t)...)

		case tags.FK:
			if !isScalar(t) {
				diags = append(diags, incompatible(a, t, "requires a scalar type"))
			}

		case tags.Min, tags.Max, tags.Int:
			if !isNumeric(t) {
				diags = append(diags, incompatible(a, t, "requires a numeric primitive or literal"))
			}

		case tags.MinLength, tags.MaxLength, tags.Pattern, tags.Format, tags.Email, tags.UUID, tags.URL:
			if !isStringLike(t) {
				diags = append(diags, incompatible(a, t, "requires a string-like type or an array"))
			}

		case tags.Validator, tags.Transform:
			diags = append(diags, incompatible(a, t, "not currently supported"))

		default:
			diags = append(diags, incompatible(a, t, "unrecognized annotation"))
		}
	}

	return diags
}

func validateIndex(idx tags.Index, t resolve.ResolvedType) []primitive.Diagnostic {
	obj, ok := t.(resolve.Object)
	if !ok {
		return []primitive.Diagnostic{incompatible(idx, t, "requires an object type")}
	}

	members := make(map[string]bool, len(obj.Properties))
	for _, p := range obj.Properties {
		members[p.Name] = true
	}

	var diags []primitive.Diagnostic

	for _, field := range idx.Fields {
		if !members[field] {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeTagFieldNotFound, primitive.CategoryError,
				"index field %s is not a member of the annotated type", field,
			))
		}
	}

	return diags
}

func isScalar(t resolve.ResolvedType) bool {
	switch t.(type) {
	case resolve.Primitive, resolve.Literal, resolve.LiteralUnion:
		return true
	default:
		return false
	}
}

func isNumeric(t resolve.ResolvedType) bool {
	switch v := t.(type) {
	case resolve.Primitive:
		return v.Kind == facade.PrimitiveNumber || v.Kind == facade.PrimitiveBigInt
	case resolve.Literal:
		return v.Kind == facade.LiteralNumber || v.Kind == facade.LiteralBigInt
	default:
		return false
	}
}

func isStringLike(t resolve.ResolvedType) bool {
	switch v := t.(type) {
	case resolve.Primitive:
		return v.Kind == facade.PrimitiveString
	case resolve.Literal:
		return v.Kind == facade.LiteralString
	case resolve.LiteralUnion:
		for _, m := range v.Members {
			if m.Kind != facade.LiteralString {
				return false
			}
		}

		return len(v.Members) > 0
	case resolve.Array:
		return true
	default:
		return false
	}
}

func incompatible(a tags.Annotation, t resolve.ResolvedType, reason string) primitive.Diagnostic {
	msg := fmt.Sprintf("%T %s (got %T)", a, reason, t)

	return primitive.NewDiagnostic(primitive.CodeTagIncompatibleType, primitive.CategoryError, "%s", msg)
}
