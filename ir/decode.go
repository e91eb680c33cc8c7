package ir

import (
	"fmt"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

// FromCanonValue rebuilds a [Node] tree from the generic map/slice shape
// [Node.CanonValue] produces -- the inverse needed to adopt a cache hit
// (spec.md §4.J step 6b) without re-running the resolver or lowering.
// The returned node always carries a nil Metadata; the caller restores
// it from the symbol being processed, mirroring [Lower]'s own
// root-only-metadata rule.
func FromCanonValue(v any) (Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("ir: canon value is not an object: %T", v)
	}

	kind, _ := m["kind"].(string)

	switch kind {
	case "primitive":
		return Primitive{Kind: facade.PrimitiveKind(str(m["primitiveKind"]))}, nil

	case "literal":
		return Literal{Kind: facade.LiteralKind(str(m["literalKind"])), Value: m["value"]}, nil

	case "literalUnion":
		members, err := decodeLiteralSlice(m["members"])
		if err != nil {
			return nil, err
		}

		return LiteralUnion{Members: members}, nil

	case "array":
		elem, err := FromCanonValue(m["element"])
		if err != nil {
			return nil, err
		}

		return Array{Element: elem}, nil

	case "tuple":
		elems, err := decodeNodeSlice(m["elements"])
		if err != nil {
			return nil, err
		}

		return Tuple{Elements: elems}, nil

	case "object":
		return decodeObject(m)

	case "union":
		return decodeUnion(m)

	case "ref":
		return Ref{Target: primitive.SymbolID(str(m["target"]))}, nil

	case "unsupported":
		reason, _ := m["reason"].(string)
		originalText, _ := m["originalText"].(string)

		return Unsupported{Reason: reason, OriginalText: originalText}, nil

	default:
		return nil, fmt.Errorf("ir: unrecognized canon kind %q", kind)
	}
}

func str(v any) string {
	s, _ := v.(string)

	return s
}

func decodeLiteralSlice(v any) ([]Literal, error) {
	raw, _ := v.([]any)
	out := make([]Literal, 0, len(raw))

	for _, item := range raw {
		n, err := FromCanonValue(item)
		if err != nil {
			return nil, err
		}

		lit, ok := n.(Literal)
		if !ok {
			return nil, fmt.Errorf("ir: literalUnion member is not a literal: %T", n)
		}

		out = append(out, lit)
	}

	return out, nil
}

func decodeNodeSlice(v any) ([]Node, error) {
	raw, _ := v.([]any)
	out := make([]Node, 0, len(raw))

	for _, item := range raw {
		n, err := FromCanonValue(item)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func decodeObject(m map[string]any) (Node, error) {
	rawProps, _ := m["properties"].([]any)
	props := make([]ObjectProperty, 0, len(rawProps))

	for _, rp := range rawProps {
		pm, ok := rp.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ir: object property is not an object: %T", rp)
		}

		typ, err := FromCanonValue(pm["type"])
		if err != nil {
			return nil, err
		}

		optional, _ := pm["optional"].(bool)
		readOnly, _ := pm["readonly"].(bool)

		props = append(props, ObjectProperty{
			Name:     str(pm["name"]),
			Type:     typ,
			Optional: optional,
			ReadOnly: readOnly,
		})
	}

	obj := Object{Properties: props}

	if rawIdx, ok := m["indexSignature"].(map[string]any); ok {
		valType, err := FromCanonValue(rawIdx["valueType"])
		if err != nil {
			return nil, err
		}

		obj.IndexSignature = &IndexSignature{
			KeyType:   facade.PrimitiveKind(str(rawIdx["keyType"])),
			ValueType: valType,
		}
	}

	return obj, nil
}

func decodeUnion(m map[string]any) (Node, error) {
	members, err := decodeNodeSlice(m["members"])
	if err != nil {
		return nil, err
	}

	u := Union{Members: members}

	if rawDisc, ok := m["discriminant"].(map[string]any); ok {
		values, _ := rawDisc["values"].([]any)

		u.Discriminant = &Discriminant{
			PropertyName: str(rawDisc["propertyName"]),
			Values:       values,
		}
	}

	return u, nil
}
