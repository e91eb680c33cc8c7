package ir

import (
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/resolve"
	"github.com/flizzeri/schemaforge/tags"
)

// Lower is the pure recursive transform of spec.md §4.H: it mirrors t's
// shape into the IR variant family, attaching Metadata{symbolID, span,
// annotations} only to the node it directly returns; every nested node
// produced along the way carries a nil Metadata.
func Lower(symbolID primitive.SymbolID, t resolve.ResolvedType, anns []tags.Annotation, span *primitive.Span) Node {
	meta := &Metadata{SymbolID: symbolID, Span: span, Annotations: anns}

	return lowerShape(t, meta)
}

// lowerShape recursively mirrors t's shape, stamping meta onto only the
// node it directly returns; every nested lowerShape call it makes
// passes nil so Metadata never duplicates down the tree.
func lowerShape(t resolve.ResolvedType, meta *Metadata) Node {
	switch v := t.(type) {
	case resolve.Primitive:
		return Primitive{base: base{meta: meta}, Kind: v.Kind}

	case resolve.Literal:
		return Literal{base: base{meta: meta}, Kind: v.Kind, Value: v.Value}

	case resolve.LiteralUnion:
		members := make([]Literal, len(v.Members))
		for i, m := range v.Members {
			members[i] = Literal{Kind: m.Kind, Value: m.Value}
		}

		return LiteralUnion{base: base{meta: meta}, Members: members}

	case resolve.Array:
		return Array{base: base{meta: meta}, Element: lowerShape(v.Element, nil)}

	case resolve.Tuple:
		elems := make([]Node, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = lowerShape(e, nil)
		}

		return Tuple{base: base{meta: meta}, Elements: elems}

	case resolve.Object:
		return lowerObject(v, meta)

	case resolve.Union:
		members := make([]Node, len(v.Members))
		for i, m := range v.Members {
			members[i] = lowerShape(m, nil)
		}

		var disc *Discriminant
		if v.Discriminant != nil {
			disc = &Discriminant{PropertyName: v.Discriminant.PropertyName, Values: v.Discriminant.Values}
		}

		return Union{base: base{meta: meta}, Members: members, Discriminant: disc}

	case resolve.Ref:
		return Ref{base: base{meta: meta}, Target: v.Target}

	case resolve.Unsupported:
		return Unsupported{base: base{meta: meta}, Reason: v.Reason, OriginalText: v.OriginalText}

	default:
		return Unsupported{base: base{meta: meta}, Reason: "unrecognized resolved type"}
	}
}

func lowerObject(o resolve.Object, meta *Metadata) Node {
	props := make([]ObjectProperty, len(o.Properties))
	for i, p := range o.Properties {
		props[i] = ObjectProperty{
			Name:     p.Name,
			Type:     lowerShape(p.Type, nil),
			Optional: p.Optional,
			ReadOnly: p.ReadOnly,
		}
	}

	obj := Object{base: base{meta: meta}, Properties: props}

	if o.IndexSignature != nil {
		obj.IndexSignature = &IndexSignature{
			KeyType:   o.IndexSignature.KeyType,
			ValueType: lowerShape(o.IndexSignature.ValueType, nil),
		}
	}

	return obj
}
