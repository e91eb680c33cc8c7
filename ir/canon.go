package ir

// CanonValue implementations make every [Node] variant a
// canon.Marshaler, so hashing an IR node (spec.md §4.J step 6f) needs
// no type switch at the call site. Metadata is deliberately excluded
// from the canonical value: spec.md's determinism contract hashes the
// shape, not the span or symbol bookkeeping layered on top of it.

func (p Primitive) CanonValue() any {
	return map[string]any{"kind": "primitive", "primitiveKind": string(p.Kind)}
}

func (l Literal) CanonValue() any {
	return map[string]any{"kind": "literal", "literalKind": string(l.Kind), "value": l.Value}
}

func (u LiteralUnion) CanonValue() any {
	members := make([]any, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.CanonValue()
	}

	return map[string]any{"kind": "literalUnion", "members": members}
}

func (a Array) CanonValue() any {
	return map[string]any{"kind": "array", "element": a.Element.CanonValue()}
}

func (t Tuple) CanonValue() any {
	elems := make([]any, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.CanonValue()
	}

	return map[string]any{"kind": "tuple", "elements": elems}
}

func (p ObjectProperty) canonValue() any {
	return map[string]any{
		"name":     p.Name,
		"type":     p.Type.CanonValue(),
		"optional": p.Optional,
		"readonly": p.ReadOnly,
	}
}

func (s IndexSignature) canonValue() any {
	return map[string]any{"keyType": string(s.KeyType), "valueType": s.ValueType.CanonValue()}
}

func (o Object) CanonValue() any {
	props := make([]any, len(o.Properties))
	for i, p := range o.Properties {
		props[i] = p.canonValue()
	}

	v := map[string]any{"kind": "object", "properties": props}
	if o.IndexSignature != nil {
		v["indexSignature"] = o.IndexSignature.canonValue()
	}

	return v
}

func (u Union) CanonValue() any {
	members := make([]any, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.CanonValue()
	}

	v := map[string]any{"kind": "union", "members": members}

	if u.Discriminant != nil {
		v["discriminant"] = map[string]any{
			"propertyName": u.Discriminant.PropertyName,
			"values":       u.Discriminant.Values,
		}
	}

	return v
}

func (r Ref) CanonValue() any {
	return map[string]any{"kind": "ref", "target": string(r.Target)}
}

func (u Unsupported) CanonValue() any {
	v := map[string]any{"kind": "unsupported", "reason": u.Reason}
	if u.OriginalText != "" {
		v["originalText"] = u.OriginalText
	}

	return v
}
