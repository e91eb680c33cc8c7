package resolve

import (
	"sort"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

// ResolvedType is the sealed result of structural resolution (spec.md
// §3). isResolvedType is unexported so no type outside this package can
// implement it; CanonValue lets [canon.Encode] hash any ResolvedType
// without a type switch of its own.
type ResolvedType interface {
	isResolvedType()
	CanonValue() any
}

// Primitive is one of the host's scalar kinds.
type Primitive struct {
	Kind facade.PrimitiveKind
}

func (Primitive) isResolvedType() {}
func (p Primitive) CanonValue() any {
	return map[string]any{"kind": "primitive", "primitiveKind": string(p.Kind)}
}

// Literal is a single literal value of a known kind.
type Literal struct {
	Kind  facade.LiteralKind
	Value any
}

func (Literal) isResolvedType() {}
func (l Literal) CanonValue() any {
	return map[string]any{"kind": "literal", "literalKind": string(l.Kind), "value": l.Value}
}

// LiteralUnion is a union whose every member is a [Literal], sorted by
// stringified value.
type LiteralUnion struct {
	Members []Literal
}

func (LiteralUnion) isResolvedType() {}
func (u LiteralUnion) CanonValue() any {
	members := make([]any, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.CanonValue()
	}

	return map[string]any{"kind": "literalUnion", "members": members}
}

// Array is a homogeneous sequence of Element.
type Array struct {
	Element ResolvedType
}

func (Array) isResolvedType() {}
func (a Array) CanonValue() any {
	return map[string]any{"kind": "array", "element": a.Element.CanonValue()}
}

// Tuple is a fixed-length, positionally-typed sequence.
type Tuple struct {
	Elements []ResolvedType
}

func (Tuple) isResolvedType() {}
func (t Tuple) CanonValue() any {
	elems := make([]any, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.CanonValue()
	}

	return map[string]any{"kind": "tuple", "elements": elems}
}

// ObjectProperty is one named, sorted-by-name member of an [Object].
type ObjectProperty struct {
	Name     string
	Type     ResolvedType
	Optional bool
	ReadOnly bool
}

func (p ObjectProperty) canonValue() any {
	return map[string]any{
		"name":     p.Name,
		"type":     p.Type.CanonValue(),
		"optional": p.Optional,
		"readonly": p.ReadOnly,
	}
}

// IndexSignature describes an object's index signature, if any.
type IndexSignature struct {
	KeyType   facade.PrimitiveKind // PrimitiveString or PrimitiveNumber
	ValueType ResolvedType
}

func (s IndexSignature) canonValue() any {
	return map[string]any{
		"keyType":   string(s.KeyType),
		"valueType": s.ValueType.CanonValue(),
	}
}

// Object is a structural record: named properties plus an optional
// index signature. The "record" shape (index signature, zero
// properties) is represented by the same struct with Properties empty.
type Object struct {
	Properties     []ObjectProperty
	IndexSignature *IndexSignature
}

func (Object) isResolvedType() {}
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

// Discriminant records a union's tag property, if one was detected.
type Discriminant struct {
	PropertyName string
	Values       []any
}

// Union is a heterogeneous set of resolved members, canonically sorted,
// with an optional detected [Discriminant].
type Union struct {
	Members      []ResolvedType
	Discriminant *Discriminant
}

func (Union) isResolvedType() {}
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

// Ref is a named reference to another symbol's IR node, the sole
// mechanism by which cycles are expressed among resolved types.
type Ref struct {
	Target primitive.SymbolID
}

func (Ref) isResolvedType() {}
func (r Ref) CanonValue() any {
	return map[string]any{"kind": "ref", "target": string(r.Target)}
}

// Unsupported marks a host type the resolver could not normalize.
type Unsupported struct {
	Reason       string
	OriginalText string
}

func (Unsupported) isResolvedType() {}
func (u Unsupported) CanonValue() any {
	v := map[string]any{"kind": "unsupported", "reason": u.Reason}
	if u.OriginalText != "" {
		v["originalText"] = u.OriginalText
	}

	return v
}

// sortObjectProperties sorts props by name in place and returns it.
func sortObjectProperties(props []ObjectProperty) []ObjectProperty {
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	return props
}
