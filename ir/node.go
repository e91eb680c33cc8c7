package ir

import (
	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/tags"
)

// Metadata is attached to an IR node only at the root of a lowered
// entity (spec.md §4.H); nested nodes produced by recursive lowering
// report a nil Metadata.
type Metadata struct {
	SymbolID    primitive.SymbolID
	Span        *primitive.Span
	Annotations []tags.Annotation
}

// Node is the sealed IR variant family, structurally identical to
// [resolve.ResolvedType] with one addition: every variant carries its
// own Metadata accessor, populated only on the node [Lower] returns.
type Node interface {
	isNode()
	Metadata() *Metadata
}

type base struct {
	meta *Metadata
}

func (b base) Metadata() *Metadata { return b.meta }

// Primitive is a lowered scalar kind.
type Primitive struct {
	base

	Kind facade.PrimitiveKind
}

func (Primitive) isNode() {}

// Literal is a lowered single literal value.
type Literal struct {
	base

	Kind  facade.LiteralKind
	Value any
}

func (Literal) isNode() {}

// LiteralUnion is a lowered union of literals.
type LiteralUnion struct {
	base

	Members []Literal
}

func (LiteralUnion) isNode() {}

// Array is a lowered homogeneous sequence.
type Array struct {
	base

	Element Node
}

func (Array) isNode() {}

// Tuple is a lowered fixed-length sequence.
type Tuple struct {
	base

	Elements []Node
}

func (Tuple) isNode() {}

// ObjectProperty is one member of a lowered [Object]. Annotations is
// initially empty; spec.md §4.H reserves it for future per-property
// annotation support.
type ObjectProperty struct {
	Name        string
	Type        Node
	Optional    bool
	ReadOnly    bool
	Annotations []tags.Annotation
}

// IndexSignature is a lowered object index signature.
type IndexSignature struct {
	KeyType   facade.PrimitiveKind
	ValueType Node
}

// Object is a lowered structural record.
type Object struct {
	base

	Properties     []ObjectProperty
	IndexSignature *IndexSignature
}

func (Object) isNode() {}

// Discriminant is a lowered union discriminant.
type Discriminant struct {
	PropertyName string
	Values       []any
}

// Union is a lowered heterogeneous set of members.
type Union struct {
	base

	Members      []Node
	Discriminant *Discriminant
}

func (Union) isNode() {}

// Ref is a lowered named reference to another entity's node.
type Ref struct {
	base

	Target primitive.SymbolID
}

func (Ref) isNode() {}

// Unsupported is a lowered type the resolver could not normalize.
type Unsupported struct {
	base

	Reason       string
	OriginalText string
}

func (Unsupported) isNode() {}
