package goast

import (
	"go/types"
	"reflect"
	"strings"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

// hostType wraps one go/types.Type value as a [facade.HostType]. Go has
// no native counterpart to TypeScript's literal types, enums, tuples,
// template-literal types, or mixed struct/index-signature objects; those
// introspection methods report ok=false and let [resolve.Resolver] fall
// through to the next step, exactly as spec.md §4.E expects of a host
// that simply doesn't have the feature.
type hostType struct {
	typ types.Type
}

func wrap(t types.Type) *hostType { return &hostType{typ: t} }

// Wrap adapts a go/types.Type obtained outside [Facade.LoadProgram] (for
// example from a caller's own go/types.Config.Check call) into a
// [facade.HostType]. [pipeline]'s test facades use it to exercise the
// resolver against in-memory fixtures without a full packages.Load.
func Wrap(t types.Type) facade.HostType { return wrap(t) }

func (h *hostType) SymbolID() (primitive.SymbolID, bool) {
	named, ok := h.typ.(*types.Named)
	if !ok || named.Obj() == nil {
		return "", false
	}

	obj := named.Obj()
	if obj.Pkg() == nil {
		return primitive.NewSymbolID(obj.Name()), true
	}

	return primitive.NewSymbolID(obj.Pkg().Path() + "#" + obj.Name()), true
}

func (h *hostType) HasCallOrConstructSignatures() bool {
	_, ok := h.underlying().(*types.Signature)

	return ok
}

func (h *hostType) IsAny() bool {
	iface, ok := h.underlying().(*types.Interface)

	return ok && iface.Empty()
}

func (h *hostType) IsUnknown() bool { return false }
func (h *hostType) IsNever() bool   { return false }
func (h *hostType) IsVoid() bool    { return false }

func (h *hostType) PrimitiveKind() (facade.PrimitiveKind, bool) {
	if isBigInt(h.typ) {
		return facade.PrimitiveBigInt, true
	}

	basic, ok := h.underlying().(*types.Basic)
	if !ok {
		return "", false
	}

	switch {
	case basic.Info()&types.IsBoolean != 0:
		return facade.PrimitiveBoolean, true
	case basic.Info()&types.IsString != 0:
		return facade.PrimitiveString, true
	case basic.Info()&types.IsNumeric != 0:
		return facade.PrimitiveNumber, true
	default:
		return "", false
	}
}

func isBigInt(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok || named.Obj() == nil || named.Obj().Pkg() == nil {
		return false
	}

	return named.Obj().Pkg().Path() == "math/big" && named.Obj().Name() == "Int"
}

// LiteralValue always reports ok=false: go/types.Type values carry no
// constant value of their own (that lives on the *types.Const object a
// declaration may point to, which this facade does not thread through),
// so Go source never yields a resolve.Literal node.
func (h *hostType) LiteralValue() (facade.LiteralKind, any, string, bool) {
	return "", nil, "", false
}

// IsEnumMember always reports ok=false: Go has no dedicated enum
// construct, only typed constants, which [ResolveDeclaredType] does not
// expose as distinct host types.
func (h *hostType) IsEnumMember() (facade.LiteralKind, any, bool) {
	return "", nil, false
}

func (h *hostType) IsUnion() ([]facade.HostType, bool) {
	return nil, false
}

func (h *hostType) IsIntersection() ([]facade.HostType, bool) {
	return nil, false
}

func (h *hostType) IsArray() (facade.HostType, bool) {
	switch t := h.underlying().(type) {
	case *types.Slice:
		return wrap(t.Elem()), true
	case *types.Array:
		return wrap(t.Elem()), true
	default:
		return nil, false
	}
}

// IsTuple always reports ok=false: Go has no tuple type; multi-value
// returns live on *types.Signature.Results, and signature types are
// reported only through HasCallOrConstructSignatures.
func (h *hostType) IsTuple() ([]facade.HostType, bool) {
	return nil, false
}

func (h *hostType) Properties() []facade.PropertyInfo {
	st, ok := h.underlying().(*types.Struct)
	if !ok {
		return nil
	}

	props := make([]facade.PropertyInfo, 0, st.NumFields())

	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		tag := reflect.StructTag(st.Tag(i))

		name := field.Name()

		jsonTag := tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		optional := false

		fieldType := field.Type()
		if _, isPtr := fieldType.(*types.Pointer); isPtr {
			optional = true
		}

		parts := strings.Split(jsonTag, ",")
		if parts[0] != "" {
			name = parts[0]
		}

		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				optional = true
			}
		}

		readOnly := tag.Get("readonly") == "true"

		props = append(props, facade.PropertyInfo{
			Name:     name,
			Type:     wrap(fieldType),
			Optional: optional,
			ReadOnly: readOnly,
		})
	}

	return props
}

// IndexSignature always reports ok=false: Go has no type combining named
// fields with an index signature; a bare map type resolves via IsRecord
// instead.
func (h *hostType) IndexSignature() (facade.IndexSignatureInfo, bool) {
	return facade.IndexSignatureInfo{}, false
}

func (h *hostType) IsRecord() (facade.HostType, facade.HostType, bool) {
	m, ok := h.underlying().(*types.Map)
	if !ok {
		return nil, nil, false
	}

	return wrap(m.Key()), wrap(m.Elem()), true
}

// IsTemplateLiteral always reports false: Go has no template-literal
// type.
func (h *hostType) IsTemplateLiteral() bool { return false }

func (h *hostType) TypeArguments() []facade.HostType {
	named, ok := h.typ.(*types.Named)
	if !ok {
		return nil
	}

	args := named.TypeArgs()
	if args == nil {
		return nil
	}

	out := make([]facade.HostType, args.Len())
	for i := range args.Len() {
		out[i] = wrap(args.At(i))
	}

	return out
}

func (h *hostType) AliasTarget() (facade.HostType, bool) {
	alias, ok := h.typ.(*types.Alias)
	if !ok {
		return nil, false
	}

	return wrap(alias.Rhs()), true
}

func (h *hostType) Describe() string {
	return h.typ.String()
}

func (h *hostType) underlying() types.Type {
	return h.typ.Underlying()
}
