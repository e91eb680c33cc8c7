package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

type visitState int

const (
	// pending marks a symbol currently being resolved on the call
	// stack, the cycle-breaker sentinel of spec.md §4.E.
	pending visitState = iota
	done
)

// resolverContext is the per-run state spec.md §4.E specifies:
// {visited, resolved, diagnostics}.
type resolverContext struct {
	visited     map[primitive.SymbolID]visitState
	resolved    map[primitive.SymbolID]ResolvedType
	diagnostics []primitive.Diagnostic
}

func newResolverContext() *resolverContext {
	return &resolverContext{
		visited:  make(map[primitive.SymbolID]visitState),
		resolved: make(map[primitive.SymbolID]ResolvedType),
	}
}

func (c *resolverContext) diag(d primitive.Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Resolver normalizes [facade.HostType] values into [ResolvedType].
// A single Resolver is reused across every entity in one pipeline run so
// that named references resolved earlier are visible to later symbols,
// per spec.md §5's ordering guarantee.
type Resolver struct {
	ctx *resolverContext
}

// NewResolver returns a Resolver with a fresh per-run context.
func NewResolver() *Resolver {
	return &Resolver{ctx: newResolverContext()}
}

// Resolve normalizes t, the declared type of an entity-tagged
// declaration, into a [ResolvedType]. Unlike nested encounters of a
// named type (which collapse to [Ref]), the root call always expands
// t's own structure -- an entity's node is its shape, not a pointer to
// itself.
func (r *Resolver) Resolve(ctx context.Context, t facade.HostType) primitive.Result[ResolvedType] {
	select {
	case <-ctx.Done():
		return primitive.Err[ResolvedType](primitive.NewDiagnostic(
			primitive.CodeTypeUnresolved, primitive.CategoryError, "resolution canceled",
		))
	default:
	}

	id, hasID := t.SymbolID()
	if hasID {
		r.ctx.visited[id] = pending
	}

	rt := r.resolveStructural(t)

	if hasID {
		r.ctx.resolved[id] = rt
		delete(r.ctx.visited, id)
	}

	diags := r.ctx.diagnostics
	r.ctx.diagnostics = nil

	return primitive.Ok[ResolvedType](rt, diags...)
}

// resolveType is the general dispatcher used for every non-root
// position (object properties, array elements, union/tuple members): it
// applies the named-reference shortcut of step 12 before falling
// through to structural resolution.
func (r *Resolver) resolveType(t facade.HostType) ResolvedType {
	if id, ok := t.SymbolID(); ok {
		if _, isResolved := r.ctx.resolved[id]; isResolved {
			return Ref{Target: id}
		}

		if state, isVisited := r.ctx.visited[id]; isVisited && state == pending {
			return Ref{Target: id}
		}

		if target, isAlias := t.AliasTarget(); isAlias {
			r.ctx.visited[id] = pending
			body := r.resolveStructural(target)
			r.ctx.resolved[id] = body
			delete(r.ctx.visited, id)

			return Ref{Target: id}
		}

		return Ref{Target: id}
	}

	return r.resolveStructural(t)
}

// resolveStructural implements steps 1-11 and 13 of spec.md §4.E on t's
// own shape, bypassing the named-reference shortcut of step 12.
func (r *Resolver) resolveStructural(t facade.HostType) ResolvedType {
	// Step 1: signatures first.
	if t.HasCallOrConstructSignatures() {
		return r.unsupported("function types are not supported", t)
	}

	// Step 2: any/unknown/never/void and primitive classification.
	switch {
	case t.IsAny():
		return r.unsupported("any is not supported", t)
	case t.IsUnknown():
		return r.unsupported("unknown is not supported", t)
	case t.IsNever():
		return r.unsupported("never is not supported", t)
	case t.IsVoid():
		return r.unsupported("use undefined", t)
	}

	if kind, ok := t.PrimitiveKind(); ok {
		return Primitive{Kind: kind}
	}

	// Step 3: literals.
	if kind, value, boolText, ok := t.LiteralValue(); ok {
		if kind == facade.LiteralBoolean && boolText != "" {
			value = boolText == "true"
		}

		return Literal{Kind: kind, Value: value}
	}

	// Step 4: enum members.
	if kind, value, ok := t.IsEnumMember(); ok {
		return Literal{Kind: kind, Value: value}
	}

	// Step 5: unions.
	if members, ok := t.IsUnion(); ok {
		return r.resolveUnion(members)
	}

	// Step 6: intersections.
	if members, ok := t.IsIntersection(); ok {
		return r.resolveIntersection(members)
	}

	// Step 7: arrays.
	if elem, ok := t.IsArray(); ok {
		return Array{Element: r.resolveType(elem)}
	}

	// Step 8: tuples.
	if elems, ok := t.IsTuple(); ok {
		out := make([]ResolvedType, len(elems))
		for i, e := range elems {
			out[i] = r.resolveType(e)
		}

		return Tuple{Elements: out}
	}

	// Step 10a: Record<K,V>-shaped mapped types.
	if key, value, ok := t.IsRecord(); ok {
		if keyKind, ok := key.PrimitiveKind(); ok &&
			(keyKind == facade.PrimitiveString || keyKind == facade.PrimitiveNumber) {
			return Object{
				Properties:     []ObjectProperty{},
				IndexSignature: &IndexSignature{KeyType: keyKind, ValueType: r.resolveType(value)},
			}
		}
	}

	// Step 11: template literals collapse to string.
	if t.IsTemplateLiteral() {
		return Primitive{Kind: facade.PrimitiveString}
	}

	// Step 9: objects, including the index-signature "record" shape.
	props := t.Properties()
	idx, hasIdx := t.IndexSignature()

	if len(props) == 0 && hasIdx {
		return Object{
			Properties:     []ObjectProperty{},
			IndexSignature: &IndexSignature{KeyType: idx.KeyType, ValueType: r.resolveType(idx.ValueType)},
		}
	}

	if len(props) > 0 {
		return r.resolveObject(props, idx, hasIdx)
	}

	if hasIdx {
		return Object{
			Properties:     []ObjectProperty{},
			IndexSignature: &IndexSignature{KeyType: idx.KeyType, ValueType: r.resolveType(idx.ValueType)},
		}
	}

	// Step 13: anything else.
	return r.unsupported(t.Describe(), t)
}

func (r *Resolver) resolveObject(props []facade.PropertyInfo, idx facade.IndexSignatureInfo, hasIdx bool) ResolvedType {
	out := make([]ObjectProperty, len(props))
	for i, p := range props {
		out[i] = ObjectProperty{
			Name:     p.Name,
			Type:     r.resolveType(p.Type),
			Optional: p.Optional,
			ReadOnly: p.ReadOnly,
		}
	}

	out = sortObjectProperties(out)

	obj := Object{Properties: out}

	if hasIdx {
		obj.IndexSignature = &IndexSignature{KeyType: idx.KeyType, ValueType: r.resolveType(idx.ValueType)}
	}

	return obj
}

func (r *Resolver) resolveUnion(members []facade.HostType) ResolvedType {
	resolved := make([]ResolvedType, len(members))
	for i, m := range members {
		resolved[i] = r.resolveType(m)
	}

	if allLiterals(resolved) {
		lits := make([]Literal, len(resolved))
		for i, m := range resolved {
			lits[i] = m.(Literal) //nolint:forcetypeassert // guarded by allLiterals
		}

		sort.Slice(lits, func(i, j int) bool {
			return fmt.Sprint(lits[i].Value) < fmt.Sprint(lits[j].Value)
		})

		return LiteralUnion{Members: lits}
	}

	var objectLike, other []ResolvedType

	for _, m := range resolved {
		switch v := m.(type) {
		case Object, Ref:
			objectLike = append(objectLike, m)
		case Primitive:
			if v.Kind != facade.PrimitiveNull {
				other = append(other, m)
			}
		default:
			other = append(other, m)
		}
	}

	if len(objectLike) > 0 && len(other) > 0 {
		r.ctx.diag(primitive.NewDiagnostic(
			primitive.CodeUnionHeterogeneous, primitive.CategoryError,
			"union mixes object-like and non-null members",
		))

		return Unsupported{Reason: "heterogeneous union"}
	}

	discriminant := detectDiscriminant(resolved)

	sort.SliceStable(resolved, func(i, j int) bool {
		ri, rj := unionRank(resolved[i]), unionRank(resolved[j])
		if ri != rj {
			return ri < rj
		}

		return unionSortKey(resolved[i]) < unionSortKey(resolved[j])
	})

	return Union{Members: resolved, Discriminant: discriminant}
}

func allLiterals(members []ResolvedType) bool {
	for _, m := range members {
		if _, ok := m.(Literal); !ok {
			return false
		}
	}

	return len(members) > 0
}

func detectDiscriminant(members []ResolvedType) *Discriminant {
	objects := make([]Object, 0, len(members))

	for _, m := range members {
		if o, ok := m.(Object); ok {
			objects = append(objects, o)
		}
	}

	if len(objects) < 2 {
		return nil
	}

	candidateNames := map[string]bool{}
	for _, p := range objects[0].Properties {
		if _, ok := p.Type.(Literal); ok {
			candidateNames[p.Name] = true
		}
	}

	var names []string
	for name := range candidateNames {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		values := make([]any, 0, len(objects))
		seen := map[string]bool{}
		ok := true

		for _, o := range objects {
			var found *Literal

			for _, p := range o.Properties {
				if p.Name == name {
					if lit, isLit := p.Type.(Literal); isLit {
						found = &lit
					}

					break
				}
			}

			if found == nil {
				ok = false

				break
			}

			key := fmt.Sprint(found.Value)
			if seen[key] {
				ok = false

				break
			}

			seen[key] = true
			values = append(values, found.Value)
		}

		if ok {
			return &Discriminant{PropertyName: name, Values: values}
		}
	}

	return nil
}

func unionRank(t ResolvedType) int {
	switch t.(type) {
	case Primitive:
		return 0
	case Literal:
		return 1
	case LiteralUnion:
		return 2
	case Array:
		return 3
	case Tuple:
		return 4
	case Object:
		return 5
	case Union:
		return 6
	case Ref:
		return 7
	default:
		return 8
	}
}

func unionSortKey(t ResolvedType) string {
	switch v := t.(type) {
	case Literal:
		return fmt.Sprint(v.Value)
	case Ref:
		return string(v.Target)
	default:
		return ""
	}
}

func (r *Resolver) resolveIntersection(members []facade.HostType) ResolvedType {
	resolved := make([]ResolvedType, len(members))
	for i, m := range members {
		resolved[i] = r.resolveType(m)
	}

	merged := map[string]ObjectProperty{}
	var order []string

	var indexSig *IndexSignature

	for _, m := range resolved {
		obj, ok := m.(Object)
		if !ok {
			r.ctx.diag(primitive.NewDiagnostic(
				primitive.CodeIntersectionConflict, primitive.CategoryError,
				"intersection member is not an object type",
			))

			return Unsupported{Reason: "intersection of non-object types"}
		}

		if obj.IndexSignature != nil {
			if indexSig != nil {
				r.ctx.diag(primitive.NewDiagnostic(
					primitive.CodeIntersectionConflict, primitive.CategoryError,
					"multiple index signatures in intersection",
				))

				return Unsupported{Reason: "conflicting index signatures"}
			}

			indexSig = obj.IndexSignature
		}

		for _, p := range obj.Properties {
			existing, seen := merged[p.Name]
			if !seen {
				merged[p.Name] = p
				order = append(order, p.Name)

				continue
			}

			if !structurallyEqual(existing.Type, p.Type) {
				r.ctx.diag(primitive.NewDiagnostic(
					primitive.CodeIntersectionConflict, primitive.CategoryError,
					"property %s has conflicting types across intersection members", p.Name,
				))

				return Unsupported{Reason: fmt.Sprintf("conflicting type for property %s", p.Name)}
			}

			existing.Optional = existing.Optional && p.Optional
			merged[p.Name] = existing
		}
	}

	props := make([]ObjectProperty, 0, len(order))
	for _, name := range order {
		props = append(props, merged[name])
	}

	props = sortObjectProperties(props)

	return Object{Properties: props, IndexSignature: indexSig}
}

// structurallyEqual implements the primitive/literal/ref equality the
// intersection merge step requires -- no deep structural comparison of
// arbitrary object/union shapes.
func structurallyEqual(a, b ResolvedType) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Kind == bv.Kind
	case Literal:
		bv, ok := b.(Literal)
		return ok && av.Kind == bv.Kind && fmt.Sprint(av.Value) == fmt.Sprint(bv.Value)
	case Ref:
		bv, ok := b.(Ref)
		return ok && av.Target == bv.Target
	default:
		return false
	}
}

func (r *Resolver) unsupported(reason string, t facade.HostType) ResolvedType {
	r.ctx.diag(primitive.NewDiagnostic(
		primitive.CodeTypeUnsupported, primitive.CategoryError,
		"%s", reason,
	))

	return Unsupported{Reason: reason, OriginalText: t.Describe()}
}
