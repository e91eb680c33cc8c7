package facade

import (
	"context"

	"github.com/flizzeri/schemaforge/primitive"
)

// Options configures [ProgramFacade.LoadProgram].
type Options struct {
	// CompilerConfigPath is the path to the host compiler's options file
	// (a go.mod-relative build-constraints/tags file for [goast]). Its
	// raw bytes feed the fingerprint's tsconfig component (spec.md §3).
	CompilerConfigPath string
	// BasePath is the root directory declarations are resolved relative
	// to.
	BasePath string
}

// ProgramHandle opaquely identifies one loaded program/type-check session.
// Facade implementations define their own concrete type; the core never
// inspects it beyond passing it back into other ProgramFacade methods.
type ProgramHandle interface {
	// ConfigDigest returns bytes uniquely identifying the effective
	// compiler configuration used to load this program. The pipeline's
	// fingerprint does not use it: it hashes the file at
	// Options.CompilerConfigPath itself.
	ConfigDigest() []byte
	// CompilerVersion returns the host compiler/toolchain version
	// string, consumed by the fingerprint's tsVersion component.
	CompilerVersion() string
}

// Declaration opaquely identifies one type declaration within a loaded
// program.
type Declaration interface {
	// Name returns the declaration's short (unqualified) name.
	Name() string
}

// PrimitiveKind enumerates the primitive type kinds spec.md §3 defines.
type PrimitiveKind string

// Primitive kinds recognized by [resolve.Resolver].
const (
	PrimitiveString    PrimitiveKind = "string"
	PrimitiveNumber    PrimitiveKind = "number"
	PrimitiveBoolean   PrimitiveKind = "boolean"
	PrimitiveBigInt    PrimitiveKind = "bigint"
	PrimitiveNull      PrimitiveKind = "null"
	PrimitiveUndefined PrimitiveKind = "undefined"
)

// LiteralKind enumerates the kinds a literal type's value may take.
type LiteralKind string

// Literal kinds.
const (
	LiteralString  LiteralKind = "string"
	LiteralNumber  LiteralKind = "number"
	LiteralBoolean LiteralKind = "boolean"
	LiteralBigInt  LiteralKind = "bigint"
)

// PropertyInfo describes one member of an object-like [HostType].
type PropertyInfo struct {
	Name     string
	Type     HostType
	Optional bool
	ReadOnly bool
}

// IndexSignatureInfo describes an index signature on an object-like
// [HostType].
type IndexSignatureInfo struct {
	KeyType   PrimitiveKind // PrimitiveString or PrimitiveNumber
	ValueType HostType
}

// HostType is the read-only introspection surface the structural
// resolver (§4.E) walks. Implementations wrap one host-compiler type
// value; every method must be side-effect-free and return the same
// answer for the lifetime of the [ProgramHandle] it came from.
type HostType interface {
	// SymbolID returns the stable identifier of the named symbol this
	// type refers to, and whether it has one at all (anonymous/structural
	// types do not).
	SymbolID() (primitive.SymbolID, bool)

	// HasCallOrConstructSignatures reports whether the type is (or
	// includes) a function/constructor signature.
	HasCallOrConstructSignatures() bool

	// IsAny, IsUnknown, IsNever, IsVoid classify the host's top/bottom
	// types, each of which resolves to a distinct unsupported reason.
	IsAny() bool
	IsUnknown() bool
	IsNever() bool
	IsVoid() bool

	// PrimitiveKind returns the primitive kind of this type and true, or
	// ok=false if this type is not a primitive.
	PrimitiveKind() (kind PrimitiveKind, ok bool)

	// LiteralValue returns the literal kind/value of this type and true,
	// or ok=false if this type is not a literal. BoolText is set only
	// for boolean literals and carries the literal source text ("true"
	// or "false") for hosts whose type-flag system conflates boolean
	// literals, per spec.md §4.E step 3.
	LiteralValue() (kind LiteralKind, value any, boolText string, ok bool)

	// IsEnumMember reports whether this type is a member of an enum, and
	// if so returns its underlying literal representation.
	IsEnumMember() (kind LiteralKind, value any, ok bool)

	// IsUnion reports whether this is a union type and returns its
	// members in declaration order.
	IsUnion() (members []HostType, ok bool)

	// IsIntersection reports whether this is an intersection type and
	// returns its members in declaration order.
	IsIntersection() (members []HostType, ok bool)

	// IsArray reports whether this is an array type and returns its
	// element type.
	IsArray() (element HostType, ok bool)

	// IsTuple reports whether this is a tuple type and returns its
	// element types in order.
	IsTuple() (elements []HostType, ok bool)

	// Properties returns the named members of an object-like type.
	Properties() []PropertyInfo

	// IndexSignature returns the type's index signature, if any.
	IndexSignature() (IndexSignatureInfo, bool)

	// IsRecord reports whether this type is a Record<K,V>-shaped mapped
	// type and returns its key/value types.
	IsRecord() (key, value HostType, ok bool)

	// IsTemplateLiteral reports whether this is a template-literal type
	// (collapses to the string primitive per spec.md §4.E step 11).
	IsTemplateLiteral() bool

	// TypeArguments returns this type's generic type arguments, if any.
	TypeArguments() []HostType

	// AliasTarget reports whether this type is a named alias and
	// returns the type it aliases.
	AliasTarget() (target HostType, ok bool)

	// Describe returns a short, human-readable description used to
	// populate unsupported{originalText}.
	Describe() string
}

// ProgramFacade is the complete capability surface the core consumes
// from a host compiler (spec.md §4.D). It is the only component aware
// of the host; every downstream component operates on [HostType] and
// [Declaration] values it hands back.
type ProgramFacade interface {
	// LoadProgram loads and type-checks a program rooted at
	// opts.BasePath using opts.CompilerConfigPath, enforcing
	// strict-equivalent settings so that semantically different inputs
	// produce structurally different resolved types.
	LoadProgram(ctx context.Context, opts Options) primitive.Result[ProgramHandle]

	// EnumerateDeclarationsWithTag returns every declaration in handle
	// whose doc comment carries a docblock tag named tagName, in a
	// deterministic, stable order.
	EnumerateDeclarationsWithTag(handle ProgramHandle, tagName string) []Declaration

	// SymbolIDOf returns the stable identifier of decl.
	SymbolIDOf(decl Declaration) primitive.SymbolID

	// DocblockTagsOf returns decl's raw docblock tags, sorted by tag
	// name, with docblock markup stripped and whitespace collapsed.
	DocblockTagsOf(decl Declaration) []RawTag

	// ResolveDeclaredType resolves decl's declared type to a [HostType].
	ResolveDeclaredType(decl Declaration) primitive.Result[HostType]

	// SpanOf returns decl's source span, if the host can provide one.
	SpanOf(decl Declaration) *primitive.Span

	// FindExportedSymbol looks up an exported declaration by name within
	// handle.
	FindExportedSymbol(handle ProgramHandle, name string) primitive.Result[Declaration]
}

// RawTag is one docblock tag as extracted by the facade, before grammar
// parsing (spec.md §3).
type RawTag struct {
	Name string
	Text string
}
