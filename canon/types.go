package canon

// Marshaler is implemented by pipeline-specific types ([resolve.ResolvedType],
// [ir.Node], and similar closed variant families) that want direct control
// over their canonical shape instead of going through reflection.
// CanonValue must return a value built only from the types [Encode]
// understands natively: nil, bool, string, the built-in integer/float
// kinds, *big.Int, time.Time, []byte, map[string]any, []any, [Set],
// [Undefined], or another [Marshaler].
type Marshaler interface {
	CanonValue() any
}

// Undefined is the sentinel for a host-language "undefined" value,
// distinct from nil/null. Its encoding in object fields is governed by
// [UndefinedFieldPolicy]; in array positions it always emits null.
type Undefined struct{}

// Set wraps a slice to be encoded with unordered-set semantics: elements
// are sorted by their own canonical encoding before being emitted as a
// JSON array, so two sets with the same members in different orders
// produce byte-identical output.
type Set []any

// Pair is one key/value entry of an [AssocMap].
type Pair struct {
	Key   any
	Value any
}

// AssocMap is an explicit associative map used when keys are not plain
// Go strings (e.g. int or bool keyed maps coming from resolved structural
// data). Keys are stringified via the restricted coercion described in
// spec.md §4.B (string/bool/number/bigint only) and the resulting
// key-value pairs are sorted by key before encoding.
type AssocMap []Pair
