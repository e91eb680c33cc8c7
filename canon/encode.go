package canon

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flizzeri/schemaforge/primitive"
)

// Encode deterministically serializes v into a byte sequence. The output
// is valid JSON, sorted and whitespace-free, and satisfies the byte-exact
// determinism contract of spec.md §4.B: identical inputs, including
// across platforms and runs, always produce identical bytes.
//
// The returned diagnostics may contain error-category entries (e.g. a
// cycle, an unsupported type, a policy violation); callers that care
// about validity should check [primitive.AnyError] before trusting the
// returned bytes, mirroring [digest.Hash].
func Encode(v any, opts ...Option) ([]byte, []primitive.Diagnostic) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &encoder{cfg: cfg, visiting: map[visitKey]bool{}}

	var buf strings.Builder

	e.encode(&buf, v, "$")

	return []byte(buf.String()), e.diags
}

type visitKey struct {
	kind reflect.Kind
	ptr  uintptr
}

type encoder struct {
	cfg      config
	diags    []primitive.Diagnostic
	visiting map[visitKey]bool
}

func (e *encoder) fail(code, path, format string, args ...string) {
	d := primitive.NewDiagnostic(code, primitive.CategoryError, format, args...).
		WithContext("path", path)
	e.diags = append(e.diags, d)
}

// encode dispatches on the dynamic type of v, guarding every reference
// type (map/slice/pointer) against cycles before descending, per spec.md
// §4.B's "cycles rejected" rule. Non-reference values (and structs,
// which cannot self-reference without indirection in Go) skip straight
// to encodeValue.
func (e *encoder) encode(buf *strings.Builder, v any, path string) {
	if v == nil {
		buf.WriteString("null")

		return
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr:
		if rv.IsNil() {
			buf.WriteString("null")

			return
		}

		key := visitKey{kind: rv.Kind(), ptr: rv.Pointer()}
		if e.visiting[key] {
			e.fail(primitive.CodeCanonicalUnsupported, path, "cycle detected at %s", path)
			buf.WriteString("null")

			return
		}

		e.visiting[key] = true
		defer delete(e.visiting, key)
	}

	e.encodeValue(buf, v, path)
}

//nolint:gocyclo,cyclop // the dispatch switch mirrors spec.md §4.B's flat type list; splitting it obscures the single source of truth.
func (e *encoder) encodeValue(buf *strings.Builder, v any, path string) {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case Undefined:
		e.encodeUndefinedField(buf, path)
	case Marshaler:
		e.encode(buf, val.CanonValue(), path)
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		e.encodeString(buf, val)
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int8, int16, int32, int64:
		buf.WriteString(fmt.Sprintf("%d", val))
	case uint, uint8, uint16, uint32, uint64:
		buf.WriteString(fmt.Sprintf("%d", val))
	case float32:
		e.encodeFloat(buf, float64(val), path)
	case float64:
		e.encodeFloat(buf, val, path)
	case *big.Int:
		e.encodeBigInt(buf, val, path)
	case time.Time:
		e.encodeTime(buf, val)
	case []byte:
		e.encodeBytes(buf, val)
	case Set:
		e.encodeSet(buf, val, path)
	case AssocMap:
		e.encodeAssocMap(buf, val, path)
	case map[string]any:
		e.encodeStringMap(buf, val, path)
	case []any:
		e.encodeArray(buf, val, path)
	default:
		e.encodeReflect(buf, v, path)
	}
}

func (e *encoder) encodeString(buf *strings.Builder, s string) {
	buf.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}

	buf.WriteByte('"')
}

func (e *encoder) encodeFloat(buf *strings.Builder, f float64, path string) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		switch e.cfg.nonFinite {
		case NonFiniteAsNull:
			buf.WriteString("null")
		case NonFiniteAsString:
			e.encodeString(buf, nonFiniteLabel(f))
		case NonFiniteReject:
			fallthrough
		default:
			e.fail(primitive.CodeCanonicalUnstableNum, path, "non-finite number at %s", path)
			buf.WriteString("null")
		}

		return
	}

	if f == 0 {
		buf.WriteString("0")

		return
	}

	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func nonFiniteLabel(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	default:
		return "-Infinity"
	}
}

const safeIntegerLimit = 1<<53 - 1

func (e *encoder) encodeBigInt(buf *strings.Builder, n *big.Int, path string) {
	switch e.cfg.bigInt {
	case BigIntReject:
		e.fail(primitive.CodeCanonicalBigIntPolicy, path, "arbitrary-precision integer rejected by policy at %s", path)
		buf.WriteString("null")
	case BigIntAsSafeIntegerOrReject:
		limit := big.NewInt(safeIntegerLimit)
		neg := new(big.Int).Neg(limit)

		if n.Cmp(limit) > 0 || n.Cmp(neg) < 0 {
			e.fail(primitive.CodeCanonicalBigIntPolicy, path, "integer at %s exceeds safe integer range", path)
			buf.WriteString("null")

			return
		}

		buf.WriteString(n.String())
	case BigIntAsDecimalString:
		fallthrough
	default:
		e.encodeString(buf, n.String())
	}
}

func (e *encoder) encodeTime(buf *strings.Builder, t time.Time) {
	switch e.cfg.temporal {
	case TemporalEpochMillis:
		buf.WriteString(strconv.FormatInt(t.UnixMilli(), 10))
	case TemporalISOUTC:
		fallthrough
	default:
		e.encodeString(buf, t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
}

func (e *encoder) encodeBytes(buf *strings.Builder, b []byte) {
	switch e.cfg.binary {
	case BinaryIntArray:
		buf.WriteByte('[')

		for i, v := range b {
			if i > 0 {
				buf.WriteByte(',')
			}

			buf.WriteString(strconv.Itoa(int(v)))
		}

		buf.WriteByte(']')
	case BinaryBase64:
		fallthrough
	default:
		e.encodeString(buf, base64.StdEncoding.EncodeToString(b))
	}
}

func (e *encoder) encodeUndefinedField(buf *strings.Builder, path string) {
	switch e.cfg.undefined {
	case UndefinedAsNull:
		buf.WriteString("null")
	case UndefinedReject:
		e.fail(primitive.CodeCanonicalUnsupported, path, "undefined value rejected by policy at %s", path)
		buf.WriteString("null")
	case UndefinedOmit:
		fallthrough
	default:
		// Handled by the object writer, which skips the key entirely;
		// reaching here means Undefined was used directly (e.g. as a
		// bare top-level value), so fall back to null.
		buf.WriteString("null")
	}
}

func (e *encoder) encodeArray(buf *strings.Builder, arr []any, path string) {
	buf.WriteByte('[')

	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}

		childPath := fmt.Sprintf("%s[%d]", path, i)
		if _, ok := item.(Undefined); ok {
			buf.WriteString("null")

			continue
		}

		e.encode(buf, item, childPath)
	}

	buf.WriteByte(']')
}

func (e *encoder) encodeSet(buf *strings.Builder, set Set, path string) {
	encoded := make([]string, 0, len(set))

	for i, item := range set {
		var b strings.Builder

		e.encode(&b, item, fmt.Sprintf("%s{%d}", path, i))
		encoded = append(encoded, b.String())
	}

	sort.Strings(encoded)

	buf.WriteByte('[')
	buf.WriteString(strings.Join(encoded, ","))
	buf.WriteByte(']')
}

func (e *encoder) encodeAssocMap(buf *strings.Builder, m AssocMap, path string) {
	type entry struct {
		keyStr string
		pair   Pair
	}

	entries := make([]entry, 0, len(m))

	for _, p := range m {
		ks, ok := coerceKey(p.Key)
		if !ok {
			e.fail(primitive.CodeCanonicalUnsupported, path, "map key at %s is not string/bool/number/bigint", path)

			continue
		}

		entries = append(entries, entry{keyStr: ks, pair: p})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].keyStr < entries[j].keyStr })

	buf.WriteByte('[')

	for i, ent := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteByte('[')
		e.encodeString(buf, ent.keyStr)
		buf.WriteByte(',')
		e.encode(buf, ent.pair.Value, fmt.Sprintf("%s[%q]", path, ent.keyStr))
		buf.WriteByte(']')
	}

	buf.WriteByte(']')
}

func coerceKey(k any) (string, bool) {
	switch v := k.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case float32, float64:
		return fmt.Sprintf("%v", v), true
	case *big.Int:
		return v.String(), true
	default:
		return "", false
	}
}

func (e *encoder) encodeStringMap(buf *strings.Builder, m map[string]any, path string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	buf.WriteByte('{')

	first := true

	for _, k := range keys {
		v := m[k]
		if _, ok := v.(Undefined); ok && e.cfg.undefined == UndefinedOmit {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		e.encodeString(buf, k)
		buf.WriteByte(':')
		e.encode(buf, v, path+"."+k)
	}

	buf.WriteByte('}')
}

// encodeReflect is the generic fallback for plain structs/maps/slices that
// do not implement [Marshaler] and are not one of the natively-understood
// shapes. Cycle detection for maps/slices/pointers already happened in
// [encoder.encode] before dispatch reached here.
func (e *encoder) encodeReflect(buf *strings.Builder, v any, path string) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		e.fail(primitive.CodeCanonicalUnsupported, path, "functions and channels are not supported at %s", path)
		buf.WriteString("null")

		return
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			buf.WriteString("null")

			return
		}

		e.encode(buf, rv.Elem().Interface(), path)
	case reflect.Struct:
		e.encodeStruct(buf, rv, path)
	case reflect.Map:
		e.encodeReflectMap(buf, rv, path)
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')

		for i := range rv.Len() {
			if i > 0 {
				buf.WriteByte(',')
			}

			e.encode(buf, rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
		}

		buf.WriteByte(']')
	default:
		e.fail(primitive.CodeCanonicalUnsupported, path, "unsupported type at %s", path)
		buf.WriteString("null")
	}
}

func (e *encoder) encodeStruct(buf *strings.Builder, rv reflect.Value, path string) {
	type field struct {
		name string
		val  any
	}

	rt := rv.Type()

	fields := make([]field, 0, rt.NumField())

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Name

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}

		if tag != "" {
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				if tag[:idx] != "" {
					name = tag[:idx]
				}
			} else {
				name = tag
			}
		}

		fields = append(fields, field{name: name, val: rv.Field(i).Interface()})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })

	buf.WriteByte('{')

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		e.encodeString(buf, f.name)
		buf.WriteByte(':')
		e.encode(buf, f.val, path+"."+f.name)
	}

	buf.WriteByte('}')
}

func (e *encoder) encodeReflectMap(buf *strings.Builder, rv reflect.Value, path string) {
	keys := rv.MapKeys()
	pairs := make([]Pair, 0, len(keys))

	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k.Interface(), Value: rv.MapIndex(k).Interface()})
	}

	if rv.Type().Key().Kind() == reflect.String {
		m := make(map[string]any, len(pairs))
		for _, p := range pairs {
			m[p.Key.(string)] = p.Value
		}

		e.encodeStringMap(buf, m, path)

		return
	}

	e.encodeAssocMap(buf, AssocMap(pairs), path)
}
