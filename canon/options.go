package canon

// NonFinitePolicy controls how NaN/+Inf/-Inf floats encode.
type NonFinitePolicy int

const (
	// NonFiniteReject fails encoding of a non-finite float (default).
	NonFiniteReject NonFinitePolicy = iota
	// NonFiniteAsString encodes NaN/Infinity/-Infinity as the matching
	// quoted string.
	NonFiniteAsString
	// NonFiniteAsNull encodes any non-finite float as JSON null.
	NonFiniteAsNull
)

// BigIntPolicy controls how arbitrary-precision integers ([math/big.Int])
// encode.
type BigIntPolicy int

const (
	// BigIntAsDecimalString encodes the value as a quoted base-10 string
	// (default).
	BigIntAsDecimalString BigIntPolicy = iota
	// BigIntReject fails encoding of any [math/big.Int].
	BigIntReject
	// BigIntAsSafeIntegerOrReject encodes as a bare JSON number when the
	// value fits in the IEEE-754 safe integer range (±2^53-1), and fails
	// otherwise.
	BigIntAsSafeIntegerOrReject
)

// TemporalPolicy controls how [time.Time] values encode.
type TemporalPolicy int

const (
	// TemporalISOUTC encodes as an ISO-8601 string in UTC (default).
	TemporalISOUTC TemporalPolicy = iota
	// TemporalEpochMillis encodes as a bare integer of Unix milliseconds.
	TemporalEpochMillis
)

// BinaryPolicy controls how []byte buffers encode.
type BinaryPolicy int

const (
	// BinaryBase64 encodes as a base64 string (default).
	BinaryBase64 BinaryPolicy = iota
	// BinaryIntArray encodes as a JSON array of byte values.
	BinaryIntArray
)

// UndefinedFieldPolicy controls how [Undefined] values in object fields
// encode. [Undefined] in array positions is unaffected by this policy:
// it always emits null, preserving index positions.
type UndefinedFieldPolicy int

const (
	// UndefinedOmit drops the field entirely (default).
	UndefinedOmit UndefinedFieldPolicy = iota
	// UndefinedAsNull emits the field with a JSON null value.
	UndefinedAsNull
	// UndefinedReject fails encoding when any object field is undefined.
	UndefinedReject
)

// config holds the resolved policy set for one [Encode] call.
type config struct {
	nonFinite NonFinitePolicy
	bigInt    BigIntPolicy
	temporal  TemporalPolicy
	binary    BinaryPolicy
	undefined UndefinedFieldPolicy
}

func defaultConfig() config {
	return config{
		nonFinite: NonFiniteReject,
		bigInt:    BigIntAsDecimalString,
		temporal:  TemporalISOUTC,
		binary:    BinaryBase64,
		undefined: UndefinedOmit,
	}
}

// Option configures one policy knob of [Encode].
type Option func(*config)

// WithNonFinitePolicy sets the policy for NaN/Infinity/-Infinity floats.
func WithNonFinitePolicy(p NonFinitePolicy) Option {
	return func(c *config) { c.nonFinite = p }
}

// WithBigIntPolicy sets the policy for [math/big.Int] values.
func WithBigIntPolicy(p BigIntPolicy) Option {
	return func(c *config) { c.bigInt = p }
}

// WithTemporalPolicy sets the policy for [time.Time] values.
func WithTemporalPolicy(p TemporalPolicy) Option {
	return func(c *config) { c.temporal = p }
}

// WithBinaryPolicy sets the policy for []byte buffers.
func WithBinaryPolicy(p BinaryPolicy) Option {
	return func(c *config) { c.binary = p }
}

// WithUndefinedFieldPolicy sets the policy for [Undefined] object fields.
func WithUndefinedFieldPolicy(p UndefinedFieldPolicy) Option {
	return func(c *config) { c.undefined = p }
}
