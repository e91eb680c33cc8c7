package digest

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/flizzeri/schemaforge/canon"
	"github.com/flizzeri/schemaforge/primitive"
)

// Hash returns the lowercase hex SHA-256 digest of v's canonical encoding.
// It propagates [canon.Encode]'s diagnostics unchanged; callers should
// check [primitive.AnyError] before trusting the digest of a value whose
// encoding failed.
func Hash(v any, opts ...canon.Option) (string, []primitive.Diagnostic) {
	b, diags := canon.Encode(v, opts...)

	sum := sha256.Sum256(b)

	return hex.EncodeToString(sum[:]), diags
}
