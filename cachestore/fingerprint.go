package cachestore

import (
	"os"

	"github.com/flizzeri/schemaforge/digest"
	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

// missingTSConfig is the literal sentinel hashed in place of the
// compiler-options file contents when tsconfigPath is empty or unreadable
// (spec.md §3).
const missingTSConfig = "<missing>"

// RawSymbolProjection is the `{id, tags}` projection of a declaration
// (spec.md §4.J step 4) that the fingerprint's content component hashes.
type RawSymbolProjection struct {
	ID   primitive.SymbolID `json:"id"`
	Tags []facade.RawTag    `json:"tags"`
}

// Fingerprint computes the 64-hex-character cache key of spec.md §3: a
// digest over {v:1, content, tsconfig, tsVersion} where content is the
// hash of raw, tsconfig is the hash of the compiler-options file's
// contents (or the sentinel "<missing>"), and tsVersion is the
// host-compiler version string.
func Fingerprint(raw RawSymbolProjection, tsconfigPath, tsVersion string) (string, []primitive.Diagnostic) {
	var diags []primitive.Diagnostic

	content, d := digest.Hash(raw)
	diags = append(diags, d...)

	tsconfigText := missingTSConfig

	if tsconfigPath != "" {
		b, err := os.ReadFile(tsconfigPath)
		if err == nil {
			tsconfigText = string(b)
		}
	}

	tsconfig, d := digest.Hash(tsconfigText)
	diags = append(diags, d...)

	fp, d := digest.Hash(map[string]any{
		"v":        1,
		"content":  content,
		"tsconfig": tsconfig,
		"tsVersion": tsVersion,
	})
	diags = append(diags, d...)

	return fp, diags
}
