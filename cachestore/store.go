package cachestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/flizzeri/schemaforge/digest"
	"github.com/flizzeri/schemaforge/primitive"
)

// Stats accumulates cache outcomes for one pipeline run.
type Stats struct {
	Hits   int
	Misses int
	Writes int
}

// Store wraps the on-disk cache root of spec.md §4.I, laid out as
// <root>/{ir,symbols,indexes}/<fingerprint>.json.
type Store struct {
	root   string
	irDir  string
	symDir string
	idxDir string

	Stats Stats
}

// Open prepares the cache directory layout under root, creating the
// three subdirectories if absent. Failure is always non-fatal to the
// caller (spec.md §4.J step 2): the pipeline continues cache-less.
func Open(root string) (*Store, error) {
	s := &Store{
		root:   root,
		irDir:  filepath.Join(root, "ir"),
		symDir: filepath.Join(root, "symbols"),
		idxDir: filepath.Join(root, "indexes"),
	}

	for _, dir := range []string{s.irDir, s.symDir, s.idxDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cachestore: create %s: %w", dir, err)
		}
	}

	return s, nil
}

// ReadIR reads a cached IR node's canonical value by fingerprint.
func (s *Store) ReadIR(fingerprint string) (map[string]any, bool, []primitive.Diagnostic) {
	return readEnvelope[map[string]any](s, s.irDir, fingerprint)
}

// WriteIR writes an IR node's canonical value under fingerprint.
func (s *Store) WriteIR(fingerprint string, payload map[string]any) []primitive.Diagnostic {
	return writeEnvelope(s, s.irDir, fingerprint, payload)
}

// ReadSymbols reads a cached raw symbol projection by fingerprint.
func (s *Store) ReadSymbols(fingerprint string) (RawSymbolProjection, bool, []primitive.Diagnostic) {
	return readEnvelope[RawSymbolProjection](s, s.symDir, fingerprint)
}

// WriteSymbols writes a raw symbol projection under fingerprint.
func (s *Store) WriteSymbols(fingerprint string, payload RawSymbolProjection) []primitive.Diagnostic {
	return writeEnvelope(s, s.symDir, fingerprint, payload)
}

// TagIndexEntry is the cached shape of a symbol's parsed-tag index
// (spec.md §4.J step 5): the resolved tag names, for fast
// tag-applicability lookups without re-parsing docblocks.
type TagIndexEntry struct {
	SymbolID     primitive.SymbolID `json:"symbolId"`
	ResolvedTags []string           `json:"resolvedTags"`
}

// ReadIndexes reads a cached tag-index entry by fingerprint.
func (s *Store) ReadIndexes(fingerprint string) (TagIndexEntry, bool, []primitive.Diagnostic) {
	return readEnvelope[TagIndexEntry](s, s.idxDir, fingerprint)
}

// WriteIndexes writes a tag-index entry under fingerprint.
func (s *Store) WriteIndexes(fingerprint string, payload TagIndexEntry) []primitive.Diagnostic {
	return writeEnvelope(s, s.idxDir, fingerprint, payload)
}

func envelopePath(dir, fingerprint string) string {
	return filepath.Join(dir, fingerprint+".json")
}

// readEnvelope reads and verifies the envelope at dir/fingerprint.json.
// Any structural problem -- malformed JSON, wrong version, wrong
// algorithm, or a checksum mismatch -- downgrades to a recorded miss plus
// a cache-corrupted diagnostic rather than an error, per spec.md §5 and
// §7; a file that cannot be read at all (absent or otherwise) is a
// recorded miss with no diagnostic.
func readEnvelope[T any](s *Store, dir, fingerprint string) (T, bool, []primitive.Diagnostic) {
	var zero T

	b, err := os.ReadFile(envelopePath(dir, fingerprint))
	if err != nil {
		s.Stats.Misses++

		return zero, false, nil
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(b, &env); err != nil {
		s.Stats.Misses++

		return zero, false, []primitive.Diagnostic{corruptedDiagnostic(fingerprint, "malformed envelope JSON")}
	}

	if env.V != envelopeVersion {
		s.Stats.Misses++

		return zero, false, []primitive.Diagnostic{corruptedDiagnostic(fingerprint, "unsupported envelope version")}
	}

	if env.Algo != envelopeAlgo {
		s.Stats.Misses++

		return zero, false, []primitive.Diagnostic{corruptedDiagnostic(fingerprint, "unsupported envelope algorithm")}
	}

	var payload T
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		s.Stats.Misses++

		return zero, false, []primitive.Diagnostic{corruptedDiagnostic(fingerprint, "malformed envelope payload")}
	}

	sum, diags := digest.Hash(payloadAsAny(payload))
	if sum != env.Checksum {
		s.Stats.Misses++

		return zero, false, append(diags, corruptedDiagnostic(fingerprint, "checksum mismatch"))
	}

	s.Stats.Hits++

	return payload, true, diags
}

// payloadAsAny round-trips payload through json.Marshal/Unmarshal into a
// generic any so its recomputed checksum matches the one computed at
// write time from the same canonical shape, regardless of T's concrete
// Go type.
func payloadAsAny(payload any) any {
	b, err := json.Marshal(payload)
	if err != nil {
		return payload
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return payload
	}

	return v
}

func corruptedDiagnostic(fingerprint, reason string) primitive.Diagnostic {
	return primitive.NewDiagnostic(
		primitive.CodeCacheCorrupted,
		primitive.CategoryWarning,
		"cache entry %s corrupted: %s",
		fingerprint, reason,
	).WithHelpURL("cache-corrupted")
}

// writeEnvelope atomically writes payload wrapped in an [Envelope] to
// dir/fingerprint.json: write to a uniquely-named tmp file in dir, then
// rename over the final name. The tmp file is removed on any failure.
func writeEnvelope[T any](s *Store, dir, fingerprint string, payload T) []primitive.Diagnostic {
	checksum, diags := digest.Hash(payloadAsAny(payload))
	if primitive.AnyError(diags) {
		return diags
	}

	env := Envelope[T]{V: envelopeVersion, Algo: envelopeAlgo, Checksum: checksum, Payload: payload}

	b, err := json.Marshal(env)
	if err != nil {
		return append(diags, ioDiagnostic(fingerprint, err))
	}

	tmpName := fmt.Sprintf("%s.%d.%d.%s.tmp", fingerprint, os.Getpid(), time.Now().UnixMilli(), uuid.New().String())
	tmpPath := filepath.Join(dir, tmpName)

	if err := os.WriteFile(tmpPath, b, 0o644); err != nil {
		_ = os.Remove(tmpPath)

		return append(diags, ioDiagnostic(fingerprint, err))
	}

	if err := os.Rename(tmpPath, envelopePath(dir, fingerprint)); err != nil {
		_ = os.Remove(tmpPath)

		return append(diags, ioDiagnostic(fingerprint, err))
	}

	s.Stats.Writes++

	return diags
}

func ioDiagnostic(fingerprint string, err error) primitive.Diagnostic {
	return primitive.NewDiagnostic(
		primitive.CodeCacheIOError,
		primitive.CategoryWarning,
		"cache write for %s failed: %s",
		fingerprint, err.Error(),
	)
}
