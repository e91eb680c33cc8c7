package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/flizzeri/schemaforge/cachestore"
	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/goast"
	"github.com/flizzeri/schemaforge/ir"
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/resolve"
	"github.com/flizzeri/schemaforge/tags"
	"github.com/flizzeri/schemaforge/validate"
)

// entityTag is the docblock tag spec.md §4.D/§4.J enumerate declarations
// by.
const entityTag = "entity"

// Output is the result of a successful or failed [Extract] run.
type Output struct {
	IR          ir.Program
	Diagnostics []primitive.Diagnostic
	CacheStats  *cachestore.Stats
}

// Extract is the public entry point of spec.md §6, implementing the
// eight-step coordinator algorithm of spec.md §4.J exactly.
func Extract(ctx context.Context, opts Options, optFns ...Option) primitive.Result[Output] {
	cfg := &runConfig{facade: goast.New()}
	for _, fn := range optFns {
		fn(cfg)
	}

	var diags []primitive.Diagnostic

	// Step 1: load the program handle, propagating errors.
	handleResult := cfg.facade.LoadProgram(ctx, facade.Options{
		CompilerConfigPath: opts.CompilerConfigPath,
		BasePath:           opts.BasePath,
	})
	diags = append(diags, handleResult.Diagnostics()...)

	if handleResult.IsErr() {
		return primitive.Err[Output](diags...)
	}

	handle := handleResult.Value()

	// Step 2: initialize the cache layout; failure is non-fatal.
	var store *cachestore.Store

	if opts.UseCache {
		if s, err := cachestore.Open(filepath.Join(opts.BasePath, ".afterdarktk", "cache")); err == nil {
			store = s
		} else {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeCacheIOError, primitive.CategoryWarning,
				"cache unavailable: %s", err.Error(),
			))
		}
	}

	// Step 3: enumerate entity-tagged declarations.
	decls := cfg.facade.EnumerateDeclarationsWithTag(handle, entityTag)

	// Step 4: project each declaration into a raw symbol {id, tags}.
	type symbolWork struct {
		decl   facade.Declaration
		raw    cachestore.RawSymbolProjection
		parsed tags.ParsedAnnotations
	}

	resolveSet := tags.DefaultResolveSet()
	work := make([]symbolWork, 0, len(decls))

	// Step 5: parse annotations, accumulating diagnostics and building
	// the tag index.
	for _, decl := range decls {
		id := cfg.facade.SymbolIDOf(decl)
		rawTags := cfg.facade.DocblockTagsOf(decl)

		parsed, pd := tags.Parse(decl, rawTags, resolveSet)
		diags = append(diags, pd...)

		work = append(work, symbolWork{
			decl:   decl,
			raw:    cachestore.RawSymbolProjection{ID: id, Tags: rawTags},
			parsed: parsed,
		})
	}

	resolver := resolve.NewResolver()
	program := ir.NewProgram()

	// Step 6: process each entity-tagged symbol.
	for i, w := range work {
		if err := ctx.Err(); err != nil {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeTypeUnresolved, primitive.CategoryError, "extraction canceled",
			))

			return primitive.Err[Output](diags...)
		}

		node, span, symDiags := processSymbol(ctx, cfg, store, handle, resolver, w.decl, w.raw, w.parsed, opts.CompilerConfigPath)
		diags = append(diags, symDiags...)
		cfg.metrics.observeDiagnostics(symDiags)

		if node != nil {
			program.Nodes[w.raw.ID] = node
			program.Entities[w.raw.ID] = ir.Entity{
				SymbolID:    w.raw.ID,
				Name:        ir.EntityName(w.raw.ID, w.parsed.Annotations),
				Node:        node,
				Span:        span,
				Annotations: w.parsed.Annotations,
			}
		}

		if cfg.progressHook != nil {
			cfg.progressHook(i+1, len(work))
		}

		if cfg.metrics != nil {
			cfg.metrics.SymbolsProcessed.Inc()
		}
	}

	var stats *cachestore.Stats
	if store != nil {
		s := store.Stats
		stats = &s

		if cfg.metrics != nil {
			cfg.metrics.CacheHits.Add(float64(s.Hits))
			cfg.metrics.CacheMisses.Add(float64(s.Misses))
			cfg.metrics.CacheWrites.Add(float64(s.Writes))
		}
	}

	out := Output{IR: program, Diagnostics: diags, CacheStats: stats}

	// Step 8: escalate if any accumulated diagnostic is error-category.
	if primitive.AnyError(diags) {
		return primitive.Err[Output](diags...)
	}

	return primitive.Ok(out)
}

// processSymbol implements steps 6a-6g for one entity-tagged symbol.
func processSymbol(
	ctx context.Context,
	cfg *runConfig,
	store *cachestore.Store,
	handle facade.ProgramHandle,
	resolver *resolve.Resolver,
	decl facade.Declaration,
	raw cachestore.RawSymbolProjection,
	parsed tags.ParsedAnnotations,
	compilerConfigPath string,
) (ir.Node, *primitive.Span, []primitive.Diagnostic) {
	var diags []primitive.Diagnostic

	// 6a: compute the fingerprint over the raw symbol + options + host
	// version.
	var fingerprint string

	if store != nil {
		fp, fd := cachestore.Fingerprint(raw, compilerConfigPath, handle.CompilerVersion())
		diags = append(diags, fd...)
		fingerprint = fp
	}

	span := cfg.facade.SpanOf(decl)

	// 6b: try a cache read.
	if store != nil {
		payload, hit, rd := store.ReadIR(fingerprint)
		diags = append(diags, rd...)

		if hit {
			node, err := ir.FromCanonValue(payload)
			if err == nil {
				return node, span, diags
			}

			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeCacheCorrupted, primitive.CategoryWarning,
				"cached IR for %s could not be decoded: %s", string(raw.ID), err.Error(),
			))
		}
	}

	// 6c: find the declaration by trailing name segment, resolve its
	// type.
	name := lastSegment(string(raw.ID))

	declResult := cfg.facade.FindExportedSymbol(handle, name)
	diags = append(diags, declResult.Diagnostics()...)

	target := decl
	if !declResult.IsErr() {
		target = declResult.Value()
	}

	typeResult := cfg.facade.ResolveDeclaredType(target)
	diags = append(diags, typeResult.Diagnostics()...)

	if typeResult.IsErr() {
		return nil, span, diags
	}

	resolvedResult := resolver.Resolve(ctx, typeResult.Value())
	diags = append(diags, resolvedResult.Diagnostics()...)

	resolvedType := resolvedResult.Value()

	// 6d: validate annotations against the resolved type.
	diags = append(diags, validate.Validate(resolvedType, parsed.Annotations)...)

	// 6e: lower to IR.
	node := ir.Lower(raw.ID, resolvedType, parsed.Annotations, span)

	// 6f: canonical-encode and hash, then write the envelope.
	if store != nil {
		canonValue, ok := node.CanonValue().(map[string]any)
		if ok {
			diags = append(diags, store.WriteIR(fingerprint, canonValue)...)
		}
	}

	return node, span, diags
}

// lastSegment returns the trailing path/member segment of a symbol ID
// ("pkg/models#User" -> "User"), mirroring [ir.EntityName]'s fallback.
func lastSegment(symbolID string) string {
	if idx := strings.LastIndexAny(symbolID, "#/"); idx >= 0 {
		return symbolID[idx+1:]
	}

	return symbolID
}
