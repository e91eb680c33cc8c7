package goast

import (
	"context"
	"crypto/sha256"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"runtime"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
)

// Facade implements [facade.ProgramFacade] over go/types.
type Facade struct{}

// New returns a ready-to-use Go source facade.
func New() *Facade { return &Facade{} }

// programHandle is the concrete [facade.ProgramHandle] this package hands
// back; only this package ever type-asserts into it.
type programHandle struct {
	pkgs   []*packages.Package
	digest []byte
}

func (h *programHandle) ConfigDigest() []byte   { return h.digest }
func (h *programHandle) CompilerVersion() string { return runtime.Version() }

// LoadProgram loads and type-checks every package rooted at
// opts.BasePath using go/packages, in a mode strict enough that any
// semantic difference in the input surfaces as a structurally different
// [facade.HostType] tree: syntax, types, and full dependency type info
// are all loaded (spec.md §4.D).
func (f *Facade) LoadProgram(ctx context.Context, opts facade.Options) primitive.Result[facade.ProgramHandle] {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.BasePath,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return primitive.Err[facade.ProgramHandle](primitive.NewDiagnostic(
			primitive.CodeFacadeLoadFailed, primitive.CategoryError,
			"failed to load program at %s: %s", opts.BasePath, err.Error(),
		))
	}

	var diags []primitive.Diagnostic

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			diags = append(diags, primitive.NewDiagnostic(
				primitive.CodeFacadeLoadFailed, primitive.CategoryError,
				"%s: %s", pkg.PkgPath, e.Error(),
			))
		}
	}

	if primitive.AnyError(diags) {
		return primitive.Err[facade.ProgramHandle](diags...)
	}

	digest, err := configDigest(opts.CompilerConfigPath)
	if err != nil {
		diags = append(diags, primitive.NewDiagnostic(
			primitive.CodeFacadeLoadFailed, primitive.CategoryWarning,
			"compiler config %s unreadable: %s", opts.CompilerConfigPath, err.Error(),
		))
	}

	handle := &programHandle{pkgs: pkgs, digest: digest}

	return primitive.Ok[facade.ProgramHandle](handle, diags...)
}

func configDigest(path string) ([]byte, error) {
	if path == "" {
		return []byte{}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(b)

	return sum[:], nil
}

// declaration is the concrete [facade.Declaration] this package hands
// back.
type declaration struct {
	obj     types.Object
	spec    *ast.TypeSpec
	genDecl *ast.GenDecl
	pkg     *packages.Package
}

func (d *declaration) Name() string { return d.obj.Name() }

// EnumerateDeclarationsWithTag returns every package-level type
// declaration across handle's packages whose doc comment carries a
// docblock tag named tagName, ordered by package path then declaration
// name for determinism.
func (f *Facade) EnumerateDeclarationsWithTag(handle facade.ProgramHandle, tagName string) []facade.Declaration {
	h, ok := handle.(*programHandle)
	if !ok {
		return nil
	}

	type found struct {
		pkgPath string
		decl    *declaration
	}

	var all []found

	for _, pkg := range h.pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				gd, ok := n.(*ast.GenDecl)
				if !ok || gd.Tok != token.TYPE {
					return true
				}

				for _, spec := range gd.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}

					if !hasTag(declDoc(ts, gd), tagName) {
						continue
					}

					obj := pkg.TypesInfo.Defs[ts.Name]
					if obj == nil {
						continue
					}

					all = append(all, found{
						pkgPath: pkg.PkgPath,
						decl:    &declaration{obj: obj, spec: ts, genDecl: gd, pkg: pkg},
					})
				}

				return true
			})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].pkgPath != all[j].pkgPath {
			return all[i].pkgPath < all[j].pkgPath
		}

		return all[i].decl.Name() < all[j].decl.Name()
	})

	out := make([]facade.Declaration, len(all))
	for i, a := range all {
		out[i] = a.decl
	}

	return out
}

func hasTag(doc *ast.CommentGroup, tagName string) bool {
	for _, raw := range rawTagsOf(doc) {
		if raw.Name == tagName {
			return true
		}
	}

	return false
}

// declDoc returns ts's own doc comment, falling back to gd's when ts has
// none. A grouped declaration (`type ( X struct{...} )`) attaches its doc
// to the *ast.TypeSpec; the standard single-type form (`// @entity` above
// `type X struct{...}`) attaches it to the enclosing *ast.GenDecl instead.
func declDoc(ts *ast.TypeSpec, gd *ast.GenDecl) *ast.CommentGroup {
	if ts.Doc != nil {
		return ts.Doc
	}

	return gd.Doc
}

// SymbolIDOf derives decl's stable identifier from its package path and
// name, normalized the same way every other symbol identifier in the
// pipeline is (spec.md §2).
func (f *Facade) SymbolIDOf(decl facade.Declaration) primitive.SymbolID {
	d, ok := decl.(*declaration)
	if !ok {
		return ""
	}

	return primitive.NewSymbolID(fmt.Sprintf("%s#%s", d.pkg.PkgPath, d.obj.Name()))
}

// DocblockTagsOf returns decl's raw docblock tags, sorted by tag name.
func (f *Facade) DocblockTagsOf(decl facade.Declaration) []facade.RawTag {
	d, ok := decl.(*declaration)
	if !ok {
		return nil
	}

	tags := rawTagsOf(declDoc(d.spec, d.genDecl))

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	return tags
}

// ResolveDeclaredType resolves decl's declared type to a [facade.HostType].
func (f *Facade) ResolveDeclaredType(decl facade.Declaration) primitive.Result[facade.HostType] {
	d, ok := decl.(*declaration)
	if !ok {
		return primitive.Err[facade.HostType](primitive.NewDiagnostic(
			primitive.CodeFacadeLoadFailed, primitive.CategoryError, "not a goast declaration",
		))
	}

	tn, ok := d.obj.(*types.TypeName)
	if !ok {
		return primitive.Err[facade.HostType](primitive.NewDiagnostic(
			primitive.CodeFacadeLoadFailed, primitive.CategoryError,
			"%s is not a type declaration", d.obj.Name(),
		))
	}

	return primitive.Ok[facade.HostType](wrap(tn.Type()))
}

// SpanOf returns decl's source span derived from the loaded package's
// token.FileSet.
func (f *Facade) SpanOf(decl facade.Declaration) *primitive.Span {
	d, ok := decl.(*declaration)
	if !ok {
		return nil
	}

	fset := d.pkg.Fset
	start := fset.Position(d.spec.Pos())
	end := fset.Position(d.spec.End())

	return &primitive.Span{
		File:        start.Filename,
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
}

// FindExportedSymbol looks up an exported package-level declaration by
// name across handle's packages.
func (f *Facade) FindExportedSymbol(handle facade.ProgramHandle, name string) primitive.Result[facade.Declaration] {
	h, ok := handle.(*programHandle)
	if !ok {
		return primitive.Err[facade.Declaration](primitive.NewDiagnostic(
			primitive.CodeFacadeLoadFailed, primitive.CategoryError, "not a goast handle",
		))
	}

	for _, pkg := range h.pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				gd, ok := decl.(*ast.GenDecl)
				if !ok || gd.Tok != token.TYPE {
					continue
				}

				for _, spec := range gd.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok || ts.Name.Name != name {
						continue
					}

					obj := pkg.TypesInfo.Defs[ts.Name]
					if obj == nil {
						continue
					}

					return primitive.Ok[facade.Declaration](&declaration{obj: obj, spec: ts, genDecl: gd, pkg: pkg})
				}
			}
		}
	}

	return primitive.Err[facade.Declaration](primitive.NewDiagnostic(
		primitive.CodeFacadeLoadFailed, primitive.CategoryError,
		"exported symbol %s not found", name,
	))
}
