// Package goast is the one concrete [facade.ProgramFacade] this module
// ships: a host-compiler facade built against go/ast, go/types, and
// golang.org/x/tools/go/packages (spec.md §4.D). It recognizes
// "@entity"-family docblock tags on package-level type declarations,
// derives structural shape from go/types, and maps Go's optional-field
// conventions (pointer fields, "omitempty") onto spec.md's
// optional/readonly property flags since Go has no native equivalent of
// TypeScript's "?"/"readonly" modifiers.
package goast
