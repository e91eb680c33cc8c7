// Package pipeline implements the coordinator of spec.md §4.J: the
// single orchestration point that drives the facade, resolver, tag
// parser, validator, IR lowerer, and cache store through one extraction
// run and assembles their output into an [ir.Program].
package pipeline
