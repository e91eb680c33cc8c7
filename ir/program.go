package ir

import (
	"strings"

	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/tags"
)

// Entity is one lowered, entity-tagged declaration.
type Entity struct {
	SymbolID    primitive.SymbolID
	Name        string
	Node        Node
	Span        *primitive.Span
	Annotations []tags.Annotation
}

// Program is the assembled extraction output: every entity plus the
// flat node index the pipeline built while lowering them. Map
// iteration order never affects hashing -- [canon.Encode] sorts keys.
type Program struct {
	Entities map[primitive.SymbolID]Entity
	Nodes    map[primitive.SymbolID]Node
}

// NewProgram returns an empty Program ready for entities to be added.
func NewProgram() Program {
	return Program{
		Entities: make(map[primitive.SymbolID]Entity),
		Nodes:    make(map[primitive.SymbolID]Node),
	}
}

// EntityName derives an entity's display name per spec.md §4.H: the
// entity annotation's explicit name if present, else the symbol's last
// path segment.
func EntityName(symbolID primitive.SymbolID, anns []tags.Annotation) string {
	for _, a := range anns {
		if e, ok := a.(tags.Entity); ok && e.HasName {
			return e.Name
		}
	}

	s := string(symbolID)
	if idx := strings.LastIndexAny(s, "#/"); idx >= 0 {
		return s[idx+1:]
	}

	return s
}
