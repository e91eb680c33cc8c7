package goast

import (
	"go/ast"
	"strings"

	"github.com/flizzeri/schemaforge/facade"
)

// rawTagsOf scans doc's lines for "@name rest-of-line" markers, the same
// docblock convention bitnami's "## @param" annotator in magicschema
// recognizes, adapted from "## @" to Go's "// @" comment syntax. A line
// with no trailing payload still produces a tag with an empty Text.
func rawTagsOf(doc *ast.CommentGroup) []facade.RawTag {
	if doc == nil {
		return nil
	}

	var tags []facade.RawTag

	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}

		rest := line[1:]

		name, text, _ := strings.Cut(rest, " ")
		tags = append(tags, facade.RawTag{
			Name: strings.TrimSpace(name),
			Text: strings.TrimSpace(text),
		})
	}

	return tags
}
