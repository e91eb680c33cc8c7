package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/ir"
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/resolve"
	"github.com/flizzeri/schemaforge/tags"
)

func sampleResolvedObject() resolve.Object {
	return resolve.Object{Properties: []resolve.ObjectProperty{
		{Name: "id", Type: resolve.Primitive{Kind: facade.PrimitiveString}},
	}}
}

func TestLowerAttachesMetadataOnlyAtRoot(t *testing.T) {
	t.Parallel()

	rt := sampleResolvedObject()

	anns := []tags.Annotation{tags.Entity{Name: "User", HasName: true}}
	span := &primitive.Span{File: "user.go", StartLine: 1}

	node := ir.Lower("pkg#User", rt, anns, span)

	require.NotNil(t, node.Metadata())
	assert.Equal(t, primitive.SymbolID("pkg#User"), node.Metadata().SymbolID)
	assert.Same(t, span, node.Metadata().Span)

	obj, ok := node.(ir.Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 1)
	assert.Nil(t, obj.Properties[0].Type.Metadata())
}

func TestLowerMirrorsShape(t *testing.T) {
	t.Parallel()

	rt := resolve.Array{Element: resolve.Primitive{Kind: facade.PrimitiveNumber}}

	node := ir.Lower("pkg#Ids", rt, nil, nil)

	arr, ok := node.(ir.Array)
	require.True(t, ok)

	elem, ok := arr.Element.(ir.Primitive)
	require.True(t, ok)
	assert.Equal(t, facade.PrimitiveNumber, elem.Kind)
}

func TestEntityNameFallsBackToLastPathSegment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "User", ir.EntityName("pkg/models#User", nil))
	assert.Equal(t, "Custom", ir.EntityName("pkg#User", []tags.Annotation{
		tags.Entity{Name: "Custom", HasName: true},
	}))
}
