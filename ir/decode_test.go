package ir_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/ir"
)

// roundTrip simulates what a cache read actually sees: CanonValue()
// serialized to JSON and back into a generic any, the same path a
// payload takes through the disk cache.
func roundTrip(t *testing.T, n ir.Node) any {
	t.Helper()

	b, err := json.Marshal(n.CanonValue())
	require.NoError(t, err)

	var v any
	require.NoError(t, json.Unmarshal(b, &v))

	return v
}

func TestFromCanonValueRoundTripsObject(t *testing.T) {
	t.Parallel()

	node := ir.Lower("pkg#User", sampleResolvedObject(), nil, nil)

	decoded, err := ir.FromCanonValue(roundTrip(t, node))
	require.NoError(t, err)

	obj, ok := decoded.(ir.Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 1)
	assert.Equal(t, "id", obj.Properties[0].Name)
	assert.Nil(t, obj.Metadata())

	prop, ok := obj.Properties[0].Type.(ir.Primitive)
	require.True(t, ok)
	assert.Equal(t, facade.PrimitiveString, prop.Kind)
}

func TestFromCanonValueRejectsUnrecognizedKind(t *testing.T) {
	t.Parallel()

	_, err := ir.FromCanonValue(map[string]any{"kind": "bogus"})
	assert.Error(t, err)
}
