package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flizzeri/schemaforge/facade"
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/resolve"
	"github.com/flizzeri/schemaforge/tags"
	"github.com/flizzeri/schemaforge/validate"
)

func TestValidatePKOnScalarOK(t *testing.T) {
	t.Parallel()

	diags := validate.Validate(resolve.Primitive{Kind: facade.PrimitiveString}, []tags.Annotation{tags.PK{}})
	assert.Empty(t, diags)
}

func TestValidatePKOnObjectFails(t *testing.T) {
	t.Parallel()

	diags := validate.Validate(resolve.Object{}, []tags.Annotation{tags.PK{}})

	require.Len(t, diags, 1)
	assert.Equal(t, primitive.CodeTagIncompatibleType, diags[0].Code)
}

func TestValidateIndexRequiresObjectAndFields(t *testing.T) {
	t.Parallel()

	obj := resolve.Object{Properties: []resolve.ObjectProperty{
		{Name: "email", Type: resolve.Primitive{Kind: facade.PrimitiveString}},
	}}

	diags := validate.Validate(obj, []tags.Annotation{tags.Index{Fields: []string{"email", "missing"}}})

	require.Len(t, diags, 1)
	assert.Equal(t, primitive.CodeTagFieldNotFound, diags[0].Code)
}

func TestValidateMinRequiresNumeric(t *testing.T) {
	t.Parallel()

	diags := validate.Validate(resolve.Primitive{Kind: facade.PrimitiveString}, []tags.Annotation{tags.Min{N: 1}})

	require.Len(t, diags, 1)
	assert.Equal(t, primitive.CodeTagIncompatibleType, diags[0].Code)
}

func TestValidateStringLikeAllowsArray(t *testing.T) {
	t.Parallel()

	arr := resolve.Array{Element: resolve.Primitive{Kind: facade.PrimitiveString}}
	diags := validate.Validate(arr, []tags.Annotation{tags.MinLength{N: 1}})

	assert.Empty(t, diags)
}

func TestValidateValidatorAlwaysUnsupported(t *testing.T) {
	t.Parallel()

	diags := validate.Validate(resolve.Primitive{Kind: facade.PrimitiveString}, []tags.Annotation{tags.Validator{Name: "x"}})

	require.Len(t, diags, 1)
	assert.Equal(t, primitive.CodeTagIncompatibleType, diags[0].Code)
}

func TestValidateAccumulatesMultipleViolations(t *testing.T) {
	t.Parallel()

	diags := validate.Validate(resolve.Object{}, []tags.Annotation{tags.PK{}, tags.Min{N: 1}})

	assert.Len(t, diags, 2)
}
