package primitive_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flizzeri/schemaforge/primitive"
)

func TestResultOkErr(t *testing.T) {
	t.Parallel()

	ok := primitive.Ok(42)
	assert.False(t, ok.IsErr())
	assert.Equal(t, 42, ok.Value())
	assert.Empty(t, ok.Diagnostics())

	warn := primitive.NewDiagnostic(primitive.CodeTagUnknown, primitive.CategoryWarning, "heads up")
	okWithWarn := primitive.Ok(7, warn)
	assert.False(t, okWithWarn.IsErr())
	assert.Equal(t, []primitive.Diagnostic{warn}, okWithWarn.Diagnostics())

	errDiag := primitive.NewDiagnostic(primitive.CodeTypeUnsupported, primitive.CategoryError, "nope")
	failed := primitive.Err[int](errDiag)
	assert.True(t, failed.IsErr())
	assert.Equal(t, 0, failed.Value())
	assert.Equal(t, []primitive.Diagnostic{errDiag}, failed.Diagnostics())
}

func TestMapPreservesDiagnosticsAndErrState(t *testing.T) {
	t.Parallel()

	okResult := primitive.Ok(3)
	mapped := primitive.Map(okResult, strconv.Itoa)
	assert.False(t, mapped.IsErr())
	assert.Equal(t, "3", mapped.Value())

	errDiag := primitive.NewDiagnostic(primitive.CodeTypeUnsupported, primitive.CategoryError, "nope")
	errResult := primitive.Err[int](errDiag)
	mappedErr := primitive.Map(errResult, strconv.Itoa)
	assert.True(t, mappedErr.IsErr())
	assert.Equal(t, "", mappedErr.Value())
	assert.Equal(t, []primitive.Diagnostic{errDiag}, mappedErr.Diagnostics())
}
