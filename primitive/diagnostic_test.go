package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flizzeri/schemaforge/primitive"
)

func TestNewDiagnosticInterpolation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format string
		args   []string
		want   string
	}{
		"exact args": {
			format: "unknown tag %s on %s",
			args:   []string{"@frobnicate", "User.id"},
			want:   "unknown tag @frobnicate on User.id",
		},
		"missing trailing arg renders as placeholder": {
			format: "unknown tag %s on %s",
			args:   []string{"@frobnicate"},
			want:   "unknown tag @frobnicate on <missing>",
		},
		"no args at all": {
			format: "unknown tag %s on %s",
			args:   nil,
			want:   "unknown tag <missing> on <missing>",
		},
		"no placeholders": {
			format: "generic failure",
			args:   []string{"ignored"},
			want:   "generic failure",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d := primitive.NewDiagnostic(primitive.CodeTagUnknown, primitive.CategoryWarning, tc.format, tc.args...)
			assert.Equal(t, tc.want, d.Message)
			assert.Equal(t, primitive.CodeTagUnknown, d.Code)
			assert.Equal(t, primitive.CategoryWarning, d.Category)
		})
	}
}

func TestDiagnosticWithContextAccumulates(t *testing.T) {
	t.Parallel()

	d := primitive.NewDiagnostic(primitive.CodeTagFieldNotFound, primitive.CategoryError, "field %s missing", "email")
	d = d.WithContext("symbol", "User").WithContext("field", "email")

	assert.Equal(t, map[string]string{"symbol": "User", "field": "email"}, d.Context)
}

func TestAnyError(t *testing.T) {
	t.Parallel()

	warnOnly := []primitive.Diagnostic{
		primitive.NewDiagnostic(primitive.CodeTagUnknown, primitive.CategoryWarning, "w"),
	}
	assert.False(t, primitive.AnyError(warnOnly))

	withErr := append(warnOnly, primitive.NewDiagnostic(primitive.CodeTagMalformed, primitive.CategoryError, "e"))
	assert.True(t, primitive.AnyError(withErr))
}

func TestHelpURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, primitive.DocsBase+"/unknown-tag", primitive.HelpURL("unknown-tag"))
}
