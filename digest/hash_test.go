package digest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flizzeri/schemaforge/digest"
)

// Golden vectors pinned from spec.md §8.
func TestHashGoldenVectors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value any
		want  string
	}{
		"empty object": {
			value: map[string]any{},
			want:  "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a",
		},
		"empty array": {
			value: []any{},
			want:  "4f53cda18c2baa0c0354bb5f9a3ecbe5ed12ab4d8e11ba873c2f11161202b945",
		},
		"a=1": {
			value: map[string]any{"a": 1},
			want:  "015abd7f5cc57a2dd94b7590f04ad8084273905ee33ec5cebeae62276a97f862",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, diags := digest.Hash(tc.value)
			require.Empty(t, diags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	t.Parallel()

	v := map[string]any{"z": 1, "a": []any{1, 2, 3}}

	first, _ := digest.Hash(v)
	second, _ := digest.Hash(v)
	assert.Equal(t, first, second)
}

func TestHashSensitiveToContent(t *testing.T) {
	t.Parallel()

	a, _ := digest.Hash(map[string]any{"a": 1})
	b, _ := digest.Hash(map[string]any{"a": 2})
	assert.NotEqual(t, a, b)
}
