package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityExactAndNormalization(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"identical", "John Smith", "John Smith"},
		{"case and punctuation ignored", "John Smith", "john  smith!"},
		{"both empty", "", ""},
		{"punctuation only equals empty", "...", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1.0, Similarity(tt.a, tt.b))
		})
	}
}

func TestSimilarityKnownValues(t *testing.T) {
	t.Run("single substitution", func(t *testing.T) {
		// "smith" vs "smyth": distance 1 over length 5, no shared tokens.
		assert.InDelta(t, 0.8, Similarity("Smith", "Smyth"), 1e-9)
	})

	t.Run("token overlap bonus", func(t *testing.T) {
		// base (5-2)/5 = 0.6, one of two tokens shared adds 0.1.
		assert.InDelta(t, 0.7, Similarity("ab cd", "ab xy"), 1e-9)
	})

	t.Run("empty against non-empty", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "John"))
	})

	t.Run("initial against full name", func(t *testing.T) {
		// "j smyth" vs "john smith": distance 4 over length 10.
		assert.InDelta(t, 0.6, Similarity("J. Smyth", "John Smith"), 1e-9)
	})
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"John Smith", "Smith, John"},
		{"Jane", "completely different"},
		{"John Michael Smith", "John Smith"},
		{"ClientID: 4521", "4521"},
		{"ñ unicode ≠ stuff", "n unicode stuff"},
		{"x", "y"},
	}

	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0, "pair %q/%q", p[0], p[1])
		assert.LessOrEqual(t, got, 1.0, "pair %q/%q", p[0], p[1])
		assert.Equal(t, 1.0, Similarity(p[0], p[0]), "self similarity %q", p[0])
	}
}

func TestSimilarityRewardsSharedTokens(t *testing.T) {
	// Reordered words share all tokens; the bonus must lift the score above
	// the raw edit-distance ratio for an unrelated string of the same length.
	reordered := Similarity("John Smith", "Smith John")
	unrelated := Similarity("John Smith", "Qwer Zxcvb")
	assert.Greater(t, reordered, unrelated)
}
