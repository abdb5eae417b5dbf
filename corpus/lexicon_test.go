package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderScorer(t *testing.T) {
	s := NewVaderScorer(nil)

	neg, err := s.Score("Terrible disaster strikes")
	require.NoError(t, err)
	assert.Less(t, neg, 0.0)

	pos, err := s.Score("Good news today")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pos, 0.0)
	assert.LessOrEqual(t, pos, 1.0)

	again, err := s.Score("Good news today")
	require.NoError(t, err)
	assert.Equal(t, pos, again)
}

func TestVaderScorerInvalidInput(t *testing.T) {
	s := NewVaderScorer(nil)
	for _, text := range []string{"", "   \t", "\xff\xfe"} {
		_, err := s.Score(text)
		assert.ErrorIs(t, err, ErrInvalidInput, "%q", text)
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ABC 1", NormalizeText("  ＡＢＣ\t1 "))
	assert.Equal(t, "ab", NormalizeText("a\x00b"))
	assert.Equal(t, "", NormalizeText("\n"))
}
