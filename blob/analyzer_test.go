package blob

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	a := New()
	tests := []struct {
		name      string
		text      string
		wantPol   float64
		wantSubj  float64
		wantCount int
	}{
		{"single positive", "A good day", 0.7, 0.6, 1},
		{"single negative", "Terrible disaster strikes", -1.0, 1.0, 1},
		{"negated", "This is not good", -0.35, 0.6, 1},
		{"contraction negated", "It isn't good", -0.35, 0.6, 1},
		{"intensified", "very good news", 0.91, 0.78, 1},
		{"mean of two", "good and bad", 0.0, 0.6335, 2},
		{"no lexicon words", "Committee meets on Tuesday", 0, 0, 0},
		{"empty", "", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			assert.InDelta(t, tt.wantPol, got.Polarity, 1e-9)
			assert.InDelta(t, tt.wantSubj, got.Subjectivity, 1e-9)
			assert.Equal(t, tt.wantCount, got.Assessments)
		})
	}
}

func TestAnalyzeBounds(t *testing.T) {
	got := New().Analyze("extremely extremely perfect, absolutely wonderful")
	assert.LessOrEqual(t, got.Polarity, 1.0)
	assert.LessOrEqual(t, got.Subjectivity, 1.0)
	assert.GreaterOrEqual(t, got.Subjectivity, 0.0)
}

func TestNewWithLexiconDefaultsIntensity(t *testing.T) {
	a := NewWithLexicon(map[string]Entry{"Sunny": {Polarity: 0.5, Subjectivity: 0.2}})
	got := a.Analyze("sunny")
	assert.Equal(t, 0.5, got.Polarity)
	assert.Equal(t, 1, got.Assessments)
}

func TestParseLexicon(t *testing.T) {
	lex, err := ParseLexicon(strings.NewReader("# c\ngood\t0.7\t0.6\nvery\t0.2\t0.3\t1.3\n"))
	require.NoError(t, err)
	assert.Equal(t, Entry{Polarity: 0.7, Subjectivity: 0.6, Intensity: 1}, lex["good"])
	assert.Equal(t, 1.3, lex["very"].Intensity)

	_, err = ParseLexicon(strings.NewReader("good\t0.7\n"))
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"it", "isn't", "paris"}, Tokenize("It isn’t Paris!"))
}
