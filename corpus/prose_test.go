package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProseRecognizerFindsPlace(t *testing.T) {
	rec, err := newProseRecognizer(nil)
	require.NoError(t, err)
	ents, err := rec.Recognize(context.Background(), "Lebron James plays basketball in Los Angeles.")
	require.NoError(t, err)
	assert.Contains(t, ents, Entity{Text: "Los Angeles", Label: "GPE"})
}

func TestProseRecognizerReusesModel(t *testing.T) {
	rec, err := newProseRecognizer(nil)
	require.NoError(t, err)
	require.NotNil(t, rec.model)
	model := rec.model
	for i := 0; i < 3; i++ {
		_, err := rec.Recognize(context.Background(), "Obama visits Paris and London")
		require.NoError(t, err)
	}
	assert.Same(t, model, rec.model)
}

func TestProseHeadlineLocations(t *testing.T) {
	rec, err := newProseRecognizer(nil)
	require.NoError(t, err)
	m := NewModelScorer(rec, nil, nil, ModelScorerOptions{})

	cases := []struct {
		title string
		want  []string
	}{
		{"Good news today", []string{}},
		{"Terrible disaster strikes", []string{}},
		{"Calm day in Paris", []string{"Paris"}},
		{"Kerry to go to Paris in gesture of sympathy", []string{"Paris"}},
		{"Bernie supporters on Twitter erupt in anger against the DNC: 'We tried to warn you!'", []string{}},
	}
	titles := make([]string, len(cases))
	for i, tc := range cases {
		titles[i] = tc.title
	}
	got, err := m.ScoreBatch(context.Background(), titles)
	require.NoError(t, err)
	require.Len(t, got, len(cases))
	for i, tc := range cases {
		assert.Equal(t, tc.want, got[i].Entities, tc.title)
	}
}

func TestProseRecognizerCancelled(t *testing.T) {
	rec, err := newProseRecognizer(nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rec.Recognize(ctx, "Paris")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFirstWordStart(t *testing.T) {
	assert.Equal(t, 0, firstWordStart("Paris"))
	assert.Equal(t, 2, firstWordStart(`"'Calm`))
	assert.Equal(t, -1, firstWordStart(" !"))
}
