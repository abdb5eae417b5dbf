package corpus

import "yashubustudio/newscorpus/vader"

// LexiconScorer maps a text to a compound sentiment score in [-1, 1].
type LexiconScorer interface {
	Score(text string) (float64, error)
}

// VaderScorer scores texts with a VADER analyser.
type VaderScorer struct {
	analyzer *vader.Analyzer
}

// NewVaderScorer wraps an analyser. A nil analyser uses the embedded lexicon.
func NewVaderScorer(a *vader.Analyzer) *VaderScorer {
	if a == nil {
		a = vader.New()
	}
	return &VaderScorer{analyzer: a}
}

// Score returns the VADER compound score of text.
func (s *VaderScorer) Score(text string) (float64, error) {
	if err := ValidateTitle(text); err != nil {
		return 0, err
	}
	return s.analyzer.PolarityScores(NormalizeText(text)).Compound, nil
}
