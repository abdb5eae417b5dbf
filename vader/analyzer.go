// Package vader implements the VADER rule-based sentiment analyser.
//
// The lexicon ships embedded; LoadLexicon replaces it with a full
// vader_lexicon.txt style file (word, mean, std, raw ratings; tab separated).
package vader

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

//go:embed vader_lexicon.txt
var embeddedLexicon string

// Scores holds the polarity proportions and the normalised compound score.
type Scores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Analyzer scores text against a read-only valence lexicon. It holds no
// mutable state and may be shared.
type Analyzer struct {
	lexicon map[string]float64
}

// New returns an analyser backed by the embedded lexicon.
func New() *Analyzer {
	lex, err := ParseLexicon(strings.NewReader(embeddedLexicon))
	if err != nil {
		panic(fmt.Sprintf("vader: embedded lexicon: %v", err))
	}
	return &Analyzer{lexicon: lex}
}

// NewWithLexicon returns an analyser using the given word → valence map.
func NewWithLexicon(lexicon map[string]float64) *Analyzer {
	lex := make(map[string]float64, len(lexicon))
	for k, v := range lexicon {
		lex[strings.ToLower(k)] = v
	}
	return &Analyzer{lexicon: lex}
}

// LoadLexicon reads a lexicon file from disk.
func LoadLexicon(path string) (*Analyzer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	lex, err := ParseLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return &Analyzer{lexicon: lex}, nil
}

// ParseLexicon parses tab separated "word<TAB>mean[...]" lines. Blank lines and
// lines starting with '#' are ignored.
func ParseLexicon(r io.Reader) (map[string]float64, error) {
	lex := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected word and valence", line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		lex[strings.ToLower(strings.TrimSpace(fields[0]))] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}

// Size returns the number of lexicon entries.
func (a *Analyzer) Size() int {
	return len(a.lexicon)
}

// PolarityScores scores text. Positive compound values are favourable.
func (a *Analyzer) PolarityScores(text string) Scores {
	words := wordsAndEmoticons(text)
	capsDiff := allCapsDifferential(words)

	sentiments := make([]float64, 0, len(words))
	for i, item := range words {
		lower := strings.ToLower(item)
		if _, ok := boosters[lower]; ok {
			sentiments = append(sentiments, 0)
			continue
		}
		if i < len(words)-1 && lower == "kind" && strings.ToLower(words[i+1]) == "of" {
			sentiments = append(sentiments, 0)
			continue
		}
		sentiments = append(sentiments, a.valence(words, i, capsDiff))
	}
	butCheck(words, sentiments)
	return scoreValence(sentiments, text)
}

func (a *Analyzer) valence(words []string, i int, capsDiff bool) float64 {
	item := words[i]
	v, ok := a.lexicon[strings.ToLower(item)]
	if !ok {
		return 0
	}
	if isUpper(item) && capsDiff {
		if v > 0 {
			v += capsIncr
		} else {
			v -= capsIncr
		}
	}
	for start := 0; start < 3; start++ {
		if i <= start {
			continue
		}
		prev := words[i-(start+1)]
		if _, inLex := a.lexicon[strings.ToLower(prev)]; inLex {
			continue
		}
		s := scalarIncDec(prev, v, capsDiff)
		switch {
		case start == 1 && s != 0:
			s *= 0.95
		case start == 2 && s != 0:
			s *= 0.9
		}
		v += s
		v = negationCheck(v, words, start, i)
		if start == 2 {
			v = idiomsCheck(v, words, i)
		}
	}
	return a.leastCheck(v, words, i)
}

func (a *Analyzer) leastCheck(v float64, words []string, i int) float64 {
	if i == 0 {
		return v
	}
	prev := strings.ToLower(words[i-1])
	if prev != "least" {
		return v
	}
	if _, inLex := a.lexicon[prev]; inLex {
		return v
	}
	if i > 1 {
		before := strings.ToLower(words[i-2])
		if before == "at" || before == "very" {
			return v
		}
	}
	return v * negScalar
}

func negationCheck(v float64, words []string, start, i int) float64 {
	lower := func(k int) string { return strings.ToLower(words[k]) }
	switch start {
	case 0:
		if isNegation(lower(i - 1)) {
			v *= negScalar
		}
	case 1:
		switch {
		case lower(i-2) == "never" && (lower(i-1) == "so" || lower(i-1) == "this"):
			v *= 1.25
		case lower(i-2) == "without" && lower(i-1) == "doubt":
		case isNegation(lower(i - 2)):
			v *= negScalar
		}
	case 2:
		switch {
		case lower(i-3) == "never" && (lower(i-2) == "so" || lower(i-2) == "this" || lower(i-1) == "so" || lower(i-1) == "this"):
			v *= 1.25
		case lower(i-3) == "without" && (lower(i-2) == "doubt" || lower(i-1) == "doubt"):
		case isNegation(lower(i - 3)):
			v *= negScalar
		}
	}
	return v
}

// idiomsCheck is only reached with i >= 3.
func idiomsCheck(v float64, words []string, i int) float64 {
	lw := make([]string, len(words))
	for k, w := range words {
		lw[k] = strings.ToLower(w)
	}
	oneZero := lw[i-1] + " " + lw[i]
	twoOneZero := lw[i-2] + " " + lw[i-1] + " " + lw[i]
	twoOne := lw[i-2] + " " + lw[i-1]
	threeTwoOne := lw[i-3] + " " + lw[i-2] + " " + lw[i-1]
	threeTwo := lw[i-3] + " " + lw[i-2]

	for _, seq := range []string{oneZero, twoOneZero, twoOne, threeTwoOne, threeTwo} {
		if iv, ok := specialIdioms[seq]; ok {
			v = iv
			break
		}
	}
	if len(lw)-1 > i {
		if iv, ok := specialIdioms[lw[i]+" "+lw[i+1]]; ok {
			v = iv
		}
	}
	if len(lw)-1 > i+1 {
		if iv, ok := specialIdioms[lw[i]+" "+lw[i+1]+" "+lw[i+2]]; ok {
			v = iv
		}
	}
	for _, ngram := range []string{threeTwoOne, threeTwo, twoOne} {
		if b, ok := boosters[ngram]; ok {
			v += b
		}
	}
	return v
}

// butCheck dampens sentiment before a contrastive "but" and boosts it after.
func butCheck(words []string, sentiments []float64) {
	for bi, w := range words {
		if strings.ToLower(w) != "but" {
			continue
		}
		for si := range sentiments {
			switch {
			case si < bi:
				sentiments[si] *= 0.5
			case si > bi:
				sentiments[si] *= 1.5
			}
		}
	}
}

func scoreValence(sentiments []float64, text string) Scores {
	if len(sentiments) == 0 {
		return Scores{}
	}
	sum := floats.Sum(sentiments)
	emphasis := punctuationEmphasis(text)
	switch {
	case sum > 0:
		sum += emphasis
	case sum < 0:
		sum -= emphasis
	}
	compound := normalize(sum)

	var pos, neg float64
	neu := 0
	for _, s := range sentiments {
		switch {
		case s > 0:
			pos += s + 1
		case s < 0:
			neg += s - 1
		default:
			neu++
		}
	}
	switch {
	case pos > math.Abs(neg):
		pos += emphasis
	case pos < math.Abs(neg):
		neg -= emphasis
	}
	total := pos + math.Abs(neg) + float64(neu)
	if total == 0 {
		return Scores{Compound: scalar.Round(compound, 4)}
	}
	return Scores{
		Positive: scalar.Round(math.Abs(pos/total), 3),
		Negative: scalar.Round(math.Abs(neg/total), 3),
		Neutral:  scalar.Round(float64(neu)/total, 3),
		Compound: scalar.Round(compound, 4),
	}
}

func normalize(score float64) float64 {
	n := score / math.Sqrt(score*score+alpha)
	return math.Max(-1, math.Min(1, n))
}

func punctuationEmphasis(text string) float64 {
	ep := strings.Count(text, "!")
	if ep > 4 {
		ep = 4
	}
	amp := float64(ep) * 0.292
	qm := strings.Count(text, "?")
	switch {
	case qm > 3:
		amp += 0.96
	case qm > 1:
		amp += float64(qm) * 0.18
	}
	return amp
}

// wordsAndEmoticons splits on whitespace and strips surrounding punctuation
// from words while keeping emoticons such as ":)" intact.
func wordsAndEmoticons(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		stripped := strings.TrimFunc(f, unicode.IsPunct)
		if len([]rune(stripped)) > 2 {
			f = stripped
		}
		if len([]rune(f)) <= 1 {
			continue
		}
		out = append(out, f)
	}
	return out
}
