// Package blob scores polarity and subjectivity with a pattern-style
// adjective lexicon: each known word contributes an assessment, intensifiers
// scale the word that follows them and negations flip it at half strength.
package blob

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

//go:embed en_sentiment.tsv
var embeddedLexicon string

// negationScale is applied to the polarity of a negated assessment.
const negationScale = -0.5

var (
	tokenRE   = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)?`)
	negations = map[string]struct{}{"not": {}, "never": {}, "no": {}, "without": {}}
)

// Entry is one lexicon word. Words with Intensity other than 1 are modifiers.
type Entry struct {
	Polarity     float64
	Subjectivity float64
	Intensity    float64
}

func (e Entry) modifier() bool {
	return e.Intensity != 1
}

// Sentiment is the averaged assessment of a text.
type Sentiment struct {
	Polarity     float64
	Subjectivity float64
	Assessments  int
}

// Analyzer is read-only after construction.
type Analyzer struct {
	lexicon map[string]Entry
}

// New returns an analyzer over the embedded English lexicon.
func New() *Analyzer {
	lex, err := ParseLexicon(strings.NewReader(embeddedLexicon))
	if err != nil {
		panic(fmt.Sprintf("blob: embedded lexicon: %v", err))
	}
	return &Analyzer{lexicon: lex}
}

// NewWithLexicon builds an analyzer from an explicit lexicon.
func NewWithLexicon(lexicon map[string]Entry) *Analyzer {
	lex := make(map[string]Entry, len(lexicon))
	for k, v := range lexicon {
		if v.Intensity == 0 {
			v.Intensity = 1
		}
		lex[strings.ToLower(k)] = v
	}
	return &Analyzer{lexicon: lex}
}

// ParseLexicon reads "word<TAB>polarity<TAB>subjectivity[<TAB>intensity]" lines.
func ParseLexicon(r io.Reader) (map[string]Entry, error) {
	lex := make(map[string]Entry)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected word, polarity and subjectivity", line)
		}
		vals := make([]float64, 3)
		vals[2] = 1
		for i := 1; i < len(fields) && i <= 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vals[i-1] = v
		}
		lex[strings.ToLower(strings.TrimSpace(fields[0]))] = Entry{
			Polarity:     vals[0],
			Subjectivity: vals[1],
			Intensity:    vals[2],
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}

// Analyze returns polarity in [-1, 1] and subjectivity in [0, 1]. Texts
// without any lexicon word score 0, 0.
func (a *Analyzer) Analyze(text string) Sentiment {
	tokens := Tokenize(text)
	var (
		polSum, subjSum float64
		count           int
		negate          bool
		scale           = 1.0
	)
	for i, tok := range tokens {
		if isNegation(tok) {
			negate = true
			continue
		}
		entry, ok := a.lexicon[tok]
		if !ok {
			scale = 1
			continue
		}
		if entry.modifier() {
			if i+1 < len(tokens) {
				if next, ok := a.lexicon[tokens[i+1]]; ok && !next.modifier() {
					scale *= entry.Intensity
				}
			}
			continue
		}
		pol := entry.Polarity * scale
		subj := math.Min(1, entry.Subjectivity*scale)
		if negate {
			pol *= negationScale
			negate = false
		}
		scale = 1
		polSum += pol
		subjSum += subj
		count++
	}
	if count == 0 {
		return Sentiment{}
	}
	return Sentiment{
		Polarity:     clamp(polSum/float64(count), -1, 1),
		Subjectivity: clamp(subjSum/float64(count), 0, 1),
		Assessments:  count,
	}
}

// Tokenize lower-cases and splits text into letter runs, keeping contractions.
func Tokenize(text string) []string {
	matches := tokenRE.FindAllString(strings.ToLower(text), -1)
	for i, m := range matches {
		matches[i] = strings.ReplaceAll(m, "’", "'")
	}
	return matches
}

func isNegation(tok string) bool {
	if _, ok := negations[tok]; ok {
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
