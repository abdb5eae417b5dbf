package corpus

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

//go:embed gazetteer.txt
var embeddedGazetteer string

var placeTokenRE = regexp.MustCompile(`[\p{L}\p{M}]+(?:[-.'’][\p{L}\p{M}]+)*`)

// Gazetteer is a case-sensitive set of place names, matched on whole words.
type Gazetteer struct {
	names    map[string]struct{}
	maxWords int
}

// NewGazetteer returns the embedded place-name list.
func NewGazetteer() *Gazetteer {
	g, err := ParseGazetteer(strings.NewReader(embeddedGazetteer))
	if err != nil {
		panic(fmt.Sprintf("corpus: embedded gazetteer: %v", err))
	}
	return g
}

// LoadGazetteer reads one place name per line; blank lines and # comments
// are ignored.
func LoadGazetteer(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer: %w", err)
	}
	defer f.Close()
	g, err := ParseGazetteer(f)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	return g, nil
}

// ParseGazetteer reads a place-name list.
func ParseGazetteer(r io.Reader) (*Gazetteer, error) {
	g := &Gazetteer{names: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words := placeTokenRE.FindAllString(line, -1)
		if len(words) == 0 {
			continue
		}
		for i := range words {
			words[i] = placeKey(words[i])
		}
		g.names[strings.Join(words, " ")] = struct{}{}
		if len(words) > g.maxWords {
			g.maxWords = len(words)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// Size is the number of distinct names.
func (g *Gazetteer) Size() int { return len(g.names) }

// Contains reports whether name, ignoring dots and a possessive suffix, is a
// known place.
func (g *Gazetteer) Contains(name string) bool {
	words := placeTokenRE.FindAllString(name, -1)
	if len(words) == 0 {
		return false
	}
	for i := range words {
		words[i] = placeKey(trimPossessive(words[i]))
	}
	_, ok := g.names[strings.Join(words, " ")]
	return ok
}

type placeSpan struct {
	Text       string
	Start, End int
}

// Find returns the longest non-overlapping place names in text order.
func (g *Gazetteer) Find(text string) []placeSpan {
	locs := placeTokenRE.FindAllStringIndex(text, -1)
	var out []placeSpan
	for i := 0; i < len(locs); {
		matched := 0
		end := 0
		for n := min(g.maxWords, len(locs)-i); n > 0; n-- {
			words := make([]string, n)
			for j := 0; j < n; j++ {
				words[j] = placeKey(text[locs[i+j][0]:locs[i+j][1]])
			}
			last := trimPossessive(text[locs[i+n-1][0]:locs[i+n-1][1]])
			words[n-1] = placeKey(last)
			if _, ok := g.names[strings.Join(words, " ")]; ok {
				matched = n
				end = locs[i+n-1][0] + len(last)
				break
			}
		}
		if matched == 0 {
			i++
			continue
		}
		start := locs[i][0]
		if strings.Contains(text[start:end], ".") && end < len(text) && text[end] == '.' {
			end++
		}
		out = append(out, placeSpan{Text: text[start:end], Start: start, End: end})
		i += matched
	}
	return out
}

func placeKey(word string) string {
	return strings.ReplaceAll(word, ".", "")
}

func trimPossessive(word string) string {
	for _, suffix := range []string{"'s", "’s"} {
		if strings.HasSuffix(word, suffix) {
			return strings.TrimSuffix(word, suffix)
		}
	}
	return word
}
