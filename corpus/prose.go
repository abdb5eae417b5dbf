package corpus

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

const proseModelID = "prose:en-v2+gazetteer"

// proseRecognizer runs the built-in prose v2 entity model, loaded once, and
// checks its output against a gazetteer. Headlines capitalise their first
// word, so an entity starting there is kept only when the gazetteer knows
// it. Gazetteer places the model missed are added as GPE.
type proseRecognizer struct {
	model *prose.Model
	gaz   *Gazetteer
}

func newProseRecognizer(gaz *Gazetteer) (*proseRecognizer, error) {
	if gaz == nil {
		gaz = NewGazetteer()
	}
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("load prose model: %w", err)
	}
	return &proseRecognizer{model: doc.Model, gaz: gaz}, nil
}

type locatedEntity struct {
	Entity
	start, end int
}

func (p *proseRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(p.model))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}
	head := firstWordStart(text)
	var found []locatedEntity
	cursor := 0
	for _, e := range doc.Entities() {
		start := strings.Index(text[cursor:], e.Text)
		if start >= 0 {
			start += cursor
			cursor = start + len(e.Text)
		} else if start = strings.Index(text, e.Text); start < 0 {
			start = len(text)
		}
		if start == head && !p.gaz.Contains(e.Text) {
			continue
		}
		found = append(found, locatedEntity{
			Entity: Entity{Text: e.Text, Label: e.Label},
			start:  start,
			end:    start + len(e.Text),
		})
	}
	for _, place := range p.gaz.Find(text) {
		if overlaps(found, place.Start, place.End) {
			continue
		}
		found = append(found, locatedEntity{
			Entity: Entity{Text: place.Text, Label: "GPE"},
			start:  place.Start,
			end:    place.End,
		})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })
	out := make([]Entity, len(found))
	for i, f := range found {
		out[i] = f.Entity
	}
	return out, nil
}

func (p *proseRecognizer) ModelID() string { return proseModelID }

func (p *proseRecognizer) Close() error { return nil }

func firstWordStart(text string) int {
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return i
		}
	}
	return -1
}

func overlaps(found []locatedEntity, start, end int) bool {
	for _, f := range found {
		if start < f.end && f.start < end {
			return true
		}
	}
	return false
}
