package corpus

import (
	"context"
	"errors"
	"strings"
)

// fakeRecognizer tags every configured word found in the text.
type fakeRecognizer struct {
	tags   map[string]string
	calls  int
	err    error
	closed bool
}

func newFakeRecognizer(tags map[string]string) *fakeRecognizer {
	return &fakeRecognizer{tags: tags}
}

func (f *fakeRecognizer) Recognize(_ context.Context, text string) ([]Entity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []Entity
	for _, word := range strings.Fields(text) {
		if label, ok := f.tags[word]; ok {
			out = append(out, Entity{Text: word, Label: label})
		}
	}
	return out, nil
}

func (f *fakeRecognizer) ModelID() string { return "fake" }

func (f *fakeRecognizer) Close() error {
	f.closed = true
	return nil
}

var errBoom = errors.New("boom")
