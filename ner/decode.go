package ner

import "strings"

// Decode merges BIO tagged tokens into entity spans. Tokens with an empty
// offset range (special tokens) close any open span. A word-piece
// continuation ("##...") or an I- tag of the same type extends the open span.
func Decode(text string, tokens []string, offsets [][]int, tags []string) []Entity {
	var (
		out  []Entity
		open *Entity
	)
	flush := func() {
		if open != nil {
			open.Text = strings.TrimSpace(sliceText(text, open.Start, open.End))
			if open.Text != "" {
				out = append(out, *open)
			}
			open = nil
		}
	}
	for i, tag := range tags {
		if i >= len(offsets) || len(offsets[i]) < 2 || offsets[i][0] >= offsets[i][1] {
			flush()
			continue
		}
		start, end := offsets[i][0], offsets[i][1]
		prefix, typ := splitTag(tag)
		if prefix == "O" {
			flush()
			continue
		}
		subword := i < len(tokens) && strings.HasPrefix(tokens[i], "##")
		if open != nil && open.Label == typ && (prefix == "I" || subword) {
			open.End = end
			continue
		}
		flush()
		open = &Entity{Label: typ, Start: start, End: end}
	}
	flush()
	return out
}

// splitTag splits "B-LOC" into ("B", "LOC"). Untyped tags other than "O"
// are treated as a begin tag of that type.
func splitTag(tag string) (string, string) {
	if tag == "" || tag == "O" {
		return "O", ""
	}
	if len(tag) > 2 && tag[1] == '-' {
		return tag[:1], tag[2:]
	}
	return "B", tag
}

func sliceText(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}
