package blob

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadLexicon reads a lexicon file. Files ending in .xml are read as
// pattern's en-sentiment.xml, anything else as the TSV format.
func LoadLexicon(path string) (*Analyzer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	var lex map[string]Entry
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		lex, err = ParseXMLLexicon(f)
	} else {
		lex, err = ParseLexicon(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", filepath.Base(path), err)
	}
	if len(lex) == 0 {
		return nil, fmt.Errorf("parse lexicon %s: no entries", filepath.Base(path))
	}
	return NewWithLexicon(lex), nil
}

type xmlWord struct {
	Form         string `xml:"form,attr"`
	Polarity     string `xml:"polarity,attr"`
	Subjectivity string `xml:"subjectivity,attr"`
	Intensity    string `xml:"intensity,attr"`
}

// ParseXMLLexicon reads <word form=".." polarity=".." subjectivity=".."
// intensity=".."/> elements. A form listed under several senses gets the
// mean of their values.
func ParseXMLLexicon(r io.Reader) (map[string]Entry, error) {
	type acc struct {
		pol, subj, inten float64
		n                int
	}
	sums := make(map[string]*acc)
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "word" {
			continue
		}
		var w xmlWord
		if err := dec.DecodeElement(&w, &start); err != nil {
			return nil, err
		}
		form := strings.ToLower(strings.TrimSpace(w.Form))
		if form == "" {
			continue
		}
		pol, err := parseAttr(w.Polarity, 0)
		if err != nil {
			return nil, fmt.Errorf("word %q polarity: %w", form, err)
		}
		subj, err := parseAttr(w.Subjectivity, 0)
		if err != nil {
			return nil, fmt.Errorf("word %q subjectivity: %w", form, err)
		}
		inten, err := parseAttr(w.Intensity, 1)
		if err != nil {
			return nil, fmt.Errorf("word %q intensity: %w", form, err)
		}
		a := sums[form]
		if a == nil {
			a = &acc{}
			sums[form] = a
		}
		a.pol += pol
		a.subj += subj
		a.inten += inten
		a.n++
	}
	lex := make(map[string]Entry, len(sums))
	for form, a := range sums {
		n := float64(a.n)
		lex[form] = Entry{Polarity: a.pol / n, Subjectivity: a.subj / n, Intensity: a.inten / n}
	}
	return lex, nil
}

func parseAttr(v string, fallback float64) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
