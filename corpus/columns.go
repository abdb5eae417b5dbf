package corpus

import (
	"fmt"
	"strings"
)

// ColumnCandidates defines possible header names for auto-detecting dataset columns.
// An empty candidate matches the unnamed index column pandas writes first.
type ColumnCandidates struct {
	ID    []string `json:"id"`
	Title []string `json:"title"`
	Label []string `json:"label"`
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		ID:    []string{"id", "index", "unnamed: 0", ""},
		Title: []string{"title", "headline", "heading"},
		Label: []string{"label", "class", "category"},
	}
}

// withOverrides narrows the candidates to explicitly configured column names.
func (c ColumnCandidates) withOverrides(cols ColumnConfig) ColumnCandidates {
	return ColumnCandidates{
		ID:    pickStrings(cols.ID, c.ID),
		Title: pickStrings(cols.Title, c.Title),
		Label: pickStrings(cols.Label, c.Label),
	}
}

type resolvedColumns struct {
	ID    int
	Title int
	Label int
}

// resolveColumns locates the title and label columns, which are required. A
// missing id column resolves to -1 and row positions are used instead.
func resolveColumns(header []string, candidates ColumnCandidates) (resolvedColumns, error) {
	res := resolvedColumns{
		ID:    findColumn(header, candidates.ID),
		Title: findColumn(header, candidates.Title),
		Label: findColumn(header, candidates.Label),
	}
	var missing []string
	if res.Title < 0 {
		missing = append(missing, "title")
	}
	if res.Label < 0 {
		missing = append(missing, "label")
	}
	if len(missing) > 0 {
		return res, fmt.Errorf("missing required column(s) %s in header %q", strings.Join(missing, ", "), header)
	}
	return res, nil
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, col := range header {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

func pickStrings(override string, fallback []string) []string {
	if strings.TrimSpace(override) != "" {
		return []string{strings.TrimSpace(override)}
	}
	return cloneStrings(fallback)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
