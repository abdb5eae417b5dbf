package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadDataset reads id/title/label records from a CSV or TSV file. Columns
// are detected from the header; cols forces specific names. Every failure
// wraps ErrDatasetLoad.
func LoadDataset(path string, cols ColumnConfig) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDatasetLoad, filepath.Base(path), err)
	}
	defer f.Close()
	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}
	records, err := readRecords(f, comma, DefaultColumnCandidates().withOverrides(cols))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetLoad, filepath.Base(path), err)
	}
	return records, nil
}

func readRecords(r io.Reader, comma rune, candidates ColumnCandidates) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	row, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make([]string, len(row))
	for i, cell := range row {
		header[i] = cleanCell(cell)
	}
	cols, err := resolveColumns(header, candidates)
	if err != nil {
		return nil, err
	}

	var records []Record
	for pos := 0; ; pos++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", pos+1, err)
		}
		rec := Record{ID: pos}
		if cols.ID >= 0 && cols.ID < len(row) && cleanCell(row[cols.ID]) != "" {
			raw := cleanCell(row[cols.ID])
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid id %q", pos+1, raw)
			}
			rec.ID = id
		}
		if cols.Title < len(row) {
			rec.Title = cleanCell(row[cols.Title])
		}
		if cols.Label < len(row) {
			rec.Label = cleanCell(row[cols.Label])
		}
		records = append(records, rec)
	}
	return records, nil
}

// Partition splits records into one subset per configured label, in
// configuration order. Labels must match exactly. Records matching no subset
// are returned separately.
func Partition(records []Record, subsets []SubsetConfig) ([]Subset, []Record) {
	out := make([]Subset, len(subsets))
	for i, sc := range subsets {
		out[i] = Subset{Label: sc.Label, Name: sc.Name, Color: sc.Color, Records: []Record{}}
	}
	var unmatched []Record
	for _, rec := range records {
		matched := false
		for i := range out {
			if rec.Label == out[i].Label {
				out[i].Records = append(out[i].Records, rec)
				matched = true
				break
			}
		}
		if !matched {
			unmatched = append(unmatched, rec)
		}
	}
	return out, unmatched
}
