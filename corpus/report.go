package corpus

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var tableHeader = []string{"id", "title", "polarity", "subjectivity", "vader_compound", "GPE"}

// ResolveColor accepts an SVG colour name (case-insensitive) or #rrggbb.
func ResolveColor(name string) (color.Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := colornames.Map[key]; ok {
		return c, nil
	}
	if len(key) == 7 && key[0] == '#' {
		v, err := strconv.ParseUint(key[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return nil, fmt.Errorf("unknown colour %q", name)
}

// Reporter writes the per-subset chart and table into one directory.
type Reporter struct {
	dir    string
	prefix string
	size   ModelSize
	topN   int
}

// NewReporter uses the output directory, file prefix, model size and top-N of cfg.
func NewReporter(cfg Config) *Reporter {
	prefix := cfg.FilePrefix
	if prefix == "" {
		prefix = defaultFilePrefix
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Reporter{dir: cfg.OutputDir, prefix: prefix, size: cfg.ModelSize, topN: topN}
}

// ChartPath is where the chart of subset is written.
func (r *Reporter) ChartPath(subset string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s_%s_gpe.png", r.prefix, subset, r.size.Short()))
}

// TablePath is where the table of subset is written.
func (r *Reporter) TablePath(subset string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s_%s.csv", r.prefix, subset, r.size.Short()))
}

// WriteChart renders ranked entities as a bar chart PNG. An empty ranking
// renders a chart without bars.
func (r *Reporter) WriteChart(ranked []RankedEntity, subset Subset) (string, error) {
	path := r.ChartPath(subset.Name)
	if err := r.checkDir(); err != nil {
		return "", err
	}
	fill, err := ResolveColor(subset.Color)
	if err != nil {
		fill = colornames.Gray
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d locations in %s news data", r.topN, subset.Name)
	p.X.Label.Text = "Locations"
	p.Y.Label.Text = "Number of mentions"
	if len(ranked) > 0 {
		values := make(plotter.Values, len(ranked))
		names := make([]string, len(ranked))
		for i, e := range ranked {
			values[i] = float64(e.Count)
			names[i] = e.Name
		}
		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return "", fmt.Errorf("build chart: %w", err)
		}
		bars.Color = fill
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalX(names...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.Y.Min = 0
	}
	if err := p.Save(16*vg.Inch, 8*vg.Inch, path); err != nil {
		return "", fmt.Errorf("%w: chart %s: %w", ErrWrite, path, err)
	}
	return path, nil
}

// WriteTable writes one CSV row per result, entities as a JSON array.
func (r *Reporter) WriteTable(rows []ScoreResult, subset Subset) (string, error) {
	path := r.TablePath(subset.Name)
	if err := r.checkDir(); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: table %s: %w", ErrWrite, path, err)
	}
	w := csv.NewWriter(f)
	if err := writeRows(w, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: table %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: table %s: %w", ErrWrite, path, err)
	}
	return path, nil
}

func writeRows(w *csv.Writer, rows []ScoreResult) error {
	if err := w.Write(tableHeader); err != nil {
		return err
	}
	for _, row := range rows {
		ents := row.Entities
		if ents == nil {
			ents = []string{}
		}
		encoded, err := json.Marshal(ents)
		if err != nil {
			return err
		}
		rec := []string{
			strconv.Itoa(row.ID),
			row.Title,
			formatFloat(row.Polarity),
			formatFloat(row.Subjectivity),
			formatFloat(row.Compound),
			string(encoded),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (r *Reporter) checkDir() error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return fmt.Errorf("%w: output dir: %w", ErrWrite, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: output dir %s is not a directory", ErrWrite, r.dir)
	}
	return nil
}

// ReadTable loads a table written by WriteTable.
func ReadTable(path string) ([]ScoreResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("read table: missing header")
	}
	if strings.Join(records[0], ",") != strings.Join(tableHeader, ",") {
		return nil, fmt.Errorf("read table: unexpected header %q", records[0])
	}
	out := make([]ScoreResult, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("read table row %d: %w", i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseRow(rec []string) (ScoreResult, error) {
	var row ScoreResult
	if len(rec) != len(tableHeader) {
		return row, fmt.Errorf("expected %d fields, got %d", len(tableHeader), len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return row, fmt.Errorf("id: %w", err)
	}
	row.ID = id
	row.Title = rec[1]
	floats := []*float64{&row.Polarity, &row.Subjectivity, &row.Compound}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(rec[2+i], 64)
		if err != nil {
			return row, fmt.Errorf("%s: %w", tableHeader[2+i], err)
		}
		*dst = v
	}
	if err := json.Unmarshal([]byte(rec[5]), &row.Entities); err != nil {
		return row, fmt.Errorf("GPE: %w", err)
	}
	if row.Entities == nil {
		row.Entities = []string{}
	}
	return row, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
