package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReporter(t *testing.T, size ModelSize) *Reporter {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.ModelSize = size
	return NewReporter(cfg)
}

var realSubset = Subset{Label: "REAL", Name: "real", Color: "maroon"}

func TestWriteTableRoundTrip(t *testing.T) {
	r := testReporter(t, ModelSmall)
	rows := []ScoreResult{
		{ID: 7, Title: `Kerry to go to "Paris", again`, Polarity: 0.25, Subjectivity: 0.5, Compound: -0.1, Entities: []string{"Paris"}},
		{ID: 3, Title: "Calm day", Entities: nil},
		{ID: 11, Title: "London and Paris", Polarity: -1, Subjectivity: 1, Compound: 0.9999, Entities: []string{"London", "Paris"}},
	}
	path, err := r.WriteTable(rows, realSubset)
	require.NoError(t, err)
	assert.Equal(t, "news_real_sm.csv", filepath.Base(path))

	got, err := ReadTable(path)
	require.NoError(t, err)
	require.Len(t, got, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].ID, got[i].ID)
		assert.Equal(t, rows[i].Title, got[i].Title)
		assert.InDelta(t, rows[i].Compound, got[i].Compound, 1e-12)
	}
	assert.Equal(t, []string{}, got[1].Entities)
	assert.Equal(t, []string{"London", "Paris"}, got[2].Entities)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,title,polarity,subjectivity,vader_compound,GPE\n")
	assert.Contains(t, string(data), `"[""Paris""]"`)
}

func TestWriteTableHeaderOnly(t *testing.T) {
	r := testReporter(t, ModelSmall)
	path, err := r.WriteTable(nil, realSubset)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,title,polarity,subjectivity,vader_compound,GPE\n", string(data))

	got, err := ReadTable(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteChart(t *testing.T) {
	r := testReporter(t, ModelLarge)
	path, err := r.WriteChart([]RankedEntity{{Name: "Paris", Count: 3}, {Name: "London", Count: 1}}, realSubset)
	require.NoError(t, err)
	assert.Equal(t, "news_real_lg_gpe.png", filepath.Base(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteChartEmpty(t *testing.T) {
	r := testReporter(t, ModelSmall)
	path, err := r.WriteChart(nil, Subset{Name: "fake", Color: "blue"})
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileNamesDistinctBySize(t *testing.T) {
	small := NewReporter(Config{OutputDir: "out", ModelSize: ModelSmall})
	large := NewReporter(Config{OutputDir: "out", ModelSize: ModelLarge})
	assert.Equal(t, filepath.Join("out", "news_real_sm_gpe.png"), small.ChartPath("real"))
	assert.Equal(t, filepath.Join("out", "news_real_lg_gpe.png"), large.ChartPath("real"))
	assert.NotEqual(t, small.TablePath("real"), large.TablePath("real"))
	assert.NotEqual(t, small.TablePath("real"), small.TablePath("fake"))
}

func TestReporterMissingDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "absent")
	r := NewReporter(cfg)

	_, err := r.WriteTable(nil, realSubset)
	assert.ErrorIs(t, err, ErrWrite)
	_, err = r.WriteChart(nil, realSubset)
	assert.ErrorIs(t, err, ErrWrite)
	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestResolveColor(t *testing.T) {
	c, err := ResolveColor("Maroon")
	require.NoError(t, err)
	r, g, b, _ := c.RGBA()
	assert.Equal(t, uint32(0x8080), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	c, err = ResolveColor("#0000ff")
	require.NoError(t, err)
	_, _, b, _ = c.RGBA()
	assert.Equal(t, uint32(0xffff), b)

	_, err = ResolveColor("not-a-colour")
	assert.Error(t, err)
}

func TestReadTableRejectsForeignHeader(t *testing.T) {
	path := writeFile(t, "other.csv", "a,b\n1,2\n")
	_, err := ReadTable(path)
	assert.Error(t, err)
}
