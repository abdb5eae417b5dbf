package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "data/fake_or_real_news.csv", cfg.DatasetPath)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "news", cfg.FilePrefix)
	assert.Equal(t, DefaultTopN, cfg.TopN)
	assert.Equal(t, ModelSmall, cfg.ModelSize)
	require.Len(t, cfg.Subsets, 2)
	assert.Equal(t, SubsetConfig{Label: "REAL", Name: "real", Color: "maroon"}, cfg.Subsets[0])
	assert.Equal(t, SubsetConfig{Label: "FAKE", Name: "fake", Color: "blue"}, cfg.Subsets[1])
	assert.Equal(t, []string{"GPE", "LOC"}, cfg.EntityLabels)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigJSON(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	cache := filepath.Join(t.TempDir(), "cache")
	path := writeFile(t, "config.json", `{
  "datasetPath": "in.tsv",
  "topN": 5,
  "cacheDir": "`+filepath.ToSlash(cache)+`",
  "subsets": [{"label": "pos", "color": "green"}, {"label": "neg", "name": "bad", "color": "#ff0000"}],
  "large": {"modelPath": "m.onnx"}
}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "in.tsv", cfg.DatasetPath)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "pos", cfg.Subsets[0].Name)
	assert.Equal(t, "bad", cfg.Subsets[1].Name)
	assert.Equal(t, "m.onnx", cfg.Large.ModelPath)
	assert.Equal(t, 128, cfg.Large.MaxSeqLen)
	assert.DirExists(t, cache)
}

func TestLoadConfigTOML(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	path := writeFile(t, "config.toml", `
output_dir = "results"
file_prefix = "corpus"
entity_labels = ["GPE"]

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, "corpus", cfg.FilePrefix)
	assert.Equal(t, []string{"GPE"}, cfg.EntityLabels)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Len(t, cfg.Subsets, 2)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv("NEWSCORPUS_DATASET", "env.csv")
	t.Setenv("NEWSCORPUS_NER_MODEL", "env.onnx")
	t.Setenv("NEWSCORPUS_TOP_N", "7")
	t.Setenv("NEWSCORPUS_SENTIMENT_LEXICON", "en-sentiment.xml")
	t.Setenv("NEWSCORPUS_GAZETTEER", "places.txt")
	path := writeFile(t, "config.json", `{"datasetPath": "file.csv"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.DatasetPath)
	assert.Equal(t, "env.onnx", cfg.Large.ModelPath)
	assert.Equal(t, 7, cfg.TopN)
	assert.Equal(t, "en-sentiment.xml", cfg.SentimentPath)
	assert.Equal(t, "places.txt", cfg.GazetteerPath)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	_, err := LoadConfig(writeFile(t, "config.json", `{not json`))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "config.json", `{"subsets": [{"label": "a", "color": "red"}]}`))
	assert.ErrorContains(t, err, "exactly two subsets")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Subsets[1].Label = "REAL"
	assert.ErrorContains(t, cfg.Validate(), "duplicate subset label")

	cfg = DefaultConfig()
	cfg.Subsets[1].Name = "real"
	assert.ErrorContains(t, cfg.Validate(), "duplicate subset name")

	cfg = DefaultConfig()
	cfg.Subsets[0].Color = "ultraviolet"
	assert.ErrorContains(t, cfg.Validate(), "unknown colour")
}

var envKeys = []string{
	"NEWSCORPUS_DATASET",
	"NEWSCORPUS_OUTPUT_DIR",
	"NEWSCORPUS_LEXICON",
	"NEWSCORPUS_SENTIMENT_LEXICON",
	"NEWSCORPUS_GAZETTEER",
	"NEWSCORPUS_CACHE_DIR",
	"NEWSCORPUS_ORT_LIB",
	"NEWSCORPUS_NER_MODEL",
	"NEWSCORPUS_NER_TOKENIZER",
	"NEWSCORPUS_LOG_LEVEL",
	"NEWSCORPUS_LOG_FILE",
	"NEWSCORPUS_TOP_N",
}
