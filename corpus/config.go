package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"yashubustudio/newscorpus/ner"
)

const (
	defaultConfigFile  = "config.json"
	defaultDatasetPath = "data/fake_or_real_news.csv"
	defaultOutputDir   = "output"
	defaultFilePrefix  = "news"
)

// SubsetConfig maps a dataset label to the name and bar colour used in outputs.
type SubsetConfig struct {
	Label string `json:"label" toml:"label"`
	Name  string `json:"name" toml:"name"`
	Color string `json:"color" toml:"color"`
}

// ColumnConfig forces specific column names instead of header auto-detection.
type ColumnConfig struct {
	ID    string `json:"id" toml:"id"`
	Title string `json:"title" toml:"title"`
	Label string `json:"label" toml:"label"`
}

// LargeModelConfig wraps the ONNX token-classification model settings.
type LargeModelConfig struct {
	OrtDLL        string   `json:"ortDll" toml:"ort_dll"`
	ModelPath     string   `json:"modelPath" toml:"model_path"`
	TokenizerPath string   `json:"tokenizerPath" toml:"tokenizer_path"`
	MaxSeqLen     int      `json:"maxSeqLen" toml:"max_seq_len"`
	Labels        []string `json:"labels" toml:"labels"`
	InputNames    []string `json:"inputNames" toml:"input_names"`
	OutputName    string   `json:"outputName" toml:"output_name"`
}

func (c LargeModelConfig) nerConfig() ner.Config {
	return ner.Config{
		OrtDLL:        c.OrtDLL,
		ModelPath:     c.ModelPath,
		TokenizerPath: c.TokenizerPath,
		MaxSeqLen:     c.MaxSeqLen,
		Labels:        cloneStrings(c.Labels),
		InputNames:    cloneStrings(c.InputNames),
		OutputName:    c.OutputName,
	}
}

// LogConfig controls the console logger and the optional rotating log file.
type LogConfig struct {
	Level      string `json:"level" toml:"level"`
	File       string `json:"file" toml:"file"`
	MaxSizeMB  int    `json:"maxSizeMb" toml:"max_size_mb"`
	MaxBackups int    `json:"maxBackups" toml:"max_backups"`
	MaxAgeDays int    `json:"maxAgeDays" toml:"max_age_days"`
}

// Config aggregates the runtime settings. LexiconPath, SentimentPath and
// GazetteerPath replace the embedded VADER lexicon, polarity lexicon and
// place-name list. ModelSize is only set from the command line.
type Config struct {
	DatasetPath   string           `json:"datasetPath" toml:"dataset_path"`
	OutputDir     string           `json:"outputDir" toml:"output_dir"`
	FilePrefix    string           `json:"filePrefix" toml:"file_prefix"`
	TopN          int              `json:"topN" toml:"top_n"`
	Subsets       []SubsetConfig   `json:"subsets" toml:"subsets"`
	Columns       ColumnConfig     `json:"columns" toml:"columns"`
	LexiconPath   string           `json:"lexiconPath" toml:"lexicon_path"`
	SentimentPath string           `json:"sentimentPath" toml:"sentiment_path"`
	GazetteerPath string           `json:"gazetteerPath" toml:"gazetteer_path"`
	EntityLabels  []string         `json:"entityLabels" toml:"entity_labels"`
	Large         LargeModelConfig `json:"large" toml:"large"`
	CacheDir      string           `json:"cacheDir" toml:"cache_dir"`
	Log           LogConfig        `json:"log" toml:"log"`

	ModelSize ModelSize `json:"-" toml:"-"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.DatasetPath == "" {
		c.DatasetPath = defaultDatasetPath
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.FilePrefix == "" {
		c.FilePrefix = defaultFilePrefix
	}
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if len(c.Subsets) == 0 {
		c.Subsets = []SubsetConfig{
			{Label: "REAL", Name: "real", Color: "maroon"},
			{Label: "FAKE", Name: "fake", Color: "blue"},
		}
	}
	for i := range c.Subsets {
		if c.Subsets[i].Name == "" {
			c.Subsets[i].Name = strings.ToLower(c.Subsets[i].Label)
		}
	}
	if len(c.EntityLabels) == 0 {
		c.EntityLabels = []string{"GPE", "LOC"}
	}
	if c.Large.MaxSeqLen == 0 {
		c.Large.MaxSeqLen = 128
	}
	if c.ModelSize == "" {
		c.ModelSize = ModelSmall
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
}

// Validate checks the subset mapping, which must name exactly two distinct
// labels with resolvable colours.
func (c Config) Validate() error {
	if len(c.Subsets) != 2 {
		return fmt.Errorf("expected exactly two subsets, got %d", len(c.Subsets))
	}
	seen := make(map[string]struct{}, 2)
	names := make(map[string]struct{}, 2)
	for _, s := range c.Subsets {
		label := strings.TrimSpace(s.Label)
		if label == "" {
			return errors.New("subset label must not be empty")
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("duplicate subset label %q", s.Label)
		}
		seen[label] = struct{}{}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("duplicate subset name %q", s.Name)
		}
		names[s.Name] = struct{}{}
		if _, err := ResolveColor(s.Color); err != nil {
			return fmt.Errorf("subset %s: %w", s.Name, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults. Files ending in .toml are
// decoded as TOML, anything else as JSON. Environment overrides are applied
// before defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}
	cfg.applyEnv(os.Getenv)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return cfg, fmt.Errorf("create cache dir: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.DatasetPath, "NEWSCORPUS_DATASET")
	set(&c.OutputDir, "NEWSCORPUS_OUTPUT_DIR")
	set(&c.LexiconPath, "NEWSCORPUS_LEXICON")
	set(&c.SentimentPath, "NEWSCORPUS_SENTIMENT_LEXICON")
	set(&c.GazetteerPath, "NEWSCORPUS_GAZETTEER")
	set(&c.CacheDir, "NEWSCORPUS_CACHE_DIR")
	set(&c.Large.OrtDLL, "NEWSCORPUS_ORT_LIB")
	set(&c.Large.ModelPath, "NEWSCORPUS_NER_MODEL")
	set(&c.Large.TokenizerPath, "NEWSCORPUS_NER_TOKENIZER")
	set(&c.Log.Level, "NEWSCORPUS_LOG_LEVEL")
	set(&c.Log.File, "NEWSCORPUS_LOG_FILE")
	if v := strings.TrimSpace(getenv("NEWSCORPUS_TOP_N")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopN = n
		}
	}
}
