package corpus

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"yashubustudio/newscorpus/blob"
	"yashubustudio/newscorpus/ner"
)

// EntityRecognizer extracts typed entity spans from a text.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
	ModelID() string
	Close() error
}

// ModelScorerOptions configures caching, progress output and logging.
type ModelScorerOptions struct {
	CacheDir string
	Progress io.Writer
	Logger   *zap.Logger
}

// ModelScorer combines the blob sentiment analyser with an entity
// recogniser whose output is filtered to a label set.
type ModelScorer struct {
	rec       EntityRecognizer
	sentiment *blob.Analyzer
	labels    map[string]struct{}
	cache     *entityCache
	progress  io.Writer
	logger    *zap.Logger
}

// NewModelScorer builds a scorer. A nil sentiment analyser uses the embedded
// lexicon; empty entityLabels keeps GPE and LOC.
func NewModelScorer(rec EntityRecognizer, sentiment *blob.Analyzer, entityLabels []string, opts ModelScorerOptions) *ModelScorer {
	if sentiment == nil {
		sentiment = blob.New()
	}
	if len(entityLabels) == 0 {
		entityLabels = []string{"GPE", "LOC"}
	}
	labels := make(map[string]struct{}, len(entityLabels))
	for _, l := range entityLabels {
		labels[strings.ToUpper(strings.TrimSpace(l))] = struct{}{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelScorer{
		rec:       rec,
		sentiment: sentiment,
		labels:    labels,
		cache:     newEntityCache(opts.CacheDir, rec.ModelID()),
		progress:  opts.Progress,
		logger:    logger,
	}
}

// ModelID reports the underlying recogniser.
func (m *ModelScorer) ModelID() string { return m.rec.ModelID() }

// ScoreBatch scores texts in order. The result has one entry per input text.
func (m *ModelScorer) ScoreBatch(ctx context.Context, texts []string) ([]ModelScore, error) {
	out := make([]ModelScore, len(texts))
	var bar *progressbar.ProgressBar
	if m.progress != nil && len(texts) > 0 {
		bar = progressbar.NewOptions(len(texts),
			progressbar.OptionSetWriter(m.progress),
			progressbar.OptionSetDescription("scoring "+m.rec.ModelID()),
		)
	}
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		normalized := NormalizeText(text)
		s := m.sentiment.Analyze(normalized)
		ents, err := m.entities(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("recognize text %d: %w", i, err)
		}
		out[i] = ModelScore{Polarity: s.Polarity, Subjectivity: s.Subjectivity, Entities: m.filter(ents)}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return out, nil
}

func (m *ModelScorer) entities(ctx context.Context, text string) ([]Entity, error) {
	key := m.cache.key(text)
	if ents, ok := m.cache.get(key); ok {
		return ents, nil
	}
	ents, err := m.rec.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}
	m.cache.put(key, ents)
	if err := m.cache.save(key, ents); err != nil {
		m.logger.Warn("entity cache write failed", zap.Error(err))
	}
	return ents, nil
}

func (m *ModelScorer) filter(ents []Entity) []string {
	out := []string{}
	for _, e := range ents {
		if _, ok := m.labels[strings.ToUpper(e.Label)]; ok {
			out = append(out, e.Text)
		}
	}
	return out
}

// Close releases the recogniser.
func (m *ModelScorer) Close() error {
	return m.rec.Close()
}

// NewRecognizer returns the recogniser for the configured model size, loaded
// once. Either model fails fast with ErrModelUnavailable when it cannot be
// loaded.
func NewRecognizer(cfg Config) (EntityRecognizer, error) {
	if cfg.ModelSize != ModelLarge {
		gaz := NewGazetteer()
		if cfg.GazetteerPath != "" {
			g, err := LoadGazetteer(cfg.GazetteerPath)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
			}
			gaz = g
		}
		rec, err := newProseRecognizer(gaz)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
		return rec, nil
	}
	rec, err := ner.New(cfg.Large.nerConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	return &onnxRecognizer{rec: rec}, nil
}

// onnxRecognizer adapts ner.Recognizer to EntityRecognizer.
type onnxRecognizer struct {
	rec *ner.Recognizer
}

func (o *onnxRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	spans, err := o.rec.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, len(spans))
	for i, s := range spans {
		out[i] = Entity{Text: s.Text, Label: s.Label}
	}
	return out, nil
}

func (o *onnxRecognizer) ModelID() string { return o.rec.ModelID() }

func (o *onnxRecognizer) Close() error { return o.rec.Close() }
