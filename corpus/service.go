package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"yashubustudio/newscorpus/blob"
	"yashubustudio/newscorpus/vader"
)

// Pipeline loads the dataset and runs both scorers, the ranking and the
// reporter once per configured subset.
type Pipeline struct {
	cfg      Config
	lexicon  LexiconScorer
	model    *ModelScorer
	reporter *Reporter
	logger   *zap.Logger
}

// NewPipeline constructs a pipeline from explicit scorers.
func NewPipeline(cfg Config, lexicon LexiconScorer, model *ModelScorer, logger *zap.Logger) (*Pipeline, error) {
	if lexicon == nil {
		return nil, errors.New("lexicon scorer is required")
	}
	if model == nil {
		return nil, errors.New("model scorer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	return &Pipeline{
		cfg:      cfg,
		lexicon:  lexicon,
		model:    model,
		reporter: NewReporter(cfg),
		logger:   logger,
	}, nil
}

// Open builds the VADER, blob and entity recogniser backends selected by cfg.
func Open(cfg Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	analyzer := vader.New()
	if cfg.LexiconPath != "" {
		a, err := vader.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			return nil, &StageError{Stage: StageLexicon, Err: err}
		}
		analyzer = a
	}
	sentiment := blob.New()
	if cfg.SentimentPath != "" {
		a, err := blob.LoadLexicon(cfg.SentimentPath)
		if err != nil {
			return nil, &StageError{Stage: StageModel, Err: err}
		}
		sentiment = a
	}
	rec, err := NewRecognizer(cfg)
	if err != nil {
		return nil, &StageError{Stage: StageModel, Err: err}
	}
	logger.Info("entity model loaded", zap.String("model", rec.ModelID()), zap.String("size", string(cfg.ModelSize)))
	model := NewModelScorer(rec, sentiment, cfg.EntityLabels, ModelScorerOptions{
		CacheDir: cfg.CacheDir,
		Progress: os.Stderr,
		Logger:   logger,
	})
	return NewPipeline(cfg, NewVaderScorer(analyzer), model, logger)
}

// Close releases the entity recogniser.
func (p *Pipeline) Close() error {
	return p.model.Close()
}

// Run processes every subset in configuration order. The first failure
// aborts the run as a *StageError.
func (p *Pipeline) Run(ctx context.Context) ([]SubsetReport, error) {
	p.logger.Info("loading dataset", zap.String("path", p.cfg.DatasetPath))
	records, err := LoadDataset(p.cfg.DatasetPath, p.cfg.Columns)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Err: err}
	}
	subsets, unmatched := Partition(records, p.cfg.Subsets)
	if len(unmatched) > 0 {
		p.logger.Warn("records with unknown label ignored", zap.Int("count", len(unmatched)))
	}
	reports := make([]SubsetReport, 0, len(subsets))
	for _, subset := range subsets {
		report, err := p.processSubset(ctx, subset)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (p *Pipeline) processSubset(ctx context.Context, subset Subset) (SubsetReport, error) {
	log := p.logger.With(zap.String("subset", subset.Name))
	log.Info("scoring subset", zap.Int("records", len(subset.Records)))
	report := SubsetReport{Subset: subset, Results: []ScoreResult{}}

	valid := make([]Record, 0, len(subset.Records))
	compounds := make([]float64, 0, len(subset.Records))
	for _, rec := range subset.Records {
		if err := ctx.Err(); err != nil {
			return report, &StageError{Stage: StageLexicon, Subset: subset.Name, Err: err}
		}
		compound, err := p.lexicon.Score(rec.Title)
		if errors.Is(err, ErrInvalidInput) {
			log.Warn("skipping title", zap.Int("id", rec.ID), zap.Error(err))
			report.Skipped = append(report.Skipped, rec.ID)
			continue
		}
		if err != nil {
			return report, &StageError{Stage: StageLexicon, Subset: subset.Name, Err: fmt.Errorf("record %d: %w", rec.ID, err)}
		}
		valid = append(valid, rec)
		compounds = append(compounds, compound)
	}

	titles := make([]string, len(valid))
	for i, rec := range valid {
		titles[i] = rec.Title
	}
	scores, err := p.model.ScoreBatch(ctx, titles)
	if err != nil {
		return report, &StageError{Stage: StageModel, Subset: subset.Name, Err: err}
	}
	if len(scores) != len(valid) {
		return report, &StageError{Stage: StageModel, Subset: subset.Name,
			Err: fmt.Errorf("model returned %d scores for %d texts", len(scores), len(valid))}
	}

	lists := make([][]string, len(valid))
	for i, rec := range valid {
		report.Results = append(report.Results, ScoreResult{
			ID:           rec.ID,
			Title:        rec.Title,
			Polarity:     scores[i].Polarity,
			Subjectivity: scores[i].Subjectivity,
			Compound:     compounds[i],
			Entities:     scores[i].Entities,
		})
		lists[i] = scores[i].Entities
	}
	report.Ranked = RankEntities(lists, p.cfg.TopN)

	chart, err := p.reporter.WriteChart(report.Ranked, subset)
	if err != nil {
		return report, &StageError{Stage: StageChart, Subset: subset.Name, Err: err}
	}
	report.ChartPath = chart
	table, err := p.reporter.WriteTable(report.Results, subset)
	if err != nil {
		return report, &StageError{Stage: StageTable, Subset: subset.Name, Err: err}
	}
	report.TablePath = table
	log.Info("subset written",
		zap.Int("scored", len(report.Results)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("locations", len(report.Ranked)),
		zap.String("chart", chart),
		zap.String("table", table),
	)
	return report, nil
}
