package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"yashubustudio/newscorpus/corpus"
)

var spacy = kingpin.Flag("spacy", "Entity model size: small or large").Short('s').Default("").String()

func main() {
	kingpin.Parse()
	if err := run(*spacy); err != nil {
		fmt.Fprintf(os.Stderr, "newscorpus: %v\n", err)
		os.Exit(1)
	}
}

func run(sizeFlag string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := corpus.LoadConfig(os.Getenv("NEWSCORPUS_CONFIG"))
	if err != nil {
		return err
	}
	size, ok := corpus.ParseModelSize(sizeFlag)
	cfg.ModelSize = size

	logger, err := corpus.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("run", uuid.NewString()))
	if !ok {
		logger.Warn("unknown model size, using small", zap.String("value", sizeFlag))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := corpus.Open(cfg, logger)
	if err != nil {
		logger.Error("open pipeline", zap.Error(err))
		return err
	}
	defer pipeline.Close()

	reports, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	for _, r := range reports {
		logger.Info("done",
			zap.String("subset", r.Subset.Name),
			zap.Int("records", len(r.Results)),
			zap.String("chart", r.ChartPath),
			zap.String("table", r.TablePath),
		)
	}
	return nil
}
