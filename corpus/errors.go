package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrDatasetLoad marks a missing, unreadable or malformed dataset.
	ErrDatasetLoad = errors.New("dataset load failed")
	// ErrModelUnavailable marks a model variant that cannot be loaded.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrInvalidInput marks a title that is not usable text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWrite marks an output file that could not be written.
	ErrWrite = errors.New("write failed")
)

// Pipeline stages reported in StageError.
const (
	StageLoad    = "load"
	StageModel   = "model"
	StageLexicon = "lexicon"
	StageChart   = "chart"
	StageTable   = "table"
)

// StageError annotates a failure with the stage and subset in progress.
type StageError struct {
	Stage  string
	Subset string
	Err    error
}

func (e *StageError) Error() string {
	if e.Subset == "" {
		return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s stage (subset %s): %v", e.Stage, e.Subset, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
