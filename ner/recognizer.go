// Package ner runs a token-classification ONNX model (BERT style, BIO tags)
// and turns its per-token labels into entity spans.
package ner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// ErrModelUnavailable is returned when the runtime, model or tokenizer
// cannot be loaded.
var ErrModelUnavailable = errors.New("ner model unavailable")

// DefaultLabels is the id2label order used by the common CoNLL-2003 BERT models.
var DefaultLabels = []string{"O", "B-MISC", "I-MISC", "B-PER", "I-PER", "B-ORG", "I-ORG", "B-LOC", "I-LOC"}

const (
	inputIDs      = "input_ids"
	attentionMask = "attention_mask"
	tokenTypeIDs  = "token_type_ids"
)

// Config locates the ONNX runtime library, the model and its tokenizer.
type Config struct {
	OrtDLL        string
	ModelPath     string
	TokenizerPath string
	MaxSeqLen     int
	Labels        []string
	InputNames    []string
	OutputName    string
}

func (c *Config) applyDefaults() {
	if c.MaxSeqLen <= 0 {
		c.MaxSeqLen = 128
	}
	if len(c.Labels) == 0 {
		c.Labels = append([]string(nil), DefaultLabels...)
	}
	if len(c.InputNames) == 0 {
		c.InputNames = []string{inputIDs, attentionMask, tokenTypeIDs}
	}
	if c.OutputName == "" {
		c.OutputName = "logits"
	}
}

// Entity is a decoded span. Start and End are offsets into the input text.
type Entity struct {
	Text  string
	Label string
	Start int
	End   int
}

// Recognizer owns one ORT session. Recognize calls are serialised.
type Recognizer struct {
	cfg     Config
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	ownsEnv bool
	mu      sync.Mutex
}

// New validates the configured files, then initialises the runtime and session.
func New(cfg Config) (*Recognizer, error) {
	cfg.applyDefaults()
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, fmt.Errorf("%w: model and tokenizer paths are required", ErrModelUnavailable)
	}
	for _, p := range []string{cfg.OrtDLL, cfg.ModelPath, cfg.TokenizerPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
	}
	for _, name := range cfg.InputNames {
		switch name {
		case inputIDs, attentionMask, tokenTypeIDs:
		default:
			return nil, fmt.Errorf("%w: unsupported model input %q", ErrModelUnavailable, name)
		}
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: load tokenizer: %v", ErrModelUnavailable, err)
	}

	ownsEnv := false
	if !ort.IsInitialized() {
		if cfg.OrtDLL != "" {
			ort.SetSharedLibraryPath(cfg.OrtDLL)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("%w: init onnxruntime: %v", ErrModelUnavailable, err)
		}
		ownsEnv = true
	}
	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, cfg.InputNames, []string{cfg.OutputName}, nil)
	if err != nil {
		if ownsEnv {
			_ = ort.DestroyEnvironment()
		}
		return nil, fmt.Errorf("%w: create session: %v", ErrModelUnavailable, err)
	}
	return &Recognizer{cfg: cfg, tk: tk, session: session, ownsEnv: ownsEnv}, nil
}

// ModelID identifies the model for cache keys and logs.
func (r *Recognizer) ModelID() string {
	return "onnx:" + filepath.Base(r.cfg.ModelPath)
}

// Close releases the session and, if this recognizer created it, the runtime.
func (r *Recognizer) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.session != nil {
		err = r.session.Destroy()
		r.session = nil
	}
	if r.ownsEnv {
		if derr := ort.DestroyEnvironment(); derr != nil && err == nil {
			err = derr
		}
		r.ownsEnv = false
	}
	return err
}

// Recognize tags a single text and returns its entity spans in text order.
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, errors.New("recognizer is closed")
	}
	enc, err := r.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	n := len(enc.Ids)
	if n == 0 {
		return nil, nil
	}
	if n > r.cfg.MaxSeqLen {
		n = r.cfg.MaxSeqLen
	}

	feeds := map[string][]int64{
		inputIDs:      toInt64(enc.Ids, n),
		attentionMask: toInt64(enc.AttentionMask, n),
		tokenTypeIDs:  toInt64(enc.TypeIds, n),
	}
	shape := ort.NewShape(1, int64(n))
	inputs := make([]ort.Value, 0, len(r.cfg.InputNames))
	defer func() {
		for _, v := range inputs {
			_ = v.Destroy()
		}
	}()
	for _, name := range r.cfg.InputNames {
		t, err := ort.NewTensor(shape, feeds[name])
		if err != nil {
			return nil, fmt.Errorf("create %s tensor: %w", name, err)
		}
		inputs = append(inputs, t)
	}

	numLabels := len(r.cfg.Labels)
	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(n), int64(numLabels)))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := r.session.Run(inputs, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}
	logits := out.GetData()
	if len(logits) < n*numLabels {
		return nil, fmt.Errorf("unexpected output size %d for %d tokens x %d labels", len(logits), n, numLabels)
	}
	tags := argmaxLabels(logits, n, r.cfg.Labels)
	return Decode(text, enc.Tokens[:n], enc.Offsets[:n], tags), nil
}

// toInt64 converts the first n values, padding with zeros when src is short.
func toInt64(src []int, n int) []int64 {
	out := make([]int64, n)
	for i := 0; i < n && i < len(src); i++ {
		out[i] = int64(src[i])
	}
	return out
}

func argmaxLabels(logits []float32, n int, labels []string) []string {
	k := len(labels)
	tags := make([]string, n)
	for i := 0; i < n; i++ {
		row := logits[i*k : (i+1)*k]
		best := 0
		for j := 1; j < k; j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		tags[i] = labels[best]
	}
	return tags
}
