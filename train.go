package gsdmm

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/happyhackingspace/gsdmm/dmm"
	"github.com/happyhackingspace/gsdmm/internal/corpus"
	"github.com/happyhackingspace/gsdmm/internal/textutil"
)

// TrainConfig holds configuration for training. The zero value uses the
// package defaults: K=8 clusters, alpha=beta=0.1, 30 sweeps, lowercased
// unigrams with the English stop word list.
type TrainConfig struct {
	// K is the upper bound on the number of clusters. The sampler leaves
	// surplus clusters empty, so K only needs to exceed the number of
	// topics actually present.
	K        int
	Alpha    float64
	Beta     float64
	MaxIters int

	// Seed fixes the random source for reproducible runs. Zero keeps the
	// process-wide source.
	Seed int64

	// KeepCase disables lowercasing during tokenization.
	KeepCase bool

	MinTokenLength int

	// StopWords selects the stop word list: "english" (the default) or
	// "none".
	StopWords      string
	ExtraStopWords []string

	// MaxNgram emits word n-grams up to this length.
	MaxNgram int

	// Progress, when set, is called after every sampling sweep.
	Progress func(dmm.Progress)
}

// Train clusters the given texts and returns the fitted model together
// with one cluster label per text. A nil config uses the defaults.
func Train(texts []string, config *TrainConfig) (*Model, []int, error) {
	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("gsdmm: no documents to cluster")
	}

	opts := config.tokenOptions()
	c := corpus.Build(texts, opts)
	if c.VocabSize() == 0 {
		return nil, nil, fmt.Errorf("gsdmm: corpus is empty after tokenization")
	}

	var cfg dmm.Config
	if config != nil {
		cfg = dmm.Config{
			K:        config.K,
			Alpha:    config.Alpha,
			Beta:     config.Beta,
			MaxIters: config.MaxIters,
			OnSweep:  config.Progress,
		}
		if config.Seed != 0 {
			cfg.Rand = rand.New(rand.NewSource(config.Seed))
		}
	}
	mm, err := dmm.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("gsdmm: %w", err)
	}

	labels := mm.Fit(c.Docs, c.VocabSize())
	return &Model{mm: mm, opts: opts}, labels, nil
}

// tokenOptions maps the training config onto tokenizer options. A nil
// receiver yields the defaults.
func (c *TrainConfig) tokenOptions() textutil.Options {
	opts := textutil.DefaultOptions()
	if c == nil {
		opts.StopWords = textutil.EnglishStopWords()
		return opts
	}
	opts.Lowercase = !c.KeepCase
	if c.MinTokenLength > 0 {
		opts.MinTokenLength = c.MinTokenLength
	}
	if c.MaxNgram > 1 {
		opts.MaxNgram = c.MaxNgram
	}
	if !strings.EqualFold(c.StopWords, "none") {
		opts.StopWords = textutil.EnglishStopWords()
	}
	for _, w := range c.ExtraStopWords {
		if opts.StopWords == nil {
			opts.StopWords = make(map[string]bool)
		}
		opts.StopWords[strings.ToLower(w)] = true
	}
	return opts
}
