// Package config holds the on-disk configuration for clustering runs.
package config

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/happyhackingspace/gsdmm/dmm"
	"github.com/happyhackingspace/gsdmm/internal/corpus"
	"github.com/happyhackingspace/gsdmm/internal/textutil"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "gsdmm.yaml"

// Config mirrors the YAML configuration file.
type Config struct {
	Sampler   SamplerConfig   `yaml:"sampler" json:"sampler"`
	Tokenizer TokenizerConfig `yaml:"tokenizer" json:"tokenizer"`
	Corpus    CorpusConfig    `yaml:"corpus" json:"corpus"`
	Report    ReportConfig    `yaml:"report" json:"report"`
}

// SamplerConfig configures the Gibbs sampler.
type SamplerConfig struct {
	K        int     `yaml:"k" json:"k"`
	Alpha    float64 `yaml:"alpha" json:"alpha"`
	Beta     float64 `yaml:"beta" json:"beta"`
	MaxIters int     `yaml:"max_iters" json:"max_iters"`

	// Seed fixes the random source for reproducible runs. 0 leaves the
	// process-wide source in place.
	Seed int64 `yaml:"seed" json:"seed"`
}

// TokenizerConfig configures how raw text becomes tokens.
type TokenizerConfig struct {
	Lowercase      bool     `yaml:"lowercase" json:"lowercase"`
	MinTokenLength int      `yaml:"min_token_length" json:"min_token_length"`
	StopWords      string   `yaml:"stop_words" json:"stop_words"` // "english" or "none"
	ExtraStopWords []string `yaml:"extra_stop_words" json:"extra_stop_words"`
	MaxNgram       int      `yaml:"max_ngram" json:"max_ngram"`
}

// CorpusConfig configures how documents are read from input files.
type CorpusConfig struct {
	Format      string `yaml:"format" json:"format"` // auto, text, csv, jsonl or html
	TextColumn  string `yaml:"text_column" json:"text_column"`
	LabelColumn string `yaml:"label_column" json:"label_column"`
	Selector    string `yaml:"selector" json:"selector"`
}

// ReportConfig configures topic reporting.
type ReportConfig struct {
	TopWords  int    `yaml:"top_words" json:"top_words"`
	Separator string `yaml:"separator" json:"separator"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Sampler: SamplerConfig{
			K:        dmm.DefaultK,
			Alpha:    dmm.DefaultAlpha,
			Beta:     dmm.DefaultBeta,
			MaxIters: dmm.DefaultMaxIters,
		},
		Tokenizer: TokenizerConfig{
			Lowercase:      true,
			MinTokenLength: 1,
			StopWords:      "english",
			MaxNgram:       1,
		},
		Corpus: CorpusConfig{
			Format:      "auto",
			TextColumn:  "text",
			LabelColumn: "label",
		},
		Report: ReportConfig{
			TopWords:  5,
			Separator: " ",
		},
	}
}

// Load reads a YAML config file over the defaults, so fields absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Discover loads an explicitly given config file, or DefaultFile when it
// exists in the working directory, or plain defaults.
func Discover(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

// Write writes the configuration as YAML.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Sampler.K <= 0 {
		return fmt.Errorf("sampler.k must be positive, got %d", c.Sampler.K)
	}
	if c.Sampler.Alpha <= 0 || c.Sampler.Alpha > 1 {
		return fmt.Errorf("sampler.alpha must be in (0, 1], got %v", c.Sampler.Alpha)
	}
	if c.Sampler.Beta <= 0 || c.Sampler.Beta > 1 {
		return fmt.Errorf("sampler.beta must be in (0, 1], got %v", c.Sampler.Beta)
	}
	if c.Sampler.MaxIters <= 0 {
		return fmt.Errorf("sampler.max_iters must be positive, got %d", c.Sampler.MaxIters)
	}
	if c.Tokenizer.MinTokenLength < 0 {
		return fmt.Errorf("tokenizer.min_token_length must not be negative, got %d", c.Tokenizer.MinTokenLength)
	}
	if c.Tokenizer.MaxNgram < 1 {
		return fmt.Errorf("tokenizer.max_ngram must be at least 1, got %d", c.Tokenizer.MaxNgram)
	}
	switch strings.ToLower(c.Tokenizer.StopWords) {
	case "", "none", "english":
	default:
		return fmt.Errorf("tokenizer.stop_words must be 'english' or 'none', got %q", c.Tokenizer.StopWords)
	}
	switch strings.ToLower(c.Corpus.Format) {
	case "", "auto", "text", "csv", "jsonl", "html":
	default:
		return fmt.Errorf("corpus.format must be auto, text, csv, jsonl or html, got %q", c.Corpus.Format)
	}
	if c.Report.TopWords < 0 {
		return fmt.Errorf("report.top_words must not be negative, got %d", c.Report.TopWords)
	}
	return nil
}

// ModelConfig returns the sampler section as a dmm.Config.
func (s SamplerConfig) ModelConfig() dmm.Config {
	cfg := dmm.Config{K: s.K, Alpha: s.Alpha, Beta: s.Beta, MaxIters: s.MaxIters}
	if s.Seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(s.Seed))
	}
	return cfg
}

// Options returns the tokenizer section as textutil options.
func (t TokenizerConfig) Options() textutil.Options {
	opts := textutil.Options{
		Lowercase:      t.Lowercase,
		MinTokenLength: t.MinTokenLength,
		MaxNgram:       t.MaxNgram,
	}
	if strings.EqualFold(t.StopWords, "english") {
		opts.StopWords = textutil.EnglishStopWords()
	}
	for _, w := range t.ExtraStopWords {
		if opts.StopWords == nil {
			opts.StopWords = make(map[string]bool)
		}
		opts.StopWords[strings.ToLower(w)] = true
	}
	return opts
}

// ReadOptions returns the corpus section as reader options.
func (c CorpusConfig) ReadOptions() corpus.ReadOptions {
	return corpus.ReadOptions{
		Format:      c.Format,
		TextColumn:  c.TextColumn,
		LabelColumn: c.LabelColumn,
		Selector:    c.Selector,
	}
}
