// Package gsdmm clusters short texts into topics with a Dirichlet
// multinomial mixture model.
//
// It implements the collapsed Gibbs sampler of Yin and Wang (2014). The
// sampler starts from an upper bound K on the number of clusters and
// leaves surplus clusters empty, so the number of topics does not need
// to be known in advance.
//
//	model, labels, _ := gsdmm.Train(texts, nil)
//	fmt.Println(labels[0])
//	for cluster, words := range model.TopWords(5, " ") {
//	    fmt.Println(cluster, words)
//	}
package gsdmm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/happyhackingspace/gsdmm/dmm"
	"github.com/happyhackingspace/gsdmm/internal/textutil"
)

// Model wraps a fitted sampler together with the tokenizer options used
// to build it, so new texts are tokenized the same way as the training
// corpus.
type Model struct {
	mm   *dmm.Model
	opts textutil.Options
}

// modelFile is the on-disk JSON envelope for a saved model.
type modelFile struct {
	Model     json.RawMessage  `json:"model"`
	Tokenizer textutil.Options `json:"tokenizer"`
}

// New loads the model from "model.json", searching the current directory
// and parent directories up to the module root (where go.mod lives).
func New() (*Model, error) {
	path, err := findModel("model.json")
	if err != nil {
		return nil, fmt.Errorf("gsdmm: %w", err)
	}
	return Load(path)
}

func findModel(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("model.json not found")
}

// Load loads a trained model from a model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gsdmm: %w", err)
	}
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("gsdmm: parse model file: %w", err)
	}
	mm, err := dmm.UnmarshalModel(mf.Model)
	if err != nil {
		return nil, fmt.Errorf("gsdmm: %w", err)
	}
	return &Model{mm: mm, opts: mf.Tokenizer}, nil
}

// Save writes the model to a model file.
func (m *Model) Save(path string) error {
	if m.mm == nil {
		return fmt.Errorf("gsdmm: model not initialized")
	}
	raw, err := dmm.MarshalModel(m.mm)
	if err != nil {
		return fmt.Errorf("gsdmm: %w", err)
	}
	data, err := json.MarshalIndent(modelFile{Model: raw, Tokenizer: m.opts}, "", "  ")
	if err != nil {
		return fmt.Errorf("gsdmm: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("gsdmm: %w", err)
	}
	return nil
}

// BestLabel tokenizes the text and returns the most likely cluster and
// its probability.
func (m *Model) BestLabel(text string) (int, float64, error) {
	if m.mm == nil {
		return 0, 0, fmt.Errorf("gsdmm: model not initialized")
	}
	label, prob := m.mm.ChooseBestLabel(textutil.Process(text, m.opts))
	return label, prob, nil
}

// Probabilities tokenizes the text and returns the cluster probability
// vector.
func (m *Model) Probabilities(text string) ([]float64, error) {
	if m.mm == nil {
		return nil, fmt.Errorf("gsdmm: model not initialized")
	}
	return m.mm.Score(textutil.Process(text, m.opts)), nil
}

// Labels returns the most likely cluster for each text.
func (m *Model) Labels(texts []string) ([]int, error) {
	if m.mm == nil {
		return nil, fmt.Errorf("gsdmm: model not initialized")
	}
	labels := make([]int, len(texts))
	for i, text := range texts {
		labels[i], _ = m.mm.ChooseBestLabel(textutil.Process(text, m.opts))
	}
	return labels, nil
}

// TopWords returns the most frequent words per cluster, joined by sep.
// Empty clusters map to an empty string.
func (m *Model) TopWords(n int, sep string) map[int]string {
	if m.mm == nil {
		return nil
	}
	return m.mm.TopWords(n, sep)
}

// Summaries returns per-cluster statistics ordered by document count.
func (m *Model) Summaries(n int) []dmm.ClusterSummary {
	if m.mm == nil {
		return nil
	}
	return m.mm.Summaries(n)
}

// K returns the cluster upper bound the model was trained with.
func (m *Model) K() int {
	if m.mm == nil {
		return 0
	}
	return m.mm.K
}

// NumDocs returns the number of training documents.
func (m *Model) NumDocs() int {
	if m.mm == nil {
		return 0
	}
	return m.mm.NumDocs
}

// VocabSize returns the training vocabulary size.
func (m *Model) VocabSize() int {
	if m.mm == nil {
		return 0
	}
	return m.mm.VocabSize
}

// Populated returns the number of non-empty clusters.
func (m *Model) Populated() int {
	if m.mm == nil {
		return 0
	}
	return m.mm.PopulatedClusters()
}
