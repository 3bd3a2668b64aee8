// Package dmm implements collapsed Gibbs sampling for a Dirichlet Mixture
// Model (GSDMM, Yin and Wang 2014), clustering short text documents into at
// most K topics. Documents are token multisets; the realized number of
// populated clusters is discovered during fitting and is typically well
// below K.
package dmm

import (
	"fmt"
	"math/rand"
)

// Default hyperparameters, matching Yin and Wang 2014.
const (
	DefaultK        = 8
	DefaultAlpha    = 0.1
	DefaultBeta     = 0.1
	DefaultMaxIters = 30
)

// Config holds the sampler hyperparameters.
type Config struct {
	K        int     // upper bound on the number of clusters
	Alpha    float64 // affinity for joining an empty cluster, in (0, 1]
	Beta     float64 // affinity for clusters with similar token usage, in (0, 1]
	MaxIters int     // maximum number of Gibbs sweeps

	// Rand supplies randomness for initialization and reassignment draws.
	// When nil the process-wide source is used; inject a seeded generator
	// for reproducible fits.
	Rand *rand.Rand

	// OnSweep, when set, is invoked after every completed sweep.
	OnSweep func(Progress)
}

// Progress describes one completed Gibbs sweep.
type Progress struct {
	Sweep     int // zero-based sweep index
	Transfers int // documents that changed cluster during the sweep
	Clusters  int // clusters holding at least one document after the sweep
}

// DefaultConfig returns a Config with the default hyperparameters.
func DefaultConfig() Config {
	return Config{K: DefaultK, Alpha: DefaultAlpha, Beta: DefaultBeta, MaxIters: DefaultMaxIters}
}

func (c Config) withDefaults() Config {
	if c.K == 0 {
		c.K = DefaultK
	}
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	if c.Beta == 0 {
		c.Beta = DefaultBeta
	}
	if c.MaxIters == 0 {
		c.MaxIters = DefaultMaxIters
	}
	return c
}

func (c Config) validate() error {
	if c.K <= 0 {
		return fmt.Errorf("invalid config: K must be positive, got %d", c.K)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("invalid config: alpha must be positive, got %v", c.Alpha)
	}
	if c.Beta <= 0 {
		return fmt.Errorf("invalid config: beta must be positive, got %v", c.Beta)
	}
	if c.MaxIters < 0 {
		return fmt.Errorf("invalid config: max iterations must not be negative, got %d", c.MaxIters)
	}
	return nil
}

// Model holds the cluster statistics of a Dirichlet Mixture Model. The
// statistics are mutated in place during fitting; a fitted model is
// read-only for scoring and summarization.
type Model struct {
	K        int     `json:"k"`
	Alpha    float64 `json:"alpha"`
	Beta     float64 `json:"beta"`
	MaxIters int     `json:"max_iters"`

	NumDocs   int `json:"num_docs"`
	VocabSize int `json:"vocab_size"`

	// ClusterWordDist[z] stores per-token occurrence counts for cluster z.
	// Entries are removed when they reach zero, so absence means zero.
	ClusterDocCount  []int            `json:"cluster_doc_count"`
	ClusterWordCount []int            `json:"cluster_word_count"`
	ClusterWordDist  []map[string]int `json:"cluster_word_distribution"`

	rng     *rand.Rand
	onSweep func(Progress)
}

// New creates an unfitted model. Zero-valued config fields take their
// defaults; explicit non-positive hyperparameters are rejected.
func New(cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Model{
		K:                cfg.K,
		Alpha:            cfg.Alpha,
		Beta:             cfg.Beta,
		MaxIters:         cfg.MaxIters,
		ClusterDocCount:  make([]int, cfg.K),
		ClusterWordCount: make([]int, cfg.K),
		ClusterWordDist:  make([]map[string]int, cfg.K),
		rng:              cfg.Rand,
		onSweep:          cfg.OnSweep,
	}
	for z := range m.ClusterWordDist {
		m.ClusterWordDist[z] = make(map[string]int)
	}
	return m, nil
}

// FromData reconstructs a model from previously computed statistics. The
// result scores and summarizes identically to the model that produced the
// statistics, without refitting. The slices are adopted, not copied.
func FromData(cfg Config, numDocs, vocabSize int, docCount, wordCount []int, wordDist []map[string]int) (*Model, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Model{
		K:                cfg.K,
		Alpha:            cfg.Alpha,
		Beta:             cfg.Beta,
		MaxIters:         cfg.MaxIters,
		NumDocs:          numDocs,
		VocabSize:        vocabSize,
		ClusterDocCount:  docCount,
		ClusterWordCount: wordCount,
		ClusterWordDist:  wordDist,
		rng:              cfg.Rand,
		onSweep:          cfg.OnSweep,
	}
	if err := m.checkState(); err != nil {
		return nil, err
	}
	return m, nil
}

// checkState verifies the statistics slices cover all K cluster slots and
// replaces nil distributions with empty ones.
func (m *Model) checkState() error {
	if len(m.ClusterDocCount) != m.K || len(m.ClusterWordCount) != m.K || len(m.ClusterWordDist) != m.K {
		return fmt.Errorf("cluster statistics do not match K=%d: %d doc counts, %d word counts, %d distributions",
			m.K, len(m.ClusterDocCount), len(m.ClusterWordCount), len(m.ClusterWordDist))
	}
	for z, dist := range m.ClusterWordDist {
		if dist == nil {
			m.ClusterWordDist[z] = make(map[string]int)
		}
	}
	return nil
}

// PopulatedClusters returns the number of clusters holding at least one
// document.
func (m *Model) PopulatedClusters() int {
	n := 0
	for _, c := range m.ClusterDocCount {
		if c > 0 {
			n++
		}
	}
	return n
}

// addDoc applies a document's contribution to cluster z.
func (m *Model) addDoc(doc []string, z int) {
	m.ClusterDocCount[z]++
	m.ClusterWordCount[z] += len(doc)
	dist := m.ClusterWordDist[z]
	for _, w := range doc {
		dist[w]++
	}
}

// removeDoc reverses addDoc, pruning token entries that reach zero.
func (m *Model) removeDoc(doc []string, z int) {
	m.ClusterDocCount[z]--
	m.ClusterWordCount[z] -= len(doc)
	dist := m.ClusterWordDist[z]
	for _, w := range doc {
		dist[w]--
		if dist[w] == 0 {
			delete(dist, w)
		}
	}
}

func (m *Model) randFloat() float64 {
	if m.rng != nil {
		return m.rng.Float64()
	}
	return rand.Float64()
}
