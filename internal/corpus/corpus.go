// Package corpus loads and tokenizes short text documents for clustering.
package corpus

import (
	"sort"

	"github.com/happyhackingspace/gsdmm/internal/textutil"
)

// Corpus holds the tokenized documents of one clustering run.
type Corpus struct {
	Texts []string       // raw input texts, in input order
	Docs  [][]string     // tokenized documents, same order as Texts
	Vocab map[string]int // token -> total occurrences across the corpus
}

// Build tokenizes texts with the given options and collects the vocabulary.
func Build(texts []string, opts textutil.Options) *Corpus {
	c := &Corpus{
		Texts: texts,
		Docs:  make([][]string, len(texts)),
		Vocab: make(map[string]int),
	}
	for i, text := range texts {
		doc := textutil.Process(text, opts)
		c.Docs[i] = doc
		for _, tok := range doc {
			c.Vocab[tok]++
		}
	}
	return c
}

// VocabSize returns the number of distinct tokens in the corpus.
func (c *Corpus) VocabSize() int {
	return len(c.Vocab)
}

// Stats describes the shape of a tokenized corpus.
type Stats struct {
	Documents  int     `json:"documents"`
	EmptyDocs  int     `json:"empty_docs"`
	Tokens     int     `json:"tokens"`
	Vocabulary int     `json:"vocabulary"`
	AvgTokens  float64 `json:"avg_tokens"`
	MaxTokens  int     `json:"max_tokens"`
}

// Stats summarizes the corpus. Documents that tokenized to nothing count
// as empty but stay in the corpus to keep label indices aligned.
func (c *Corpus) Stats() Stats {
	s := Stats{Documents: len(c.Docs), Vocabulary: len(c.Vocab)}
	for _, doc := range c.Docs {
		if len(doc) == 0 {
			s.EmptyDocs++
		}
		s.Tokens += len(doc)
		if len(doc) > s.MaxTokens {
			s.MaxTokens = len(doc)
		}
	}
	if s.Documents > 0 {
		s.AvgTokens = float64(s.Tokens) / float64(s.Documents)
	}
	return s
}

// TokenCount pairs a token with its corpus frequency.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// TopTokens returns the n most frequent tokens, most frequent first.
// Ties are ordered alphabetically.
func (c *Corpus) TopTokens(n int) []TokenCount {
	counts := make([]TokenCount, 0, len(c.Vocab))
	for tok, cnt := range c.Vocab {
		counts = append(counts, TokenCount{Token: tok, Count: cnt})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Token < counts[j].Token
	})
	if n < 0 {
		n = 0
	}
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
