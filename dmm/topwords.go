package dmm

import (
	"sort"
	"strings"
)

// WordCount is one token and its occurrence count within a cluster.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ClusterSummary describes one cluster slot of a fitted model.
type ClusterSummary struct {
	Cluster   int         `json:"cluster"`
	DocCount  int         `json:"doc_count"`
	WordCount int         `json:"word_count"`
	TopWords  []WordCount `json:"top_words"`
}

// TopWords returns the kWords highest-frequency tokens of every cluster
// slot joined by sep, keyed by cluster index. All K slots are present;
// empty clusters map to an empty string. Ranking is by count descending,
// ties broken alphabetically to keep output deterministic.
func (m *Model) TopWords(kWords int, sep string) map[int]string {
	words := make(map[int]string, m.K)
	for z := 0; z < m.K; z++ {
		wcs := m.topWordCounts(z, kWords)
		toks := make([]string, len(wcs))
		for i, wc := range wcs {
			toks[i] = wc.Word
		}
		words[z] = strings.Join(toks, sep)
	}
	return words
}

// Summaries returns a summary for every cluster slot, ordered by document
// count descending. Slots with equal counts keep ascending cluster order.
func (m *Model) Summaries(kWords int) []ClusterSummary {
	res := make([]ClusterSummary, 0, m.K)
	for z := 0; z < m.K; z++ {
		res = append(res, ClusterSummary{
			Cluster:   z,
			DocCount:  m.ClusterDocCount[z],
			WordCount: m.ClusterWordCount[z],
			TopWords:  m.topWordCounts(z, kWords),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].DocCount > res[j].DocCount })
	return res
}

func (m *Model) topWordCounts(z, kWords int) []WordCount {
	if kWords < 0 {
		kWords = 0
	}
	dist := m.ClusterWordDist[z]
	wcs := make([]WordCount, 0, len(dist))
	for w, c := range dist {
		wcs = append(wcs, WordCount{Word: w, Count: c})
	}
	sort.Slice(wcs, func(i, j int) bool {
		if wcs[i].Count != wcs[j].Count {
			return wcs[i].Count > wcs[j].Count
		}
		return wcs[i].Word < wcs[j].Word
	})
	if len(wcs) > kWords {
		wcs = wcs[:kWords]
	}
	return wcs
}
