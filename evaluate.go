package gsdmm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// EvalResult holds a clustering quality report. The supervised fields
// are filled only when reference labels were given.
type EvalResult struct {
	Docs     int         `json:"docs"`
	Clusters int         `json:"clusters"`
	Sizes    map[int]int `json:"sizes"`

	// SizeEntropy is the Shannon entropy of the cluster size
	// distribution in nats. Higher means more evenly sized clusters.
	SizeEntropy float64 `json:"size_entropy"`

	Classes int `json:"classes,omitempty"`

	// Purity is the fraction of documents falling into their cluster's
	// majority class.
	Purity float64 `json:"purity,omitempty"`

	// NMI is the normalized mutual information between the clustering
	// and the reference labels, between 0 and 1.
	NMI float64 `json:"nmi,omitempty"`

	// Contingency counts documents per cluster and reference label.
	Contingency map[int]map[string]int `json:"contingency,omitempty"`
}

// Evaluate clusters the texts and reports on the result. labels may be
// nil for an unsupervised report; when given, one reference label per
// text adds purity, NMI and the contingency table. A nil config uses
// the training defaults.
func Evaluate(texts, labels []string, config *TrainConfig) (*EvalResult, error) {
	if labels != nil && len(labels) != len(texts) {
		return nil, fmt.Errorf("gsdmm: got %d texts but %d labels", len(texts), len(labels))
	}
	_, pred, err := Train(texts, config)
	if err != nil {
		return nil, err
	}
	return evalScore(pred, labels), nil
}

func evalScore(pred []int, labels []string) *EvalResult {
	sizes := make(map[int]int)
	for _, z := range pred {
		sizes[z]++
	}

	res := &EvalResult{
		Docs:     len(pred),
		Clusters: len(sizes),
		Sizes:    sizes,
	}
	if len(pred) == 0 {
		return res
	}

	dist := make([]float64, 0, len(sizes))
	for _, c := range sizes {
		dist = append(dist, float64(c)/float64(len(pred)))
	}
	res.SizeEntropy = stat.Entropy(dist)

	if labels == nil {
		return res
	}

	table := make(map[int]map[string]int)
	classes := make(map[string]bool)
	for i, z := range pred {
		if table[z] == nil {
			table[z] = make(map[string]int)
		}
		table[z][labels[i]]++
		classes[labels[i]] = true
	}

	correct := 0
	for _, counts := range table {
		best := 0
		for _, c := range counts {
			if c > best {
				best = c
			}
		}
		correct += best
	}

	res.Classes = len(classes)
	res.Purity = float64(correct) / float64(len(pred))
	res.NMI = nmi(table, len(pred))
	res.Contingency = table
	return res
}

// nmi computes normalized mutual information from a contingency table of
// cluster by class document counts.
func nmi(table map[int]map[string]int, n int) float64 {
	clusterTotals := make(map[int]int)
	classTotals := make(map[string]int)
	for z, counts := range table {
		for label, c := range counts {
			clusterTotals[z] += c
			classTotals[label] += c
		}
	}

	pu := make([]float64, 0, len(clusterTotals))
	for _, c := range clusterTotals {
		pu = append(pu, float64(c)/float64(n))
	}
	pv := make([]float64, 0, len(classTotals))
	for _, c := range classTotals {
		pv = append(pv, float64(c)/float64(n))
	}
	hu := stat.Entropy(pu)
	hv := stat.Entropy(pv)

	var mi float64
	for z, counts := range table {
		for label, c := range counts {
			pzl := float64(c) / float64(n)
			pz := float64(clusterTotals[z]) / float64(n)
			pl := float64(classTotals[label]) / float64(n)
			mi += pzl * math.Log(pzl/(pz*pl))
		}
	}

	denom := math.Sqrt(hu * hv)
	if denom == 0 {
		// Both partitions trivial means perfect agreement; one trivial
		// partition carries no information about the other.
		if hu == 0 && hv == 0 {
			return 1
		}
		return 0
	}
	return mi / denom
}
