package dmm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Score returns the posterior probability of doc belonging to each of the K
// clusters, implementing formula 3 of Yin and Wang 2014 in log space. The
// vector sums to 1 unless every unnormalized entry underflows to zero, in
// which case the raw zero vector is returned unchanged.
func (m *Model) Score(doc []string) []float64 {
	p := make([]float64, m.K)

	vBeta := float64(m.VocabSize) * m.Beta
	lD1 := math.Log(float64(m.NumDocs) - 1 + float64(m.K)*m.Alpha)

	for z := 0; z < m.K; z++ {
		lN1 := math.Log(float64(m.ClusterDocCount[z]) + m.Alpha)

		// Unseen tokens contribute a frequency of zero.
		lN2 := 0.0
		for _, w := range doc {
			lN2 += math.Log(float64(m.ClusterWordDist[z][w]) + m.Beta)
		}

		// The j-1 offset accounts for drawing the document's tokens
		// without replacement.
		lD2 := 0.0
		base := float64(m.ClusterWordCount[z]) + vBeta
		for j := 1; j <= len(doc); j++ {
			lD2 += math.Log(base + float64(j) - 1)
		}

		p[z] = math.Exp(lN1 - lD1 + lN2 - lD2)
	}

	if sum := floats.Sum(p); sum > 0 {
		floats.Scale(1/sum, p)
	}
	return p
}

// ChooseBestLabel returns the most probable cluster for doc and its
// probability. Ties resolve to the lowest cluster index. The model is not
// mutated, so new documents can be labeled after fitting.
func (m *Model) ChooseBestLabel(doc []string) (int, float64) {
	p := m.Score(doc)
	best := floats.MaxIdx(p)
	return best, p[best]
}
