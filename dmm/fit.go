package dmm

import "log/slog"

// minSweeps is the zero-based sweep index a fit must pass before the
// convergence check may stop it early. At least minSweeps+1 full sweeps
// always run when MaxIters allows.
const minSweeps = 25

// Fit clusters docs and returns the cluster label chosen for each document,
// in input order. vocabSize is the number of distinct tokens across the
// whole corpus. Fit runs once per model; the final statistics stay on the
// model for scoring, summarization, and export.
func (m *Model) Fit(docs [][]string, vocabSize int) []int {
	m.NumDocs = len(docs)
	m.VocabSize = vocabSize

	labels := make([]int, len(docs))
	uniform := make([]float64, m.K)
	for z := range uniform {
		uniform[z] = 1.0 / float64(m.K)
	}

	// Assign every document to a uniformly random cluster.
	for i, doc := range docs {
		z := m.sample(uniform)
		labels[i] = z
		m.addDoc(doc, z)
	}

	clusterCount := m.K
	for sweep := 0; sweep < m.MaxIters; sweep++ {
		transfers := 0

		for i, doc := range docs {
			// Resample against statistics that exclude this document.
			zOld := labels[i]
			m.removeDoc(doc, zOld)

			p := m.Score(doc)
			zNew := m.sample(p)
			if zNew != zOld {
				transfers++
			}

			labels[i] = zNew
			m.addDoc(doc, zNew)
		}

		populated := m.PopulatedClusters()
		slog.Debug("DMM sampling sweep", "sweep", sweep+1, "transfers", transfers, "clusters", populated)
		if m.onSweep != nil {
			m.onSweep(Progress{Sweep: sweep, Transfers: transfers, Clusters: populated})
		}

		if transfers == 0 && populated == clusterCount && sweep > minSweeps {
			slog.Debug("DMM converged", "sweep", sweep+1, "clusters", populated)
			break
		}
		clusterCount = populated
	}
	return labels
}

// sample draws one index from the categorical distribution p. Probability
// mass missing from p falls to the last index, so a degenerate all-zero
// vector yields K-1 deterministically.
func (m *Model) sample(p []float64) int {
	u := m.randFloat()
	cum := 0.0
	for i, w := range p {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(p) - 1
}
