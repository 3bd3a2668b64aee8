package dmm

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// checkStats verifies the bookkeeping invariants: doc counts sum to the
// corpus size, word counts agree with the distributions, and no pruned
// token lingers at a non-positive count.
func checkStats(t *testing.T, m *Model, wantDocs int) {
	t.Helper()
	totalDocs := 0
	for z, c := range m.ClusterDocCount {
		if c < 0 {
			t.Fatalf("cluster %d has negative doc count %d", z, c)
		}
		totalDocs += c
	}
	if totalDocs != wantDocs {
		t.Fatalf("doc counts sum to %d, want %d", totalDocs, wantDocs)
	}
	for z := 0; z < m.K; z++ {
		sum := 0
		for w, c := range m.ClusterWordDist[z] {
			if c <= 0 {
				t.Fatalf("cluster %d holds token %q with count %d", z, w, c)
			}
			sum += c
		}
		if sum != m.ClusterWordCount[z] {
			t.Fatalf("cluster %d word count %d, distribution sums to %d", z, m.ClusterWordCount[z], sum)
		}
	}
}

func TestFitLabels(t *testing.T) {
	docs := [][]string{
		{"a", "b"}, {"a", "c"}, {"x", "y"}, {"x", "z"}, {"b", "c"},
	}
	m, err := New(Config{K: 4, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatal(err)
	}
	labels := m.Fit(docs, 6)

	if len(labels) != len(docs) {
		t.Fatalf("got %d labels for %d docs", len(labels), len(docs))
	}
	for i, z := range labels {
		if z < 0 || z >= m.K {
			t.Errorf("doc %d labeled %d, outside [0, %d)", i, z, m.K)
		}
	}
	if m.NumDocs != len(docs) || m.VocabSize != 6 {
		t.Errorf("NumDocs=%d VocabSize=%d after fit", m.NumDocs, m.VocabSize)
	}
	checkStats(t, m, len(docs))
}

func TestFitInvariantsEverySweep(t *testing.T) {
	docs := [][]string{
		{"a", "b", "a"}, {"b", "c"}, {"x", "y", "y"}, {"x"}, {"a", "c", "b"}, {"y", "x"},
	}
	var m *Model
	sweeps := 0
	cfg := Config{
		K:    3,
		Rand: rand.New(rand.NewSource(5)),
		OnSweep: func(p Progress) {
			sweeps++
			checkStats(t, m, len(docs))
			if p.Clusters != m.PopulatedClusters() {
				t.Fatalf("sweep %d reported %d clusters, model has %d", p.Sweep, p.Clusters, m.PopulatedClusters())
			}
		},
	}
	m, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.Fit(docs, 6)

	if sweeps == 0 {
		t.Fatal("no sweeps observed")
	}
	checkStats(t, m, len(docs))
}

func TestFitDeterminism(t *testing.T) {
	docs := [][]string{
		{"a", "b"}, {"b", "c"}, {"x", "y"}, {"y", "z"}, {"a", "c"}, {"x", "z"},
	}
	fit := func(seed int64) []int {
		m, err := New(Config{K: 4, Rand: rand.New(rand.NewSource(seed))})
		if err != nil {
			t.Fatal(err)
		}
		return m.Fit(docs, 6)
	}

	first := fit(99)
	second := fit(99)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different labels: %v vs %v", first, second)
	}
}

func TestFitConvergenceFloor(t *testing.T) {
	// With K=1 every sweep has zero transfers and one populated cluster
	// from the start, so the fit stops at the earliest sweep the
	// convergence rule allows.
	docs := [][]string{{"a"}, {"a", "b"}, {"b"}}
	sweeps := 0
	m, err := New(Config{
		K:       1,
		OnSweep: func(Progress) { sweeps++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	m.Fit(docs, 2)

	if sweeps != minSweeps+2 {
		t.Errorf("fit ran %d sweeps, want %d", sweeps, minSweeps+2)
	}
}

func TestFitMaxItersCeiling(t *testing.T) {
	// A ceiling below the convergence floor wins: exactly MaxIters sweeps.
	docs := [][]string{{"a"}, {"b"}}
	sweeps := 0
	m, err := New(Config{
		K:        1,
		MaxIters: 10,
		OnSweep:  func(Progress) { sweeps++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	m.Fit(docs, 2)

	if sweeps != 10 {
		t.Errorf("fit ran %d sweeps, want 10", sweeps)
	}
}

func TestFitSeparatesVocabularies(t *testing.T) {
	// Two disjoint vocabularies with long, repetitive documents: the
	// sampler reliably settles with each vocabulary in its own cluster.
	var docs [][]string
	for i := 0; i < 24; i++ {
		docs = append(docs, []string{"alpha", "beta", "alpha", "beta", "alpha", "beta", "alpha", "beta"})
	}
	for i := 0; i < 24; i++ {
		docs = append(docs, []string{"gamma", "delta", "gamma", "delta", "gamma", "delta", "gamma", "delta"})
	}

	m, err := New(Config{K: 2, Rand: rand.New(rand.NewSource(42))})
	if err != nil {
		t.Fatal(err)
	}
	labels := m.Fit(docs, 4)

	first := labels[0]
	for i := 1; i < 24; i++ {
		if labels[i] != first {
			t.Fatalf("alpha/beta doc %d labeled %d, others %d", i, labels[i], first)
		}
	}
	second := labels[24]
	for i := 25; i < 48; i++ {
		if labels[i] != second {
			t.Fatalf("gamma/delta doc %d labeled %d, others %d", i, labels[i], second)
		}
	}
	if first == second {
		t.Fatal("both vocabularies landed in the same cluster")
	}

	words := m.TopWords(2, " ")
	wantFirst := map[string]bool{"alpha": true, "beta": true}
	wantSecond := map[string]bool{"gamma": true, "delta": true}
	gotFirst := setOf(words[first])
	gotSecond := setOf(words[second])
	if !reflect.DeepEqual(gotFirst, wantFirst) {
		t.Errorf("cluster %d top words = %v, want alpha+beta", first, gotFirst)
	}
	if !reflect.DeepEqual(gotSecond, wantSecond) {
		t.Errorf("cluster %d top words = %v, want gamma+delta", second, gotSecond)
	}
	checkStats(t, m, len(docs))
}

func TestFitLeavesSpareClustersEmpty(t *testing.T) {
	// Three documents cannot populate more than three of eight slots.
	docs := [][]string{{"a", "b"}, {"a", "b"}, {"a", "b"}}
	m, err := New(Config{K: 8, Rand: rand.New(rand.NewSource(3))})
	if err != nil {
		t.Fatal(err)
	}
	m.Fit(docs, 2)

	if got := m.PopulatedClusters(); got > 3 {
		t.Fatalf("PopulatedClusters = %d with only 3 docs", got)
	}
	words := m.TopWords(5, " ")
	if len(words) != 8 {
		t.Fatalf("TopWords covers %d slots, want 8", len(words))
	}
	for z, c := range m.ClusterDocCount {
		if c == 0 && words[z] != "" {
			t.Errorf("empty cluster %d has top words %q", z, words[z])
		}
	}
}

func TestSample(t *testing.T) {
	m, err := New(Config{K: 3, Rand: rand.New(rand.NewSource(11))})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		if got := m.sample([]float64{1, 0, 0}); got != 0 {
			t.Fatalf("sample([1,0,0]) = %d", got)
		}
	}
	for i := 0; i < 100; i++ {
		if got := m.sample([]float64{0, 0, 1}); got != 2 {
			t.Fatalf("sample([0,0,1]) = %d", got)
		}
	}
	// Degenerate all-zero vector falls to the last index.
	for i := 0; i < 100; i++ {
		if got := m.sample([]float64{0, 0, 0}); got != 2 {
			t.Fatalf("sample([0,0,0]) = %d", got)
		}
	}

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		z := m.sample([]float64{0.5, 0.25, 0.25})
		if z < 0 || z > 2 {
			t.Fatalf("sample out of range: %d", z)
		}
		seen[z] = true
	}
	if len(seen) != 3 {
		t.Errorf("1000 draws over [0.5 0.25 0.25] hit only %v", seen)
	}
}

func setOf(joined string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(joined) {
		set[w] = true
	}
	return set
}
