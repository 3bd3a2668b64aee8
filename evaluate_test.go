package gsdmm

import (
	"math"
	"reflect"
	"testing"
)

func TestEvalScoreUnlabeled(t *testing.T) {
	res := evalScore([]int{0, 0, 0, 2, 2, 2}, nil)
	if res.Docs != 6 || res.Clusters != 2 {
		t.Errorf("got %d docs and %d clusters, want 6 and 2", res.Docs, res.Clusters)
	}
	if !reflect.DeepEqual(res.Sizes, map[int]int{0: 3, 2: 3}) {
		t.Errorf("Sizes = %v, want {0:3 2:3}", res.Sizes)
	}
	if math.Abs(res.SizeEntropy-math.Log(2)) > 1e-12 {
		t.Errorf("SizeEntropy = %v, want ln 2", res.SizeEntropy)
	}
	if res.Classes != 0 || res.Contingency != nil {
		t.Error("supervised fields should stay empty without labels")
	}
}

func TestEvalScoreSingleClusterEntropy(t *testing.T) {
	res := evalScore([]int{1, 1, 1, 1}, nil)
	if res.SizeEntropy != 0 {
		t.Errorf("SizeEntropy = %v, want 0 for one cluster", res.SizeEntropy)
	}
}

func TestEvalScorePerfect(t *testing.T) {
	pred := []int{0, 0, 0, 1, 1, 1}
	labels := []string{"a", "a", "a", "b", "b", "b"}

	res := evalScore(pred, labels)
	if res.Docs != 6 || res.Classes != 2 || res.Clusters != 2 {
		t.Errorf("counts = %d docs, %d classes, %d clusters, want 6, 2, 2", res.Docs, res.Classes, res.Clusters)
	}
	if res.Purity != 1 {
		t.Errorf("Purity = %v, want 1", res.Purity)
	}
	if math.Abs(res.NMI-1) > 1e-12 {
		t.Errorf("NMI = %v, want 1", res.NMI)
	}
	want := map[int]map[string]int{
		0: {"a": 3},
		1: {"b": 3},
	}
	if !reflect.DeepEqual(res.Contingency, want) {
		t.Errorf("Contingency = %v, want %v", res.Contingency, want)
	}
}

func TestEvalScoreSingleCluster(t *testing.T) {
	res := evalScore([]int{0, 0, 0, 0}, []string{"a", "a", "b", "b"})
	if res.Clusters != 1 || res.Classes != 2 {
		t.Errorf("got %d clusters and %d classes, want 1 and 2", res.Clusters, res.Classes)
	}
	if res.Purity != 0.5 {
		t.Errorf("Purity = %v, want 0.5", res.Purity)
	}
	// A single cluster carries no information about the labels.
	if res.NMI != 0 {
		t.Errorf("NMI = %v, want 0", res.NMI)
	}
}

func TestEvalScoreTrivialAgreement(t *testing.T) {
	res := evalScore([]int{3, 3, 3}, []string{"a", "a", "a"})
	if res.Purity != 1 || res.NMI != 1 {
		t.Errorf("Purity = %v, NMI = %v, want 1, 1", res.Purity, res.NMI)
	}
}

func TestEvalScoreMixedClusters(t *testing.T) {
	pred := []int{0, 0, 0, 1, 1, 1}
	labels := []string{"a", "a", "b", "b", "b", "a"}

	res := evalScore(pred, labels)
	if res.Purity != 2.0/3.0 {
		t.Errorf("Purity = %v, want 2/3", res.Purity)
	}
	// Both marginals are uniform over two groups, so the normalizer is
	// log 2 and the mutual information follows from the four cells.
	wantNMI := (2.0/3.0*math.Log(4.0/3.0) + 1.0/3.0*math.Log(2.0/3.0)) / math.Log(2)
	if math.Abs(res.NMI-wantNMI) > 1e-12 {
		t.Errorf("NMI = %v, want %v", res.NMI, wantNMI)
	}
}

func TestEvaluate(t *testing.T) {
	texts, labels := trainingTexts()
	res, err := Evaluate(texts, labels, &TrainConfig{K: 4, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if res.Docs != len(texts) {
		t.Errorf("Docs = %d, want %d", res.Docs, len(texts))
	}
	if res.Classes != 2 {
		t.Errorf("Classes = %d, want 2", res.Classes)
	}
	if res.Clusters != 2 {
		t.Errorf("Clusters = %d, want 2", res.Clusters)
	}
	if len(res.Sizes) != 2 {
		t.Fatalf("Sizes = %v, want two clusters", res.Sizes)
	}
	for z, n := range res.Sizes {
		if n != 12 {
			t.Errorf("Sizes[%d] = %d, want 12", z, n)
		}
	}
	if math.Abs(res.SizeEntropy-math.Log(2)) > 1e-12 {
		t.Errorf("SizeEntropy = %v, want ln 2", res.SizeEntropy)
	}
	if res.Purity != 1 {
		t.Errorf("Purity = %v, want 1", res.Purity)
	}
	if res.NMI < 0.99 {
		t.Errorf("NMI = %v, want close to 1", res.NMI)
	}
}

func TestEvaluateUnlabeled(t *testing.T) {
	texts, _ := trainingTexts()
	res, err := Evaluate(texts, nil, &TrainConfig{K: 4, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if res.Clusters != 2 {
		t.Errorf("Clusters = %d, want 2", res.Clusters)
	}
	if res.Classes != 0 || res.Contingency != nil {
		t.Error("supervised fields should stay empty without labels")
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	if _, err := Evaluate([]string{"one", "two"}, []string{"a"}, nil); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestEvaluateEmpty(t *testing.T) {
	if _, err := Evaluate(nil, nil, nil); err == nil {
		t.Error("expected error for empty input")
	}
}
