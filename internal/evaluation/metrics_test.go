package evaluation

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// --- RecallAtK tests ---

func TestRecallAtK_AllRelevantInTopK(t *testing.T) {
	relevant := []int{100, 101, 102}
	retrieved := []int{100, 101, 102, 103, 104, 105}
	got := RecallAtK(relevant, retrieved, 6)
	if !almostEqual(got, 1.0) {
		t.Errorf("expected 1.0, got %f", got)
	}
}

func TestRecallAtK_SomeRelevantMissing(t *testing.T) {
	relevant := []int{100, 101, 102, 103}
	retrieved := []int{100, 101, 200, 201, 202, 203}
	got := RecallAtK(relevant, retrieved, 6)
	// 2 of 4 relevant found
	if !almostEqual(got, 0.5) {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestRecallAtK_EmptyResults(t *testing.T) {
	got := RecallAtK([]int{100}, []int{}, 6)
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestRecallAtK_NoRelevantItems(t *testing.T) {
	got := RecallAtK([]int{}, []int{100, 101}, 6)
	// recall is undefined without relevant items; we return 0
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestRecallAtK_KSmallerThanRetrieved(t *testing.T) {
	relevant := []int{100, 101, 102}
	// 102 sits at rank 5, outside k=3
	retrieved := []int{100, 101, 200, 201, 102}
	got := RecallAtK(relevant, retrieved, 3)
	if !almostEqual(got, 2.0/3.0) {
		t.Errorf("expected %f, got %f", 2.0/3.0, got)
	}
}

// --- MRRAtK tests ---

func TestMRRAtK_FirstResultRelevant(t *testing.T) {
	got := MRRAtK([]int{100}, []int{100, 101, 102}, 6)
	if !almostEqual(got, 1.0) {
		t.Errorf("expected 1.0, got %f", got)
	}
}

func TestMRRAtK_ThirdResultRelevant(t *testing.T) {
	got := MRRAtK([]int{102}, []int{100, 101, 102}, 6)
	if !almostEqual(got, 1.0/3.0) {
		t.Errorf("expected %f, got %f", 1.0/3.0, got)
	}
}

func TestMRRAtK_RelevantOutsideK(t *testing.T) {
	got := MRRAtK([]int{104}, []int{100, 101, 102, 103, 104}, 3)
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestMRRAtK_NoRelevantFound(t *testing.T) {
	got := MRRAtK([]int{999}, []int{100, 101, 102}, 6)
	if !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}

func TestMRRAtK_EmptyInputs(t *testing.T) {
	if got := MRRAtK(nil, []int{100}, 6); !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
	if got := MRRAtK([]int{100}, nil, 6); !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0, got %f", got)
	}
}
