package metrics

import (
	"math"
	"testing"
)

func TestAdjustedRandIndexPerfectAgreement(t *testing.T) {
	predicted := []int{0, 0, 1, 1, 2, 2}
	groundTruth := []int{0, 0, 1, 1, 2, 2}

	ari := AdjustedRandIndex(predicted, groundTruth)
	if math.Abs(ari-1.0) > 0.01 {
		t.Errorf("ARI for identical action sequences = %f, want 1.0", ari)
	}
}

func TestAdjustedRandIndexDissimilarSequences(t *testing.T) {
	predicted := []int{0, 0, 0, 1, 1, 1}
	groundTruth := []int{0, 1, 0, 1, 0, 1}

	ari := AdjustedRandIndex(predicted, groundTruth)
	if ari > 0.5 {
		t.Errorf("ARI for dissimilar action sequences = %f, want near 0", ari)
	}
}

func TestVariationOfInformationIdentical(t *testing.T) {
	predicted := []int{0, 0, 1, 1, 2, 2}
	groundTruth := []int{0, 0, 1, 1, 2, 2}

	vi := VariationOfInformation(predicted, groundTruth)
	if vi > 0.01 {
		t.Errorf("VI for identical action sequences = %f, want 0", vi)
	}
}

func TestVariationOfInformationDifferent(t *testing.T) {
	predicted := []int{0, 0, 0, 1, 1, 1}
	groundTruth := []int{0, 1, 0, 1, 0, 1}

	vi := VariationOfInformation(predicted, groundTruth)
	if vi < 0.1 {
		t.Errorf("VI for dissimilar action sequences = %f, want > 0", vi)
	}
}
