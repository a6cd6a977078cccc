package stat

import (
	"math"
	"testing"
)

func closeTo(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestWeightedMeanUniform(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	w := []float64{1, 1, 1, 1}
	got := WeightedMean(x, w)
	if !closeTo(got, 2.5, 1e-12) {
		t.Errorf("WeightedMean = %v, want 2.5", got)
	}
}

func TestWeightedMeanPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic on mismatched lengths")
		}
	}()
	WeightedMean([]float64{1, 2}, []float64{1})
}

func TestWeightedSDBiasedZeroForConstant(t *testing.T) {
	x := []float64{5, 5, 5}
	w := []float64{1, 2, 3}
	got := WeightedSD(x, w, true)
	if !closeTo(got, 0, 1e-12) {
		t.Errorf("WeightedSD(constant) = %v, want 0", got)
	}
}

func TestWeightedSDBiasedKnownValue(t *testing.T) {
	// Two equally weighted points at +-1 around 0: biased sd = 1.
	x := []float64{-1, 1}
	w := []float64{1, 1}
	got := WeightedSD(x, w, true)
	if !closeTo(got, 1.0, 1e-9) {
		t.Errorf("WeightedSD = %v, want 1.0", got)
	}
}

func TestWeightedSDUnbiasedZeroForConstant(t *testing.T) {
	x := []float64{5, 5, 5}
	w := []float64{1, 2, 3}
	got := WeightedSD(x, w, false)
	if !closeTo(got, 0, 1e-12) {
		t.Errorf("WeightedSD(constant, unbiased) = %v, want 0", got)
	}
}

func TestWeightedSDUnbiasedKnownValue(t *testing.T) {
	// Two equally weighted points at +-1 around 0: p = {0.5, 0.5},
	// V1 = 1, V2 = 0.5, biased variance = 1, unbiased variance =
	// 1/(1-0.5) = 2, so unbiased sd = sqrt(2).
	x := []float64{-1, 1}
	w := []float64{1, 1}
	got := WeightedSD(x, w, false)
	want := math.Sqrt(2)
	if !closeTo(got, want, 1e-9) {
		t.Errorf("WeightedSD(unbiased) = %v, want %v", got, want)
	}
}

func TestWeightedSDUnbiasedExceedsBiasedForUnequalWeights(t *testing.T) {
	x := []float64{1, 2, 3, 10}
	w := []float64{4, 3, 2, 1}
	biased := WeightedSD(x, w, true)
	unbiased := WeightedSD(x, w, false)
	if unbiased <= biased {
		t.Errorf("unbiased sd (%v) should exceed biased sd (%v)", unbiased, biased)
	}
}

func TestGaussianPDFPeaksAtMean(t *testing.T) {
	atMean := GaussianPDF(0, 0, 1)
	offMean := GaussianPDF(3, 0, 1)
	if atMean <= offMean {
		t.Errorf("density at mean (%v) should exceed density away from mean (%v)", atMean, offMean)
	}
}

func TestGaussianPDFSymmetric(t *testing.T) {
	left := GaussianPDF(2, 5, 1.5)
	right := GaussianPDF(8, 5, 1.5)
	if !closeTo(left, right, 1e-12) {
		t.Errorf("GaussianPDF(2,5,1.5) = %v, GaussianPDF(8,5,1.5) = %v, want equal", left, right)
	}
}
