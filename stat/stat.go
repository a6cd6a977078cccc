// Package stat implements the statistics primitives of spec.md §4.3:
// weighted mean, weighted (biased/unbiased) standard deviation, and the
// Gaussian probability density function. Grounded on the teacher's dist
// package (which wraps gonum for distribution math) and on
// original_source/src/Statistics/Statistics.hpp (mean, sd, dnorm).
package stat

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightedMean returns sum(x_i * w_i / sum(w)). Panics if x and w have
// different lengths, mirroring the fatal precondition violation of
// spec.md's weighted_mean.
func WeightedMean(x, w []float64) float64 {
	if len(x) != len(w) {
		panic("stat: weighted mean given vectors of different length")
	}
	return stat.Mean(x, w)
}

// WeightedSD returns the weighted standard deviation of x under weights
// w. The biased variance is stat.PopMeanVariance (population variance,
// sum((x_i-mean)^2 * p_i) with p = w/sum(w)); when biased is false it is
// divided by V1 - V2/V1 with V1 = sum(p_i) = 1, V2 = sum(p_i^2)
// (reliability-weighted unbiased variance), per spec.md §4.3.
func WeightedSD(x, w []float64, biased bool) float64 {
	if len(x) != len(w) {
		panic("stat: weighted sd given vectors of different length")
	}

	_, variance := stat.PopMeanVariance(x, w)
	if !biased {
		sumW, sumW2 := 0.0, 0.0
		for _, wi := range w {
			sumW += wi
			sumW2 += wi * wi
		}
		variance /= 1 - sumW2/(sumW*sumW)
	}
	return sqrt(variance)
}

// GaussianPDF returns the density of x under N(mean, sd).
func GaussianPDF(x, mean, sd float64) float64 {
	n := distuv.Normal{Mu: mean, Sigma: sd}
	return n.Prob(x)
}

func sqrt(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}
