package emclass

import (
	"github.com/romaingroux/EM-sequences/stat"
)

// centerShifts re-normalizes the marginal shift distribution toward a
// Gaussian centered on the middle shift, preserving each class's
// marginal mass C̄ (spec.md §4.6 "Shift re-centering"). Called only when
// ShiftCenter is enabled; it leaves C unchanged when S' <= 1. For S' > 1
// division by zero cannot occur because P is strictly positive
// (spec.md §7).
func (e *Engine) centerShifts() {
	if e.nShift <= 1 {
		return
	}

	x := make([]float64, e.nShift)
	q := make([]float64, e.nShift)
	for s := 0; s < e.nShift; s++ {
		x[s] = float64(s + 1)
		for k := 0; k < e.nClass; k++ {
			for f := 0; f < e.nFlip; f++ {
				q[s] += e.classProb.At(k, s, f)
			}
		}
	}

	sigma := stat.WeightedSD(x, q, true)

	center := float64(e.nShift/2 + 1)
	g := make([]float64, e.nShift)
	gTotal := 0.0
	for s := 0; s < e.nShift; s++ {
		g[s] = stat.GaussianPDF(x[s], center, sigma)
		gTotal += g[s]
	}

	for k := 0; k < e.nClass; k++ {
		for f := 0; f < e.nFlip; f++ {
			for s := 0; s < e.nShift; s++ {
				e.classProb.Set(k, s, f, e.classProbMarg[k]*g[s]/(float64(e.nFlip)*gTotal))
			}
		}
	}
}
