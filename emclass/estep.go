package emclass

import (
	"math"

	"github.com/romaingroux/EM-sequences/tensor"
)

// computeLikelihood computes λ (spec.md §4.6 E-step, "Likelihood").
// μ_log and μ_log_rc are allocated once per class per call, not inside
// the inner (i,s) loop, per spec.md §9's log-space scoring note.
func (e *Engine) computeLikelihood() error {
	for k := 0; k < e.nClass; k++ {
		motifLog := logMotif(e.motifs[k])
		var motifLogRC *tensor.Matrix2D
		if e.nFlip == 2 {
			motifLogRC = reverseComplementLog(motifLog)
		}

		for i := 0; i < e.seqs.NRow(); i++ {
			for s := 0; s < e.nShift; s++ {
				score, err := scoreSequence(e.seqs, i, s, motifLog)
				if err != nil {
					return err
				}
				e.likelihood.Set(i, k, s, 0, math.Exp(score))

				if e.nFlip == 2 {
					scoreRC, err := scoreSequence(e.seqs, i, s, motifLogRC)
					if err != nil {
						return err
					}
					e.likelihood.Set(i, k, s, 1, math.Exp(scoreRC))
				}
			}
		}
	}
	return nil
}

// logMotif returns the element-wise natural log of a column-stochastic
// motif. Always finite because motifs carry a pseudocount floor.
func logMotif(m *tensor.Matrix2D) *tensor.Matrix2D {
	nrow, ncol := m.Dims()
	out := tensor.NewMatrix2D(nrow, ncol, 0)
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			out.Set(i, j, math.Log(m.At(i, j)))
		}
	}
	return out
}

// reverseComplementLog computes the reverse-complement of a log-motif by
// the index transform row r -> 3-r, column j -> W-1-j, per spec.md §9
// ("compute it by index transform rather than by materializing reversed
// sequences").
func reverseComplementLog(motifLog *tensor.Matrix2D) *tensor.Matrix2D {
	nrow, ncol := motifLog.Dims()
	out := tensor.NewMatrix2D(nrow, ncol, 0)
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			out.Set(nrow-1-i, ncol-1-j, motifLog.At(i, j))
		}
	}
	return out
}

// computePosterior computes P from λ and C (spec.md §4.6 E-step,
// "Posterior"): unnormalized p = λ*C, normalized per sequence, with any
// zero result replaced by the pseudocount floor.
func (e *Engine) computePosterior() {
	n := e.seqs.NRow()
	for i := 0; i < n; i++ {
		for k := 0; k < e.nClass; k++ {
			for s := 0; s < e.nShift; s++ {
				for f := 0; f < e.nFlip; f++ {
					e.posterior.Set(i, k, s, f, e.likelihood.At(i, k, s, f)*e.classProb.At(k, s, f))
				}
			}
		}

		sum := 0.0
		for k := 0; k < e.nClass; k++ {
			for s := 0; s < e.nShift; s++ {
				for f := 0; f < e.nFlip; f++ {
					sum += e.posterior.At(i, k, s, f)
				}
			}
		}

		for k := 0; k < e.nClass; k++ {
			for s := 0; s < e.nShift; s++ {
				for f := 0; f < e.nFlip; f++ {
					v := e.posterior.At(i, k, s, f) / sum
					if v == 0 {
						v = pseudoCount
					}
					e.posterior.Set(i, k, s, f, v)
				}
			}
		}
	}
}

// computeClassProb computes C as the marginal of P over sequences,
// normalized to sum to 1 over (k,s,f), and C̄ as its marginal over (s,f)
// (spec.md §4.6 E-step, "Class probabilities").
func (e *Engine) computeClassProb() {
	n := e.seqs.NRow()

	for k := 0; k < e.nClass; k++ {
		e.classProbMarg[k] = 0
	}

	total := 0.0
	for k := 0; k < e.nClass; k++ {
		for s := 0; s < e.nShift; s++ {
			for f := 0; f < e.nFlip; f++ {
				prob := 0.0
				for i := 0; i < n; i++ {
					prob += e.posterior.At(i, k, s, f)
				}
				e.classProb.Set(k, s, f, prob)
				total += prob
				e.classProbMarg[k] += prob
			}
		}
	}

	for k := 0; k < e.nClass; k++ {
		for s := 0; s < e.nShift; s++ {
			for f := 0; f < e.nFlip; f++ {
				e.classProb.Set(k, s, f, e.classProb.At(k, s, f)/total)
			}
		}
		e.classProbMarg[k] /= total
	}
}
