package emclass

import "github.com/romaingroux/EM-sequences/tensor"

// scoreSequence computes spec.md §4.5: sum_j motifLog[index(S[i,s+j]), j]
// for the sub-sequence S[i, s..s+W). motifLog is the element-wise natural
// log of a column-stochastic 4xW motif, so it is always finite thanks to
// the pseudocount floor applied during motif re-estimation. Grounded on
// original_source/src/Utility/DNA_utility.cpp::dna::score_sequence.
func scoreSequence(s *SequenceMatrix, i, from int, motifLog *tensor.Matrix2D) (float64, error) {
	_, w := motifLog.Dims()
	logLikelihood := 0.0
	for j := 0; j < w; j++ {
		idx, err := index(s.At(i, from+j))
		if err != nil {
			return 0, err
		}
		logLikelihood += motifLog.At(idx, j)
	}
	return logLikelihood, nil
}
