package emclass

// backgroundComposition computes the length-4 base frequency vector of
// spec.md §4.4 over a sequence matrix. When symmetrize is true, each
// position also contributes its complement, so the result is palindromic
// (b[A]=b[T], b[C]=b[G]) — the §8 "background symmetry" property.
// Grounded on original_source/src/Utility/DNA_utility.cpp::dna::base_composition.
func backgroundComposition(s *SequenceMatrix, symmetrize bool) ([nBase]float64, error) {
	var counts [nBase]float64
	total := 0.0

	n, l := s.NRow(), s.NCol()
	for i := 0; i < n; i++ {
		for j := 0; j < l; j++ {
			base := s.At(i, j)
			idx, err := index(base)
			if err != nil {
				return counts, err
			}
			counts[idx]++
			total++
			if symmetrize {
				counts[nBase-1-idx]++
				total++
			}
		}
	}

	for i := range counts {
		counts[i] /= total
	}
	return counts, nil
}
