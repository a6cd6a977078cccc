package emclass

// computeMotifs re-estimates every non-background motif from the
// current posterior tensor (spec.md §4.6 M-step). The background class,
// when present, is always the last class and is left untouched.
func (e *Engine) computeMotifs() {
	nClass := e.k // excludes the background class, which is always last

	for k := 0; k < nClass; k++ {
		acc := e.motifs[k]
		for i := 0; i < nBase; i++ {
			for j := 0; j < e.w; j++ {
				acc.Set(i, j, 0)
			}
		}

		for s := 0; s < e.nShift; s++ {
			for j := 0; j < e.w; j++ {
				for i := 0; i < e.seqs.NRow(); i++ {
					base := e.seqs.At(i, s+j)
					r, err := index(base)
					if err != nil {
						// sequences were validated at construction time;
						// this cannot happen.
						panic(err)
					}
					acc.Add(r, j, e.posterior.At(i, k, s, 0))

					if e.nFlip == 2 {
						rRC, err := indexComplement(base)
						if err != nil {
							panic(err)
						}
						acc.Add(rRC, e.w-1-j, e.posterior.At(i, k, s, 1))
					}
				}
			}
		}
	}
}

// normalizeMotifs adds the pseudocount floor to every cell of every
// non-background motif and renormalizes each column to sum to 1
// (spec.md §4.6 M-step / §7 numerical guards).
func (e *Engine) normalizeMotifs() {
	nClass := e.k

	for k := 0; k < nClass; k++ {
		m := e.motifs[k]
		for j := 0; j < e.w; j++ {
			sum := 0.0
			for i := 0; i < nBase; i++ {
				v := m.At(i, j) + pseudoCount
				m.Set(i, j, v)
				sum += v
			}
			for i := 0; i < nBase; i++ {
				m.Set(i, j, m.At(i, j)/sum)
			}
		}
	}
}
