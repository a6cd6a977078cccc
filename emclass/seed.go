package emclass

// seed dispatches to the named seeding method (spec.md §4.6 "Seeding
// methods"). Unknown names fail with ErrUnknownSeeding.
func (e *Engine) seed(method string) error {
	switch method {
	case "random":
		e.seedRandom()
	default:
		return &Error{Kind: ErrUnknownSeeding, Msg: "unknown seeding method: " + method}
	}
	return nil
}

// seedRandom draws each P[i,k,s,f] independently from Beta(1,N),
// normalizes per sequence, derives C and C̄, then re-estimates motifs
// once so the engine is immediately in a valid state (spec.md §9 open
// question: seeded motif re-estimation in de-novo mode).
func (e *Engine) seedRandom() {
	n := e.seqs.NRow()
	beta := func() float64 { return e.rng.Beta(1, float64(n)) }

	for i := 0; i < n; i++ {
		for k := 0; k < e.nClass; k++ {
			for s := 0; s < e.nShift; s++ {
				for f := 0; f < e.nFlip; f++ {
					e.posterior.Set(i, k, s, f, beta())
				}
			}
		}
	}

	for i := 0; i < n; i++ {
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
					e.posterior.Set(i, k, s, f, e.posterior.At(i, k, s, f)/sum)
				}
			}
		}
	}

	e.computeClassProb()
	e.computeMotifs()
	e.normalizeMotifs()
}
