// Package rng provides the process-wide-at-construction random number
// source described in spec.md §4.8: an explicit handle, deterministic
// from a string seed or self-seeded from entropy otherwise. Grounded on
// godon/godon.go's *seed flag handling and cmodel/model.go's explicit
// rand.Perm usage — the teacher never relies on the global math/rand
// source either.
package rng

import (
	"hash/fnv"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the RNG handle consumed by emclass seeding methods. Only
// seeding reads from it; spec.md §5 forbids any other component
// touching it.
type Source struct {
	r *rand.Rand
}

// New returns a Source. When seed is non-empty, the source is
// deterministically derived from it (same seed, same byte-for-byte
// sequence, satisfying spec.md §8 determinism property). When seed is
// empty, the source is seeded from the current time.
func New(seed string) *Source {
	var s int64
	if seed == "" {
		s = time.Now().UnixNano()
	} else {
		h := fnv.New64a()
		_, _ = h.Write([]byte(seed))
		s = int64(h.Sum64())
	}
	return &Source{r: rand.New(rand.NewSource(uint64(s)))}
}

// Float64 returns a uniform draw in [0,1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Beta draws from Beta(alpha, beta) using the handle's source, as used
// by emclass's "random" seeding method (spec.md §4.6) to fill the
// posterior tensor.
func (s *Source) Beta(alpha, beta float64) float64 {
	d := distuv.Beta{Alpha: alpha, Beta: beta, Src: s.r}
	return d.Rand()
}
