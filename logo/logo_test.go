package logo

import (
	"math"
	"testing"

	"github.com/romaingroux/EM-sequences/tensor"
)

func closeTo(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestHeightsMaximalAtDeterministicColumn(t *testing.T) {
	// A column with all mass on one base has maximal information
	// content (2 bits for 4 symbols), so its height equals the
	// probability itself (~1) times 2.
	m := tensor.NewMatrix2D(4, 1, 0)
	m.Set(0, 0, 1-3*pseudoCount)
	m.Set(1, 0, pseudoCount)
	m.Set(2, 0, pseudoCount)
	m.Set(3, 0, pseudoCount)

	h := Heights(m)
	got := h.At(0, 0)
	want := (1 - 3*pseudoCount) * 2.0
	if !closeTo(got, want, 1e-4) {
		t.Errorf("Heights[0,0] = %v, want ~%v", got, want)
	}
}

func TestHeightsMinimalAtUniformColumn(t *testing.T) {
	// A uniform column carries no information (entropy = log2(4) = 2
	// bits, R = 0), so every base's height is ~0.
	m := tensor.NewMatrix2D(4, 1, 0.25)
	h := Heights(m)
	for i := 0; i < 4; i++ {
		if !closeTo(h.At(i, 0), 0, 1e-6) {
			t.Errorf("Heights[%d,0] = %v, want ~0 for a uniform column", i, h.At(i, 0))
		}
	}
}
