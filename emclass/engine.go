// Package emclass implements the EM classification engine of spec.md:
// unsupervised probabilistic classification of fixed-length DNA
// sequences into K classes, each described by a position-specific
// probability matrix ("motif"), jointly discovering a shift offset and
// strand orientation for every sequence. See spec.md for the full
// invariants; this file implements §4.6 (construction, step, converged).
package emclass

import (
	"math"

	"github.com/romaingroux/EM-sequences/rng"
	"github.com/romaingroux/EM-sequences/tensor"
)

const (
	// pseudoCount is the numerical guard epsilon of spec.md §7: added to
	// every motif column before normalization, and substituted for any
	// would-be-zero posterior entry after normalization.
	pseudoCount = 1e-8
	// deltaMax is the convergence tolerance of spec.md §7: the
	// element-wise max-diff bound on P vs P⁻.
	deltaMax = 1e-6
)

// StepResult is returned by Step to indicate whether the engine has
// reached a fixed point.
type StepResult int

// Step outcomes, spec.md §4.6.
const (
	Progress StepResult = iota
	Converged
)

// Options groups the three independent configuration flags of spec.md
// §3. center_shift and flip are intentionally uncoupled (spec.md §9 open
// question) even though the C++ original accidentally tied them
// together.
type Options struct {
	// Flip enables scoring the reverse-complement strand in addition to
	// the forward strand (F=2 instead of F=1).
	Flip bool
	// ShiftCenter enables the post-M-step Gaussian shift re-centering.
	ShiftCenter bool
	// BgClass adds an extra class whose motif is frozen to the
	// background distribution.
	BgClass bool
}

// Engine is the EM classification engine of spec.md §4.6. It exclusively
// owns every tensor; callers obtain copies through the accessor methods.
type Engine struct {
	seqs *SequenceMatrix
	opts Options

	k       int // number of caller-requested classes (excludes bg class)
	w       int // motif width W
	nShift  int // S' = L - W + 1
	nFlip   int // F = 2 if Flip else 1
	nClass  int // K' = K + (1 if BgClass else 0)

	bg [nBase]float64

	motifs        []*tensor.Matrix2D // nClass matrices, 4 x W
	likelihood    *tensor.Matrix4D   // N x K' x S' x F
	posterior     *tensor.Matrix4D   // N x K' x S' x F
	posteriorPrev *tensor.Matrix4D   // N x K' x S' x F
	classProb     *tensor.Matrix3D   // K' x S' x F
	classProbMarg []float64          // K'

	nIter int

	rng  *rng.Source
	sink Sink
}

// New constructs an Engine in de-novo mode (spec.md §4.6): motifs are
// allocated and the posterior tensor is seeded by the named method, then
// motifs are re-estimated once so the engine is immediately in a valid
// state before the first call to Step.
func New(seqs *SequenceMatrix, k, w int, opts Options, seed, seeding string, sink Sink) (*Engine, error) {
	if k <= 0 || k > seqs.NRow() {
		return nil, &Error{Kind: ErrInvalidConfig, Msg: "number of classes must be in [1, N]"}
	}
	if w <= 0 || w > seqs.NCol() {
		return nil, &Error{Kind: ErrInvalidConfig, Msg: "motif width must be in [1, L]"}
	}

	e, err := newEngine(seqs, k, w, opts)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = noopSink{}
	}
	e.sink = sink
	e.rng = rng.New(seed)

	if err := e.seed(seeding); err != nil {
		return nil, err
	}
	return e, nil
}

// NewWarmStart constructs an Engine from caller-supplied initial motifs
// (spec.md §4.6 warm-start mode). The posterior is initialized from the
// likelihood under these motifs, normalized per sequence.
func NewWarmStart(seqs *SequenceMatrix, motifs []*tensor.Matrix2D, opts Options, sink Sink) (*Engine, error) {
	k := len(motifs)
	if k <= 0 || k > seqs.NRow() {
		return nil, &Error{Kind: ErrInvalidConfig, Msg: "number of classes must be in [1, N]"}
	}
	_, w := motifs[0].Dims()
	if w <= 0 || w > seqs.NCol() {
		return nil, &Error{Kind: ErrInvalidConfig, Msg: "motif width must be in [1, L]"}
	}
	for _, m := range motifs {
		if _, mw := m.Dims(); mw != w {
			return nil, &Error{Kind: ErrShapeMismatch, Msg: "all motifs must have the same width"}
		}
	}

	e, err := newEngine(seqs, k, w, opts)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = noopSink{}
	}
	e.sink = sink

	for i, m := range motifs {
		e.motifs[i] = m.Copy()
	}
	if opts.BgClass {
		e.setBackgroundMotif(e.nClass - 1)
	}

	if err := e.computeLikelihood(); err != nil {
		return nil, err
	}
	e.initPosteriorFromLikelihood()
	e.computeClassProb()

	return e, nil
}

// newEngine allocates the common data structures shared by both
// construction modes.
func newEngine(seqs *SequenceMatrix, k, w int, opts Options) (*Engine, error) {
	nFlip := 1
	if opts.Flip {
		nFlip = 2
	}
	nShift := seqs.NCol() - w + 1
	nClass := k
	if opts.BgClass {
		nClass++
	}

	bg, err := backgroundComposition(seqs, opts.Flip)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		seqs:   seqs,
		opts:   opts,
		k:      k,
		w:      w,
		nShift: nShift,
		nFlip:  nFlip,
		nClass: nClass,
		bg:     bg,
	}

	e.motifs = make([]*tensor.Matrix2D, nClass)
	for i := 0; i < nClass; i++ {
		e.motifs[i] = tensor.NewMatrix2D(nBase, w, 0)
	}
	if opts.BgClass {
		e.setBackgroundMotif(nClass - 1)
	}

	e.likelihood = tensor.NewMatrix4D(seqs.NRow(), nClass, nShift, nFlip, 0)
	e.posterior = tensor.NewMatrix4D(seqs.NRow(), nClass, nShift, nFlip, 0)
	e.posteriorPrev = tensor.NewMatrix4D(seqs.NRow(), nClass, nShift, nFlip, 0)
	e.classProb = tensor.NewMatrix3D(nClass, nShift, nFlip, 0)
	e.classProbMarg = make([]float64, nClass)

	return e, nil
}

// setBackgroundMotif sets every column of motif k to the background
// distribution. This class is never touched by the M-step (spec.md §4.6).
func (e *Engine) setBackgroundMotif(k int) {
	for j := 0; j < e.w; j++ {
		for i := 0; i < nBase; i++ {
			e.motifs[k].Set(i, j, e.bg[i])
		}
	}
}

// initPosteriorFromLikelihood sets P to the per-sequence normalization
// of the current likelihood tensor, substituting the pseudocount floor
// for zero entries, per spec.md §4.6 warm-start mode.
func (e *Engine) initPosteriorFromLikelihood() {
	n := e.seqs.NRow()
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < e.nClass; k++ {
			for s := 0; s < e.nShift; s++ {
				for f := 0; f < e.nFlip; f++ {
					sum += e.likelihood.At(i, k, s, f)
				}
			}
		}
		for k := 0; k < e.nClass; k++ {
			for s := 0; s < e.nShift; s++ {
				for f := 0; f < e.nFlip; f++ {
					v := e.likelihood.At(i, k, s, f)
					if v == 0 {
						e.posterior.Set(i, k, s, f, pseudoCount)
					} else {
						e.posterior.Set(i, k, s, f, v/sum)
					}
				}
			}
		}
	}
}

// Step runs one E-step then M-step, the public EM operation of spec.md
// §4.6, and reports whether the engine has converged.
func (e *Engine) Step() (StepResult, error) {
	if e.nIter > 0 {
		e.posteriorPrev.CopyFrom(e.posterior)
	}

	if err := e.computeLikelihood(); err != nil {
		return Progress, err
	}
	e.computePosterior()
	e.computeClassProb()

	e.computeMotifs()
	e.normalizeMotifs()

	if e.opts.ShiftCenter {
		e.centerShifts()
	}

	e.nIter++
	e.sink.Notify(e.nIter)

	if e.converged() {
		return Converged, nil
	}
	return Progress, nil
}

// converged reports whether the posterior tensor has stabilized between
// the last two completed steps, per spec.md §4.6.
func (e *Engine) converged() bool {
	if e.nIter < 2 {
		return false
	}
	cur := e.posterior.Flat()
	prev := e.posteriorPrev.Flat()
	for i := range cur {
		if math.Abs(cur[i]-prev[i]) > deltaMax {
			return false
		}
	}
	return true
}

// NIter returns the number of completed EM iterations.
func (e *Engine) NIter() int { return e.nIter }

// NClass returns K', the effective number of classes (including any
// background class).
func (e *Engine) NClass() int { return e.nClass }

// Motifs returns deep copies of the current motifs (spec.md §6).
func (e *Engine) Motifs() []*tensor.Matrix2D {
	out := make([]*tensor.Matrix2D, len(e.motifs))
	for i, m := range e.motifs {
		out[i] = m.Copy()
	}
	return out
}

// Posterior returns a deep copy of the posterior tensor P (spec.md §6).
func (e *Engine) Posterior() *tensor.Matrix4D { return e.posterior.Copy() }

// ClassProb returns a deep copy of the class-probability tensor C
// (spec.md §6).
func (e *Engine) ClassProb() *tensor.Matrix3D { return e.classProb.Copy() }

// ClassProbMarginal returns a copy of the length-K' marginal class
// vector C̄ (spec.md §6).
func (e *Engine) ClassProbMarginal() []float64 {
	out := make([]float64, len(e.classProbMarg))
	copy(out, e.classProbMarg)
	return out
}

// Background returns the length-4 background base composition.
func (e *Engine) Background() [nBase]float64 { return e.bg }
