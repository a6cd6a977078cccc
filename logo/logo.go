// Package logo renders a motif as a sequence-logo stacked bar chart,
// grounded on original_source/src/GUI/Logo/Logo.cpp
// (convertMatrixProbToHeight) and on the gonum/plot usage pattern of
// misc/plotgamma/plotgamma.go.
package logo

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/romaingroux/EM-sequences/tensor"
)

const pseudoCount = 1e-8

// baseNames orders bases the way emclass indexes them: A, C, G, T.
var baseNames = [4]string{"A", "C", "G", "T"}

// Heights converts a column-stochastic motif into the per-base,
// per-column bar heights of a sequence logo: each base's probability
// scaled by the column's information content R = log2(nrow) - H, where
// H is the column's Shannon entropy in bits (Logo::convertMatrixProbToHeight).
func Heights(motif *tensor.Matrix2D) *tensor.Matrix2D {
	nrow, ncol := motif.Dims()
	out := tensor.NewMatrix2D(nrow, ncol, 0)

	for j := 0; j < ncol; j++ {
		sum := 0.0
		col := make([]float64, nrow)
		for i := 0; i < nrow; i++ {
			col[i] = motif.At(i, j) + pseudoCount
			sum += col[i]
		}
		h := 0.0
		for i := 0; i < nrow; i++ {
			p := col[i] / sum
			h -= p * math.Log2(p)
		}
		r := math.Log2(float64(nrow)) - h

		for i := 0; i < nrow; i++ {
			out.Set(i, j, motif.At(i, j)*r)
		}
	}
	return out
}

// Render draws a stacked-bar sequence logo of motif to path, one
// stacked bar per motif column, one colored segment per base, scaled by
// Heights. The image format is derived from path's extension (png,
// pdf, svg, ...), per gonum/plot's Plot.Save.
func Render(motif *tensor.Matrix2D, width, height vg.Length, path string) error {
	heights := Heights(motif)
	nrow, ncol := heights.Dims()

	p := plot.New()
	p.Title.Text = "sequence logo"
	p.Y.Label.Text = "bits"

	series := make([]plotter.Values, nrow)
	for i := 0; i < nrow; i++ {
		series[i] = make(plotter.Values, ncol)
		for j := 0; j < ncol; j++ {
			series[i][j] = heights.At(i, j)
		}
	}

	barWidth := width / vg.Length(ncol+1)
	var bars []*plotter.BarChart
	var prev *plotter.BarChart
	for i := 0; i < nrow; i++ {
		bar, err := plotter.NewBarChart(series[i], barWidth)
		if err != nil {
			return fmt.Errorf("logo: building bar chart for base %s: %w", baseNames[i], err)
		}
		bar.Color = plotutil.Color(i)
		if prev != nil {
			bar.StackOn(prev)
		}
		bars = append(bars, bar)
		prev = bar
		p.Add(bar)
		p.Legend.Add(baseNames[i], bar)
	}

	labels := make([]string, ncol)
	for j := 0; j < ncol; j++ {
		labels[j] = fmt.Sprintf("%d", j+1)
	}
	p.NominalX(labels...)

	return p.Save(width, height, path)
}
