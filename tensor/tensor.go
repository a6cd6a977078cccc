// Package tensor provides fixed-rank dense numeric arrays (rank 2, 3 and
// 4) with shape-checked accessors, used by emclass to store motifs and
// the posterior/class-probability tensors described in spec.md.
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix2D is a rank-2 dense tensor backed by a gonum matrix, used for
// motifs (4xW) and for any other 2-D quantity that benefits from gonum's
// linear-algebra primitives (column extraction, transposition).
type Matrix2D struct {
	dense *mat.Dense
	nrow  int
	ncol  int
}

// NewMatrix2D allocates a nrow x ncol matrix filled with fill.
func NewMatrix2D(nrow, ncol int, fill float64) *Matrix2D {
	if nrow <= 0 || ncol <= 0 {
		panic("tensor: non-positive matrix dimension")
	}
	data := make([]float64, nrow*ncol)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return &Matrix2D{dense: mat.NewDense(nrow, ncol, data), nrow: nrow, ncol: ncol}
}

// Dims returns the matrix shape.
func (m *Matrix2D) Dims() (int, int) { return m.nrow, m.ncol }

// Size returns the total number of elements.
func (m *Matrix2D) Size() int { return m.nrow * m.ncol }

func (m *Matrix2D) checkBounds(i, j int) {
	if i < 0 || i >= m.nrow || j < 0 || j >= m.ncol {
		panic(fmt.Sprintf("tensor: index (%d,%d) out of bounds for %dx%d matrix", i, j, m.nrow, m.ncol))
	}
}

// At returns the element at (i,j).
func (m *Matrix2D) At(i, j int) float64 {
	m.checkBounds(i, j)
	return m.dense.At(i, j)
}

// Set sets the element at (i,j).
func (m *Matrix2D) Set(i, j int, v float64) {
	m.checkBounds(i, j)
	m.dense.Set(i, j, v)
}

// Add adds v to the element at (i,j).
func (m *Matrix2D) Add(i, j int, v float64) {
	m.checkBounds(i, j)
	m.dense.Set(i, j, m.dense.At(i, j)+v)
}

// Col returns a copy of column j.
func (m *Matrix2D) Col(j int) []float64 {
	if j < 0 || j >= m.ncol {
		panic(fmt.Sprintf("tensor: column %d out of bounds", j))
	}
	col := make([]float64, m.nrow)
	mat.Col(col, j, m.dense)
	return col
}

// Row returns a copy of row i.
func (m *Matrix2D) Row(i int) []float64 {
	if i < 0 || i >= m.nrow {
		panic(fmt.Sprintf("tensor: row %d out of bounds", i))
	}
	row := make([]float64, m.ncol)
	mat.Row(row, i, m.dense)
	return row
}

// T returns the transpose as a new Matrix2D (used for the round-trip
// serialization format of spec.md §6, which stores motifs as W x 4).
func (m *Matrix2D) T() *Matrix2D {
	out := NewMatrix2D(m.ncol, m.nrow, 0)
	out.dense.Copy(m.dense.T())
	return out
}

// Copy returns a deep copy.
func (m *Matrix2D) Copy() *Matrix2D {
	out := NewMatrix2D(m.nrow, m.ncol, 0)
	out.dense.Copy(m.dense)
	return out
}

// Dense exposes the underlying gonum matrix for callers that need to
// compose with other gonum routines (e.g. the logo renderer).
func (m *Matrix2D) Dense() *mat.Dense { return m.dense }

// Matrix3D is a rank-3 dense row-major tensor, used for the class
// probability tensor C (K' x S' x F, spec.md §3).
type Matrix3D struct {
	data       []float64
	d0, d1, d2 int
}

// NewMatrix3D allocates a d0 x d1 x d2 tensor filled with fill.
func NewMatrix3D(d0, d1, d2 int, fill float64) *Matrix3D {
	if d0 <= 0 || d1 <= 0 || d2 <= 0 {
		panic("tensor: non-positive tensor dimension")
	}
	data := make([]float64, d0*d1*d2)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return &Matrix3D{data: data, d0: d0, d1: d1, d2: d2}
}

// Dims returns the tensor shape.
func (m *Matrix3D) Dims() (int, int, int) { return m.d0, m.d1, m.d2 }

// Size returns the total number of elements.
func (m *Matrix3D) Size() int { return len(m.data) }

func (m *Matrix3D) index(i, j, k int) int {
	if i < 0 || i >= m.d0 || j < 0 || j >= m.d1 || k < 0 || k >= m.d2 {
		panic(fmt.Sprintf("tensor: index (%d,%d,%d) out of bounds for %dx%dx%d tensor", i, j, k, m.d0, m.d1, m.d2))
	}
	return (i*m.d1+j)*m.d2 + k
}

// At returns the element at (i,j,k).
func (m *Matrix3D) At(i, j, k int) float64 { return m.data[m.index(i, j, k)] }

// Set sets the element at (i,j,k).
func (m *Matrix3D) Set(i, j, k int, v float64) { m.data[m.index(i, j, k)] = v }

// Flat returns the underlying flat data slice for iteration.
func (m *Matrix3D) Flat() []float64 { return m.data }

// Copy returns a deep copy.
func (m *Matrix3D) Copy() *Matrix3D {
	out := &Matrix3D{data: make([]float64, len(m.data)), d0: m.d0, d1: m.d1, d2: m.d2}
	copy(out.data, m.data)
	return out
}

// Matrix4D is a rank-4 dense row-major tensor, used for the posterior
// and likelihood tensors (N x K' x S' x F, spec.md §3).
type Matrix4D struct {
	data               []float64
	d0, d1, d2, d3     int
	s1, s2, s3         int // strides for dims 1,2,3 (dim0 stride is implicit)
}

// NewMatrix4D allocates a d0 x d1 x d2 x d3 tensor filled with fill.
func NewMatrix4D(d0, d1, d2, d3 int, fill float64) *Matrix4D {
	if d0 <= 0 || d1 <= 0 || d2 <= 0 || d3 <= 0 {
		panic("tensor: non-positive tensor dimension")
	}
	data := make([]float64, d0*d1*d2*d3)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return &Matrix4D{
		data: data,
		d0:   d0, d1: d1, d2: d2, d3: d3,
		s1: d2 * d3, s2: d3, s3: 1,
	}
}

// Dims returns the tensor shape.
func (m *Matrix4D) Dims() (int, int, int, int) { return m.d0, m.d1, m.d2, m.d3 }

// Size returns the total number of elements.
func (m *Matrix4D) Size() int { return len(m.data) }

func (m *Matrix4D) index(i, j, k, l int) int {
	if i < 0 || i >= m.d0 || j < 0 || j >= m.d1 || k < 0 || k >= m.d2 || l < 0 || l >= m.d3 {
		panic(fmt.Sprintf("tensor: index (%d,%d,%d,%d) out of bounds for %dx%dx%dx%d tensor",
			i, j, k, l, m.d0, m.d1, m.d2, m.d3))
	}
	return i*m.d1*m.s1 + j*m.s1 + k*m.s2 + l*m.s3
}

// At returns the element at (i,j,k,l).
func (m *Matrix4D) At(i, j, k, l int) float64 { return m.data[m.index(i, j, k, l)] }

// Set sets the element at (i,j,k,l).
func (m *Matrix4D) Set(i, j, k, l int, v float64) { m.data[m.index(i, j, k, l)] = v }

// Flat returns the underlying flat data slice, in row-major order, for
// iteration (e.g. the convergence test, which scans every element).
func (m *Matrix4D) Flat() []float64 { return m.data }

// Copy returns a deep copy.
func (m *Matrix4D) Copy() *Matrix4D {
	out := &Matrix4D{
		data: make([]float64, len(m.data)),
		d0:   m.d0, d1: m.d1, d2: m.d2, d3: m.d3,
		s1: m.s1, s2: m.s2, s3: m.s3,
	}
	copy(out.data, m.data)
	return out
}

// CopyFrom replaces the contents of m with a deep copy of src. Panics if
// the shapes differ (spec.md §7 ShapeMismatch is surfaced by the core,
// not by this low-level accessor, which is a programming-error boundary).
func (m *Matrix4D) CopyFrom(src *Matrix4D) {
	if m.d0 != src.d0 || m.d1 != src.d1 || m.d2 != src.d2 || m.d3 != src.d3 {
		panic("tensor: shape mismatch in CopyFrom")
	}
	copy(m.data, src.data)
}
