package dnaio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/romaingroux/EM-sequences/tensor"
)

// WriteMotif writes a motif as a W x 4 whitespace-separated text matrix,
// the transpose of its internal 4 x W layout, per spec.md §6 "Persisted
// formats".
func WriteMotif(w io.Writer, m *tensor.Matrix2D) error {
	return writeMatrix2D(w, m.T())
}

// ReadMotif reads back a W x 4 text matrix produced by WriteMotif and
// returns the motif in its internal 4 x W layout, for warm-start runs
// that resume from a previous invocation's output.
func ReadMotif(r io.Reader) (*tensor.Matrix2D, error) {
	m, err := readMatrix2D(r)
	if err != nil {
		return nil, err
	}
	return m.T(), nil
}

// WritePosterior writes the posterior tensor P (N x K' x S' x F) as one
// row per sequence, each row holding the K'*S'*F entries flattened in
// (k,s,f) row-major order, per spec.md §6.
func WritePosterior(w io.Writer, p *tensor.Matrix4D) error {
	n, k, s, f := p.Dims()
	bw := bufio.NewWriter(w)
	for i := 0; i < n; i++ {
		for kk := 0; kk < k; kk++ {
			for ss := 0; ss < s; ss++ {
				for ff := 0; ff < f; ff++ {
					if kk+ss+ff > 0 {
						if _, err := bw.WriteString(" "); err != nil {
							return err
						}
					}
					if _, err := bw.WriteString(strconv.FormatFloat(p.At(i, kk, ss, ff), 'g', -1, 64)); err != nil {
						return err
					}
				}
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteClassProb writes the class-probability tensor C (K' x S' x F) as
// one row per class, each row holding the S'*F entries flattened in
// (s,f) row-major order, per spec.md §6.
func WriteClassProb(w io.Writer, c *tensor.Matrix3D) error {
	k, s, f := c.Dims()
	bw := bufio.NewWriter(w)
	for kk := 0; kk < k; kk++ {
		for ss := 0; ss < s; ss++ {
			for ff := 0; ff < f; ff++ {
				if ss+ff > 0 {
					if _, err := bw.WriteString(" "); err != nil {
						return err
					}
				}
				if _, err := bw.WriteString(strconv.FormatFloat(c.At(kk, ss, ff), 'g', -1, 64)); err != nil {
					return err
				}
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteClassProbMarginal writes C̄ as a single whitespace-separated row.
func WriteClassProbMarginal(w io.Writer, cbar []float64) error {
	parts := make([]string, len(cbar))
	for i, v := range cbar {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func writeMatrix2D(w io.Writer, m *tensor.Matrix2D) error {
	nrow, ncol := m.Dims()
	bw := bufio.NewWriter(w)
	for i := 0; i < nrow; i++ {
		for j := 0; j < ncol; j++ {
			if j > 0 {
				if _, err := bw.WriteString(" "); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(m.At(i, j), 'g', -1, 64)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readMatrix2D reads a whitespace-separated text matrix of uniform row
// width back into a Matrix2D.
func readMatrix2D(r io.Reader) (*tensor.Matrix2D, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]float64
	ncol := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if ncol == -1 {
			ncol = len(fields)
		} else if len(fields) != ncol {
			return nil, fmt.Errorf("dnaio: ragged matrix: row has %d fields, want %d", len(fields), ncol)
		}
		row := make([]float64, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("dnaio: parsing matrix entry %q: %w", tok, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dnaio: empty matrix")
	}

	m := tensor.NewMatrix2D(len(rows), ncol, 0)
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m, nil
}
