package dnaio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/romaingroux/EM-sequences/tensor"
)

func TestWriteMotifRoundTrip(t *testing.T) {
	m := tensor.NewMatrix2D(4, 3, 0)
	val := 0.0
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, val)
			val++
		}
	}

	var buf bytes.Buffer
	if err := WriteMotif(&buf, m); err != nil {
		t.Fatalf("WriteMotif: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("wrote %d lines, want 3 (W rows)", len(lines))
	}

	got, err := ReadMotif(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadMotif: %v", err)
	}
	nrow, ncol := got.Dims()
	if nrow != 4 || ncol != 3 {
		t.Fatalf("ReadMotif Dims = (%d,%d), want (4,3)", nrow, ncol)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			if got.At(i, j) != m.At(i, j) {
				t.Errorf("roundtrip[%d,%d] = %v, want %v", i, j, got.At(i, j), m.At(i, j))
			}
		}
	}
}

func TestWriteClassProbMarginal(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteClassProbMarginal(&buf, []float64{0.25, 0.75}); err != nil {
		t.Fatalf("WriteClassProbMarginal: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "0.25 0.75" {
		t.Errorf("got %q, want %q", got, "0.25 0.75")
	}
}

func TestWritePosteriorShape(t *testing.T) {
	p := tensor.NewMatrix4D(2, 2, 3, 1, 0.5)
	var buf bytes.Buffer
	if err := WritePosterior(&buf, p); err != nil {
		t.Fatalf("WritePosterior: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines, want 2 (N rows)", len(lines))
	}
	fields := strings.Fields(lines[0])
	if len(fields) != 6 {
		t.Fatalf("row has %d fields, want 6 (K'*S'*F)", len(fields))
	}
}
