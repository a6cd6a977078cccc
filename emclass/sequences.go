package emclass

// SequenceMatrix is the N x L matrix of DNA bases of spec.md §3: N
// sequences of common length L, immutable after construction, over the
// alphabet {A,C,G,T} stored canonically (uppercase). Any base outside
// the alphabet is rejected at load time.
type SequenceMatrix struct {
	data []byte
	n    int
	l    int
}

// NewSequenceMatrix builds a SequenceMatrix from a slice of equal-length
// strings, validating the alphabet and canonicalizing to uppercase. This
// is the narrow interface spec.md §6 describes as "character matrix
// source"; dnaio.LoadSequenceMatrix is the external collaborator that
// calls it.
func NewSequenceMatrix(sequences []string) (*SequenceMatrix, error) {
	if len(sequences) == 0 {
		return nil, &Error{Kind: ErrInvalidConfig, Msg: "no sequences given"}
	}
	l := len(sequences[0])
	if l == 0 {
		return nil, &Error{Kind: ErrInvalidConfig, Msg: "sequences cannot be empty"}
	}
	for _, s := range sequences {
		if len(s) != l {
			return nil, &Error{Kind: ErrInvalidConfig, Msg: "all sequences must have the same length"}
		}
	}

	n := len(sequences)
	data := make([]byte, n*l)
	for i, s := range sequences {
		for j := 0; j < l; j++ {
			idx, err := index(s[j])
			if err != nil {
				return nil, err
			}
			data[i*l+j] = "ACGT"[idx]
		}
	}
	return &SequenceMatrix{data: data, n: n, l: l}, nil
}

// NRow returns N, the number of sequences.
func (m *SequenceMatrix) NRow() int { return m.n }

// NCol returns L, the common sequence length.
func (m *SequenceMatrix) NCol() int { return m.l }

// At returns the canonical (uppercase) base at (row, col).
func (m *SequenceMatrix) At(row, col int) byte { return m.data[row*m.l+col] }
