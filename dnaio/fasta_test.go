package dnaio

import (
	"strings"
	"testing"
)

func TestReadFastaParsesRecords(t *testing.T) {
	input := ">seq1 description\nACGT\nACGT\n\n>seq2\nTTTT\n"
	records, err := ReadFasta(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFasta: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "seq1 description" {
		t.Errorf("Name = %q, want %q", records[0].Name, "seq1 description")
	}
	if records[0].Sequence != "ACGTACGT" {
		t.Errorf("Sequence = %q, want %q", records[0].Sequence, "ACGTACGT")
	}
	if records[1].Sequence != "TTTT" {
		t.Errorf("Sequence = %q, want %q", records[1].Sequence, "TTTT")
	}
}

func TestReadFastaLowercaseIsUppercased(t *testing.T) {
	records, err := ReadFasta(strings.NewReader(">s\nacgt\n"))
	if err != nil {
		t.Fatalf("ReadFasta: %v", err)
	}
	if records[0].Sequence != "ACGT" {
		t.Errorf("Sequence = %q, want %q", records[0].Sequence, "ACGT")
	}
}

func TestReadFastaRejectsSequenceWithoutHeader(t *testing.T) {
	if _, err := ReadFasta(strings.NewReader("ACGT\n")); err == nil {
		t.Error("sequence without header: want error")
	}
}

func TestReadFastaRejectsEmptyInput(t *testing.T) {
	if _, err := ReadFasta(strings.NewReader("")); err == nil {
		t.Error("empty input: want error")
	}
}

func TestLoadSequenceMatrix(t *testing.T) {
	input := ">a\nACGT\n>b\nTTTT\n"
	names, m, err := LoadSequenceMatrix(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadSequenceMatrix: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v, want [a b]", names)
	}
	if m.NRow() != 2 || m.NCol() != 4 {
		t.Errorf("Dims = (%d,%d), want (2,4)", m.NRow(), m.NCol())
	}
}

func TestLoadSequenceMatrixRejectsUnequalLengths(t *testing.T) {
	input := ">a\nACGT\n>b\nTTT\n"
	if _, _, err := LoadSequenceMatrix(strings.NewReader(input)); err == nil {
		t.Error("unequal sequence lengths: want error")
	}
}
