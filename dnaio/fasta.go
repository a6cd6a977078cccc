// Package dnaio implements the external collaborators spec.md §6 keeps
// outside the classification core: FASTA loading into an
// emclass.SequenceMatrix, and the whitespace-separated text formats that
// persist motifs, posteriors and class probabilities. Grounded on the
// teacher's bio.ParseFasta (bio/bio.go) and on
// original_source/src/FileTools/FASTAFile/FASTAFileReader.cpp.
package dnaio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/romaingroux/EM-sequences/emclass"
)

// Record pairs a FASTA header (without the leading '>') with its
// sequence, preserving input order.
type Record struct {
	Name     string
	Sequence string
}

// ReadFasta parses FASTA records from r, in the style of bio.ParseFasta:
// blank lines are skipped, a '>' starts a new record, and any other
// non-blank line is appended (uppercased, surrounding whitespace trimmed
// and inner spaces removed) to the
// current record's sequence. A sequence line before any header is an
// error.
func ReadFasta(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	// FASTA sequence lines can be long; grow past bufio's default 64KiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			records = append(records, Record{Name: line[1:]})
			continue
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("dnaio: sequence data before any header")
		}
		line = strings.ToUpper(strings.ReplaceAll(line, " ", ""))
		records[len(records)-1].Sequence += line
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dnaio: reading FASTA: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dnaio: no records found")
	}
	return records, nil
}

// LoadSequenceMatrix reads FASTA records from r and builds the
// emclass.SequenceMatrix they describe, returning the record names in
// input order alongside it so callers can re-attach identities to
// per-sequence results.
func LoadSequenceMatrix(r io.Reader) ([]string, *emclass.SequenceMatrix, error) {
	records, err := ReadFasta(r)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, len(records))
	seqs := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
		seqs[i] = rec.Sequence
	}

	m, err := emclass.NewSequenceMatrix(seqs)
	if err != nil {
		return nil, nil, err
	}
	return names, m, nil
}
