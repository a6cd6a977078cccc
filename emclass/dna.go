package emclass

// Base indices, spec.md §4.1: A=0, C=1, G=2, T=3.
const (
	baseA = 0
	baseC = 1
	baseG = 2
	baseT = 3
	nBase = 4
)

// index returns the 0..3 index of a DNA base, case-insensitively.
// Grounded on original_source/src/Utility/DNA_utility.cpp::dna::hash.
func index(base byte) (int, error) {
	switch base {
	case 'A', 'a':
		return baseA, nil
	case 'C', 'c':
		return baseC, nil
	case 'G', 'g':
		return baseG, nil
	case 'T', 't':
		return baseT, nil
	}
	return 0, &Error{Kind: ErrInvalidBase, Msg: "unrecognized DNA base: " + string(base)}
}

// indexComplement returns the index of the complementary base: A<->T,
// C<->G, i.e. 3-i.
func indexComplement(base byte) (int, error) {
	i, err := index(base)
	if err != nil {
		return 0, err
	}
	return nBase - 1 - i, nil
}

// complement returns the complementary base character.
func complement(base byte) (byte, error) {
	switch base {
	case 'A':
		return 'T', nil
	case 'a':
		return 't', nil
	case 'C':
		return 'G', nil
	case 'c':
		return 'g', nil
	case 'G':
		return 'C', nil
	case 'g':
		return 'c', nil
	case 'T':
		return 'A', nil
	case 't':
		return 'a', nil
	}
	return 0, &Error{Kind: ErrInvalidBase, Msg: "unrecognized DNA base: " + string(base)}
}

// isValidBase reports whether base is one of ACGTacgt.
func isValidBase(base byte) bool {
	_, err := index(base)
	return err == nil
}
