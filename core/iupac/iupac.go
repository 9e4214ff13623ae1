// core/iupac/iupac.go
package iupac

import (
	"errors"
	"fmt"
)

// Mask is a set of nucleotides: bit0=A bit1=C bit2=G bit3=T.
type Mask uint8

const (
	A   Mask = 1
	C   Mask = 2
	G   Mask = 4
	T   Mask = 8
	Any Mask = A | C | G | T
)

// ErrUnrepresentable is returned for nucleotide sets with no ambiguity letter.
var ErrUnrepresentable = errors.New("nucleotide set has no IUPAC letter")

// ErrUnknownLetter is returned for bytes outside the IUPAC DNA alphabet.
var ErrUnknownLetter = errors.New("unknown IUPAC letter")

/* -------------------------- IUPAC lookup tables -------------------------- */

var (
	letterMask [256]Mask
	maskLetter [16]byte // 0 = no letter
)

func init() {
	set := func(c byte, m Mask) {
		letterMask[c] = m
		letterMask[c|0x20] = m // lowercase
		if maskLetter[m] == 0 {
			maskLetter[m] = c
		}
	}
	set('A', A)
	set('C', C)
	set('G', G)
	set('T', T)
	set('R', A|G)
	set('Y', C|T)
	set('S', C|G)
	set('W', A|T)
	set('K', G|T)
	set('M', A|C)
	set('B', C|G|T)
	set('D', A|G|T)
	set('H', A|C|T)
	set('V', A|C|G)
	set('N', Any)
	// input aliases, never produced
	set('U', T)
	set('X', Any)
}

// MaskOf returns the nucleotide set for an IUPAC letter (0 if unknown).
func MaskOf(letter byte) Mask { return letterMask[letter] }

// BaseMask returns the mask of a concrete nucleotide, or 0 if b is not A/C/G/T.
func BaseMask(b byte) Mask {
	switch b {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't', 'U', 'u':
		return T
	}
	return 0
}

// LetterFor maps a nucleotide set to its ambiguity letter.
func LetterFor(m Mask) (byte, error) {
	if m > Any || maskLetter[m] == 0 {
		return 0, fmt.Errorf("%w: mask %04b", ErrUnrepresentable, m)
	}
	return maskLetter[m], nil
}

// NucleotidesFor returns the concrete bases (ACGT order) denoted by letter.
func NucleotidesFor(letter byte) ([]byte, error) {
	m := letterMask[letter]
	if m == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLetter, letter)
	}
	return m.Bases(), nil
}

// Bases lists the nucleotides in m in ACGT order.
func (m Mask) Bases() []byte {
	out := make([]byte, 0, 4)
	for i, b := range [4]byte{'A', 'C', 'G', 'T'} {
		if m&(1<<i) != 0 {
			out = append(out, b)
		}
	}
	return out
}

// Count is the number of nucleotides in m.
func (m Mask) Count() int {
	n := 0
	for x := m & Any; x != 0; x &= x - 1 {
		n++
	}
	return n
}

func (m Mask) String() string {
	if l, err := LetterFor(m); err == nil {
		return string(l)
	}
	return "?"
}
