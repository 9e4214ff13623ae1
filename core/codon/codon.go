// core/codon/codon.go
package codon

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"degen-core/iupac"
)

// ErrInvalidCodon is returned for strings that are not exactly three of A/C/G/T.
var ErrInvalidCodon = errors.New("invalid codon")

// Codon is a concrete DNA triplet such as "GCT".
type Codon string

var baseIndex = [256]int8{}

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i, b := range []byte("ACGT") {
		baseIndex[b] = int8(i)
		baseIndex[b|0x20] = int8(i)
	}
}

// Index returns the position of c in the 64-codon space (A<C<G<T, first base most significant).
func (c Codon) Index() (int, error) {
	if len(c) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodon, string(c))
	}
	idx := 0
	for i := 0; i < 3; i++ {
		v := baseIndex[c[i]]
		if v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCodon, string(c))
		}
		idx = idx*4 + int(v)
	}
	return idx, nil
}

// Parse validates and uppercases a codon.
func Parse(s string) (Codon, error) {
	c := Codon(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := c.Index(); err != nil {
		return "", err
	}
	return c, nil
}

func fromIndex(i int) Codon {
	const acgt = "ACGT"
	return Codon([]byte{acgt[i>>4&3], acgt[i>>2&3], acgt[i&3]})
}

/* ------------------------------ codon sets ------------------------------ */

// Set is a bitset over all 64 codons.
type Set uint64

// SetOf builds a set from codons; invalid codons are an error.
func SetOf(cs ...Codon) (Set, error) {
	var s Set
	for _, c := range cs {
		i, err := c.Index()
		if err != nil {
			return 0, err
		}
		s |= 1 << uint(i)
	}
	return s, nil
}

// Add returns s with c added. Invalid codons leave s unchanged.
func (s Set) Add(c Codon) Set {
	if i, err := c.Index(); err == nil {
		s |= 1 << uint(i)
	}
	return s
}

func (s Set) Has(c Codon) bool {
	i, err := c.Index()
	return err == nil && s&(1<<uint(i)) != 0
}

func (s Set) Len() int              { return bits.OnesCount64(uint64(s)) }
func (s Set) Union(o Set) Set       { return s | o }
func (s Set) Intersect(o Set) Set   { return s & o }
func (s Set) Contains(sub Set) bool { return sub&^s == 0 }
func (s Set) Disjoint(o Set) bool   { return s&o == 0 }
func (s Set) Equal(o Set) bool      { return s == o }
func (s Set) Minus(o Set) Set       { return s &^ o }

// Codons lists the members in lexicographic order.
func (s Set) Codons() []Codon {
	out := make([]Codon, 0, s.Len())
	for x := uint64(s); x != 0; x &= x - 1 {
		out = append(out, fromIndex(bits.TrailingZeros64(x)))
	}
	return out
}

func (s Set) String() string {
	cs := s.Codons()
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

/* ------------------------------- triples -------------------------------- */

// Triple is one degenerate codon: a nucleotide set per position.
type Triple [3]iupac.Mask

// Fold merges the bases seen at each position across codons.
// It fails with iupac.ErrUnrepresentable when a position has no letter
// (including the empty input).
func Fold(cs []Codon) (Triple, error) {
	var t Triple
	for _, c := range cs {
		if len(c) != 3 {
			return Triple{}, fmt.Errorf("%w: %q", ErrInvalidCodon, string(c))
		}
		for p := 0; p < 3; p++ {
			m := iupac.BaseMask(c[p])
			if m == 0 {
				return Triple{}, fmt.Errorf("%w: %q", ErrInvalidCodon, string(c))
			}
			t[p] |= m
		}
	}
	for p := 0; p < 3; p++ {
		if _, err := iupac.LetterFor(t[p]); err != nil {
			return Triple{}, err
		}
	}
	return t, nil
}

// Codons expands t into the Cartesian product of its positions.
func (t Triple) Codons() Set {
	var s Set
	for i := 0; i < 4; i++ {
		if t[0]&(1<<i) == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			if t[1]&(1<<j) == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				if t[2]&(1<<k) != 0 {
					s |= 1 << uint(i*16+j*4+k)
				}
			}
		}
	}
	return s
}

func (t Triple) String() string {
	return t[0].String() + t[1].String() + t[2].String()
}
