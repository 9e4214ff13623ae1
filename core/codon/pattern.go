// core/codon/pattern.go
package codon

import (
	"errors"
	"fmt"
	"strings"

	"degen-core/iupac"
)

// ErrInvalidPattern is returned by ParsePattern for malformed input.
var ErrInvalidPattern = errors.New("invalid degenerate codon pattern")

// Pattern is a union of degenerate triples, written comma-separated ("GCN,TGY").
type Pattern []Triple

// ParsePattern reads "NNK" or "GCN,TGC". Letters are case-insensitive;
// U reads as T and X as N. The empty string is the empty pattern.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make(Pattern, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) != 3 {
			return nil, fmt.Errorf("%w: member %d %q must have exactly 3 letters", ErrInvalidPattern, i+1, part)
		}
		var t Triple
		for p := 0; p < 3; p++ {
			m := iupac.MaskOf(part[p])
			if m == 0 {
				return nil, fmt.Errorf("%w: %q at member %d; allowed: A B C D G H K M N R S T U V W X Y", ErrInvalidPattern, part[p], i+1)
			}
			t[p] = m
		}
		out = append(out, t)
	}
	return out, nil
}

// PatternOf wraps literal codons as a pattern of concrete triples.
func PatternOf(cs []Codon) (Pattern, error) {
	out := make(Pattern, 0, len(cs))
	for _, c := range cs {
		t, err := Fold([]Codon{c})
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Codons is the union of the member expansions.
func (p Pattern) Codons() Set {
	var s Set
	for _, t := range p {
		s |= t.Codons()
	}
	return s
}

func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(p.Len())
	for i, t := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Len is the length of the rendered pattern string.
func (p Pattern) Len() int {
	if len(p) == 0 {
		return 0
	}
	return 4*len(p) - 1
}

// Expand parses s and returns every concrete codon it denotes.
func Expand(s string) (Set, error) {
	p, err := ParsePattern(s)
	if err != nil {
		return 0, err
	}
	return p.Codons(), nil
}

// Join appends b to a unless b only denotes codons a already covers.
func Join(a, b Pattern) Pattern {
	if a.Codons().Contains(b.Codons()) {
		return a
	}
	out := make(Pattern, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
