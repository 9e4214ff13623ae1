// core/degenerate/grammar.go
package degenerate

import (
	"degen-core/codon"
)

// BuildGrammar derives a pattern covering seed whose expansion avoids every
// forbidden codon. A seed that folds cleanly is returned as its single
// triple. When the folded seed over-covers, its first codon is moved to
// excluded, the remainder and the excluded codons are solved separately and
// joined; only this split path guarantees coverage of excluded. Results
// longer than maxLen are rejected. ok is false when this seed has no
// acceptable pattern.
func BuildGrammar(seed []codon.Codon, forbidden codon.Set, excluded []codon.Codon, maxLen int) (codon.Pattern, bool) {
	all := make([]codon.Codon, 0, len(excluded)+len(seed))
	all = append(all, excluded...)
	all = append(all, seed...)
	b := newBuilder(all, forbidden, maxLen)
	return b.solve(len(excluded), len(all))
}

type solution struct {
	pattern codon.Pattern
	ok      bool
}

// builder solves windows of one codon sequence. solve(k, p) works on
// seq[k:p] with seq[:k] already excluded; every recursive call lands on
// such a window, and calls with k == 0 repeat often enough to memoize.
type builder struct {
	seq       []codon.Codon
	forbidden codon.Set
	maxLen    int
	prefixes  map[int]solution
}

func newBuilder(seq []codon.Codon, forbidden codon.Set, maxLen int) *builder {
	return &builder{seq: seq, forbidden: forbidden, maxLen: maxLen, prefixes: make(map[int]solution)}
}

func (b *builder) solve(k, p int) (codon.Pattern, bool) {
	if k == 0 {
		if s, ok := b.prefixes[p]; ok {
			return s.pattern, s.ok
		}
	}
	pat, ok := b.solveWindow(k, p)
	if k == 0 {
		b.prefixes[p] = solution{pattern: pat, ok: ok}
	}
	return pat, ok
}

func (b *builder) solveWindow(k, p int) (codon.Pattern, bool) {
	t, err := codon.Fold(b.seq[k:p])
	if err != nil {
		return nil, false
	}
	if t.Codons().Disjoint(b.forbidden) {
		return codon.Pattern{t}, true
	}

	kept, ok := b.solve(k+1, p)
	if !ok {
		return nil, false
	}
	peeled, ok := b.solve(0, k+1)
	if !ok {
		return nil, false
	}

	joined := codon.Join(kept, peeled)
	if joined.Len() > b.maxLen {
		return nil, false
	}
	want, err := codon.SetOf(b.seq[:p]...)
	if err != nil || !joined.Codons().Contains(want) {
		return nil, false
	}
	return joined, true
}
