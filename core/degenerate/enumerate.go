// core/degenerate/enumerate.go
package degenerate

import (
	"sort"
	"strings"

	"degen-core/codon"
)

// searchBudget counts completed codon assignments for one enumeration.
type searchBudget struct {
	limit  int
	leaves int
}

func (b *searchBudget) exceeded() bool { return b.leaves > b.limit }

// enumerate picks one codon per group, depth first, in group order.
// Once more than limit assignments have been completed, every open frame
// stops and returns what it has; truncated reports that this happened.
func enumerate(groups [][]codon.Codon, limit int) (combos [][]codon.Codon, truncated bool) {
	b := &searchBudget{limit: limit}
	return b.assign(groups, make([]codon.Codon, 0, len(groups)))
}

func (b *searchBudget) assign(groups [][]codon.Codon, prefix []codon.Codon) ([][]codon.Codon, bool) {
	if b.exceeded() {
		return nil, true
	}
	if len(groups) == 0 {
		b.leaves++
		leaf := make([]codon.Codon, len(prefix))
		copy(leaf, prefix)
		return [][]codon.Codon{leaf}, false
	}
	var out [][]codon.Codon
	for _, c := range groups[0] {
		sub, stop := b.assign(groups[1:], append(prefix, c))
		out = append(out, sub...)
		if stop {
			return out, true
		}
	}
	return out, false
}

// orderGroups sorts codon groups by descending size; ties keep input order.
func orderGroups(groups [][]codon.Codon) [][]codon.Codon {
	out := append([][]codon.Codon(nil), groups...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// buildSeeds turns each assignment into an ascending and a descending seed.
// With rest non-empty, the required codons not in the assignment follow it,
// sorted the same way. Repeated seeds are dropped.
func buildSeeds(combos [][]codon.Codon, rest codon.Set) [][]codon.Codon {
	seen := make(map[string]struct{}, 2*len(combos))
	out := make([][]codon.Codon, 0, 2*len(combos))
	add := func(seed []codon.Codon) {
		k := seedKey(seed)
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, seed)
	}

	for _, combo := range combos {
		asc := append([]codon.Codon(nil), combo...)
		sort.Slice(asc, func(i, j int) bool { return asc[i] < asc[j] })
		desc := make([]codon.Codon, len(asc))
		for i := range asc {
			desc[i] = asc[len(asc)-1-i]
		}
		if rest != 0 {
			picked, _ := codon.SetOf(combo...)
			tail := rest.Minus(picked).Codons() // ascending
			asc = append(asc, tail...)
			for i := len(tail) - 1; i >= 0; i-- {
				desc = append(desc, tail[i])
			}
		}
		add(asc)
		add(desc)
	}
	return out
}

func seedKey(seed []codon.Codon) string {
	var b strings.Builder
	b.Grow(3 * len(seed))
	for _, c := range seed {
		b.WriteString(string(c))
	}
	return b.String()
}
