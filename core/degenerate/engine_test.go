// core/degenerate/engine_test.go
package degenerate

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degen-core/codon"
	"degen-core/gcode"
)

const twenty = "ACDEFGHIKLMNPQRSTVWY"

func letters(s string) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i : i+1]
	}
	return out
}

func complement(include string) []string {
	var out []string
	for i := range twenty {
		l := twenty[i : i+1]
		found := false
		for j := range include {
			if include[j:j+1] == l {
				found = true
			}
		}
		if !found {
			out = append(out, l)
		}
	}
	return out
}

func codonsOf(t *testing.T, ls string) codon.Set {
	t.Helper()
	var s codon.Set
	for i := range ls {
		cs, err := gcode.Standard().Codons(ls[i])
		require.NoError(t, err)
		set, _ := codon.SetOf(cs...)
		s = s.Union(set)
	}
	return s
}

func joinLetters(ls []string) string {
	out := ""
	for _, l := range ls {
		out += l
	}
	return out
}

func TestComputeSingleAminoIsExact(t *testing.T) {
	p, err := Compute([]string{"A"}, complement("A"))
	require.NoError(t, err)
	assert.Equal(t, "GCN", p)

	got, err := codon.Expand(p)
	require.NoError(t, err)
	assert.Equal(t, []codon.Codon{"GCA", "GCC", "GCG", "GCT"}, got.Codons())
}

func TestComputeAspartate(t *testing.T) {
	p, err := Compute([]string{"D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "GAY", p)
	got, _ := codon.Expand(p)
	assert.Equal(t, []codon.Codon{"GAC", "GAT"}, got.Codons())
}

func TestComputeUnionFallbackCorrectness(t *testing.T) {
	p, err := Compute([]string{"F", "L"}, nil)
	require.NoError(t, err)
	got, err := codon.Expand(p)
	require.NoError(t, err)
	assert.True(t, got.Contains(codonsOf(t, "FL")))
	for _, stop := range []codon.Codon{"TAA", "TAG", "TGA"} {
		assert.False(t, got.Has(stop), "pattern %s includes stop %s", p, stop)
	}
	assert.Equal(t, "YTN", p)
}

func TestComputeUnknownAminoAcid(t *testing.T) {
	for _, tc := range []struct{ include, avoid []string }{
		{[]string{"B"}, nil},
		{[]string{"A"}, []string{"Z"}},
		{[]string{"AC"}, nil},
		{[]string{"*"}, nil},
		{[]string{""}, nil},
	} {
		_, err := Compute(tc.include, tc.avoid)
		assert.True(t, errors.Is(err, gcode.ErrUnknownAminoAcid), "include=%v avoid=%v err=%v", tc.include, tc.avoid, err)
	}
}

func TestComputeNormalizesLetters(t *testing.T) {
	p, err := Compute([]string{" d", "D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "GAY", p)
}

func TestComputeEmptyInclude(t *testing.T) {
	res, err := New(gcode.Standard(), DefaultConfig()).Compute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", res.Pattern.String())
	assert.Equal(t, OutcomeSeedsExhausted, res.Outcome)
}

func TestComputeEarlyExitReportsOutcome(t *testing.T) {
	res, err := New(gcode.Standard(), DefaultConfig()).Compute(context.Background(), []string{"D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEarlyExit, res.Outcome)
	assert.Equal(t, 2, res.Target)
	assert.Equal(t, 1, res.Tried)
	assert.False(t, res.Fallback)
	assert.False(t, res.Truncated)
}

func TestComputeZeroBudgetReturnsFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDuration = 0
	res, err := New(gcode.Standard(), cfg).Compute(context.Background(), []string{"F", "L"}, []string{"W"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeBudgetExhausted, res.Outcome)
	assert.True(t, res.Fallback)
	assert.Equal(t, "CTA,CTC,CTG,CTT,TTA,TTC,TTG,TTT", res.Pattern.String())
	assert.Equal(t, 0, res.Tried)
	assert.True(t, res.Codons.Contains(codonsOf(t, "FL")))
}

func TestComputeBudgetStopsMidSearch(t *testing.T) {
	e := New(gcode.Standard(), Config{MaxDuration: 90 * time.Second, MaxCombinations: 100, Coverage: CoverAll})
	clock := time.Unix(0, 0)
	e.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	// M+W folds to WKG: clean, four codons, never a perfect answer.
	res, err := e.Compute(context.Background(), []string{"M", "W"}, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBudgetExhausted, res.Outcome)
	assert.Equal(t, 2, res.Seeds)
	assert.Equal(t, 1, res.Tried)
	assert.Equal(t, "WKG", res.Pattern.String())
}

func TestComputeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(gcode.Standard(), DefaultConfig()).Compute(ctx, []string{"D"}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, OutcomeCanceled, res.Outcome)
	assert.Equal(t, "GAC,GAT", res.Pattern.String(), "best so far is the fallback")
}

func TestComputeTruncatedEnumeration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCombinations = 10
	res, err := New(gcode.Standard(), cfg).Compute(context.Background(), letters("LRS"), nil)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.LessOrEqual(t, res.Seeds, 22)
}

func TestComputeCoverAny(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Coverage = CoverAny
	res, err := New(gcode.Standard(), cfg).Compute(context.Background(), []string{"F", "L"}, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEarlyExit, res.Outcome)
	assert.Equal(t, 2, res.Target)
	assert.Equal(t, "TTW", res.Pattern.String())
	assert.Equal(t, "FL", Encodes(gcode.Standard(), res.Pattern))
}

// Coverage and exclusion hold for arbitrary disjoint include/avoid sets.
func TestComputeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tab := gcode.Standard()
	for _, cov := range []Coverage{CoverAll, CoverAny} {
		cfg := DefaultConfig()
		cfg.Coverage = cov
		e := New(tab, cfg)
		for i := 0; i < 40; i++ {
			perm := rng.Perm(len(twenty))
			nInc := 1 + rng.Intn(6)
			nAvoid := rng.Intn(len(twenty) - nInc + 1)
			var inc, avoid []string
			for _, k := range perm[:nInc] {
				inc = append(inc, twenty[k:k+1])
			}
			for _, k := range perm[nInc : nInc+nAvoid] {
				avoid = append(avoid, twenty[k:k+1])
			}

			res, err := e.Compute(context.Background(), inc, avoid)
			require.NoError(t, err, "include=%v avoid=%v", inc, avoid)

			got, err := codon.Expand(res.Pattern.String())
			require.NoError(t, err)
			assert.Equal(t, res.Codons, got)

			forbidden := codonsOf(t, joinLetters(avoid)).Union(tab.StopSet())
			assert.True(t, got.Disjoint(forbidden), "%s: %s hits forbidden codons", cov, res.Pattern)

			switch cov {
			case CoverAll:
				assert.True(t, got.Contains(codonsOf(t, joinLetters(inc))), "%s misses required codons", res.Pattern)
			case CoverAny:
				for _, l := range inc {
					assert.False(t, got.Disjoint(codonsOf(t, l)), "%s does not encode %s", res.Pattern, l)
				}
			}
		}
	}
}
