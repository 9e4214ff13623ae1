// core/degenerate/engine.go
package degenerate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"degen-core/codon"
	"degen-core/gcode"
)

// Coverage selects which codons of the included amino acids a pattern must denote.
type Coverage string

const (
	// CoverAll requires every synonymous codon of every included amino acid.
	CoverAll Coverage = "all"
	// CoverAny requires at least one codon per included amino acid.
	CoverAny Coverage = "any"
)

// Outcome says how a search ended.
type Outcome string

const (
	OutcomeEarlyExit       Outcome = "early-exit"
	OutcomeSeedsExhausted  Outcome = "seeds-exhausted"
	OutcomeBudgetExhausted Outcome = "budget-exhausted"
	OutcomeCanceled        Outcome = "canceled"
)

// Config bounds one search.
type Config struct {
	MaxDuration     time.Duration // wall-clock budget for the seed loop
	MaxCombinations int           // completed codon assignments before enumeration stops
	Coverage        Coverage
}

// DefaultConfig: 10 minutes, 100 combinations, full coverage.
func DefaultConfig() Config {
	return Config{MaxDuration: 10 * time.Minute, MaxCombinations: 100, Coverage: CoverAll}
}

// Result is the best pattern found by one Compute call.
type Result struct {
	Pattern   codon.Pattern
	Codons    codon.Set // expansion of Pattern
	Fallback  bool      // Pattern is the literal list of required codons
	Target    int       // codon count of a perfect single-triple answer
	Seeds     int
	Tried     int
	Truncated bool // enumeration hit MaxCombinations
	Outcome   Outcome
	Elapsed   time.Duration
}

// Engine runs searches against one genetic code table.
type Engine struct {
	table *gcode.Table
	cfg   Config
	now   func() time.Time
}

func New(table *gcode.Table, cfg Config) *Engine {
	if cfg.Coverage == "" {
		cfg.Coverage = CoverAll
	}
	return &Engine{table: table, cfg: cfg, now: time.Now}
}

func (e *Engine) Table() *gcode.Table { return e.table }
func (e *Engine) Config() Config      { return e.cfg }

// Compute searches for the shortest pattern that encodes include and avoids
// avoid plus the stop codons, using the standard table and default limits.
func Compute(include, avoid []string) (string, error) {
	res, err := New(gcode.Standard(), DefaultConfig()).Compute(context.Background(), include, avoid)
	if err != nil {
		return "", err
	}
	return res.Pattern.String(), nil
}

// Compute runs one search. Unknown letters fail before the search starts;
// after that the call always yields a valid pattern, at worst the fallback.
// If ctx is canceled the best pattern so far is returned with ctx's error.
func (e *Engine) Compute(ctx context.Context, include, avoid []string) (Result, error) {
	start := e.now()

	groups, required, err := e.resolve(include)
	if err != nil {
		return Result{}, err
	}
	_, avoided, err := e.resolve(avoid)
	if err != nil {
		return Result{}, err
	}
	forbidden := avoided.Union(e.table.StopSet())

	fallback, err := codon.PatternOf(required.Codons())
	if err != nil {
		return Result{}, err
	}
	res := Result{Pattern: fallback, Codons: required, Fallback: true}

	// Seeding
	combos, truncated := enumerate(orderGroups(groups), e.cfg.MaxCombinations)
	var rest codon.Set
	res.Target = len(groups)
	if e.cfg.Coverage == CoverAll {
		rest = required
		res.Target = required.Len()
	}
	seeds := buildSeeds(combos, rest)
	res.Seeds = len(seeds)
	res.Truncated = truncated

	// Searching
	bestSize := math.MaxInt
	searchStart := e.now()
	finish := func(o Outcome) Result {
		res.Outcome = o
		res.Elapsed = e.now().Sub(start)
		return res
	}
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return finish(OutcomeCanceled), err
		}
		if e.now().Sub(searchStart) >= e.cfg.MaxDuration {
			return finish(OutcomeBudgetExhausted), nil
		}
		res.Tried++

		pat, ok := BuildGrammar(seed, forbidden, nil, res.Pattern.Len())
		if !ok {
			continue
		}
		got := pat.Codons()
		if got.Len() < bestSize || pat.Len() < res.Pattern.Len() {
			bestSize = got.Len()
			res.Pattern, res.Codons, res.Fallback = pat, got, false
		}
		if got.Len() == res.Target && len(pat) == 1 {
			return finish(OutcomeEarlyExit), nil
		}
	}
	return finish(OutcomeSeedsExhausted), nil
}

// resolve maps letters to their codon groups (duplicates dropped) and the union of all codons.
func (e *Engine) resolve(letters []string) ([][]codon.Codon, codon.Set, error) {
	var (
		groups [][]codon.Codon
		all    codon.Set
		seen   = make(map[byte]bool, len(letters))
	)
	for _, raw := range letters {
		s := strings.ToUpper(strings.TrimSpace(raw))
		if len(s) != 1 {
			return nil, 0, fmt.Errorf("%w: %q", gcode.ErrUnknownAminoAcid, raw)
		}
		cs, err := e.table.Codons(s[0])
		if err != nil {
			return nil, 0, err
		}
		if seen[s[0]] {
			continue
		}
		seen[s[0]] = true
		set, err := codon.SetOf(cs...)
		if err != nil {
			return nil, 0, err
		}
		groups = append(groups, cs)
		all = all.Union(set)
	}
	return groups, all, nil
}
