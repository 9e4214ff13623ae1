// internal/service/designer_test.go
package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degen-core/codon"
	"degen-core/degenerate"
	"degen-core/gcode"
	"degen/internal/cache"
	"degen/internal/metrics"
)

func newDesigner(t *testing.T, o Options) *Designer {
	t.Helper()
	return New(degenerate.New(gcode.Standard(), degenerate.DefaultConfig()), o)
}

func TestDesignNormalizesAndCaches(t *testing.T) {
	m := metrics.New()
	d := newDesigner(t, Options{Metrics: m})

	first, err := d.Design(context.Background(), Request{Include: []string{"l", "F", "L"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"F", "L"}, first.Include)
	assert.Equal(t, "YTN", first.Result.Pattern.String())
	assert.Equal(t, SourceEngine, first.Source)

	again, err := d.Design(context.Background(), Request{Include: []string{"F", "L"}})
	require.NoError(t, err)
	assert.Equal(t, SourceMemory, again.Source)
	assert.Equal(t, first.Result.Pattern, again.Result.Pattern)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Designs.WithLabelValues("early-exit", "engine")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Designs.WithLabelValues("early-exit", "memory")))
}

func TestDesignRejectsBadInput(t *testing.T) {
	d := newDesigner(t, Options{})

	_, err := d.Design(context.Background(), Request{Include: []string{"B"}})
	assert.True(t, errors.Is(err, gcode.ErrUnknownAminoAcid))

	_, err = d.Design(context.Background(), Request{Include: []string{"DE"}})
	assert.True(t, errors.Is(err, gcode.ErrUnknownAminoAcid))

	_, err = d.Design(context.Background(), Request{Include: []string{"D", "E"}, Avoid: []string{"e"}})
	assert.True(t, errors.Is(err, ErrOverlap))
	assert.Contains(t, err.Error(), "E")
}

func TestDesignDiskTier(t *testing.T) {
	store, err := cache.OpenStore(cache.StoreConfig{InMemory: true})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = newDesigner(t, Options{Store: store}).Design(context.Background(), Request{Include: []string{"D"}})
	require.NoError(t, err)

	// A fresh designer has an empty memory tier but shares the store.
	got, err := newDesigner(t, Options{Store: store}).Design(context.Background(), Request{Include: []string{"D"}})
	require.NoError(t, err)
	assert.Equal(t, SourceDisk, got.Source)
	assert.Equal(t, "GAY", got.Result.Pattern.String())
	assert.Equal(t, degenerate.OutcomeEarlyExit, got.Result.Outcome)
	assert.Equal(t, 2, got.Result.Codons.Len())
}

func TestDesignKeyDependsOnConfig(t *testing.T) {
	all := newDesigner(t, Options{})
	cfg := degenerate.DefaultConfig()
	cfg.Coverage = degenerate.CoverAny
	anyD := New(degenerate.New(gcode.Standard(), cfg), Options{})
	assert.NotEqual(t, all.key([]string{"F"}, nil), anyD.key([]string{"F"}, nil))
}

func TestDesignCanceledIsNotCached(t *testing.T) {
	d := newDesigner(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Design(ctx, Request{Include: []string{"W"}})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, d.mem.Len())

	got, err := d.Design(context.Background(), Request{Include: []string{"W"}})
	require.NoError(t, err)
	assert.Equal(t, SourceEngine, got.Source)
	assert.Equal(t, "TGG", got.Result.Pattern.String())
}

func TestDesignConcurrentCallersAgree(t *testing.T) {
	d := newDesigner(t, Options{Workers: 2})
	var wg sync.WaitGroup
	patterns := make([]string, 16)
	for i := range patterns {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := d.Design(context.Background(), Request{Include: []string{"A", "G", "V"}, Avoid: []string{"W"}})
			if err == nil {
				patterns[i] = got.Result.Pattern.String()
			}
		}(i)
	}
	wg.Wait()
	for _, p := range patterns {
		assert.Equal(t, patterns[0], p)
		assert.NotEmpty(t, p)
	}
}

func TestDesignCanceledWhileQueuedReturnsFallback(t *testing.T) {
	d := newDesigner(t, Options{Workers: 1})
	require.NoError(t, d.sem.Acquire(context.Background(), 1))
	defer d.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	got, err := d.Design(ctx, Request{Include: []string{"F", "L"}})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)
	assert.Equal(t, degenerate.OutcomeCanceled, got.Result.Outcome)
	assert.True(t, got.Result.Fallback)
	assert.Equal(t, "CTA,CTC,CTG,CTT,TTA,TTC,TTG,TTT", got.Result.Pattern.String())
	assert.Equal(t, 0, d.mem.Len())
}

func TestDesignDeadlineMidSearchKeepsValidPattern(t *testing.T) {
	d := newDesigner(t, Options{})
	tab := d.Engine().Table()
	letters := tab.Letters()
	inc := make([]string, len(letters))
	var required codon.Set
	for i, l := range letters {
		inc[i] = string(l)
		cs, err := tab.Codons(l)
		require.NoError(t, err)
		set, err := codon.SetOf(cs...)
		require.NoError(t, err)
		required = required.Union(set)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	got, err := d.Design(ctx, Request{Include: inc})
	if err != nil {
		assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)
		assert.Equal(t, degenerate.OutcomeCanceled, got.Result.Outcome)
	}
	require.NotEmpty(t, got.Result.Outcome)
	exp := got.Result.Pattern.Codons()
	assert.True(t, exp.Contains(required), got.Result.Pattern.String())
	assert.True(t, exp.Disjoint(tab.StopSet()), got.Result.Pattern.String())
}
