// internal/service/designer.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"degen-core/codon"
	"degen-core/degenerate"
	"degen-core/gcode"
	"degen/internal/cache"
	"degen/internal/logging"
	"degen/internal/metrics"
)

// ErrOverlap is returned when a letter is both included and avoided.
var ErrOverlap = errors.New("amino acid both included and avoided")

// Source says where a design came from.
type Source string

const (
	SourceEngine Source = "engine"
	SourceMemory Source = "memory"
	SourceDisk   Source = "disk"
)

// Request is one design job. Letters are single amino-acid codes in any case.
type Request struct {
	Include []string
	Avoid   []string
}

// Design is a finished design with its normalized inputs.
type Design struct {
	Include  []string
	Avoid    []string
	Coverage degenerate.Coverage
	Result   degenerate.Result
	Source   Source
}

type Options struct {
	Workers   int          // concurrent engine searches; <1 means 1
	CacheSize int          // in-memory entries
	Store     *cache.Store // optional disk tier
	Metrics   *metrics.Metrics
	Tracer    trace.Tracer
	Logger    *slog.Logger
}

// Designer wraps an Engine with caching, request coalescing and a bound on
// concurrent searches. Safe for concurrent use.
type Designer struct {
	eng    *degenerate.Engine
	mem    *cache.LRU[string, degenerate.Result]
	store  *cache.Store
	flight singleflight.Group
	sem    *semaphore.Weighted
	m      *metrics.Metrics
	tracer trace.Tracer
	log    *slog.Logger
}

func New(eng *degenerate.Engine, o Options) *Designer {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer("")
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return &Designer{
		eng:    eng,
		mem:    cache.NewLRU[string, degenerate.Result](o.CacheSize),
		store:  o.Store,
		sem:    semaphore.NewWeighted(int64(o.Workers)),
		m:      o.Metrics,
		tracer: o.Tracer,
		log:    o.Logger,
	}
}

func (d *Designer) Engine() *degenerate.Engine { return d.eng }

// Design returns the best pattern for req. Input errors wrap
// gcode.ErrUnknownAminoAcid or ErrOverlap. When ctx ends mid-search the best
// pattern found so far is returned together with ctx's error.
func (d *Designer) Design(ctx context.Context, req Request) (Design, error) {
	inc, err := d.normalize(req.Include)
	if err != nil {
		return Design{}, err
	}
	avoid, err := d.normalize(req.Avoid)
	if err != nil {
		return Design{}, err
	}
	if both := intersect(inc, avoid); len(both) > 0 {
		return Design{}, fmt.Errorf("%w: %s", ErrOverlap, strings.Join(both, ","))
	}

	cfg := d.eng.Config()
	out := Design{Include: inc, Avoid: avoid, Coverage: cfg.Coverage}
	key := d.key(inc, avoid)

	ctx, span := d.tracer.Start(ctx, "degen.design", trace.WithAttributes(
		attribute.String("degen.include", strings.Join(inc, "")),
		attribute.String("degen.avoid", strings.Join(avoid, "")),
		attribute.String("degen.coverage", string(cfg.Coverage)),
	))
	defer span.End()

	if res, ok := d.mem.Get(key); ok {
		return d.finish(span, out, res, SourceMemory), nil
	}
	if res, ok := d.fromDisk(key); ok {
		d.mem.Add(key, res)
		return d.finish(span, out, res, SourceDisk), nil
	}

	ch := d.flight.DoChan(key, func() (any, error) {
		return d.search(ctx, key, inc, avoid)
	})
	var r singleflight.Result
	select {
	case <-ctx.Done():
		// The search is still inside a seed; answer with the fallback.
		res, err := d.cutShort(ctx, inc, avoid)
		span.SetStatus(codes.Error, err.Error())
		return d.finish(span, out, res, SourceEngine), err
	case r = <-ch:
	}
	res, _ := r.Val.(degenerate.Result)
	if r.Shared && ctx.Err() == nil && isContextErr(r.Err) {
		// The leader gave up; this caller is still live.
		res, r.Err = d.search(ctx, key, inc, avoid)
	}
	if r.Err != nil && res.Outcome == "" && isContextErr(r.Err) {
		// Canceled while waiting for a worker slot.
		res, r.Err = d.cutShort(ctx, inc, avoid)
	}
	if r.Err != nil {
		span.SetStatus(codes.Error, r.Err.Error())
		if res.Outcome == "" {
			return out, r.Err
		}
		return d.finish(span, out, res, SourceEngine), r.Err
	}
	return d.finish(span, out, res, SourceEngine), nil
}

// cutShort runs the engine on a dead context, which stops before the first
// seed and yields the union fallback with OutcomeCanceled.
func (d *Designer) cutShort(ctx context.Context, inc, avoid []string) (degenerate.Result, error) {
	if ctx.Err() == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		cancel()
	}
	res, err := d.eng.Compute(ctx, inc, avoid)
	if err == nil {
		err = context.Canceled
	}
	return res, err
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (d *Designer) search(ctx context.Context, key string, inc, avoid []string) (degenerate.Result, error) {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return degenerate.Result{}, err
	}
	defer d.sem.Release(1)
	if d.m != nil {
		d.m.InFlight.Inc()
		defer d.m.InFlight.Dec()
	}

	res, err := d.eng.Compute(ctx, inc, avoid)
	if res.Outcome == "" {
		return res, err
	}
	if d.m != nil {
		d.m.DesignSeconds.WithLabelValues(string(res.Outcome)).Observe(res.Elapsed.Seconds())
		d.m.SeedsTried.Observe(float64(res.Tried))
	}
	d.log.Debug("design searched",
		"include", strings.Join(inc, ""), "avoid", strings.Join(avoid, ""),
		"pattern", res.Pattern.String(), "outcome", res.Outcome,
		"seeds", res.Seeds, "tried", res.Tried, "elapsed", res.Elapsed)
	if res.Outcome != degenerate.OutcomeCanceled {
		d.mem.Add(key, res)
		d.toDisk(key, res)
	}
	return res, err
}

func (d *Designer) finish(span trace.Span, out Design, res degenerate.Result, src Source) Design {
	out.Result, out.Source = res, src
	span.SetAttributes(
		attribute.String("degen.pattern", res.Pattern.String()),
		attribute.String("degen.outcome", string(res.Outcome)),
		attribute.String("degen.source", string(src)),
	)
	if d.m != nil {
		d.m.Designs.WithLabelValues(string(res.Outcome), string(src)).Inc()
	}
	return out
}

// normalize uppercases, validates, deduplicates and sorts amino-acid letters.
func (d *Designer) normalize(letters []string) ([]string, error) {
	seen := make(map[string]bool, len(letters))
	out := make([]string, 0, len(letters))
	for _, raw := range letters {
		s := strings.ToUpper(strings.TrimSpace(raw))
		if len(s) != 1 {
			return nil, fmt.Errorf("%w: %q", gcode.ErrUnknownAminoAcid, raw)
		}
		if _, err := d.eng.Table().Codons(s[0]); err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
			}
		}
	}
	return out
}

// key identifies a search by everything that can change its answer.
func (d *Designer) key(inc, avoid []string) string {
	cfg := d.eng.Config()
	return fmt.Sprintf("design/v1/%s/%s/%d/%s/%s/%s",
		d.eng.Table().Name(), cfg.Coverage, cfg.MaxCombinations, cfg.MaxDuration,
		strings.Join(inc, ""), strings.Join(avoid, ""))
}

// record is the disk form of a Result.
type record struct {
	Pattern   string `json:"pattern"`
	Fallback  bool   `json:"fallback,omitempty"`
	Target    int    `json:"target"`
	Seeds     int    `json:"seeds"`
	Tried     int    `json:"tried"`
	Truncated bool   `json:"truncated,omitempty"`
	Outcome   string `json:"outcome"`
	ElapsedNS int64  `json:"elapsed_ns"`
}

func (d *Designer) toDisk(key string, res degenerate.Result) {
	if d.store == nil {
		return
	}
	b, err := json.Marshal(record{
		Pattern: res.Pattern.String(), Fallback: res.Fallback, Target: res.Target,
		Seeds: res.Seeds, Tried: res.Tried, Truncated: res.Truncated,
		Outcome: string(res.Outcome), ElapsedNS: int64(res.Elapsed),
	})
	if err == nil {
		err = d.store.Put(key, b)
	}
	if err != nil {
		d.log.Warn("design cache write failed", "key", key, "err", err)
	}
}

func (d *Designer) fromDisk(key string) (degenerate.Result, bool) {
	if d.store == nil {
		return degenerate.Result{}, false
	}
	b, err := d.store.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			d.log.Warn("design cache read failed", "key", key, "err", err)
		}
		return degenerate.Result{}, false
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		d.log.Warn("design cache entry corrupt", "key", key, "err", err)
		return degenerate.Result{}, false
	}
	p, err := codon.ParsePattern(rec.Pattern)
	if err != nil {
		d.log.Warn("design cache entry corrupt", "key", key, "err", err)
		return degenerate.Result{}, false
	}
	return degenerate.Result{
		Pattern: p, Codons: p.Codons(), Fallback: rec.Fallback, Target: rec.Target,
		Seeds: rec.Seeds, Tried: rec.Tried, Truncated: rec.Truncated,
		Outcome: degenerate.Outcome(rec.Outcome), Elapsed: time.Duration(rec.ElapsedNS),
	}, true
}
