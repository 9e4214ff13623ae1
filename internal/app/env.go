// internal/app/env.go
package app

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"degen-core/degenerate"
	"degen-core/gcode"
	"degen/internal/cache"
	"degen/internal/metrics"
	"degen/internal/output"
	"degen/internal/service"
	"degen/internal/tracing"
	"degen/internal/writers"
)

// engineFlags are the per-run engine overrides shared by compute, batch and serve.
type engineFlags struct {
	coverage        string
	maxDuration     time.Duration
	maxCombinations int
	table           string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.coverage, "coverage", "", "all: every synonymous codon; any: one codon per amino acid")
	fl.DurationVar(&f.maxDuration, "max-duration", 0, "search time budget (default from config, 10m)")
	fl.IntVar(&f.maxCombinations, "max-combinations", 0, "codon assignments enumerated before seeding stops (default from config, 100)")
	fl.StringVar(&f.table, "table", "", "codon table file (YAML or JSON); default standard code")
}

// apply copies the flags the user actually set onto the loaded config.
func (f *engineFlags) apply(cmd *cobra.Command, e *env) error {
	fl := cmd.Flags()
	if fl.Changed("coverage") {
		e.cfg.Engine.Coverage = f.coverage
	}
	if fl.Changed("max-duration") {
		e.cfg.Engine.MaxDuration = f.maxDuration
	}
	if fl.Changed("max-combinations") {
		e.cfg.Engine.MaxCombinations = f.maxCombinations
	}
	if fl.Changed("table") {
		e.cfg.Engine.Table = f.table
	}
	if err := e.cfg.Validate(); err != nil {
		return usageErr(err)
	}
	return nil
}

func (e *env) loadTable() (*gcode.Table, error) {
	if e.cfg.Engine.Table == "" {
		return gcode.Standard(), nil
	}
	t, err := gcode.LoadFile(e.cfg.Engine.Table)
	if err != nil {
		return nil, usageErr(err)
	}
	return t, nil
}

// designerDeps are the optional collaborators of a Designer.
type designerDeps struct {
	workers int
	metrics *metrics.Metrics
}

// newDesigner wires table, engine, caches and tracing from e.cfg.
// The returned close func releases the disk cache and flushes spans.
func (e *env) newDesigner(deps designerDeps) (*service.Designer, func(), error) {
	tab, err := e.loadTable()
	if err != nil {
		return nil, nil, err
	}
	eng := degenerate.New(tab, e.cfg.EngineConfig())

	tp, shutdown, err := tracing.Setup(e.cfg.Tracing.Exporter, e.stderr)
	if err != nil {
		return nil, nil, usageErr(err)
	}

	var store *cache.Store
	if e.cfg.Cache.Dir != "" {
		store, err = cache.OpenStore(cache.StoreConfig{Dir: e.cfg.Cache.Dir, TTL: e.cfg.Cache.TTL, Logger: e.log})
		if err != nil {
			_ = shutdown(context.Background())
			return nil, nil, ioErr(err)
		}
	}

	e.tp = tp
	d := service.New(eng, service.Options{
		Workers:   deps.workers,
		CacheSize: e.cfg.CacheSize(),
		Store:     store,
		Metrics:   deps.metrics,
		Tracer:    tp.Tracer(tracing.ServiceName),
		Logger:    e.log,
	})
	closeFn := func() {
		if store != nil {
			if err := store.Close(); err != nil {
				e.log.Warn("closing design cache", "err", err)
			}
		}
		if err := shutdown(context.Background()); err != nil {
			e.log.Warn("flushing spans", "err", err)
		}
	}
	return d, closeFn, nil
}

// outputFlags are the presentation flags shared by every printing command.
type outputFlags struct {
	format   string
	noHeader bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "output", "o", output.FormatText, "text|json|jsonl")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "omit the text header row")
}

func (f *outputFlags) options(e *env) (writers.Options, error) {
	if _, ok := writers.Writers[f.format]; !ok {
		return writers.Options{}, usageErr(errors.New("unknown --output " + f.format + " (want text|json|jsonl)"))
	}
	return writers.Options{Header: !f.noHeader, Style: output.StyleFor(e.stdout)}, nil
}
