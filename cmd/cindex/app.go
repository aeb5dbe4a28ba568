package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/cindex"
	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/analyzer"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
	"github.com/arloliu/cindex/internal/config"
	"github.com/arloliu/cindex/internal/options"
	"github.com/arloliu/cindex/store"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *alphabet.Registry
	metrics  *prometheus.Registry
	cache    *analyzer.CachedAnalyzer
	reporter analyzer.Reporter
	handle   *cindex.Handle
}

func newApp(cfg config.Config, logOut io.Writer, withMetrics bool) (*app, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	registry := alphabet.NewDefaultRegistry()
	if _, err := registry.Get(cfg.Alphabet); err != nil {
		return nil, err
	}

	cost, err := instruction.CostModelByName(cfg.CostModel, cfg.Alphabet)
	if err != nil {
		return nil, err
	}

	var (
		reg     *prometheus.Registry
		metrics *analyzer.Metrics
	)
	if withMetrics {
		reg = prometheus.NewRegistry()
		metrics = analyzer.NewMetrics(reg)
	}

	an, err := analyzer.New(registry,
		analyzer.WithAlphabet(cfg.Alphabet),
		analyzer.WithCostModel(cost),
		analyzer.WithAdditiveIterations(cfg.Additive.MaxIterations),
		analyzer.WithAdditiveSamples(cfg.Additive.SampleEntries),
		analyzer.WithLogger(logger),
		options.When(metrics != nil, analyzer.WithMetrics(metrics)),
	)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, registry: registry, metrics: reg}

	a.reporter = an
	if cfg.Cache.MaxReports > 0 {
		a.cache, err = analyzer.NewCached(an, cfg.Cache.MaxReports)
		if err != nil {
			return nil, err
		}
		a.reporter = a.cache
	}

	a.handle, err = cindex.New(
		cindex.WithRegistry(registry),
		cindex.WithAnalyzer(a.reporter),
		cindex.WithLogger(logger),
	)
	if err != nil {
		a.close()
		return nil, err
	}

	logger.Debug("cindex configured", "alphabet", cfg.Alphabet, "cost_model", cost.Name(),
		"max_iterations", cfg.Additive.MaxIterations)

	return a, nil
}

// setIndex loads the command input into the handle: decimal by default, text when
// asText is set.
func (a *app) setIndex(input string, asText bool) error {
	if asText {
		return a.handle.SetTextWith(a.cfg.Alphabet, input)
	}

	return a.handle.SetIndexString(input)
}

func (a *app) openStore() (*store.InstructionStore, error) {
	var (
		backend store.Storage
		err     error
	)
	if a.cfg.Store.Path == "" {
		a.logger.Warn("store.path is empty, records are kept in memory for this run only")
		backend = store.NewMemStorage()
	} else {
		backend, err = store.NewBadgerStorage(a.cfg.Store.Path)
		if err != nil {
			return nil, err
		}
	}

	compression, ok := format.CompressionTypeFromString(a.cfg.Store.Compression)
	if !ok {
		_ = backend.Close()
		return nil, fmt.Errorf("unknown store compression %q", a.cfg.Store.Compression)
	}

	s, err := store.NewInstructionStore(store.KeyPrefixStorage(backend, a.cfg.Store.Namespace),
		store.WithCompression(compression),
		store.WithLogger(a.logger))
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	return s, nil
}

// withStore opens the store, runs fn and closes the store.
func (a *app) withStore(ctx context.Context, fn func(ctx context.Context, s *store.InstructionStore) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}

	fnErr := fn(ctx, s)
	if err := s.Close(); err != nil && fnErr == nil {
		return fmt.Errorf("close store: %w", err)
	}

	return fnErr
}

// writeMetrics prints every non-zero counter as name{labels} value.
func (a *app) writeMetrics(w io.Writer) error {
	if a.metrics == nil {
		return nil
	}

	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}

	return nil
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
