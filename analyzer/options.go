package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/instruction"
	"github.com/arloliu/cindex/internal/options"
	"github.com/arloliu/cindex/pattern"
)

const (
	// DefaultAdditiveIterations bounds the additive decomposition search.
	DefaultAdditiveIterations = 1000
	// DefaultAdditiveSamples is the number of additive candidates listed in a report.
	DefaultAdditiveSamples = 3
)

// Option configures an Analyzer.
type Option = options.Option[*Analyzer]

// WithCostModel replaces the default binary cost model.
func WithCostModel(model instruction.CostModel) Option {
	return options.New(func(a *Analyzer) error {
		if model == nil {
			return fmt.Errorf("%w: nil cost model", errs.ErrInvalidInput)
		}
		a.cost = model

		return nil
	})
}

// WithCatalog replaces the reference patterns checked by the REFERENCE_REPEAT lens.
func WithCatalog(catalog pattern.Catalog) Option {
	return options.NoError(func(a *Analyzer) {
		a.catalog = catalog
	})
}

// WithAlphabet selects the text alphabet by registry id. The registry default is used otherwise.
func WithAlphabet(id string) Option {
	return options.NoError(func(a *Analyzer) {
		a.alphabetID = id
	})
}

// WithAdditiveIterations sets the iteration cap of the additive search. Zero disables it.
func WithAdditiveIterations(n int) Option {
	return options.New(func(a *Analyzer) error {
		if n < 0 {
			return fmt.Errorf("%w: negative additive iterations %d", errs.ErrInvalidInput, n)
		}
		a.maxIterations = n

		return nil
	})
}

// WithAdditiveSamples sets how many additive candidates are listed in the report.
func WithAdditiveSamples(n int) Option {
	return options.New(func(a *Analyzer) error {
		if n < 0 {
			return fmt.Errorf("%w: negative additive samples %d", errs.ErrInvalidInput, n)
		}
		a.sampleEntries = n

		return nil
	})
}

// WithLogger sets the logger for lens diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	})
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return options.NoError(func(a *Analyzer) {
		a.metrics = m
	})
}
