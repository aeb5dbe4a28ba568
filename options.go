package cindex

import (
	"errors"
	"log/slog"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/analyzer"
	"github.com/arloliu/cindex/internal/options"
)

// Option configures a Handle.
type Option = options.Option[*Handle]

// WithRegistry sets the alphabet registry used by text conversions and instructions.
// Default is alphabet.NewDefaultRegistry().
func WithRegistry(registry *alphabet.Registry) Option {
	return options.New(func(h *Handle) error {
		if registry == nil {
			return errors.New("registry must not be nil")
		}
		h.registry = registry

		return nil
	})
}

// WithAnalyzer sets the analyzer used by Analyze. It must have been built over the same
// registry as the handle. An *analyzer.CachedAnalyzer is accepted as well.
func WithAnalyzer(an Analyzer) Option {
	return options.New(func(h *Handle) error {
		if an == nil {
			return errors.New("analyzer must not be nil")
		}
		h.analyzer = an

		return nil
	})
}

// WithAnalyzerOptions configures the analyzer the handle builds for itself.
// It is ignored when WithAnalyzer is given.
func WithAnalyzerOptions(opts ...analyzer.Option) Option {
	return options.NoError(func(h *Handle) {
		h.analyzerOpts = append(h.analyzerOpts, opts...)
	})
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(h *Handle) {
		if logger != nil {
			h.logger = logger
		}
	})
}
