// Package analyzer searches reconstruction strategies ("lenses") for an index and
// recommends the cheapest instruction.
//
// Lenses run in a fixed order:
//
//	LITERAL                 the decimal literal, always the baseline
//	TEXT_LITERAL            minimal text over the analyzer's alphabet
//	REFERENCE_REPEAT        the text as a repetition of a catalog pattern
//	GENERIC_REPEAT          the text as a repetition of its minimal period
//	ADDITIVE_DECOMPOSITION  index = a + (index - a) for small a
//
// A later lens replaces the recommendation only when strictly cheaper, so ties keep the
// earlier entry. A lens that fails is skipped and analysis continues.
package analyzer

import (
	"fmt"
	"log/slog"
	"math/big"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
	"github.com/arloliu/cindex/internal/options"
	"github.com/arloliu/cindex/pattern"
)

// Analyzer evaluates lenses against an index. It is immutable after New and safe for
// concurrent use.
type Analyzer struct {
	registry      *alphabet.Registry
	alphabetID    string
	alphabet      *alphabet.Alphabet
	cost          instruction.CostModel
	catalog       pattern.Catalog
	maxIterations int
	sampleEntries int
	logger        *slog.Logger
	metrics       *Metrics
}

// New creates an Analyzer over the registry's alphabets.
//
// Defaults: the registry's default alphabet, instruction.BinaryCost eliding that
// alphabet's id, pattern.DefaultCatalog, 1000 additive iterations with 3 samples, and a
// discarding logger.
func New(registry *alphabet.Registry, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		registry:      registry,
		catalog:       pattern.DefaultCatalog(),
		maxIterations: DefaultAdditiveIterations,
		sampleEntries: DefaultAdditiveSamples,
		logger:        slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	alpha, err := registry.Resolve(a.alphabetID)
	if err != nil {
		return nil, err
	}
	a.alphabet = alpha
	a.alphabetID = alpha.ID()

	if a.cost == nil {
		a.cost = instruction.BinaryCost{DefaultAlphabetID: registry.DefaultID()}
	}

	return a, nil
}

// Alphabet returns the alphabet used by the text lenses.
func (a *Analyzer) Alphabet() *alphabet.Alphabet {
	return a.alphabet
}

// CostModel returns the active cost model.
func (a *Analyzer) CostModel() instruction.CostModel {
	return a.cost
}

// run accumulates entries and tracks the best candidate for one analysis.
type run struct {
	an       *Analyzer
	report   *Report
	bestCost int
}

// Analyze evaluates every lens against index.
//
// It fails only when the index is invalid or the literal baseline cannot be costed;
// failures of the other lenses are skipped.
func (a *Analyzer) Analyze(index *big.Int) (*Report, error) {
	if err := codec.CheckIndex(index); err != nil {
		return nil, err
	}
	index = new(big.Int).Set(index)

	literal := instruction.Literal(index)
	cost, err := a.cost.Cost(literal)
	if err != nil {
		a.metrics.failed(format.LensLiteral)
		return nil, fmt.Errorf("cost literal baseline: %w", err)
	}
	a.metrics.evaluated(format.LensLiteral)

	r := &run{
		an: a,
		report: &Report{
			Index:           index,
			Entries:         []Entry{{LensID: format.LensLiteral, Instruction: literal, EstimatedCost: cost}},
			Recommended:     literal,
			RecommendedLens: format.LensLiteral,
			RecommendedCost: cost,
		},
		bestCost: cost,
	}

	if text, ok := r.textLiteral(index); ok {
		emitted := r.referenceRepeat(text)
		r.genericRepeat(text, emitted)
	}
	r.additive(index)

	a.metrics.recommended(r.report.RecommendedLens)
	a.logger.Debug("analysis complete",
		"index_bits", index.BitLen(),
		"entries", len(r.report.Entries),
		"lens", r.report.RecommendedLens,
		"cost", r.report.RecommendedCost)

	return r.report, nil
}

// evaluate costs in and records it as an entry when listed is true. It reports whether
// the candidate was costed.
func (r *run) evaluate(lens format.LensID, in instruction.Instruction, listed bool) bool {
	cost, err := r.an.cost.Cost(in)
	if err != nil {
		r.skip(lens, err)
		return false
	}
	r.an.metrics.evaluated(lens)

	improves := cost < r.bestCost
	if listed || improves {
		r.report.Entries = append(r.report.Entries, Entry{LensID: lens, Instruction: in, EstimatedCost: cost})
	}
	if improves {
		r.an.logger.Debug("recommendation changed",
			"from", r.report.RecommendedLens, "to", lens,
			"old_cost", r.bestCost, "new_cost", cost)

		r.bestCost = cost
		r.report.Recommended = in
		r.report.RecommendedLens = lens
		r.report.RecommendedCost = cost
	}

	return true
}

func (r *run) skip(lens format.LensID, err error) {
	r.an.metrics.failed(lens)
	r.an.logger.Debug("lens skipped", "lens", lens, "error", err)
}

func (r *run) textLiteral(index *big.Int) (string, bool) {
	text, err := codec.IndexToMinimalText(index, r.an.alphabet)
	if err != nil {
		r.skip(format.LensTextLiteral, err)
		return "", false
	}

	r.evaluate(format.LensTextLiteral, instruction.Text(text, r.an.alphabetID), true)

	return text, true
}

func (r *run) referenceRepeat(text string) []pattern.Repeat {
	var emitted []pattern.Repeat
	for _, rep := range r.an.catalog.Match(text) {
		in := instruction.Repeat(rep.Pattern, rep.Count, r.an.alphabetID)
		if r.evaluate(format.LensReferenceRepeat, in, true) {
			emitted = append(emitted, rep)
		}
	}

	return emitted
}

func (r *run) genericRepeat(text string, emitted []pattern.Repeat) {
	rep, ok := pattern.FindMinimalPeriod(text)
	if !ok {
		return
	}
	for _, e := range emitted {
		if e == rep {
			return
		}
	}

	r.evaluate(format.LensGenericRepeat, instruction.Repeat(rep.Pattern, rep.Count, r.an.alphabetID), true)
}
