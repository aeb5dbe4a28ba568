package cindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/analyzer"
	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
	"github.com/arloliu/cindex/internal/options"
)

// Analyzer produces a lens report for an index.
type Analyzer = analyzer.Reporter

// InstructionStore persists instructions by key. *store.InstructionStore implements it.
type InstructionStore interface {
	Save(ctx context.Context, key string, in instruction.Instruction) error
	Load(ctx context.Context, key string) (instruction.Instruction, bool, error)
}

// Handle owns one canonical index.
//
// Every setter validates and converts its input completely before replacing the index,
// so a failed call leaves the index unchanged. Getters return copies.
//
// Handle is not safe for concurrent use; callers serialize access.
type Handle struct {
	index        *big.Int
	registry     *alphabet.Registry
	analyzer     Analyzer
	analyzerOpts []analyzer.Option
	logger       *slog.Logger
}

// New creates a handle holding index 0.
//
// Parameters:
//   - opts: Optional configuration (WithRegistry, WithAnalyzer, WithAnalyzerOptions, WithLogger)
//
// Returns an error if an option is invalid or the analyzer cannot be built.
func New(opts ...Option) (*Handle, error) {
	h := &Handle{
		index:  new(big.Int),
		logger: slog.New(slog.DiscardHandler),
	}

	if err := options.Apply(h, opts...); err != nil {
		return nil, err
	}

	if h.registry == nil {
		h.registry = alphabet.NewDefaultRegistry()
	}

	if h.analyzer == nil {
		anOpts := append([]analyzer.Option{analyzer.WithLogger(h.logger)}, h.analyzerOpts...)
		an, err := analyzer.New(h.registry, anOpts...)
		if err != nil {
			return nil, fmt.Errorf("create analyzer: %w", err)
		}
		h.analyzer = an
	}
	h.analyzerOpts = nil

	return h, nil
}

// Registry returns the handle's alphabet registry.
func (h *Handle) Registry() *alphabet.Registry {
	return h.registry
}

// Index returns a copy of the index.
func (h *Handle) Index() *big.Int {
	return new(big.Int).Set(h.index)
}

// IndexString returns the index in decimal.
func (h *Handle) IndexString() string {
	return h.index.String()
}

// SetIndex replaces the index with a copy of index.
//
// Returns errs.ErrInvalidInput for nil and errs.ErrNegativeIndex for negative values.
func (h *Handle) SetIndex(index *big.Int) error {
	if err := codec.CheckIndex(index); err != nil {
		return err
	}
	h.set(new(big.Int).Set(index), "integer")

	return nil
}

// SetIndexString replaces the index with a decimal value.
func (h *Handle) SetIndexString(s string) error {
	index, err := codec.ParseIndex(s)
	if err != nil {
		return err
	}
	h.set(index, "decimal")

	return nil
}

// SetText decodes text over the default alphabet into the index.
func (h *Handle) SetText(text string) error {
	return h.SetTextWith(h.registry.DefaultID(), text)
}

// SetTextWith decodes text over the named alphabet into the index.
//
// Returns errs.ErrUnsupportedModality for an unknown alphabet and *errs.UnknownSymbolError
// for a rune outside it.
func (h *Handle) SetTextWith(alphabetID, text string) error {
	a, err := h.registry.Get(alphabetID)
	if err != nil {
		return err
	}

	index, err := codec.TextToIndex(text, a)
	if err != nil {
		return err
	}
	h.set(index, format.ModalityText.String())

	return nil
}

// Text encodes the index as minimal text over the default alphabet.
// Index 0 yields the single zero symbol.
func (h *Handle) Text() (string, error) {
	return h.TextWith(h.registry.DefaultID())
}

// TextWith encodes the index as minimal text over the named alphabet.
func (h *Handle) TextWith(alphabetID string) (string, error) {
	a, err := h.registry.Get(alphabetID)
	if err != nil {
		return "", err
	}

	return codec.IndexToMinimalText(h.index, a)
}

// SetSequence decodes big-endian words of bitDepth bits (1 to 32) into the index.
func (h *Handle) SetSequence(words []uint32, bitDepth int) error {
	index, err := codec.WordsToIndex(words, bitDepth)
	if err != nil {
		return err
	}
	h.set(index, format.ModalitySequence.String())

	return nil
}

// Sequence encodes the index as targetLength words of bitDepth bits.
// Pass codec.MinimalLength for the shortest sequence.
func (h *Handle) Sequence(targetLength, bitDepth int) ([]uint32, error) {
	return codec.IndexToWords(h.index, targetLength, bitDepth)
}

// MinSequenceLength returns the fewest words of bitDepth bits that hold the index.
func (h *Handle) MinSequenceLength(bitDepth int) (int, error) {
	return codec.MinSequenceLength(h.index, bitDepth)
}

// SetWideSequence decodes big-endian words of up to 4096 bits into the index.
func (h *Handle) SetWideSequence(words []*big.Int, bitDepth int) error {
	index, err := codec.WideWordsToIndex(words, bitDepth)
	if err != nil {
		return err
	}
	h.set(index, format.ModalityWideSequence.String())

	return nil
}

// MinWideSequenceLength returns the fewest words of bitDepth bits, up to 4096, that hold the index.
func (h *Handle) MinWideSequenceLength(bitDepth int) (int, error) {
	return codec.MinWideSequenceLength(h.index, bitDepth)
}

// WideSequence encodes the index as targetLength words of bitDepth bits.
func (h *Handle) WideSequence(targetLength, bitDepth int) ([]*big.Int, error) {
	return codec.IndexToWideWords(h.index, targetLength, bitDepth)
}

// Execute runs in and stores the result as the index. It returns a copy of the new index.
func (h *Handle) Execute(in instruction.Instruction) (*big.Int, error) {
	index, err := instruction.Execute(in, h.registry)
	if err != nil {
		return nil, err
	}
	h.set(index, in.Kind().String())

	return h.Index(), nil
}

// ExecuteJSON parses a JSON recipe, runs it and stores the result as the index.
//
// Returns *errs.ParseError for a malformed recipe, or any error of Execute.
func (h *Handle) ExecuteJSON(recipe []byte) (*big.Int, error) {
	in, err := instruction.Unmarshal(recipe)
	if err != nil {
		return nil, err
	}

	return h.Execute(in)
}

// Analyze runs the lens analyzer on the index. The index is not modified.
func (h *Handle) Analyze() (*analyzer.Report, error) {
	return h.analyzer.Analyze(h.index)
}

// AnalyzeJSON runs Analyze and serializes the report:
//
//	{"ci_analyzed": "...", "analysis_by_lens": [...], "recommended_instruction_for_save": {...}}
func (h *Handle) AnalyzeJSON() ([]byte, error) {
	report, err := h.Analyze()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}

	return data, nil
}

// Save analyzes the index and stores the recommended instruction under key.
// It returns the stored instruction.
func (h *Handle) Save(ctx context.Context, s InstructionStore, key string) (instruction.Instruction, error) {
	report, err := h.Analyze()
	if err != nil {
		return nil, err
	}

	if err := s.Save(ctx, key, report.Recommended); err != nil {
		return nil, err
	}
	h.logger.Debug("recommended instruction saved", "key", key, "lens", report.RecommendedLens,
		"cost", report.RecommendedCost)

	return report.Recommended, nil
}

// Load reads the instruction under key and executes it into the index.
// It returns false, leaving the index unchanged, when the key does not exist.
func (h *Handle) Load(ctx context.Context, s InstructionStore, key string) (bool, error) {
	in, ok, err := s.Load(ctx, key)
	if err != nil || !ok {
		return false, err
	}

	if _, err := h.Execute(in); err != nil {
		return false, fmt.Errorf("execute stored instruction %q: %w", key, err)
	}

	return true, nil
}

// String returns the index in decimal.
func (h *Handle) String() string {
	return h.IndexString()
}

func (h *Handle) set(index *big.Int, source string) {
	h.index = index
	h.logger.Debug("index set", "source", source, "bits", index.BitLen())
}

var (
	_ Analyzer = (*analyzer.Analyzer)(nil)
	_ Analyzer = (*analyzer.CachedAnalyzer)(nil)
)
