package analyzer

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"

	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
)

// Entry is one instruction proposed by a lens.
type Entry struct {
	LensID        format.LensID
	Instruction   instruction.Instruction
	EstimatedCost int
}

// Report is the result of analyzing one index.
type Report struct {
	// Index is the analyzed index.
	Index *big.Int
	// Entries lists every proposed instruction in lens order.
	Entries []Entry
	// Recommended is the cheapest instruction; ties keep the earliest entry.
	Recommended instruction.Instruction
	// RecommendedLens and RecommendedCost describe Recommended.
	RecommendedLens format.LensID
	RecommendedCost int
}

// EntriesFor returns the entries proposed by lens.
func (r *Report) EntriesFor(lens format.LensID) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.LensID == lens {
			out = append(out, e)
		}
	}

	return out
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	return &Report{
		Index:           new(big.Int).Set(r.Index),
		Entries:         slices.Clone(r.Entries),
		Recommended:     r.Recommended,
		RecommendedLens: r.RecommendedLens,
		RecommendedCost: r.RecommendedCost,
	}
}

type entryJSON struct {
	LensID        format.LensID        `json:"lens_id"`
	Instruction   instruction.Envelope `json:"instruction"`
	EstimatedCost int                  `json:"estimated_cost"`
}

type reportJSON struct {
	IndexAnalyzed string               `json:"ci_analyzed"`
	Entries       []entryJSON          `json:"analysis_by_lens"`
	Recommended   instruction.Envelope `json:"recommended_instruction_for_save"`
}

// MarshalJSON encodes the report in its interchange shape.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r.Index == nil {
		return nil, fmt.Errorf("%w: report without index", errs.ErrInvalidInput)
	}

	out := reportJSON{
		IndexAnalyzed: r.Index.String(),
		Entries:       make([]entryJSON, 0, len(r.Entries)),
		Recommended:   instruction.Envelope{Instruction: r.Recommended},
	}
	for _, e := range r.Entries {
		out.Entries = append(out.Entries, entryJSON{
			LensID:        e.LensID,
			Instruction:   instruction.Envelope{Instruction: e.Instruction},
			EstimatedCost: e.EstimatedCost,
		})
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a report. RecommendedLens and RecommendedCost are restored from
// the first entry equal to the recommendation.
func (r *Report) UnmarshalJSON(data []byte) error {
	var in reportJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	index, err := codec.ParseIndex(in.IndexAnalyzed)
	if err != nil {
		return fmt.Errorf("ci_analyzed: %w", err)
	}

	*r = Report{
		Index:       index,
		Entries:     make([]Entry, 0, len(in.Entries)),
		Recommended: in.Recommended.Instruction,
	}
	for _, e := range in.Entries {
		r.Entries = append(r.Entries, Entry{
			LensID:        e.LensID,
			Instruction:   e.Instruction.Instruction,
			EstimatedCost: e.EstimatedCost,
		})
	}

	for _, e := range r.Entries {
		if instruction.Equal(e.Instruction, r.Recommended) {
			r.RecommendedLens, r.RecommendedCost = e.LensID, e.EstimatedCost
			break
		}
	}

	return nil
}
