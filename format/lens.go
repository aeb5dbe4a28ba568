package format

// LensID identifies one reconstruction strategy of the analyzer.
// The string values appear in analysis reports as "lens_id".
type LensID string

const (
	LensLiteral               LensID = "LITERAL"
	LensTextLiteral           LensID = "TEXT_LITERAL"
	LensReferenceRepeat       LensID = "REFERENCE_REPEAT"
	LensGenericRepeat         LensID = "GENERIC_REPEAT"
	LensAdditiveDecomposition LensID = "ADDITIVE_DECOMPOSITION"
)

// Lenses lists all lenses in evaluation order.
var Lenses = []LensID{
	LensLiteral,
	LensTextLiteral,
	LensReferenceRepeat,
	LensGenericRepeat,
	LensAdditiveDecomposition,
}

func (l LensID) String() string { return string(l) }
