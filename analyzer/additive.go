package analyzer

import (
	"math/big"

	"github.com/arloliu/cindex/format"
	"github.com/arloliu/cindex/instruction"
)

var bigOne = big.NewInt(1)

// additive searches index = a + (index - a) for a = 1, 2, ... while a <= index/2 and
// the iteration cap holds.
//
// Every candidate is costed. The first sampleEntries candidates are listed in the report,
// as is any later candidate that becomes the new best. The best cost is updated as soon
// as a cheaper candidate is found, so later candidates compete against it.
func (r *run) additive(index *big.Int) {
	if index.Cmp(bigOne) <= 0 || r.an.maxIterations == 0 {
		return
	}

	half := new(big.Int).Rsh(index, 1)
	a := new(big.Int)
	b := new(big.Int)

	for i := 0; i < r.an.maxIterations; i++ {
		a.Add(a, bigOne)
		if a.Cmp(half) > 0 {
			break
		}
		b.Sub(index, a)

		r.evaluate(format.LensAdditiveDecomposition, instruction.Addition(a, b), i < r.an.sampleEntries)
	}
}
