package photometry

import (
	"math"

	"github.com/pkg/errors"
)

// Ballesteros (2012) empirical fit of effective temperature against the B-V
// colour index.
const (
	teffScale = 4600.0
	bvSlope   = 0.92
	bvOffsetA = 1.7
	bvOffsetB = 0.62
)

const epsilon = 1e-9

// ErrDegenerateIndex reports a B-V value for which the temperature formula has
// a vanishing denominator or produces a non-physical result.
var ErrDegenerateIndex = errors.New("degenerate B-V colour index")

// BVToTemperature returns the effective temperature in Kelvin estimated from
// the B-V colour index:
//
//	Teff = 4600 * (1/(0.92*bv + 1.7) + 1/(0.92*bv + 0.62))
//
// Temperature decreases strictly with increasing B-V over the physical range.
func BVToTemperature(bv float64) (float64, error) {
	denomA := bvSlope*bv + bvOffsetA
	denomB := bvSlope*bv + bvOffsetB
	if math.Abs(denomA) < epsilon || math.Abs(denomB) < epsilon {
		return 0, errors.Wrapf(ErrDegenerateIndex, "B-V=%g", bv)
	}

	teff := teffScale * (1/denomA + 1/denomB)
	if math.IsNaN(teff) || math.IsInf(teff, 0) || teff <= 0 {
		return 0, errors.Wrapf(ErrDegenerateIndex, "B-V=%g yields Teff=%g", bv, teff)
	}

	return teff, nil
}
