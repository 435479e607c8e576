// Package transform supplies the variance-stabilizing rescaling applied to
// raw cytometry measurements before enrichment scoring. The scoring engine
// itself is agnostic to whether a transform ran; this package exists so the
// command-line tools can offer the standard one.
package transform

import (
	"fmt"
	"math"
)

// Conventional arcsinh cofactors: mass cytometry channels are usually scaled
// by 5, fluorescence channels by 150.
const (
	CofactorMass         = 5
	CofactorFluorescence = 150
)

// Arcsinh returns the monotonic transform x -> asinh(x/cofactor). Near zero
// it is close to linear in x/cofactor; for large |x| it behaves like a signed
// logarithm, which tames the heavy right tail of expression data.
func Arcsinh(cofactor float64) (func(float64) float64, error) {
	if cofactor <= 0 {
		return nil, fmt.Errorf("transform: cofactor must be > 0, got %g", cofactor)
	}
	return func(x float64) float64 {
		return math.Asinh(x / cofactor)
	}, nil
}
