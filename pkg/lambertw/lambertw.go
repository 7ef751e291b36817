// Package lambertw evaluates the principal (upper) real branch of the
// Lambert W function, the inverse of f(w) = w·e^w, for non-negative
// arguments. The single-diode photovoltaic equations are solved explicitly
// in terms of this branch, so the evaluator is vectorized over a batch of
// operating conditions.
package lambertw

import (
	"fmt"
	"math"
)

// smallArg bounds the range where the Maclaurin series of W about the origin
// is already at full double precision: the first neglected term is
// (8/3)x⁴ ≈ 2.7e-18·x at x = 1e-6, below the 2⁻⁵² unit roundoff.
const smallArg = 1e-6

// W computes the principal branch of the Lambert W function for every element
// of x. All elements must be non-negative; a negative element is a fatal
// input error identifying the offender. NaN and +Inf elements propagate NaN —
// callers that can overflow the argument recover in log space themselves.
func W(x []float64) ([]float64, error) {
	for i, v := range x {
		if v < 0 {
			return nil, fmt.Errorf("lambertw: argument must be non-negative, got x[%d] = %g", i, v)
		}
	}

	w := make([]float64, len(x))
	refine := make([]bool, len(x))
	for i, v := range x {
		w[i] = initialGuess(v)
		// The small-argument series is exact to machine precision; everything
		// else gets sharpened below.
		refine[i] = !(v < smallArg)
	}

	// Two rounds of Halley's method take the coarse range approximations
	// (worst relative error a few percent) to near machine precision: the
	// iteration is cubically convergent on this branch.
	for round := 0; round < 2; round++ {
		halleyStep(w, x, refine)
	}
	return w, nil
}

// initialGuess selects a closed-form approximation by argument range.
func initialGuess(x float64) float64 {
	switch {
	case x < smallArg:
		// Maclaurin series W(x) = x - x² + (3/2)x³ - ...
		return x * (1 - x + 1.5*x*x)
	case x < 1:
		// [2/2] Padé approximant of W about the origin; ≤ 0.6% relative
		// error on [0, 1).
		return x * (60 + 114*x + 17*x*x) / (60 + 174*x + 101*x*x)
	case x <= 20:
		// Barry, Barry & Culligan-Hensley (1995) log-form approximation.
		lx1 := math.Log(x + 1)
		return 0.665*(1+0.0195*lx1)*lx1 + 0.04
	default:
		// Asymptotic form for large arguments, W(x) ≈ ln x - ln ln x with
		// the Barry et al. correction terms.
		lx := math.Log(x)
		return math.Log(x-4) - (1-1/lx)*math.Log(lx)
	}
}

// halleyStep applies one vectorized Halley correction to the flagged
// elements, driving f(w) = w·e^w - x to zero.
func halleyStep(w, x []float64, refine []bool) {
	for i := range w {
		if !refine[i] {
			continue
		}
		wi := w[i]
		e := math.Exp(wi)
		f := wi*e - x[i]
		w[i] = wi - f/(e*(wi+1)-(wi+2)*f/(2*wi+2))
	}
}
