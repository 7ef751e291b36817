// Package optimize provides a vectorized derivative-free bounded scalar
// minimizer. Each element of a batch carries its own closed search interval
// and is minimized independently; the objective is evaluated once per
// iteration for the whole batch.
package optimize

import (
	"fmt"
	"math"
)

// invPhi is the reciprocal golden ratio, the interval reduction factor of
// golden-section search.
var invPhi = (math.Sqrt(5) - 1) / 2

// Objective evaluates a scalar function elementwise: out[i] = f(x[i]).
// Implementations must return a slice of the same length as x.
type Objective func(x []float64) []float64

// Options configures a bounded minimization. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// XTol is the absolute convergence tolerance on the independent
	// variable: an element converges once its bracket width shrinks
	// below XTol.
	XTol float64
	// MaxIterations caps the number of golden-section iterations. Each
	// iteration costs one batched objective evaluation.
	MaxIterations int
}

// DefaultOptions mirrors the customary defaults of derivative-free bounded
// minimizers: a loose 1e-4 tolerance and a generous evaluation budget.
func DefaultOptions() Options {
	return Options{XTol: 1e-4, MaxIterations: 500}
}

// Result holds the per-element outcome of a bounded minimization.
type Result struct {
	// X is the located minimizer, midpoint of the final bracket.
	X []float64
	// F is the objective evaluated at X.
	F []float64
	// Converged reports, per element, whether the bracket reached XTol
	// within the iteration budget. Elements with degenerate or non-finite
	// brackets are reported unconverged and carry best-effort values.
	Converged []bool
	// Iterations is the number of golden-section iterations performed.
	Iterations int
}

// Fminbound minimizes the objective over the closed interval
// [lower[i], upper[i]] for each element i using golden-section search.
// lower and upper must have equal length. Non-convergence of individual
// elements is reported through Result.Converged, never as an error.
func Fminbound(f Objective, lower, upper []float64, opt Options) (Result, error) {
	if len(lower) != len(upper) {
		return Result{}, fmt.Errorf("optimize: bound lengths differ, %d vs %d", len(lower), len(upper))
	}
	if opt.XTol <= 0 || opt.MaxIterations <= 0 {
		return Result{}, fmt.Errorf("optimize: options must be positive, got xtol=%g maxiter=%d", opt.XTol, opt.MaxIterations)
	}
	n := len(lower)

	a := append([]float64(nil), lower...)
	b := append([]float64(nil), upper...)
	active := make([]bool, n)
	res := Result{
		X:         make([]float64, n),
		F:         make([]float64, n),
		Converged: make([]bool, n),
	}

	// Elements whose bracket is degenerate (zero or inverted width) or not
	// finite cannot be searched; they keep the untouched bracket midpoint
	// as X and stay flagged unconverged.
	anyActive := false
	for i := range a {
		width := b[i] - a[i]
		if width > 0 && !math.IsInf(width, 0) && !math.IsNaN(width) {
			active[i] = true
			anyActive = true
		}
	}

	// Interior probe points at the golden sections of each bracket.
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	for i := range a {
		x1[i] = b[i] - invPhi*(b[i]-a[i])
		x2[i] = a[i] + invPhi*(b[i]-a[i])
	}
	f1 := f(x1)
	f2 := f(x2)

	if anyActive {
		for iter := 0; iter < opt.MaxIterations; iter++ {
			res.Iterations = iter + 1
			probe := make([]float64, n)
			probeIsX1 := make([]bool, n)
			updated := make([]bool, n)
			done := true
			for i := range a {
				if !active[i] {
					// Finished and degenerate elements still need a probe
					// slot so the batched objective keeps its shape.
					probe[i] = x1[i]
					continue
				}
				updated[i] = true
				if f1[i] < f2[i] {
					// Minimum is in [a, x2]; reuse x1 as the new x2.
					b[i] = x2[i]
					x2[i], f2[i] = x1[i], f1[i]
					x1[i] = b[i] - invPhi*(b[i]-a[i])
					probe[i] = x1[i]
					probeIsX1[i] = true
				} else {
					a[i] = x1[i]
					x1[i], f1[i] = x2[i], f2[i]
					x2[i] = a[i] + invPhi*(b[i]-a[i])
					probe[i] = x2[i]
				}
				if b[i]-a[i] <= opt.XTol {
					res.Converged[i] = true
					active[i] = false
				} else {
					done = false
				}
			}
			fp := f(probe)
			for i := range fp {
				if !updated[i] {
					continue
				}
				if probeIsX1[i] {
					f1[i] = fp[i]
				} else {
					f2[i] = fp[i]
				}
			}
			if done {
				break
			}
		}
	}

	for i := range a {
		res.X[i] = 0.5 * (a[i] + b[i])
	}
	copy(res.F, f(res.X))
	return res, nil
}
