package singlediode

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gopv/gopv/pkg/optimize"
)

// Options configures curve characterization. The zero value selects
// DefaultOptions.
type Options struct {
	// Minimizer configures the bounded search for the maximum power point.
	Minimizer optimize.Options
}

// DefaultOptions uses a 1e-8 tolerance on the maximum-power-point current,
// much tighter than the minimizer's own 1e-4 default: Pmp errors grow with
// the curvature of P(I) near the knee of stiff low-Rs curves.
func DefaultOptions() Options {
	return Options{Minimizer: optimize.Options{XTol: 1e-8, MaxIterations: 500}}
}

// CurveResult holds the SAPM landmark points for each operating condition in
// a batch, and optionally a densely sampled I-V curve per condition.
type CurveResult struct {
	Isc []float64 // short-circuit current, A
	Voc []float64 // open-circuit voltage, V
	Imp []float64 // current at maximum power, A
	Vmp []float64 // voltage at maximum power, V
	Pmp []float64 // maximum power, W
	Ix  []float64 // current at V = 0.5·Voc, A
	Ixx []float64 // current at V = 0.5·(Voc+Vmp), A

	// Converged reports, per operating condition, whether the
	// maximum-power-point search reached tolerance. Unconverged elements
	// still carry best-effort Imp/Vmp/Pmp values.
	Converged []bool
	// MPPIterations is the number of golden-section iterations spent on
	// the maximum-power-point search.
	MPPIterations int

	// V and I hold the sampled curve, one row per operating condition and
	// one column per voltage step from 0 to Voc inclusive. Nil unless at
	// least two points were requested.
	V *mat.Dense
	I *mat.Dense
}

// CharacterizeCurve computes the five SAPM landmark points (plus Ix and Ixx)
// for every operating condition described by the five diode parameter
// vectors, each of length 1 or a common length N. numPoints is rounded up;
// a value below 2 skips the sampled curve. Shape or domain violations abort
// before any computation; maximum-power-point non-convergence does not.
func CharacterizeCurve(il, i0, rs, rsh, nNsVth []float64, numPoints float64, opt Options) (*CurveResult, error) {
	if opt.Minimizer.XTol == 0 {
		opt.Minimizer.XTol = DefaultOptions().Minimizer.XTol
	}
	if opt.Minimizer.MaxIterations == 0 {
		opt.Minimizer.MaxIterations = DefaultOptions().Minimizer.MaxIterations
	}
	if math.IsNaN(numPoints) || math.IsInf(numPoints, 0) {
		return nil, &DomainError{Name: "NumPoints", Index: 0, Value: numPoints}
	}

	names := []string{"IL", "I0", "Rs", "Rsh", "nNsVth"}
	vecs, n, err := align(names, il, i0, rs, rsh, nNsVth)
	if err != nil {
		return nil, err
	}
	for vi, v := range vecs {
		for i, x := range v {
			if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, &DomainError{Name: names[vi], Index: i, Value: x}
			}
		}
	}
	il, i0, rs, rsh, nNsVth = vecs[0], vecs[1], vecs[2], vecs[3], vecs[4]

	zero := make([]float64, n)

	isc, err := iFromV(rsh, rs, nNsVth, zero, i0, il)
	if err != nil {
		return nil, err
	}
	voc, err := vFromI(rsh, rs, nNsVth, zero, i0, il)
	if err != nil {
		return nil, err
	}

	// Locate the maximum power point by minimizing -I·V(I) over [0, Isc]
	// independently for each condition.
	negPower := func(x []float64) []float64 {
		v, verr := vFromI(rsh, rs, nNsVth, x, i0, il)
		if verr != nil {
			// Parameters were validated above; the kernel cannot fail on
			// a current sweep within [0, Isc].
			panic(verr)
		}
		p := make([]float64, len(x))
		for i := range p {
			p[i] = -x[i] * v[i]
		}
		return p
	}
	mpp, err := optimize.Fminbound(negPower, zero, isc, opt.Minimizer)
	if err != nil {
		return nil, err
	}

	res := &CurveResult{
		Isc:           isc,
		Voc:           voc,
		Imp:           mpp.X,
		Vmp:           make([]float64, n),
		Pmp:           make([]float64, n),
		Converged:     mpp.Converged,
		MPPIterations: mpp.Iterations,
	}
	for i := range res.Vmp {
		res.Vmp[i] = -mpp.F[i] / mpp.X[i]
		res.Pmp[i] = res.Vmp[i] * res.Imp[i]
	}

	halfVoc := make([]float64, n)
	midVoc := make([]float64, n)
	for i := range halfVoc {
		halfVoc[i] = 0.5 * voc[i]
		midVoc[i] = 0.5 * (voc[i] + res.Vmp[i])
	}
	if res.Ix, err = iFromV(rsh, rs, nNsVth, halfVoc, i0, il); err != nil {
		return nil, err
	}
	if res.Ixx, err = iFromV(rsh, rs, nNsVth, midVoc, i0, il); err != nil {
		return nil, err
	}

	if points := int(math.Ceil(numPoints)); points >= 2 {
		if err := res.sampleCurve(il, i0, rs, rsh, nNsVth, points); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// sampleCurve fills V and I with a points-wide sweep per operating condition,
// voltages evenly spaced from 0 to Voc inclusive. The first current column
// reproduces Isc bit-for-bit and the last voltage column is exactly Voc.
func (r *CurveResult) sampleCurve(il, i0, rs, rsh, nNsVth []float64, points int) error {
	n := len(r.Voc)
	r.V = mat.NewDense(n, points, nil)
	r.I = mat.NewDense(n, points, nil)
	for row := 0; row < n; row++ {
		v := floats.Span(make([]float64, points), 0, r.Voc[row])
		curr, err := IFromV(
			[]float64{rsh[row]}, []float64{rs[row]}, []float64{nNsVth[row]},
			v, []float64{i0[row]}, []float64{il[row]},
		)
		if err != nil {
			return err
		}
		r.V.SetRow(row, v)
		r.I.SetRow(row, curr)
	}
	return nil
}
