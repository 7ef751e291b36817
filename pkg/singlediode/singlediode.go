// Package singlediode solves the single-diode photovoltaic module equation
//
//	I = IL - I0·(exp((V + I·Rs)/nNsVth) - 1) - (V + I·Rs)/Rsh
//
// explicitly in both directions using the principal branch of the Lambert W
// function, and characterizes the resulting I-V curves at the standard SAPM
// landmark points. All operations are vectorized over a batch of operating
// conditions; length-1 inputs broadcast against full-length ones.
package singlediode

import (
	"math"

	"github.com/gopv/gopv/internal/broadcast"
	"github.com/gopv/gopv/pkg/lambertw"
)

// align broadcasts the named input vectors to their common batch length,
// reporting the first input whose length fits neither 1 nor the batch.
func align(names []string, vecs ...[]float64) ([][]float64, int, error) {
	n := 1
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, 0, &ShapeError{Name: names[i], Len: 0, Want: n}
		}
		if len(v) != 1 {
			if n != 1 && len(v) != n {
				return nil, 0, &ShapeError{Name: names[i], Len: len(v), Want: n}
			}
			n = len(v)
		}
	}
	out := make([][]float64, len(vecs))
	for i, v := range vecs {
		out[i] = broadcast.Expand(v, n)
	}
	return out, n, nil
}

// VFromI computes the terminal voltage at each diode current in curr for the
// given diode parameters. Inputs broadcast elementwise; incompatible lengths
// abort with a ShapeError. Division by zero is not guarded — zero resistances
// or thermal voltage propagate IEEE-754 Inf/NaN.
func VFromI(rsh, rs, nNsVth, curr, i0, il []float64) ([]float64, error) {
	vecs, _, err := align([]string{"Rsh", "Rs", "nNsVth", "I", "I0", "IL"}, rsh, rs, nNsVth, curr, i0, il)
	if err != nil {
		return nil, err
	}
	return vFromI(vecs[0], vecs[1], vecs[2], vecs[3], vecs[4], vecs[5])
}

// vFromI is the broadcast-free kernel behind VFromI.
func vFromI(rsh, rs, a, curr, i0, il []float64) ([]float64, error) {
	n := len(curr)

	// Lambert W argument of the explicit solution:
	//   argW = (I0·Rsh/a)·exp(Rsh·(IL + I0 - I)/a)
	argW := make([]float64, n)
	for i := range argW {
		argW[i] = i0[i] * rsh[i] / a[i] * math.Exp(rsh[i]*(il[i]+i0[i]-curr[i])/a[i])
	}
	w, err := lambertw.W(argW)
	if err != nil {
		return nil, err
	}

	// Large Rsh/a ratios overflow the exponential above; recover those
	// elements in log space, solving w + ln w = ln argW by fixed point.
	for i := range w {
		if isFinite(w[i]) {
			continue
		}
		logArgW := math.Log(i0[i]) + math.Log(rsh[i]) + rsh[i]*(il[i]+i0[i]-curr[i])/a[i] - math.Log(a[i])
		w[i] = logspaceW(logArgW)
	}

	v := make([]float64, n)
	for i := range v {
		v[i] = -curr[i]*(rs[i]+rsh[i]) + il[i]*rsh[i] - a[i]*w[i] + i0[i]*rsh[i]
	}
	return v, nil
}

// IFromV computes the diode current at each terminal voltage in v for the
// given diode parameters. Broadcasting and failure semantics match VFromI.
func IFromV(rsh, rs, nNsVth, v, i0, il []float64) ([]float64, error) {
	vecs, _, err := align([]string{"Rsh", "Rs", "nNsVth", "V", "I0", "IL"}, rsh, rs, nNsVth, v, i0, il)
	if err != nil {
		return nil, err
	}
	return iFromV(vecs[0], vecs[1], vecs[2], vecs[3], vecs[4], vecs[5])
}

// iFromV is the broadcast-free kernel behind IFromV.
func iFromV(rsh, rs, a, v, i0, il []float64) ([]float64, error) {
	n := len(v)

	// Lambert W argument of the explicit solution:
	//   argW = Rs·I0·Rsh/(a·(Rs+Rsh))·exp(Rsh·(Rs·(IL+I0)+V)/(a·(Rs+Rsh)))
	argW := make([]float64, n)
	for i := range argW {
		argW[i] = rs[i] * i0[i] * rsh[i] / (a[i] * (rs[i] + rsh[i])) *
			math.Exp(rsh[i]*(rs[i]*(il[i]+i0[i])+v[i])/(a[i]*(rs[i]+rsh[i])))
	}
	w, err := lambertw.W(argW)
	if err != nil {
		return nil, err
	}

	// Same overflow regime as vFromI; the reference implementation only
	// recovered the voltage direction, but the argument overflows here for
	// the same parameter sets, so both directions get the log-space path.
	for i := range w {
		if isFinite(w[i]) {
			continue
		}
		logArgW := math.Log(rs[i]) + math.Log(i0[i]) + math.Log(rsh[i]) -
			math.Log(a[i]) - math.Log(rs[i]+rsh[i]) +
			rsh[i]*(rs[i]*(il[i]+i0[i])+v[i])/(a[i]*(rs[i]+rsh[i]))
		w[i] = logspaceW(logArgW)
	}

	curr := make([]float64, n)
	for i := range curr {
		curr[i] = -v[i]/(rs[i]+rsh[i]) - a[i]/rs[i]*w[i] + rsh[i]*(il[i]+i0[i])/(rs[i]+rsh[i])
	}
	return curr, nil
}

// logspaceW solves w + ln w = logArgW, the log-space form of w·e^w = argW,
// seeding with w = logArgW and applying three fixed-point corrections. For
// the overflow regime (logArgW ≫ 1) three rounds reach machine precision.
func logspaceW(logArgW float64) float64 {
	w := logArgW
	for k := 0; k < 3; k++ {
		w = w * (1 - math.Log(w) + logArgW) / (1 + w)
	}
	return w
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
