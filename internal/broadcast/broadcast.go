// Package broadcast aligns parallel parameter vectors that may be supplied
// either as length-1 scalars or as full-length arrays, mirroring the implicit
// elementwise broadcasting of array-oriented numerical environments.
package broadcast

import "fmt"

// CommonLength returns the single shared length N of the given vectors, where
// each vector must have length 1 or N. An error names the offending lengths.
func CommonLength(vecs ...[]float64) (int, error) {
	n := 1
	for _, v := range vecs {
		if len(v) == 0 {
			return 0, fmt.Errorf("broadcast: empty vector among inputs")
		}
		if len(v) != 1 {
			if n != 1 && len(v) != n {
				return 0, fmt.Errorf("broadcast: incompatible vector lengths %d and %d", n, len(v))
			}
			n = len(v)
		}
	}
	return n, nil
}

// Expand returns v stretched to length n. Length-1 vectors are repeated;
// full-length vectors are returned as-is (no copy).
func Expand(v []float64, n int) []float64 {
	if len(v) == n {
		return v
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v[0]
	}
	return out
}

// Align broadcasts every vector to the common length, returning the expanded
// vectors in input order.
func Align(vecs ...[]float64) ([][]float64, int, error) {
	n, err := CommonLength(vecs...)
	if err != nil {
		return nil, 0, err
	}
	out := make([][]float64, len(vecs))
	for i, v := range vecs {
		out[i] = Expand(v, n)
	}
	return out, n, nil
}
