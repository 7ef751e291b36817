package lambertw

import (
	"math"
	"strings"
	"testing"
)

// TestDefiningProperty checks w·e^w == x across every approximation range.
func TestDefiningProperty(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
	}{
		{"zero", []float64{0}},
		{"series range", []float64{1e-300, 1e-15, 1e-10, 1e-8, 9.9e-7}},
		{"pade range", []float64{1e-6, 0.01, 0.1, 0.25, 0.5, 0.9, 0.999}},
		{"barry range", []float64{1, 1.5, 2, 5, 10, 19, 20}},
		{"asymptotic range", []float64{20.001, 25, 100, 1e3, 1e6, 1e12, 1e300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := W(tt.xs)
			if err != nil {
				t.Fatalf("W returned error: %v", err)
			}
			for i, x := range tt.xs {
				got := w[i] * math.Exp(w[i])
				denom := math.Max(x, 1e-300)
				if relErr := math.Abs(got-x) / denom; relErr > 1e-8 {
					t.Errorf("x=%g: w=%g, w·e^w=%g, relative error %g", x, w[i], got, relErr)
				}
				if w[i] < 0 {
					t.Errorf("x=%g: principal branch must be non-negative, got %g", x, w[i])
				}
			}
		})
	}
}

// TestKnownValues spot-checks against independently computed references.
func TestKnownValues(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{1, 0.5671432904097838}, // the omega constant
		{math.E, 1},
		{2 * math.E * math.E, 2},
		{10, 1.7455280027406994},
		{100, 3.3856301402900502},
	}
	for _, tt := range tests {
		w, err := W([]float64{tt.x})
		if err != nil {
			t.Fatalf("W(%g) returned error: %v", tt.x, err)
		}
		if math.Abs(w[0]-tt.want) > 1e-10*math.Max(1, tt.want) {
			t.Errorf("W(%g) = %.16g, want %.16g", tt.x, w[0], tt.want)
		}
	}
}

func TestNegativeArgumentRejected(t *testing.T) {
	_, err := W([]float64{1, -0.1, 2})
	if err == nil {
		t.Fatal("expected error for negative argument")
	}
	if !strings.Contains(err.Error(), "x[1]") {
		t.Errorf("error should identify the offending element, got: %v", err)
	}
}

// TestNonFinitePropagates verifies that NaN and +Inf arguments yield NaN
// rather than an error; overflow recovery is the caller's responsibility.
func TestNonFinitePropagates(t *testing.T) {
	w, err := W([]float64{math.NaN(), math.Inf(1), 2})
	if err != nil {
		t.Fatalf("W returned error: %v", err)
	}
	if !math.IsNaN(w[0]) {
		t.Errorf("W(NaN) = %g, want NaN", w[0])
	}
	if !math.IsNaN(w[1]) {
		t.Errorf("W(+Inf) = %g, want NaN", w[1])
	}
	if math.IsNaN(w[2]) {
		t.Error("finite element poisoned by non-finite neighbor")
	}
}

func TestMonotone(t *testing.T) {
	xs := []float64{0, 1e-7, 1e-3, 0.5, 1, 3, 20, 21, 1e4}
	w, err := W(xs)
	if err != nil {
		t.Fatalf("W returned error: %v", err)
	}
	for i := 1; i < len(w); i++ {
		if w[i] <= w[i-1] {
			t.Errorf("W must be strictly increasing: W(%g)=%g, W(%g)=%g", xs[i-1], w[i-1], xs[i], w[i])
		}
	}
}
