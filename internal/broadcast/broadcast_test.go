package broadcast

import (
	"testing"
)

func TestCommonLength(t *testing.T) {
	tests := []struct {
		name    string
		vecs    [][]float64
		want    int
		wantErr bool
	}{
		{"all scalars", [][]float64{{1}, {2}, {3}}, 1, false},
		{"scalar and vector", [][]float64{{1}, {2, 3, 4}}, 3, false},
		{"matching vectors", [][]float64{{1, 2}, {3, 4}, {5}}, 2, false},
		{"mismatched vectors", [][]float64{{1, 2}, {3, 4, 5}}, 0, true},
		{"empty input", [][]float64{{1}, {}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := CommonLength(tt.vecs...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tt.want {
				t.Errorf("common length = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	got := Expand([]float64{7}, 4)
	if len(got) != 4 {
		t.Fatalf("length = %d, want 4", len(got))
	}
	for i, v := range got {
		if v != 7 {
			t.Errorf("element %d = %g, want 7", i, v)
		}
	}

	// Full-length input passes through unchanged.
	in := []float64{1, 2, 3}
	if out := Expand(in, 3); &out[0] != &in[0] {
		t.Error("full-length vector should not be copied")
	}
}

func TestAlign(t *testing.T) {
	out, n, err := Align([]float64{1}, []float64{2, 3, 4}, []float64{5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	for _, v := range out {
		if len(v) != 3 {
			t.Errorf("aligned length = %d, want 3", len(v))
		}
	}
}
