package vector

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0, 0}, b: []float32{1, 0, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "45 degrees", a: []float32{1, 0}, b: []float32{1, 1}, want: math.Sqrt2 / 2},
		{name: "scale invariant", a: []float32{3, 0}, b: []float32{7, 0}, want: 1},
		{name: "scaled 45 degrees", a: []float32{2, 0}, b: []float32{5, 5}, want: math.Sqrt2 / 2},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 2}, want: 0},
		{name: "both zero", a: []float32{0, 0}, b: []float32{0, 0}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CosineSimilarity failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Fatalf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	if _, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestL2Distance(t *testing.T) {
	got, err := L2Distance([]float32{0, 0}, []float32{3, 4})
	if err != nil {
		t.Fatalf("L2Distance failed: %v", err)
	}
	if math.Abs(got-5) > 1e-6 {
		t.Fatalf("L2Distance = %v, want 5", got)
	}
	if _, err := L2Distance([]float32{1}, []float32{1, 2}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}
