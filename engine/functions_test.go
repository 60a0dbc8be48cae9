package engine

import (
	"math"
	"testing"

	"github.com/embedkit/sqlite-embed/vector"
)

func TestVectorFunctionsInSQL(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	aBlob := vector.Encode([]float32{1, 0})
	bBlob := vector.Encode([]float32{0, 1})

	var sim float64
	if err := db.QueryRow(`SELECT vec_cosine(?, ?)`, aBlob, bBlob).Scan(&sim); err != nil {
		t.Fatalf("vec_cosine(a,b) query failed: %v", err)
	}
	if sim != 0 {
		t.Fatalf("vec_cosine(a,b) = %v, want 0", sim)
	}

	if err := db.QueryRow(`SELECT vec_cosine(?, ?)`, aBlob, aBlob).Scan(&sim); err != nil {
		t.Fatalf("vec_cosine(a,a) query failed: %v", err)
	}
	if math.Abs(sim-1) > 1e-6 {
		t.Fatalf("vec_cosine(a,a) = %v, want 1", sim)
	}

	// Zero-magnitude input scores 0 instead of failing the query.
	zeroBlob := vector.Encode([]float32{0, 0})
	if err := db.QueryRow(`SELECT vec_cosine(?, ?)`, zeroBlob, aBlob).Scan(&sim); err != nil {
		t.Fatalf("vec_cosine(zero,a) query failed: %v", err)
	}
	if sim != 0 {
		t.Fatalf("vec_cosine(zero,a) = %v, want 0", sim)
	}

	var dist float64
	if err := db.QueryRow(`SELECT vec_l2(?, ?)`, zeroBlob, vector.Encode([]float32{3, 4})).Scan(&dist); err != nil {
		t.Fatalf("vec_l2 query failed: %v", err)
	}
	if math.Abs(dist-5) > 1e-6 {
		t.Fatalf("vec_l2 = %v, want 5", dist)
	}
}

func TestVectorFunctionsNullPropagation(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	var score *float64
	if err := db.QueryRow(`SELECT vec_cosine(NULL, ?)`, vector.Encode([]float32{1})).Scan(&score); err != nil {
		t.Fatalf("vec_cosine(NULL, ?) query failed: %v", err)
	}
	if score != nil {
		t.Fatalf("vec_cosine(NULL, ?) = %v, want NULL", *score)
	}
}
