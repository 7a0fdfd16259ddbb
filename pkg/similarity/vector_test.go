package similarity

import (
	"math"
	"reflect"
	"testing"

	"github.com/bastiangx/wordsim/pkg/corpus"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNewVectorZeroFills(t *testing.T) {
	counts := corpus.YearCounts{2001: 3, 2005: 1}
	axis := []int{2000, 2001, 2003, 2005}

	expected := Vector{0, 3, 0, 1}
	if got := NewVector(counts, axis); !reflect.DeepEqual(got, expected) {
		t.Errorf("NewVector = %v, expected %v", got, expected)
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    Vector
		expected Vector
	}{
		{"3-4-5", Vector{3, 4}, Vector{0.6, 0.8}},
		{"axis", Vector{0, 5, 0}, Vector{0, 1, 0}},
		{"zero", Vector{0, 0, 0}, Vector{0, 0, 0}},
		{"empty", Vector{}, Vector{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.input.Normalize()
			if len(got) != len(tc.expected) {
				t.Fatalf("length %d, expected %d", len(got), len(tc.expected))
			}
			for i := range got {
				if math.IsNaN(got[i]) || !approxEqual(got[i], tc.expected[i]) {
					t.Errorf("Normalize(%v) = %v, expected %v", tc.input, got, tc.expected)
					break
				}
			}
		})
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	v := Vector{3, 4}
	v.Normalize()
	if v[0] != 3 || v[1] != 4 {
		t.Errorf("input modified: %v", v)
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine(Vector{1, 3}, Vector{2, 6}); !approxEqual(got, 1) {
		t.Errorf("parallel vectors: got %v, expected 1", got)
	}
	if got := Cosine(Vector{1, 0}, Vector{0, 1}); !approxEqual(got, 0) {
		t.Errorf("orthogonal vectors: got %v, expected 0", got)
	}
	if got := Cosine(Vector{0, 0}, Vector{1, 1}); got != 0 {
		t.Errorf("zero vector: got %v, expected 0", got)
	}
	if got := Cosine(Vector{1, 3}, Vector{5, 0}); !approxEqual(got, 1/math.Sqrt(10)) {
		t.Errorf("cat/fish: got %v, expected %v", got, 1/math.Sqrt(10))
	}
}
