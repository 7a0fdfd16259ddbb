// Package similarity ranks corpus words by the cosine similarity of their
// per-year occurrence vectors.
//
// Every word is turned into a dense vector over the dataset's year axis
// (one slot per year recorded anywhere in the corpus, zero where the word has
// no count), scaled to unit length, and compared by dot product. Two words
// whose usage rises and falls in the same years score close to 1 regardless
// of how common either word is.
//
//	ds := corpus.New(map[corpus.Word]corpus.YearCounts{
//		"cat":  {2000: 1, 2001: 3},
//		"dog":  {2000: 2, 2001: 6},
//		"fish": {2000: 5, 2001: 0},
//	})
//	similarity.TopSimilar(ds, "cat") // [cat dog fish]
package similarity

import (
	"math"

	"github.com/bastiangx/wordsim/pkg/corpus"
)

// Vector is a dense occurrence vector over a year axis.
type Vector []float64

// NewVector lays counts out over axis. Years missing from counts become 0.
func NewVector(counts corpus.YearCounts, axis []int) Vector {
	vec := make(Vector, len(axis))
	for i, year := range axis {
		vec[i] = float64(counts.Get(year))
	}
	return vec
}

// Magnitude returns the Euclidean norm.
func (v Vector) Magnitude() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	magnitude := v.Magnitude()
	if magnitude == 0 {
		return out
	}
	for i := range out {
		out[i] /= magnitude
	}
	return out
}

// Dot returns the dot product over the shorter of the two vectors.
func Dot(a, b Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	return dot
}

// Cosine returns the cosine similarity of two vectors, 0 when either is all zeros.
func Cosine(a, b Vector) float64 {
	return Dot(a.Normalize(), b.Normalize())
}
