package clustermatch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures dissimilarity between two feature vectors of
// equal length.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// CosineMetric computes 1 - cosine similarity. Zero vectors are at
// distance 1 from everything.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1.0
	}
	return 1.0 - floats.Dot(a, b)/(na*nb)
}

// ComputePairwiseDistances computes the full n*n distance matrix.
// data is flat row-major with n rows and dims columns.
// Returns flat []float64 of length n*n.
func ComputePairwiseDistances(data []float64, n, dims int, metric DistanceMetric) []float64 {
	result := make([]float64, n*n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}

	return result
}

// flatten copies rows into one row-major slice and checks that every row
// has the same length.
func flatten(data [][]float64) ([]float64, int, error) {
	if len(data) == 0 {
		return nil, 0, nil
	}
	dims := len(data[0])
	flat := make([]float64, len(data)*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, 0, invalidConfig("row %d has %d features, want %d", i, len(row), dims)
		}
		copy(flat[i*dims:], row)
	}
	return flat, dims, nil
}
