package clustermatch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Centroid is the mean vector of a cluster plus the accumulator used to
// re-estimate it. Each round the owner calls Assign for every member and
// then FinishAssign.
type Centroid struct {
	mean  []float64
	sum   []float64
	count int
}

// NewCentroid returns a centroid with a zeroed mean and accumulator.
func NewCentroid(dims int) *Centroid {
	return &Centroid{mean: make([]float64, dims), sum: make([]float64, dims)}
}

// NewCentroidAt returns a centroid whose mean starts at point.
func NewCentroidAt(point []float64) *Centroid {
	c := NewCentroid(len(point))
	copy(c.mean, point)
	return c
}

// Assign adds point to the running sum.
func (c *Centroid) Assign(point []float64) {
	floats.Add(c.sum, point)
	c.count++
}

// FinishAssign replaces the mean with sum/count, resets the accumulator,
// and reports whether every dimension of the new mean is bit-for-bit equal
// to the old one.
//
// With nothing assigned the mean is left untouched and the centroid
// reports stable.
func (c *Centroid) FinishAssign() bool {
	if c.count == 0 {
		return true
	}

	n := float64(c.count)
	for i := range c.sum {
		c.sum[i] /= n
	}
	stable := true
	for i, v := range c.sum {
		if math.Float64bits(v) != math.Float64bits(c.mean[i]) {
			stable = false
			break
		}
	}

	c.mean, c.sum = c.sum, c.mean
	for i := range c.sum {
		c.sum[i] = 0
	}
	c.count = 0
	return stable
}

// Mean returns the current mean. The slice must not be modified.
func (c *Centroid) Mean() []float64 { return c.mean }

// Count returns the number of points assigned since the last FinishAssign.
func (c *Centroid) Count() int { return c.count }
