package clustermatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentroid_Initial(t *testing.T) {
	c := NewCentroid(3)
	assert.Equal(t, []float64{0, 0, 0}, c.Mean())
	assert.Zero(t, c.Count())
}

func TestCentroid_FinishAssign(t *testing.T) {
	c := NewCentroid(2)
	c.Assign([]float64{1, 2})
	c.Assign([]float64{3, 6})
	assert.Equal(t, 2, c.Count())

	assert.False(t, c.FinishAssign(), "mean moved from the origin")
	assert.Equal(t, []float64{2, 4}, c.Mean())
	assert.Zero(t, c.Count(), "accumulator reset")

	c.Assign([]float64{0, 0})
	c.Assign([]float64{4, 8})
	assert.True(t, c.FinishAssign(), "same mean again")
	assert.Equal(t, []float64{2, 4}, c.Mean())
}

func TestCentroid_FinishAssignEmpty(t *testing.T) {
	c := NewCentroidAt([]float64{1.5, -2})

	assert.NotPanics(t, func() {
		assert.True(t, c.FinishAssign())
		assert.True(t, c.FinishAssign())
	})
	assert.Equal(t, []float64{1.5, -2}, c.Mean())
	for _, v := range c.Mean() {
		assert.False(t, math.IsNaN(v))
	}

	fresh := NewCentroid(2)
	assert.True(t, fresh.FinishAssign())
	assert.Equal(t, []float64{0, 0}, fresh.Mean())
}

func TestCentroid_StabilityIsBitwise(t *testing.T) {
	c := NewCentroidAt([]float64{math.Copysign(0, -1)})
	c.Assign([]float64{0})
	// -0 == 0 numerically, but not bit-for-bit.
	assert.False(t, c.FinishAssign())
}

func TestCentroid_MeanIsExactQuotient(t *testing.T) {
	// 49 * (1.0/49) rounds to 0.9999999999999999; 49.0/49 is exactly 1.
	c := NewCentroidAt([]float64{1})
	for i := 0; i < 49; i++ {
		c.Assign([]float64{1})
	}
	assert.True(t, c.FinishAssign())
	assert.Equal(t, math.Float64bits(1), math.Float64bits(c.Mean()[0]))
}

func TestNewCentroidAt_Copies(t *testing.T) {
	p := []float64{1, 2}
	c := NewCentroidAt(p)
	p[0] = 99
	assert.Equal(t, []float64{1, 2}, c.Mean())
}
