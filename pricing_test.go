package simplex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDantzigPricer(t *testing.T) {
	inf := math.Inf(1)
	s := &PricingState{
		D:      []float64{-1, 0, 3, -2, -5, 0.5},
		X:      []float64{0, 0, 4, 0, 0, 0},
		LB:     []float64{0, 0, 0, 0, 0, math.Inf(-1)},
		UB:     []float64{inf, inf, 4, inf, inf, inf},
		Status: []int{AtLower, AtLower, AtUpper, AtLower, 0, AtLower},
		Tol:    1e-6,
	}

	p := newDantzigPricer(3)
	j, dir := p.SelectEntering(s)
	assert.Equal(t, 2, j, "largest eligible |d|; the basic variable is skipped")
	assert.Equal(t, -1, dir)

	p.Pivoted(true)
	p.Pivoted(true)
	assert.False(t, p.usingBland())
	p.Pivoted(true)
	require.True(t, p.usingBland())

	j, dir = p.SelectEntering(s)
	assert.Equal(t, 0, j, "Bland's rule takes the lowest eligible index")
	assert.Equal(t, 1, dir)

	p.Pivoted(false)
	assert.False(t, p.usingBland())

	p.Pivoted(true)
	p.Pivoted(true)
	p.Pivoted(true)
	p.Reset(6)
	assert.False(t, p.usingBland())

	optimal := &PricingState{
		D:      []float64{1, -1},
		X:      []float64{0, 2},
		LB:     []float64{0, 0},
		UB:     []float64{inf, 2},
		Status: []int{AtLower, AtUpper},
		Tol:    1e-6,
	}
	j, _ = p.SelectEntering(optimal)
	assert.Equal(t, -1, j)
}

func TestEligibleDirection(t *testing.T) {
	inf := math.Inf(1)
	s := &PricingState{
		X:      []float64{0, 0, 3, 1},
		LB:     []float64{math.Inf(-1), 1, 3, 1},
		UB:     []float64{inf, 1, 5, 4},
		Status: []int{AtLower, AtLower, AtLower, AtUpper},
		Tol:    1e-6,
	}
	assert.Equal(t, 1, eligibleDirection(s, 0, -1), "free variable moves up")
	assert.Equal(t, -1, eligibleDirection(s, 0, 1), "free variable moves down")
	assert.Equal(t, 0, eligibleDirection(s, 1, -1), "fixed variable never enters")
	assert.Equal(t, 0, eligibleDirection(s, 2, 1), "at lower with positive d")
	assert.Equal(t, 0, eligibleDirection(s, 2, -1e-7), "within tolerance")
	assert.Equal(t, 1, eligibleDirection(s, 2, -1))
}

func ratioContext(x, lb, ub []float64, basic []int) *solverContext {
	c := &solverContext{x: x, lb: lb, ub: ub, basis: newBasisState(len(x)-len(basic), len(basic))}
	for j := range c.basis.varStatus {
		c.basis.varStatus[j] = AtLower
	}
	for p, j := range basic {
		c.basis.basicVars[p] = j
		c.basis.varStatus[j] = p
	}
	return c
}

func TestRatioTest(t *testing.T) {
	inf := math.Inf(1)

	t.Run("row limits", func(t *testing.T) {
		c := ratioContext([]float64{0, 4, 6}, []float64{0, 0, 0}, []float64{inf, inf, inf}, []int{1, 2})
		res := c.ratioTest(0, 1, []float64{1, 3}, false)
		require.True(t, res.limited)
		assert.Equal(t, 1, res.pos)
		assert.Equal(t, 2.0, res.theta)
		assert.False(t, res.toUpper)
	})

	t.Run("bound flip", func(t *testing.T) {
		c := ratioContext([]float64{0, 4, 6}, []float64{0, 0, 0}, []float64{1, inf, inf}, []int{1, 2})
		res := c.ratioTest(0, 1, []float64{1, 3}, false)
		require.True(t, res.limited)
		assert.Equal(t, -1, res.pos)
		assert.Equal(t, 1.0, res.theta)
	})

	t.Run("pivot replaces tied flip", func(t *testing.T) {
		c := ratioContext([]float64{0, 4, 6}, []float64{0, 0, 0}, []float64{2, inf, inf}, []int{1, 2})
		res := c.ratioTest(0, 1, []float64{1, 3}, false)
		assert.Equal(t, 1, res.pos)
		assert.Equal(t, 2.0, res.theta)
	})

	t.Run("tie prefers larger alpha", func(t *testing.T) {
		c := ratioContext([]float64{0, 2, 6}, []float64{0, 0, 0}, []float64{inf, inf, inf}, []int{1, 2})
		res := c.ratioTest(0, 1, []float64{1, 3}, false)
		assert.Equal(t, 1, res.pos)

		res = c.ratioTest(0, 1, []float64{1, 3}, true)
		assert.Equal(t, 0, res.pos, "Bland's rule prefers the lower variable index")
	})

	t.Run("upper bound stop", func(t *testing.T) {
		c := ratioContext([]float64{0, 1}, []float64{0, 0}, []float64{inf, 3}, []int{1})
		res := c.ratioTest(0, 1, []float64{-2}, false)
		assert.Equal(t, 0, res.pos)
		assert.Equal(t, 1.0, res.theta)
		assert.True(t, res.toUpper)
	})

	t.Run("unbounded", func(t *testing.T) {
		c := ratioContext([]float64{0, 1}, []float64{0, 0}, []float64{inf, inf}, []int{1})
		res := c.ratioTest(0, 1, []float64{-2}, false)
		assert.False(t, res.limited)

		res = c.ratioTest(0, 1, []float64{1e-10}, false)
		assert.False(t, res.limited, "tiny pivots are ignored")
	})

	t.Run("infeasible basic clamps to zero", func(t *testing.T) {
		c := ratioContext([]float64{0, -1e-9}, []float64{0, 0}, []float64{inf, inf}, []int{1})
		res := c.ratioTest(0, 1, []float64{1}, false)
		assert.Equal(t, 0.0, res.theta)
	})
}
