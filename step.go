package simplex

import (
	"math"
)

type iterResult int

const (
	iterContinue iterResult = iota
	iterOptimal
	iterInfeasible
	iterUnbounded
)

func (r iterResult) String() string {
	switch r {
	case iterOptimal:
		return "optimal"
	case iterInfeasible:
		return "infeasible"
	case iterUnbounded:
		return "unbounded"
	}
	return "continue"
}

// favoredValue is where a variable with objective coefficient cost and bounds
// [lb,ub] wants to sit when nothing else constrains it. unbounded reports that
// the favored bound is infinite.
func favoredValue(cost, lb, ub, tol float64) (value float64, unbounded bool) {
	span := ub - lb
	negligible := math.Abs(cost) <= tol
	if !isInf(span) {
		negligible = math.Abs(cost)*math.Max(span, 1) <= tol
	}

	if negligible {
		switch {
		case !isInf(lb) && !isInf(ub):
			if lb >= 0 || ub <= 0 {
				return lb + span/2, false
			}
			return 0, false
		case !isInf(lb):
			return lb, false
		case !isInf(ub):
			return ub, false
		}
		return 0, false
	}

	if cost < 0 {
		if isInf(ub) {
			return ub, true
		}
		return ub, false
	}
	if isInf(lb) {
		return lb, true
	}
	return lb, false
}

// boundToBoundPivot moves nonbasic variable j to its favored bound without a
// basis change, folds its objective contribution into the constant and zeroes
// its coefficient.
func (c *solverContext) boundToBoundPivot(j int) iterResult {
	lo, hi := c.lb[j], c.ub[j]
	if lo-hi > 2*c.feasTol {
		return iterInfeasible
	}

	var value float64
	if hi-lo <= 2*c.feasTol {
		value = lo
	} else {
		v, unbounded := favoredValue(c.cost[j], lo, hi, c.optTol)
		if unbounded {
			return iterUnbounded
		}
		value = v
	}

	c.x[j] = value
	c.objConst += c.cost[j] * value
	c.cost[j] = 0
	c.basis.varStatus[j] = c.statusByProximity(j)
	if j < c.numVars {
		c.boundFixed[j] = true
	}
	return iterContinue
}

// fixToValuePivot pins both bounds of nonbasic variable j to value.
func (c *solverContext) fixToValuePivot(j int, value float64) {
	c.lb[j] = value
	c.ub[j] = value
	c.x[j] = value
	if !c.basis.isBasic(j) {
		c.basis.varStatus[j] = AtLower
	}
}

// computeDuals solves Bᵀπ = c_B and sets the reduced costs d = c - Aᵀπ.
func (c *solverContext) computeDuals() {
	m, n := c.numConstrs, c.numVars
	if m > 0 {
		cb := make([]float64, m)
		for p, j := range c.basis.basicVars {
			cb[p] = c.cost[j]
		}
		copy(c.pi, c.btran(cb))
	}

	c.matrix.TransposeMultiply(c.pi, c.d[:n])
	for j := 0; j < n; j++ {
		c.d[j] = c.cost[j] - c.d[j]
	}
	for i := 0; i < m; i++ {
		c.d[n+i] = c.cost[n+i] - c.pi[i]*c.basis.diagCoeff[i]
	}
	for _, j := range c.basis.basicVars {
		c.d[j] = 0
	}
}

func (c *solverContext) pricingState() *PricingState {
	return &PricingState{
		D:      c.d,
		X:      c.x,
		LB:     c.lb,
		UB:     c.ub,
		Status: c.basis.varStatus,
		Tol:    c.optTol,
	}
}

// usingBland reports whether the pricer has fallen back to Bland's rule.
func (c *solverContext) usingBland() bool {
	p, ok := c.pricer.(interface{ usingBland() bool })
	return ok && p.usingBland()
}

// iterate runs one pricing, ratio test and pivot.
func (c *solverContext) iterate() iterResult {
	c.computeDuals()
	c.ext.AdjustReducedCosts(c.x, c.d)

	q, dir := c.pricer.SelectEntering(c.pricingState())
	if q < 0 {
		return iterOptimal
	}

	alpha := c.ftranColumn(q)
	ratio := c.ratioTest(q, dir, alpha, c.usingBland())
	if !ratio.limited {
		c.lastEntering, c.lastLeaving = q, -1
		return iterUnbounded
	}

	theta := ratio.theta
	step := float64(dir) * theta
	if theta != 0 {
		c.x[q] += step
		for p, a := range alpha {
			if a != 0 {
				c.x[c.basis.basicVars[p]] -= a * step
			}
		}
	}

	c.lastEntering, c.lastTheta = q, theta
	if ratio.pos < 0 {
		// Bound flip: the entering variable crosses to its other bound.
		if dir > 0 {
			c.x[q] = c.ub[q]
			c.basis.varStatus[q] = AtUpper
		} else {
			c.x[q] = c.lb[q]
			c.basis.varStatus[q] = AtLower
		}
		c.lastLeaving = q
	} else {
		leaving := c.basis.basicVars[ratio.pos]
		if ratio.toUpper {
			c.x[leaving] = c.ub[leaving]
		} else {
			c.x[leaving] = c.lb[leaving]
		}
		c.pivotBasis(ratio.pos, q, alpha)
		if ratio.toUpper {
			c.basis.varStatus[leaving] = AtUpper
		} else {
			c.basis.varStatus[leaving] = AtLower
		}
		c.lastLeaving = leaving
		c.basisChanged = true
		if c.phase == phaseOne {
			c.releaseArtificial(leaving)
		}
	}

	c.pricer.Pivoted(theta < ZeroTolerance)
	c.computeObjective()
	return iterContinue
}
