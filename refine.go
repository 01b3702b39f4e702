package simplex

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// refine snaps primal values onto nearby bounds, clears values under the
// zero floor and recomputes the objective with the model coefficients.
func (c *solverContext) refine() {
	for j := 0; j < c.numTotal; j++ {
		v := c.x[j]
		lo, hi := c.lb[j], c.ub[j]
		switch {
		case !isInf(lo) && math.Abs(v-lo) <= c.feasTol:
			v = lo
		case !isInf(hi) && math.Abs(v-hi) <= c.feasTol:
			v = hi
		}
		c.x[j] = clean(v)
		c.d[j] = clean(c.d[j])
	}
	for i := range c.pi {
		c.pi[i] = clean(c.pi[i])
	}
	c.objVal = floats.Dot(c.origCost, c.x[:c.numVars])
}

// extract copies the refined solution into the model's record. A record that
// already holds an infeasible, unbounded or error verdict is left alone.
func (c *solverContext) extract(model Model, status Status) {
	sol := model.Solution()
	if sol == nil {
		return
	}
	switch sol.Status {
	case StatusInfeasible, StatusUnbounded, StatusError:
		return
	}

	n, m := c.numVars, c.numConstrs
	if len(sol.X) != n {
		sol.X = make([]float64, n)
	}
	if len(sol.Pi) != m {
		sol.Pi = make([]float64, m)
	}
	if len(sol.ReducedCosts) != n {
		sol.ReducedCosts = make([]float64, n)
	}
	copy(sol.X, c.x[:n])
	copy(sol.Pi, c.pi)
	for j := 0; j < n; j++ {
		if c.basis.isBasic(j) {
			sol.ReducedCosts[j] = 0
			continue
		}
		// Reduced costs against the model objective, for bound-to-bound moves too.
		sol.ReducedCosts[j] = clean(c.origCost[j] - (c.cost[j] - c.d[j]))
	}
	sol.ObjVal = c.objVal
	sol.Iterations = c.iterations
	sol.Status = status
}
