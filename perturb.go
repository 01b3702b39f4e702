package simplex

import (
	"math"
)

const (
	perturbBase = 1e-6 // times the feasibility tolerance
	perturbCap  = 1e-3 // times the feasibility tolerance
)

// perturbHash derives two values in [0.5, 1) from a variable index with a
// multiplicative hash followed by the SplitMix64 finalizer.
func perturbHash(j int) (r1, r2 float64) {
	h := uint64(j+1) * 0x9E3779B97F4A7C15
	h1 := splitmix(h)
	h2 := splitmix(h1 ^ 0xD1B54A32D192ED03)
	const scale = 1.0 / (1 << 53)
	r1 = 0.5 + 0.5*float64(h1>>11)*scale
	r2 = 0.5 + 0.5*float64(h2>>11)*scale
	return r1, r2
}

func splitmix(z uint64) uint64 {
	z += 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// perturbScale shrinks with the objective coefficient's magnitude.
func perturbScale(cost, tol float64) float64 {
	return math.Min(perturbCap*tol, perturbBase*tol/math.Max(math.Abs(cost), 1e-3))
}

// applyPerturbation shrinks the bounds of every structural variable with a
// finite bound. It runs at most once per solve.
func (c *solverContext) applyPerturbation() {
	if c.perturbed {
		return
	}
	c.perturbed = true

	for j := 0; j < c.numVars; j++ {
		lo, hi := c.lb[j], c.ub[j]
		if c.boundFixed[j] || (isInf(lo) && isInf(hi)) {
			continue
		}
		scale := perturbScale(c.origCost[j], c.feasTol)
		r1, r2 := perturbHash(j)

		newLo, newHi := lo, hi
		if !isInf(lo) {
			newLo = lo + scale*r1
		}
		if !isInf(hi) {
			newHi = hi - scale*r2
		}
		if newLo > newHi {
			mid := lo + (hi-lo)/2
			half := 0.25 * (hi - lo)
			newLo, newHi = mid-half, mid+half
		}
		c.lb[j], c.ub[j] = newLo, newHi
	}
}

// removePerturbation restores the model bounds verbatim, re-seats nonbasic
// structurals on their exact bounds and recomputes the basic values.
func (c *solverContext) removePerturbation() error {
	if !c.perturbed {
		return nil
	}
	c.perturbed = false

	for j := 0; j < c.numVars; j++ {
		c.lb[j] = c.origLB[j]
		c.ub[j] = c.origUB[j]
		if c.boundFixed[j] || c.basis.isBasic(j) {
			continue
		}
		switch {
		case c.basis.varStatus[j] == AtLower && !isInf(c.lb[j]):
			c.x[j] = c.lb[j]
		case c.basis.varStatus[j] == AtUpper && !isInf(c.ub[j]):
			c.x[j] = c.ub[j]
		}
	}
	if c.numConstrs == 0 || c.lu == nil {
		return nil
	}
	return c.computeBasicValues()
}
