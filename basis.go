package simplex

import (
	"time"

	"github.com/pkg/errors"
)

// basisState maps basis positions (one per row) to variables. Variables
// 0..n-1 are structural; n+i is the auxiliary of row i with coefficient diagCoeff[i].
type basisState struct {
	basicVars []int
	varStatus []int
	diagCoeff []float64
}

func newBasisState(numVars, numConstrs int) basisState {
	return basisState{
		basicVars: make([]int, numConstrs),
		varStatus: make([]int, numVars+numConstrs),
		diagCoeff: make([]float64, numConstrs),
	}
}

func (b *basisState) isBasic(j int) bool {
	return b.varStatus[j] >= 0
}

// column returns the constraint column of variable j.
func (c *solverContext) column(j int) ([]int, []float64) {
	if j < c.numVars {
		return c.matrix.Column(j)
	}
	i := j - c.numVars
	c.unitRow[0] = i
	c.unitVal[0] = c.basis.diagCoeff[i]
	return c.unitRow[:], c.unitVal[:]
}

// refactor rebuilds the LU factors of the current basis and drops the eta file.
func (c *solverContext) refactor() error {
	lu, err := Factorize(c.numConstrs, func(p int) ([]int, []float64) {
		return c.column(c.basis.basicVars[p])
	}, c.config)
	if err != nil {
		return errors.Wrapf(err, "refactor at iteration %d", c.iterations)
	}
	c.lu = lu
	c.etas.reset()
	c.tracker.refactored(c.iterations)
	c.refactorCount++
	return c.computeBasicValues()
}

// ftran returns B⁻¹·a for a row-indexed a; the result is indexed by basis position.
func (c *solverContext) ftran(a []float64) []float64 {
	start := time.Now()
	x := make([]float64, c.numConstrs)
	c.lu.solve(a, x, c.work)
	c.etas.ftran(x)
	c.tracker.recordFtran(time.Since(start))
	return x
}

// btran returns B⁻ᵀ·cb for a position-indexed cb; the result is indexed by row.
func (c *solverContext) btran(cb []float64) []float64 {
	y := make([]float64, c.numConstrs)
	copy(y, cb)
	c.etas.btran(y)
	out := make([]float64, c.numConstrs)
	c.lu.solveTransposed(y, out, c.work)
	return out
}

// ftranColumn expands variable j's column and returns B⁻¹·A_j.
func (c *solverContext) ftranColumn(j int) []float64 {
	dense := growFloats(c.colBuf, c.numConstrs)
	rows, vals := c.column(j)
	for k, r := range rows {
		dense[r] = vals[k]
	}
	c.colBuf = dense
	return c.ftran(dense)
}

// computeBasicValues solves B·x_B = b - N·x_N.
func (c *solverContext) computeBasicValues() error {
	m := c.numConstrs
	if m == 0 {
		return nil
	}
	r := make([]float64, m)
	copy(r, c.matrix.RHS)
	for j := 0; j < c.numTotal; j++ {
		if c.basis.isBasic(j) || c.x[j] == 0 {
			continue
		}
		rows, vals := c.column(j)
		for k, i := range rows {
			r[i] -= vals[k] * c.x[j]
		}
	}
	xb := c.ftran(r)
	for p, j := range c.basis.basicVars {
		c.x[j] = xb[p]
	}
	return nil
}

// pivotBasis replaces the variable basic at position pos by entering, whose FTRAN image is alpha.
func (c *solverContext) pivotBasis(pos, entering int, alpha []float64) {
	leaving := c.basis.basicVars[pos]
	c.basis.basicVars[pos] = entering
	c.basis.varStatus[entering] = pos
	c.basis.varStatus[leaving] = c.statusByProximity(leaving)

	c.etas.push(pos, alpha)
	c.tracker.etaCount = c.etas.count()
	c.tracker.etaMemory = c.etas.memory
}
