package simplex

import (
	"math"
	"strconv"
	"strings"
)

// checkBounds reports a variable whose lower bound exceeds its upper bound.
func (c *solverContext) checkBounds() (int, bool) {
	for j := 0; j < c.numVars; j++ {
		if c.origLB[j] > c.origUB[j]+c.feasTol {
			return j, false
		}
	}
	return -1, true
}

// checkRowActivity compares each row's reachable activity range with its rhs.
func (c *solverContext) checkRowActivity() (int, bool) {
	a := c.matrix
	for i := 0; i < c.numConstrs; i++ {
		lo, hi := a.rowActivityRange(i, c.origLB, c.origUB)
		rhs := a.RHS[i]
		tol := c.feasTol * math.Max(1, math.Abs(rhs))
		switch a.Senses[i] {
		case SenseLE:
			if lo > rhs+tol {
				return i, false
			}
		case SenseGE:
			if hi < rhs-tol {
				return i, false
			}
		case SenseEQ:
			if lo > rhs+tol || hi < rhs-tol {
				return i, false
			}
		}
	}
	return -1, true
}

// rowInterval is the range of t when the row reads scale·t (sense) rhs.
func rowInterval(sense Sense, rhs, scale float64) (lo, hi float64) {
	b := rhs / scale
	if scale < 0 {
		switch sense {
		case SenseLE:
			sense = SenseGE
		case SenseGE:
			sense = SenseLE
		}
	}
	switch sense {
	case SenseLE:
		return math.Inf(-1), b
	case SenseGE:
		return b, math.Inf(1)
	}
	return b, b
}

// parallelTolerance bounds the relative mismatch of two proportional rows.
const parallelTolerance = 1e-9

// checkParallelRows finds two proportional rows whose feasible activity
// intervals do not intersect.
func (c *solverContext) checkParallelRows() (int, int, bool) {
	a := c.matrix
	if c.numConstrs < 2 {
		return -1, -1, true
	}
	a.BuildRowMajor()

	groups := make(map[string][]int)
	var key strings.Builder
	for i := 0; i < c.numConstrs; i++ {
		cols, _ := a.Row(i)
		if len(cols) == 0 {
			continue
		}
		key.Reset()
		for _, j := range cols {
			key.WriteString(strconv.Itoa(j))
			key.WriteByte(',')
		}
		groups[key.String()] = append(groups[key.String()], i)
	}

	for _, rows := range groups {
		for x := 0; x < len(rows); x++ {
			for y := x + 1; y < len(rows); y++ {
				i, k := rows[x], rows[y]
				ratio, ok := proportional(a, i, k)
				if !ok {
					continue
				}
				lo1, hi1 := rowInterval(a.Senses[i], a.RHS[i], 1)
				lo2, hi2 := rowInterval(a.Senses[k], a.RHS[k], ratio)
				lo, hi := math.Max(lo1, lo2), math.Min(hi1, hi2)
				if lo > hi+c.feasTol*math.Max(1, math.Abs(lo)) {
					return i, k, false
				}
			}
		}
	}
	return -1, -1, true
}

// proportional reports whether row k equals ratio times row i. Both rows have
// the same column pattern.
func proportional(a *SparseMatrix, i, k int) (float64, bool) {
	_, vi := a.Row(i)
	_, vk := a.Row(k)
	if vi[0] == 0 {
		return 0, false
	}
	ratio := vk[0] / vi[0]
	if ratio == 0 {
		return 0, false
	}
	for t := range vi {
		want := ratio * vi[t]
		if math.Abs(vk[t]-want) > parallelTolerance*math.Max(1, math.Abs(want)) {
			return 0, false
		}
	}
	return ratio, true
}

// rayAnalysis looks for a structural variable whose reduced cost favors an
// infinite bound and whose every row tolerates unlimited movement that way.
// It is only conclusive from a feasible point.
func (c *solverContext) rayAnalysis() (int, bool) {
	a := c.matrix
	for j := 0; j < c.numVars; j++ {
		if c.boundFixed[j] || c.basis.isBasic(j) {
			continue
		}
		cost := c.cost[j]
		var dir float64
		switch {
		case cost < -c.optTol && isInf(c.ub[j]):
			dir = 1
		case cost > c.optTol && isInf(c.lb[j]):
			dir = -1
		default:
			continue
		}

		free := true
		rows, vals := a.Column(j)
		for k, i := range rows {
			delta := dir * vals[k]
			if delta == 0 {
				continue
			}
			switch a.Senses[i] {
			case SenseLE:
				free = delta < 0
			case SenseGE:
				free = delta > 0
			default:
				free = false
			}
			if !free {
				break
			}
		}
		if free {
			return j, true
		}
	}
	return -1, false
}
