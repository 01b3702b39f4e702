package simplex

import (
	"math"
)

// PricingState is the read-only view a Pricer gets of the working arrays.
type PricingState struct {
	D      []float64 // reduced costs
	X      []float64
	LB     []float64
	UB     []float64
	Status []int // basis position, AtLower or AtUpper
	Tol    float64
}

// Pricer chooses the entering variable.
type Pricer interface {
	Reset(numTotal int)
	// SelectEntering returns the entering variable and its direction (+1 up,
	// -1 down), or -1 when no eligible variable improves the objective.
	SelectEntering(s *PricingState) (j int, dir int)
	Pivoted(degenerate bool)
}

// dantzigPricer takes the largest reduced cost and falls back to Bland's
// rule (lowest eligible index) after a run of degenerate pivots.
type dantzigPricer struct {
	blandAfter int
	degenerate int
	bland      bool
}

func newDantzigPricer(blandAfter int) *dantzigPricer {
	return &dantzigPricer{blandAfter: blandAfter}
}

func (p *dantzigPricer) Reset(int) {
	p.degenerate = 0
	p.bland = false
}

func (p *dantzigPricer) Pivoted(degenerate bool) {
	if !degenerate {
		p.degenerate = 0
		p.bland = false
		return
	}
	p.degenerate++
	if p.degenerate >= p.blandAfter {
		p.bland = true
	}
}

func (p *dantzigPricer) usingBland() bool { return p.bland }

func (p *dantzigPricer) SelectEntering(s *PricingState) (int, int) {
	best, bestDir := -1, 0
	bestScore := 0.0
	for j, dj := range s.D {
		dir := eligibleDirection(s, j, dj)
		if dir == 0 {
			continue
		}
		if p.bland {
			return j, dir
		}
		if score := math.Abs(dj); score > bestScore {
			best, bestDir, bestScore = j, dir, score
		}
	}
	return best, bestDir
}

// eligibleDirection is the improving move of a nonbasic variable, or 0.
func eligibleDirection(s *PricingState, j int, dj float64) int {
	status := s.Status[j]
	if status >= 0 {
		return 0
	}
	lo, hi := s.LB[j], s.UB[j]
	if hi-lo <= 0 {
		return 0
	}
	free := isInf(lo) && isInf(hi)
	switch {
	case dj < -s.Tol && (free || status == AtLower) && s.X[j] < hi:
		return 1
	case dj > s.Tol && (free || status == AtUpper) && s.X[j] > lo:
		return -1
	}
	return 0
}

type ratioResult struct {
	theta   float64
	pos     int  // leaving basis position, -1 for a bound flip
	toUpper bool // leaving variable stops at its upper bound
	limited bool
}

// pivotTolerance is the smallest |alpha| a ratio-test row may pivot on.
const pivotTolerance = 1e-9

// ratioTest bounds the step of entering variable q moving in direction dir.
// It returns the tightest non-negative ratio over the basic rows and the
// entering variable's own span. Ties prefer the larger |alpha|, then the
// lower variable index; under Bland's rule only the lower index counts.
func (c *solverContext) ratioTest(q, dir int, alpha []float64, bland bool) ratioResult {
	res := ratioResult{theta: math.Inf(1), pos: -1}
	if !isInf(c.lb[q]) && !isInf(c.ub[q]) {
		res.theta = c.ub[q] - c.lb[q]
		res.limited = true
	}

	bestAlpha := 0.0
	bestVar := math.MaxInt
	for p, a := range alpha {
		if math.Abs(a) < pivotTolerance {
			continue
		}
		k := c.basis.basicVars[p]
		delta := -float64(dir) * a

		var ratio float64
		var toUpper bool
		if delta < 0 {
			if isInf(c.lb[k]) {
				continue
			}
			ratio = (c.x[k] - c.lb[k]) / -delta
		} else {
			if isInf(c.ub[k]) {
				continue
			}
			ratio = (c.ub[k] - c.x[k]) / delta
			toUpper = true
		}
		ratio = max(ratio, 0)

		better := false
		switch {
		case !res.limited || ratio < res.theta-ZeroTolerance:
			better = true
		case ratio <= res.theta+ZeroTolerance:
			if res.pos < 0 {
				better = true
			} else if bland {
				better = k < bestVar
			} else {
				better = math.Abs(a) > bestAlpha || (math.Abs(a) == bestAlpha && k < bestVar)
			}
		}
		if !better {
			continue
		}
		res.theta = ratio
		res.pos = p
		res.toUpper = toUpper
		res.limited = true
		bestAlpha = math.Abs(a)
		bestVar = k
	}
	return res
}
