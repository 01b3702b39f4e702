package simplex

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// eta is one product-form update: the basis column at position pos was
// replaced by a column whose FTRAN image is alpha.
type eta struct {
	pos   int
	pivot float64
	idx   []int
	val   []float64
}

const etaEntryBytes = 16 // one int index plus one float64 value

type etaFile struct {
	etas   []eta
	memory int
}

func (f *etaFile) count() int { return len(f.etas) }

func (f *etaFile) reset() {
	f.etas = f.etas[:0]
	f.memory = 0
}

// push records the update for a pivot on position pos with FTRAN'd column alpha.
func (f *etaFile) push(pos int, alpha []float64) {
	e := eta{pos: pos, pivot: alpha[pos]}
	for p, v := range alpha {
		if p == pos || abs(v) < ZeroTolerance {
			continue
		}
		e.idx = append(e.idx, p)
		e.val = append(e.val, v)
	}
	f.etas = append(f.etas, e)
	f.memory += etaEntryBytes * (len(e.idx) + 1)
}

// ftran applies E_k⁻¹···E_1⁻¹ to x in place.
func (f *etaFile) ftran(x []float64) {
	for i := range f.etas {
		e := &f.etas[i]
		xr := x[e.pos] / e.pivot
		x[e.pos] = xr
		if xr == 0.0 {
			continue
		}
		for k, p := range e.idx {
			x[p] -= e.val[k] * xr
		}
	}
}

// btran applies E_1⁻ᵀ···E_k⁻ᵀ to y in place.
func (f *etaFile) btran(y []float64) {
	for i := len(f.etas) - 1; i >= 0; i-- {
		e := &f.etas[i]
		sum := y[e.pos]
		for k, p := range e.idx {
			sum -= e.val[k] * y[p]
		}
		y[e.pos] = sum / e.pivot
	}
}

type RefactorNeed int

const (
	RefactorNone RefactorNeed = iota
	RefactorRecommended
	RefactorRequired
)

func (n RefactorNeed) String() string {
	switch n {
	case RefactorRecommended:
		return "recommended"
	case RefactorRequired:
		return "required"
	}
	return "none"
}

// refactorTracker holds the counters that drive refactorization.
type refactorTracker struct {
	maxEtaCount      int
	maxEtaMemory     int
	refactorInterval int

	etaCount        int
	etaMemory       int
	lastRefactor    int // iteration of the last refactorization
	ftranTimes      []float64
	ftranBaseline   time.Duration
	baselineSamples int
}

// baselineWindow is how many FTRANs after a refactor form the timing baseline.
const baselineWindow = 3

func (t *refactorTracker) recordFtran(d time.Duration) {
	if t.baselineSamples < baselineWindow {
		t.ftranBaseline += d
		t.baselineSamples++
		if t.baselineSamples == baselineWindow {
			t.ftranBaseline /= baselineWindow
		}
		return
	}
	t.ftranTimes = append(t.ftranTimes, float64(d))
}

func (t *refactorTracker) refactored(iteration int) {
	t.etaCount = 0
	t.etaMemory = 0
	t.lastRefactor = iteration
	t.ftranTimes = t.ftranTimes[:0]
	t.ftranBaseline = 0
	t.baselineSamples = 0
}

// EvaluateRefactor combines the hard caps on the eta file with the soft
// iteration-interval and FTRAN-slowdown signals.
func (t *refactorTracker) EvaluateRefactor(iteration int) RefactorNeed {
	if t.etaCount > t.maxEtaCount || t.etaMemory > t.maxEtaMemory {
		return RefactorRequired
	}
	if iteration-t.lastRefactor > t.refactorInterval {
		return RefactorRecommended
	}
	if t.baselineSamples == baselineWindow && t.ftranBaseline > 0 && len(t.ftranTimes) > 0 {
		avg := floats.Sum(t.ftranTimes) / float64(len(t.ftranTimes))
		if avg > 3*float64(t.ftranBaseline) {
			return RefactorRecommended
		}
	}
	return RefactorNone
}
