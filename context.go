package simplex

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	phaseSetup = 0
	phaseOne   = 1
	phaseTwo   = 2
)

// solverContext owns every working array of one solve.
type solverContext struct {
	numVars     int
	numConstrs  int
	numNonzeros int
	numTotal    int

	phase      int
	iterations int
	iterLimit  int
	deadline   time.Time

	infinity float64
	feasTol  float64
	optTol   float64

	objVal   float64
	objConst float64

	// Working arrays over structural and auxiliary variables.
	lb   []float64
	ub   []float64
	cost []float64
	x    []float64
	d    []float64
	pi   []float64

	// Model values after infinity normalization.
	origLB   []float64
	origUB   []float64
	origCost []float64

	artificial []bool // per row
	boundFixed []bool // structural moved by a bound-to-bound pivot

	matrix  *SparseMatrix
	basis   basisState
	lu      *LUFactors
	etas    etaFile
	tracker refactorTracker
	pricer  Pricer
	ext     Extension

	perturbed        bool
	pendingUnbounded bool
	basisChanged     bool
	lastEntering     int
	lastLeaving      int
	lastTheta        float64
	refactorCount    int

	unitRow [1]int
	unitVal [1]float64
	work    []float64
	colBuf  []float64

	config *Configuration
	logger *slog.Logger
}

// resolveConfiguration turns any Environment into a full Configuration.
func resolveConfiguration(env Environment) *Configuration {
	if env == nil {
		return DefaultConfiguration()
	}
	if c, ok := env.(*Configuration); ok && c != nil {
		return c
	}
	c := DefaultConfiguration()
	c.Infinity = env.InfinityBound()
	c.FeasibilityTolerance = env.FeasibilityTol()
	c.OptimalityTolerance = env.OptimalityTol()
	c.IterationLimit = env.MaxIterations()
	c.TimeLimit = env.TimeBudget()
	c.RefactorInterval = env.RefactorEvery()
	c.MaxEtaCount = env.EtaCountCap()
	c.MaxEtaMemory = env.EtaMemoryCap()
	c.Logger = env.Log()
	return c
}

// normalizeBound maps values beyond the infinity sentinel to ±Inf.
func normalizeBound(v, infinity float64) float64 {
	switch {
	case v >= infinity:
		return math.Inf(1)
	case v <= -infinity:
		return math.Inf(-1)
	}
	return v
}

func newSolverContext(model Model, config *Configuration) *solverContext {
	n, m := model.NumVars(), model.NumConstrs()
	total := n + m

	matrix := model.Matrix()
	if matrix == nil {
		matrix = &SparseMatrix{ColPtr: make([]int, n+1), NumCols: n}
	}

	c := &solverContext{
		numVars:     n,
		numConstrs:  m,
		numNonzeros: matrix.NNZ(),
		numTotal:    total,
		phase:       phaseSetup,
		infinity:    config.InfinityBound(),
		feasTol:     config.FeasibilityTol(),
		optTol:      config.OptimalityTol(),
		lb:          make([]float64, total),
		ub:          make([]float64, total),
		cost:        make([]float64, total),
		x:           make([]float64, total),
		d:           make([]float64, total),
		pi:          make([]float64, m),
		origLB:      make([]float64, n),
		origUB:      make([]float64, n),
		origCost:    make([]float64, n),
		artificial:  make([]bool, m),
		boundFixed:  make([]bool, n),
		matrix:      matrix,
		basis:       newBasisState(n, m),
		work:        make([]float64, m),
		config:      config,
		logger:      config.Log().With(slog.String("component", "simplex")),
		pricer:      newDantzigPricer(config.blandAfter()),
		ext:         config.Extension,
		tracker: refactorTracker{
			maxEtaCount:      config.EtaCountCap(),
			maxEtaMemory:     config.EtaMemoryCap(),
			refactorInterval: config.RefactorEvery(),
		},
	}
	if c.ext == nil {
		c.ext = NoopExtension{}
	}

	c.iterLimit = config.MaxIterations()
	if c.iterLimit <= 0 {
		c.iterLimit = 100*total + 1000
	}
	if config.TimeBudget() > 0 {
		c.deadline = time.Now().Add(config.TimeBudget())
	}

	lower, upper, obj := model.Lower(), model.Upper(), model.Objective()
	for j := 0; j < n; j++ {
		c.origLB[j] = normalizeBound(lower[j], c.infinity)
		c.origUB[j] = normalizeBound(upper[j], c.infinity)
		c.origCost[j] = obj[j]
	}
	copy(c.lb, c.origLB)
	copy(c.ub, c.origUB)
	copy(c.cost, c.origCost)
	return c
}

// teardown releases the working state once the solution has been extracted.
func (c *solverContext) teardown() {
	c.lu = nil
	c.etas.reset()
	c.lb, c.ub, c.cost, c.x, c.d, c.pi = nil, nil, nil, nil, nil, nil
	c.work, c.colBuf = nil, nil
}

func (c *solverContext) statusByProximity(j int) int {
	lo, hi, v := c.lb[j], c.ub[j], c.x[j]
	switch {
	case isInf(lo) && isInf(hi):
		return AtLower
	case isInf(lo):
		return AtUpper
	case isInf(hi):
		return AtLower
	}
	if math.Abs(v-lo) <= math.Abs(hi-v) {
		return AtLower
	}
	return AtUpper
}

func (c *solverContext) computeObjective() {
	c.objVal = floats.Dot(c.cost, c.x) + c.objConst
}

func (c *solverContext) phaseOneObjective() float64 {
	sum := 0.0
	for i, art := range c.artificial {
		if art {
			sum += c.x[c.numVars+i]
		}
	}
	return sum
}
