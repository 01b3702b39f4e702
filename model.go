package simplex

import (
	"log/slog"
	"math"
	"time"
)

const (
	// Floor below which a value is treated as zero in factorization and refinement.
	ZeroTolerance float64 = 1e-12

	DEFAULT_INFINITY          float64 = 1e30
	DEFAULT_FEASIBILITY_TOL   float64 = 1e-6
	DEFAULT_OPTIMALITY_TOL    float64 = 1e-6
	DEFAULT_PIVOT_THRESHOLD   float64 = 0.1
	DEFAULT_REFACTOR_INTERVAL int     = 100
	DEFAULT_MAX_ETA_COUNT     int     = 200
	DEFAULT_MAX_ETA_MEMORY    int     = 1 << 20
	DEFAULT_BLAND_AFTER       int     = 50
)

type Sense byte

const (
	SenseLE Sense = '<'
	SenseGE Sense = '>'
	SenseEQ Sense = '='
)

func (s Sense) valid() bool {
	return s == SenseLE || s == SenseGE || s == SenseEQ
}

// Status is the outcome of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusIterationLimit
	StatusTimeLimit
	StatusInterrupted
	StatusError
)

var statusNames = []string{
	"Unknown",
	"Optimal",
	"Infeasible",
	"Unbounded",
	"IterationLimit",
	"TimeLimit",
	"Interrupted",
	"Error",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Invalid"
	}
	return statusNames[s]
}

// Nonbasic markers stored in varStatus. A non-negative value is the basis row.
const (
	AtLower = -1
	AtUpper = -2
)

// Configuration is the solver environment. A nil *Configuration means
// DefaultConfiguration.
type Configuration struct {
	Infinity             float64
	FeasibilityTolerance float64
	OptimalityTolerance  float64
	IterationLimit       int           // 0: 100*(m+n)+1000
	TimeLimit            time.Duration // 0: none

	RefactorInterval int
	MaxEtaCount      int
	MaxEtaMemory     int // bytes
	PivotThreshold   float64
	TiesMultiplier   int // Markowitz ties inspected per unit of the best product before stopping
	BlandAfter       int // consecutive degenerate pivots before switching to Bland's rule
	Perturb          bool
	Extension        Extension // nil: NoopExtension

	PrinterWidth int // Default: 80
	Annotate     int // 0: None, 1: OnStrangeBehavior , 2: Full
	Logger       *slog.Logger
}

// Environment is what a solve reads from its configuration collaborator.
type Environment interface {
	InfinityBound() float64
	FeasibilityTol() float64
	OptimalityTol() float64
	MaxIterations() int
	TimeBudget() time.Duration
	RefactorEvery() int
	EtaCountCap() int
	EtaMemoryCap() int
	Log() *slog.Logger
}

// Model is what a solve reads from, and writes back to, the caller's problem.
type Model interface {
	NumVars() int
	NumConstrs() int
	Matrix() *SparseMatrix
	Lower() []float64
	Upper() []float64
	Objective() []float64
	Solution() *Solution
}

// Solution is the record a solve populates in the model.
type Solution struct {
	Status       Status
	X            []float64 // primal values, one per variable
	Pi           []float64 // dual values, one per constraint
	ReducedCosts []float64
	ObjVal       float64
	Iterations   int
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		Infinity:             DEFAULT_INFINITY,
		FeasibilityTolerance: DEFAULT_FEASIBILITY_TOL,
		OptimalityTolerance:  DEFAULT_OPTIMALITY_TOL,
		RefactorInterval:     DEFAULT_REFACTOR_INTERVAL,
		MaxEtaCount:          DEFAULT_MAX_ETA_COUNT,
		MaxEtaMemory:         DEFAULT_MAX_ETA_MEMORY,
		PivotThreshold:       DEFAULT_PIVOT_THRESHOLD,
		TiesMultiplier:       5,
		BlandAfter:           DEFAULT_BLAND_AFTER,
		Perturb:              true,
		PrinterWidth:         80,
		Annotate:             0,
	}
}

func (c *Configuration) InfinityBound() float64 {
	if c.Infinity <= 0 {
		return DEFAULT_INFINITY
	}
	return c.Infinity
}

func (c *Configuration) FeasibilityTol() float64 {
	if c.FeasibilityTolerance <= 0 {
		return DEFAULT_FEASIBILITY_TOL
	}
	return c.FeasibilityTolerance
}

func (c *Configuration) OptimalityTol() float64 {
	if c.OptimalityTolerance <= 0 {
		return DEFAULT_OPTIMALITY_TOL
	}
	return c.OptimalityTolerance
}

func (c *Configuration) MaxIterations() int        { return c.IterationLimit }
func (c *Configuration) TimeBudget() time.Duration { return c.TimeLimit }

func (c *Configuration) RefactorEvery() int {
	if c.RefactorInterval <= 0 {
		return DEFAULT_REFACTOR_INTERVAL
	}
	return c.RefactorInterval
}

func (c *Configuration) EtaCountCap() int {
	if c.MaxEtaCount <= 0 {
		return DEFAULT_MAX_ETA_COUNT
	}
	return c.MaxEtaCount
}

func (c *Configuration) EtaMemoryCap() int {
	if c.MaxEtaMemory <= 0 {
		return DEFAULT_MAX_ETA_MEMORY
	}
	return c.MaxEtaMemory
}

func (c *Configuration) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Configuration) pivotThreshold() float64 {
	if c.PivotThreshold <= 0 || c.PivotThreshold > 1 {
		return DEFAULT_PIVOT_THRESHOLD
	}
	return c.PivotThreshold
}

func (c *Configuration) blandAfter() int {
	if c.BlandAfter <= 0 {
		return DEFAULT_BLAND_AFTER
	}
	return c.BlandAfter
}

func isInf(v float64) bool {
	return math.IsInf(v, 0)
}
