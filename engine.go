package simplex

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"
)

// Solve runs the two-phase primal simplex on model. A nil env uses
// DefaultConfiguration. Infeasible and unbounded are reported through the
// status with a nil error.
func Solve(model Model, env Environment) (Status, error) {
	return SolveContext(context.Background(), model, env)
}

// SolveContext is Solve with cancellation checked between iterations.
func SolveContext(ctx context.Context, model Model, env Environment) (Status, error) {
	if model == nil {
		return StatusError, newError(NullArgument, "Solve", "nil model")
	}
	config := resolveConfiguration(env)
	if err := validateModel(model); err != nil {
		return StatusError, err
	}

	ext := config.Extension
	if ext == nil {
		ext = NoopExtension{}
	}
	if err := ext.Preprocess(model); err != nil {
		return StatusError, errors.Wrap(err, "preprocess")
	}

	sol := model.Solution()
	if sol != nil {
		*sol = Solution{}
	}

	c := newSolverContext(model, config)
	defer c.teardown()

	if config.Annotate > 1 {
		c.logger.Debug("solve started",
			slog.Int("vars", c.numVars),
			slog.Int("constraints", c.numConstrs),
			slog.Int("nonzeros", c.numNonzeros))
	}

	start := time.Now()
	status, err := c.solve(ctx)
	if err != nil {
		status = StatusError
	}

	if status == StatusOptimal || (c.phase == phaseTwo && isLimitStatus(status)) {
		if ferr := c.finish(); ferr != nil {
			status, err = StatusError, ferr
		}
	}

	if sol != nil {
		if status == StatusOptimal || (c.phase == phaseTwo && isLimitStatus(status)) {
			c.extract(model, status)
		} else {
			sol.Status = status
			sol.Iterations = c.iterations
		}
	}

	if config.Annotate > 0 && status != StatusOptimal {
		c.logger.Warn("solve ended without optimum",
			slog.String("status", status.String()),
			slog.Int("iterations", c.iterations),
			slog.Any("error", err))
	}
	if config.Annotate > 1 {
		c.logger.Debug("solve finished",
			slog.String("status", status.String()),
			slog.Float64("objective", c.objVal),
			slog.Int("iterations", c.iterations),
			slog.Int("refactorizations", c.refactorCount),
			slog.Duration("elapsed", time.Since(start)))
	}
	return status, err
}

func isLimitStatus(s Status) bool {
	return s == StatusIterationLimit || s == StatusTimeLimit || s == StatusInterrupted
}

func validateModel(model Model) error {
	n, m := model.NumVars(), model.NumConstrs()
	if n < 0 || m < 0 {
		return newError(InvalidArgument, "Solve", "negative dimensions: %d variables, %d constraints", n, m)
	}
	if len(model.Lower()) != n || len(model.Upper()) != n || len(model.Objective()) != n {
		return newError(InvalidArgument, "Solve", "bound and objective arrays must have %d entries", n)
	}
	for j, v := range model.Objective() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newError(InvalidArgument, "Solve", "objective coefficient %d is %v", j, v)
		}
	}

	a := model.Matrix()
	if a == nil {
		if m > 0 {
			return newError(NotSupported, "Solve", "%d constraints declared without a constraint matrix", m)
		}
		return nil
	}
	if err := a.Validate(); err != nil {
		return errors.Wrap(err, "constraint matrix")
	}
	if a.NumRows != m || a.NumCols != n {
		return newError(InvalidArgument, "Solve", "matrix is %dx%d, model is %dx%d", a.NumRows, a.NumCols, m, n)
	}
	return nil
}

func (c *solverContext) solve(ctx context.Context) (Status, error) {
	if j, ok := c.checkBounds(); !ok {
		c.strange("variable bounds cross", slog.Int("var", j))
		return StatusInfeasible, nil
	}
	if i, ok := c.checkRowActivity(); !ok {
		c.strange("row activity cannot reach rhs", slog.Int("row", i))
		return StatusInfeasible, nil
	}
	if i, k, ok := c.checkParallelRows(); !ok {
		c.strange("parallel rows contradict", slog.Int("row", i), slog.Int("other", k))
		return StatusInfeasible, nil
	}

	status, done, err := c.setup()
	if err != nil || done {
		return status, err
	}
	return c.run(ctx)
}

// setup places the initial point, chooses the auxiliary signs and roles, and
// factors the starting basis.
func (c *solverContext) setup() (Status, bool, error) {
	n, m := c.numVars, c.numConstrs
	c.phase = phaseSetup

	for j := 0; j < n; j++ {
		if c.matrix.ColPtr[j] != c.matrix.ColPtr[j+1] {
			continue
		}
		switch c.boundToBoundPivot(j) {
		case iterInfeasible:
			return StatusInfeasible, true, nil
		case iterUnbounded:
			c.pendingUnbounded = true
		}
	}

	if c.config.Perturb {
		c.applyPerturbation()
	}

	for j := 0; j < n; j++ {
		if c.boundFixed[j] {
			continue
		}
		switch {
		case !isInf(c.lb[j]):
			c.x[j] = c.lb[j]
			c.basis.varStatus[j] = AtLower
		case !isInf(c.ub[j]):
			c.x[j] = c.ub[j]
			c.basis.varStatus[j] = AtUpper
		default:
			c.x[j] = 0
			c.basis.varStatus[j] = AtLower
		}
	}

	activity := make([]float64, m)
	c.matrix.Multiply(c.x[:n], activity, false)

	needPhaseOne := false
	for i := 0; i < m; i++ {
		k := n + i
		residual := c.matrix.RHS[i] - activity[i]
		sense := c.matrix.Senses[i]

		diag := 1.0
		if residual < 0 {
			diag = -1
		}
		c.basis.diagCoeff[i] = diag
		c.basis.basicVars[i] = k
		c.basis.varStatus[k] = i
		c.x[k] = math.Abs(residual)
		c.lb[k] = 0
		c.ub[k] = math.Inf(1)

		// A slack or surplus whose sign fits the sense costs nothing.
		switch {
		case sense == SenseLE && diag > 0, sense == SenseGE && diag < 0:
			c.artificial[i] = false
		case sense != SenseEQ && residual == 0:
			c.artificial[i] = false
			if sense == SenseGE {
				c.basis.diagCoeff[i] = -1
			}
		default:
			c.artificial[i] = true
			needPhaseOne = true
		}
	}

	if err := c.refactor(); err != nil {
		return StatusError, true, err
	}

	c.iterations = 0
	c.pricer.Reset(c.numTotal)

	if needPhaseOne {
		c.phase = phaseOne
		for j := 0; j < n; j++ {
			c.cost[j] = 0
		}
		for i := 0; i < m; i++ {
			if c.artificial[i] {
				c.cost[n+i] = 1
			}
		}
		c.computeObjective()
		return StatusUnknown, false, nil
	}

	c.phase = phaseTwo
	c.computeObjective()
	if c.pendingUnbounded {
		return StatusUnbounded, true, nil
	}
	if j, ok := c.rayAnalysis(); ok {
		c.strange("unbounded ray", slog.Int("var", j))
		return StatusUnbounded, true, nil
	}
	return StatusUnknown, false, nil
}

// transition ends phase one: model costs come back, auxiliaries lose theirs,
// and artificials take the bounds of their row sense.
func (c *solverContext) transition() (Status, bool) {
	n := c.numVars
	for j := 0; j < n; j++ {
		if !c.boundFixed[j] {
			c.cost[j] = c.origCost[j]
		}
	}
	for i := 0; i < c.numConstrs; i++ {
		k := n + i
		c.cost[k] = 0
		if !c.artificial[i] {
			continue
		}
		if c.matrix.Senses[i] == SenseEQ {
			if c.basis.isBasic(k) {
				c.ub[k] = 0
			} else {
				c.fixToValuePivot(k, 0)
			}
			continue
		}
		// The row's own inequality now reads s <= 0 for this sign.
		c.lb[k] = math.Inf(-1)
		c.ub[k] = 0
		if !c.basis.isBasic(k) {
			c.x[k] = 0
			c.basis.varStatus[k] = AtUpper
		}
	}

	c.phase = phaseTwo
	c.pricer.Reset(c.numTotal)
	c.computeObjective()
	if c.config.Annotate > 1 {
		c.logger.Debug("phase one complete", slog.Int("iterations", c.iterations), slog.Float64("objective", c.objVal))
	}

	if c.pendingUnbounded {
		return StatusUnbounded, true
	}
	if j, ok := c.rayAnalysis(); ok {
		c.strange("unbounded ray", slog.Int("var", j))
		return StatusUnbounded, true
	}
	return StatusUnknown, false
}

// releaseArtificial hands an inequality artificial its row's own bound
// s <= 0 once it has reached zero, so phase one may carry the row past its
// rhs. Equality artificials keep [0, +Inf) until the transition.
func (c *solverContext) releaseArtificial(k int) {
	i := k - c.numVars
	if i < 0 || !c.artificial[i] || c.matrix.Senses[i] == SenseEQ {
		return
	}
	c.artificial[i] = false
	c.cost[k] = 0
	c.lb[k] = math.Inf(-1)
	c.ub[k] = 0
	if !c.basis.isBasic(k) {
		c.x[k] = 0
		c.basis.varStatus[k] = AtUpper
	}
}

// releaseSettledArtificials releases the basic inequality artificials that sit
// at zero. A phase-one optimum is only conclusive once none are left.
func (c *solverContext) releaseSettledArtificials() bool {
	released := false
	for i := 0; i < c.numConstrs; i++ {
		k := c.numVars + i
		if c.artificial[i] && c.matrix.Senses[i] != SenseEQ && c.basis.isBasic(k) && c.x[k] <= c.feasTol {
			c.releaseArtificial(k)
			released = true
		}
	}
	if released {
		c.computeObjective()
	}
	return released
}

func (c *solverContext) run(ctx context.Context) (Status, error) {
	for {
		if c.phase == phaseOne && c.phaseOneObjective() <= c.feasTol {
			if status, done := c.transition(); done {
				return status, nil
			}
			continue
		}

		if c.iterations >= c.iterLimit {
			c.strange("iteration limit reached", slog.Int("limit", c.iterLimit))
			return StatusIterationLimit, nil
		}
		if ctx.Err() != nil {
			return StatusInterrupted, nil
		}
		if !c.deadline.IsZero() && time.Now().After(c.deadline) {
			return StatusTimeLimit, nil
		}

		if err := c.maybeRefactor(); err != nil {
			return StatusError, err
		}

		wasBland := c.usingBland()
		result := c.iterate()
		if !wasBland && c.usingBland() {
			c.strange("degenerate pivots, switching to Bland's rule", slog.Int("iteration", c.iterations))
		}
		if c.config.Annotate > 1 {
			c.WriteStatus(result)
		}

		switch result {
		case iterOptimal:
			if c.phase == phaseOne {
				if c.phaseOneObjective() > c.feasTol {
					if c.releaseSettledArtificials() {
						continue
					}
					return StatusInfeasible, nil
				}
				continue
			}
			return StatusOptimal, nil
		case iterInfeasible:
			return StatusInfeasible, nil
		case iterUnbounded:
			if c.phase == phaseOne {
				return StatusError, newError(InvalidArgument, "run", "phase one unbounded at iteration %d", c.iterations)
			}
			return StatusUnbounded, nil
		}
		c.iterations++
	}
}

// maybeRefactor acts on a required refactorization at once and on a
// recommended one only after a basis change.
func (c *solverContext) maybeRefactor() error {
	need := c.tracker.EvaluateRefactor(c.iterations)
	if need == RefactorNone || (need == RefactorRecommended && !c.basisChanged) {
		return nil
	}
	if c.config.Annotate > 1 {
		c.logger.Debug("refactor", slog.String("need", need.String()), slog.Int("iteration", c.iterations), slog.Int("etas", c.etas.count()))
	}
	c.basisChanged = false
	return c.refactor()
}

// finish removes the perturbation and refines the final point.
func (c *solverContext) finish() error {
	if err := c.removePerturbation(); err != nil {
		return err
	}
	c.computeDuals()
	c.refine()
	return errors.Wrap(c.ext.Postsolve(c.x[:c.numVars]), "postsolve")
}

func (c *solverContext) strange(msg string, attrs ...any) {
	if c.config.Annotate > 0 {
		c.logger.Warn(msg, attrs...)
	}
}
