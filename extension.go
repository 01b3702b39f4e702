package simplex

// Extension hooks into a solve for features this core does not implement:
// preprocessing, quadratic reduced-cost terms and postsolve restoration.
type Extension interface {
	Preprocess(model Model) error
	AdjustReducedCosts(x, d []float64)
	Postsolve(x []float64) error
}

// NoopExtension leaves every stage unchanged.
type NoopExtension struct{}

func (NoopExtension) Preprocess(Model) error             { return nil }
func (NoopExtension) AdjustReducedCosts(_, _ []float64) {}
func (NoopExtension) Postsolve([]float64) error          { return nil }
