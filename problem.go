package simplex

import (
	"math"
)

// Problem is an in-memory Model built row by row. Variables default to
// [0, +Inf) with a zero objective coefficient.
type Problem struct {
	Name string

	numVars int
	lower   []float64
	upper   []float64
	obj     []float64

	entries []Nonzero
	rhs     []float64
	senses  []Sense

	matrix   *SparseMatrix
	solution Solution
}

func NewProblem(numVars int) (*Problem, error) {
	if numVars < 0 {
		return nil, newError(InvalidArgument, "NewProblem", "negative variable count %d", numVars)
	}
	p := &Problem{
		numVars: numVars,
		lower:   make([]float64, numVars),
		upper:   make([]float64, numVars),
		obj:     make([]float64, numVars),
	}
	for j := range p.upper {
		p.upper[j] = math.Inf(1)
	}
	return p, nil
}

// AddConstraint appends the row Σ vals[k]·x[cols[k]] (sense) rhs and returns its index.
func (p *Problem) AddConstraint(cols []int, vals []float64, sense Sense, rhs float64) (int, error) {
	if len(cols) != len(vals) {
		return -1, newError(InvalidArgument, "AddConstraint", "%d columns for %d values", len(cols), len(vals))
	}
	if !sense.valid() {
		return -1, newError(InvalidArgument, "AddConstraint", "unknown sense %q", byte(sense))
	}
	if math.IsNaN(rhs) {
		return -1, newError(InvalidArgument, "AddConstraint", "rhs is NaN")
	}
	row := len(p.rhs)
	for k, j := range cols {
		if j < 0 || j >= p.numVars {
			return -1, newError(InvalidArgument, "AddConstraint", "column %d outside [0,%d)", j, p.numVars)
		}
		if vals[k] == 0 {
			continue
		}
		p.entries = append(p.entries, Nonzero{Row: row, Col: j, Val: vals[k]})
	}
	p.rhs = append(p.rhs, rhs)
	p.senses = append(p.senses, sense)
	p.matrix = nil
	return row, nil
}

// AddNonzeros appends entries to existing rows.
func (p *Problem) AddNonzeros(entries ...Nonzero) error {
	for _, e := range entries {
		if e.Row < 0 || e.Row >= len(p.rhs) || e.Col < 0 || e.Col >= p.numVars {
			return newError(InvalidArgument, "AddNonzeros", "entry (%d,%d) outside %dx%d", e.Row, e.Col, len(p.rhs), p.numVars)
		}
	}
	p.entries = append(p.entries, entries...)
	p.matrix = nil
	return nil
}

func (p *Problem) SetBounds(j int, lower, upper float64) error {
	if j < 0 || j >= p.numVars {
		return newError(InvalidArgument, "SetBounds", "variable %d outside [0,%d)", j, p.numVars)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return newError(InvalidArgument, "SetBounds", "NaN bound on variable %d", j)
	}
	p.lower[j] = lower
	p.upper[j] = upper
	return nil
}

func (p *Problem) SetObjective(j int, cost float64) error {
	if j < 0 || j >= p.numVars {
		return newError(InvalidArgument, "SetObjective", "variable %d outside [0,%d)", j, p.numVars)
	}
	p.obj[j] = cost
	return nil
}

func (p *Problem) NumVars() int    { return p.numVars }
func (p *Problem) NumConstrs() int { return len(p.rhs) }

// Matrix assembles the constraint matrix on first use after a change. It
// returns nil when the entries do not form a valid matrix.
func (p *Problem) Matrix() *SparseMatrix {
	if p.matrix == nil {
		a, err := p.Build()
		if err != nil {
			return nil
		}
		p.matrix = a
	}
	return p.matrix
}

// Build assembles the constraint matrix from the rows added so far.
func (p *Problem) Build() (*SparseMatrix, error) {
	return FromTriplets(len(p.rhs), p.numVars, p.entries, p.rhs, p.senses)
}

func (p *Problem) Lower() []float64     { return p.lower }
func (p *Problem) Upper() []float64     { return p.upper }
func (p *Problem) Objective() []float64 { return p.obj }
func (p *Problem) Solution() *Solution  { return &p.solution }
