package simplex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemDefaults(t *testing.T) {
	p, err := NewProblem(3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumVars())
	assert.Equal(t, 0, p.NumConstrs())
	assert.Equal(t, []float64{0, 0, 0}, p.Lower())
	for _, u := range p.Upper() {
		assert.True(t, math.IsInf(u, 1))
	}

	_, err = NewProblem(-1)
	assert.True(t, IsKind(err, InvalidArgument))
}

func TestAddConstraint(t *testing.T) {
	p, err := NewProblem(2)
	require.NoError(t, err)

	i, err := p.AddConstraint([]int{0, 1}, []float64{1, 0}, SenseLE, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	a := p.Matrix()
	require.NotNil(t, a)
	assert.Equal(t, 1, a.NNZ(), "explicit zeros are dropped")

	i, err = p.AddConstraint([]int{1}, []float64{2}, SenseEQ, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	a = p.Matrix()
	assert.Equal(t, 2, a.NumRows)
	assert.Equal(t, 2.0, a.At(1, 1))
	assert.Equal(t, []Sense{SenseLE, SenseEQ}, a.Senses)
	assert.Same(t, a, p.Matrix(), "the matrix is cached until the next change")

	require.NoError(t, p.AddNonzeros(Nonzero{Row: 0, Col: 1, Val: 4}))
	assert.Equal(t, 4.0, p.Matrix().At(0, 1))

	tests := []struct {
		name  string
		cols  []int
		vals  []float64
		sense Sense
		rhs   float64
	}{
		{"length mismatch", []int{0}, []float64{1, 2}, SenseLE, 0},
		{"bad sense", []int{0}, []float64{1}, 'x', 0},
		{"column out of range", []int{2}, []float64{1}, SenseGE, 0},
		{"nan rhs", []int{0}, []float64{1}, SenseEQ, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.AddConstraint(tt.cols, tt.vals, tt.sense, tt.rhs)
			assert.True(t, IsKind(err, InvalidArgument))
		})
	}
	assert.Equal(t, 2, p.NumConstrs())

	assert.True(t, IsKind(p.AddNonzeros(Nonzero{Row: 5, Col: 0, Val: 1}), InvalidArgument))
}

func TestSetBoundsAndObjective(t *testing.T) {
	p, err := NewProblem(1)
	require.NoError(t, err)

	require.NoError(t, p.SetBounds(0, -1, 2))
	require.NoError(t, p.SetObjective(0, 3))
	assert.Equal(t, []float64{-1}, p.Lower())
	assert.Equal(t, []float64{2}, p.Upper())
	assert.Equal(t, []float64{3}, p.Objective())

	assert.True(t, IsKind(p.SetBounds(1, 0, 1), InvalidArgument))
	assert.True(t, IsKind(p.SetBounds(0, math.NaN(), 1), InvalidArgument))
	assert.True(t, IsKind(p.SetObjective(-1, 1), InvalidArgument))
}
