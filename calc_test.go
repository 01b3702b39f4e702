package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestMultiply(t *testing.T) {
	a, err := FromTriplets(2, 2, []Nonzero{
		{Row: 0, Col: 0, Val: 1},
		{Row: 0, Col: 1, Val: 2},
		{Row: 1, Col: 0, Val: 3},
		{Row: 1, Col: 1, Val: 4},
	}, nil, nil)
	require.NoError(t, err)

	y := make([]float64, 2)
	a.Multiply([]float64{1, 1}, y, false)
	assert.Equal(t, []float64{3, 7}, y)

	y = []float64{10, 20}
	a.Multiply([]float64{1, 1}, y, true)
	assert.Equal(t, []float64{13, 27}, y)

	y = []float64{10, 20}
	a.Multiply([]float64{1, 1}, y, false)
	assert.Equal(t, []float64{3, 7}, y)
}

func TestMultiplyAgainstDense(t *testing.T) {
	a := sampleMatrix(t)
	x := []float64{0.5, 0, -1, 2}

	got := make([]float64, a.NumRows)
	a.Multiply(x, got, false)

	var want mat.VecDense
	want.MulVec(a.Dense(), mat.NewVecDense(len(x), x))
	assert.True(t, floats.EqualApprox(want.RawVector().Data, got, 1e-12))

	pi := []float64{1, -2, 0.25}
	gotT := make([]float64, a.NumCols)
	a.TransposeMultiply(pi, gotT)

	var wantT mat.VecDense
	wantT.MulVec(a.Dense().T(), mat.NewVecDense(len(pi), pi))
	assert.True(t, floats.EqualApprox(wantT.RawVector().Data, gotT, 1e-12))
}

func TestRowActivityRange(t *testing.T) {
	a := sampleMatrix(t)
	lb := []float64{0, -1, 0, 0}
	ub := []float64{2, 1, 1, 3}

	lo, hi := a.rowActivityRange(2, lb, ub)
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 5.0, hi)

	lo, hi = a.rowActivityRange(1, lb, ub)
	assert.Equal(t, -21.0, lo)
	assert.Equal(t, 3.0, hi)
}
