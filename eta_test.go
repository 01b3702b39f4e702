package simplex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// replaceColumn returns b with column pos overwritten by col.
func replaceColumn(b *mat.Dense, pos int, col []float64) *mat.Dense {
	out := mat.DenseCopyOf(b)
	out.SetCol(pos, col)
	return out
}

func TestEtaFileTracksColumnReplacements(t *testing.T) {
	b := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	lu, err := FactorizeDense(b, nil)
	require.NoError(t, err)

	var etas etaFile
	current := b
	for _, step := range []struct {
		pos int
		col []float64
	}{
		{1, []float64{1, 0, 2}},
		{0, []float64{0, 5, 1}},
		{2, []float64{2, 1, 1}},
	} {
		alpha, err := lu.Solve(step.col)
		require.NoError(t, err)
		etas.ftran(alpha)
		etas.push(step.pos, alpha)
		current = replaceColumn(current, step.pos, step.col)
	}
	require.Equal(t, 3, etas.count())

	rhs := []float64{1, -2, 3}

	x, err := lu.Solve(rhs)
	require.NoError(t, err)
	etas.ftran(x)
	var want mat.VecDense
	require.NoError(t, want.SolveVec(current, mat.NewVecDense(3, rhs)))
	assert.True(t, floats.EqualApprox(want.RawVector().Data, x, 1e-9))

	y := append([]float64(nil), rhs...)
	etas.btran(y)
	y, err = lu.SolveTransposed(y)
	require.NoError(t, err)
	var wantT mat.VecDense
	require.NoError(t, wantT.SolveVec(current.T(), mat.NewVecDense(3, rhs)))
	assert.True(t, floats.EqualApprox(wantT.RawVector().Data, y, 1e-9))

	etas.reset()
	assert.Equal(t, 0, etas.count())
	assert.Equal(t, 0, etas.memory)
}

func TestEtaMemory(t *testing.T) {
	var etas etaFile
	etas.push(1, []float64{0.5, 2, 0, 1e-15})
	assert.Equal(t, etaEntryBytes*2, etas.memory)
	assert.Equal(t, []int{0}, etas.etas[0].idx)
	assert.Equal(t, 2.0, etas.etas[0].pivot)
}

func TestEvaluateRefactor(t *testing.T) {
	newTracker := func() *refactorTracker {
		return &refactorTracker{maxEtaCount: 10, maxEtaMemory: 1000, refactorInterval: 20}
	}

	t.Run("fresh", func(t *testing.T) {
		assert.Equal(t, RefactorNone, newTracker().EvaluateRefactor(5))
	})

	t.Run("eta count", func(t *testing.T) {
		tr := newTracker()
		tr.etaCount = 11
		assert.Equal(t, RefactorRequired, tr.EvaluateRefactor(1))
	})

	t.Run("eta memory", func(t *testing.T) {
		tr := newTracker()
		tr.etaMemory = 1001
		assert.Equal(t, RefactorRequired, tr.EvaluateRefactor(1))
	})

	t.Run("interval", func(t *testing.T) {
		tr := newTracker()
		tr.refactored(10)
		assert.Equal(t, RefactorNone, tr.EvaluateRefactor(30))
		assert.Equal(t, RefactorRecommended, tr.EvaluateRefactor(31))
	})

	t.Run("slow ftran", func(t *testing.T) {
		tr := newTracker()
		for i := 0; i < baselineWindow; i++ {
			tr.recordFtran(time.Millisecond)
		}
		tr.recordFtran(2 * time.Millisecond)
		assert.Equal(t, RefactorNone, tr.EvaluateRefactor(1))

		tr.recordFtran(20 * time.Millisecond)
		assert.Equal(t, RefactorRecommended, tr.EvaluateRefactor(1))

		tr.refactored(1)
		assert.Equal(t, RefactorNone, tr.EvaluateRefactor(2))
	})

	t.Run("required wins", func(t *testing.T) {
		tr := newTracker()
		tr.etaCount = 50
		assert.Equal(t, RefactorRequired, tr.EvaluateRefactor(100))
	})
}
