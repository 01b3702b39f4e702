package simplex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSparseMatrixPrint(t *testing.T) {
	a := sampleMatrix(t)

	var pattern bytes.Buffer
	a.Print(&pattern, false, false, 80)
	assert.Equal(t, "x.x.\n.x.x\nx.x.\n\n", pattern.String())

	var full bytes.Buffer
	a.Print(&full, true, true, 80)
	out := full.String()
	assert.Contains(t, out, "Size of matrix = 3 x 4.")
	assert.Contains(t, out, "Largest element in matrix = 6.")
	assert.Contains(t, out, "Density = 50.00%.")
	assert.Contains(t, out, "       ...")
}

func TestLUFactorsPrint(t *testing.T) {
	lu, err := FactorizeDense(factorCases["banded"], nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	lu.Print(&buf, true)
	out := buf.String()
	assert.Contains(t, out, "LU FACTORS")
	assert.Contains(t, out, "L =")
	assert.Contains(t, out, "Number of fill-ins =")

	var empty bytes.Buffer
	lu0, err := FactorizeDense(&mat.Dense{}, nil)
	require.NoError(t, err)
	lu0.Print(&empty, true)
	assert.Contains(t, empty.String(), "Size of matrix = 0 x 0.")
}
