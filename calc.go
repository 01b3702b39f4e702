package simplex

// Multiply computes y = Ax, or y += Ax when accumulate is set. Columns whose
// x coordinate is exactly zero are skipped. Sizes are not checked.
func (a *SparseMatrix) Multiply(x, y []float64, accumulate bool) {
	if !accumulate {
		for i := 0; i < a.NumRows; i++ {
			y[i] = 0
		}
	}
	for j := 0; j < a.NumCols; j++ {
		xj := x[j]
		if xj == 0.0 {
			continue
		}
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			y[a.RowIdx[k]] += a.Values[k] * xj
		}
	}
}

// TransposeMultiply computes y = Aᵀx. Sizes are not checked.
func (a *SparseMatrix) TransposeMultiply(x, y []float64) {
	for j := 0; j < a.NumCols; j++ {
		sum := 0.0
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			sum += a.Values[k] * x[a.RowIdx[k]]
		}
		y[j] = sum
	}
}

// rowActivityRange returns the smallest and largest value row i can take over the box [lb,ub].
func (a *SparseMatrix) rowActivityRange(i int, lb, ub []float64) (lo, hi float64) {
	cols, vals := a.Row(i)
	for k, j := range cols {
		v := vals[k]
		switch {
		case v > 0:
			lo += v * lb[j]
			hi += v * ub[j]
		case v < 0:
			lo += v * ub[j]
			hi += v * lb[j]
		}
	}
	return lo, hi
}
