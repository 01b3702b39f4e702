package simplex

// Solve returns x with B·x = rhs. rhs is indexed by original row, x by basis position.
func (lu *LUFactors) Solve(rhs []float64) ([]float64, error) {
	if lu == nil {
		return nil, newError(NullArgument, "Solve", "matrix is not factored")
	}
	if len(rhs) < lu.Size {
		return nil, newError(InvalidArgument, "Solve", "rhs size %d is smaller than matrix size %d", len(rhs), lu.Size)
	}
	solution := make([]float64, lu.Size)
	lu.solve(rhs, solution, make([]float64, lu.Size))
	return solution, nil
}

func (lu *LUFactors) solve(rhs, solution, intermediate []float64) {
	size := lu.Size
	copy(intermediate, rhs[:size])

	// Forward elimination - Solves Lc = P_r b, in original row order
	for k := 0; k < size; k++ {
		temp := intermediate[lu.PermRow[k]]
		if temp == 0.0 {
			continue
		}
		for p := lu.LColPtr[k]; p < lu.LColPtr[k+1]; p++ {
			intermediate[lu.LRowIdx[p]] -= lu.LValues[p] * temp
		}
	}

	// Gather into step order
	steps := solution
	for k := 0; k < size; k++ {
		steps[k] = intermediate[lu.PermRow[k]]
	}

	// Backward substitution - Solves Uw = c, column oriented
	for s := size - 1; s >= 0; s-- {
		temp := steps[s] / lu.UDiag[s]
		steps[s] = temp
		if temp == 0.0 {
			continue
		}
		for p := lu.UColPtr[s]; p < lu.UColPtr[s+1]; p++ {
			steps[lu.URowIdx[p]] -= lu.UValues[p] * temp
		}
	}

	// Unscramble - step s solves basis position PermCol[s]
	copy(intermediate, steps)
	for s := 0; s < size; s++ {
		solution[lu.PermCol[s]] = intermediate[s]
	}
}

// SolveTransposed returns y with Bᵀ·y = rhs. rhs is indexed by basis position, y by original row.
func (lu *LUFactors) SolveTransposed(rhs []float64) ([]float64, error) {
	if lu == nil {
		return nil, newError(NullArgument, "SolveTransposed", "matrix is not factored")
	}
	if len(rhs) < lu.Size {
		return nil, newError(InvalidArgument, "SolveTransposed", "rhs size %d is smaller than matrix size %d", len(rhs), lu.Size)
	}
	solution := make([]float64, lu.Size)
	lu.solveTransposed(rhs, solution, make([]float64, lu.Size))
	return solution, nil
}

func (lu *LUFactors) solveTransposed(rhs, solution, intermediate []float64) {
	size := lu.Size

	// Initialize Intermediate vector in step order
	for s := 0; s < size; s++ {
		intermediate[s] = rhs[lu.PermCol[s]]
	}

	// Forward elimination - Solves Uᵀh = g
	for s := 0; s < size; s++ {
		temp := intermediate[s]
		for p := lu.UColPtr[s]; p < lu.UColPtr[s+1]; p++ {
			temp -= lu.UValues[p] * intermediate[lu.URowIdx[p]]
		}
		intermediate[s] = temp / lu.UDiag[s]
	}

	// Backward substitution - Solves Lᵀv = h
	for k := size - 1; k >= 0; k-- {
		temp := intermediate[k]
		for p := lu.LColPtr[k]; p < lu.LColPtr[k+1]; p++ {
			temp -= lu.LValues[p] * intermediate[lu.RowStep[lu.LRowIdx[p]]]
		}
		intermediate[k] = temp
	}

	for k := 0; k < size; k++ {
		solution[lu.PermRow[k]] = intermediate[k]
	}
}
