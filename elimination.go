package simplex

// lEntry is one recorded multiplier: row (original index) was reduced by
// mult times the pivot row chosen at step.
type lEntry struct {
	row  int
	step int
	mult float64
}

// RowColElimination eliminates the pivot column from every other live row.
func (w *factorWork) RowColElimination(pivotRow, pivotCol, step int) error {
	m := w.size
	pivot := w.a[pivotRow*m+pivotCol]
	if abs(pivot) < ZeroTolerance {
		return newError(SingularBasis, "RowColElimination", "pivot %.3g at step %d below floor", pivot, step)
	}
	upper := w.a[pivotRow*m : (pivotRow+1)*m]

	for i := 0; i < m; i++ {
		if w.rowDone[i] || i == pivotRow {
			continue
		}
		lower := w.a[i*m+pivotCol]
		if abs(lower) < ZeroTolerance {
			continue
		}

		mult := lower / pivot
		w.lTriples = append(w.lTriples, lEntry{row: i, step: step, mult: mult})

		w.a[i*m+pivotCol] = 0
		w.UpdateMarkowitzNumbers(i, pivotCol, lower, 0)

		row := w.a[i*m : (i+1)*m]
		for j, u := range upper {
			if u == 0 || w.colDone[j] || j == pivotCol {
				continue
			}
			before := row[j]
			after := before - mult*u
			if abs(after) < ZeroTolerance {
				after = 0
			}
			row[j] = after
			w.UpdateMarkowitzNumbers(i, j, before, after)
		}
	}

	// The pivot row leaves the live set.
	for j, u := range upper {
		if !w.colDone[j] && abs(u) >= ZeroTolerance {
			w.colCount[j]--
		}
	}
	w.rowDone[pivotRow] = true
	w.colDone[pivotCol] = true
	return nil
}
