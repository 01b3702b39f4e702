package simplex

// ExchangeRowsAndCols records the pivot chosen at step in the permutation
// vectors. The work matrix itself stays in original order.
func (w *factorWork) ExchangeRowsAndCols(row, col, step int) {
	w.lu.PermRow[step] = row
	w.lu.PermCol[step] = col
	w.lu.RowStep[row] = step
	w.lu.ColStep[col] = step

	w.pivotsOriginalRow = row
	w.pivotsOriginalCol = col
}
