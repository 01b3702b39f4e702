package simplex

const (
	largestShortInteger = 32767
	largestLongInteger  = 2147483647
)

// CountMarkowitz sets the live non-zero count of every row and column of the work matrix.
func (w *factorWork) CountMarkowitz() {
	m := w.size
	for i := 0; i < m; i++ {
		w.rowCount[i] = 0
	}
	for j := 0; j < m; j++ {
		w.colCount[j] = 0
	}
	for i := 0; i < m; i++ {
		row := w.a[i*m : (i+1)*m]
		for j, v := range row {
			if abs(v) >= ZeroTolerance {
				w.rowCount[i]++
				w.colCount[j]++
			}
		}
	}
}

// markowitzCount is (rowCount-1)*(colCount-1) for a live entry.
func (w *factorWork) markowitzCount(row, col int) int64 {
	return markowitzProduct(int64(w.rowCount[row]-1), int64(w.colCount[col]-1))
}

func markowitzProduct(op1, op2 int64) int64 {
	if op1 < 0 {
		op1 = 0
	}
	if op2 < 0 {
		op2 = 0
	}
	if (op1 > largestShortInteger && op2 != 0) || (op2 > largestShortInteger && op1 != 0) {
		fProduct := float64(op1) * float64(op2)
		if fProduct >= float64(largestLongInteger) {
			return largestLongInteger
		}
		return int64(fProduct)
	}
	return op1 * op2
}

// UpdateMarkowitzNumbers records a value change at (row, col) crossing the zero floor.
func (w *factorWork) UpdateMarkowitzNumbers(row, col int, before, after float64) {
	wasNonzero := abs(before) >= ZeroTolerance
	isNonzero := abs(after) >= ZeroTolerance
	switch {
	case wasNonzero && !isNonzero:
		w.rowCount[row]--
		w.colCount[col]--
	case !wasNonzero && isNonzero:
		w.rowCount[row]++
		w.colCount[col]++
		w.fillins++
	}
}
