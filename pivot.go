package simplex

import (
	"math"
)

// SearchForPivot scans every live column for the entry with the smallest
// Markowitz count among those passing the relative threshold against the
// column maximum. Ties go to the larger magnitude, and the scan stops once
// enough ties of a nonzero best count have been seen. ok is false when no live
// column has a usable entry.
func (w *factorWork) SearchForPivot() (row, col int, ok bool) {
	m := w.size
	minMarkowitzProduct := int64(math.MaxInt64)
	numberOfTies := int64(0)
	chosenMag := 0.0
	row, col = -1, -1

search:
	for j := 0; j < m; j++ {
		if w.colDone[j] {
			continue
		}
		largestInCol := w.FindBiggestInCol(j)
		if largestInCol < ZeroTolerance {
			continue
		}

		for i := 0; i < m; i++ {
			if w.rowDone[i] {
				continue
			}
			magnitude := abs(w.a[i*m+j])
			if magnitude < ZeroTolerance || magnitude < w.relThreshold*largestInCol {
				continue
			}

			product := w.markowitzCount(i, j)
			if product < minMarkowitzProduct {
				row, col = i, j
				minMarkowitzProduct = product
				chosenMag = magnitude
				numberOfTies = 0
				continue
			}
			if product > minMarkowitzProduct {
				continue
			}

			numberOfTies++
			if magnitude > chosenMag {
				row, col = i, j
				chosenMag = magnitude
			}
			// A best count of zero never stops the scan.
			if w.tiesMultiplier > 0 && minMarkowitzProduct > 0 && numberOfTies >= minMarkowitzProduct*w.tiesMultiplier {
				break search
			}
		}
	}

	if row < 0 {
		return -1, -1, false
	}
	w.pivotProduct = minMarkowitzProduct
	return row, col, true
}

// FindBiggestInCol returns the largest live magnitude in column col.
func (w *factorWork) FindBiggestInCol(col int) float64 {
	m := w.size
	largest := 0.0
	for i := 0; i < m; i++ {
		if w.rowDone[i] {
			continue
		}
		if magnitude := abs(w.a[i*m+col]); magnitude > largest {
			largest = magnitude
		}
	}
	return largest
}
