package simplex

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// WriteStatus logs the pivot chosen at step with the live Markowitz counts
// and the permutations built so far.
func (w *factorWork) WriteStatus(step int) {
	w.logger.Debug("pivot",
		slog.Int("step", step),
		slog.Int("row", w.pivotsOriginalRow),
		slog.Int("col", w.pivotsOriginalCol),
		slog.Int64("markowitz", w.pivotProduct),
		slog.Any("rowCounts", w.rowCount),
		slog.Any("colCounts", w.colCount),
		slog.Any("permRow", w.lu.PermRow[:step+1]),
		slog.Any("permCol", w.lu.PermCol[:step+1]),
		slog.Int("fillins", w.fillins))
}

// WriteStatus logs the outcome of one simplex iteration.
func (c *solverContext) WriteStatus(result iterResult) {
	c.logger.Debug("iteration",
		slog.Int("iteration", c.iterations),
		slog.Int("phase", c.phase),
		slog.String("result", result.String()),
		slog.Int("entering", c.lastEntering),
		slog.Int("leaving", c.lastLeaving),
		slog.Float64("theta", c.lastTheta),
		slog.Float64("objective", c.objVal),
		slog.Int("etas", c.etas.count()))
}

// Print writes the matrix in blocks of columns that fit width characters.
// With data false only the pattern is shown, 'x' for a stored entry.
func (a *SparseMatrix) Print(out io.Writer, data, header bool, width int) {
	if a == nil {
		return
	}
	if width <= 0 {
		width = 80
	}

	if header {
		fmt.Fprintf(out, "MATRIX SUMMARY\n\n")
		fmt.Fprintf(out, "Size of matrix = %d x %d.\n", a.NumRows, a.NumCols)
		fmt.Fprintf(out, "Stored entries = %d.\n\n", a.NNZ())
	}
	if a.NumRows == 0 || a.NumCols == 0 {
		return
	}

	columns := width
	if header {
		columns -= 5
	}
	if data {
		columns = (columns + 1) / 10
	}
	columns = max(columns, 1)

	for startCol := 0; startCol < a.NumCols; startCol += columns {
		stopCol := min(startCol+columns, a.NumCols) - 1

		if header {
			if data {
				fmt.Fprintf(out, "    ")
				for col := startCol; col <= stopCol; col++ {
					fmt.Fprintf(out, " %9d", col)
				}
				fmt.Fprintf(out, "\n\n")
			} else {
				fmt.Fprintf(out, "Columns %d to %d.\n", startCol, stopCol)
			}
		}

		for i := 0; i < a.NumRows; i++ {
			if header {
				fmt.Fprintf(out, "%4d", i)
				if !data {
					fmt.Fprintf(out, " ")
				}
			}
			for j := startCol; j <= stopCol; j++ {
				v, stored := a.lookup(i, j)
				switch {
				case stored && data:
					fmt.Fprintf(out, " %9.3g", v)
				case stored:
					fmt.Fprintf(out, "x")
				case data:
					fmt.Fprintf(out, "       ...")
				default:
					fmt.Fprintf(out, ".")
				}
			}
			if header && data {
				fmt.Fprintf(out, "   %c %9.3g", a.Senses[i], a.RHS[i])
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}

	if header {
		stats := a.calculateStatistics()
		fmt.Fprintf(out, "Largest element in matrix = %-1.4g.\n", stats.largestElement)
		fmt.Fprintf(out, "Smallest element in matrix = %-1.4g.\n", stats.smallestElement)
		density := float64(stats.elementCount) * 100.0 / float64(a.NumRows*a.NumCols)
		fmt.Fprintf(out, "\nDensity = %.2f%%.\n\n", density)
	}
}

// lookup is At with a flag for entries present in the column structure.
func (a *SparseMatrix) lookup(i, j int) (float64, bool) {
	rows, vals := a.Column(j)
	for k, r := range rows {
		if r == i {
			return vals[k], true
		}
	}
	return 0, false
}

type matrixStats struct {
	largestElement  float64
	smallestElement float64
	largestDiag     float64
	smallestDiag    float64
	elementCount    int
}

func (a *SparseMatrix) calculateStatistics() matrixStats {
	stats := matrixStats{smallestElement: math.MaxFloat64}
	for _, v := range a.Values {
		if v == 0 {
			continue
		}
		stats.elementCount++
		magnitude := math.Abs(v)
		stats.largestElement = max(stats.largestElement, magnitude)
		stats.smallestElement = min(stats.smallestElement, magnitude)
	}
	if stats.elementCount == 0 {
		stats.smallestElement = 0
	}
	return stats
}

// Print writes a factorization summary followed by L and U in step order.
func (lu *LUFactors) Print(out io.Writer, data bool) {
	if lu == nil {
		return
	}
	stats := lu.calculateStatistics()

	fmt.Fprintf(out, "LU FACTORS\n\n")
	fmt.Fprintf(out, "Size of matrix = %d x %d.\n", lu.Size, lu.Size)
	fmt.Fprintf(out, "Row order    = %v\n", lu.PermRow)
	fmt.Fprintf(out, "Column order = %v\n\n", lu.PermCol)

	if data && lu.Size > 0 {
		l, u := lu.Dense()
		fmt.Fprintf(out, "L =\n%9.4g\n\n", mat.Formatted(l, mat.Squeeze()))
		fmt.Fprintf(out, "U =\n%9.4g\n\n", mat.Formatted(u, mat.Squeeze()))
	}

	fmt.Fprintf(out, "Largest pivot element = %-1.4g.\n", stats.largestDiag)
	fmt.Fprintf(out, "Smallest pivot element = %-1.4g.\n", stats.smallestDiag)
	fmt.Fprintf(out, "Largest element in factors = %-1.4g.\n", stats.largestElement)
	fmt.Fprintf(out, "Number of fill-ins = %d.\n", lu.Fillins)
	fmt.Fprintf(out, "Stored entries = %d.\n\n", lu.NNZ())
}

func (lu *LUFactors) calculateStatistics() matrixStats {
	stats := matrixStats{smallestElement: math.MaxFloat64, smallestDiag: math.MaxFloat64}
	track := func(v float64, diag bool) {
		magnitude := math.Abs(v)
		if magnitude == 0 {
			return
		}
		stats.elementCount++
		stats.largestElement = max(stats.largestElement, magnitude)
		stats.smallestElement = min(stats.smallestElement, magnitude)
		if diag {
			stats.largestDiag = max(stats.largestDiag, magnitude)
			stats.smallestDiag = min(stats.smallestDiag, magnitude)
		}
	}
	for _, v := range lu.UDiag {
		track(v, true)
	}
	for _, v := range lu.UValues {
		track(v, false)
	}
	for _, v := range lu.LValues {
		track(v, false)
	}
	if stats.elementCount == 0 {
		stats.smallestElement = 0
		stats.smallestDiag = 0
	}
	return stats
}
