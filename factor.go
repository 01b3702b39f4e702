package simplex

import (
	"log/slog"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LUFactors holds P_r·B·P_c = L·U. Step k pivoted on original row PermRow[k]
// and basis position PermCol[k]. L is unit lower triangular; column k lists
// (original row, multiplier). U's strict upper part is column-compressed by
// step, with row indices also given as steps.
type LUFactors struct {
	Size int

	PermRow []int
	PermCol []int
	RowStep []int
	ColStep []int

	LColPtr []int
	LRowIdx []int
	LValues []float64

	UColPtr []int
	URowIdx []int
	UValues []float64
	UDiag   []float64

	Fillins int
}

// ColumnFunc returns the non-zeros of the basis column at position pos.
type ColumnFunc func(pos int) (rows []int, vals []float64)

type factorWork struct {
	size int
	a    []float64 // dense row-major work matrix

	rowCount []int
	colCount []int
	rowDone  []bool
	colDone  []bool

	lTriples       []lEntry
	relThreshold   float64
	tiesMultiplier int64
	fillins        int

	pivotProduct      int64
	pivotsOriginalRow int
	pivotsOriginalCol int

	lu       *LUFactors
	annotate int
	logger   *slog.Logger
}

// Factorize builds the LU factors of the size×size basis whose columns are
// supplied by column. It returns a SingularBasis error when some step has no
// acceptable pivot.
func Factorize(size int, column ColumnFunc, config *Configuration) (*LUFactors, error) {
	if size < 0 {
		return nil, newError(InvalidArgument, "Factorize", "negative size %d", size)
	}
	if column == nil && size > 0 {
		return nil, newError(NullArgument, "Factorize", "nil column source")
	}
	if config == nil {
		config = DefaultConfiguration()
	}

	w := &factorWork{
		size:           size,
		a:              make([]float64, size*size),
		rowCount:       make([]int, size),
		colCount:       make([]int, size),
		rowDone:        make([]bool, size),
		colDone:        make([]bool, size),
		lTriples:       make([]lEntry, 0, size),
		relThreshold:   config.pivotThreshold(),
		tiesMultiplier: int64(config.TiesMultiplier),
		lu: &LUFactors{
			Size:    size,
			PermRow: make([]int, size),
			PermCol: make([]int, size),
			RowStep: make([]int, size),
			ColStep: make([]int, size),
			UDiag:   make([]float64, size),
		},
		annotate: config.Annotate,
		logger:   config.Log().With(slog.String("component", "lu")),
	}

	for p := 0; p < size; p++ {
		rows, vals := column(p)
		for k, r := range rows {
			if r < 0 || r >= size {
				return nil, newError(InvalidArgument, "Factorize", "column %d has row %d outside [0,%d)", p, r, size)
			}
			w.a[r*size+p] += vals[k]
		}
	}

	if err := w.OrderAndFactor(); err != nil {
		return nil, err
	}
	return w.lu, nil
}

// FactorizeDense is Factorize over a dense square matrix.
func FactorizeDense(b mat.Matrix, config *Configuration) (*LUFactors, error) {
	r, c := b.Dims()
	if r != c {
		return nil, newError(InvalidArgument, "FactorizeDense", "matrix is %dx%d", r, c)
	}
	rows := make([]int, r)
	vals := make([]float64, r)
	return Factorize(r, func(p int) ([]int, []float64) {
		rows, vals = rows[:0], vals[:0]
		for i := 0; i < r; i++ {
			if v := b.At(i, p); v != 0 {
				rows = append(rows, i)
				vals = append(vals, v)
			}
		}
		return rows, vals
	}, config)
}

func (w *factorWork) OrderAndFactor() error {
	w.CountMarkowitz()

	for step := 0; step < w.size; step++ {
		row, col, ok := w.SearchForPivot()
		if !ok {
			if w.annotate > 0 {
				w.logger.Warn("basis is singular", slog.Int("step", step), slog.Int("size", w.size))
			}
			return newError(SingularBasis, "OrderAndFactor", "no acceptable pivot at step %d", step)
		}

		w.ExchangeRowsAndCols(row, col, step)
		w.lu.UDiag[step] = w.a[row*w.size+col]

		if err := w.RowColElimination(row, col, step); err != nil {
			return errors.Wrapf(err, "step %d", step)
		}

		if w.annotate > 1 {
			w.WriteStatus(step)
		}
	}

	w.harvestU()
	w.assembleL()
	w.lu.Fillins = w.fillins
	return nil
}

// harvestU collects, for each pivot row, the entries in columns eliminated later.
func (w *factorWork) harvestU() {
	m := w.size
	lu := w.lu
	lu.UColPtr = make([]int, m+1)
	lu.URowIdx = make([]int, 0, m)
	lu.UValues = make([]float64, 0, m)

	for s := 0; s < m; s++ {
		col := lu.PermCol[s]
		for k := 0; k < s; k++ {
			v := w.a[lu.PermRow[k]*m+col]
			if abs(v) < ZeroTolerance {
				continue
			}
			lu.URowIdx = append(lu.URowIdx, k)
			lu.UValues = append(lu.UValues, v)
		}
		lu.UColPtr[s+1] = len(lu.URowIdx)
	}
}

// assembleL counting-sorts the multiplier triples by elimination step.
func (w *factorWork) assembleL() {
	m := w.size
	lu := w.lu
	lu.LColPtr = make([]int, m+1)
	for _, e := range w.lTriples {
		lu.LColPtr[e.step+1]++
	}
	for k := 0; k < m; k++ {
		lu.LColPtr[k+1] += lu.LColPtr[k]
	}

	next := make([]int, m)
	copy(next, lu.LColPtr[:m])
	lu.LRowIdx = make([]int, len(w.lTriples))
	lu.LValues = make([]float64, len(w.lTriples))
	for _, e := range w.lTriples {
		pos := next[e.step]
		lu.LRowIdx[pos] = e.row
		lu.LValues[pos] = e.mult
		next[e.step]++
	}
}

func (lu *LUFactors) NNZ() int {
	return len(lu.LValues) + len(lu.UValues) + lu.Size
}

// Dense returns L and U in permuted (step) order as dense matrices.
func (lu *LUFactors) Dense() (l, u *mat.Dense) {
	m := lu.Size
	if m == 0 {
		return &mat.Dense{}, &mat.Dense{}
	}
	l = mat.NewDense(m, m, nil)
	u = mat.NewDense(m, m, nil)
	for k := 0; k < m; k++ {
		l.Set(k, k, 1)
		u.Set(k, k, lu.UDiag[k])
		for p := lu.LColPtr[k]; p < lu.LColPtr[k+1]; p++ {
			l.Set(lu.RowStep[lu.LRowIdx[p]], k, lu.LValues[p])
		}
		for p := lu.UColPtr[k]; p < lu.UColPtr[k+1]; p++ {
			u.Set(lu.URowIdx[p], k, lu.UValues[p])
		}
	}
	return l, u
}

// Permute returns P_r·B·P_c for a basis given in original order.
func (lu *LUFactors) Permute(b mat.Matrix) *mat.Dense {
	m := lu.Size
	if m == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(m, m, nil)
	for k := 0; k < m; k++ {
		for s := 0; s < m; s++ {
			out.Set(k, s, b.At(lu.PermRow[k], lu.PermCol[s]))
		}
	}
	return out
}
