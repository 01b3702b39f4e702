package simplex

import (
	"gonum.org/v1/gonum/mat"
)

// SparseMatrix is the constraint matrix in compressed sparse column form, with
// per-row senses and right-hand sides. The row-major mirror is derived on demand.
type SparseMatrix struct {
	NumRows int
	NumCols int

	ColPtr []int     // [NumCols+1]
	RowIdx []int     // [nnz]
	Values []float64 // [nnz]

	RHS    []float64 // [NumRows]
	Senses []Sense   // [NumRows]

	rowPtr    []int
	colIdx    []int
	rowValues []float64
	rowsBuilt bool
}

// Nonzero is a single (row, col, value) entry.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

func NewSparseMatrix(rows, cols int, colPtr, rowIdx []int, values, rhs []float64, senses []Sense) (*SparseMatrix, error) {
	a := &SparseMatrix{
		NumRows: rows,
		NumCols: cols,
		ColPtr:  colPtr,
		RowIdx:  rowIdx,
		Values:  values,
		RHS:     rhs,
		Senses:  senses,
	}
	if a.ColPtr == nil && cols == 0 {
		a.ColPtr = []int{0}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// FromTriplets assembles a matrix from unordered entries, summing duplicates.
func FromTriplets(rows, cols int, entries []Nonzero, rhs []float64, senses []Sense) (*SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, newError(InvalidArgument, "FromTriplets", "negative dimensions %dx%d", rows, cols)
	}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, newError(InvalidArgument, "FromTriplets", "entry (%d,%d) outside %dx%d", e.Row, e.Col, rows, cols)
		}
	}

	// Counting sort on column, then on row within each column through a dense marker.
	colPtr := make([]int, cols+1)
	for _, e := range entries {
		colPtr[e.Col+1]++
	}
	for j := 0; j < cols; j++ {
		colPtr[j+1] += colPtr[j]
	}
	next := make([]int, cols)
	copy(next, colPtr[:cols])
	rowIdx := make([]int, len(entries))
	values := make([]float64, len(entries))
	for _, e := range entries {
		k := next[e.Col]
		rowIdx[k] = e.Row
		values[k] = e.Val
		next[e.Col]++
	}

	// Merge duplicates and sort rows per column.
	outPtr := make([]int, cols+1)
	outRow := make([]int, 0, len(entries))
	outVal := make([]float64, 0, len(entries))
	slot := make([]int, rows)
	for i := range slot {
		slot[i] = -1
	}
	for j := 0; j < cols; j++ {
		start := len(outRow)
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			r := rowIdx[k]
			if slot[r] >= start {
				outVal[slot[r]] += values[k]
				continue
			}
			slot[r] = len(outRow)
			outRow = append(outRow, r)
			outVal = append(outVal, values[k])
		}
		sortColumn(outRow[start:], outVal[start:])
		for k := start; k < len(outRow); k++ {
			slot[outRow[k]] = -1
		}
		outPtr[j+1] = len(outRow)
	}

	if rhs == nil {
		rhs = make([]float64, rows)
	}
	if senses == nil {
		senses = make([]Sense, rows)
		for i := range senses {
			senses[i] = SenseLE
		}
	}
	return NewSparseMatrix(rows, cols, outPtr, outRow, outVal, rhs, senses)
}

// sortColumn is an insertion sort; columns are short.
func sortColumn(rows []int, vals []float64) {
	for i := 1; i < len(rows); i++ {
		r, v := rows[i], vals[i]
		k := i - 1
		for k >= 0 && rows[k] > r {
			rows[k+1] = rows[k]
			vals[k+1] = vals[k]
			k--
		}
		rows[k+1] = r
		vals[k+1] = v
	}
}

func (a *SparseMatrix) NNZ() int {
	if a == nil || len(a.ColPtr) == 0 {
		return 0
	}
	return a.ColPtr[len(a.ColPtr)-1]
}

func (a *SparseMatrix) Validate() error {
	if a == nil {
		return newError(NullArgument, "Validate", "nil matrix")
	}
	if a.NumRows < 0 || a.NumCols < 0 {
		return newError(InvalidArgument, "Validate", "negative dimensions %dx%d", a.NumRows, a.NumCols)
	}
	if a.NumRows == 0 && a.NumCols == 0 && len(a.RowIdx) == 0 {
		return nil
	}
	if len(a.ColPtr) != a.NumCols+1 {
		return newError(InvalidArgument, "Validate", "col_ptr has %d entries, want %d", len(a.ColPtr), a.NumCols+1)
	}
	if a.ColPtr[0] != 0 {
		return newError(InvalidArgument, "Validate", "col_ptr[0] = %d", a.ColPtr[0])
	}
	for j := 0; j < a.NumCols; j++ {
		if a.ColPtr[j+1] < a.ColPtr[j] {
			return newError(InvalidArgument, "Validate", "col_ptr decreases at column %d", j)
		}
	}
	nnz := a.ColPtr[a.NumCols]
	if len(a.RowIdx) != nnz || len(a.Values) != nnz {
		return newError(InvalidArgument, "Validate", "nnz %d but %d row indices and %d values", nnz, len(a.RowIdx), len(a.Values))
	}
	for k, r := range a.RowIdx {
		if r < 0 || r >= a.NumRows {
			return newError(InvalidArgument, "Validate", "row index %d at position %d outside [0,%d)", r, k, a.NumRows)
		}
	}
	if len(a.RHS) != a.NumRows || len(a.Senses) != a.NumRows {
		return newError(InvalidArgument, "Validate", "%d rows but %d rhs and %d senses", a.NumRows, len(a.RHS), len(a.Senses))
	}
	for i, s := range a.Senses {
		if !s.valid() {
			return newError(InvalidArgument, "Validate", "row %d has sense %q", i, byte(s))
		}
	}
	return nil
}

// BuildRowMajor derives the row-compressed mirror by a counting-sort transpose.
func (a *SparseMatrix) BuildRowMajor() {
	if a.rowsBuilt {
		return
	}
	nnz := a.NNZ()

	rowPtr := make([]int, a.NumRows+1)
	for k := 0; k < nnz; k++ {
		rowPtr[a.RowIdx[k]+1]++
	}
	for i := 0; i < a.NumRows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	next := make([]int, a.NumRows)
	copy(next, rowPtr[:a.NumRows])
	colIdx := make([]int, nnz)
	rowValues := make([]float64, nnz)
	for j := 0; j < a.NumCols; j++ {
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			pos := next[a.RowIdx[k]]
			colIdx[pos] = j
			rowValues[pos] = a.Values[k]
			next[a.RowIdx[k]]++
		}
	}

	a.rowPtr = rowPtr
	a.colIdx = colIdx
	a.rowValues = rowValues
	a.rowsBuilt = true
}

// InvalidateRowMajor frees the mirror. Call it after mutating the CSC arrays directly.
func (a *SparseMatrix) InvalidateRowMajor() {
	a.rowPtr = nil
	a.colIdx = nil
	a.rowValues = nil
	a.rowsBuilt = false
}

func (a *SparseMatrix) HasRowMajor() bool {
	return a.rowsBuilt
}

// SetValue overwrites the k-th stored value.
func (a *SparseMatrix) SetValue(k int, v float64) error {
	if k < 0 || k >= a.NNZ() {
		return newError(InvalidArgument, "SetValue", "position %d outside [0,%d)", k, a.NNZ())
	}
	a.Values[k] = v
	a.InvalidateRowMajor()
	return nil
}

func (a *SparseMatrix) Column(j int) ([]int, []float64) {
	lo, hi := a.ColPtr[j], a.ColPtr[j+1]
	return a.RowIdx[lo:hi], a.Values[lo:hi]
}

func (a *SparseMatrix) Row(i int) ([]int, []float64) {
	a.BuildRowMajor()
	lo, hi := a.rowPtr[i], a.rowPtr[i+1]
	return a.colIdx[lo:hi], a.rowValues[lo:hi]
}

func (a *SparseMatrix) At(i, j int) float64 {
	rows, vals := a.Column(j)
	for k, r := range rows {
		if r == i {
			return vals[k]
		}
	}
	return 0
}

// Triplets lists the stored entries in column-major order.
func (a *SparseMatrix) Triplets() []Nonzero {
	out := make([]Nonzero, 0, a.NNZ())
	for j := 0; j < a.NumCols; j++ {
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			out = append(out, Nonzero{Row: a.RowIdx[k], Col: j, Val: a.Values[k]})
		}
	}
	return out
}

// RowTriplets lists the stored entries in row-major order, reading the mirror.
func (a *SparseMatrix) RowTriplets() []Nonzero {
	a.BuildRowMajor()
	out := make([]Nonzero, 0, a.NNZ())
	for i := 0; i < a.NumRows; i++ {
		for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
			out = append(out, Nonzero{Row: i, Col: a.colIdx[k], Val: a.rowValues[k]})
		}
	}
	return out
}

func (a *SparseMatrix) Dense() *mat.Dense {
	if a.NumRows == 0 || a.NumCols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(a.NumRows, a.NumCols, nil)
	for j := 0; j < a.NumCols; j++ {
		for k := a.ColPtr[j]; k < a.ColPtr[j+1]; k++ {
			d.Set(a.RowIdx[k], j, d.At(a.RowIdx[k], j)+a.Values[k])
		}
	}
	return d
}
