package main

import (
	"fmt"
	"os"

	"github.com/edp1096/simplex"
	"gonum.org/v1/gonum/mat"
)

func main() {
	config := simplex.DefaultConfiguration()
	config.TiesMultiplier = 5
	config.PrinterWidth = 140

	entries := []simplex.Nonzero{
		{Row: 0, Col: 0, Val: 10},
		{Row: 0, Col: 3, Val: 4},
		{Row: 1, Col: 1, Val: 20},
		{Row: 1, Col: 2, Val: 5},
		{Row: 2, Col: 1, Val: 2},
		{Row: 2, Col: 2, Val: 30},
		{Row: 3, Col: 0, Val: 4},
		{Row: 3, Col: 3, Val: 40},
		{Row: 3, Col: 4, Val: 6},
		{Row: 4, Col: 3, Val: 6},
		{Row: 4, Col: 4, Val: 50},
	}

	A, err := simplex.FromTriplets(5, 5, entries, nil, nil)
	if err != nil {
		panic(err)
	}

	A.Print(os.Stdout, true, true, config.PrinterWidth)

	lu, err := simplex.FactorizeDense(A.Dense(), config)
	if err != nil {
		panic(err)
	}

	lu.Print(os.Stdout, true)

	x, err := lu.Solve([]float64{14, 25, 32, 50, 56})
	if err != nil {
		panic(err)
	}
	fmt.Printf("x =\n%9.4g\n", mat.Formatted(mat.NewVecDense(len(x), x).T(), mat.Squeeze()))
}
