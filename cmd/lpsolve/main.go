package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/edp1096/simplex"
)

type App struct {
	problem      *simplex.Problem
	config       *simplex.Configuration
	filename     string
	solutionOnly bool
	printMatrix  bool
	printLimit   int

	readTime  float64
	solveTime float64
	startTime time.Time
}

func InitApp() *App {
	return &App{
		config:    simplex.DefaultConfiguration(),
		startTime: time.Now(),
	}
}

func (a *App) readProblemFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	readStart := time.Now()
	a.problem, err = simplex.ReadProblem(file)
	if err != nil {
		return err
	}
	a.readTime = time.Since(readStart).Seconds()

	if !a.solutionOnly {
		fmt.Printf("\n%s\n\n", a.problem.Name)
		fmt.Printf("Problem has %d variables and %d constraints.\n\n", a.problem.NumVars(), a.problem.NumConstrs())
	}
	return nil
}

func (a *App) solve(ctx context.Context) error {
	if a.printMatrix {
		a.problem.Matrix().Print(os.Stdout, true, true, a.config.PrinterWidth)
	}

	solveStart := time.Now()
	status, err := simplex.SolveContext(ctx, a.problem, a.config)
	a.solveTime = time.Since(solveStart).Seconds()
	if err != nil {
		return fmt.Errorf("solve failed: %v", err)
	}

	sol := a.problem.Solution()
	fmt.Printf("Status: %s\n", status)
	if status != simplex.StatusOptimal && len(sol.X) == 0 {
		return nil
	}
	fmt.Printf("Objective = %-16.9g\n\n", sol.ObjVal)

	limit := len(sol.X)
	if !a.solutionOnly && a.printLimit > 0 && a.printLimit < limit {
		limit = a.printLimit
	}
	if !a.solutionOnly {
		fmt.Println("Solution:")
	}
	for j := 0; j < limit; j++ {
		fmt.Printf("%-16.9g   %-.9g\n", sol.X[j], sol.ReducedCosts[j])
	}
	if !a.solutionOnly && limit < len(sol.X) && limit != 0 {
		fmt.Printf("Solution list truncated.\n")
	}
	fmt.Println()

	if !a.solutionOnly {
		fmt.Printf("Statistics:\n")
		fmt.Printf("Read time = %.3f.\n", a.readTime)
		fmt.Printf("Solve time = %.3f.\n", a.solveTime)
		fmt.Printf("Iterations = %d\n", sol.Iterations)
		fmt.Printf("Total number of elements = %d\n", a.problem.Matrix().NNZ())
		fmt.Println()
	}
	return nil
}

func (a *App) printResourceUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	fmt.Printf("\nAggregate resource usage:\n")
	fmt.Printf("    Time required = %.4f seconds.\n", time.Since(a.startTime).Seconds())
	fmt.Printf("    Heap memory used = %d kBytes\n", m.HeapAlloc/1024)
	fmt.Printf("    Total memory from OS = %d kBytes\n\n", m.Sys/1024)
}

func main() {
	solutionOnly := flag.Bool("s", false, "Print solution rather than run statistics")
	printMatrix := flag.Bool("p", false, "Print the constraint matrix before solving")
	printLimit := flag.Int("n", 9, "Print first n terms of solution vector")
	iterations := flag.Int("i", 0, "Iteration limit, 0 for the default")
	timeLimit := flag.Duration("t", 0, "Time limit, 0 for none")
	noPerturb := flag.Bool("noperturb", false, "Disable bound perturbation")
	annotate := flag.Int("annotate", 0, "0: quiet, 1: strange behavior, 2: full trace")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Error: Please provide a problem file")
		os.Exit(1)
	}

	a := InitApp()
	a.filename = args[0]
	a.solutionOnly = *solutionOnly
	a.printMatrix = *printMatrix
	a.printLimit = *printLimit
	a.config.IterationLimit = *iterations
	a.config.TimeLimit = *timeLimit
	a.config.Perturb = !*noPerturb
	a.config.Annotate = *annotate
	a.config.PrinterWidth = 140

	level := slog.LevelWarn
	if *annotate > 1 {
		level = slog.LevelDebug
	}
	a.config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := a.readProblemFromFile(a.filename); err != nil {
		fmt.Printf("%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.solve(ctx); err != nil {
		fmt.Printf("%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}

	if !a.solutionOnly {
		a.printResourceUsage()
	}
}
