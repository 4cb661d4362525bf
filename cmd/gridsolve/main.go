// Command gridsolve solves photographed Sudoku puzzles.
//
// It offers two modes: a one-shot solve of an image file, and a small
// HTTP server accepting image uploads. Both require Tesseract when built
// with -tags ocr; without the tag the command reports that no classifier
// is available.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "gridsolve",
		Short:         "Solve a photographed Sudoku puzzle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCommand(), newServeCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
