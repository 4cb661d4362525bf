package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/gridsolve"
)

func newSolveCommand() *cobra.Command {
	var (
		strict    bool
		boardSize int
		maxNodes  int
	)
	cmd := &cobra.Command{
		Use:   "solve <image>",
		Short: "Solve the puzzle in an image file and print the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := gridsolve.Open(args[0]).
				BoardSize(boardSize).
				MaxNodes(maxNodes)
			if strict {
				p = p.Strict()
			}

			text, warnings, err := p.Solve()
			if err != nil {
				return err
			}
			if len(warnings) > 0 {
				fmt.Fprintln(os.Stderr, "warnings:", gridsolve.FormatWarnings(warnings))
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on the first unreadable cell instead of treating it as blank")
	cmd.Flags().IntVar(&boardSize, "board-size", 450, "side length of the rectified board in pixels")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "solver search budget in decision nodes (0 = default)")
	return cmd
}
