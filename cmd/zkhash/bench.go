package main

import (
	"fmt"
	"math/big"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var numRuns int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time repeated permutations of one instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		if numRuns < 1 {
			return fail(fmt.Errorf("--runs must be positive, got %d", numRuns))
		}
		p, err := newPermutation()
		if err != nil {
			return fail(err)
		}
		state := make([]*big.Int, width)
		for i := range state {
			state[i] = big.NewInt(int64(i))
		}

		header(cmd.OutOrStdout(), p)
		start := time.Now()
		for i := 0; i < numRuns; i++ {
			if state, err = p.Permute(state); err != nil {
				return fail(err)
			}
		}
		elapsed := time.Since(start)
		log := logger.Logger()
		log.Debug().Int("runs", numRuns).Dur("elapsed", elapsed).Msg("benchmark done")

		perOp := elapsed / time.Duration(numRuns)
		fmt.Fprintf(cmd.OutOrStdout(), "  runs:      %d\n", numRuns)
		fmt.Fprintf(cmd.OutOrStdout(), "  total:     %s\n", elapsed)
		fmt.Fprintf(cmd.OutOrStdout(), "  per perm:  %s\n", color.YellowString(perOp.String()))
		fmt.Fprintf(cmd.OutOrStdout(), "  perms/sec: %.1f\n", float64(numRuns)/elapsed.Seconds())
		return nil
	},
}

func init() {
	addInstanceFlags(benchCmd)
	benchCmd.Flags().IntVarP(&numRuns, "runs", "r", 1000, "number of permutations")
	rootCmd.AddCommand(benchCmd)
}
