package main

import (
	"fmt"
	"math/big"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var katCmd = &cobra.Command{
	Use:   "kat [values...]",
	Short: "Print the permutation of [0, 1, ..., t-1] or of the given state",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPermutation()
		if err != nil {
			return fail(err)
		}
		var in []*big.Int
		if len(args) == 0 {
			in = make([]*big.Int, width)
			for i := range in {
				in[i] = big.NewInt(int64(i))
			}
		} else if in, err = parseValues(args); err != nil {
			return fail(err)
		}
		out, err := p.Permute(in)
		if err != nil {
			return fail(err)
		}
		header(cmd.OutOrStdout(), p)
		for i, v := range out {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%2d] %s\n", i, color.YellowString(hex(v)))
		}
		return nil
	},
}

func init() {
	addInstanceFlags(katCmd)
	rootCmd.AddCommand(katCmd)
}
