package main

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vocdoni/zkhash/merkle"
)

var numLeaves int

var merkleCmd = &cobra.Command{
	Use:   "merkle [leaves...]",
	Short: "Compute a Merkle root over the given leaves or over 0..n-1",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPermutation()
		if err != nil {
			return fail(err)
		}
		var leaves []*big.Int
		switch {
		case len(args) > 0:
			if leaves, err = parseValues(args); err != nil {
				return fail(err)
			}
		case numLeaves > 0:
			leaves = make([]*big.Int, numLeaves)
			for i := range leaves {
				leaves[i] = big.NewInt(int64(i))
			}
		default:
			return fail(errors.New("either leaves or --leaves is required"))
		}
		root, err := p.MerkleRoot(leaves)
		if err != nil {
			return fail(err)
		}
		header(cmd.OutOrStdout(), p)
		fmt.Fprintf(cmd.OutOrStdout(), "  leaves: %d (padded to %d, depth %d)\n", len(leaves), merkle.PaddedSize(len(leaves)), merkle.Depth(len(leaves)))
		fmt.Fprintf(cmd.OutOrStdout(), "%s✔  root %s\n", color.GreenString(""), color.YellowString(hex(root)))
		return nil
	},
}

func init() {
	addInstanceFlags(merkleCmd)
	merkleCmd.Flags().IntVarP(&numLeaves, "leaves", "n", 0, "hash the leaves 0..n-1")
	rootCmd.AddCommand(merkleCmd)
}
