package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress <a> <b>",
	Short: "Compress two field elements into one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPermutation()
		if err != nil {
			return fail(err)
		}
		in, err := parseValues(args)
		if err != nil {
			return fail(err)
		}
		out, err := p.Compress(in[0], in[1])
		if err != nil {
			return fail(err)
		}
		header(cmd.OutOrStdout(), p)
		fmt.Fprintf(cmd.OutOrStdout(), "%s✔  %s\n", color.GreenString(""), color.YellowString(hex(out)))
		return nil
	},
}

func init() {
	addInstanceFlags(compressCmd)
	rootCmd.AddCommand(compressCmd)
}
