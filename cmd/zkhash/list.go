package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vocdoni/zkhash"
)

var (
	listPrimitive string
	listField     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalogued instances",
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-11s %5s %3s %4s %5s\n", "PRIMITIVE", "FIELD", "T", "D", "R_F", "R_P")
		n := 0
		for _, in := range zkhash.Instances() {
			if listPrimitive != "" && string(in.Primitive) != listPrimitive {
				continue
			}
			if listField != "" && in.Field != listField {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-11s %5d %3d %4d %5d\n", cyan(fmt.Sprintf("%-10s", in.Primitive)), in.Field, in.Width, in.Degree, in.FullRounds, in.PartialRounds)
			n++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d instances\n", n)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listPrimitive, "primitive", "p", "", "only list this family")
	listCmd.Flags().StringVarP(&listField, "field", "f", "", "only list this field")
	rootCmd.AddCommand(listCmd)
}
