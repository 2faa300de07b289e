package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vocdoni/zkhash"
)

var (
	verbose   bool
	primitive string
	fieldName string
	width     int
)

var rootCmd = &cobra.Command{
	Use:   "zkhash",
	Short: "zkhash evaluates arithmetization-oriented permutations",
	Long: `Evaluate Poseidon, Poseidon2, GMiMC and Neptune over BabyBear, Goldilocks,
BN254, BLS12-381, Pallas and Vesta: known-answer vectors, 2-to-1 compression,
Merkle roots and timings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		logger.Set(zerolog.New(out).Level(level).With().Timestamp().Logger())
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// addInstanceFlags registers the flags selecting a catalogued instance.
func addInstanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&primitive, "primitive", "p", string(zkhash.Poseidon), "permutation family (poseidon, poseidon2, gmimc, neptune)")
	cmd.Flags().StringVarP(&fieldName, "field", "f", "bn254", "prime field (babybear, goldilocks, bn254, bls12-381, pallas, vesta)")
	cmd.Flags().IntVarP(&width, "width", "t", 3, "state width")
}

func newPermutation() (zkhash.Permutation, error) {
	start := time.Now()
	p, err := zkhash.New(zkhash.Primitive(primitive), fieldName, width)
	if err != nil {
		return nil, err
	}
	log := logger.Logger()
	log.Debug().
		Str("instance", p.Instance().String()).
		Dur("took", time.Since(start)).
		Msg("parameters ready")
	return p, nil
}

// parseValues reads decimal or 0x-prefixed hexadecimal integers.
func parseValues(args []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(args))
	for i, s := range args {
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid value %q", s)
		}
		out[i] = v
	}
	return out, nil
}

func hex(v *big.Int) string {
	return "0x" + v.Text(16)
}

func header(w io.Writer, p zkhash.Permutation) {
	in := p.Instance()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s  %s over %s, t=%d, d=%d, rounds=%d/%d\n",
		color.BlueString("ℹ"), cyan(in.Primitive), cyan(in.Field), in.Width, in.Degree, in.FullRounds, in.PartialRounds)
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "%s✖  [ERROR] %s\n", color.RedString(""), err)
	return err
}
