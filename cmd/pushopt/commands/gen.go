package commands

import (
	"flag"
	"fmt"
	"io"

	"pushopt/internal/genseed"
)

// Gen implements the `pushopt gen` subcommand: print a random permutation
// of distinct integers, one per line, for piping into `pushopt run` or
// into a file for repeated benchmarking, with an optional seed for
// reproducible input generation.
func Gen(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	n := fs.Int("n", 100, "how many distinct integers to generate")
	seed := fs.Int64("seed", 1, "determinism seed")
	lo := fs.Int("lo", 0, "lower bound of the value range (inclusive)")
	hi := fs.Int("hi", 0, "upper bound of the value range (exclusive); 0 means lo+n")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var values []int
	if *hi == 0 {
		values = genseed.GenerateRange(*n, *lo, *lo+*n, *seed)
	} else {
		values = genseed.GenerateRange(*n, *lo, *hi, *seed)
	}

	for _, v := range values {
		fmt.Fprintln(stdout, v)
	}
	return nil
}
