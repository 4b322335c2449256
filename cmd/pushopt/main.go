// cmd/pushopt/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"pushopt/cmd/pushopt/commands"
	"pushopt/internal/errs"
)

const usage = `usage:
  pushopt run [-quiet] [N...]   sort and optimize the given permutation (or read it from stdin)
  pushopt gen [-n N] [-seed S] [-lo L] [-hi H]   print a random permutation of distinct integers
  pushopt bench [-min N] [-max N] [-step N] [-seed S] [-out DIR] [-ws URL]   sweep input sizes and write op_counts.csv, timings_us.csv
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run holds main's logic behind an (args, stdin, stdout, stderr) -> exit
// code signature so it can run both as the real binary and, via
// testscript.RunMain, as a golden-trace integration test subject.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	var err error
	switch cmd := args[0]; cmd {
	case "run":
		err = commands.Run(args[1:], stdin, stdout, stderr)
	case "gen":
		err = commands.Gen(args[1:], stdout)
	case "bench":
		err = commands.Bench(args[1:], stdout)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "pushopt: unknown command %q\n\n%s", cmd, usage)
		return 1
	}

	if err != nil {
		var usageErr *errs.UsageError
		if asUsageError(err, &usageErr) {
			fmt.Fprintf(stderr, "pushopt: %s\n", usageErr.Message)
		} else {
			fmt.Fprintf(stderr, "pushopt: %v\n", err)
		}
		return 1
	}
	return 0
}

func asUsageError(err error, target **errs.UsageError) bool {
	for err != nil {
		if ue, ok := err.(*errs.UsageError); ok {
			*target = ue
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
