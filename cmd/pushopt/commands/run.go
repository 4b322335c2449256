package commands

import (
	"flag"
	"fmt"
	"io"
	"time"

	"pushopt/internal/op"
	"pushopt/internal/peephole"
	"pushopt/internal/reporting"
	"pushopt/internal/sortdrv"
	"pushopt/internal/state"
)

// RunResult is what Run computed, returned so callers (the bench command,
// tests) can inspect it without re-parsing stdout.
type RunResult struct {
	Ops     []op.Op
	Summary reporting.Summary
}

// Run implements the `pushopt run` subcommand: sort the input, optimize
// the trace, and print the winning op sequence followed by the summary
// counts.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	quiet := fs.Bool("quiet", false, "suppress the summary line, print only ops")
	debug := fs.Bool("debug", false, "dump the tuner/optimizer configs and the run summary to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	values, err := ParseInput(fs.Args(), stdin)
	if err != nil {
		return err
	}

	sortCfg := sortdrv.DefaultConfig()
	peepCfg := peephole.DefaultConfig()
	if *debug {
		reporting.WriteDebug(stderr, "sort config", sortCfg)
		reporting.WriteDebug(stderr, "peephole config", peepCfg)
	}

	result, err := executeWithConfig(values, sortCfg, peepCfg)
	if err != nil {
		return err
	}

	for _, o := range result.Ops {
		fmt.Fprintln(stdout, o)
	}
	if *debug {
		reporting.WriteDebug(stderr, "summary", result.Summary)
	} else if !*quiet {
		reporting.WriteSummary(stderr, result.Summary)
	}
	return nil
}

// execute runs the full sort+optimize pipeline on values with default
// configs, shared by the bench subcommand and tests.
func execute(values []int) (RunResult, error) {
	return executeWithConfig(values, sortdrv.DefaultConfig(), peephole.DefaultConfig())
}

// executeWithConfig runs the full sort+optimize pipeline on values and
// gathers the RunResult, shared by the run and bench subcommands.
func executeWithConfig(values []int, sortCfg sortdrv.Config, peepCfg peephole.Config) (RunResult, error) {
	st := state.New(values)

	sortStart := time.Now()
	sortdrv.Sort(sortCfg, st)
	sortElapsed := time.Since(sortStart)
	baseOps := st.OpCount

	optStart := time.Now()
	result := peephole.Optimize(st, peepCfg, nil)
	optElapsed := time.Since(optStart)

	return RunResult{
		Ops: result.Ops,
		Summary: reporting.Summary{
			RunID:        reporting.NewRunID(),
			InputSize:    len(values),
			BaseOps:      baseOps,
			OptimizedOps: result.Final.OpCount,
			SortTime:     sortElapsed,
			OptimizeTime: optElapsed,
		},
	}, nil
}
