package commands

import (
	"flag"
	"fmt"
	"io"

	"pushopt/internal/genseed"
	"pushopt/internal/reporting"
)

// Bench implements the `pushopt bench` subcommand: run the sort+optimize
// pipeline over a range of generated input sizes and write the resulting
// op-count and timing curves via reporting's plot sink.
func Bench(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	minN := fs.Int("min", 10, "smallest input size")
	maxN := fs.Int("max", 1000, "largest input size")
	step := fs.Int("step", 10, "input size step")
	seed := fs.Int64("seed", 1, "determinism seed")
	dir := fs.String("out", ".", "directory to write the <plot name>.csv files into")
	wsURL := fs.String("ws", "", "optional websocket URL to stream results to live")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *step <= 0 {
		return fmt.Errorf("bench: -step must be positive")
	}

	var sink *reporting.WebSocketSink
	if *wsURL != "" {
		s, err := reporting.DialWebSocketSink(*wsURL)
		if err != nil {
			return err
		}
		defer s.Close()
		sink = s
	}

	var opCounts, timings [][]float64
	for n := *minN; n <= *maxN; n += *step {
		values := genseed.Generate(n, *seed+int64(n))
		result, err := execute(values)
		if err != nil {
			return err
		}
		s := result.Summary
		opCounts = append(opCounts, []float64{float64(n), float64(s.BaseOps), float64(s.OptimizedOps)})
		timings = append(timings, []float64{float64(n), float64(s.SortTime.Microseconds()), float64(s.OptimizeTime.Microseconds())})

		sink.Send("bench_point", s)
		fmt.Fprintf(stdout, "n=%-6d base=%-6d optimized=%-6d saved=%d\n", n, s.BaseOps, s.OptimizedOps, s.Saved())
	}

	plots := []reporting.Plot{
		{Name: "op_counts", Desc: "n,base_ops,optimized_ops", Type: reporting.PlotSize, Rows: opCounts},
		{Name: "timings_us", Desc: "n,sort_us,optimize_us", Type: reporting.PlotSize, Rows: timings},
	}
	return reporting.CSVSink{Dir: *dir}.Write(plots)
}
