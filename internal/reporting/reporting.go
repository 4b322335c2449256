// Package reporting formats and emits the run summary, optional numeric
// plots, and an optional live feed of the optimizer's progress. None of
// it touches core semantics: the core exposes op_count and
// history_length and this package is purely a presentation layer over
// those numbers.
package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kr/pretty"
	"github.com/kr/text"
	"github.com/mattn/go-isatty"

	"pushopt/internal/errs"
)

// Summary is the end-of-run report: input size, the base and optimized
// op counts, and how long each phase took.
type Summary struct {
	RunID        uuid.UUID
	InputSize    int
	BaseOps      int
	OptimizedOps int
	SortTime     time.Duration
	OptimizeTime time.Duration
}

// Saved reports how many ops the peephole pass removed, and 0 when there
// was nothing to remove (BaseOps == 0, e.g. an already-sorted input).
func (s Summary) Saved() int {
	return s.BaseOps - s.OptimizedOps
}

// WriteSummary writes a human-readable summary to w. When w is a
// terminal (detected via go-isatty) the size and op counts are rendered with
// go-humanize's comma grouping; piped output stays plain for scripts that
// parse it.
func WriteSummary(w io.Writer, s Summary) {
	human := false
	if f, ok := w.(*os.File); ok {
		human = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	fmtInt := strconv.Itoa
	if human {
		fmtInt = func(n int) string { return humanize.Comma(int64(n)) }
	}

	fmt.Fprintf(w, "run %s\n", s.RunID)
	fmt.Fprintf(w, "input size:     %s\n", fmtInt(s.InputSize))
	fmt.Fprintf(w, "base ops:       %s (%s)\n", fmtInt(s.BaseOps), s.SortTime)
	fmt.Fprintf(w, "optimized ops:  %s (%s)\n", fmtInt(s.OptimizedOps), s.OptimizeTime)
	fmt.Fprintf(w, "saved:          %s\n", fmtInt(s.Saved()))
}

// WriteDebug pretty-prints v to w, indented one level, for verbose-mode
// diagnostics (e.g. dumping a Config or an intermediate Split).
func WriteDebug(w io.Writer, label string, v any) {
	indented := text.Indent(fmt.Sprintf("%# v", pretty.Formatter(v)), "    ")
	fmt.Fprintf(w, "%s:\n%s\n", label, indented)
}

// PlotType distinguishes a plot's element type, mirroring the original
// draft's PLOT_FLOAT / PLOT_SIZE distinction (original_source/src/quicksort
// /data.c's quicksort_write_plots).
type PlotType int

const (
	PlotFloat PlotType = iota
	PlotSize
)

// Plot is a named 2-D array with a one-line description, the unit a plot
// sink writes out.
type Plot struct {
	Name string
	Desc string
	Type PlotType
	Rows [][]float64 // for PlotSize rows, values are integral but stored as float64
}

// CSVSink writes each plot to its own CSV file under dir, one row per
// line, matching the layout of original_source's quicksort_write_plots
// (description line, then the data grid) but via encoding/csv instead of
// hand-rolled fwrite/sprintf calls.
type CSVSink struct {
	Dir string
}

// Write emits one "<dir>/<name>.csv" file per plot.
func (s CSVSink) Write(plots []Plot) error {
	for _, p := range plots {
		if err := s.writeOne(p); err != nil {
			return fmt.Errorf("reporting: writing plot %q: %w", p.Name, err)
		}
	}
	return nil
}

func (s CSVSink) writeOne(p Plot) error {
	f, err := os.Create(fmt.Sprintf("%s/%s.csv", s.Dir, p.Name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, p.Desc); err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	for _, row := range p.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			if p.Type == PlotSize {
				record[i] = strconv.FormatInt(int64(v), 10)
			} else {
				record[i] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// event is the wire shape of a WebSocketSink message.
type event struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// WebSocketSink streams progress events (e.g. the bench command's
// per-size summaries) to a connected visualizer. Optional: a nil *WebSocketSink is
// a valid no-op sink via its zero-value-safe Send.
type WebSocketSink struct {
	conn *websocket.Conn
}

// DialWebSocketSink connects to a visualizer listening at url.
func DialWebSocketSink(url string) (*WebSocketSink, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("reporting: dialing websocket sink: %w", err)
	}
	return &WebSocketSink{conn: conn}, nil
}

// Send marshals (kind, payload) as JSON and writes it as one text frame.
// A nil sink or nil connection is a silent no-op, so callers don't need
// to guard every call site on whether a sink was configured.
func (s *WebSocketSink) Send(kind string, payload any) error {
	if s == nil || s.conn == nil {
		return nil
	}
	buf, err := json.Marshal(event{Kind: kind, Payload: payload})
	if err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, buf)
}

// Close closes the underlying connection, if any.
func (s *WebSocketSink) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// NewRunID allocates a fresh run identifier for a Summary.
func NewRunID() uuid.UUID {
	id, err := uuid.NewRandom()
	errs.Assert(err == nil, "reporting: uuid.NewRandom failed: %v", err)
	return id
}
