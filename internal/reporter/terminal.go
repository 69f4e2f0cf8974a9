package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/Heman10x-NGU/lockharness/internal/scenario"
	"github.com/Heman10x-NGU/lockharness/internal/tracer"
)

var (
	bold      = color.New(color.Bold)
	red       = color.New(color.FgRed, color.Bold)
	cyan      = color.New(color.FgCyan)
	green     = color.New(color.FgGreen)
	dim       = color.New(color.Faint)
	separator = strings.Repeat("━", 40)
)

// WriteTerminal writes a human-readable colored report to w. summary may be nil.
func WriteTerminal(w io.Writer, rep *scenario.Report, summary *tracer.Summary) {
	bold.Fprintln(w, "\nLock Harness")
	fmt.Fprintln(w, separator)

	if rep.Chain != nil {
		fmt.Fprintln(w)
		printChain(w, rep.Chain)
	}
	if rep.Threaded != nil {
		fmt.Fprintln(w)
		printThreaded(w, rep.Threaded)
	}
	if summary != nil {
		fmt.Fprintln(w)
		printSummary(w, summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, separator)
	if rep.Failed() {
		red.Fprintln(w, "  FAIL")
	} else {
		green.Fprintln(w, "  ok")
	}
	fmt.Fprintln(w)
}

func printChain(w io.Writer, c *scenario.ChainReport) {
	status(w, c.Err == nil, "RECURSIVE LOCK CHAIN")
	field(w, "Depth", c.Depth)
	field(w, "Pairs run", c.Runs)
	field(w, "Accumulator", fmt.Sprintf("%d -> %d", c.Initial, c.Final))
	field(w, "Multiplications", c.Multiplications)
	if c.LockHeld {
		fmt.Fprintf(w, "  Lock: ")
		red.Fprintln(w, "held")
	} else {
		field(w, "Lock", "released")
	}
	if c.Err != nil {
		fmt.Fprintf(w, "  Error: ")
		red.Fprintln(w, c.Err)
	}
}

func printThreaded(w io.Writer, t *scenario.ThreadedReport) {
	status(w, t.OK(), "THREADED INCREMENT")
	field(w, "Workers", t.Workers)
	if t.Limit > 0 {
		field(w, "Limit", t.Limit)
	}
	field(w, "Counter", fmt.Sprintf("%d -> %d (expected %d)", t.Initial, t.Final, t.Expected))
	if t.Failures > 0 {
		fmt.Fprintf(w, "  Failed workers: ")
		red.Fprintln(w, t.Failures)
	}
	if t.Err != nil {
		fmt.Fprintln(w, "  Errors:")
		for _, line := range strings.Split(t.Err.Error(), "\n") {
			dim.Fprintf(w, "    %s\n", line)
		}
	}
}

func printSummary(w io.Writer, s *tracer.Summary) {
	bold.Fprintln(w, "● TRACE")
	field(w, "File", s.TraceFile)
	field(w, "Events", s.Events)
	field(w, "Goroutines created", s.GoroutinesCreated)
	field(w, "Sync blocks", s.SyncBlocks)
	field(w, "Regions", fmt.Sprintf("chain=%d threaded=%d", s.Regions["chain"], s.Regions["threaded"]))
	dim.Fprintf(w, "  %dms window\n", s.DurationMs)
}

func status(w io.Writer, ok bool, title string) {
	if ok {
		green.Fprintf(w, "● %s\n", title)
	} else {
		red.Fprintf(w, "● %s\n", title)
	}
}

func field(w io.Writer, name string, v any) {
	fmt.Fprintf(w, "  %s: ", name)
	cyan.Fprintf(w, "%v\n", v)
}
