package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Heman10x-NGU/lockharness/internal/scenario"
	"github.com/Heman10x-NGU/lockharness/internal/tracer"
)

type jsonChain struct {
	Depth           int    `json:"depth"`
	Runs            int    `json:"runs"`
	Initial         int    `json:"initial"`
	Final           int    `json:"final"`
	Multiplications int    `json:"multiplications"`
	LockHeld        bool   `json:"lock_held"`
	Error           string `json:"error,omitempty"`
}

type jsonThreaded struct {
	Workers  int    `json:"workers"`
	Limit    int    `json:"limit,omitempty"`
	Initial  int    `json:"initial"`
	Final    int    `json:"final"`
	Expected int    `json:"expected"`
	Failures int    `json:"failures"`
	Error    string `json:"error,omitempty"`
}

type jsonTrace struct {
	TraceFile         string         `json:"trace_file"`
	DurationMs        int64          `json:"duration_ms"`
	Events            int            `json:"events"`
	GoroutinesCreated int            `json:"goroutines_created"`
	SyncBlocks        int            `json:"sync_blocks"`
	Regions           map[string]int `json:"regions,omitempty"`
}

type jsonReport struct {
	OK       bool          `json:"ok"`
	Chain    *jsonChain    `json:"chain,omitempty"`
	Threaded *jsonThreaded `json:"threaded,omitempty"`
	Trace    *jsonTrace    `json:"trace,omitempty"`
}

// WriteJSON writes the report as indented JSON. summary may be nil.
func WriteJSON(w io.Writer, rep *scenario.Report, summary *tracer.Summary) error {
	out := jsonReport{OK: !rep.Failed()}

	if c := rep.Chain; c != nil {
		out.Chain = &jsonChain{
			Depth:           c.Depth,
			Runs:            c.Runs,
			Initial:         c.Initial,
			Final:           c.Final,
			Multiplications: c.Multiplications,
			LockHeld:        c.LockHeld,
			Error:           errString(c.Err),
		}
	}
	if t := rep.Threaded; t != nil {
		out.Threaded = &jsonThreaded{
			Workers:  t.Workers,
			Limit:    t.Limit,
			Initial:  t.Initial,
			Final:    t.Final,
			Expected: t.Expected,
			Failures: t.Failures,
			Error:    errString(t.Err),
		}
	}
	if summary != nil {
		out.Trace = &jsonTrace{
			TraceFile:         summary.TraceFile,
			DurationMs:        summary.DurationMs,
			Events:            summary.Events,
			GoroutinesCreated: summary.GoroutinesCreated,
			SyncBlocks:        summary.SyncBlocks,
			Regions:           summary.Regions,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
