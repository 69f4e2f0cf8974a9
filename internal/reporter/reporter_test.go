package reporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"

	"github.com/Heman10x-NGU/lockharness/internal/scenario"
	"github.com/Heman10x-NGU/lockharness/internal/tracer"
)

func okReport() *scenario.Report {
	return &scenario.Report{
		Chain: &scenario.ChainReport{
			Depth:           5,
			Runs:            1,
			Initial:         1,
			Final:           14400,
			Multiplications: 10,
		},
		Threaded: &scenario.ThreadedReport{
			Workers:  2,
			Final:    2,
			Expected: 2,
		},
	}
}

func failedReport() (*scenario.Report, *tracer.Summary) {
	rep := &scenario.Report{
		Chain: &scenario.ChainReport{
			Depth:           2,
			Initial:         1,
			Final:           2,
			Multiplications: 2,
			LockHeld:        true,
			Err:             errors.New("run 1: descend: boom"),
		},
		Threaded: &scenario.ThreadedReport{
			Workers:  3,
			Limit:    1,
			Final:    2,
			Expected: 3,
			Failures: 1,
			Err:      errors.New("worker 1 failed: injected"),
		},
	}
	sum := &tracer.Summary{
		TraceFile:         "trace.out",
		DurationMs:        12,
		Events:            340,
		GoroutinesCreated: 4,
		SyncBlocks:        1,
		Regions:           map[string]int{"chain": 1, "threaded": 1},
	}
	return rep, sum
}

func withoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestWriteTerminal(t *testing.T) {
	withoutColor(t)
	g := goldie.New(t)

	var buf bytes.Buffer
	WriteTerminal(&buf, okReport(), nil)
	g.Assert(t, "terminal_ok", buf.Bytes())

	buf.Reset()
	rep, sum := failedReport()
	WriteTerminal(&buf, rep, sum)
	g.Assert(t, "terminal_failed", buf.Bytes())
}

func TestWriteJSON(t *testing.T) {
	rep, sum := failedReport()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rep, sum); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.OK {
		t.Error("ok = true for a failed report")
	}
	if got.Chain == nil || !got.Chain.LockHeld || got.Chain.Error != "run 1: descend: boom" {
		t.Errorf("chain = %+v", got.Chain)
	}
	if got.Threaded == nil || got.Threaded.Failures != 1 || got.Threaded.Expected != 3 {
		t.Errorf("threaded = %+v", got.Threaded)
	}
	if got.Trace == nil || got.Trace.Regions["threaded"] != 1 {
		t.Errorf("trace = %+v", got.Trace)
	}
}

func TestWriteJSON_OmitsTrace(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, okReport(), nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got["trace"]; ok {
		t.Error("trace key present without a summary")
	}
	if got["ok"] != true {
		t.Errorf("ok = %v, want true", got["ok"])
	}
}
