package tracer

import (
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/exp/trace"
)

// Summary is a coarse description of one recorded trace.
type Summary struct {
	TraceFile         string
	DurationMs        int64
	Events            int
	GoroutinesCreated int
	// SyncBlocks counts goroutines parking on a sync primitive, e.g. a
	// worker waiting for the guarded mutex.
	SyncBlocks int
	// Regions counts region begins by region type ("chain", "threaded").
	Regions map[string]int
	Tasks   []string
}

// Summarize reads the trace at path.
func Summarize(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := trace.NewReader(f)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		TraceFile: path,
		Regions:   make(map[string]int),
	}
	var firstTime, lastTime trace.Time
	first := true

	for {
		ev, err := r.ReadEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("warn: read event: %v", err)
			break
		}

		if first {
			firstTime = ev.Time()
			first = false
		}
		lastTime = ev.Time()
		s.Events++

		switch ev.Kind() {
		case trace.EventRegionBegin:
			s.Regions[ev.Region().Type]++
		case trace.EventTaskBegin:
			s.Tasks = append(s.Tasks, ev.Task().Type)
		case trace.EventStateTransition:
			st := ev.StateTransition()
			if st.Resource.Kind != trace.ResourceGoroutine {
				continue
			}
			from, to := st.Goroutine()
			if from == trace.GoNotExist && to != trace.GoNotExist {
				s.GoroutinesCreated++
			}
			if from.Executing() && to == trace.GoWaiting && st.Reason == "sync" {
				s.SyncBlocks++
			}
		}
	}

	s.DurationMs = (time.Duration(lastTime-firstTime) * time.Nanosecond).Milliseconds()
	return s, nil
}
