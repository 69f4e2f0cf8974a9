// Package tracer records Go execution traces of the lock scenarios and reads
// them back into a short summary.
package tracer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/trace"
)

// TaskName is the runtime/trace task wrapping a recorded run.
const TaskName = "lockharness"

// Record writes an execution trace of fn to path. fn receives a context
// carrying the TaskName task so regions started from it are attributed to
// the run. The trace is stopped and the file closed even if fn fails or
// panics.
func Record(path string, fn func(ctx context.Context) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close trace file: %w", cerr)
		}
	}()

	if err := trace.Start(f); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}

	defer trace.Stop()

	ctx, task := trace.NewTask(context.Background(), TaskName)
	defer task.End()

	return fn(ctx)
}

// TempTraceFile returns the path of a new, empty file in the temp dir.
func TempTraceFile() (string, error) {
	f, err := os.CreateTemp(os.TempDir(), "lockharness-*.out")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", errors.Join(err, os.Remove(name))
	}
	return filepath.Clean(name), nil
}
