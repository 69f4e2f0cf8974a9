package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/Heman10x-NGU/lockharness/internal/scenario"
	"github.com/Heman10x-NGU/lockharness/internal/tracer"
)

var (
	allCfg   = scenario.DefaultConfig()
	traceCfg = scenario.DefaultConfig()

	flagNoSummary bool
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the chain scenario, then the threaded scenario",
	Example: `  lockharness all
  lockharness all --depth 5 --workers 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		rep, err := scenario.RunAll(cmd.Context(), allCfg)
		if err != nil {
			return err
		}
		return render(cmd, rep, nil)
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace [trace.out]",
	Short: "Run all scenarios under runtime/trace and write the execution trace",
	Long: `Trace runs the same sequence as 'all' with execution tracing enabled and
writes the trace to the given file (a temp file if omitted). The trace is then
read back and summarized.`,
	Example: `  lockharness trace ./lock.trace
  lockharness trace --workers 50 --no-summary`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(allCmd, traceCmd)
	for _, c := range []struct {
		cmd *cobra.Command
		cfg *scenario.Config
	}{{allCmd, &allCfg}, {traceCmd, &traceCfg}} {
		addChainFlags(c.cmd, c.cfg)
		addThreadedFlags(c.cmd, c.cfg, "counter-initial")
	}
	traceCmd.Flags().BoolVar(&flagNoSummary, "no-summary", false, "Skip reading the trace back after recording")
}

func runTrace(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	if err := traceCfg.Validate(); err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := tracer.TempTraceFile()
		if err != nil {
			return fmt.Errorf("create trace file: %w", err)
		}
		path = p
	}

	var rep *scenario.Report
	err := tracer.Record(path, func(ctx context.Context) error {
		var err error
		rep, err = scenario.RunAll(ctx, traceCfg)
		return err
	})
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Trace written to %s\n", path)

	var summary *tracer.Summary
	if !flagNoSummary {
		s, err := tracer.Summarize(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warn: summarize trace: %v\n", err)
		} else {
			summary = s
		}
	}
	return render(cmd, rep, summary)
}
