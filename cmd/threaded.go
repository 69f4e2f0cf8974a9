package cmd

import (
	"github.com/spf13/cobra"
	"github.com/Heman10x-NGU/lockharness/internal/scenario"
)

var threadedCfg = scenario.DefaultConfig()

var threadedCmd = &cobra.Command{
	Use:   "threaded",
	Short: "Run worker goroutines that each increment a guarded counter once",
	Example: `  lockharness threaded
  lockharness threaded --workers 1000 --limit 16
  lockharness threaded --workers 10 --format json --output counter.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		if err := threadedCfg.Validate(); err != nil {
			return err
		}
		rep := &scenario.Report{Threaded: scenario.RunThreaded(cmd.Context(), threadedCfg)}
		return render(cmd, rep, nil)
	},
}

func init() {
	rootCmd.AddCommand(threadedCmd)
	addThreadedFlags(threadedCmd, &threadedCfg, "initial")
}
