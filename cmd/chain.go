package cmd

import (
	"github.com/spf13/cobra"
	"github.com/Heman10x-NGU/lockharness/internal/scenario"
)

var chainCfg = scenario.DefaultConfig()

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Run the recursive lock chain (descend locks, ascend unlocks)",
	Example: `  lockharness chain
  lockharness chain --depth 8 --initial 2
  lockharness chain --chain-runs 3 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		if err := chainCfg.Validate(); err != nil {
			return err
		}
		rep := &scenario.Report{Chain: scenario.RunChain(cmd.Context(), chainCfg)}
		return render(cmd, rep, nil)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	addChainFlags(chainCmd, &chainCfg)
}
