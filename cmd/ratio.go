package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
)

var ratioGlobal bool

var ratioCmd = &cobra.Command{
	Use:   "ratio",
	Short: "Share of streams from solo tracks and features",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ratioGlobal {
			g, ok := analysis.GlobalSoloFeatureRatio(sess.Records())
			if !ok {
				return fmt.Errorf("total streams is 0")
			}
			if done, err := printJSON(cmd, g); done {
				return err
			}
			fmt.Fprintf(out, "solo: %.2f%%\nas feature: %.2f%%\nother: %.2f%%\n", g.SoloPct, g.FeaturePct, g.OtherPct)
			return nil
		}
		ratios := analysis.SoloFeatureRatios(sess.Records())
		if done, err := printJSON(cmd, ratios); done {
			return err
		}
		for _, r := range ratios {
			fmt.Fprintf(out, "%s: solo %.2f%%, feature %.2f%%\n", r.Name, r.SoloPct, r.FeaturePct)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratioCmd)
	ratioCmd.Flags().BoolVar(&ratioGlobal, "global", false, "dataset-wide split instead of per artist")
}
