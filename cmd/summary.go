package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
)

var (
	sumCorr       bool
	sumOutliers   bool
	sumOutlierThr float64
	sumTop        int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize every attribute of the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.Correlations = sumCorr
		opt.Outliers = sumOutliers
		if sumOutlierThr > 0 {
			opt.OutlierThreshold = sumOutlierThr
		}
		if sumTop > 0 {
			opt.TopStreams = sumTop
		}
		rep := analysis.Summarize(filepath.Base(cfg.DataFile), sess.Records(), sess.Report(), opt)
		if ok, err := printJSON(cmd, rep); ok {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rep.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&sumCorr, "correlations", false, "include the Pearson correlation pairs")
	summaryCmd.Flags().BoolVar(&sumOutliers, "outliers", false, "count robust-z (MAD) outliers per attribute")
	summaryCmd.Flags().Float64Var(&sumOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for --outliers")
	summaryCmd.Flags().IntVar(&sumTop, "top", 3, "length of the streams leaderboard")
}
