package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

var (
	probaThreshold float64
	probaCondN     int
)

var probaCmd = &cobra.Command{
	Use:   "proba",
	Short: "Empirical probabilities over the dataset",
}

var probaTopCmd = &cobra.Command{
	Use:   "top <n> <attribute>",
	Short: "P(a uniformly drawn artist is in the top n)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := intArg(args, 0, "n")
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		p := analysis.ProbaTopN(sess.Records(), n, dataset.Attribute(args[1]))
		return printProba(cmd, fmt.Sprintf("P(top %d by %s)", n, args[1]), p)
	},
}

var probaSoloCmd = &cobra.Command{
	Use:   "solo",
	Short: "P(solo/streams > threshold)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		thr := cfg.SoloThreshold
		if cmd.Flags().Changed("threshold") {
			thr = probaThreshold
		}
		p := analysis.ProbaBySoloRatio(sess.Records(), thr)
		return printProba(cmd, fmt.Sprintf("P(solo/streams > %s)", num(thr)), p)
	},
}

var probaCondTopCmd = &cobra.Command{
	Use:   "condtop <streams-threshold>",
	Short: "P(top n by daily | streams > threshold)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		thr, err := floatArg(args, 0, "streams threshold")
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		n := cfg.CondTopN
		if cmd.Flags().Changed("n") {
			n = probaCondN
		}
		p := analysis.ProbaCondTopNDailyGivenHighStreams(sess.Records(), thr, n)
		return printProba(cmd, fmt.Sprintf("P(top %d daily | streams > %s)", n, num(thr)), p)
	},
}

func printProba(cmd *cobra.Command, label string, p float64) error {
	if ok, err := printJSON(cmd, map[string]any{"query": label, "probability": p}); ok {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", label, num(p))
	return nil
}

func init() {
	rootCmd.AddCommand(probaCmd)
	probaCmd.AddCommand(probaTopCmd, probaSoloCmd, probaCondTopCmd)
	probaSoloCmd.Flags().Float64Var(&probaThreshold, "threshold", 0.70, "solo/streams threshold (overrides solo_threshold)")
	probaCondTopCmd.Flags().IntVar(&probaCondN, "n", 10, "size of the daily top set (overrides cond_top_n)")
}
