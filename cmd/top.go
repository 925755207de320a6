package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

var topCmd = &cobra.Command{
	Use:   "top [n] <attribute>",
	Short: "Top n artists by an attribute (stable, highest first)",
	Long:  "Top n artists by an attribute. Without n, the top_n config value is used.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := rankLen(args[:len(args)-1])
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		name := args[len(args)-1]
		attr, ok := dataset.ParseAttribute(name)
		if !ok {
			// ranks by a zero key, i.e. input order
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: unknown attribute %q, keeping input order\n", name)
			attr = dataset.Attribute(name)
		}
		return printRanking(cmd, analysis.TopN(sess.Records(), n, attr))
	},
}

var gapCmd = &cobra.Command{
	Use:   "gap [n]",
	Short: "Top n artists by |as lead - as feature|",
	Long:  "Top n artists by |as lead - as feature|. Without n, the top_n config value is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := rankLen(args)
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		return printRanking(cmd, analysis.TopGapLeadFeature(sess.Records(), n))
	},
}

// rankLen reads the optional leading n, falling back to cfg.TopN.
func rankLen(args []string) (int, error) {
	if len(args) == 0 {
		return cfg.TopN, nil
	}
	return intArg(args, 0, "n")
}

func printRanking(cmd *cobra.Command, ranked []analysis.Ranked) error {
	if ok, err := printJSON(cmd, ranked); ok {
		return err
	}
	out := cmd.OutOrStdout()
	if len(ranked) == 0 {
		fmt.Fprintln(out, "(no records)")
		return nil
	}
	for i, r := range ranked {
		fmt.Fprintf(out, "%d. %s: %s\n", i+1, r.Record.Name, num(r.Score))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(gapCmd)
}
