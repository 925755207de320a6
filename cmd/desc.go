package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
)

var descPopulation bool

var descCmd = &cobra.Command{
	Use:   "desc <stat> <attribute>",
	Short: "Descriptive statistic of one attribute",
	Long: `Compute one descriptive statistic of an attribute.

stat: mean | median | mode | min | max | amplitude | variance | stddev | all
attribute: streams | daily | solo | aslead | asfeature`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		vals, err := attributeValues(args[1])
		if err != nil {
			return err
		}
		sample := !descPopulation
		out := cmd.OutOrStdout()
		var v float64
		switch strings.ToLower(args[0]) {
		case "mean":
			v = analysis.Mean(vals)
		case "median":
			v = analysis.Median(vals)
		case "min":
			v = analysis.Min(vals)
		case "max":
			v = analysis.Max(vals)
		case "amplitude", "range":
			v = analysis.Amplitude(vals)
		case "variance", "var":
			v = analysis.Variance(vals, sample)
		case "stddev", "std":
			v = analysis.StdDev(vals, sample)
		case "mode":
			modes := analysis.Mode(vals)
			if ok, err := printJSON(cmd, modes); ok {
				return err
			}
			parts := make([]string, len(modes))
			for i, m := range modes {
				parts[i] = num(m)
			}
			fmt.Fprintf(out, "mode(%s) = {%s}\n", args[1], strings.Join(parts, ", "))
			return nil
		case "all":
			s := analysis.Describe(vals)
			if descPopulation {
				s.Variance = analysis.Variance(vals, false)
				s.StdDev = analysis.StdDev(vals, false)
			}
			if ok, err := printJSON(cmd, s); ok {
				return err
			}
			fmt.Fprintf(out, "%s (n=%d)\n", args[1], s.Count)
			fmt.Fprintf(out, "  mean      %s\n  median    %s\n  min       %s\n  max       %s\n  amplitude %s\n  variance  %s\n  stddev    %s\n",
				num(s.Mean), num(s.Median), num(s.Min), num(s.Max), num(s.Amplitude), num(s.Variance), num(s.StdDev))
			fmt.Fprintf(out, "  modes     %d value(s)\n", len(s.Modes))
			return nil
		default:
			return fmt.Errorf("unknown statistic %q", args[0])
		}
		if ok, err := printJSON(cmd, map[string]float64{strings.ToLower(args[0]): v}); ok {
			return err
		}
		fmt.Fprintf(out, "%s(%s) = %s\n", strings.ToLower(args[0]), args[1], num(v))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(descCmd)
	descCmd.Flags().BoolVar(&descPopulation, "population", false, "use the population (n) denominator for variance/stddev")
}
