package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Hypothesis tests",
}

type testResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

var testPropCmd = &cobra.Command{
	Use:   "prop <attribute> <threshold> <p0>",
	Short: "One-sample z test of P(attribute > threshold) = p0",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		thr, err := floatArg(args, 1, "threshold")
		if err != nil {
			return err
		}
		p0, err := floatArg(args, 2, "p0")
		if err != nil {
			return err
		}
		if p0 <= 0 || p0 >= 1 {
			return fmt.Errorf("p0 must be in (0, 1), got %s", num(p0))
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		vals, err := attributeValues(args[0])
		if err != nil {
			return err
		}
		z := analysis.TestProportion(analysis.CountAbove(vals, thr), len(vals), p0)
		return printTest(cmd, fmt.Sprintf("z(P(%s > %s) = %s)", args[0], num(thr), num(p0)), z)
	},
}

var testWelchCmd = &cobra.Command{
	Use:   "welch [x y]",
	Short: "Welch t statistic comparing two attributes' means (default solo vs asfeature)",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("welch needs two attributes or none")
		}
		xName, yName := "solo", "asfeature"
		if len(args) == 2 {
			xName, yName = args[0], args[1]
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		x, err := attributeValues(xName)
		if err != nil {
			return err
		}
		y, err := attributeValues(yName)
		if err != nil {
			return err
		}
		t := analysis.TTestTwoMeans(x, y)
		return printTest(cmd, fmt.Sprintf("t(%s vs %s)", xName, yName), t)
	},
}

// printTest reports the statistic with its normal two-sided p-value.
func printTest(cmd *cobra.Command, label string, stat float64) error {
	res := testResult{Statistic: stat, PValue: analysis.PValueTwoSided(stat)}
	if ok, err := printJSON(cmd, res); ok {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s  (p≈%s, normal approximation)\n", label, num(res.Statistic), num(res.PValue))
	return nil
}

func init() {
	rootCmd.AddCommand(testCmd)
	testCmd.AddCommand(testPropCmd, testWelchCmd)
}
