package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
)

const alpha = 0.05

var icCmd = &cobra.Command{
	Use:   "ic",
	Short: "95% confidence intervals (normal approximation)",
}

type interval struct {
	Estimate  float64 `json:"estimate"`
	HalfWidth float64 `json:"half_width"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	N         int     `json:"n"`
}

var icMeanCmd = &cobra.Command{
	Use:   "mean <attribute>",
	Short: "Confidence interval of an attribute's mean",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		vals, err := attributeValues(args[0])
		if err != nil {
			return err
		}
		m := analysis.Mean(vals)
		h := analysis.ConfidenceIntervalMean(vals, alpha)
		return printInterval(cmd, fmt.Sprintf("mean(%s)", args[0]), interval{Estimate: m, HalfWidth: h, Low: m - h, High: m + h, N: len(vals)})
	},
}

var icPropCmd = &cobra.Command{
	Use:   "prop <attribute> <threshold>",
	Short: "Confidence interval of P(attribute > threshold)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		thr, err := floatArg(args, 1, "threshold")
		if err != nil {
			return err
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		vals, err := attributeValues(args[0])
		if err != nil {
			return err
		}
		k := analysis.CountAbove(vals, thr)
		p := float64(k) / float64(len(vals))
		h := analysis.ConfidenceIntervalProportion(k, len(vals), alpha)
		return printInterval(cmd, fmt.Sprintf("P(%s > %s)", args[0], num(thr)), interval{Estimate: p, HalfWidth: h, Low: p - h, High: p + h, N: len(vals)})
	},
}

func printInterval(cmd *cobra.Command, label string, iv interval) error {
	if ok, err := printJSON(cmd, iv); ok {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s ± %s  [%s, %s]  (n=%d, z=%.2f)\n",
		label, num(iv.Estimate), num(iv.HalfWidth), num(iv.Low), num(iv.High), iv.N, analysis.Z95)
	return nil
}

func init() {
	rootCmd.AddCommand(icCmd)
	icCmd.AddCommand(icMeanCmd, icPropCmd)
}
