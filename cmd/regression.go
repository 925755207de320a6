package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/analysis"
)

var (
	regPlot   bool
	regWidth  int
	regHeight int
)

type regressionResult struct {
	X         string              `json:"x"`
	Y         string              `json:"y"`
	Fit       analysis.Regression `json:"fit"`
	Residuals analysis.Summary    `json:"residuals"`
	Plot      []string            `json:"plot,omitempty"`
}

var regressionCmd = &cobra.Command{
	Use:   "regression <x> <y>",
	Short: "Least squares fit y = a*x + b between two attributes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		x, err := attributeValues(args[0])
		if err != nil {
			return err
		}
		y, err := attributeValues(args[1])
		if err != nil {
			return err
		}
		res := regressionResult{X: args[0], Y: args[1], Fit: analysis.LinearRegression(x, y)}
		res.Residuals = analysis.Describe(analysis.Residuals(x, y, res.Fit))
		if regPlot {
			w, h := cfg.PlotWidth, cfg.PlotHeight
			if cmd.Flags().Changed("width") {
				w = regWidth
			}
			if cmd.Flags().Changed("height") {
				h = regHeight
			}
			res.Plot = analysis.RegressionASCIIPlot(x, y, res.Fit.Slope, res.Fit.Intercept, w, h)
		}
		if ok, err := printJSON(cmd, res); ok {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s = a*%s + b\n  a  = %s\n  b  = %s\n  r2 = %s\n", args[1], args[0], num(res.Fit.Slope), num(res.Fit.Intercept), num(res.Fit.R2))
		r := res.Residuals
		fmt.Fprintf(out, "residuals: mean %s, std %s, min %s, max %s\n", num(r.Mean), num(r.StdDev), num(r.Min), num(r.Max))
		if len(res.Plot) > 0 {
			for _, line := range res.Plot {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, analysis.PlotLegend)
		}
		return nil
	},
}

var correlationCmd = &cobra.Command{
	Use:   "correlation <x> <y>",
	Short: "Pearson correlation between two attributes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureLoaded(); err != nil {
			return err
		}
		x, err := attributeValues(args[0])
		if err != nil {
			return err
		}
		y, err := attributeValues(args[1])
		if err != nil {
			return err
		}
		r := analysis.Pearson(x, y)
		if ok, err := printJSON(cmd, map[string]float64{"r": r}); ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "r(%s, %s) = %s\n", args[0], args[1], num(r))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regressionCmd, correlationCmd)
	regressionCmd.Flags().BoolVar(&regPlot, "plot", false, "draw an ASCII scatter plot with the fitted line")
	regressionCmd.Flags().IntVar(&regWidth, "width", 60, "plot width (overrides plot_width)")
	regressionCmd.Flags().IntVar(&regHeight, "height", 20, "plot height (overrides plot_height)")
}
