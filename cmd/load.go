package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

var loadShowDiagnostics bool

var loadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Import a dataset and report imported/skipped rows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.DataFile = args[0]
		}
		if err := ensureLoaded(); err != nil {
			return err
		}
		rep := sess.Report()
		if ok, err := printJSON(cmd, rep); ok {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Imported %d artist(s) from %s (skipped %d, load %s)\n",
			rep.Imported, cfg.DataFile, rep.Skipped, sess.LoadID())
		if rep.Header {
			fmt.Fprintln(out, "Header row detected")
		} else {
			fmt.Fprintln(out, "No header row: positional columns")
		}
		if len(rep.Diagnostics) == 0 {
			return nil
		}
		fmt.Fprintf(out, "%d warning(s), %d error(s)\n",
			rep.Count(dataset.LevelWarning), rep.Count(dataset.LevelError))
		if !loadShowDiagnostics {
			fmt.Fprintln(out, "Diagnostics written to the log; use --diagnostics to list them")
			return nil
		}
		for _, d := range rep.Diagnostics {
			fmt.Fprintf(out, "- %s\n", d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadShowDiagnostics, "diagnostics", false, "list row diagnostics")
}
