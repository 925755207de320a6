package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/streamstats-cli/internal/config"
	"github.com/KaramelBytes/streamstats-cli/internal/logger"
	"github.com/KaramelBytes/streamstats-cli/internal/parser"
	"github.com/KaramelBytes/streamstats-cli/internal/session"
	"github.com/KaramelBytes/streamstats-cli/internal/utils"
)

var (
	// Global flags, applied over the loaded configuration
	cfgFile        string
	flagDataFile   string
	flagLogFile    string
	flagVerbose    bool
	flagDelimiter  string
	flagSheetName  string
	flagSheetIndex int
	jsonOut        bool

	// Loaded configuration
	cfg *cfgpkg.Global

	sess      *session.Session
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "streamstats",
	Short: "Descriptive and inferential statistics over per-artist streaming metrics",
	Long: `streamstats loads a CSV (or XLSX) of per-artist streaming metrics
(name, streams, daily, as lead, solo, as feature) and answers one query per
invocation: descriptive statistics, rankings, probabilities, confidence
intervals, hypothesis tests, regression and correlation.

Row-level import diagnostics are written to the log file (see --log-file).`,
	SilenceUsage:       true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
}

// Execute is the entry point called by main.main()
func Execute() {
	err := rootCmd.Execute()
	_ = closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.streamstats/config.yaml)")
	pf.StringVarP(&flagDataFile, "data", "f", "", "input file (.csv, .tsv, .txt or .xlsx; overrides data_file)")
	pf.StringVar(&flagLogFile, "log-file", "", "diagnostics log file, empty for stderr (overrides log_file)")
	pf.BoolVar(&flagVerbose, "verbose", false, "enable debug diagnostics")
	pf.StringVar(&flagDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab' (overrides delimiter)")
	pf.StringVar(&flagSheetName, "sheet-name", "", "XLSX sheet name (takes precedence over --sheet-index)")
	pf.IntVar(&flagSheetIndex, "sheet-index", 0, "XLSX 1-based sheet index")
	pf.BoolVar(&jsonOut, "json", false, "print results as JSON")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") {
		cfg.DataFile = flagDataFile
	}
	if f.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if f.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("sheet-index") && flagSheetIndex > 0 {
		cfg.SheetIndex = flagSheetIndex
	}

	var log *slog.Logger
	if cfg.LogFile == "" {
		log = logger.New(cmd.ErrOrStderr(), cfg.Verbose)
	} else {
		log, logCloser = logger.Open(logger.FileOptions{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}, cfg.Verbose)
	}
	sess = session.New(log)
	return nil
}

func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func parserOptions() (parser.Options, error) {
	delim, err := parser.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{Delimiter: delim, SheetName: cfg.SheetName, SheetIndex: cfg.SheetIndex}, nil
}

// ensureLoaded loads the configured data file into the session once.
func ensureLoaded() error {
	if sess.Loaded() {
		return nil
	}
	opt, err := parserOptions()
	if err != nil {
		return err
	}
	return sess.Load(cfg.DataFile, opt)
}

// attributeValues resolves an attribute name against the loaded dataset.
func attributeValues(name string) ([]float64, error) {
	vals := sess.AttributeValues(name)
	if len(vals) == 0 {
		return nil, fmt.Errorf("unknown or empty attribute: %s", name)
	}
	return vals, nil
}

func intArg(args []string, i int, name string) (int, error) {
	n, err := cast.ToIntE(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return n, nil
}

func floatArg(args []string, i int, name string) (float64, error) {
	x, err := cast.ToFloat64E(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return x, nil
}

// printJSON writes v as indented JSON when --json is set and reports whether it did.
func printJSON(cmd *cobra.Command, v any) (bool, error) {
	if !jsonOut {
		return false, nil
	}
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return true, err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return true, err
}

// num formats a statistic the way the results table prints it.
func num(x float64) string { return fmt.Sprintf("%.6g", x) }
