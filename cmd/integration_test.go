package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artistsCSV = `Artist,Streams,Daily,As lead,Solo,As feature
"Drake",85041.5,52.3,56000,38000,29041.5
Taylor Swift,120000,80,110000,100000,10000
Bad Bunny,70000,40,40000,25000,30000
,5,5,5,5,5
The Weeknd,"90 000,5",60,70000,50000,20000
`

// resetFlags clears values and Changed state that persist across Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg, sess = nil, nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	_ = closeLog()
	return out.String(), err
}

// fixture isolates HOME and returns the global args pointing at a temp dataset.
func fixture(t *testing.T) (dir string, global []string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	data := filepath.Join(dir, "artists.csv")
	require.NoError(t, os.WriteFile(data, []byte(artistsCSV), 0o644))
	return dir, []string{"--data", data, "--log-file", filepath.Join(dir, "logs")}
}

func run(t *testing.T, global []string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, append(append([]string{}, args...), global...)...)
	require.NoError(t, err, "command %v", args)
	return out
}

func TestCLI_LoadReportsSkippedRowsAndLogs(t *testing.T) {
	dir, global := fixture(t)
	out := run(t, global, "load", "--diagnostics")
	assert.Contains(t, out, "Imported 4 artist(s)")
	assert.Contains(t, out, "skipped 1")
	assert.Contains(t, out, "Header row detected")
	assert.Contains(t, out, "1 warning(s), 0 error(s)")
	assert.Contains(t, out, "line 5: warning: row skipped: empty artist name (artist)")

	logs, err := os.ReadFile(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "csv import finished")
	assert.Contains(t, string(logs), "load_id=")
}

func TestCLI_TopAndGap(t *testing.T) {
	_, global := fixture(t)
	out := run(t, global, "top", "2", "streams")
	assert.Equal(t, "1. Taylor Swift: 120000\n2. The Weeknd: 90000.5\n", out)

	out = run(t, global, "top", "10", "popularity")
	assert.True(t, strings.HasPrefix(out, "1. Drake: 0\n2. Taylor Swift: 0\n"), out)

	out = run(t, global, "gap", "1")
	assert.Equal(t, "1. Taylor Swift: 100000\n", out)
}

func TestCLI_TopDefaultsToConfiguredLength(t *testing.T) {
	_, global := fixture(t)
	t.Setenv("STREAMSTATS_TOP_N", "2")
	assert.Equal(t, "1. Taylor Swift: 120000\n2. The Weeknd: 90000.5\n", run(t, global, "top", "streams"))
	assert.Equal(t, "1. Taylor Swift: 100000\n2. The Weeknd: 50000\n", run(t, global, "gap"))
}

func TestCLI_Desc(t *testing.T) {
	_, global := fixture(t)
	assert.Equal(t, "mean(streams) = 91260.5\n", run(t, global, "desc", "mean", "streams"))
	assert.Contains(t, run(t, global, "desc", "all", "daily"), "daily (n=4)")

	_, err := runCmd(t, append([]string{"desc", "mean", "popularity"}, global...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown or empty attribute")

	_, err = runCmd(t, append([]string{"desc", "kurtosis", "streams"}, global...)...)
	assert.Error(t, err)
}

func TestCLI_ProbaAndInference(t *testing.T) {
	_, global := fixture(t)
	assert.Equal(t, "P(solo/streams > 0.7) = 0.25\n", run(t, global, "proba", "solo"))
	assert.Equal(t, "P(top 2 by streams) = 0.5\n", run(t, global, "proba", "top", "2", "streams"))
	// top 1 by daily is Taylor Swift; streams > 80000: Drake, Taylor Swift, The Weeknd
	assert.Equal(t, "P(top 1 daily | streams > 80000) = 0.333333\n", run(t, global, "proba", "condtop", "80000", "--n", "1"))

	assert.Contains(t, run(t, global, "ic", "mean", "daily"), "mean(daily) = 58.075 ±")
	assert.Contains(t, run(t, global, "ic", "prop", "streams", "80000"), "P(streams > 80000) = 0.75 ±")
	assert.Contains(t, run(t, global, "test", "welch"), "t(solo vs asfeature) = ")
	assert.Contains(t, run(t, global, "test", "prop", "streams", "80000", "0.5"), "z(P(streams > 80000) = 0.5) = 1")

	_, err := runCmd(t, append([]string{"test", "prop", "streams", "1", "1.5"}, global...)...)
	assert.Error(t, err)
}

func TestCLI_RegressionPlotAndJSON(t *testing.T) {
	_, global := fixture(t)
	out := run(t, global, "regression", "streams", "daily", "--plot", "--width", "20", "--height", "5")
	assert.Contains(t, out, "r2 = ")
	assert.Contains(t, out, "residuals: mean")
	assert.Contains(t, out, "o: data, x: fitted line")

	out = run(t, global, "--json", "top", "1", "streams")
	assert.Contains(t, out, `"name": "Taylor Swift"`)
	assert.Contains(t, out, `"score": 120000`)

	out = run(t, global, "correlation", "streams", "streams")
	assert.Equal(t, "r(streams, streams) = 1\n", out)
}

func TestCLI_SummaryAndRatio(t *testing.T) {
	_, global := fixture(t)
	out := run(t, global, "summary", "--correlations")
	for _, s := range []string{"[DATASET SUMMARY]", "File: artists.csv", "Artists: 4 (skipped 1)", "[CORRELATIONS]", "[TOP STREAMS]", "[NOTES]"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, run(t, global, "ratio"), "Taylor Swift: solo 83.33%, feature 8.33%")
	assert.Contains(t, run(t, global, "ratio", "--global"), "solo: ")
}

func TestCLI_MissingDataFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	_, err := runCmd(t, "load", "--data", filepath.Join(dir, "nope.csv"), "--log-file", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	dir, global := fixture(t)
	out := run(t, global, "config", "set", "top_n", "5")
	assert.Contains(t, out, filepath.Join(dir, ".streamstats", "config.yaml"))

	out = run(t, global, "config", "show")
	assert.Contains(t, out, "top_n: 5")
	assert.Contains(t, out, "plot_width: 60")

	_, err := runCmd(t, append([]string{"config", "set", "top_n", "many"}, global...)...)
	assert.Error(t, err)
}
