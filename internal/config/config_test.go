package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "artists.csv", c.DataFile)
	assert.Equal(t, "logs", c.LogFile)
	assert.Equal(t, ",", c.Delimiter)
	assert.Equal(t, 1, c.SheetIndex)
	assert.Equal(t, 60, c.PlotWidth)
	assert.Equal(t, 20, c.PlotHeight)
	assert.Equal(t, 10, c.TopN)
	assert.Equal(t, 0.70, c.SoloThreshold)
	assert.Equal(t, 10, c.CondTopN)
	assert.False(t, c.Verbose)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("data_file: charts.csv\ntop_n: 5\nplot_width: 40\n"), 0o644))
	t.Setenv("STREAMSTATS_TOP_N", "7")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "charts.csv", c.DataFile)
	assert.Equal(t, 40, c.PlotWidth)
	assert.Equal(t, 7, c.TopN, "env overrides file")
	assert.Equal(t, 20, c.PlotHeight)
}

func TestLoadBrokenFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("top_n: [unclosed\n"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Set("solo_threshold", "0.5"))
	require.NoError(t, c.Set("delimiter", ";"))
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".streamstats", "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.SoloThreshold)
	assert.Equal(t, ";", got.Delimiter)
	assert.Equal(t, c, got)
}

func TestSet(t *testing.T) {
	var c Global
	require.NoError(t, c.Set("TOP_N", "12"))
	require.NoError(t, c.Set("verbose", "true"))
	require.NoError(t, c.Set("sheet_name", "Artists"))
	assert.Equal(t, 12, c.TopN)
	assert.True(t, c.Verbose)
	assert.Equal(t, "Artists", c.SheetName)

	assert.Error(t, c.Set("plot_width", "wide"))
	assert.Error(t, c.Set("verbose", "maybe"))
	err := c.Set("colour", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_n")
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 13)
	assert.IsNonDecreasing(t, keys)
}

func TestDefaultMatchesLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
