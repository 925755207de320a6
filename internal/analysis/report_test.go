package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

func TestSummarizeAndMarkdown(t *testing.T) {
	load := dataset.LoadReport{
		Imported: len(fixture),
		Skipped:  1,
		Diagnostics: []dataset.Diagnostic{
			{Line: 3, Level: dataset.LevelWarning, Field: "artist", Message: "row skipped: empty artist name"},
		},
	}
	rep := Summarize("artists.csv", fixture, load, DefaultOptions())
	require.Len(t, rep.Attrs, len(dataset.Attributes))
	assert.Equal(t, 4, rep.Artists)

	streams := rep.Attrs[0]
	assert.Equal(t, dataset.Streams, streams.Name)
	assert.Equal(t, 700.0, streams.Total)
	assert.Equal(t, 175.0, streams.Mean)
	assert.Equal(t, 200.0, streams.Median)
	assert.Zero(t, streams.OutlierThreshold, "outliers need at least 8 values")

	require.NotNil(t, rep.Split)
	require.NotNil(t, rep.Corr)
	assert.Equal(t, 1.0, rep.Corr.Values[0][0])
	assert.Equal(t, rep.Corr.Values[0][1], rep.Corr.Values[1][0])
	assert.Equal(t, []int{1, 2, 0}, indexes(rep.Top))

	md := rep.Markdown()
	for _, section := range []string{"[DATASET SUMMARY]", "[ATTRIBUTES]", "[SOLO/FEATURE SPLIT]", "[CORRELATIONS]", "[TOP STREAMS]", "[NOTES]"} {
		assert.Contains(t, md, section)
	}
	assert.Contains(t, md, "File: artists.csv")
	assert.Contains(t, md, "Artists: 4 (skipped 1)")
	assert.Contains(t, md, "1. B: 300")
	assert.Contains(t, md, "line 3: warning: row skipped: empty artist name (artist)")
}

func TestSummarizeOutliers(t *testing.T) {
	var recs []dataset.Record
	for i := 0; i < 9; i++ {
		recs = append(recs, dataset.Record{Name: fmt.Sprintf("a%d", i), Streams: float64(1000 + i)})
	}
	recs = append(recs, dataset.Record{Name: "spike", Streams: 1e7})
	rep := Summarize("", recs, dataset.LoadReport{}, Options{Outliers: true})
	assert.Equal(t, 1, rep.Attrs[0].OutliersCount)
	assert.Equal(t, 3.5, rep.Attrs[0].OutlierThreshold)
	assert.Nil(t, rep.Corr)
	assert.Len(t, rep.Top, 3)
	assert.Contains(t, rep.Markdown(), "outliers: 1 above |z|>3.5")
}

func TestSummarizeEmpty(t *testing.T) {
	rep := Summarize("empty.csv", nil, dataset.LoadReport{}, DefaultOptions())
	assert.Nil(t, rep.Split)
	assert.Nil(t, rep.Corr)
	md := rep.Markdown()
	assert.True(t, strings.Contains(md, "no records loaded"))
	assert.NotContains(t, md, "[TOP STREAMS]")
}

func TestSummarizeCapsNotes(t *testing.T) {
	var load dataset.LoadReport
	for i := 0; i < 5; i++ {
		load.Diagnostics = append(load.Diagnostics, dataset.Diagnostic{Line: i + 1, Level: dataset.LevelError, Message: "x"})
	}
	rep := Summarize("", fixture, load, Options{MaxNotes: 2})
	require.Len(t, rep.Warnings, 3)
	assert.Equal(t, "... and 3 more diagnostic(s)", rep.Warnings[2])
}
