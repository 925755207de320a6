package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

func TestProbaTopN(t *testing.T) {
	assert.Equal(t, 0.5, ProbaTopN(fixture, 2, dataset.Streams))
	assert.Equal(t, 0.5, ProbaTopN(fixture, 2, dataset.Daily))
	assert.Equal(t, 1.0, ProbaTopN(fixture, 10, dataset.Streams))
	assert.Equal(t, 0.0, ProbaTopN(nil, 3, dataset.Streams))
	assert.Equal(t, 0.0, ProbaTopN(fixture, -1, dataset.Streams))
}

func TestProbaBySoloRatio(t *testing.T) {
	// ratios: 0.75, 0.333, 0.8, 0 (zero streams)
	assert.Equal(t, 0.5, ProbaBySoloRatio(fixture, 0.70))
	assert.Equal(t, 0.0, ProbaBySoloRatio(fixture, 0.9))
	assert.Equal(t, 1.0, ProbaBySoloRatio(fixture, -0.1))
	assert.Equal(t, 0.0, ProbaBySoloRatio(nil, 0.5))
}

func TestProbaCondTopNDailyGivenHighStreams(t *testing.T) {
	// top 2 by daily: B (9), D (7). streams > 50: A, B, C.
	assert.InDelta(t, 1.0/3.0, ProbaCondTopNDailyGivenHighStreams(fixture, 50, 2), 1e-12)
	// streams > 200: B, C; B is in the top set.
	assert.Equal(t, 0.5, ProbaCondTopNDailyGivenHighStreams(fixture, 200, 2))
	// n clamped to dataset size: every filtered record is in the top set.
	assert.Equal(t, 1.0, ProbaCondTopNDailyGivenHighStreams(fixture, 50, 99))
	assert.Equal(t, 0.0, ProbaCondTopNDailyGivenHighStreams(fixture, 1e9, 2))
	assert.Equal(t, 0.0, ProbaCondTopNDailyGivenHighStreams(nil, 0, 2))
}
