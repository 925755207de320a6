package analysis

import "github.com/KaramelBytes/streamstats-cli/internal/dataset"

// ProbaTopN is the chance that a uniformly drawn record is in the top n.
// The attribute does not change the answer; it is accepted so callers can
// phrase the query per attribute.
func ProbaTopN(records []dataset.Record, n int, _ dataset.Attribute) float64 {
	if len(records) == 0 || n <= 0 {
		return 0
	}
	return float64(min(n, len(records))) / float64(len(records))
}

// ProbaBySoloRatio is the fraction of records with Solo/Streams > threshold.
// Records with zero streams have ratio 0.
func ProbaBySoloRatio(records []dataset.Record, threshold float64) float64 {
	if len(records) == 0 {
		return 0
	}
	hits := 0
	for _, r := range records {
		ratio := 0.0
		if r.Streams != 0 {
			ratio = r.Solo / r.Streams
		}
		if ratio > threshold {
			hits++
		}
	}
	return float64(hits) / float64(len(records))
}

// ProbaCondTopNDailyGivenHighStreams estimates P(top n by daily | streams >
// streamsThreshold) over the dataset.
func ProbaCondTopNDailyGivenHighStreams(records []dataset.Record, streamsThreshold float64, n int) float64 {
	if len(records) == 0 {
		return 0
	}
	top := make(map[int]bool)
	for _, r := range TopN(records, n, dataset.Daily) {
		top[r.Index] = true
	}
	filtered, hits := 0, 0
	for i, r := range records {
		if r.Streams <= streamsThreshold {
			continue
		}
		filtered++
		if top[i] {
			hits++
		}
	}
	if filtered == 0 {
		return 0
	}
	return float64(hits) / float64(filtered)
}
