package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

// Ranked is one entry of a ranking: the record, its position in the input
// and the key it was sorted by.
type Ranked struct {
	Index  int            `json:"index"`
	Record dataset.Record `json:"record"`
	Score  float64        `json:"score"`
}

// TopN ranks records by attr, highest first, and returns the first
// min(n, len(records)). Ties keep input order. An unknown attribute scores
// every record 0, so the result is the input order.
func TopN(records []dataset.Record, n int, attr dataset.Attribute) []Ranked {
	return rank(records, n, func(r dataset.Record) float64 { return r.Value(attr) })
}

// TopGapLeadFeature ranks records by |AsLead - AsFeature|, highest first.
func TopGapLeadFeature(records []dataset.Record, n int) []Ranked {
	return rank(records, n, func(r dataset.Record) float64 { return math.Abs(r.AsLead - r.AsFeature) })
}

func rank(records []dataset.Record, n int, score func(dataset.Record) float64) []Ranked {
	if n <= 0 || len(records) == 0 {
		return []Ranked{}
	}
	out := make([]Ranked, len(records))
	for i, r := range records {
		out[i] = Ranked{Index: i, Record: r, Score: score(r)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
