package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

// SoloFeatureRatio is the share of one artist's streams coming from solo
// tracks and from features, in percent.
type SoloFeatureRatio struct {
	Index      int     `json:"index"`
	Name       string  `json:"name"`
	SoloPct    float64 `json:"solo_pct"`
	FeaturePct float64 `json:"feature_pct"`
}

// SoloFeatureRatios reports per-record percentages. Records with zero
// streams are left out.
func SoloFeatureRatios(records []dataset.Record) []SoloFeatureRatio {
	out := []SoloFeatureRatio{}
	for i, r := range records {
		if r.Streams == 0 {
			continue
		}
		out = append(out, SoloFeatureRatio{
			Index:      i,
			Name:       r.Name,
			SoloPct:    100 * r.Solo / r.Streams,
			FeaturePct: 100 * r.AsFeature / r.Streams,
		})
	}
	return out
}

// GlobalRatio is the dataset-wide solo/feature split.
type GlobalRatio struct {
	Streams    float64 `json:"streams"`
	Solo       float64 `json:"solo"`
	AsFeature  float64 `json:"as_feature"`
	SoloPct    float64 `json:"solo_pct"`
	FeaturePct float64 `json:"feature_pct"`
	// OtherPct is 100 - SoloPct - FeaturePct. It goes negative when solo and
	// feature streams together exceed the total.
	OtherPct float64 `json:"other_pct"`
}

// GlobalSoloFeatureRatio computes percentages over the summed columns.
// ok is false when total streams are 0.
func GlobalSoloFeatureRatio(records []dataset.Record) (g GlobalRatio, ok bool) {
	g.Streams = floats.Sum(dataset.Values(records, dataset.Streams))
	g.Solo = floats.Sum(dataset.Values(records, dataset.Solo))
	g.AsFeature = floats.Sum(dataset.Values(records, dataset.AsFeature))
	if g.Streams == 0 {
		return g, false
	}
	g.SoloPct = 100 * g.Solo / g.Streams
	g.FeaturePct = 100 * g.AsFeature / g.Streams
	g.OtherPct = 100 - g.SoloPct - g.FeaturePct
	return g, true
}
