package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
)

// Options controls Summarize.
type Options struct {
	// Correlations computes Pearson correlations among the attributes.
	Correlations bool
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
	// TopStreams is the length of the streams leaderboard. 0 means 3.
	TopStreams int
	// MaxNotes caps the load diagnostics echoed in the notes. 0 means 10.
	MaxNotes int
}

// DefaultOptions returns the options used by the summary command.
func DefaultOptions() Options {
	return Options{Correlations: true, Outliers: true, OutlierThreshold: 3.5, TopStreams: 3, MaxNotes: 10}
}

// Report is a markdown-friendly summary of a loaded dataset.
type Report struct {
	Name     string             `json:"name"`
	Artists  int                `json:"artists"`
	Skipped  int                `json:"skipped"`
	Attrs    []AttributeSummary `json:"attributes"`
	Split    *GlobalRatio       `json:"split,omitempty"`
	Corr     *CorrMatrix        `json:"correlations,omitempty"`
	Top      []Ranked           `json:"top_streams"`
	Warnings []string           `json:"warnings,omitempty"`
}

// AttributeSummary captures the statistics of one attribute column.
type AttributeSummary struct {
	Name   dataset.Attribute `json:"name"`
	Count  int               `json:"count"`
	Total  float64           `json:"total"`
	Min    float64           `json:"min"`
	Max    float64           `json:"max"`
	Mean   float64           `json:"mean"`
	Median float64           `json:"median"`
	Std    float64           `json:"std"`
	// Outliers (robust Z via MAD)
	OutliersCount    int     `json:"outliers_count,omitempty"`
	OutliersMaxAbsZ  float64 `json:"outliers_max_abs_z,omitempty"`
	OutlierThreshold float64 `json:"outlier_threshold,omitempty"`
}

// CorrMatrix holds a symmetric Pearson correlation matrix across attributes.
type CorrMatrix struct {
	Columns []dataset.Attribute `json:"columns"`
	Values  [][]float64         `json:"values"` // row-major, Values[i][j]
}

// minOutlierSample is the smallest series the MAD outlier count runs on.
const minOutlierSample = 8

// Summarize builds a Report over records. load supplies the skip count and
// diagnostics of the pass that produced them.
func Summarize(name string, records []dataset.Record, load dataset.LoadReport, opt Options) *Report {
	rep := &Report{Name: name, Artists: len(records), Skipped: load.Skipped}

	columns := make(map[dataset.Attribute][]float64, len(dataset.Attributes))
	for _, a := range dataset.Attributes {
		vals := dataset.Values(records, a)
		columns[a] = vals
		s := AttributeSummary{
			Name:   a,
			Count:  len(vals),
			Total:  floats.Sum(vals),
			Min:    Min(vals),
			Max:    Max(vals),
			Mean:   Mean(vals),
			Median: Median(vals),
			Std:    StdDev(vals, true),
		}
		if opt.Outliers && len(vals) >= minOutlierSample {
			s.OutliersCount, s.OutliersMaxAbsZ, s.OutlierThreshold = robustOutliers(vals, opt.OutlierThreshold)
		}
		rep.Attrs = append(rep.Attrs, s)
	}

	if g, ok := GlobalSoloFeatureRatio(records); ok {
		rep.Split = &g
	}

	if opt.Correlations && len(records) >= 2 {
		n := len(dataset.Attributes)
		mat := make([][]float64, n)
		for i := range mat {
			mat[i] = make([]float64, n)
		}
		for i, a := range dataset.Attributes {
			for j, b := range dataset.Attributes {
				if i == j {
					mat[i][j] = 1
					continue
				}
				mat[i][j] = Pearson(columns[a], columns[b])
			}
		}
		rep.Corr = &CorrMatrix{Columns: dataset.Attributes, Values: mat}
	}

	top := opt.TopStreams
	if top <= 0 {
		top = 3
	}
	rep.Top = TopN(records, top, dataset.Streams)

	if load.Skipped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d row(s) skipped during import", load.Skipped))
	}
	maxNotes := opt.MaxNotes
	if maxNotes <= 0 {
		maxNotes = 10
	}
	for i, d := range load.Diagnostics {
		if i == maxNotes {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("... and %d more diagnostic(s)", len(load.Diagnostics)-maxNotes))
			break
		}
		rep.Warnings = append(rep.Warnings, d.String())
	}
	if len(records) == 0 {
		rep.Warnings = append(rep.Warnings, "no records loaded")
	}
	return rep
}

func robustOutliers(vals []float64, thr float64) (count int, maxAbsZ, threshold float64) {
	if thr <= 0 {
		thr = 3.5
	}
	median, mad := medianMAD(vals)
	if mad > 0 {
		for _, v := range vals {
			az := math.Abs(0.6745 * (v - median) / mad)
			if az > thr {
				count++
			}
			if az > maxAbsZ {
				maxAbsZ = az
			}
		}
	}
	return count, maxAbsZ, thr
}

// Markdown renders a compact report for the terminal or a notes file.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Skipped > 0 {
		b.WriteString(fmt.Sprintf("Artists: %s (skipped %s)\n", humanize.Comma(int64(r.Artists)), humanize.Comma(int64(r.Skipped))))
	} else {
		b.WriteString(fmt.Sprintf("Artists: %s\n", humanize.Comma(int64(r.Artists))))
	}
	b.WriteString(fmt.Sprintf("Attributes: %d\n\n", len(r.Attrs)))

	b.WriteString("[ATTRIBUTES]\n")
	for _, a := range r.Attrs {
		b.WriteString(fmt.Sprintf("- %s: total %s; min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g",
			a.Name, humanize.Commaf(a.Total), a.Min, a.Max, a.Mean, a.Median, a.Std))
		if a.OutlierThreshold > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", a.OutliersCount, a.OutlierThreshold))
			if a.OutliersMaxAbsZ > 0 {
				b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", a.OutliersMaxAbsZ))
			}
		}
		b.WriteString("\n")
	}

	if r.Split != nil {
		b.WriteString("\n[SOLO/FEATURE SPLIT]\n")
		b.WriteString(fmt.Sprintf("- solo: %.2f%% (%s)\n", r.Split.SoloPct, humanize.Commaf(r.Split.Solo)))
		b.WriteString(fmt.Sprintf("- as feature: %.2f%% (%s)\n", r.Split.FeaturePct, humanize.Commaf(r.Split.AsFeature)))
		b.WriteString(fmt.Sprintf("- other: %.2f%%\n", r.Split.OtherPct))
	}

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		// list pairs by |r|
		type pr struct {
			A, B dataset.Attribute
			R    float64
		}
		var pairs []pr
		n := len(r.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, pr{A: r.Corr.Columns[i], B: r.Corr.Columns[j], R: r.Corr.Values[i][j]})
			}
		}
		sort.SliceStable(pairs, func(i, j int) bool {
			return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
		})
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}

	if len(r.Top) > 0 {
		b.WriteString("\n[TOP STREAMS]\n")
		for i, t := range r.Top {
			b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, safeVal(t.Record.Name), humanize.Commaf(t.Score)))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
