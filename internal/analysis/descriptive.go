package analysis

import (
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary bundles the descriptive statistics of one series.
type Summary struct {
	Count     int       `json:"count"`
	Mean      float64   `json:"mean"`
	Median    float64   `json:"median"`
	Modes     []float64 `json:"modes"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Amplitude float64   `json:"amplitude"`
	Variance  float64   `json:"variance"`
	StdDev    float64   `json:"std_dev"`
}

// Describe computes every descriptive statistic of xs. Variance and StdDev
// use the sample (n-1) denominator.
func Describe(xs []float64) Summary {
	return Summary{
		Count:     len(xs),
		Mean:      Mean(xs),
		Median:    Median(xs),
		Modes:     Mode(xs),
		Min:       Min(xs),
		Max:       Max(xs),
		Amplitude: Amplitude(xs),
		Variance:  Variance(xs, true),
		StdDev:    StdDev(xs, true),
	}
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Median returns the middle value of a sorted copy of xs, averaging the two
// middle values for an even count. Empty input yields 0.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := slices.Clone(xs)
	sort.Float64s(cp)
	return quantile(cp, 0.5)
}

// Mode returns every value attaining the highest frequency, ascending.
// Empty input yields an empty slice.
func Mode(xs []float64) []float64 {
	counts := make(map[float64]int, len(xs))
	best := 0
	for _, x := range xs {
		counts[x]++
		if counts[x] > best {
			best = counts[x]
		}
	}
	out := []float64{}
	for v, c := range counts {
		if c == best {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Min(xs)
}

func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Max(xs)
}

// Amplitude is Max - Min.
func Amplitude(xs []float64) float64 {
	return Max(xs) - Min(xs)
}

// Variance returns the sum of squared deviations divided by n-1 when sample
// is set, by n otherwise. Fewer than two values yield 0.
func Variance(xs []float64, sample bool) float64 {
	if len(xs) < 2 {
		return 0
	}
	if sample {
		return stat.Variance(xs, nil)
	}
	return stat.PopVariance(xs, nil)
}

func StdDev(xs []float64, sample bool) float64 {
	return math.Sqrt(Variance(xs, sample))
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := slices.Clone(vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
