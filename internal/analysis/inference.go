package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Z95 is the two-sided normal critical value used by every interval. The
// alpha arguments below are accepted for symmetry but do not change it.
const Z95 = 1.96

// ConfidenceIntervalMean returns the half-width Z95*s/sqrt(n) with the sample
// standard deviation. Fewer than two values yield 0.
func ConfidenceIntervalMean(xs []float64, alpha float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return Z95 * StdDev(xs, true) / math.Sqrt(float64(len(xs)))
}

// ConfidenceIntervalProportion returns the half-width of the normal
// approximation interval for successes/total.
func ConfidenceIntervalProportion(successes, total int, alpha float64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(successes) / float64(total)
	return Z95 * math.Sqrt(p*(1-p)/float64(total))
}

// TTestTwoMeans returns Welch's t statistic for the difference of means.
// It is 0 when either sample has fewer than two values or the standard error
// vanishes.
func TTestTwoMeans(x, y []float64) float64 {
	if len(x) < 2 || len(y) < 2 {
		return 0
	}
	se := math.Sqrt(Variance(x, true)/float64(len(x)) + Variance(y, true)/float64(len(y)))
	if se == 0 {
		return 0
	}
	return (Mean(x) - Mean(y)) / se
}

// TestProportion returns the one-sample z statistic (p - p0)/sqrt(p0(1-p0)/total).
func TestProportion(successes, total int, p0 float64) float64 {
	if total <= 0 {
		return 0
	}
	denom := math.Sqrt(p0 * (1 - p0) / float64(total))
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}
	return (float64(successes)/float64(total) - p0) / denom
}

// PValueTwoSided returns P(|Z| >= |z|) under the standard normal.
func PValueTwoSided(z float64) float64 {
	return 2 * distuv.UnitNormal.CDF(-math.Abs(z))
}
