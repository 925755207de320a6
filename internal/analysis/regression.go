package analysis

import "math"

// Regression is an ordinary least squares fit y = Slope*x + Intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// Predict evaluates the fitted line at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// LinearRegression fits y on x with centered sums. Mismatched or empty input
// yields the zero Regression.
func LinearRegression(x, y []float64) Regression {
	sxx, syy, sxy, ok := centeredSums(x, y)
	if !ok {
		return Regression{}
	}
	var reg Regression
	if sxx != 0 {
		reg.Slope = sxy / sxx
	}
	reg.Intercept = Mean(y) - reg.Slope*Mean(x)
	if sxx != 0 && syy != 0 {
		r := sxy / math.Sqrt(sxx*syy)
		reg.R2 = r * r
	}
	return reg
}

// Pearson returns the correlation coefficient of x and y, or 0 on mismatched
// or empty input and when either series is constant.
func Pearson(x, y []float64) float64 {
	sxx, syy, sxy, ok := centeredSums(x, y)
	if !ok || sxx == 0 || syy == 0 {
		return 0
	}
	r := sxy / math.Sqrt(sxx*syy)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// Residuals returns y[i] - reg.Predict(x[i]), or nil on mismatched input.
func Residuals(x, y []float64, reg Regression) []float64 {
	if len(x) != len(y) {
		return nil
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = y[i] - reg.Predict(x[i])
	}
	return out
}

// CountAbove counts the values strictly greater than threshold.
func CountAbove(xs []float64, threshold float64) int {
	n := 0
	for _, x := range xs {
		if x > threshold {
			n++
		}
	}
	return n
}

func centeredSums(x, y []float64) (sxx, syy, sxy float64, ok bool) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, 0, 0, false
	}
	mx, my := Mean(x), Mean(y)
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	return sxx, syy, sxy, true
}
