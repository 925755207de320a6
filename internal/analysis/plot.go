package analysis

import "math"

const (
	pointMarker = 'o'
	lineMarker  = 'x'
)

// PlotLegend describes the markers drawn by RegressionASCIIPlot.
const PlotLegend = "o: data, x: fitted line y = a*x + b"

// RegressionASCIIPlot renders the points (x, y) and the line y = a*x + b on a
// grid of height+1 rows by width+1 columns, top row first. Axis bounds are
// the data range plus a 5% margin on each side. Line markers never overwrite
// data markers. It returns nil for empty or mismatched input and for a
// non-positive width or height.
func RegressionASCIIPlot(x, y []float64, a, b float64, width, height int) []string {
	if len(x) == 0 || len(x) != len(y) || width < 1 || height < 1 {
		return nil
	}
	xmin, xmax := widen(Min(x), Max(x))
	ymin, ymax := widen(Min(y), Max(y))

	grid := make([][]byte, height+1)
	for i := range grid {
		grid[i] = make([]byte, width+1)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := range x {
		col := clamp(int((x[i]-xmin)/(xmax-xmin)*float64(width)), 0, width)
		row := clamp(height-int((y[i]-ymin)/(ymax-ymin)*float64(height)), 0, height)
		grid[row][col] = pointMarker
	}

	for col := 0; col <= width; col++ {
		xv := xmin + (xmax-xmin)*float64(col)/float64(width)
		fy := (a*xv + b - ymin) / (ymax - ymin) * float64(height)
		// int() truncates toward zero, so anything in (-1, height+1) lands on the grid.
		if math.IsNaN(fy) || fy <= -1 || fy >= float64(height+1) {
			continue
		}
		row := height - int(fy)
		if row < 0 || row > height {
			continue
		}
		if grid[row][col] != pointMarker {
			grid[row][col] = lineMarker
		}
	}

	out := make([]string, len(grid))
	for i, r := range grid {
		out[i] = string(r)
	}
	return out
}

// widen applies the 5% margin. A zero-width range is opened to +-0.5 first.
func widen(lo, hi float64) (float64, float64) {
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	buf := (hi - lo) * 0.05
	return lo - buf, hi + buf
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
