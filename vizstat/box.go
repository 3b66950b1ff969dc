// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vizstat

import (
	"math"
	"sort"
)

// A BoxStats is the five-number summary of a sample, as drawn by a
// box-and-whisker plot.
type BoxStats struct {
	// Q1, Median, and Q3 are the quartiles bounding the box.
	Q1, Median, Q3 float64

	// Low and High are the whisker ends: the most extreme sample
	// values within 1.5 IQRs of the box.
	Low, High float64

	// Outliers lists the sample values beyond the whiskers, in
	// ascending order.
	Outliers []float64
}

// Box summarizes a sample for a box-and-whisker plot. NaN values are
// ignored. The second result is false if no values remain.
func Box(xs []float64) (BoxStats, bool) {
	var vals []float64
	for _, x := range xs {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return BoxStats{}, false
	}
	sort.Float64s(vals)

	b := BoxStats{
		Q1:     quantile(vals, 0.25),
		Median: quantile(vals, 0.5),
		Q3:     quantile(vals, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.Low = math.NaN()
	for _, v := range vals {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		if math.IsNaN(b.Low) {
			b.Low = v
		}
		b.High = v
	}
	return b, true
}

// quantile returns the pth quantile of the sorted sample vals,
// linearly interpolating between order statistics (the "type 7"
// convention, matching R's quantile and boxplot defaults).
func quantile(vals []float64, p float64) float64 {
	h := p * float64(len(vals)-1)
	i := int(h)
	if i+1 >= len(vals) {
		return vals[len(vals)-1]
	}
	return vals[i] + (h-float64(i))*(vals[i+1]-vals[i])
}
