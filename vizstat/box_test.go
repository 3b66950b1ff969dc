// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vizstat

import (
	"math"
	"reflect"
	"testing"
)

func TestBox(t *testing.T) {
	for _, test := range []struct {
		xs   []float64
		want BoxStats
	}{
		// Odd count: the median is the middle sample.
		{[]float64{5, 1, 4, 2, 3},
			BoxStats{Q1: 2, Median: 3, Q3: 4, Low: 1, High: 5}},

		// Even count: quartiles interpolate between samples.
		{[]float64{1, 2, 3, 4},
			BoxStats{Q1: 1.75, Median: 2.5, Q3: 3.25, Low: 1, High: 4}},

		// A far value becomes an outlier and the whisker pulls in.
		{[]float64{1, 2, 3, 4, 5, 100},
			BoxStats{Q1: 2.25, Median: 3.5, Q3: 4.75, Low: 1, High: 5,
				Outliers: []float64{100}}},

		// NaNs are ignored.
		{[]float64{math.NaN(), 2, 1, 3, math.NaN()},
			BoxStats{Q1: 1.5, Median: 2, Q3: 2.5, Low: 1, High: 3}},

		// Single sample.
		{[]float64{7},
			BoxStats{Q1: 7, Median: 7, Q3: 7, Low: 7, High: 7}},
	} {
		got, ok := Box(test.xs)
		if !ok {
			t.Errorf("Box(%v) reported no data", test.xs)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Box(%v):\nwant %+v\ngot  %+v", test.xs, test.want, got)
		}
	}
}

func TestBoxEmpty(t *testing.T) {
	if _, ok := Box(nil); ok {
		t.Error("Box(nil) should report no data")
	}
	if _, ok := Box([]float64{math.NaN()}); ok {
		t.Error("Box of only NaNs should report no data")
	}
}
