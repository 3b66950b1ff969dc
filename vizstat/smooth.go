// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vizstat computes the statistical transforms behind plot
// layers: smoothed conditional means and box-and-whisker summaries.
package vizstat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Smoothing methods.
const (
	// Loess fits locally-weighted least squares polynomials.
	Loess = "loess"

	// LM fits a single global polynomial by least squares.
	LM = "lm"
)

// Smooth fits a smoothed conditional mean to a set of points.
//
// All fields have reasonable default zero values.
type Smooth struct {
	// Method selects the smoother, Loess or LM. If it is "", it
	// is treated as Loess.
	Method string

	// Degree is the degree of the local (loess) or global (lm)
	// polynomial. If it is 0, it is treated as 2 for loess and 1
	// for lm.
	Degree int

	// Span controls the smoothness of a loess fit. It must be
	// between 0 and 1, where smaller values fit the data more
	// tightly. If it is 0, it is treated as 0.5.
	Span float64

	// N is the number of points to sample the fit at. If N is 0,
	// it is treated as 200.
	N int

	// Widen sets the sampling domain to Widen times the span of
	// the data. If Widen is 0, it is treated as 1.1 (that is,
	// widen the domain by 10%, or 5% on each side).
	Widen float64
}

// Fit fits a curve to the points (xs[i], ys[i]) and samples it at N
// evenly spaced values across the widened domain of xs. Pairs with a
// NaN coordinate are ignored. Fit fails if the method is unknown or
// fewer than Degree+1 distinct x values remain.
func (s Smooth) Fit(xs, ys []float64) (sx, sy []float64, err error) {
	if len(xs) != len(ys) {
		panic("mismatched lengths")
	}
	method := s.Method
	if method == "" {
		method = Loess
	}
	degree := s.Degree
	if degree <= 0 {
		degree = 2
		if method == LM {
			degree = 1
		}
	}
	span := s.Span
	if span <= 0 {
		span = 0.5
	}

	xs, ys = dropNaN(xs, ys)
	if n := distinct(xs); n < degree+1 {
		return nil, nil, fmt.Errorf("smooth: need %d distinct x values, have %d", degree+1, n)
	}

	var f func(float64) float64
	switch method {
	case Loess:
		f = fit.LOESS(xs, ys, degree, span)
	case LM:
		f = fit.PolynomialRegression(xs, ys, nil, degree).F
	default:
		return nil, nil, fmt.Errorf("smooth: unknown method %q", s.Method)
	}

	sx = evalPoints(xs, s.N, s.Widen)
	return sx, vec.Map(f, sx), nil
}

// evalPoints returns n evenly spaced sample points spanning the data,
// widened by the given factor.
func evalPoints(xs []float64, n int, widen float64) []float64 {
	if n <= 0 {
		n = 200
	}
	if widen <= 0 {
		widen = 1.1
	}
	min, max := stats.Bounds(xs)
	span := max - min
	min, max = min-span*(widen-1)/2, max+span*(widen-1)/2
	return vec.Linspace(min, max, n)
}

func dropNaN(xs, ys []float64) (ox, oy []float64) {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsNaN(ys[i]) {
			continue
		}
		ox = append(ox, x)
		oy = append(oy, ys[i])
	}
	return
}

func distinct(xs []float64) int {
	seen := make(map[float64]bool)
	for _, x := range xs {
		seen[x] = true
	}
	return len(seen)
}
