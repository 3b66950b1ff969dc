// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import "image/color"

// LayerPoints draws a point mark for each row.
type LayerPoints struct {
	// Aes overrides the plot's aesthetic mapping for this layer,
	// channel by channel. Between the two, X and Y must be
	// mapped.
	Aes Aes

	// Color fixes every point's color, overriding the color
	// channel. nil uses the channel (or black).
	Color color.Color

	// Alpha in (0, 1) makes points translucent. 0 means opaque.
	Alpha float64

	// Size is the glyph radius in points. 0 means the theme's
	// default.
	Size float64

	// Jitter perturbs each x position by a uniform offset in
	// [-Jitter, Jitter] data units to unstack overplotted
	// values. Jitter is deterministic: rendering the same plot
	// twice perturbs identically.
	Jitter float64
}

func (l LayerPoints) apply(p Plot) Plot {
	p.layers = append(p.layers, l)
	return p
}

// Mapping returns the layer's aesthetic overrides.
func (l LayerPoints) Mapping() Aes { return l.Aes }

// LayerLines connects each series' rows with a path in ascending x
// order. Series are split by the color, shape, and group channels.
type LayerLines struct {
	// Aes overrides the plot's aesthetic mapping for this layer.
	Aes Aes

	// Color fixes the stroke color, overriding the color channel.
	Color color.Color

	// Alpha in (0, 1) makes lines translucent. 0 means opaque.
	Alpha float64

	// Width is the stroke width in points. 0 means the theme's
	// default.
	Width float64
}

func (l LayerLines) apply(p Plot) Plot {
	p.layers = append(p.layers, l)
	return p
}

func (l LayerLines) Mapping() Aes { return l.Aes }

// LayerBox draws a box-and-whisker summary of y for each level of a
// categorical x. With no x mapped it draws a single box. Whiskers
// extend to the most extreme values within 1.5 IQRs of the box;
// values beyond that draw as outlier points.
type LayerBox struct {
	// Aes overrides the plot's aesthetic mapping for this layer.
	// Y must be mapped, and numeric.
	Aes Aes

	// Fill fixes the box fill color. nil fills white, or by the
	// color channel when it names the same field as x.
	Fill color.Color

	// Alpha in (0, 1) makes the fill translucent. 0 means opaque.
	Alpha float64

	// Width is the box width in points. 0 means 20.
	Width float64
}

func (l LayerBox) apply(p Plot) Plot {
	p.layers = append(p.layers, l)
	return p
}

func (l LayerBox) Mapping() Aes { return l.Aes }

// LayerSmooth fits a smoothed conditional mean of y on x for each
// series and draws the fitted curve.
type LayerSmooth struct {
	// Aes overrides the plot's aesthetic mapping for this layer.
	Aes Aes

	// Method selects the smoother: vizstat.Loess (the default) or
	// vizstat.LM.
	Method string

	// Degree is the polynomial degree of the fit. 0 picks the
	// method's default.
	Degree int

	// Span controls the smoothness of a loess fit, in (0, 1].
	// 0 picks the default.
	Span float64

	// N is the number of points to sample the fit at. 0 picks
	// the default.
	N int

	// Color fixes the curve color. nil uses the series color, or
	// blue when the color channel is unmapped.
	Color color.Color

	// Width is the stroke width in points. 0 means slightly
	// heavier than the theme's line width.
	Width float64
}

func (l LayerSmooth) apply(p Plot) Plot {
	p.layers = append(p.layers, l)
	return p
}

func (l LayerSmooth) Mapping() Aes { return l.Aes }
