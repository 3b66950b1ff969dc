// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"image/color"

	"github.com/aclements/go-gg/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Labels sets the title and axis labels of a plot. Empty fields keep
// whatever the plot already has, so labels can be layered up across
// several Add calls.
type Labels struct {
	Title string
	X     string
	Y     string
}

func (l Labels) apply(p Plot) Plot {
	if l.Title != "" {
		p.labels.Title = l.Title
	}
	if l.X != "" {
		p.labels.X = l.X
	}
	if l.Y != "" {
		p.labels.Y = l.Y
	}
	return p
}

// Theme controls the visual style of a rendered plot. The zero value
// of each field means "use the default", so partial themes such as
// Theme{Border: true} are fine.
type Theme struct {
	// Background is the fill color of the panel data area.
	Background color.Color

	// Grid is the color of the panel grid lines.
	Grid color.Color

	// Palette gives the colors assigned to the levels of a
	// categorical color mapping, in level order, cycling if there
	// are more levels than colors.
	Palette []color.Color

	// Ramp maps a numeric color mapping, normalized to [0, 1],
	// to a color.
	Ramp palette.Continuous

	// PointSize is the default glyph radius for point layers.
	PointSize vg.Length

	// LineWidth is the default stroke width for line layers.
	LineWidth vg.Length

	// Border draws a frame around each panel.
	Border bool
}

func (t Theme) apply(p Plot) Plot {
	p.theme = t
	return p
}

// resolve fills in defaults for zero-valued fields.
func (t Theme) resolve() Theme {
	if t.Background == nil {
		t.Background = color.Gray{0xee}
	}
	if t.Grid == nil {
		t.Grid = color.White
	}
	if t.Palette == nil {
		t.Palette = DefaultPalette()
	}
	if t.Ramp == nil {
		t.Ramp = palette.Viridis
	}
	if t.PointSize == 0 {
		t.PointSize = 2.5
	}
	if t.LineWidth == 0 {
		t.LineWidth = 1
	}
	return t
}

// ThemeGray is the default look: gray panel background with white
// grid lines.
func ThemeGray() Theme {
	return Theme{
		Background: color.Gray{0xee},
		Grid:       color.White,
	}
}

// ThemeMinimal is a white background with faint grid lines and no
// panel border.
func ThemeMinimal() Theme {
	return Theme{
		Background: color.White,
		Grid:       color.Gray{0xdd},
	}
}

// ThemeBW is a white background with light gray grid lines and a
// border around each panel.
func ThemeBW() Theme {
	return Theme{
		Background: color.White,
		Grid:       color.Gray{0xd9},
		Border:     true,
	}
}

// DefaultPalette returns the default categorical color palette. The
// caller owns the returned slice.
func DefaultPalette() []color.Color {
	return []color.Color{
		color.RGBA{0x4c, 0x72, 0xb0, 0xff},
		color.RGBA{0x55, 0xa8, 0x68, 0xff},
		color.RGBA{0xc4, 0x4e, 0x52, 0xff},
		color.RGBA{0x81, 0x72, 0xb2, 0xff},
		color.RGBA{0xcc, 0xb9, 0x74, 0xff},
		color.RGBA{0x64, 0xb5, 0xcd, 0xff},
	}
}

// glyphShapes is the cycle of glyph shapes assigned to the levels of
// a categorical shape mapping.
var glyphShapes = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.PyramidGlyph{},
	draw.BoxGlyph{},
	draw.PlusGlyph{},
	draw.CrossGlyph{},
	draw.RingGlyph{},
}

// withAlpha scales the opacity of c by a. Values of a outside (0, 1)
// leave c unchanged.
func withAlpha(c color.Color, a float64) color.Color {
	if c == nil || a <= 0 || a >= 1 {
		return c
	}
	r, g, b, al := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * a),
		G: uint16(float64(g) * a),
		B: uint16(float64(b) * a),
		A: uint16(float64(al) * a),
	}
}
