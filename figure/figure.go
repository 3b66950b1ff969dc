// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figure arranges several plots on a single canvas.
//
// A figure comes in two flavors. Grid lays plots out left to right,
// top to bottom, in uniform cells, optionally tagging each panel
// with a corner label. NewCanvas places plots by hand in normalized
// figure coordinates, which permits insets and overlapping panels.
//
// Unlike the facets of a single plot, the panels of a figure are
// independent: each keeps its own axes, legend, and theme, and
// nothing is aligned across them.
package figure

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"

	"github.com/gridplot/gridplot/internal/backend"
	"github.com/gridplot/gridplot/viz"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Rect is a region of the figure in normalized coordinates: X and
// Y give the lower-left corner and W and H the extent, with (0, 0)
// the figure's lower-left corner and (1, 1) its upper-right.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and s cover any common area. Regions
// that only share an edge don't overlap.
func (r Rect) Overlaps(s Rect) bool {
	return r.X < s.X+s.W && s.X < r.X+r.W &&
		r.Y < s.Y+s.H && s.Y < r.Y+r.H
}

// A Placement is one plot of a figure and the region it covers.
type Placement struct {
	Plot  viz.Plot
	Rect  Rect
	Label string
}

// A Figure is a set of plots placed on one canvas.
type Figure struct {
	placements []Placement
}

// A GridOption configures the layout of a Grid figure.
type GridOption func(*gridConfig)

type gridConfig struct {
	cols   int
	labels []string
}

// Cols sets the number of grid columns. The default is the smallest
// square that fits.
func Cols(n int) GridOption {
	return func(c *gridConfig) {
		if n > 0 {
			c.cols = n
		}
	}
}

// PanelLabels tags the grid's panels, in reading order, with the
// given corner labels. Extra labels are ignored and unlabeled panels
// are fine.
func PanelLabels(labels ...string) GridOption {
	return func(c *gridConfig) {
		c.labels = labels
	}
}

// Grid arranges plots in uniform cells, left to right and top to
// bottom.
func Grid(plots []viz.Plot, opts ...GridOption) *Figure {
	var cfg gridConfig
	for _, o := range opts {
		o(&cfg)
	}
	f := &Figure{}
	n := len(plots)
	if n == 0 {
		return f
	}
	cols := cfg.cols
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(n))))
	}
	rows := (n + cols - 1) / cols
	for i, p := range plots {
		row, col := i/cols, i%cols
		r := Rect{
			X: float64(col) / float64(cols),
			Y: float64(rows-1-row) / float64(rows),
			W: 1 / float64(cols),
			H: 1 / float64(rows),
		}
		var label string
		if i < len(cfg.labels) {
			label = cfg.labels[i]
		}
		f.placements = append(f.placements, Placement{p, r, label})
	}
	return f
}

// NewCanvas returns an empty figure to place plots on by hand.
func NewCanvas() *Figure {
	return &Figure{}
}

// Place adds p to the figure covering r. Placements may overlap;
// later ones draw over earlier ones, so an inset goes last.
func (f *Figure) Place(p viz.Plot, r Rect) *Figure {
	f.placements = append(f.placements, Placement{Plot: p, Rect: r})
	return f
}

// Panels returns the figure's placements in the order they were
// added, which for a grid is reading order.
func (f *Figure) Panels() []Placement {
	return append([]Placement(nil), f.placements...)
}

// An Option configures how a figure is written out.
type Option func(*config)

type config struct {
	w, h float64
	dpi  int
}

// Size sets the figure size in inches. The default is 10 by 7.
func Size(w, h float64) Option {
	return func(c *config) {
		if w > 0 {
			c.w = w
		}
		if h > 0 {
			c.h = h
		}
	}
}

// DPI sets the resolution of raster formats in dots per inch. The
// default is 96. Vector formats ignore it.
func DPI(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.dpi = n
		}
	}
}

// Save writes the figure to path. The format comes from the path's
// extension, as for the Save method of viz.Plot.
func (f *Figure) Save(path string, opts ...Option) error {
	if len(f.placements) == 0 {
		return errors.New("figure has no plots")
	}
	c := config{w: 10, h: 7, dpi: 96}
	for _, o := range opts {
		o(&c)
	}

	// Render every plot before opening the output, so a bad plot
	// doesn't leave a truncated file behind.
	rendered := make([]*viz.Rendered, len(f.placements))
	for i, pl := range f.placements {
		r, err := pl.Plot.Render()
		if err != nil {
			return fmt.Errorf("plot %d: %w", i, err)
		}
		rendered[i] = r
	}

	w := vg.Length(c.w) * vg.Inch
	h := vg.Length(c.h) * vg.Inch
	return backend.Save(path, w, h, c.dpi, func(dc draw.Canvas) error {
		for i, pl := range f.placements {
			sub := subCanvas(dc, pl.Rect)
			rendered[i].Draw(sub)
			if pl.Label != "" {
				drawLabel(sub, pl.Label)
			}
		}
		return nil
	})
}

// subCanvas returns the part of dc that a normalized rect covers.
func subCanvas(dc draw.Canvas, r Rect) draw.Canvas {
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y
	sub := dc
	sub.Rectangle = vg.Rectangle{
		Min: vg.Point{
			X: dc.Min.X + vg.Length(r.X)*w,
			Y: dc.Min.Y + vg.Length(r.Y)*h,
		},
		Max: vg.Point{
			X: dc.Min.X + vg.Length(r.X+r.W)*w,
			Y: dc.Min.Y + vg.Length(r.Y+r.H)*h,
		},
	}
	return sub
}

// drawLabel puts a bold panel tag in the top-left corner of c.
func drawLabel(c draw.Canvas, s string) {
	fnt := font.From(plot.DefaultFont, vg.Points(12))
	fnt.Weight = xfont.WeightBold
	sty := text.Style{
		Color:   color.Black,
		Font:    fnt,
		XAlign:  text.XLeft,
		YAlign:  text.YTop,
		Handler: text.Plain{Fonts: font.DefaultCache},
	}
	pt := vg.Point{X: c.Min.X + vg.Points(2), Y: c.Max.Y - vg.Points(2)}
	c.FillText(sty, pt, s)
}
