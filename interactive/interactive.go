// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interactive turns plots into HTML pages backed by the
// Apache ECharts library.
//
// The adapter preserves a plot's aesthetic mappings: positions,
// colors, shapes, and grouping carry over, and each facet panel
// becomes its own chart on the page. Every chart pans and zooms
// along x, and hovering a mark shows its values. Features the HTML
// backend can't express, such as continuous color ramps and jitter,
// degrade silently rather than fail.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/gridplot/gridplot/dataset"
	"github.com/gridplot/gridplot/viz"
)

// A Chart is an interactive rendition of a plot, ready to be written
// out as HTML.
type Chart struct {
	plot   viz.Plot
	charts []components.Charter
}

// FromPlot converts a plot to an interactive chart. It fails the
// same way rendering does: with a viz.FieldError for a mapping to an
// unknown field, and a viz.RenderError for a layer missing a
// required channel.
func FromPlot(p viz.Plot) (*Chart, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	conv := newConverter(p)
	ch := &Chart{plot: p}
	for _, part := range partition(p) {
		title := part.label
		if title == "" {
			title = p.Labs().Title
		}
		ch.charts = append(ch.charts, conv.chart(title, part.data))
	}
	return ch, nil
}

// Mapping returns the base aesthetic mapping of the underlying plot,
// unchanged by the conversion.
func (c *Chart) Mapping() viz.Aes {
	return c.plot.Mapping()
}

// PanelCount returns the number of charts on the page, one per facet
// panel.
func (c *Chart) PanelCount() int {
	return len(c.charts)
}

// WriteHTML writes the chart as an HTML page.
func (c *Chart) WriteHTML(w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	if t := c.plot.Labs().Title; t != "" {
		page.PageTitle = t
	}
	page.AddCharts(c.charts...)
	return page.Render(w)
}

// SaveHTML writes the chart to path, overwriting any existing file.
func (c *Chart) SaveHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// validate applies the renderer's deferred checks without rendering:
// every mapped field must exist and every layer must have its
// required channels.
func validate(p viz.Plot) error {
	d := p.Data()
	if d == nil {
		return errors.New("plot has no data")
	}
	mappings := []viz.Aes{p.Mapping()}
	for _, l := range p.Layers() {
		mappings = append(mappings, l.Mapping())
	}
	for _, a := range mappings {
		for _, name := range []string{a.X, a.Y, a.Color, a.Shape, a.Size, a.Group} {
			if name == "" {
				continue
			}
			if _, ok := d.Column(name); !ok {
				return &viz.FieldError{Field: name}
			}
		}
	}
	switch f := p.FacetSpec().(type) {
	case viz.FacetWrap:
		if f.By != "" {
			if _, ok := d.Column(f.By); !ok {
				return &viz.FieldError{Field: f.By}
			}
		}
	case viz.FacetGrid:
		for _, name := range []string{f.Rows, f.Cols} {
			if name == "" {
				continue
			}
			if _, ok := d.Column(name); !ok {
				return &viz.FieldError{Field: name}
			}
		}
	}
	for _, l := range p.Layers() {
		a := mergeAes(l.Mapping(), p.Mapping())
		if _, isBox := l.(viz.LayerBox); !isBox && a.X == "" {
			return &viz.RenderError{Layer: layerKind(l), Channel: "x"}
		}
		if a.Y == "" {
			return &viz.RenderError{Layer: layerKind(l), Channel: "y"}
		}
	}
	return nil
}

func layerKind(l viz.Layer) string {
	switch l.(type) {
	case viz.LayerPoints:
		return "points"
	case viz.LayerLines:
		return "lines"
	case viz.LayerBox:
		return "box"
	case viz.LayerSmooth:
		return "smooth"
	}
	return fmt.Sprintf("%T", l)
}

func mergeAes(a, base viz.Aes) viz.Aes {
	if a.X == "" {
		a.X = base.X
	}
	if a.Y == "" {
		a.Y = base.Y
	}
	if a.Color == "" {
		a.Color = base.Color
	}
	if a.Shape == "" {
		a.Shape = base.Shape
	}
	if a.Size == "" {
		a.Size = base.Size
	}
	if a.Group == "" {
		a.Group = base.Group
	}
	return a
}

// A panel is one facet's slice of the data.
type panel struct {
	label string
	data  *dataset.Dataset
}

// partition mirrors the renderer's facet semantics: wrapped facets
// collect rows with a missing cell in a trailing NA panel, grid
// facets leave those rows out. Empty grid cells are omitted, since
// an empty chart says nothing.
func partition(p viz.Plot) []panel {
	d := p.Data()
	switch f := p.FacetSpec().(type) {
	case viz.FacetWrap:
		if f.By == "" {
			break
		}
		groups := d.GroupBy(f.By)
		if len(groups) == 0 {
			break
		}
		var parts []panel
		for _, g := range groups {
			label := g.Value
			if label == "" {
				label = "NA"
			}
			parts = append(parts, panel{label, g.Data})
		}
		return parts

	case viz.FacetGrid:
		if f.Rows == "" && f.Cols == "" {
			break
		}
		rvals, cvals := []string{""}, []string{""}
		var rstr, cstr []string
		if f.Rows != "" {
			rvals = d.Levels(f.Rows)
			fld, _ := d.Column(f.Rows)
			rstr = fld.Strings()
		}
		if f.Cols != "" {
			cvals = d.Levels(f.Cols)
			fld, _ := d.Column(f.Cols)
			cstr = fld.Strings()
		}
		if len(rvals) == 0 || len(cvals) == 0 {
			break
		}
		var parts []panel
		for _, rv := range rvals {
			for _, cv := range cvals {
				cell := d.Filter(func(i int) bool {
					if rstr != nil && rstr[i] != rv {
						return false
					}
					if cstr != nil && cstr[i] != cv {
						return false
					}
					return true
				})
				if cell.Len() == 0 {
					continue
				}
				label := rv
				if label == "" {
					label = cv
				} else if cv != "" {
					label = rv + " / " + cv
				}
				parts = append(parts, panel{label, cell})
			}
		}
		return parts
	}
	return []panel{{"", d}}
}
