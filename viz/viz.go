// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"log"
	"os"

	"github.com/gridplot/gridplot/dataset"
)

// Warning is a logger for reporting conditions that don't prevent
// the production of a plot, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[viz] ", log.Lshortfile)

// An Aes maps aesthetic channels to field names. The zero Aes maps
// nothing; an empty channel is simply unmapped.
type Aes struct {
	// X and Y name the fields giving each mark's position.
	X, Y string

	// Color names a field to vary mark color by. A categorical
	// field gets one palette color per level; a numeric field is
	// mapped through the theme's continuous ramp.
	Color string

	// Shape names a categorical field to vary point glyphs by.
	Shape string

	// Size names a numeric field to scale point areas by.
	Size string

	// Group names a field that splits marks into separate series
	// without varying their style.
	Group string
}

// merge returns a with unset channels filled in from base.
func (a Aes) merge(base Aes) Aes {
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

// A Plotter is an element that extends a Plot: a layer, a scale
// transform, a facet, a theme, or a label set.
type Plotter interface {
	// apply returns p extended with this element. Add hands every
	// implementation a private copy of the plot, which it may
	// modify freely.
	apply(p Plot) Plot
}

// A Layer is a Plotter that draws data marks.
type Layer interface {
	Plotter

	// Mapping returns the layer's aesthetic overrides.
	Mapping() Aes
}

// A Plot is an immutable plot specification: a dataset, an aesthetic
// mapping, and the elements added to it. The zero Plot is not
// useful; start with NewPlot.
type Plot struct {
	data       *dataset.Dataset
	aes        Aes
	layers     []Layer
	xlog, ylog bool
	facet      Plotter
	labels     Labels
	theme      Theme
}

// NewPlot returns a plot of data with the given base aesthetic
// mapping. Field names are not checked here; a mapping to an unknown
// field only surfaces as an error when the plot is rendered.
func NewPlot(data *dataset.Dataset, aes Aes) Plot {
	return Plot{data: data, aes: aes}
}

// Add returns a new Plot extended with the given elements, applied
// in order. The receiver is never modified, so an intermediate plot
// can be kept and extended several different ways.
func (p Plot) Add(elts ...Plotter) Plot {
	q := p.clone()
	for _, e := range elts {
		q = e.apply(q)
	}
	return q
}

func (p Plot) clone() Plot {
	p.layers = append([]Layer(nil), p.layers...)
	return p
}

// Data returns the plot's dataset.
func (p Plot) Data() *dataset.Dataset {
	return p.data
}

// Mapping returns the plot's base aesthetic mapping.
func (p Plot) Mapping() Aes {
	return p.aes
}

// Layers returns the plot's layers in draw order.
func (p Plot) Layers() []Layer {
	return append([]Layer(nil), p.layers...)
}

// FacetSpec returns the plot's facet, a FacetWrap or FacetGrid, or
// nil for an unfaceted plot.
func (p Plot) FacetSpec() Plotter {
	return p.facet
}

// Labs returns the plot's accumulated labels.
func (p Plot) Labs() Labels {
	return p.labels
}

// Themed returns the plot's theme. Zero fields mean the defaults.
func (p Plot) Themed() Theme {
	return p.theme
}

// XLog reports whether the x axis uses a log scale.
func (p Plot) XLog() bool {
	return p.xlog
}

// YLog reports whether the y axis uses a log scale.
func (p Plot) YLog() bool {
	return p.ylog
}

// mappings returns the base mapping followed by each layer's
// overrides, in order.
func (p Plot) mappings() []Aes {
	out := []Aes{p.aes}
	for _, l := range p.layers {
		out = append(out, l.Mapping())
	}
	return out
}
