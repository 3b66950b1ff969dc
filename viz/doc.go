// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viz builds statistical plots declaratively.
//
// A Plot is assembled by extension: NewPlot binds a dataset and an
// aesthetic mapping, and Add returns a new Plot with layers, scale
// transforms, facets, labels, or a theme added. Plots are values;
// extending one never modifies the original, so a base specification
// can be bound to a variable and extended several different ways.
//
//	base := viz.NewPlot(d, viz.Aes{X: "gdpPercap", Y: "lifeExp", Color: "continent"})
//	p := base.Add(viz.LayerPoints{}, viz.ScaleXLog10{}).
//		Add(viz.Labels{Title: "Life expectancy vs income"})
//	err := p.Save("life.png")
//
// Field names are resolved only when the plot is rendered, so
// building a plot never fails: a mapping to an unknown field
// surfaces as a *FieldError from Render or Save.
//
// Rendering delegates drawing to gonum.org/v1/plot. A faceted plot
// renders one sub-panel per distinct value of the facet field,
// arranged in a grid; the panels share axis ranges unless the
// facet's Scales says otherwise.
package viz
