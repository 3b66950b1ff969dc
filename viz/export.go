// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"github.com/gridplot/gridplot/internal/backend"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// An Option configures how a plot is written out.
type Option func(*exportConfig)

type exportConfig struct {
	w, h float64
	dpi  int
}

// Size sets the figure size in inches. The default is 7 by 5.
func Size(w, h float64) Option {
	return func(c *exportConfig) {
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
	return func(c *exportConfig) {
		if n > 0 {
			c.dpi = n
		}
	}
}

// Save renders the plot and writes it to path. The format comes from
// the path's extension: .png, .jpg, .tif, .pdf, or .svg. An existing
// file is silently overwritten.
func (p Plot) Save(path string, opts ...Option) error {
	r, err := p.Render()
	if err != nil {
		return err
	}
	return r.Save(path, opts...)
}

// Save writes the rendered plot to path. Saving the same Rendered
// twice writes the same bytes, so raster exports are reproducible.
func (r *Rendered) Save(path string, opts ...Option) error {
	c := exportConfig{w: 7, h: 5, dpi: 96}
	for _, o := range opts {
		o(&c)
	}
	w := vg.Length(c.w) * vg.Inch
	h := vg.Length(c.h) * vg.Inch
	return backend.Save(path, w, h, c.dpi, func(dc draw.Canvas) error {
		r.Draw(dc)
		return nil
	})
}
