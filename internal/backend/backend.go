// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend maps output file extensions to drawing canvases.
package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// A Canvas is a drawing surface that can serialize itself in the
// format implied by the file extension it was created for.
type Canvas struct {
	draw.Canvas
	out io.WriterTo
}

// New returns a canvas of the given size for the file extension ext,
// as returned by filepath.Ext. The dpi matters only to the raster
// formats. New fails on an extension it has no encoder for.
func New(ext string, w, h vg.Length, dpi int) (*Canvas, error) {
	switch strings.ToLower(ext) {
	case ".png":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		return &Canvas{draw.New(c), vgimg.PngCanvas{Canvas: c}}, nil
	case ".jpg", ".jpeg":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		return &Canvas{draw.New(c), vgimg.JpegCanvas{Canvas: c}}, nil
	case ".tif", ".tiff":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		return &Canvas{draw.New(c), vgimg.TiffCanvas{Canvas: c}}, nil
	case ".pdf":
		c := vgpdf.New(w, h)
		return &Canvas{draw.New(c), c}, nil
	case ".svg":
		c := vgsvg.New(w, h)
		return &Canvas{draw.New(c), c}, nil
	}
	return nil, fmt.Errorf("unsupported image format %q", ext)
}

// WriteTo serializes the canvas to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	return c.out.WriteTo(w)
}

// Save draws into a fresh canvas via render and writes the result to
// path, silently replacing an existing file. The format comes from
// path's extension.
func Save(path string, w, h vg.Length, dpi int, render func(draw.Canvas) error) error {
	c, err := New(filepath.Ext(path), w, h, dpi)
	if err != nil {
		return err
	}
	if err := render(c.Canvas); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
