// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gallery collects exported figures into browsable
// overviews: a contact sheet tiling thumbnails of many images into
// one PNG, and an HTML index linking the full files.
package gallery

import (
	"fmt"
	"image"
	"math"
	"os"

	"image/png"

	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// An Option configures a contact sheet.
type Option func(*config)

type config struct {
	cols         int
	tileW, tileH int
	pad          int
}

// Cols sets the number of thumbnail columns. The default is the
// smallest square that fits.
func Cols(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.cols = n
		}
	}
}

// Tile sets the thumbnail cell size in pixels. The default is
// 320 by 240.
func Tile(w, h int) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.tileW, c.tileH = w, h
		}
	}
}

// ContactSheet tiles scaled-down copies of the given raster images
// (PNG or JPEG) into a single PNG written to out. Images are laid
// out in reading order, each fit to its cell without distortion.
func ContactSheet(paths []string, out string, opts ...Option) error {
	if len(paths) == 0 {
		return fmt.Errorf("contact sheet has no images")
	}
	cfg := config{tileW: 320, tileH: 240, pad: 10}
	for _, o := range opts {
		o(&cfg)
	}
	cols := cfg.cols
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(paths)))))
	}
	rows := (len(paths) + cols - 1) / cols

	w := cols*cfg.tileW + (cols+1)*cfg.pad
	h := rows*cfg.tileH + (rows+1)*cfg.pad
	sheet := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, xdraw.Src)

	for i, path := range paths {
		src, err := decode(path)
		if err != nil {
			return err
		}
		row, col := i/cols, i%cols
		x0 := cfg.pad + col*(cfg.tileW+cfg.pad)
		y0 := cfg.pad + row*(cfg.tileH+cfg.pad)
		cell := image.Rect(x0, y0, x0+cfg.tileW, y0+cfg.tileH)
		dst := fitRect(cell, src.Bounds().Dx(), src.Bounds().Dy())
		xdraw.CatmullRom.Scale(sheet, dst, src, src.Bounds(), xdraw.Src, nil)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, sheet); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// fitRect returns the largest rectangle with a w-by-h aspect ratio
// that fits in cell, centered.
func fitRect(cell image.Rectangle, w, h int) image.Rectangle {
	scale := math.Min(
		float64(cell.Dx())/float64(w),
		float64(cell.Dy())/float64(h),
	)
	tw := int(float64(w)*scale + 0.5)
	th := int(float64(h)*scale + 0.5)
	x0 := cell.Min.X + (cell.Dx()-tw)/2
	y0 := cell.Min.Y + (cell.Dy()-th)/2
	return image.Rect(x0, y0, x0+tw, y0+th)
}
