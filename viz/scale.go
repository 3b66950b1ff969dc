// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

// ScaleXLog10 draws the x axis on a log (base 10) scale. Rows with a
// nonpositive x cannot be placed on such an axis; they are dropped
// with a warning.
type ScaleXLog10 struct{}

func (ScaleXLog10) apply(p Plot) Plot {
	p.xlog = true
	return p
}

// ScaleYLog10 draws the y axis on a log (base 10) scale.
type ScaleYLog10 struct{}

func (ScaleYLog10) apply(p Plot) Plot {
	p.ylog = true
	return p
}
