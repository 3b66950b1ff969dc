// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

//go:generate stringer -type ScaleMode

// A ScaleMode selects whether facet panels share axis ranges.
type ScaleMode int

const (
	// Fixed gives every panel the same x and y ranges, computed
	// from all of the data.
	Fixed ScaleMode = iota

	// FreeX gives each panel its own x range; y stays shared.
	FreeX

	// FreeY gives each panel its own y range; x stays shared.
	FreeY

	// Free gives each panel its own x and y ranges.
	Free
)

// FacetWrap splits the plot into one panel per distinct value of a
// field, wrapped into a grid.
type FacetWrap struct {
	// By names the field whose values define the panels. Panels
	// appear in the field's level order; rows with a missing cell
	// form a final panel labeled "NA". An empty By leaves the
	// plot unfaceted.
	By string

	// Cols is the number of panel columns. 0 picks a near-square
	// layout.
	Cols int

	// Scales selects shared or per-panel axis ranges.
	Scales ScaleMode
}

func (f FacetWrap) apply(p Plot) Plot {
	p.facet = f
	return p
}

// FacetGrid splits the plot into a matrix of panels: one row per
// level of the Rows field and one column per level of the Cols
// field. Rows with a missing cell in either field are left out.
type FacetGrid struct {
	// Rows and Cols name the faceting fields. Either may be ""
	// for a single row or column; both empty leaves the plot
	// unfaceted.
	Rows, Cols string

	// Scales selects shared or per-panel axis ranges.
	Scales ScaleMode
}

func (f FacetGrid) apply(p Plot) Plot {
	p.facet = f
	return p
}
