// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset loads delimited text files into typed, immutable,
// column-oriented tables.
//
// The loader reads a header row that names the columns and then
// infers a kind for every column from its cells: numeric, temporal,
// or categorical. Empty cells and the literal "NA" are missing
// values; they never defeat inference. A Dataset is never modified
// after loading, so downstream packages can share one freely.
package dataset

import (
	"math"
	"time"
)

// Kind is the inferred value kind of a column.
type Kind int

const (
	// Categorical columns hold uninterpreted strings.
	Categorical Kind = iota

	// Numeric columns hold float64s.
	Numeric

	// Temporal columns hold instants in time.
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	}
	return "invalid"
}

// A Field is one named, typed column of a Dataset.
type Field struct {
	// Name is the column's header name.
	Name string

	// Kind is the column's inferred value kind.
	Kind Kind

	// raw holds the cells as written, normalized to "" for
	// missing values. It is the backing store for categorical
	// columns and the display form for the others.
	raw []string

	// nums holds a numeric column's values, NaN for missing.
	nums []float64

	// times holds a temporal column's values, zero for missing.
	times []time.Time
}

// Len returns the number of rows.
func (f Field) Len() int {
	return len(f.raw)
}

// Missing reports whether row i has no value.
func (f Field) Missing(i int) bool {
	return f.raw[i] == ""
}

// Floats returns the column as float64s: a numeric column's values,
// or seconds since the Unix epoch for a temporal one. Missing cells
// are NaN. It returns nil for a categorical column.
func (f Field) Floats() []float64 {
	switch f.Kind {
	case Numeric:
		out := make([]float64, len(f.nums))
		copy(out, f.nums)
		return out
	case Temporal:
		out := make([]float64, len(f.times))
		for i, t := range f.times {
			if f.Missing(i) {
				out[i] = math.NaN()
				continue
			}
			out[i] = float64(t.Unix())
		}
		return out
	}
	return nil
}

// Strings returns the cells as written, with missing cells as "".
func (f Field) Strings() []string {
	out := make([]string, len(f.raw))
	copy(out, f.raw)
	return out
}

// Times returns a temporal column's values, zero for missing cells.
// It returns nil for other kinds.
func (f Field) Times() []time.Time {
	if f.Kind != Temporal {
		return nil
	}
	out := make([]time.Time, len(f.times))
	copy(out, f.times)
	return out
}

// value returns the cell at row i as written.
func (f Field) value(i int) string {
	return f.raw[i]
}

// less orders rows i and j by the column's natural order. Missing
// cells (and numeric NaNs) order after everything else.
func (f Field) less(i, j int) bool {
	mi, mj := f.Missing(i), f.Missing(j)
	if mi || mj {
		return !mi && mj
	}
	switch f.Kind {
	case Numeric:
		a, b := f.nums[i], f.nums[j]
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a < b
	case Temporal:
		return f.times[i].Before(f.times[j])
	}
	return f.raw[i] < f.raw[j]
}

// A Dataset is an immutable table of equal-length columns.
type Dataset struct {
	fields []Field
	index  map[string]int
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if len(d.fields) == 0 {
		return 0
	}
	return d.fields[0].Len()
}

// Fields returns the columns in input order. The returned slice is
// fresh, but the Fields share the Dataset's backing arrays.
func (d *Dataset) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Column returns the named column and whether it exists.
func (d *Dataset) Column(name string) (Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// subset returns a new Dataset holding the given rows, in the given
// order. Row indices may repeat.
func (d *Dataset) subset(rows []int) *Dataset {
	sub := &Dataset{index: make(map[string]int)}
	for i, f := range d.fields {
		g := Field{Name: f.Name, Kind: f.Kind, raw: make([]string, len(rows))}
		for j, r := range rows {
			g.raw[j] = f.raw[r]
		}
		switch f.Kind {
		case Numeric:
			g.nums = make([]float64, len(rows))
			for j, r := range rows {
				g.nums[j] = f.nums[r]
			}
		case Temporal:
			g.times = make([]time.Time, len(rows))
			for j, r := range rows {
				g.times[j] = f.times[r]
			}
		}
		sub.fields = append(sub.fields, g)
		sub.index[f.Name] = i
	}
	return sub
}
