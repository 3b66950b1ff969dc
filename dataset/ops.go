// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"sort"
	"strconv"
)

// A Group is one partition of a Dataset: the rows that share one
// value of some column.
type Group struct {
	// Value is the shared cell value, as written.
	Value string

	// Data holds the partition's rows, in input order.
	Data *Dataset
}

// Levels returns the distinct present values of the named column in
// the column's natural order: ascending for numeric and temporal
// columns, lexical for categorical ones. Missing cells contribute no
// level. It returns nil if the Dataset has no such column.
func (d *Dataset) Levels(name string) []string {
	f, ok := d.Column(name)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var levels []string
	for i := 0; i < f.Len(); i++ {
		if f.Missing(i) {
			continue
		}
		if s := f.value(i); !seen[s] {
			seen[s] = true
			levels = append(levels, s)
		}
	}
	switch f.Kind {
	case Numeric:
		sort.Slice(levels, func(i, j int) bool {
			a, _ := strconv.ParseFloat(levels[i], 64)
			b, _ := strconv.ParseFloat(levels[j], 64)
			return a < b
		})
	case Temporal:
		sort.Slice(levels, func(i, j int) bool {
			a, _ := parseTime(levels[i])
			b, _ := parseTime(levels[j])
			return a.Before(b)
		})
	default:
		sort.Strings(levels)
	}
	return levels
}

// GroupBy partitions the Dataset by the values of the named column.
// Groups appear in Levels order; rows with a missing cell form a
// final group with Value "". It returns nil if the Dataset has no
// such column.
func (d *Dataset) GroupBy(name string) []Group {
	f, ok := d.Column(name)
	if !ok {
		return nil
	}
	rows := make(map[string][]int)
	var missingRows []int
	for i := 0; i < f.Len(); i++ {
		if f.Missing(i) {
			missingRows = append(missingRows, i)
			continue
		}
		v := f.value(i)
		rows[v] = append(rows[v], i)
	}
	var groups []Group
	for _, v := range d.Levels(name) {
		groups = append(groups, Group{Value: v, Data: d.subset(rows[v])})
	}
	if len(missingRows) > 0 {
		groups = append(groups, Group{Value: "", Data: d.subset(missingRows)})
	}
	return groups
}

// Filter returns a new Dataset holding the rows for which keep
// returns true, in input order.
func (d *Dataset) Filter(keep func(i int) bool) *Dataset {
	var rows []int
	for i := 0; i < d.Len(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return d.subset(rows)
}

// Sort returns a new Dataset with rows in ascending order of the
// named column. The sort is stable; missing cells order last. If the
// Dataset has no such column, Sort returns d unchanged.
func (d *Dataset) Sort(name string) *Dataset {
	f, ok := d.Column(name)
	if !ok {
		return d
	}
	rows := make([]int, d.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return f.less(rows[i], rows[j])
	})
	return d.subset(rows)
}
