// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"strconv"
	"time"
)

// dateLayouts are the temporal formats the loader recognizes, in
// priority order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// missing reports whether a cell has no value. Empty cells and the
// literal "NA" are missing.
func missing(s string) bool {
	return s == "" || s == "NA"
}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func parseable(k Kind, s string) bool {
	var err error
	switch k {
	case Numeric:
		_, err = strconv.ParseFloat(s, 64)
	case Temporal:
		_, err = parseTime(s)
	}
	return err == nil
}

// inferKind picks a column's kind using best-effort pattern-based
// parsing. The kinds are tried in priority order; the first kind
// whose parser accepts every present cell wins. A column that no
// parser accepts in full, or that has no present cells at all, is
// categorical.
func inferKind(raw []string) Kind {
	present := false
	for _, s := range raw {
		if !missing(s) {
			present = true
			break
		}
	}
	if !present {
		return Categorical
	}

tryKinds:
	for _, k := range []Kind{Numeric, Temporal} {
		for _, s := range raw {
			if missing(s) {
				continue
			}
			if !parseable(k, s) {
				continue tryKinds
			}
		}
		return k
	}
	return Categorical
}

// newField builds a typed column from raw cells. The cells must
// already be whitespace-trimmed.
func newField(name string, raw []string) Field {
	f := Field{Name: name, Kind: inferKind(raw), raw: make([]string, len(raw))}
	for i, s := range raw {
		if !missing(s) {
			f.raw[i] = s
		}
	}
	switch f.Kind {
	case Numeric:
		f.nums = make([]float64, len(f.raw))
		for i, s := range f.raw {
			if s == "" {
				f.nums[i] = math.NaN()
				continue
			}
			f.nums[i], _ = strconv.ParseFloat(s, 64)
		}
	case Temporal:
		f.times = make([]time.Time, len(f.raw))
		for i, s := range f.raw {
			if s == "" {
				continue
			}
			f.times[i], _ = parseTime(s)
		}
	}
	return f
}
