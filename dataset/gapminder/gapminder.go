// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gapminder embeds an excerpt of the Gapminder dataset:
// per-country life expectancy, population, and GDP per capita, every
// five years from 1952 to 2007.
//
// The excerpt covers fourteen countries across five continents. It is
// the input for the examples and for cmd/workshop.
package gapminder

import (
	"bytes"
	_ "embed"

	"github.com/gridplot/gridplot/dataset"
)

//go:embed gapminder.csv
var raw []byte

// Load parses the embedded table. Each call returns a fresh Dataset.
func Load() *dataset.Dataset {
	d, err := dataset.ReadCSV(bytes.NewReader(raw))
	if err != nil {
		panic("gapminder: embedded table is malformed: " + err.Error())
	}
	return d
}
