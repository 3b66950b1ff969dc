// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gapminder

import (
	"reflect"
	"testing"

	"github.com/gridplot/gridplot/dataset"
)

func TestLoad(t *testing.T) {
	d := Load()

	if d.Len() != 168 {
		t.Errorf("got %d rows, want 168", d.Len())
	}

	want := map[string]dataset.Kind{
		"country":   dataset.Categorical,
		"continent": dataset.Categorical,
		"year":      dataset.Numeric,
		"lifeExp":   dataset.Numeric,
		"pop":       dataset.Numeric,
		"gdpPercap": dataset.Numeric,
	}
	for name, kind := range want {
		f, ok := d.Column(name)
		if !ok {
			t.Errorf("missing column %q", name)
			continue
		}
		if f.Kind != kind {
			t.Errorf("column %q is %v, want %v", name, f.Kind, kind)
		}
		for i := 0; i < f.Len(); i++ {
			if f.Missing(i) {
				t.Errorf("column %q row %d is missing", name, i)
				break
			}
		}
	}

	continents := []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}
	if got := d.Levels("continent"); !reflect.DeepEqual(got, continents) {
		t.Errorf("continents = %q, want %q", got, continents)
	}

	life, _ := d.Column("lifeExp")
	for i, v := range life.Floats() {
		if v < 20 || v > 90 {
			t.Errorf("row %d: implausible lifeExp %v", i, v)
		}
	}
}
