// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestReadCSV(t *testing.T) {
	for _, test := range []struct {
		input string
		names []string
		kinds []Kind
		rows  int
	}{
		// Numeric, categorical, and temporal inference.
		{"country,year,lifeExp,visited\nNorway,1952,72.67,1952-03-01\nPeru,1957,43.9,1957-07-15",
			[]string{"country", "year", "lifeExp", "visited"},
			[]Kind{Categorical, Numeric, Numeric, Temporal},
			2,
		},

		// One unparseable cell makes the column categorical.
		{"x\n1\n2\nn/a", []string{"x"}, []Kind{Categorical}, 3},

		// Missing cells do not defeat inference.
		{"x,y\n1,2\nNA,3\n,4", []string{"x", "y"}, []Kind{Numeric, Numeric}, 3},

		// A column with no present cells is categorical.
		{"x,y\nNA,1\n,2", []string{"x", "y"}, []Kind{Categorical, Numeric}, 2},

		// A header with no records is a valid, empty table.
		{"a,b,c", []string{"a", "b", "c"}, []Kind{Categorical, Categorical, Categorical}, 0},

		// Quoted cells may contain the delimiter.
		{"name,pop\n\"Congo, Dem. Rep.\",55379852",
			[]string{"name", "pop"}, []Kind{Categorical, Numeric}, 1},

		// Surrounding space is trimmed before inference.
		{"x\n1.5 \n 2", []string{"x"}, []Kind{Numeric}, 2},
	} {
		d, err := ReadCSV(strings.NewReader(test.input))
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.input, err)
			continue
		}
		var names []string
		var kinds []Kind
		for _, f := range d.Fields() {
			names = append(names, f.Name)
			kinds = append(kinds, f.Kind)
		}
		if !reflect.DeepEqual(names, test.names) || !reflect.DeepEqual(kinds, test.kinds) || d.Len() != test.rows {
			t.Errorf("%q:\nwant %v %v, %d rows\ngot  %v %v, %d rows",
				test.input, test.names, test.kinds, test.rows, names, kinds, d.Len())
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, test := range []struct {
		input string
		line  int
	}{
		// No header row.
		{"", 1},

		// Ragged records.
		{"a,b\n1,2\n3", 3},
		{"a,b\n1,2,3", 2},

		// Unterminated quote.
		{"a,b\n\"x,2", 2},

		// Bad header names.
		{"a,a\n1,2", 1},
		{"a,\n1,2", 1},
	} {
		_, err := ReadCSV(strings.NewReader(test.input))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: want *ParseError, got %v", test.input, err)
			continue
		}
		if pe.Line != test.line {
			t.Errorf("%q: want error on line %d, got %q", test.input, test.line, pe)
		}
	}
}

func TestColumnValues(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("x,label,when\n1.5,a,1952-03-01\nNA,b,NA\n3,,2007-11-20"))
	if err != nil {
		t.Fatal(err)
	}

	x, ok := d.Column("x")
	if !ok {
		t.Fatal("no column x")
	}
	if got := x.Floats(); len(got) != 3 || got[0] != 1.5 || !math.IsNaN(got[1]) || got[2] != 3 {
		t.Errorf("x.Floats() = %v, want [1.5 NaN 3]", got)
	}
	if x.Missing(0) || !x.Missing(1) {
		t.Errorf("x missingness = [%v %v %v], want [false true false]",
			x.Missing(0), x.Missing(1), x.Missing(2))
	}

	label, _ := d.Column("label")
	if want := []string{"a", "b", ""}; !reflect.DeepEqual(label.Strings(), want) {
		t.Errorf("label.Strings() = %q, want %q", label.Strings(), want)
	}
	if !label.Missing(2) {
		t.Error("label row 2 should be missing")
	}
	if label.Floats() != nil {
		t.Error("Floats of a categorical column should be nil")
	}

	when, _ := d.Column("when")
	times := when.Times()
	if want := time.Date(1952, 3, 1, 0, 0, 0, 0, time.UTC); !times[0].Equal(want) {
		t.Errorf("when[0] = %v, want %v", times[0], want)
	}
	if !when.Missing(1) || !times[1].IsZero() {
		t.Errorf("when[1] = %v, want missing", times[1])
	}
	if got := when.Floats()[0]; got != float64(times[0].Unix()) {
		t.Errorf("when.Floats()[0] = %v, want %v", got, float64(times[0].Unix()))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	const input = "country,year,lifeExp\nNorway,1952,72.67\nPeru,1957,43.9\n"
	if err := os.WriteFile(path, []byte(input), 0666); err != nil {
		t.Fatal(err)
	}

	d1, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Errorf("loading %s twice differed:\n%#v\n%#v", path, d1, d2)
	}
	if d1.Len() != 2 || len(d1.Fields()) != 3 {
		t.Errorf("got %d rows, %d columns, want 2 rows, 3 columns", d1.Len(), len(d1.Fields()))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want an error wrapping fs.ErrNotExist, got %v", err)
	}
}

func TestLevels(t *testing.T) {
	for _, test := range []struct {
		input string
		col   string
		want  []string
	}{
		// Categorical levels sort lexically.
		{"c\nAsia\nAfrica\nAsia\nEurope", "c", []string{"Africa", "Asia", "Europe"}},

		// Numeric levels sort numerically, not lexically.
		{"n\n10\n9\n10\n2", "n", []string{"2", "9", "10"}},

		// Temporal levels sort chronologically.
		{"d\n2007-01-01\n1952-01-01", "d", []string{"1952-01-01", "2007-01-01"}},

		// Missing cells contribute no level.
		{"c\nb\nNA\na", "c", []string{"a", "b"}},

		// Unknown column.
		{"c\nx", "nope", nil},
	} {
		d, err := ReadCSV(strings.NewReader(test.input))
		if err != nil {
			t.Fatal(err)
		}
		if got := d.Levels(test.col); !reflect.DeepEqual(got, test.want) {
			t.Errorf("%q: Levels(%q) = %v, want %v", test.input, test.col, got, test.want)
		}
	}
}

func TestGroupBy(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("continent,lifeExp\nAsia,43\nAfrica,39\nAsia,51\n,60"))
	if err != nil {
		t.Fatal(err)
	}
	groups := d.GroupBy("continent")

	var values []string
	var sizes []int
	for _, g := range groups {
		values = append(values, g.Value)
		sizes = append(sizes, g.Data.Len())
	}
	if want := []string{"Africa", "Asia", ""}; !reflect.DeepEqual(values, want) {
		t.Errorf("group values = %q, want %q", values, want)
	}
	if want := []int{1, 2, 1}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("group sizes = %v, want %v", sizes, want)
	}

	// Partitions keep the full schema and input row order.
	asia, ok := groups[1].Data.Column("lifeExp")
	if !ok {
		t.Fatal("partition lost column lifeExp")
	}
	if want := []float64{43, 51}; !reflect.DeepEqual(asia.Floats(), want) {
		t.Errorf("Asia lifeExp = %v, want %v", asia.Floats(), want)
	}

	if d.GroupBy("nope") != nil {
		t.Error("GroupBy of an unknown column should be nil")
	}
}

func TestFilter(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("x\n1\n2\n3\n4"))
	if err != nil {
		t.Fatal(err)
	}
	f, _ := d.Column("x")
	vals := f.Floats()
	even := d.Filter(func(i int) bool { return int(vals[i])%2 == 0 })

	g, _ := even.Column("x")
	if want := []float64{2, 4}; !reflect.DeepEqual(g.Floats(), want) {
		t.Errorf("filtered x = %v, want %v", g.Floats(), want)
	}
	if d.Len() != 4 {
		t.Errorf("Filter modified its receiver: %d rows", d.Len())
	}
}

func TestSort(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("x,y\n3,a\n1,b\nNA,c\n2,d"))
	if err != nil {
		t.Fatal(err)
	}

	y, _ := d.Sort("x").Column("y")
	// Missing x sorts last.
	if want := []string{"b", "d", "a", "c"}; !reflect.DeepEqual(y.Strings(), want) {
		t.Errorf("sorted y = %q, want %q", y.Strings(), want)
	}

	// Sorting by an unknown column changes nothing.
	y, _ = d.Sort("nope").Column("y")
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(y.Strings(), want) {
		t.Errorf("Sort by unknown column reordered rows: %q", y.Strings())
	}
}
