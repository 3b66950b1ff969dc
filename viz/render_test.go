// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/plot"
)

func TestRenderUnknownField(t *testing.T) {
	d := mustRead(t, lifeCSV)
	for _, test := range []struct {
		label string
		plot  Plot
		field string
	}{
		{
			"base mapping",
			NewPlot(d, Aes{X: "gdp", Y: "lifeExp"}).Add(LayerPoints{}),
			"gdp",
		},
		{
			"layer override",
			NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).
				Add(LayerPoints{Aes: Aes{Color: "region"}}),
			"region",
		},
		{
			"facet",
			NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).
				Add(LayerPoints{}, FacetWrap{By: "region"}),
			"region",
		},
	} {
		// Building the plot doesn't touch the data; the bad name
		// only surfaces here.
		_, err := test.plot.Render()
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Errorf("%s: got %v, want a FieldError", test.label, err)
			continue
		}
		if fe.Field != test.field {
			t.Errorf("%s: got field %q, want %q", test.label, fe.Field, test.field)
		}
	}
}

func TestRenderMissingChannel(t *testing.T) {
	d := mustRead(t, lifeCSV)
	for _, test := range []struct {
		label          string
		plot           Plot
		layer, channel string
	}{
		{
			"points without y",
			NewPlot(d, Aes{X: "gdpPercap"}).Add(LayerPoints{}),
			"points", "y",
		},
		{
			"lines without x",
			NewPlot(d, Aes{Y: "lifeExp"}).Add(LayerLines{}),
			"lines", "x",
		},
		{
			"box without y",
			NewPlot(d, Aes{X: "continent"}).Add(LayerBox{}),
			"box", "y",
		},
	} {
		_, err := test.plot.Render()
		var re *RenderError
		if !errors.As(err, &re) {
			t.Errorf("%s: got %v, want a RenderError", test.label, err)
			continue
		}
		if re.Layer != test.layer || re.Channel != test.channel {
			t.Errorf("%s: got %s/%s, want %s/%s",
				test.label, re.Layer, re.Channel, test.layer, test.channel)
		}
	}
}

func TestRenderLayers(t *testing.T) {
	d := mustRead(t, lifeCSV)
	for _, test := range []struct {
		label string
		plot  Plot
	}{
		{
			"points with color and shape",
			NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp", Color: "continent", Shape: "continent"}).
				Add(LayerPoints{}),
		},
		{
			"lines grouped by country",
			NewPlot(d, Aes{X: "year", Y: "lifeExp", Group: "country"}).
				Add(LayerLines{}),
		},
		{
			"boxes per continent",
			NewPlot(d, Aes{X: "continent", Y: "lifeExp", Color: "continent"}).
				Add(LayerBox{}),
		},
		{
			"box without an x mapping",
			NewPlot(d, Aes{Y: "lifeExp"}).Add(LayerBox{}),
		},
		{
			"smooth over points",
			NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).
				Add(LayerPoints{}, LayerSmooth{Method: "lm"}),
		},
		{
			"numeric color ramp with sized points",
			NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp", Color: "year", Size: "gdpPercap"}).
				Add(LayerPoints{}),
		},
		{
			"jittered points",
			NewPlot(d, Aes{X: "continent", Y: "lifeExp"}).
				Add(LayerPoints{Jitter: 0.2}),
		},
	} {
		r, err := test.plot.Render()
		if err != nil {
			t.Errorf("%s: %v", test.label, err)
			continue
		}
		if r.PanelCount() != 1 {
			t.Errorf("%s: got %d panels, want 1", test.label, r.PanelCount())
		}
	}
}

func TestRenderFacetPanels(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).
		Add(LayerPoints{}, FacetWrap{By: "continent", Cols: 3})
	r, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}

	// One panel per continent, labeled in level order.
	want := d.Levels("continent")
	if r.PanelCount() != len(want) {
		t.Fatalf("got %d panels, want %d", r.PanelCount(), len(want))
	}
	var labels []string
	for _, pan := range r.Panels() {
		labels = append(labels, pan.Label)
	}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("got panel labels %q, want %q", labels, want)
	}

	rows, cols := r.Layout()
	if rows != 2 || cols != 3 {
		t.Errorf("got %dx%d grid, want 2x3", rows, cols)
	}
	for i, pan := range r.Panels() {
		if pan.Row != i/3 || pan.Col != i%3 {
			t.Errorf("panel %d at (%d, %d), want (%d, %d)",
				i, pan.Row, pan.Col, i/3, i%3)
		}
	}
}

func TestRenderFacetMissing(t *testing.T) {
	d := mustRead(t, `name,group,score
a,x,1
b,x,2
c,,3
d,y,4
`)
	p := NewPlot(d, Aes{X: "score", Y: "score"}).Add(LayerPoints{})

	// Wrapped facets collect rows with a missing cell in a trailing
	// NA panel.
	r, err := p.Add(FacetWrap{By: "group"}).Render()
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, pan := range r.Panels() {
		labels = append(labels, pan.Label)
	}
	if want := []string{"x", "y", "NA"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("wrap: got panel labels %q, want %q", labels, want)
	}

	// Grid facets leave those rows out.
	r, err = p.Add(FacetGrid{Cols: "group"}).Render()
	if err != nil {
		t.Fatal(err)
	}
	labels = nil
	for _, pan := range r.Panels() {
		labels = append(labels, pan.Label)
	}
	if want := []string{"x", "y"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("grid: got panel labels %q, want %q", labels, want)
	}
}

func TestRenderSharedAxes(t *testing.T) {
	d := mustRead(t, lifeCSV)
	base := NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).Add(LayerPoints{})

	r, err := base.Add(FacetWrap{By: "continent"}).Render()
	if err != nil {
		t.Fatal(err)
	}
	pans := r.Panels()
	for _, pan := range pans[1:] {
		if pan.gp.X.Min != pans[0].gp.X.Min || pan.gp.X.Max != pans[0].gp.X.Max {
			t.Errorf("fixed scales: panel %q x range [%g, %g], want [%g, %g]",
				pan.Label, pan.gp.X.Min, pan.gp.X.Max, pans[0].gp.X.Min, pans[0].gp.X.Max)
		}
		if pan.gp.Y.Min != pans[0].gp.Y.Min || pan.gp.Y.Max != pans[0].gp.Y.Max {
			t.Errorf("fixed scales: panel %q y range differs", pan.Label)
		}
	}

	r, err = base.Add(FacetWrap{By: "continent", Scales: Free}).Render()
	if err != nil {
		t.Fatal(err)
	}
	// Oceania's gdpPercap values sit far above Africa's, so free
	// scales must give the two panels disjoint x ranges.
	var africa, oceania *Panel
	for _, pan := range r.Panels() {
		switch pan.Label {
		case "Africa":
			africa = pan
		case "Oceania":
			oceania = pan
		}
	}
	if africa == nil || oceania == nil {
		t.Fatal("missing expected panels")
	}
	if africa.gp.X.Max >= oceania.gp.X.Min {
		t.Errorf("free scales: Africa x range [%g, %g] overlaps Oceania [%g, %g]",
			africa.gp.X.Min, africa.gp.X.Max, oceania.gp.X.Min, oceania.gp.X.Max)
	}
}

func TestRenderNominalX(t *testing.T) {
	d := mustRead(t, lifeCSV)
	r, err := NewPlot(d, Aes{X: "continent", Y: "lifeExp"}).Add(LayerBox{}).Render()
	if err != nil {
		t.Fatal(err)
	}
	gp := r.Panels()[0].gp
	if got, want := gp.X.Min, -0.5; got != want {
		t.Errorf("got X.Min %g, want %g", got, want)
	}
	if got, want := gp.X.Max, 4.5; got != want {
		t.Errorf("got X.Max %g, want %g", got, want)
	}

	// A box plot needs level positions, not values, on x.
	if _, err := NewPlot(d, Aes{X: "year", Y: "lifeExp"}).Add(LayerBox{}).Render(); err == nil {
		t.Error("box layer with numeric x: got nil error")
	}
}

func TestRenderLogScale(t *testing.T) {
	d := mustRead(t, `x,y
1,10
10,100
100,0
1000,-5
`)
	r, err := NewPlot(d, Aes{X: "x", Y: "y"}).
		Add(LayerPoints{}, ScaleYLog10{}).Render()
	if err != nil {
		t.Fatal(err)
	}
	gp := r.Panels()[0].gp
	if _, ok := gp.Y.Scale.(plot.LogScale); !ok {
		t.Errorf("Y scale is %T, want plot.LogScale", gp.Y.Scale)
	}
	// The nonpositive rows must not be allowed to drag the range
	// down to values the scale can't show.
	if gp.Y.Min <= 0 {
		t.Errorf("got Y.Min %g, want positive", gp.Y.Min)
	}
}
