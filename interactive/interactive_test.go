// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interactive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridplot/gridplot/dataset"
	"github.com/gridplot/gridplot/viz"
)

const lifeCSV = `country,continent,year,lifeExp,gdpPercap
Egypt,Africa,1952,41.89,1418.82
Egypt,Africa,1957,44.44,1458.91
Japan,Asia,1952,63.03,3216.96
Japan,Asia,1957,65.50,4317.69
France,Europe,1952,67.41,7029.81
France,Europe,1957,68.93,8662.83
Brazil,Americas,1952,50.92,2108.94
Brazil,Americas,1957,53.28,2487.37
Australia,Oceania,1952,69.12,10039.60
Australia,Oceania,1957,70.33,10949.65
`

func mustRead(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()
	d, err := dataset.ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFromPlotMapping(t *testing.T) {
	d := mustRead(t, lifeCSV)
	aes := viz.Aes{X: "gdpPercap", Y: "lifeExp", Color: "continent", Group: "country"}
	p := viz.NewPlot(d, aes).Add(viz.LayerPoints{}, viz.ScaleXLog10{})
	c, err := FromPlot(p)
	if err != nil {
		t.Fatal(err)
	}
	// The conversion must not lose or rewrite the mapping.
	if c.Mapping() != aes {
		t.Errorf("got mapping %+v, want %+v", c.Mapping(), aes)
	}
}

func TestFromPlotErrors(t *testing.T) {
	d := mustRead(t, lifeCSV)

	_, err := FromPlot(viz.NewPlot(d, viz.Aes{X: "nope", Y: "lifeExp"}).Add(viz.LayerPoints{}))
	var fe *viz.FieldError
	if !errors.As(err, &fe) || fe.Field != "nope" {
		t.Errorf("got %v, want a FieldError for nope", err)
	}

	_, err = FromPlot(viz.NewPlot(d, viz.Aes{X: "gdpPercap"}).Add(viz.LayerPoints{}))
	var re *viz.RenderError
	if !errors.As(err, &re) || re.Channel != "y" {
		t.Errorf("got %v, want a RenderError for y", err)
	}
}

func TestPanelCount(t *testing.T) {
	d := mustRead(t, lifeCSV)
	base := viz.NewPlot(d, viz.Aes{X: "gdpPercap", Y: "lifeExp"}).Add(viz.LayerPoints{})

	c, err := FromPlot(base)
	if err != nil {
		t.Fatal(err)
	}
	if c.PanelCount() != 1 {
		t.Errorf("got %d panels, want 1", c.PanelCount())
	}

	c, err = FromPlot(base.Add(viz.FacetWrap{By: "continent"}))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.PanelCount(), len(d.Levels("continent")); got != want {
		t.Errorf("got %d panels, want %d", got, want)
	}
}

func TestWriteHTML(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := viz.NewPlot(d, viz.Aes{X: "gdpPercap", Y: "lifeExp", Color: "continent"}).
		Add(viz.LayerPoints{}, viz.Labels{Title: "Life expectancy"})
	c, err := FromPlot(p)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := c.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	if got := strings.Count(html, "echarts.init"); got != 1 {
		t.Errorf("got %d charts, want 1", got)
	}
	// One series per continent, pan/zoom, and tooltips.
	for _, want := range []string{`"Africa"`, `"Oceania"`, "dataZoom", "tooltip", "Life expectancy"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML is missing %s", want)
		}
	}
}

func TestWriteHTMLFaceted(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := viz.NewPlot(d, viz.Aes{X: "gdpPercap", Y: "lifeExp"}).
		Add(viz.LayerPoints{}, viz.FacetWrap{By: "continent"})
	c, err := FromPlot(p)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := c.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "echarts.init"); got != 5 {
		t.Errorf("got %d charts, want one per continent", got)
	}
}

func TestBoxHTML(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := viz.NewPlot(d, viz.Aes{X: "continent", Y: "lifeExp"}).Add(viz.LayerBox{})
	c, err := FromPlot(p)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := c.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	if !strings.Contains(html, "boxplot") {
		t.Error("HTML has no boxplot series")
	}
	for _, level := range d.Levels("continent") {
		if !strings.Contains(html, level) {
			t.Errorf("HTML is missing category %q", level)
		}
	}
}

func TestSaveHTML(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := viz.NewPlot(d, viz.Aes{X: "year", Y: "lifeExp", Color: "country"}).
		Add(viz.LayerLines{})
	c, err := FromPlot(p)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "life.html")
	if err := c.SaveHTML(path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("wrote an empty page")
	}
	// Overwriting is not an error.
	if err := c.SaveHTML(path); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}
