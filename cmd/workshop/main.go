// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command workshop renders the gapminder figure set used in the data
// visualization workshop.
//
// It writes static figures (PNG and PDF), a multi-panel composite,
// an interactive HTML page, and a contact sheet with an HTML index
// tying them together. By default it plots the built-in gapminder
// excerpt; -data substitutes another CSV with the same columns.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridplot/gridplot/dataset"
	"github.com/gridplot/gridplot/dataset/gapminder"
	"github.com/gridplot/gridplot/figure"
	"github.com/gridplot/gridplot/gallery"
	"github.com/gridplot/gridplot/interactive"
	"github.com/gridplot/gridplot/viz"
	"github.com/gridplot/gridplot/vizstat"
)

func main() {
	log.SetPrefix("workshop: ")
	log.SetFlags(0)

	var (
		flagData = flag.String("data", "", "load data from CSV `file` instead of the built-in gapminder excerpt")
		flagOut  = flag.String("o", "figures", "write figures to `dir`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load the dataset.
	data := gapminder.Load()
	if *flagData != "" {
		var err error
		data, err = dataset.Load(*flagData)
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := os.MkdirAll(*flagOut, 0777); err != nil {
		log.Fatal(err)
	}
	out := func(name string) string { return filepath.Join(*flagOut, name) }

	// The index entry for each figure, in the order produced.
	var figures []gallery.Item
	note := func(name, title string) {
		figures = append(figures, gallery.Item{Path: name, Title: title})
	}

	// Life expectancy against income, on a log income axis.
	scatter := viz.NewPlot(data, viz.Aes{X: "gdpPercap", Y: "lifeExp", Color: "continent"}).
		Add(
			viz.LayerPoints{Alpha: 0.7},
			viz.ScaleXLog10{},
			viz.Labels{
				Title: "Life expectancy and income",
				X:     "GDP per capita",
				Y:     "life expectancy (years)",
			},
		)
	save(scatter, out("life_expectancy.png"))
	// Re-export at print size and resolution; the first file is
	// simply replaced.
	save(scatter, out("life_expectancy.png"), viz.Size(8, 6), viz.DPI(300))
	save(scatter, out("life_expectancy.pdf"))
	note("life_expectancy.png", "Life expectancy and income")
	note("life_expectancy.pdf", "Print copy")

	// Life expectancy over time, one line per country.
	trend := viz.NewPlot(data, viz.Aes{X: "year", Y: "lifeExp", Color: "continent", Group: "country"}).
		Add(
			viz.LayerLines{},
			viz.ThemeMinimal(),
			viz.Labels{Title: "Life expectancy over time", Y: "life expectancy (years)"},
		)
	save(trend, out("trend.png"))
	note("trend.png", "Life expectancy over time")

	// One panel per continent, each with a straight-line fit.
	facets := viz.NewPlot(data, viz.Aes{X: "gdpPercap", Y: "lifeExp"}).
		Add(
			viz.LayerPoints{Alpha: 0.5, Size: 1.5},
			viz.LayerSmooth{Method: vizstat.LM},
			viz.ScaleXLog10{},
			viz.FacetWrap{By: "continent", Cols: 3, Scales: viz.FreeX},
			viz.Labels{Title: "Life expectancy and income by continent"},
		)
	save(facets, out("by_continent.png"), viz.Size(9, 6))
	note("by_continent.png", "Per-continent panels")

	// Spread of life expectancy by continent, with the raw values
	// jittered over the boxes.
	boxes := viz.NewPlot(data, viz.Aes{X: "continent", Y: "lifeExp", Color: "continent"}).
		Add(
			viz.LayerBox{},
			viz.LayerPoints{Jitter: 0.18, Alpha: 0.35, Size: 1.5},
			viz.Labels{Title: "Life expectancy by continent", Y: "life expectancy (years)"},
		)
	save(boxes, out("spread.png"))
	note("spread.png", "Spread by continent")

	// Side-by-side composite for the handout.
	combined := figure.Grid([]viz.Plot{scatter, boxes},
		figure.Cols(2), figure.PanelLabels("a", "b"))
	if err := combined.Save(out("combined_plot.pdf"), figure.Size(10, 4)); err != nil {
		log.Fatalf("writing %s: %s", out("combined_plot.pdf"), err)
	}
	note("combined_plot.pdf", "Scatter and spread, combined")

	// The same scatter with the spread inset in its upper left.
	inset := figure.NewCanvas().
		Place(scatter, figure.Rect{X: 0, Y: 0, W: 1, H: 1}).
		Place(boxes, figure.Rect{X: 0.08, Y: 0.55, W: 0.36, H: 0.38})
	if err := inset.Save(out("inset.png")); err != nil {
		log.Fatalf("writing %s: %s", out("inset.png"), err)
	}
	note("inset.png", "Scatter with inset")

	// Interactive copy of the scatter for the browser.
	chart, err := interactive.FromPlot(scatter)
	if err != nil {
		log.Fatal(err)
	}
	if err := chart.SaveHTML(out("life_expectancy.html")); err != nil {
		log.Fatalf("writing %s: %s", out("life_expectancy.html"), err)
	}
	note("life_expectancy.html", "Interactive version")

	// Contact sheet of the rasters, then the index over everything.
	var pngs []string
	for _, fig := range figures {
		if strings.HasSuffix(fig.Path, ".png") {
			pngs = append(pngs, out(fig.Path))
		}
	}
	if err := gallery.ContactSheet(pngs, out("contact_sheet.png")); err != nil {
		log.Fatal(err)
	}
	note("contact_sheet.png", "Contact sheet")
	if err := gallery.SaveIndex(out("index.html"), "Gapminder workshop figures", figures); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("wrote %d figures to %s\n", len(figures), *flagOut)
}

func save(p viz.Plot, path string, opts ...viz.Option) {
	if err := p.Save(path, opts...); err != nil {
		log.Fatalf("writing %s: %s", path, err)
	}
}
