// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSave(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp", Color: "continent"}).
		Add(LayerPoints{}, Labels{Title: "Life expectancy"})

	dir := t.TempDir()
	png := filepath.Join(dir, "life.png")
	if err := p.Save(png); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(png)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("wrote an empty PNG")
	}

	pdf := filepath.Join(dir, "life.pdf")
	if err := p.Save(pdf, Size(8, 6)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(pdf); err != nil {
		t.Error(err)
	}

	// Overwriting an existing file is not an error.
	if err := p.Save(png, Size(8, 6), DPI(300)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestSaveDeterministic(t *testing.T) {
	d := mustRead(t, lifeCSV)
	// Jitter makes this interesting: the randomness has to be
	// reseeded per render for repeated saves to agree.
	p := NewPlot(d, Aes{X: "continent", Y: "lifeExp", Color: "continent"}).
		Add(LayerPoints{Jitter: 0.2}, FacetWrap{By: "continent"})

	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	if err := p.Save(a, Size(4, 3), DPI(120)); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(b, Size(4, 3), DPI(120)); err != nil {
		t.Fatal(err)
	}
	ab, err := os.ReadFile(a)
	if err != nil {
		t.Fatal(err)
	}
	bb, err := os.ReadFile(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ab, bb) {
		t.Error("saving the same plot twice wrote different bytes")
	}
}

func TestSaveUnsupported(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).Add(LayerPoints{})
	err := p.Save(filepath.Join(t.TempDir(), "life.bmp"))
	if err == nil {
		t.Fatal("got nil error for .bmp")
	}
	if !strings.Contains(err.Error(), ".bmp") {
		t.Errorf("error %q doesn't name the extension", err)
	}
}

func TestSaveMissingDir(t *testing.T) {
	d := mustRead(t, lifeCSV)
	p := NewPlot(d, Aes{X: "gdpPercap", Y: "lifeExp"}).Add(LayerPoints{})
	if err := p.Save(filepath.Join(t.TempDir(), "no", "such", "dir.png")); err == nil {
		t.Fatal("got nil error for a missing directory")
	}
}
