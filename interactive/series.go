// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interactive

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gridplot/gridplot/dataset"
	"github.com/gridplot/gridplot/viz"
	"github.com/gridplot/gridplot/vizstat"
)

// echartsSymbols is the cycle of mark symbols assigned to the levels
// of a shape mapping, mirroring the renderer's glyph cycle.
var echartsSymbols = []string{"circle", "triangle", "rect", "diamond", "roundRect", "pin"}

const naColor = "#7f7f7f"

type converter struct {
	p             viz.Plot
	palette       []string
	width, height string
}

func newConverter(p viz.Plot) *converter {
	pal := p.Themed().Palette
	if pal == nil {
		pal = viz.DefaultPalette()
	}
	hexes := make([]string, len(pal))
	for i, c := range pal {
		hexes[i] = hexColor(c)
	}
	conv := &converter{p: p, palette: hexes, width: "760px", height: "540px"}
	if faceted(p) {
		conv.width, conv.height = "480px", "360px"
	}
	return conv
}

func faceted(p viz.Plot) bool {
	switch f := p.FacetSpec().(type) {
	case viz.FacetWrap:
		return f.By != ""
	case viz.FacetGrid:
		return f.Rows != "" || f.Cols != ""
	}
	return false
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// chart builds one ECharts chart for a panel's data. Layers of the
// same kind share a chart; distinct kinds are overlapped onto one
// canvas.
func (c *converter) chart(title string, d *dataset.Dataset) components.Charter {
	var (
		sc *charts.Scatter
		ln *charts.Line
		bx *charts.BoxPlot
	)
	for _, l := range c.p.Layers() {
		a := mergeAes(l.Mapping(), c.p.Mapping())
		switch l := l.(type) {
		case viz.LayerPoints:
			if sc == nil {
				sc = charts.NewScatter()
			}
			c.addPoints(sc, a, d)
		case viz.LayerLines:
			if ln == nil {
				ln = charts.NewLine()
			}
			c.addLines(ln, a, d)
		case viz.LayerSmooth:
			if ln == nil {
				ln = charts.NewLine()
			}
			c.addSmooth(ln, l, a, d)
		case viz.LayerBox:
			if bx == nil {
				bx = charts.NewBoxPlot()
			}
			c.addBox(bx, l, a, d)
		}
	}

	opt := c.globalOptions(title)
	switch {
	case bx != nil:
		// The box chart owns the category axis, so it carries the
		// others.
		bx.SetGlobalOptions(opt...)
		if sc != nil {
			bx.Overlap(sc)
		}
		if ln != nil {
			bx.Overlap(ln)
		}
		return bx
	case sc != nil:
		sc.SetGlobalOptions(opt...)
		if ln != nil {
			sc.Overlap(ln)
		}
		return sc
	case ln != nil:
		ln.SetGlobalOptions(opt...)
		return ln
	}
	// No layers. An empty chart still shows its axes.
	sc = charts.NewScatter()
	sc.SetGlobalOptions(opt...)
	return sc
}

func (c *converter) globalOptions(title string) []charts.GlobalOpts {
	xName, yName := axisNames(c.p)
	xType, yType := c.axisTypes()
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: c.width, Height: c.height}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside"},
			opts.DataZoom{Type: "slider"},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: xType, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: yType, Scale: opts.Bool(true)}),
	}
}

// axisNames returns the axis titles: explicit labels if any were
// added, otherwise the first mapped field names.
func axisNames(p viz.Plot) (x, y string) {
	l := p.Labs()
	x, y = l.X, l.Y
	as := []viz.Aes{p.Mapping()}
	for _, layer := range p.Layers() {
		as = append(as, layer.Mapping())
	}
	for _, a := range as {
		if x == "" {
			x = a.X
		}
		if y == "" {
			y = a.Y
		}
	}
	return x, y
}

func (c *converter) axisTypes() (x, y string) {
	x, y = "value", "value"
	if c.p.XLog() {
		x = "log"
	}
	if c.p.YLog() {
		y = "log"
	}
	if f, ok := firstField(c.p, true); ok {
		switch f.Kind {
		case dataset.Categorical:
			x = "category"
		case dataset.Temporal:
			if !c.p.XLog() {
				x = "time"
			}
		}
	}
	for _, l := range c.p.Layers() {
		if _, ok := l.(viz.LayerBox); ok {
			x = "category"
		}
	}
	if f, ok := firstField(c.p, false); ok && f.Kind == dataset.Temporal && !c.p.YLog() {
		y = "time"
	}
	return x, y
}

func firstField(p viz.Plot, wantX bool) (dataset.Field, bool) {
	as := []viz.Aes{p.Mapping()}
	for _, l := range p.Layers() {
		as = append(as, l.Mapping())
	}
	for _, a := range as {
		name := a.Y
		if wantX {
			name = a.X
		}
		if name != "" {
			return p.Data().Column(name)
		}
	}
	return dataset.Field{}, false
}

// pairs returns the plottable [x, y] value pairs of d under a, and
// the row each pair came from. Rows with a missing value on either
// channel are dropped, as are rows a log axis can't show.
func (c *converter) pairs(d *dataset.Dataset, a viz.Aes) (vals [][]interface{}, rows []int) {
	xf, _ := d.Column(a.X)
	yf, _ := d.Column(a.Y)
	yv := yf.Floats()
	if yv == nil {
		viz.Warning.Printf("skipping layer: %q is categorical", a.Y)
		return nil, nil
	}

	var (
		xnum   []float64
		xstr   []string
		xtimes []time.Time
	)
	switch xf.Kind {
	case dataset.Categorical:
		xstr = xf.Strings()
	case dataset.Temporal:
		xtimes = xf.Times()
	default:
		xnum = xf.Floats()
	}

	for i := 0; i < d.Len(); i++ {
		y := yv[i]
		if math.IsNaN(y) {
			continue
		}
		if c.p.YLog() && y <= 0 {
			continue
		}
		var x interface{}
		switch {
		case xstr != nil:
			if xf.Missing(i) {
				continue
			}
			x = xstr[i]
		case xtimes != nil:
			if xf.Missing(i) {
				continue
			}
			x = xtimes[i].UnixMilli()
		default:
			v := xnum[i]
			if math.IsNaN(v) {
				continue
			}
			if c.p.XLog() && v <= 0 {
				continue
			}
			x = v
		}
		vals = append(vals, []interface{}{x, y})
		rows = append(rows, i)
	}
	return vals, rows
}

// An htmlSeries is a run of marks drawn with one style and one
// legend entry.
type htmlSeries struct {
	name       string
	color      string // "" for the ECharts default
	symbol     string // "" for the series default
	na         bool
	ci, si, gi int
	pts        []int // indices into the layer's pairs
}

// split partitions a layer's pairs by its discrete channels, using
// level order over the whole dataset so a given value gets the same
// color and symbol in every panel. Rows with a missing cell in a
// discrete channel collect in a gray series named NA.
func (c *converter) split(d *dataset.Dataset, a viz.Aes, rows []int) []htmlSeries {
	clv := c.levelsFor(a.Color, false)
	slv := c.levelsFor(a.Shape, false)
	glv := c.levelsFor(a.Group, true)
	if clv == nil && slv == nil && glv == nil {
		all := make([]int, len(rows))
		for i := range all {
			all[i] = i
		}
		return []htmlSeries{{ci: -1, si: -1, gi: -1, pts: all}}
	}

	cells := func(name string, lv []string) []string {
		if lv == nil {
			return nil
		}
		f, _ := d.Column(name)
		return f.Strings()
	}
	cstr := cells(a.Color, clv)
	sstr := cells(a.Shape, slv)
	gstr := cells(a.Group, glv)
	cidx, sidx, gidx := index(clv), index(slv), index(glv)

	type key struct{ c, s, g int }
	resolve := func(idx map[string]int, lv []string, cell string) (int, bool) {
		if j, ok := idx[cell]; ok {
			return j, false
		}
		return len(lv), true
	}

	byKey := make(map[key]int)
	var out []htmlSeries
	for pi, row := range rows {
		k := key{-1, -1, -1}
		na := false
		if cstr != nil {
			var miss bool
			k.c, miss = resolve(cidx, clv, cstr[row])
			na = na || miss
		}
		if sstr != nil {
			var miss bool
			k.s, miss = resolve(sidx, slv, sstr[row])
			na = na || miss
		}
		if gstr != nil {
			var miss bool
			k.g, miss = resolve(gidx, glv, gstr[row])
			na = na || miss
		}
		at, ok := byKey[k]
		if !ok {
			at = len(out)
			byKey[k] = at
			s := htmlSeries{ci: k.c, si: k.s, gi: k.g, na: na}
			switch {
			case na:
				s.name = "NA"
			case cstr != nil:
				s.name = clv[k.c]
			case sstr != nil:
				s.name = slv[k.s]
			case gstr != nil:
				s.name = glv[k.g]
			}
			switch {
			case na:
				s.color = naColor
			case k.c >= 0:
				s.color = c.palette[k.c%len(c.palette)]
			}
			if k.s >= 0 && !na {
				s.symbol = echartsSymbols[k.s%len(echartsSymbols)]
			}
			out = append(out, s)
		}
		out[at].pts = append(out[at].pts, pi)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ci != out[j].ci {
			return out[i].ci < out[j].ci
		}
		if out[i].si != out[j].si {
			return out[i].si < out[j].si
		}
		return out[i].gi < out[j].gi
	})
	return out
}

func (c *converter) levelsFor(name string, anyKind bool) []string {
	if name == "" {
		return nil
	}
	whole := c.p.Data()
	f, ok := whole.Column(name)
	if !ok || (!anyKind && f.Kind != dataset.Categorical) {
		return nil
	}
	return whole.Levels(name)
}

func index(levels []string) map[string]int {
	m := make(map[string]int, len(levels))
	for i, l := range levels {
		m[l] = i
	}
	return m
}

func (c *converter) addPoints(sc *charts.Scatter, a viz.Aes, d *dataset.Dataset) {
	vals, rows := c.pairs(d, a)
	if len(vals) == 0 {
		return
	}
	// With a group mapping, name each point by its group so the
	// tooltip identifies it.
	var names []string
	if a.Group != "" {
		if f, ok := d.Column(a.Group); ok {
			names = f.Strings()
		}
	}
	for _, s := range c.split(d, a, rows) {
		data := make([]opts.ScatterData, len(s.pts))
		for i, pi := range s.pts {
			data[i] = opts.ScatterData{
				Value:      vals[pi],
				Symbol:     s.symbol,
				SymbolSize: 8,
			}
			if names != nil {
				data[i].Name = names[rows[pi]]
			}
		}
		var so []charts.SeriesOpts
		if s.color != "" {
			so = append(so, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}))
		}
		sc.AddSeries(s.name, data, so...)
	}
}

func (c *converter) addLines(ln *charts.Line, a viz.Aes, d *dataset.Dataset) {
	vals, rows := c.pairs(d, a)
	if len(vals) == 0 {
		return
	}
	xf, _ := d.Column(a.X)
	xsort := xf.Floats() // nil for categorical x, which keeps row order
	for _, s := range c.split(d, a, rows) {
		pts := append([]int(nil), s.pts...)
		if xsort != nil {
			sort.SliceStable(pts, func(i, j int) bool {
				return xsort[rows[pts[i]]] < xsort[rows[pts[j]]]
			})
		}
		data := make([]opts.LineData, len(pts))
		for i, pi := range pts {
			data[i] = opts.LineData{Value: vals[pi], Symbol: s.symbol}
		}
		var so []charts.SeriesOpts
		if s.color != "" {
			so = append(so, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}))
		}
		ln.AddSeries(s.name, data, so...)
	}
}

func (c *converter) addSmooth(ln *charts.Line, l viz.LayerSmooth, a viz.Aes, d *dataset.Dataset) {
	xf, _ := d.Column(a.X)
	if xf.Kind == dataset.Categorical {
		viz.Warning.Printf("skipping smooth over categorical x field %q", a.X)
		return
	}
	vals, rows := c.pairs(d, a)
	if len(vals) == 0 {
		return
	}
	xv := xf.Floats()
	yf, _ := d.Column(a.Y)
	yv := yf.Floats()
	// Time axes plot in milliseconds.
	xScale := 1.0
	if xf.Kind == dataset.Temporal {
		xScale = 1000
	}
	for _, s := range c.split(d, a, rows) {
		xs := make([]float64, len(s.pts))
		ys := make([]float64, len(s.pts))
		for i, pi := range s.pts {
			xs[i] = xv[rows[pi]]
			ys[i] = yv[rows[pi]]
		}
		sm := vizstat.Smooth{Method: l.Method, Degree: l.Degree, Span: l.Span, N: l.N, Widen: 1}
		fx, fy, err := sm.Fit(xs, ys)
		if err != nil {
			viz.Warning.Println(err)
			continue
		}
		var data []opts.LineData
		for i := range fx {
			x, y := fx[i], fy[i]
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			if c.p.YLog() && y <= 0 {
				continue
			}
			if c.p.XLog() && x <= 0 {
				continue
			}
			data = append(data, opts.LineData{Value: []interface{}{x * xScale, y}})
		}
		if len(data) == 0 {
			continue
		}
		// Reusing the series name folds the fit into the same
		// legend entry as its marks.
		name := s.name
		if name == "" {
			name = "fit"
		}
		so := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		}
		if s.color != "" {
			so = append(so, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}))
		}
		ln.AddSeries(name, data, so...)
	}
}

func (c *converter) addBox(bx *charts.BoxPlot, l viz.LayerBox, a viz.Aes, d *dataset.Dataset) {
	yf, _ := d.Column(a.Y)
	yv := yf.Floats()
	if yv == nil {
		viz.Warning.Printf("skipping box layer: %q is categorical", a.Y)
		return
	}

	levels := []string{""}
	cells := make([]string, d.Len())
	if a.X != "" {
		levels = c.p.Data().Levels(a.X)
		f, _ := d.Column(a.X)
		cells = f.Strings()
	}

	byLevel := make(map[string][]float64, len(levels))
	for i, v := range yv {
		if math.IsNaN(v) {
			continue
		}
		if c.p.YLog() && v <= 0 {
			continue
		}
		byLevel[cells[i]] = append(byLevel[cells[i]], v)
	}

	var (
		data     []opts.BoxPlotData
		outliers []opts.ScatterData
	)
	for _, lv := range levels {
		st, ok := vizstat.Box(byLevel[lv])
		if !ok {
			// Keep the slot so later levels stay aligned with
			// their axis labels.
			data = append(data, opts.BoxPlotData{Name: lv})
			continue
		}
		data = append(data, opts.BoxPlotData{
			Name:  lv,
			Value: []float64{st.Low, st.Q1, st.Median, st.Q3, st.High},
		})
		for _, o := range st.Outliers {
			outliers = append(outliers, opts.ScatterData{
				Name:       lv,
				Value:      []interface{}{lv, o},
				SymbolSize: 6,
			})
		}
	}

	var so []charts.SeriesOpts
	if l.Fill != nil {
		so = append(so, charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(l.Fill)}))
	}
	bx.SetXAxis(levels).AddSeries(a.Y, data, so...)
	if len(outliers) > 0 {
		osc := charts.NewScatter()
		osc.AddSeries("outliers", outliers,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: naColor}))
		bx.Overlap(osc)
	}
}
