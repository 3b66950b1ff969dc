// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viz

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/gridplot/gridplot/dataset"
	"github.com/gridplot/gridplot/vizstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A FieldError reports an aesthetic or facet mapping that names a
// field the dataset doesn't have. Mappings aren't checked until
// render time, so a partial plot can be built up and only fails when
// it is finally drawn.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// A RenderError reports a layer that can't be drawn because a
// channel it requires has no mapping.
type RenderError struct {
	Layer   string // "points", "lines", "box", or "smooth"
	Channel string // the missing channel, such as "x" or "y"
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s layer has no %s mapping", e.Layer, e.Channel)
}

// A Rendered is a fully resolved plot: field names checked, data
// partitioned into facet panels, and every panel laid out. It can be
// drawn onto any canvas, any number of times, with the same result.
type Rendered struct {
	theme      Theme
	title      string
	panels     []*Panel
	rows, cols int
}

// A Panel is one facet of a rendered plot.
type Panel struct {
	// Label is the facet value the panel shows, or "" for the
	// panel of an unfaceted plot.
	Label string

	// Row and Col give the panel's position in the facet grid.
	Row, Col int

	gp *plot.Plot
}

// Panels returns the panels in row-major order.
func (r *Rendered) Panels() []*Panel {
	return append([]*Panel(nil), r.panels...)
}

// PanelCount returns the number of panels.
func (r *Rendered) PanelCount() int {
	return len(r.panels)
}

// Layout returns the dimensions of the panel grid.
func (r *Rendered) Layout() (rows, cols int) {
	return r.rows, r.cols
}

// Render resolves the plot against its data. All deferred checks
// happen here: every mapped field must exist in the dataset, and
// every layer must have a mapping for each channel it requires.
func (p Plot) Render() (*Rendered, error) {
	if p.data == nil {
		return nil, errors.New("plot has no data")
	}
	if err := p.checkFields(); err != nil {
		return nil, err
	}
	if err := p.checkChannels(); err != nil {
		return nil, err
	}
	p.warnChannels()

	theme := p.theme.resolve()
	parts, rows, cols := p.partition()

	// Level order and ramp ranges come from the whole dataset so a
	// given value gets the same color, shape, and size in every
	// panel.
	levels := p.channelLevels()
	ramps := p.rampRanges()

	mode := p.scaleMode()
	shareX := mode == Fixed || mode == FreeY
	shareY := mode == Fixed || mode == FreeX
	xr, yr := p.positionRanges(parts)

	faceted := len(parts) > 1 || parts[0].label != ""
	r := &Rendered{theme: theme, rows: rows, cols: cols}
	if faceted {
		r.title = p.labels.Title
	}

	// A fixed seed keeps jittered layers reproducible, so exporting
	// the same plot twice writes identical files.
	rng := rand.New(rand.NewSource(1))

	for _, part := range parts {
		b := &panelBuilder{
			p:         p,
			data:      part.data,
			theme:     theme,
			rng:       rng,
			levels:    levels,
			ramps:     ramps,
			shareX:    shareX,
			shareY:    shareY,
			xShared:   xr,
			yShared:   yr,
			addLegend: part.row == 0 && part.col == 0,
		}
		gp, err := b.build(part, faceted)
		if err != nil {
			return nil, err
		}
		r.panels = append(r.panels, &Panel{
			Label: part.label,
			Row:   part.row,
			Col:   part.col,
			gp:    gp,
		})
	}
	return r, nil
}

// Draw renders every panel onto dc, arranged in the facet grid, with
// the plot title (if any) across the top.
func (r *Rendered) Draw(dc draw.Canvas) {
	if r.title != "" {
		sty := text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, vg.Points(13)),
			XAlign:  text.XCenter,
			YAlign:  text.YTop,
			Handler: text.Plain{Fonts: font.DefaultCache},
		}
		mid := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y}
		dc.FillText(sty, mid, r.title)
		dc = draw.Crop(dc, 0, 0, 0, -vg.Points(18))
	}

	plots := make([][]*plot.Plot, r.rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, r.cols)
	}
	for _, p := range r.panels {
		plots[p.Row][p.Col] = p.gp
	}
	tiles := draw.Tiles{
		Rows: r.rows,
		Cols: r.cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for _, p := range r.panels {
		p.gp.Draw(canvases[p.Row][p.Col])
	}
}

func (p Plot) checkFields() error {
	for _, name := range p.referencedFields() {
		if _, ok := p.data.Column(name); !ok {
			return &FieldError{name}
		}
	}
	return nil
}

// referencedFields returns every field named by the base mapping,
// the layer overrides, and the facet, in a stable order.
func (p Plot) referencedFields() []string {
	var names []string
	add := func(a Aes) {
		for _, n := range []string{a.X, a.Y, a.Color, a.Shape, a.Size, a.Group} {
			if n != "" {
				names = append(names, n)
			}
		}
	}
	for _, a := range p.mappings() {
		add(a)
	}
	switch f := p.facet.(type) {
	case FacetWrap:
		if f.By != "" {
			names = append(names, f.By)
		}
	case FacetGrid:
		if f.Rows != "" {
			names = append(names, f.Rows)
		}
		if f.Cols != "" {
			names = append(names, f.Cols)
		}
	}
	return names
}

func (p Plot) checkChannels() error {
	for _, l := range p.layers {
		a := l.Mapping().merge(p.aes)
		name := layerName(l)
		if a.X == "" && name != "box" {
			return &RenderError{name, "x"}
		}
		if a.Y == "" {
			return &RenderError{name, "y"}
		}
	}
	return nil
}

func layerName(l Layer) string {
	switch l.(type) {
	case LayerPoints:
		return "points"
	case LayerLines:
		return "lines"
	case LayerBox:
		return "box"
	case LayerSmooth:
		return "smooth"
	}
	return fmt.Sprintf("%T", l)
}

// warnChannels reports channel mappings that will be ignored because
// the field kind doesn't fit the channel.
func (p Plot) warnChannels() {
	warned := make(map[string]bool)
	for _, a := range p.mappings() {
		if a.Shape != "" && !warned["shape:"+a.Shape] {
			if f, ok := p.data.Column(a.Shape); ok && f.Kind != dataset.Categorical {
				Warning.Printf("ignoring shape mapped to %s field %q", f.Kind, a.Shape)
				warned["shape:"+a.Shape] = true
			}
		}
		if a.Size != "" && !warned["size:"+a.Size] {
			if f, ok := p.data.Column(a.Size); ok && f.Kind == dataset.Categorical {
				Warning.Printf("ignoring size mapped to categorical field %q", a.Size)
				warned["size:"+a.Size] = true
			}
		}
	}
}

// axisNames returns the axis labels: an explicit label if one was
// added, otherwise the first field mapped to the axis.
func (p Plot) axisNames() (x, y string) {
	x, y = p.labels.X, p.labels.Y
	for _, a := range p.mappings() {
		if x == "" {
			x = a.X
		}
		if y == "" {
			y = a.Y
		}
	}
	return x, y
}

func (p Plot) scaleMode() ScaleMode {
	switch f := p.facet.(type) {
	case FacetWrap:
		return f.Scales
	case FacetGrid:
		return f.Scales
	}
	return Fixed
}

// A facetPart is one panel's slice of the data.
type facetPart struct {
	label    string
	data     *dataset.Dataset
	row, col int
}

// partition splits the data into one part per panel. An unfaceted
// plot is a single unlabeled part.
func (p Plot) partition() (parts []facetPart, rows, cols int) {
	switch f := p.facet.(type) {
	case FacetWrap:
		if f.By == "" {
			break
		}
		groups := p.data.GroupBy(f.By)
		if len(groups) == 0 {
			break
		}
		cols = f.Cols
		if cols <= 0 {
			cols = int(math.Ceil(math.Sqrt(float64(len(groups)))))
		}
		rows = (len(groups) + cols - 1) / cols
		for i, g := range groups {
			label := g.Value
			if label == "" {
				label = "NA"
			}
			parts = append(parts, facetPart{label, g.Data, i / cols, i % cols})
		}
		return parts, rows, cols

	case FacetGrid:
		if f.Rows == "" && f.Cols == "" {
			break
		}
		rvals, cvals := []string{""}, []string{""}
		var rstr, cstr []string
		if f.Rows != "" {
			rvals = p.data.Levels(f.Rows)
			fld, _ := p.data.Column(f.Rows)
			rstr = fld.Strings()
		}
		if f.Cols != "" {
			cvals = p.data.Levels(f.Cols)
			fld, _ := p.data.Column(f.Cols)
			cstr = fld.Strings()
		}
		if len(rvals) == 0 || len(cvals) == 0 {
			break
		}
		for ri, rv := range rvals {
			for ci, cv := range cvals {
				cell := p.data.Filter(func(i int) bool {
					if rstr != nil && rstr[i] != rv {
						return false
					}
					if cstr != nil && cstr[i] != cv {
						return false
					}
					return true
				})
				label := rv
				if label == "" {
					label = cv
				} else if cv != "" {
					label = rv + " / " + cv
				}
				parts = append(parts, facetPart{label, cell, ri, ci})
			}
		}
		return parts, len(rvals), len(cvals)
	}
	return []facetPart{{data: p.data}}, 1, 1
}

// channelLevels returns the level order of every categorical field
// mapped to color or shape, and of every field mapped to group,
// computed over the whole dataset.
func (p Plot) channelLevels() map[string][]string {
	out := make(map[string][]string)
	add := func(name string, anyKind bool) {
		if name == "" {
			return
		}
		if _, ok := out[name]; ok {
			return
		}
		f, ok := p.data.Column(name)
		if !ok || (!anyKind && f.Kind != dataset.Categorical) {
			return
		}
		out[name] = p.data.Levels(name)
	}
	for _, a := range p.mappings() {
		add(a.Color, false)
		add(a.Shape, false)
		add(a.Group, true)
	}
	return out
}

// rampRanges returns the data range of every numeric or temporal
// field mapped to color or size, computed over the whole dataset.
func (p Plot) rampRanges() map[string]axisRange {
	out := make(map[string]axisRange)
	for _, a := range p.mappings() {
		for _, name := range []string{a.Color, a.Size} {
			if name == "" {
				continue
			}
			if _, ok := out[name]; ok {
				continue
			}
			f, ok := p.data.Column(name)
			if !ok || f.Kind == dataset.Categorical {
				continue
			}
			var r axisRange
			for _, v := range f.Floats() {
				r.update(v)
			}
			out[name] = r
		}
	}
	return out
}

// positionRanges returns the x and y data ranges across every panel,
// for the facet modes that share an axis. Box layers put levels, not
// values, on the x axis, so their x channel doesn't contribute.
func (p Plot) positionRanges(parts []facetPart) (xr, yr axisRange) {
	for _, part := range parts {
		for _, l := range p.layers {
			a := l.Mapping().merge(p.aes)
			if _, isBox := l.(LayerBox); !isBox && a.X != "" {
				if f, ok := part.data.Column(a.X); ok && f.Kind != dataset.Categorical {
					for _, v := range f.Floats() {
						if p.xlog && v <= 0 {
							continue
						}
						xr.update(v)
					}
				}
			}
			if a.Y != "" {
				if f, ok := part.data.Column(a.Y); ok && f.Kind != dataset.Categorical {
					for _, v := range f.Floats() {
						if p.ylog && v <= 0 {
							continue
						}
						yr.update(v)
					}
				}
			}
		}
	}
	return xr, yr
}

type axisRange struct {
	min, max float64
	set      bool
}

func (r *axisRange) update(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if !r.set {
		r.min, r.max, r.set = v, v, true
		return
	}
	if v < r.min {
		r.min = v
	}
	if v > r.max {
		r.max = v
	}
}

// expand pads r by 5% on each side so marks don't sit on the panel
// edge. Log axes are padded in log space to keep the limits positive.
func expand(r axisRange, logScale bool) (min, max float64) {
	if logScale {
		lmin, lmax := math.Log(r.min), math.Log(r.max)
		pad := (lmax - lmin) * 0.05
		if pad == 0 {
			pad = 0.1
		}
		return math.Exp(lmin - pad), math.Exp(lmax + pad)
	}
	pad := (r.max - r.min) * 0.05
	if pad == 0 {
		pad = 0.5
		if r.min != 0 {
			pad = math.Abs(r.min) * 0.05
		}
	}
	return r.min - pad, r.max + pad
}

// A panelBuilder accumulates the state of one panel as layers are
// added to it.
type panelBuilder struct {
	p     Plot
	data  *dataset.Dataset
	theme Theme
	gp    *plot.Plot
	rng   *rand.Rand

	levels map[string][]string
	ramps  map[string]axisRange

	shareX, shareY   bool
	xShared, yShared axisRange

	// addLegend is set on the panel that carries the legend. Only
	// the top-left panel gets one, so a faceted plot doesn't repeat
	// it in every panel.
	addLegend bool
	seen      map[string]bool

	// xNominal, when non-nil, gives the level labels of a
	// categorical x axis.
	xNominal []string

	droppedLog int
}

func (b *panelBuilder) build(part facetPart, faceted bool) (*plot.Plot, error) {
	gp := plot.New()
	b.gp = gp
	b.seen = make(map[string]bool)

	if faceted {
		gp.Title.Text = part.label
	} else {
		gp.Title.Text = b.p.labels.Title
	}
	gp.X.Label.Text, gp.Y.Label.Text = b.p.axisNames()

	// Background first, then grid, then data marks, so each draws
	// over the previous.
	gp.Add(panelBackground{b.theme.Background})
	grid := plotter.NewGrid()
	grid.Vertical.Color = b.theme.Grid
	grid.Horizontal.Color = b.theme.Grid
	gp.Add(grid)

	for _, l := range b.p.layers {
		a := l.Mapping().merge(b.p.aes)
		var err error
		switch l := l.(type) {
		case LayerPoints:
			err = b.addPoints(l, a)
		case LayerLines:
			err = b.addLines(l, a)
		case LayerBox:
			err = b.addBox(l, a)
		case LayerSmooth:
			err = b.addSmooth(l, a)
		}
		if err != nil {
			return nil, err
		}
	}

	b.finishAxes()
	if b.droppedLog > 0 {
		Warning.Printf("dropped %d values that are nonpositive on a log scale", b.droppedLog)
	}
	if b.theme.Border {
		gp.Add(panelBorder{})
	}
	gp.Legend.Top = true
	return gp, nil
}

// finishAxes fixes the axis ranges, scales, and tick markers once
// all layers are in.
func (b *panelBuilder) finishAxes() {
	gp := b.gp

	if b.xNominal != nil {
		if b.p.xlog {
			Warning.Printf("ignoring log scale on a categorical x axis")
		}
		gp.NominalX(b.xNominal...)
		gp.X.Min, gp.X.Max = -0.5, float64(len(b.xNominal))-0.5
	} else {
		if b.p.xlog {
			gp.X.Scale = plot.LogScale{}
			gp.X.Tick.Marker = plot.LogTicks{Prec: -1}
		} else if f, ok := b.xField(); ok && f.Kind == dataset.Temporal {
			gp.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
		}
		switch {
		case b.shareX && b.xShared.set:
			gp.X.Min, gp.X.Max = expand(b.xShared, b.p.xlog)
		case gp.X.Min <= gp.X.Max:
			// Autoscaled from this panel's own marks.
			r := axisRange{gp.X.Min, gp.X.Max, true}
			gp.X.Min, gp.X.Max = expand(r, b.p.xlog)
		default:
			// No marks at all. Give the empty panel a sane range.
			gp.X.Min, gp.X.Max = 0, 1
			if b.p.xlog {
				gp.X.Min, gp.X.Max = 0.1, 10
			}
		}
	}

	if b.p.ylog {
		gp.Y.Scale = plot.LogScale{}
		gp.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	} else if f, ok := b.yField(); ok && f.Kind == dataset.Temporal {
		gp.Y.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	}
	switch {
	case b.shareY && b.yShared.set:
		gp.Y.Min, gp.Y.Max = expand(b.yShared, b.p.ylog)
	case gp.Y.Min <= gp.Y.Max:
		r := axisRange{gp.Y.Min, gp.Y.Max, true}
		gp.Y.Min, gp.Y.Max = expand(r, b.p.ylog)
	default:
		gp.Y.Min, gp.Y.Max = 0, 1
		if b.p.ylog {
			gp.Y.Min, gp.Y.Max = 0.1, 10
		}
	}
}

func (b *panelBuilder) xField() (dataset.Field, bool) {
	for _, a := range b.p.mappings() {
		if a.X != "" {
			return b.p.data.Column(a.X)
		}
	}
	return dataset.Field{}, false
}

func (b *panelBuilder) yField() (dataset.Field, bool) {
	for _, a := range b.p.mappings() {
		if a.Y != "" {
			return b.p.data.Column(a.Y)
		}
	}
	return dataset.Field{}, false
}

// positions resolves the x and y channels of one layer to plottable
// coordinates. Rows with a missing value on either channel are
// dropped, as are rows a log scale can't show; keep maps each
// returned point back to its row in the panel data.
func (b *panelBuilder) positions(layer string, a Aes, jitter float64) (xs, ys []float64, keep []int, err error) {
	xf, _ := b.data.Column(a.X)
	yf, _ := b.data.Column(a.Y)
	if yf.Kind == dataset.Categorical {
		return nil, nil, nil, fmt.Errorf("%s layer needs a numeric y, but %q is categorical", layer, a.Y)
	}

	var xv []float64
	if xf.Kind == dataset.Categorical {
		b.xNominal = b.nominalLevels(a.X)
		xv = positionsIn(b.xNominal, xf.Strings())
	} else {
		xv = xf.Floats()
	}
	yv := yf.Floats()

	for i := range xv {
		x, y := xv[i], yv[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		if b.p.xlog && xf.Kind != dataset.Categorical && x <= 0 {
			b.droppedLog++
			continue
		}
		if b.p.ylog && y <= 0 {
			b.droppedLog++
			continue
		}
		if jitter != 0 {
			x += (b.rng.Float64()*2 - 1) * jitter
		}
		xs = append(xs, x)
		ys = append(ys, y)
		keep = append(keep, i)
	}
	return xs, ys, keep, nil
}

// nominalLevels returns the level labels for a categorical x axis.
// With a shared x axis the labels come from the whole dataset so
// every panel puts a given level at the same position.
func (b *panelBuilder) nominalLevels(name string) []string {
	if b.shareX {
		return b.p.data.Levels(name)
	}
	return b.data.Levels(name)
}

// positionsIn maps each cell to the index of its level, or NaN for a
// missing cell.
func positionsIn(levels, cells []string) []float64 {
	idx := levelIndex(levels)
	out := make([]float64, len(cells))
	for i, c := range cells {
		if j, ok := idx[c]; ok {
			out[i] = float64(j)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func levelIndex(levels []string) map[string]int {
	idx := make(map[string]int, len(levels))
	for i, l := range levels {
		idx[l] = i
	}
	return idx
}

// A series is a run of points drawn with one style: one combination
// of color, shape, and group levels.
type series struct {
	label                  string
	colorI, shapeI, groupI int
	na                     bool
	pts                    []int // indices into the layer's kept points
}

// split partitions the kept points of a layer by its discrete
// channels. Rows whose cell is missing in any discrete channel
// collect in series marked na, which draw gray and are labeled "NA".
// Series come back ordered by level, so draw order and legend order
// are stable.
func (b *panelBuilder) split(a Aes, keep []int) []series {
	clv := b.discreteLevels(a.Color, false)
	slv := b.discreteLevels(a.Shape, false)
	glv := b.discreteLevels(a.Group, true)
	if clv == nil && slv == nil && glv == nil {
		return []series{{colorI: -1, shapeI: -1, groupI: -1, pts: seq(len(keep))}}
	}

	cells := func(name string, lv []string) []string {
		if lv == nil {
			return nil
		}
		f, _ := b.data.Column(name)
		return f.Strings()
	}
	cstr := cells(a.Color, clv)
	sstr := cells(a.Shape, slv)
	gstr := cells(a.Group, glv)
	cidx, sidx, gidx := levelIndex(clv), levelIndex(slv), levelIndex(glv)

	type key struct{ c, s, g int }
	resolve := func(idx map[string]int, lv []string, cell string) (int, bool) {
		if j, ok := idx[cell]; ok {
			return j, false
		}
		return len(lv), true
	}

	byKey := make(map[key]int)
	var out []series
	for pi, row := range keep {
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
		si, ok := byKey[k]
		if !ok {
			si = len(out)
			byKey[k] = si
			var label string
			switch {
			case na:
				label = "NA"
			case cstr != nil:
				label = clv[k.c]
			case sstr != nil:
				label = slv[k.s]
			}
			out = append(out, series{label: label, colorI: k.c, shapeI: k.s, groupI: k.g, na: na})
		}
		out[si].pts = append(out[si].pts, pi)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].colorI != out[j].colorI {
			return out[i].colorI < out[j].colorI
		}
		if out[i].shapeI != out[j].shapeI {
			return out[i].shapeI < out[j].shapeI
		}
		return out[i].groupI < out[j].groupI
	})
	return out
}

// discreteLevels returns the global level order for a discrete
// channel mapping, or nil if the channel is unmapped or its field
// kind doesn't fit the channel.
func (b *panelBuilder) discreteLevels(name string, anyKind bool) []string {
	if name == "" {
		return nil
	}
	f, ok := b.p.data.Column(name)
	if !ok || (!anyKind && f.Kind != dataset.Categorical) {
		return nil
	}
	return b.levels[name]
}

func (b *panelBuilder) seriesColor(s series, override color.Color) color.Color {
	if override != nil {
		return override
	}
	if s.na {
		return color.Gray{0x7f}
	}
	if s.colorI < 0 {
		return color.Black
	}
	pal := b.theme.Palette
	return pal[s.colorI%len(pal)]
}

func (b *panelBuilder) seriesGlyph(s series) draw.GlyphDrawer {
	if s.shapeI < 0 || s.na {
		return draw.CircleGlyph{}
	}
	return glyphShapes[s.shapeI%len(glyphShapes)]
}

func (b *panelBuilder) legendAdd(label string, thumb plot.Thumbnailer) {
	if !b.addLegend || label == "" || b.seen[label] {
		return
	}
	b.seen[label] = true
	b.gp.Legend.Add(label, thumb)
}

func (b *panelBuilder) addPoints(l LayerPoints, a Aes) error {
	xs, ys, keep, err := b.positions("points", a, l.Jitter)
	if err != nil {
		return err
	}
	colorRamp := b.rampValues(a.Color)
	sizeRamp := b.rampValues(a.Size)

	for _, s := range b.split(a, keep) {
		if len(s.pts) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.pts))
		for i, pi := range s.pts {
			xys[i] = plotter.XY{X: xs[pi], Y: ys[pi]}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		base := draw.GlyphStyle{
			Color:  withAlpha(b.seriesColor(s, l.Color), l.Alpha),
			Radius: b.pointRadius(l),
			Shape:  b.seriesGlyph(s),
		}
		sc.GlyphStyle = base
		if colorRamp != nil || sizeRamp != nil {
			pts := s.pts
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				g := base
				row := keep[pts[i]]
				if colorRamp != nil {
					if t := colorRamp[row]; math.IsNaN(t) {
						g.Color = withAlpha(color.Gray{0x7f}, l.Alpha)
					} else {
						g.Color = withAlpha(b.theme.Ramp.Map(t), l.Alpha)
					}
				}
				if sizeRamp != nil {
					if t := sizeRamp[row]; !math.IsNaN(t) {
						g.Radius = sizeRadius(t)
					}
				}
				return g
			}
		}
		b.gp.Add(sc)
		b.legendAdd(s.label, sc)
	}
	return nil
}

func (b *panelBuilder) addLines(l LayerLines, a Aes) error {
	xs, ys, keep, err := b.positions("lines", a, 0)
	if err != nil {
		return err
	}
	for _, s := range b.split(a, keep) {
		if len(s.pts) == 0 {
			continue
		}
		pts := append([]int(nil), s.pts...)
		sort.SliceStable(pts, func(i, j int) bool { return xs[pts[i]] < xs[pts[j]] })
		xys := make(plotter.XYs, len(pts))
		for i, pi := range pts {
			xys[i] = plotter.XY{X: xs[pi], Y: ys[pi]}
		}
		ln, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		ln.LineStyle = draw.LineStyle{
			Color: withAlpha(b.seriesColor(s, l.Color), l.Alpha),
			Width: b.lineWidth(l.Width, 0),
		}
		b.gp.Add(ln)
		b.legendAdd(s.label, ln)
	}
	return nil
}

func (b *panelBuilder) addSmooth(l LayerSmooth, a Aes) error {
	xs, ys, keep, err := b.positions("smooth", a, 0)
	if err != nil {
		return err
	}
	for _, s := range b.split(a, keep) {
		sxs := make([]float64, len(s.pts))
		sys := make([]float64, len(s.pts))
		for i, pi := range s.pts {
			sxs[i], sys[i] = xs[pi], ys[pi]
		}
		sm := vizstat.Smooth{
			Method: l.Method,
			Degree: l.Degree,
			Span:   l.Span,
			N:      l.N,
			// Evaluate over exactly the data range so the curve
			// stays inside the panel.
			Widen: 1,
		}
		fx, fy, err := sm.Fit(sxs, sys)
		if err != nil {
			Warning.Println(err)
			continue
		}
		var xys plotter.XYs
		for i := range fx {
			x, y := fx[i], fy[i]
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			if b.p.ylog && y <= 0 {
				continue
			}
			if b.p.xlog && b.xNominal == nil && x <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: x, Y: y})
		}
		if len(xys) == 0 {
			continue
		}
		ln, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		c := l.Color
		if c == nil {
			if s.colorI >= 0 || s.na {
				c = b.seriesColor(s, nil)
			} else {
				c = color.RGBA{0x33, 0x66, 0xff, 0xff}
			}
		}
		ln.LineStyle = draw.LineStyle{
			Color: c,
			Width: b.lineWidth(l.Width, 0.5),
		}
		b.gp.Add(ln)
	}
	return nil
}

func (b *panelBuilder) addBox(l LayerBox, a Aes) error {
	yf, _ := b.data.Column(a.Y)
	if yf.Kind == dataset.Categorical {
		return fmt.Errorf("box layer needs a numeric y, but %q is categorical", a.Y)
	}
	yv := yf.Floats()

	width := vg.Points(20)
	if l.Width > 0 {
		width = vg.Points(l.Width)
	}
	boxVals := func(rows []int) plotter.Values {
		var vals plotter.Values
		for _, i := range rows {
			v := yv[i]
			if math.IsNaN(v) {
				continue
			}
			if b.p.ylog && v <= 0 {
				b.droppedLog++
				continue
			}
			vals = append(vals, v)
		}
		return vals
	}

	if a.X == "" {
		vals := boxVals(seq(len(yv)))
		if len(vals) == 0 {
			return nil
		}
		bp, err := plotter.NewBoxPlot(width, 0, vals)
		if err != nil {
			return err
		}
		bp.FillColor = withAlpha(b.boxFill(l, -1), l.Alpha)
		b.gp.Add(bp)
		b.xNominal = []string{""}
		return nil
	}

	xf, _ := b.data.Column(a.X)
	if xf.Kind != dataset.Categorical {
		return fmt.Errorf("box layer needs a categorical x, but %q is %s", a.X, xf.Kind)
	}
	levels := b.nominalLevels(a.X)
	b.xNominal = levels
	cells := xf.Strings()
	byLevel := make(map[string][]int, len(levels))
	for i, c := range cells {
		byLevel[c] = append(byLevel[c], i)
	}
	// Fill one palette color per level when the boxes themselves
	// carry the color mapping.
	colorByLevel := a.Color != "" && a.Color == a.X
	for li, lv := range levels {
		vals := boxVals(byLevel[lv])
		if len(vals) == 0 {
			continue
		}
		bp, err := plotter.NewBoxPlot(width, float64(li), vals)
		if err != nil {
			return err
		}
		fill := -1
		if colorByLevel {
			fill = li
		}
		bp.FillColor = withAlpha(b.boxFill(l, fill), l.Alpha)
		b.gp.Add(bp)
	}
	return nil
}

func (b *panelBuilder) boxFill(l LayerBox, level int) color.Color {
	if l.Fill != nil {
		return l.Fill
	}
	if level >= 0 {
		pal := b.theme.Palette
		return pal[level%len(pal)]
	}
	return color.White
}

func (b *panelBuilder) pointRadius(l LayerPoints) vg.Length {
	if l.Size > 0 {
		return vg.Points(l.Size)
	}
	return b.theme.PointSize
}

func (b *panelBuilder) lineWidth(w, extra float64) vg.Length {
	if w > 0 {
		return vg.Points(w)
	}
	return b.theme.LineWidth + vg.Points(extra)
}

// rampValues returns name's values normalized to [0, 1] by its range
// over the whole dataset, or nil if name isn't mapped to a numeric
// or temporal field. Missing cells come back NaN.
func (b *panelBuilder) rampValues(name string) []float64 {
	r, ok := b.ramps[name]
	if !ok || !r.set {
		return nil
	}
	f, _ := b.data.Column(name)
	vals := f.Floats()
	span := r.max - r.min
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch {
		case math.IsNaN(v):
			out[i] = math.NaN()
		case span == 0:
			out[i] = 0.5
		default:
			t := (v - r.min) / span
			out[i] = math.Min(1, math.Max(0, t))
		}
	}
	return out
}

// sizeRadius maps a normalized size value to a glyph radius. Area,
// not radius, scales with the value.
func sizeRadius(t float64) vg.Length {
	return vg.Points(1.5 + 4.5*math.Sqrt(t))
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// panelBackground fills the data area of a panel.
type panelBackground struct {
	color color.Color
}

func (bg panelBackground) Plot(c draw.Canvas, plt *plot.Plot) {
	c.SetColor(bg.color)
	c.Fill(c.Rectangle.Path())
}

// panelBorder strokes a frame around the data area of a panel.
type panelBorder struct{}

func (panelBorder) Plot(c draw.Canvas, plt *plot.Plot) {
	sty := draw.LineStyle{Color: color.Gray{0x33}, Width: vg.Points(0.75)}
	r := c.Rectangle
	c.StrokeLines(sty, []vg.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Min.Y},
	})
}
