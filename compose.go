package upsetgo

import (
	"github.com/hupe1980/upsetgo/annotate"
	"github.com/hupe1980/upsetgo/highlight"
	"github.com/hupe1980/upsetgo/intersect"
	"github.com/hupe1980/upsetgo/scene"
)

// Names of the shared selection parameters. Every panel that reacts to a
// selection references these by name; the parameters themselves are declared
// exactly once.
const (
	// ParamIntersectionHover is the selection over intersection ids. With
	// no highlight directive it triggers on mouseover; with one it carries
	// the resolved ids as a static initial value.
	ParamIntersectionHover = "intersection_hover"
	// ParamSetLegend is the legend-bound selection over sets, orthogonal to
	// the intersection selection.
	ParamSetLegend = "set_legend"
)

// composer assembles the panels of one chart around a shared grouping, a
// shared x-axis sort and shared selection parameters.
type composer struct {
	b         Builder
	g         *intersect.Grouping
	specs     []annotate.Spec
	records   map[string][]annotate.Record
	selection highlight.Selection

	// xSort is the one sort specification every intersection-id axis uses;
	// panels share the pointer, never a recomputed copy.
	xSort *scene.Sort

	long []intersect.LongRow

	matrixWidth  int
	matrixHeight int
	vbarHeight   int
}

func newComposer(b Builder, g *intersect.Grouping, specs []annotate.Spec, records map[string][]annotate.Record, sel highlight.Selection) *composer {
	vbarHeight := int(float64(b.height) * b.heightRatio)
	return &composer{
		b:         b,
		g:         g,
		specs:     specs,
		records:   records,
		selection: sel,
		xSort: &scene.Sort{
			Field: b.sortBy.Field(),
			Order: b.sortOrder.String(),
		},
		long:         g.LongForm(),
		matrixWidth:  b.width - b.hbarWidth,
		matrixHeight: b.height - vbarHeight,
		vbarHeight:   vbarHeight,
	}
}

// compose stacks the panels: vertical bars on top, annotation panels in
// caller order below them, then the matrix row (matrix, set labels,
// per-set bars) with a shared y scale.
func (c *composer) compose() *scene.Spec {
	root := scene.New()
	if c.b.title != "" || c.b.subtitle != "" {
		root.Title = &scene.Title{
			Text:             c.b.title,
			Subtitle:         c.b.subtitle,
			FontSize:         20,
			FontWeight:       500,
			SubtitleColor:    c.b.mainColor,
			SubtitleFontSize: 14,
		}
	}

	panels := []*scene.Spec{c.verticalBarPanel()}
	for _, spec := range c.specs {
		panels = append(panels, c.annotationPanel(spec))
	}
	panels = append(panels, &scene.Spec{
		HConcat: []*scene.Spec{
			c.matrixPanel(),
			c.setLabelPanel(),
			c.horizontalBarPanel(),
		},
		Spacing: 5,
		Resolve: &scene.Resolve{Scale: map[string]string{"y": "shared"}},
	})

	root.VConcat = panels
	root.Spacing = 20
	root.Config = c.topLevelConfig()
	return root
}

// intersectionParam declares the shared intersection selection. Hover-driven
// by default; a resolved highlight supersedes mouseover with a static value.
func (c *composer) intersectionParam() *scene.Param {
	p := &scene.Param{
		Name: ParamIntersectionHover,
		Select: &scene.Select{
			Type:   "point",
			Fields: []string{"intersection_id"},
		},
	}
	if c.selection.Static() {
		value := make([]map[string]any, 0, len(c.selection.SortedIDs()))
		for _, id := range c.selection.SortedIDs() {
			value = append(value, map[string]any{"intersection_id": id})
		}
		p.Value = value
	} else {
		p.Select.On = "mouseover"
	}
	return p
}

func (c *composer) legendParam() *scene.Param {
	return &scene.Param{
		Name: ParamSetLegend,
		Select: &scene.Select{
			Type:   "point",
			Fields: []string{"set"},
		},
		Bind: "legend",
	}
}

// brushColor colors marks with the highlight color while they are part of
// the intersection selection and the main color otherwise.
func (c *composer) brushColor() *scene.Channel {
	return &scene.Channel{
		Condition: &scene.Condition{
			Param: ParamIntersectionHover,
			Empty: scene.False,
			Value: c.b.highlightColor,
		},
		Value: c.b.mainColor,
	}
}

// legendOpacity dims marks of sets excluded by the legend selection.
func (c *composer) legendOpacity() *scene.Channel {
	return &scene.Channel{
		Condition: &scene.Condition{
			Param: ParamSetLegend,
			Value: 1.0,
		},
		Value: 0.2,
	}
}

func (c *composer) intersectionX(hideAxis bool) *scene.Channel {
	ch := &scene.Channel{
		Field: "intersection_id",
		Type:  "nominal",
		Sort:  c.xSort,
	}
	if hideAxis {
		ch.Axis = &scene.Axis{
			Title:  scene.Null,
			Labels: scene.False,
			Ticks:  scene.False,
			Grid:   scene.False,
			Domain: scene.False,
		}
	}
	return ch
}

func (c *composer) intersectionTooltip() []scene.Channel {
	return []scene.Channel{
		{Field: "count", Aggregate: "max", Type: "quantitative", Title: "Cardinality"},
		{Field: "degree", Type: "quantitative", Title: "Degree"},
		{Field: "set", Type: "nominal", Title: "Set"},
	}
}

// verticalBarPanel draws one bar per intersection with its count label,
// aligned to the matrix columns. The shared intersection selection is
// declared here.
func (c *composer) verticalBarPanel() *scene.Spec {
	bar := &scene.Spec{
		Mark: &scene.Mark{
			Type: "bar",
			Size: c.verticalBarSize(),
		},
		Encoding: &scene.Encoding{
			X: c.intersectionX(true),
			Y: &scene.Channel{
				Field:     "count",
				Aggregate: "max",
				Type:      "quantitative",
				Axis: &scene.Axis{
					Title:     "Intersection Size",
					Orient:    c.b.yAxisOrient,
					Grid:      scene.False,
					TickCount: 3,
				},
			},
			Color:   c.brushColor(),
			Tooltip: c.intersectionTooltip(),
		},
	}

	label := &scene.Spec{
		Mark: &scene.Mark{
			Type:     "text",
			Baseline: "bottom",
			DY:       -5,
			FontSize: c.b.vbarLabelSize,
		},
		Encoding: &scene.Encoding{
			X: c.intersectionX(true),
			Y: &scene.Channel{Field: "count", Aggregate: "max", Type: "quantitative"},
			Text: &scene.Channel{
				Field:     "count",
				Aggregate: "max",
				Type:      "quantitative",
			},
		},
	}

	return &scene.Spec{
		Width:  c.matrixWidth,
		Height: c.vbarHeight,
		Data:   &scene.Data{Values: c.long},
		Params: []*scene.Param{c.intersectionParam()},
		Layer:  []*scene.Spec{bar, label},
	}
}

func (c *composer) verticalBarSize() float64 {
	size := 30.0
	if k := len(c.g.Intersections); k > 0 {
		if s := float64(c.b.width)/float64(k) - float64(c.b.vbarPadding); s < size {
			size = s
		}
	}
	if size < 1 {
		size = 1
	}
	return size
}

// matrixPanel draws the membership matrix: background glyphs for every
// (set, intersection) pair, filled glyphs for members, banded rows and a
// rule connecting each intersection's member glyphs.
func (c *composer) matrixPanel() *scene.Spec {
	yChannel := &scene.Channel{
		Field: "set_order",
		Type:  "nominal",
		Axis: &scene.Axis{
			Title:  scene.Null,
			Labels: scene.False,
			Ticks:  scene.False,
			Grid:   scene.False,
			Domain: scene.False,
		},
	}

	rowBand := &scene.Spec{
		Transform: []scene.Transform{
			{Calculate: "datum.set_order % 2", As: "row_band"},
			{Filter: "datum.row_band == 1"},
		},
		Mark: &scene.Mark{Type: "rect", Color: "#F7F7F7"},
		Encoding: &scene.Encoding{
			Y: yChannel,
		},
	}

	glyphBG := &scene.Spec{
		Mark: &scene.Mark{
			Type:   "circle",
			Filled: scene.True,
			Size:   float64(c.b.glyphSize),
			Color:  "#E6E6E6",
		},
		Encoding: &scene.Encoding{
			X: c.intersectionX(true),
			Y: yChannel,
		},
	}

	connection := &scene.Spec{
		Transform: []scene.Transform{{Filter: "datum.is_member == 1"}},
		Mark: &scene.Mark{
			Type: "rule",
			Size: float64(c.b.lineSize),
		},
		Encoding: &scene.Encoding{
			X:      c.intersectionX(true),
			Y:      &scene.Channel{Field: "set_order", Aggregate: "min", Type: "nominal"},
			Y2:     &scene.Channel{Field: "set_order", Aggregate: "max"},
			Color:  c.brushColor(),
			Detail: &scene.Channel{Field: "intersection_id", Type: "nominal"},
		},
	}

	glyph := &scene.Spec{
		Transform: []scene.Transform{{Filter: "datum.is_member == 1"}},
		Mark: &scene.Mark{
			Type:   "circle",
			Filled: scene.True,
			Size:   float64(c.b.glyphSize),
		},
		Encoding: &scene.Encoding{
			X:       c.intersectionX(true),
			Y:       yChannel,
			Color:   c.brushColor(),
			Opacity: c.legendOpacity(),
			Tooltip: c.intersectionTooltip(),
		},
	}

	return &scene.Spec{
		Width:  c.matrixWidth,
		Height: c.matrixHeight,
		Data:   &scene.Data{Values: c.long},
		Layer:  []*scene.Spec{rowBand, glyphBG, connection, glyph},
	}
}

// setLabelPanel draws the set abbreviations between the matrix and the
// per-set bars, on colored background circles when every abbreviation is
// short enough to fit one.
func (c *composer) setLabelPanel() *scene.Spec {
	showBG := c.showLabelBG()

	textColor := "black"
	if showBG {
		textColor = "white"
	}

	label := &scene.Spec{
		Mark: &scene.Mark{
			Type:  "text",
			Color: textColor,
		},
		Encoding: &scene.Encoding{
			Y: &scene.Channel{
				Field: "set_order",
				Type:  "nominal",
				Axis: &scene.Axis{
					Title:  scene.Null,
					Labels: scene.False,
					Ticks:  scene.False,
					Grid:   scene.False,
					Domain: scene.False,
				},
			},
			Text: &scene.Channel{Field: "set_abbrev", Type: "nominal"},
		},
	}

	layers := []*scene.Spec{}
	if showBG {
		layers = append(layers, &scene.Spec{
			Mark: &scene.Mark{
				Type:   "circle",
				Filled: scene.True,
				Size:   float64(c.b.labelBGSize),
			},
			Encoding: &scene.Encoding{
				Y: &scene.Channel{
					Field: "set_order",
					Type:  "nominal",
					Axis: &scene.Axis{
						Title:  scene.Null,
						Labels: scene.False,
						Ticks:  scene.False,
						Grid:   scene.False,
						Domain: scene.False,
					},
				},
				Color: c.setColor(false),
			},
		})
	}
	layers = append(layers, label)

	return &scene.Spec{
		Height: c.matrixHeight,
		Data:   &scene.Data{Values: c.long},
		Layer:  layers,
	}
}

func (c *composer) showLabelBG() bool {
	for _, meta := range c.g.Sets {
		if len(meta.Abbrev) > 2 {
			return false
		}
	}
	return true
}

// setColor maps sets onto the configured palette by position, cycling the
// palette when it is shorter than the set list.
func (c *composer) setColor(legend bool) *scene.Channel {
	colors := c.b.colorRange
	if len(colors) == 0 {
		colors = DefaultColorRange
	}
	cycled := make([]string, len(c.g.Sets))
	for i := range c.g.Sets {
		cycled[i] = colors[i%len(colors)]
	}

	domain := make([]string, len(c.g.Sets))
	for i, meta := range c.g.Sets {
		domain[i] = meta.Name
	}

	ch := &scene.Channel{
		Field: "set",
		Type:  "nominal",
		Scale: &scene.Scale{Domain: domain, Range: cycled},
	}
	if !legend {
		ch.Legend = scene.Null
	}
	return ch
}

// horizontalBarPanel draws one bar per set whose length is the set's total
// row count, a separate aggregate from the per-intersection counts. The
// legend-bound set selection is declared here.
func (c *composer) horizontalBarPanel() *scene.Spec {
	return &scene.Spec{
		Width:  c.b.hbarWidth,
		Height: c.matrixHeight,
		Data:   &scene.Data{Values: c.long},
		Params: []*scene.Param{c.legendParam()},
		Transform: []scene.Transform{
			{Filter: "datum.is_member == 1"},
		},
		Mark: &scene.Mark{
			Type: "bar",
			Size: float64(c.b.hbarSize),
		},
		Encoding: &scene.Encoding{
			X: &scene.Channel{
				Field:     "count",
				Aggregate: "sum",
				Type:      "quantitative",
				Title:     "Set Size",
			},
			Y: &scene.Channel{
				Field: "set_order",
				Type:  "nominal",
				Axis: &scene.Axis{
					Title:  scene.Null,
					Labels: scene.False,
					Ticks:  scene.False,
					Grid:   scene.False,
					Domain: scene.False,
				},
			},
			Color:   c.setColor(true),
			Opacity: c.legendOpacity(),
		},
	}
}

// annotationPanel builds one panel for an annotation spec, bound to the
// attribute's record set and aligned to the shared intersection order.
func (c *composer) annotationPanel(spec annotate.Spec) *scene.Spec {
	panel := &scene.Spec{
		Width:  c.matrixWidth,
		Height: spec.Height,
		Title: &scene.Title{
			Text:     spec.Title,
			FontSize: 12,
			Anchor:   "start",
		},
		Data:   &scene.Data{Values: c.annotationValues(spec)},
		Config: spec.Extra,
	}

	yAxis := &scene.Axis{
		Title:     spec.Title,
		Grid:      scene.True,
		TickCount: 3,
	}

	switch spec.Plot {
	case annotate.PlotBoxplot:
		panel.Mark = &scene.Mark{Type: "boxplot", Size: 30}
		panel.Encoding = &scene.Encoding{
			X: c.intersectionX(true),
			Y: &scene.Channel{Field: spec.Attribute, Type: "quantitative", Axis: yAxis},
			Color: c.annotationColor(spec),
			Tooltip: []scene.Channel{
				{Field: "intersection_id", Type: "nominal", Title: "Intersection"},
				{Field: spec.Attribute, Aggregate: "median", Type: "quantitative", Title: "Median", Format: ".2f"},
				{Field: spec.Attribute, Aggregate: "q1", Type: "quantitative", Title: "Q1", Format: ".2f"},
				{Field: spec.Attribute, Aggregate: "q3", Type: "quantitative", Title: "Q3", Format: ".2f"},
			},
		}
	case annotate.PlotViolin:
		panel.Transform = []scene.Transform{{
			Density: spec.Attribute,
			GroupBy: []string{"intersection_id"},
			As:      []string{spec.Attribute, "density"},
		}}
		panel.Mark = &scene.Mark{Type: "area", Opacity: 0.6, Interpolate: "monotone"}
		panel.Encoding = &scene.Encoding{
			X:     c.intersectionX(true),
			Y:     &scene.Channel{Field: spec.Attribute, Type: "quantitative", Axis: yAxis},
			Color: c.annotationColor(spec),
			Tooltip: []scene.Channel{
				{Field: "intersection_id", Type: "nominal", Title: "Intersection"},
				{Field: spec.Attribute, Type: "quantitative", Title: spec.Title, Format: ".2f"},
			},
		}
	case annotate.PlotStrip:
		panel.Transform = []scene.Transform{{
			Calculate: "datum.intersection_id + (random() - 0.5) * 0.4",
			As:        "jittered_x",
		}}
		panel.Mark = &scene.Mark{Type: "circle", Size: 20, Opacity: 0.6}
		panel.Encoding = &scene.Encoding{
			X:     c.intersectionX(true),
			Y:     &scene.Channel{Field: spec.Attribute, Type: "quantitative", Axis: yAxis},
			Color: c.annotationColor(spec),
			Tooltip: []scene.Channel{
				{Field: "intersection_id", Type: "nominal", Title: "Intersection"},
				{Field: spec.Attribute, Type: "quantitative", Title: spec.Title, Format: ".2f"},
			},
		}
	case annotate.PlotBar:
		colorField := spec.Attribute
		if spec.ColorBy != "" {
			colorField = spec.ColorBy
		}
		panel.Mark = &scene.Mark{Type: "bar"}
		panel.Encoding = &scene.Encoding{
			X: c.intersectionX(true),
			Y: &scene.Channel{
				Field:     spec.Attribute,
				Aggregate: "count",
				Type:      "quantitative",
				Axis: &scene.Axis{
					Title:     "Count of " + spec.Title,
					Grid:      scene.True,
					TickCount: 3,
				},
			},
			Color: &scene.Channel{Field: colorField, Type: "nominal", Title: spec.Title},
			Tooltip: []scene.Channel{
				{Field: "intersection_id", Type: "nominal", Title: "Intersection"},
				{Field: spec.Attribute, Type: "nominal", Title: spec.Title},
				{Field: spec.Attribute, Aggregate: "count", Type: "quantitative", Title: "Count"},
			},
		}
	}

	return panel
}

func (c *composer) annotationColor(spec annotate.Spec) *scene.Channel {
	if spec.ColorBy != "" {
		return &scene.Channel{Field: spec.ColorBy, Type: "nominal"}
	}
	return &scene.Channel{Value: c.b.mainColor}
}

// annotationValues flattens the attribute's records into scene data rows,
// carrying the color-by attribute alongside when one is configured.
func (c *composer) annotationValues(spec annotate.Spec) []map[string]any {
	records := c.records[spec.Attribute]
	values := make([]map[string]any, 0, len(records))

	var colorBy func(row int) (any, bool)
	if spec.ColorBy != "" {
		if col, err := c.b.table.Column(spec.ColorBy); err == nil {
			colorBy = col.Value
		}
	}

	for _, r := range records {
		row := map[string]any{
			"intersection_id": r.IntersectionID,
			"row_id":          r.RowID,
			spec.Attribute:    r.Value,
		}
		if colorBy != nil {
			if v, ok := colorBy(r.RowID); ok {
				row[spec.ColorBy] = v
			}
		}
		values = append(values, row)
	}
	return values
}

// topLevelConfig mirrors the renderer defaults the original styling applied
// globally: no view stroke, a top legend sized to the set label glyphs and
// muted axis chrome.
func (c *composer) topLevelConfig() map[string]any {
	return map[string]any{
		"view": map[string]any{"stroke": nil},
		"legend": map[string]any{
			"orient":     "top",
			"symbolType": "circle",
			"symbolSize": float64(c.b.labelBGSize) / 2.0,
			"labelColor": c.b.mainColor,
			"titleColor": c.b.mainColor,
			"padding":    20,
			"rowPadding": 5,
			"direction":  "horizontal",
			"title":      nil,
		},
		"axis": map[string]any{
			"labelColor":  c.b.mainColor,
			"titleColor":  c.b.mainColor,
			"tickColor":   c.b.mainColor,
			"domainColor": c.b.mainColor,
		},
		"concat": map[string]any{"spacing": 0},
	}
}
