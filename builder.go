// Package upsetgo builds declarative UpSet plot scenes from boolean
// set-membership tables.
//
// This file implements the fluent chart builder. The builder is immutable -
// each method returns a new builder with the updated configuration.
package upsetgo

import (
	"time"

	"github.com/hupe1980/upsetgo/annotate"
	"github.com/hupe1980/upsetgo/codec"
	"github.com/hupe1980/upsetgo/frame"
	"github.com/hupe1980/upsetgo/highlight"
	"github.com/hupe1980/upsetgo/intersect"
)

// Supported vertical-bar y-axis orientations.
const (
	OrientLeft  = "left"
	OrientRight = "right"
)

// DefaultColorRange is the palette mapped onto sets by position. It cycles
// when there are more sets than colors.
var DefaultColorRange = []string{"#55A8DB", "#3070B5", "#30363F", "#F1AD60", "#DF6234", "#BDC6CA"}

const (
	defaultHighlightColor = "#EA4667"
	defaultMainColor      = "#3A3A3A"
)

// New creates a chart builder for the given table and set columns.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. All configuration is validated inside Build, before
// any scene assembly.
//
// Example:
//
//	chart, err := upsetgo.New(t, "A", "B", "C").
//	    SortByFrequency().
//	    Descending().
//	    HighlightGreatest().
//	    Build()
func New(t *frame.Table, sets ...string) Builder {
	return Builder{
		table:          t,
		sets:           sets,
		sortBy:         intersect.SortByFrequency,
		sortOrder:      intersect.Ascending,
		width:          1200,
		height:         700,
		heightRatio:    0.6,
		hbarWidth:      300,
		colorRange:     DefaultColorRange,
		highlightColor: defaultHighlightColor,
		mainColor:      defaultMainColor,
		glyphSize:      200,
		labelBGSize:    1000,
		lineSize:       2,
		hbarSize:       20,
		vbarLabelSize:  16,
		vbarPadding:    20,
		yAxisOrient:    OrientLeft,
	}
}

// Builder is an immutable fluent builder for UpSet charts.
type Builder struct {
	table          *frame.Table
	sets           []string
	abbrevs        []string
	sortBy         intersect.SortBy
	sortOrder      intersect.SortOrder
	title          string
	subtitle       string
	width          int
	height         int
	heightRatio    float64
	hbarWidth      int
	colorRange     []string
	highlightColor string
	mainColor      string
	glyphSize      int
	labelBGSize    int
	lineSize       int
	hbarSize       int
	vbarLabelSize  int
	vbarPadding    int
	yAxisOrient    string
	highlight      any
	annotations    []annotate.Spec
	opts           []Option
}

// Abbreviations sets display abbreviations for the sets, positionally.
// The list must have the same length as the set list.
func (b Builder) Abbreviations(abbrevs ...string) Builder {
	b.abbrevs = abbrevs
	return b
}

// SortByFrequency orders intersections by their size.
func (b Builder) SortByFrequency() Builder {
	b.sortBy = intersect.SortByFrequency
	return b
}

// SortByDegree orders intersections by the number of participating sets.
func (b Builder) SortByDegree() Builder {
	b.sortBy = intersect.SortByDegree
	return b
}

// Ascending sorts intersections smallest first.
func (b Builder) Ascending() Builder {
	b.sortOrder = intersect.Ascending
	return b
}

// Descending sorts intersections largest first.
func (b Builder) Descending() Builder {
	b.sortOrder = intersect.Descending
	return b
}

// Title sets the chart title.
func (b Builder) Title(title string) Builder {
	b.title = title
	return b
}

// Subtitle sets the chart subtitle.
func (b Builder) Subtitle(subtitle string) Builder {
	b.subtitle = subtitle
	return b
}

// Width sets the total chart width in pixels. Default: 1200.
func (b Builder) Width(w int) Builder {
	b.width = w
	return b
}

// Height sets the total chart height in pixels. Default: 700.
func (b Builder) Height(h int) Builder {
	b.height = h
	return b
}

// HeightRatio sets the share of the height given to the vertical bar chart.
// Must be in (0, 1]. Default: 0.6.
func (b Builder) HeightRatio(r float64) Builder {
	b.heightRatio = r
	return b
}

// HorizontalBarWidth sets the width of the per-set bar panel. Default: 300.
func (b Builder) HorizontalBarWidth(w int) Builder {
	b.hbarWidth = w
	return b
}

// ColorRange sets the ordered palette mapped onto sets by position. A range
// shorter than the set list cycles.
func (b Builder) ColorRange(colors ...string) Builder {
	b.colorRange = colors
	return b
}

// HighlightColor sets the color used for selected marks.
func (b Builder) HighlightColor(color string) Builder {
	b.highlightColor = color
	return b
}

// GlyphSize sets the matrix glyph size. Default: 200.
func (b Builder) GlyphSize(size int) Builder {
	b.glyphSize = size
	return b
}

// VerticalBarAxisOrient places the vertical bar y-axis on the given side,
// OrientLeft or OrientRight. Any other token fails at Build time.
func (b Builder) VerticalBarAxisOrient(orient string) Builder {
	b.yAxisOrient = orient
	return b
}

// Highlight sets the highlight directive: nil, "least", "greatest", a
// non-negative intersection index, or a list of non-negative indices.
// With no directive, panels highlight on hover instead.
func (b Builder) Highlight(directive any) Builder {
	b.highlight = directive
	return b
}

// HighlightLeast statically selects the smallest intersection(s).
func (b Builder) HighlightLeast() Builder { return b.Highlight("least") }

// HighlightGreatest statically selects the largest intersection(s).
func (b Builder) HighlightGreatest() Builder { return b.Highlight("greatest") }

// HighlightIndex statically selects one intersection by id.
func (b Builder) HighlightIndex(i int) Builder { return b.Highlight(i) }

// HighlightIndices statically selects the given intersection ids.
func (b Builder) HighlightIndices(ids ...int) Builder { return b.Highlight(ids) }

// Annotate appends an annotation panel bound to the given spec. Panels are
// stacked in the order they were added.
func (b Builder) Annotate(spec annotate.Spec) Builder {
	b.annotations = append(append([]annotate.Spec(nil), b.annotations...), spec)
	return b
}

// Logger sets the structured logger for build tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.opts = append(b.opts, WithLogger(l))
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.opts = append(b.opts, WithMetricsCollector(mc))
	return b
}

// Codec sets the codec used to serialize the scene.
func (b Builder) Codec(c codec.Codec) Builder {
	b.opts = append(b.opts, WithCodec(c))
	return b
}

// Build validates the configuration, aggregates the table and composes the
// chart. All errors surface here; no partial chart is returned.
func (b Builder) Build() (*Chart, error) {
	o := applyOptions(b.opts)

	start := time.Now()
	chart, err := b.build(o)
	duration := time.Since(start)

	intersections := 0
	if chart != nil {
		intersections = len(chart.grouping.Intersections)
	}
	o.metrics.RecordBuild(intersections, duration, err)
	o.logger.LogBuild(len(b.sets), intersections, len(b.annotations), duration, err)

	return chart, err
}

// MustBuild is like Build but panics on error. Intended for examples and
// tests with known-good configuration.
func (b Builder) MustBuild() *Chart {
	chart, err := b.Build()
	if err != nil {
		panic(err)
	}
	return chart
}

func (b Builder) build(o options) (*Chart, error) {
	if b.heightRatio <= 0 || b.heightRatio > 1 {
		return nil, translateError(&ErrHeightRatio{Ratio: b.heightRatio})
	}
	if b.yAxisOrient != OrientLeft && b.yAxisOrient != OrientRight {
		return nil, translateError(&ErrAxisOrient{Token: b.yAxisOrient})
	}

	specs := make([]annotate.Spec, len(b.annotations))
	for i, spec := range b.annotations {
		if err := spec.Validate(); err != nil {
			return nil, translateError(err)
		}
		specs[i] = spec.Normalize()
	}

	grouping, err := intersect.GroupRows(b.table, b.sets, b.abbrevs, b.sortBy, b.sortOrder)
	if err != nil {
		return nil, translateError(err)
	}
	o.logger.LogAggregate(grouping.NumRows, len(grouping.Intersections), nil)

	var records map[string][]annotate.Record
	if len(specs) > 0 {
		attrs := make([]string, len(specs))
		for i, spec := range specs {
			attrs[i] = spec.Attribute
		}
		records, err = annotate.BuildRecords(grouping, b.table, attrs)
		if err != nil {
			return nil, translateError(err)
		}
	}

	selection, err := highlight.Resolve(b.highlight, grouping)
	if err != nil {
		return nil, translateError(err)
	}

	c := newComposer(b, grouping, specs, records, selection)
	return &Chart{
		scene:     c.compose(),
		grouping:  grouping,
		selection: selection,
		sort:      c.xSort,
		opts:      o,
	}, nil
}
