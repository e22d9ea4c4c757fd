package upsetgo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/upsetgo"
	"github.com/hupe1980/upsetgo/annotate"
	"github.com/hupe1980/upsetgo/frame"
	"github.com/hupe1980/upsetgo/highlight"
	"github.com/hupe1980/upsetgo/scene"
)

func sampleTable(t *testing.T) *frame.Table {
	t.Helper()
	tab, err := frame.NewBuilder().
		Bits("A", []int{1, 1, 0, 1}).
		Bits("B", []int{0, 1, 1, 0}).
		Bits("C", []int{0, 0, 1, 0}).
		Floats("age", []float64{30, 25, 52, 41}).
		Build()
	require.NoError(t, err)
	return tab
}

func TestBuild_Basic(t *testing.T) {
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").
		SortByFrequency().
		Descending().
		Build()
	require.NoError(t, err)

	root := chart.Scene()
	assert.Equal(t, scene.SchemaURL, root.Schema)

	// Vertical bars on top, matrix row at the bottom.
	require.Len(t, root.VConcat, 2)
	assert.NotEmpty(t, root.VConcat[0].Layer)
	require.Len(t, root.VConcat[1].HConcat, 3)

	g := chart.Grouping()
	require.Len(t, g.Intersections, 3)
	assert.Equal(t, 2, g.Intersections[0].Count)
}

func TestBuild_SharedSortAcrossPanels(t *testing.T) {
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").
		SortByDegree().
		Ascending().
		Annotate(annotate.Spec{Attribute: "age", Plot: annotate.PlotBoxplot}).
		Build()
	require.NoError(t, err)

	root := chart.Scene()
	vbarX := root.VConcat[0].Layer[0].Encoding.X
	annX := root.VConcat[1].Encoding.X
	matrixX := root.VConcat[2].HConcat[0].Layer[3].Encoding.X

	// One shared sort specification object, not recomputed copies.
	assert.Same(t, chart.Sort(), vbarX.Sort)
	assert.Same(t, vbarX.Sort, annX.Sort)
	assert.Same(t, vbarX.Sort, matrixX.Sort)
	assert.Equal(t, "degree", chart.Sort().Field)
	assert.Equal(t, "ascending", chart.Sort().Order)
}

func TestBuild_HoverSelectionDefault(t *testing.T) {
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").Build()
	require.NoError(t, err)

	assert.Equal(t, highlight.ModeNone, chart.Selection().Mode)

	params := chart.Scene().VConcat[0].Params
	require.Len(t, params, 1)
	assert.Equal(t, upsetgo.ParamIntersectionHover, params[0].Name)
	assert.Equal(t, "mouseover", params[0].Select.On)
	assert.Nil(t, params[0].Value)
}

func TestBuild_StaticHighlightSupersedesHover(t *testing.T) {
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").
		HighlightIndices(0, 2).
		Build()
	require.NoError(t, err)

	assert.Equal(t, highlight.ModeIndexList, chart.Selection().Mode)
	assert.Equal(t, []int{0, 2}, chart.Selection().SortedIDs())

	params := chart.Scene().VConcat[0].Params
	require.Len(t, params, 1)
	assert.Empty(t, params[0].Select.On)
	assert.Equal(t, []map[string]any{
		{"intersection_id": 0},
		{"intersection_id": 2},
	}, params[0].Value)
}

func TestBuild_HighlightLeastTies(t *testing.T) {
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").
		SortByFrequency().
		Descending().
		HighlightLeast().
		Build()
	require.NoError(t, err)

	// Two intersections tie at count 1; both are selected.
	assert.Equal(t, []int{1, 2}, chart.Selection().SortedIDs())
}

func TestBuild_LegendSelectionIndependent(t *testing.T) {
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").Build()
	require.NoError(t, err)

	row := chart.Scene().VConcat[1]
	params := row.HConcat[2].Params
	require.Len(t, params, 1)
	assert.Equal(t, upsetgo.ParamSetLegend, params[0].Name)
	assert.Equal(t, "legend", params[0].Bind)
	assert.Equal(t, []string{"set"}, params[0].Select.Fields)
}

func TestBuild_AnnotationPanelsInCallerOrder(t *testing.T) {
	tab, err := frame.NewBuilder().
		Bits("A", []int{1, 0, 1}).
		Bits("B", []int{0, 1, 1}).
		Floats("age", []float64{30, 25, 52}).
		Floats("score", []float64{0.4, 0.1, 0.9}).
		Build()
	require.NoError(t, err)

	chart, err := upsetgo.New(tab, "A", "B").
		Annotate(annotate.Spec{Attribute: "score", Plot: annotate.PlotStrip}).
		Annotate(annotate.Spec{Attribute: "age", Plot: annotate.PlotViolin}).
		Build()
	require.NoError(t, err)

	root := chart.Scene()
	require.Len(t, root.VConcat, 4) // vbar, score, age, matrix row
	assert.Equal(t, "Score", root.VConcat[1].Title.Text)
	assert.Equal(t, "circle", root.VConcat[1].Mark.Type)
	assert.Equal(t, "Age", root.VConcat[2].Title.Text)
	assert.Equal(t, "area", root.VConcat[2].Mark.Type)
}

func TestBuild_ColorRangeCycles(t *testing.T) {
	tab := frame.NewBuilder().
		Bits("s1", []int{1}).Bits("s2", []int{1}).Bits("s3", []int{0}).
		Bits("s4", []int{1}).Bits("s5", []int{0}).Bits("s6", []int{1}).
		Bits("s7", []int{0}).Bits("s8", []int{1}).
		MustBuild()

	chart, err := upsetgo.New(tab, "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8").Build()
	require.NoError(t, err)

	hbar := chart.Scene().VConcat[1].HConcat[2]
	colors := hbar.Encoding.Color.Scale.Range
	require.Len(t, colors, 8)
	assert.Equal(t, upsetgo.DefaultColorRange[0], colors[6]) // wraps after 6 defaults
	assert.Equal(t, upsetgo.DefaultColorRange[1], colors[7])
}

func TestBuild_EmptyTable(t *testing.T) {
	tab := frame.NewBuilder().
		Bits("A", nil).
		Bits("B", nil).
		MustBuild()

	chart, err := upsetgo.New(tab, "A", "B").Build()
	require.NoError(t, err)
	assert.Empty(t, chart.Grouping().Intersections)
	assert.NotNil(t, chart.Scene())
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	tab := sampleTable(t)

	_, err := upsetgo.New(tab).Build()
	assert.ErrorIs(t, err, upsetgo.ErrConfiguration)

	_, err = upsetgo.New(tab, "A", "missing").Build()
	assert.ErrorIs(t, err, upsetgo.ErrConfiguration)
	assert.Contains(t, err.Error(), "missing")

	_, err = upsetgo.New(tab, "A", "B").Abbreviations("only-one").Build()
	assert.ErrorIs(t, err, upsetgo.ErrConfiguration)

	_, err = upsetgo.New(tab, "A", "B").HeightRatio(1.5).Build()
	assert.ErrorIs(t, err, upsetgo.ErrConfiguration)
}

func TestBuild_AxisOrient(t *testing.T) {
	tab := sampleTable(t)

	chart, err := upsetgo.New(tab, "A", "B").
		VerticalBarAxisOrient(upsetgo.OrientRight).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "right", chart.Scene().VConcat[0].Layer[0].Encoding.Y.Axis.Orient)

	_, err = upsetgo.New(tab, "A", "B").VerticalBarAxisOrient("top").Build()
	require.ErrorIs(t, err, upsetgo.ErrValue)
	assert.Contains(t, err.Error(), `"left"`)
	assert.Contains(t, err.Error(), `"right"`)
}

func TestBuild_HighlightErrors(t *testing.T) {
	tab := sampleTable(t)

	_, err := upsetgo.New(tab, "A", "B").Highlight(-1).Build()
	assert.ErrorIs(t, err, upsetgo.ErrRange)

	_, err = upsetgo.New(tab, "A", "B").Highlight([]int{0, -1, 2}).Build()
	assert.ErrorIs(t, err, upsetgo.ErrValidation)

	_, err = upsetgo.New(tab, "A", "B").Highlight("invalid").Build()
	assert.ErrorIs(t, err, upsetgo.ErrValue)

	_, err = upsetgo.New(tab, "A", "B").Highlight(1.5).Build()
	assert.ErrorIs(t, err, upsetgo.ErrType)
}

func TestBuild_AnnotationErrors(t *testing.T) {
	tab := sampleTable(t)

	_, err := upsetgo.New(tab, "A", "B").
		Annotate(annotate.Spec{Attribute: "missing_col", Plot: annotate.PlotBoxplot}).
		Build()
	require.ErrorIs(t, err, upsetgo.ErrValidation)
	assert.Contains(t, err.Error(), "missing_col")

	_, err = upsetgo.New(tab, "A", "B").
		Annotate(annotate.Spec{Attribute: "age", Plot: annotate.PlotType(42)}).
		Build()
	assert.ErrorIs(t, err, upsetgo.ErrValue)
}

func TestBuild_ImmutableBuilder(t *testing.T) {
	tab := sampleTable(t)
	base := upsetgo.New(tab, "A", "B")

	asc := base.Ascending()
	desc := base.Descending()

	chartAsc, err := asc.Build()
	require.NoError(t, err)
	chartDesc, err := desc.Build()
	require.NoError(t, err)

	assert.Equal(t, "ascending", chartAsc.Sort().Order)
	assert.Equal(t, "descending", chartDesc.Sort().Order)
}

func TestBuild_Metrics(t *testing.T) {
	mc := &upsetgo.BasicMetricsCollector{}

	_, err := upsetgo.New(sampleTable(t), "A", "B", "C").Metrics(mc).Build()
	require.NoError(t, err)

	_, err = upsetgo.New(sampleTable(t), "A", "missing").Metrics(mc).Build()
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustBuild to panic on invalid config")
		}
	}()

	_ = upsetgo.New(sampleTable(t)).MustBuild() // no sets configured
}
