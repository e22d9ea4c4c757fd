package annotate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/upsetgo/frame"
	"github.com/hupe1980/upsetgo/intersect"
)

func sampleGrouping(t *testing.T) (*intersect.Grouping, *frame.Table) {
	t.Helper()
	tab, err := frame.NewBuilder().
		Bits("A", []int{1, 1, 0, 1}).
		Bits("B", []int{0, 1, 1, 0}).
		Floats("age", []float64{30, math.NaN(), 52, 41}).
		Floats("score", []float64{0.1, 0.9, 0.5, 0.7}).
		Strings("variant", []string{"x", "y", "", "x"}).
		Build()
	require.NoError(t, err)

	g, err := intersect.GroupRows(tab, []string{"A", "B"}, nil, intersect.SortByFrequency, intersect.Descending)
	require.NoError(t, err)
	return g, tab
}

func TestParsePlotType(t *testing.T) {
	tests := []struct {
		token string
		want  PlotType
	}{
		{"boxplot", PlotBoxplot},
		{"violin", PlotViolin},
		{"strip", PlotStrip},
		{"bar", PlotBar},
	}
	for _, tc := range tests {
		p, err := ParsePlotType(tc.token)
		require.NoError(t, err)
		assert.Equal(t, tc.want, p)
		assert.Equal(t, tc.token, p.String())
	}
}

func TestParsePlotType_Unsupported(t *testing.T) {
	_, err := ParsePlotType("scatter")
	var badPlot *ErrUnsupportedPlotType
	require.ErrorAs(t, err, &badPlot)
	assert.Contains(t, err.Error(), "boxplot, violin, strip, bar")
}

func TestSpecValidate(t *testing.T) {
	assert.NoError(t, Spec{Attribute: "age", Plot: PlotBoxplot}.Validate())

	err := Spec{Plot: PlotBoxplot}.Validate()
	var emptyAttr *ErrEmptyAttribute
	assert.ErrorAs(t, err, &emptyAttr)

	err = Spec{Attribute: "age", Plot: PlotType(9)}.Validate()
	var badPlot *ErrUnsupportedPlotType
	assert.ErrorAs(t, err, &badPlot)
}

func TestSpecNormalize(t *testing.T) {
	s := Spec{Attribute: "symptom_severity", Plot: PlotStrip}.Normalize()
	assert.Equal(t, 100, s.Height)
	assert.Equal(t, "Symptom Severity", s.Title)

	s = Spec{Attribute: "age", Plot: PlotBar, Height: 60, Title: "Age"}.Normalize()
	assert.Equal(t, 60, s.Height)
	assert.Equal(t, "Age", s.Title)
}

func TestBuildRecords(t *testing.T) {
	g, tab := sampleGrouping(t)

	records, err := BuildRecords(g, tab, []string{"age", "score"})
	require.NoError(t, err)

	// Row 1 has a missing age, so age keeps 3 records while score keeps 4.
	assert.Len(t, records["age"], 3)
	assert.Len(t, records["score"], 4)

	ids := g.RowIntersections()
	for _, r := range records["score"] {
		assert.Equal(t, ids[r.RowID], r.IntersectionID)
		assert.Less(t, r.IntersectionID, len(g.Intersections))
	}
}

func TestBuildRecords_MembershipMirrorsIntersection(t *testing.T) {
	g, tab := sampleGrouping(t)

	records, err := BuildRecords(g, tab, []string{"score"})
	require.NoError(t, err)

	for _, r := range records["score"] {
		assert.Equal(t, g.Intersections[r.IntersectionID].Membership, r.Membership)
	}
}

func TestBuildRecords_MissingAttributes(t *testing.T) {
	g, tab := sampleGrouping(t)

	_, err := BuildRecords(g, tab, []string{"age", "missing_col", "also_missing"})
	var missing *ErrMissingAttributes
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"missing_col", "also_missing"}, missing.Names)
	assert.Contains(t, err.Error(), "missing_col")
}

func TestBuildRecords_InsufficientValues(t *testing.T) {
	tab, err := frame.NewBuilder().
		Bits("A", []int{1, 0, 1}).
		Floats("sparse", []float64{math.NaN(), 1.5, math.NaN()}).
		Floats("empty", []float64{math.NaN(), math.NaN(), math.NaN()}).
		Build()
	require.NoError(t, err)

	g, err := intersect.GroupRows(tab, []string{"A"}, nil, intersect.SortByFrequency, intersect.Ascending)
	require.NoError(t, err)

	_, err = BuildRecords(g, tab, []string{"sparse"})
	var insufficient *ErrInsufficientValues
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "sparse", insufficient.Attribute)
	assert.Equal(t, 1, insufficient.Count)

	_, err = BuildRecords(g, tab, []string{"empty"})
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Count)
	assert.Contains(t, err.Error(), "no non-missing values")
}

func TestBuildRecords_StringMissing(t *testing.T) {
	g, tab := sampleGrouping(t)

	records, err := BuildRecords(g, tab, []string{"variant"})
	require.NoError(t, err)
	assert.Len(t, records["variant"], 3) // empty string in row 2 is missing
}
