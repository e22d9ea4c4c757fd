// Package annotate prepares per-attribute annotation data for intersection
// panels.
//
// Annotation records keep raw per-row values keyed by intersection id;
// summarization (medians, densities, counts) is left to the rendering layer.
package annotate

import (
	"fmt"
	"strings"

	"github.com/hupe1980/upsetgo/frame"
	"github.com/hupe1980/upsetgo/intersect"
)

// PlotType is the closed set of supported annotation panel shapes.
type PlotType int

const (
	// PlotBoxplot renders a box-and-whisker summary per intersection.
	PlotBoxplot PlotType = iota
	// PlotViolin renders a per-intersection density area.
	PlotViolin
	// PlotStrip renders jittered raw points.
	PlotStrip
	// PlotBar renders categorical counts per intersection.
	PlotBar
)

var plotNames = []string{"boxplot", "violin", "strip", "bar"}

// String returns the plot type token.
func (p PlotType) String() string {
	if p < PlotBoxplot || p > PlotBar {
		return fmt.Sprintf("plottype(%d)", int(p))
	}
	return plotNames[p]
}

// Valid reports whether p is one of the supported plot types.
func (p PlotType) Valid() bool {
	return p >= PlotBoxplot && p <= PlotBar
}

// ErrUnsupportedPlotType indicates a plot type outside the supported set.
type ErrUnsupportedPlotType struct {
	Token string
}

func (e *ErrUnsupportedPlotType) Error() string {
	return fmt.Sprintf("unsupported annotation plot type %q, supported types: %s",
		e.Token, strings.Join(plotNames, ", "))
}

// ParsePlotType parses a plot type token.
func ParsePlotType(s string) (PlotType, error) {
	for i, name := range plotNames {
		if s == name {
			return PlotType(i), nil
		}
	}
	return 0, &ErrUnsupportedPlotType{Token: s}
}

// Spec configures one annotation panel. Unknown rendering knobs go into
// Extra, which is forwarded opaquely into the scene.
type Spec struct {
	// Attribute is the table column to visualize.
	Attribute string
	// Plot selects the panel shape.
	Plot PlotType
	// Height is the panel height in pixels. Defaults to 100.
	Height int
	// Title labels the panel. Defaults to the attribute name with
	// underscores replaced by spaces and words title-cased.
	Title string
	// ColorBy optionally names an attribute for color encoding.
	ColorBy string
	// Extra carries renderer-specific options, passed through untouched.
	Extra map[string]any
}

// ErrEmptyAttribute indicates a spec without an attribute name.
type ErrEmptyAttribute struct{}

func (e *ErrEmptyAttribute) Error() string {
	return "annotation spec requires an attribute name"
}

// Validate checks the spec shape. It does not touch the data; attribute
// existence and sufficiency are checked by BuildRecords.
func (s Spec) Validate() error {
	if s.Attribute == "" {
		return &ErrEmptyAttribute{}
	}
	if !s.Plot.Valid() {
		return &ErrUnsupportedPlotType{Token: s.Plot.String()}
	}
	return nil
}

// Normalize fills defaulted fields and returns the updated spec.
func (s Spec) Normalize() Spec {
	if s.Height <= 0 {
		s.Height = 100
	}
	if s.Title == "" {
		s.Title = titleize(s.Attribute)
	}
	return s
}

func titleize(attr string) string {
	words := strings.Split(strings.ReplaceAll(attr, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ErrMissingAttributes indicates requested attributes absent from the table.
type ErrMissingAttributes struct {
	Names []string
}

func (e *ErrMissingAttributes) Error() string {
	return fmt.Sprintf("annotation attributes not found in table: %s", strings.Join(e.Names, ", "))
}

// ErrInsufficientValues indicates an attribute with too few non-missing
// values for a distributional display.
type ErrInsufficientValues struct {
	Attribute string
	Count     int
}

func (e *ErrInsufficientValues) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("annotation attribute %q has no non-missing values", e.Attribute)
	}
	return fmt.Sprintf("annotation attribute %q has %d non-missing values, need at least 2", e.Attribute, e.Count)
}

// Record is one (row, attribute) observation attached to its intersection.
type Record struct {
	// IntersectionID references the intersection the source row belongs to.
	IntersectionID int
	// RowID is the source row index in the input table.
	RowID int
	// Value is the raw attribute value.
	Value any
	// Membership mirrors the intersection's membership flags.
	Membership []bool
}

// BuildRecords extracts one record set per requested attribute, using the
// shared grouping for intersection ids. Rows missing a value for an
// attribute are dropped from that attribute's record set only.
func BuildRecords(g *intersect.Grouping, t *frame.Table, attrs []string) (map[string][]Record, error) {
	var missing []string
	for _, attr := range attrs {
		if !t.HasColumn(attr) {
			missing = append(missing, attr)
		}
	}
	if len(missing) > 0 {
		return nil, &ErrMissingAttributes{Names: missing}
	}

	rowIDs := g.RowIntersections()
	membership := make([][]bool, len(g.Intersections))
	for _, in := range g.Intersections {
		membership[in.ID] = in.Membership
	}

	out := make(map[string][]Record, len(attrs))
	for _, attr := range attrs {
		col, err := t.Column(attr)
		if err != nil {
			return nil, err
		}

		var records []Record
		for row := 0; row < t.NumRows(); row++ {
			v, ok := col.Value(row)
			if !ok {
				continue
			}
			id := rowIDs[row]
			records = append(records, Record{
				IntersectionID: id,
				RowID:          row,
				Value:          v,
				Membership:     membership[id],
			})
		}
		if len(records) < 2 {
			return nil, &ErrInsufficientValues{Attribute: attr, Count: len(records)}
		}
		out[attr] = records
	}
	return out, nil
}
