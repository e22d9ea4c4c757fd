// Package upsetgo builds interactive UpSet plots from boolean set-membership
// tables.
//
// UpSet plots visualize set intersections in a more scalable way than Venn
// diagrams. The library aggregates a membership table into distinct
// intersections (with counts and degrees), composes the matrix, bar and
// annotation panels around one shared intersection ordering, and emits a
// declarative Vega-Lite flavored scene description. Rendering itself is the
// job of an external engine consuming that scene.
//
// # Quick Start
//
//	t := frame.NewBuilder().
//	    Bits("A", []int{1, 1, 0, 1}).
//	    Bits("B", []int{0, 1, 1, 0}).
//	    Bits("C", []int{0, 0, 1, 0}).
//	    MustBuild()
//
//	chart, err := upsetgo.New(t, "A", "B", "C").
//	    SortByFrequency().
//	    Descending().
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = chart.Save("upset.vl.json")
//
// # Highlighting
//
// By default, hovering a mark in any panel highlights the matching
// intersection in every panel. A highlight directive replaces hover with a
// static pre-selection:
//
//	upsetgo.New(t, "A", "B", "C").HighlightGreatest()
//	upsetgo.New(t, "A", "B", "C").HighlightIndices(0, 2)
//
// # Annotations
//
// Extra attribute columns can be shown as panels aligned to the
// intersection columns:
//
//	upsetgo.New(t, "A", "B", "C").
//	    Annotate(annotate.Spec{Attribute: "age", Plot: annotate.PlotBoxplot})
//
// # Errors
//
// All configuration and data problems surface at Build time; nothing is
// deferred to rendering. Errors carry a class sentinel (ErrConfiguration,
// ErrValidation, ErrRange, ErrValue, ErrType) reachable via errors.Is, with
// the detailed typed error available through errors.As.
//
// # Concurrency
//
// Builds are pure transformations over the input table. Distinct builds may
// run concurrently as long as the table is shared read-only.
package upsetgo
