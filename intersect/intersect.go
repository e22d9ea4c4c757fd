// Package intersect groups set-membership rows into distinct intersections.
//
// A Grouping is computed once per chart build and shared by every consumer
// that needs intersection ids (the long-form table, annotation records and
// highlight resolution), so ids can never diverge between panels.
package intersect

import (
	"errors"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/upsetgo/frame"
)

// SortBy selects the intersection sort key.
type SortBy int

const (
	// SortByFrequency orders intersections by their row count.
	SortByFrequency SortBy = iota
	// SortByDegree orders intersections by the number of participating sets.
	SortByDegree
)

// Field returns the long-form field name the sort key maps to.
func (s SortBy) Field() string {
	if s == SortByDegree {
		return "degree"
	}
	return "count"
}

// SortOrder selects the sort direction.
type SortOrder int

const (
	// Ascending sorts smallest first.
	Ascending SortOrder = iota
	// Descending sorts largest first.
	Descending
)

// String returns the order token used in scene sort specifications.
func (o SortOrder) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

var (
	// ErrEmptySets is returned when no set names are configured.
	ErrEmptySets = errors.New("at least one set name is required")
)

// ErrUnknownSet indicates a configured set name with no matching column.
type ErrUnknownSet struct {
	Name string
}

func (e *ErrUnknownSet) Error() string {
	return fmt.Sprintf("set %q not found in table columns", e.Name)
}

// ErrAbbrevLength indicates an abbreviation list whose length differs from
// the set list.
type ErrAbbrevLength struct {
	Sets    int
	Abbrevs int
}

func (e *ErrAbbrevLength) Error() string {
	return fmt.Sprintf("abbreviation list has %d entries for %d sets", e.Abbrevs, e.Sets)
}

// SetMeta describes one configured set.
type SetMeta struct {
	// Name is the column name of the set.
	Name string
	// Abbrev is the display abbreviation. Defaults to Name.
	Abbrev string
	// Order is the 1-based vertical position of the set.
	Order int
}

// ResolveSets maps set names and optional abbreviations to metadata. If
// abbrevs is nil, each abbreviation defaults to the set name.
func ResolveSets(sets, abbrevs []string) ([]SetMeta, error) {
	if len(sets) == 0 {
		return nil, ErrEmptySets
	}
	if abbrevs != nil && len(abbrevs) != len(sets) {
		return nil, &ErrAbbrevLength{Sets: len(sets), Abbrevs: len(abbrevs)}
	}

	metas := make([]SetMeta, len(sets))
	for i, name := range sets {
		abbrev := name
		if abbrevs != nil {
			abbrev = abbrevs[i]
		}
		metas[i] = SetMeta{Name: name, Abbrev: abbrev, Order: i + 1}
	}
	return metas, nil
}

// Intersection is one distinct observed combination of set memberships.
type Intersection struct {
	// ID is the dense id assigned in sorted order.
	ID int
	// Membership has one flag per configured set, positionally.
	Membership []bool
	// Rows is the set of input row ids in this group.
	Rows *roaring.Bitmap
	// Count is the number of rows in the group.
	Count int
	// Degree is the number of true membership flags.
	Degree int
}

// Grouping is the shared aggregation result for one chart build. It is
// immutable once returned by GroupRows.
type Grouping struct {
	// Sets holds the resolved set metadata in configured order.
	Sets []SetMeta
	// Intersections are sorted per the requested key and direction;
	// Intersections[i].ID == i.
	Intersections []Intersection
	// NumRows is the input table row count.
	NumRows int
	// By and Order record the sort settings the ids were assigned under.
	By    SortBy
	Order SortOrder
}

// GroupRows aggregates the table's rows by their membership tuple across the
// named set columns, sorts the distinct tuples by the requested key and
// assigns dense ids 0..k-1 in sorted order. Equal keys keep the relative
// order in which their tuples were first seen.
//
// An empty table produces a grouping with resolved set metadata and no
// intersections.
func GroupRows(t *frame.Table, sets, abbrevs []string, by SortBy, order SortOrder) (*Grouping, error) {
	metas, err := ResolveSets(sets, abbrevs)
	if err != nil {
		return nil, err
	}

	members := make([]*roaring.Bitmap, len(sets))
	for i, name := range sets {
		rb, err := t.Membership(name)
		if err != nil {
			var notFound *frame.ErrColumnNotFound
			if errors.As(err, &notFound) {
				return nil, &ErrUnknownSet{Name: name}
			}
			return nil, err
		}
		members[i] = rb
	}

	g := &Grouping{
		Sets:    metas,
		NumRows: t.NumRows(),
		By:      by,
		Order:   order,
	}

	// Provisional ids follow first-seen row order.
	index := make(map[string]int)
	key := make([]byte, len(sets))
	for row := 0; row < t.NumRows(); row++ {
		degree := 0
		for i, rb := range members {
			if rb.Contains(uint32(row)) {
				key[i] = '1'
				degree++
			} else {
				key[i] = '0'
			}
		}
		gi, ok := index[string(key)]
		if !ok {
			gi = len(g.Intersections)
			index[string(key)] = gi
			membership := make([]bool, len(sets))
			for i := range sets {
				membership[i] = key[i] == '1'
			}
			g.Intersections = append(g.Intersections, Intersection{
				Membership: membership,
				Rows:       roaring.New(),
				Degree:     degree,
			})
		}
		g.Intersections[gi].Rows.Add(uint32(row))
	}

	for i := range g.Intersections {
		g.Intersections[i].Count = int(g.Intersections[i].Rows.GetCardinality())
	}

	sort.SliceStable(g.Intersections, func(i, j int) bool {
		a, b := sortKey(&g.Intersections[i], by), sortKey(&g.Intersections[j], by)
		if order == Descending {
			return a > b
		}
		return a < b
	})
	for i := range g.Intersections {
		g.Intersections[i].ID = i
	}

	return g, nil
}

func sortKey(in *Intersection, by SortBy) int {
	if by == SortByDegree {
		return in.Degree
	}
	return in.Count
}

// RowIntersections returns, for every input row, the id of the intersection
// it belongs to.
func (g *Grouping) RowIntersections() []int {
	ids := make([]int, g.NumRows)
	for _, in := range g.Intersections {
		it := in.Rows.Iterator()
		for it.HasNext() {
			ids[it.Next()] = in.ID
		}
	}
	return ids
}

// SetTotals returns the total number of rows in each set (positionally per
// configured set), a separate aggregate from the per-intersection counts.
func (g *Grouping) SetTotals() []int {
	totals := make([]int, len(g.Sets))
	for _, in := range g.Intersections {
		for i, member := range in.Membership {
			if member {
				totals[i] += in.Count
			}
		}
	}
	return totals
}

// MemberNames returns the names of the sets the intersection participates
// in, in configured set order.
func (g *Grouping) MemberNames(in Intersection) []string {
	var names []string
	for i, member := range in.Membership {
		if member {
			names = append(names, g.Sets[i].Name)
		}
	}
	return names
}

// LongRow is one row of the long-form intersection table: one entry per
// (intersection, set) pair, joined with the set metadata. This is the shape
// every panel binds to.
type LongRow struct {
	IntersectionID int    `json:"intersection_id"`
	Count          int    `json:"count"`
	Degree         int    `json:"degree"`
	Set            string `json:"set"`
	IsMember       int    `json:"is_member"`
	SetAbbrev      string `json:"set_abbrev"`
	SetOrder       int    `json:"set_order"`
}

// LongForm emits the long-form intersection table in sorted id order. An
// empty grouping yields an empty, structurally identical table.
func (g *Grouping) LongForm() []LongRow {
	rows := make([]LongRow, 0, len(g.Intersections)*len(g.Sets))
	for _, in := range g.Intersections {
		for i, meta := range g.Sets {
			isMember := 0
			if in.Membership[i] {
				isMember = 1
			}
			rows = append(rows, LongRow{
				IntersectionID: in.ID,
				Count:          in.Count,
				Degree:         in.Degree,
				Set:            meta.Name,
				IsMember:       isMember,
				SetAbbrev:      meta.Abbrev,
				SetOrder:       meta.Order,
			})
		}
	}
	return rows
}

// MinCountIDs returns the ids of all intersections whose count equals the
// minimum count, in id order.
func (g *Grouping) MinCountIDs() []int {
	return g.extremeCountIDs(func(candidate, best int) bool { return candidate < best })
}

// MaxCountIDs returns the ids of all intersections whose count equals the
// maximum count, in id order.
func (g *Grouping) MaxCountIDs() []int {
	return g.extremeCountIDs(func(candidate, best int) bool { return candidate > best })
}

func (g *Grouping) extremeCountIDs(better func(candidate, best int) bool) []int {
	if len(g.Intersections) == 0 {
		return nil
	}
	best := g.Intersections[0].Count
	for _, in := range g.Intersections[1:] {
		if better(in.Count, best) {
			best = in.Count
		}
	}
	var ids []int
	for _, in := range g.Intersections {
		if in.Count == best {
			ids = append(ids, in.ID)
		}
	}
	return ids
}
