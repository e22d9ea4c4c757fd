// Package highlight resolves a highlight directive into a concrete set of
// intersection ids.
//
// A directive is one of: nil (hover-driven highlighting), the string "least"
// or "greatest", a non-negative intersection index, or a list of
// non-negative indices. Resolution happens once per chart build against the
// shared grouping.
package highlight

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/upsetgo/intersect"
)

// Mode describes how a selection was derived.
type Mode int

const (
	// ModeNone means no static selection; panels highlight on hover.
	ModeNone Mode = iota
	// ModeLeast selects the intersection(s) with the minimum count.
	ModeLeast
	// ModeGreatest selects the intersection(s) with the maximum count.
	ModeGreatest
	// ModeIndex selects a single intersection by id.
	ModeIndex
	// ModeIndexList selects an explicit list of intersection ids.
	ModeIndexList
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeLeast:
		return "least"
	case ModeGreatest:
		return "greatest"
	case ModeIndex:
		return "index"
	case ModeIndexList:
		return "index_list"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Selection is the resolved highlight state for one chart build. It is
// derived data, recomputed per build and never persisted.
type Selection struct {
	// Mode records how the ids were derived.
	Mode Mode
	// IDs is the resolved id set. Nil when Mode is ModeNone.
	IDs *roaring.Bitmap
}

// Static reports whether the selection statically pre-selects ids instead
// of relying on hover.
func (s Selection) Static() bool { return s.Mode != ModeNone }

// SortedIDs returns the resolved ids in ascending order, or nil for a
// hover-driven selection.
func (s Selection) SortedIDs() []int {
	if s.IDs == nil {
		return nil
	}
	ids := make([]int, 0, s.IDs.GetCardinality())
	it := s.IDs.Iterator()
	for it.HasNext() {
		ids = append(ids, int(it.Next()))
	}
	return ids
}

// ErrBadToken indicates a highlight string other than "least" or "greatest".
type ErrBadToken struct {
	Token string
}

func (e *ErrBadToken) Error() string {
	return fmt.Sprintf("highlight string must be %q or %q, got %q", "least", "greatest", e.Token)
}

// ErrNegativeIndex indicates a negative highlight index.
type ErrNegativeIndex struct {
	Index int
}

func (e *ErrNegativeIndex) Error() string {
	return fmt.Sprintf("highlight index must be non-negative, got %d", e.Index)
}

// ErrNegativeInList indicates a highlight list containing a negative index.
type ErrNegativeInList struct {
	Index int
}

func (e *ErrNegativeInList) Error() string {
	return fmt.Sprintf("highlight list must contain non-negative integers, got %d", e.Index)
}

// ErrUnsupportedType indicates a directive of a type the resolver does not
// accept.
type ErrUnsupportedType struct {
	Value any
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("highlight must be nil, string, int, or []int, got %T", e.Value)
}

// Resolve turns a directive into a Selection against the sorted grouping.
//
// Out-of-range positive indices are passed through unvalidated; the renderer
// simply selects nothing for an id that does not exist.
func Resolve(directive any, g *intersect.Grouping) (Selection, error) {
	switch v := directive.(type) {
	case nil:
		return Selection{Mode: ModeNone}, nil
	case string:
		switch v {
		case "least":
			return Selection{Mode: ModeLeast, IDs: toBitmap(g.MinCountIDs())}, nil
		case "greatest":
			return Selection{Mode: ModeGreatest, IDs: toBitmap(g.MaxCountIDs())}, nil
		default:
			return Selection{}, &ErrBadToken{Token: v}
		}
	case int:
		return resolveIndex(v)
	case int32:
		return resolveIndex(int(v))
	case int64:
		return resolveIndex(int(v))
	case uint:
		return resolveIndex(int(v))
	case uint32:
		return resolveIndex(int(v))
	case []int:
		ids := roaring.New()
		for _, i := range v {
			if i < 0 {
				return Selection{}, &ErrNegativeInList{Index: i}
			}
			ids.Add(uint32(i))
		}
		return Selection{Mode: ModeIndexList, IDs: ids}, nil
	default:
		return Selection{}, &ErrUnsupportedType{Value: directive}
	}
}

func resolveIndex(i int) (Selection, error) {
	if i < 0 {
		return Selection{}, &ErrNegativeIndex{Index: i}
	}
	return Selection{Mode: ModeIndex, IDs: roaring.BitmapOf(uint32(i))}, nil
}

func toBitmap(ids []int) *roaring.Bitmap {
	rb := roaring.New()
	for _, id := range ids {
		rb.Add(uint32(id))
	}
	return rb
}
