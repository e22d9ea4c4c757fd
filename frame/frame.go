// Package frame provides the column-oriented input table consumed by the
// chart builder.
//
// A Table is an immutable collection of equal-length named columns. Set
// membership columns are backed by roaring bitmaps; float columns use NaN as
// the missing marker and string columns treat the empty string as missing.
// Tables are safe for concurrent read-only sharing.
package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// Kind identifies the storage type of a column.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrEmptyName is returned when a column is added without a name.
	ErrEmptyName = errors.New("column name must not be empty")
)

// ErrColumnNotFound indicates a lookup for a column the table does not have.
type ErrColumnNotFound struct {
	Name string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// ErrDuplicateColumn indicates two columns were added under the same name.
type ErrDuplicateColumn struct {
	Name string
}

func (e *ErrDuplicateColumn) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Name)
}

// ErrLengthMismatch indicates a column whose length differs from the table's.
type ErrLengthMismatch struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("column %q has %d rows, expected %d", e.Name, e.Actual, e.Expected)
}

// ErrNotBoolean indicates a column that cannot be coerced to 0/1 membership.
type ErrNotBoolean struct {
	Name string
	Kind Kind
}

func (e *ErrNotBoolean) Error() string {
	return fmt.Sprintf("column %q (%s) is not coercible to boolean membership", e.Name, e.Kind)
}

// Column is a single named column of a Table.
type Column interface {
	// Name returns the column name.
	Name() string
	// Kind returns the storage type.
	Kind() Kind
	// Len returns the number of rows.
	Len() int
	// Missing reports whether the value at row is missing.
	Missing(row int) bool
	// Value returns the value at row and whether it is present.
	Value(row int) (any, bool)
}

type boolColumn struct {
	name string
	n    int
	set  *roaring.Bitmap
}

func (c *boolColumn) Name() string { return c.name }
func (c *boolColumn) Kind() Kind   { return KindBool }
func (c *boolColumn) Len() int     { return c.n }

func (c *boolColumn) Missing(int) bool { return false }

func (c *boolColumn) Value(row int) (any, bool) {
	return c.set.Contains(uint32(row)), true
}

type intColumn struct {
	name string
	vals []int64
}

func (c *intColumn) Name() string { return c.name }
func (c *intColumn) Kind() Kind   { return KindInt }
func (c *intColumn) Len() int     { return len(c.vals) }

func (c *intColumn) Missing(int) bool { return false }

func (c *intColumn) Value(row int) (any, bool) { return c.vals[row], true }

type floatColumn struct {
	name string
	vals []float64
}

func (c *floatColumn) Name() string { return c.name }
func (c *floatColumn) Kind() Kind   { return KindFloat }
func (c *floatColumn) Len() int     { return len(c.vals) }

func (c *floatColumn) Missing(row int) bool { return math.IsNaN(c.vals[row]) }

func (c *floatColumn) Value(row int) (any, bool) {
	v := c.vals[row]
	if math.IsNaN(v) {
		return nil, false
	}
	return v, true
}

type stringColumn struct {
	name string
	vals []string
}

func (c *stringColumn) Name() string { return c.name }
func (c *stringColumn) Kind() Kind   { return KindString }
func (c *stringColumn) Len() int     { return len(c.vals) }

func (c *stringColumn) Missing(row int) bool { return c.vals[row] == "" }

func (c *stringColumn) Value(row int) (any, bool) {
	v := c.vals[row]
	if v == "" {
		return nil, false
	}
	return v, true
}

// Table is an immutable set of equal-length named columns.
type Table struct {
	cols   []Column
	byName map[string]int
	nrows  int
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nrows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name()
	}
	return names
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, &ErrColumnNotFound{Name: name}
	}
	return t.cols[i], nil
}

// Membership coerces the named column to a membership bitmap: the set of row
// ids whose value is truthy (true, or a nonzero number). The returned bitmap
// is a copy and may be mutated by the caller.
func (t *Table) Membership(name string) (*roaring.Bitmap, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	switch c := col.(type) {
	case *boolColumn:
		return c.set.Clone(), nil
	case *intColumn:
		rb := roaring.New()
		for row, v := range c.vals {
			if v != 0 {
				rb.Add(uint32(row))
			}
		}
		return rb, nil
	case *floatColumn:
		rb := roaring.New()
		for row, v := range c.vals {
			if v != 0 && !math.IsNaN(v) {
				rb.Add(uint32(row))
			}
		}
		return rb, nil
	default:
		return nil, &ErrNotBoolean{Name: col.Name(), Kind: col.Kind()}
	}
}

// Builder assembles a Table column by column. The zero value is not usable;
// use NewBuilder.
type Builder struct {
	cols   []Column
	byName map[string]int
	nrows  int
	err    error
}

// NewBuilder returns an empty table builder.
func NewBuilder() *Builder {
	return &Builder{byName: make(map[string]int)}
}

func (b *Builder) add(c Column) *Builder {
	if b.err != nil {
		return b
	}
	if c.Name() == "" {
		b.err = ErrEmptyName
		return b
	}
	if _, ok := b.byName[c.Name()]; ok {
		b.err = &ErrDuplicateColumn{Name: c.Name()}
		return b
	}
	if len(b.cols) > 0 && c.Len() != b.nrows {
		b.err = &ErrLengthMismatch{Name: c.Name(), Expected: b.nrows, Actual: c.Len()}
		return b
	}
	b.nrows = c.Len()
	b.byName[c.Name()] = len(b.cols)
	b.cols = append(b.cols, c)
	return b
}

// Bools adds a boolean column.
func (b *Builder) Bools(name string, vals []bool) *Builder {
	set := roaring.New()
	for row, v := range vals {
		if v {
			set.Add(uint32(row))
		}
	}
	return b.add(&boolColumn{name: name, n: len(vals), set: set})
}

// Bits adds a boolean column from 0/1 integers. Any nonzero value is true.
func (b *Builder) Bits(name string, vals []int) *Builder {
	set := roaring.New()
	for row, v := range vals {
		if v != 0 {
			set.Add(uint32(row))
		}
	}
	return b.add(&boolColumn{name: name, n: len(vals), set: set})
}

// Ints adds an integer column.
func (b *Builder) Ints(name string, vals []int64) *Builder {
	return b.add(&intColumn{name: name, vals: append([]int64(nil), vals...)})
}

// Floats adds a float column. NaN marks a missing value.
func (b *Builder) Floats(name string, vals []float64) *Builder {
	return b.add(&floatColumn{name: name, vals: append([]float64(nil), vals...)})
}

// Strings adds a string column. The empty string marks a missing value.
func (b *Builder) Strings(name string, vals []string) *Builder {
	return b.add(&stringColumn{name: name, vals: append([]string(nil), vals...)})
}

// Build finalizes the table. It returns the first error recorded while
// adding columns.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Table{cols: b.cols, byName: b.byName, nrows: b.nrows}, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// examples with literal data.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(fmt.Errorf("frame build failed: %w", err))
	}
	return t
}
