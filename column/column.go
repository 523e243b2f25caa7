package column

import (
	"fmt"

	"github.com/arloliu/colmem/array"
	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
)

// Column is an Array tagged with the Field describing it. The null count is
// computed once at construction and cached.
type Column struct {
	field     Field
	array     Array
	nullCount int
}

// NewColumn pairs field with arr. It returns errs.ErrTypeError if the field
// type cannot describe the payload kind, and errs.ErrNullableMismatch if a
// non-nullable field is given an array holding nulls.
//
// Parameters:
//   - field: Schema of the column
//   - arr: Payload; the column takes over this reference
//
// Returns:
//   - *Column: Column with its null count cached
//   - error: errs.ErrTypeError or errs.ErrNullableMismatch
func NewColumn(field Field, arr Array) (*Column, error) {
	if err := checkField(field, arr); err != nil {
		return nil, err
	}

	return &Column{field: field, array: arr, nullCount: arr.NullCount()}, nil
}

// NewColumnFromArray infers the field from arr and builds a column.
func NewColumnFromArray(name string, arr Array, opts ...FieldOption) (*Column, error) {
	field, err := FieldFromArray(name, arr, opts...)
	if err != nil {
		return nil, err
	}

	return NewColumn(field, arr)
}

func checkField(field Field, arr Array) error {
	if !arr.kind.Accepts(field.Type) {
		return errs.TypeError(arr.kind.String(), field.Type.String(), "field type does not describe array")
	}
	if unit, ok := arrayUnit(arr); ok && field.Unit != 0 && field.Unit != unit {
		return errs.TypeError(unit.String(), field.Unit.String(), "field unit does not match array")
	}

	nulls := arr.NullCount()
	if !field.Nullable && nulls > 0 {
		return fmt.Errorf("%w: field %q has %d nulls", errs.ErrNullableMismatch, field.Name, nulls)
	}

	return nil
}

func arrayUnit(arr Array) (format.TimeUnit, bool) {
	if d, ok := InnerCheck[*array.DatetimeArray[int32]](arr); ok {
		return d.Unit(), true
	}
	if d, ok := InnerCheck[*array.DatetimeArray[int64]](arr); ok {
		return d.Unit(), true
	}

	return 0, false
}

// Field returns the field.
func (c *Column) Field() Field {
	return c.field
}

// Name returns the field name.
func (c *Column) Name() string {
	return c.field.Name
}

// Array returns the array. The result is a borrow: it shares the payload
// without a counted reference, so a later Concat on c extends it in place and
// the borrowed value sees the new rows. Call Clone on the result to keep a
// snapshot that later writes copy away from.
func (c *Column) Array() Array {
	return c.array
}

// Len returns the number of rows.
func (c *Column) Len() int {
	return c.array.Len()
}

// NullCount returns the cached null count.
func (c *Column) NullCount() int {
	return c.nullCount
}

// RefreshNullCount recomputes the cached null count, for use after the
// payload was mutated through InnerMut, and returns it.
func (c *Column) RefreshNullCount() int {
	c.nullCount = c.array.NullCount()
	return c.nullCount
}

// Rename returns a column sharing the payload under a new name.
func (c *Column) Rename(name string) *Column {
	f := c.field
	f.Name = name

	return &Column{field: f, array: c.array.Clone(), nullCount: c.nullCount}
}

// Clone returns a column sharing the payload by reference.
func (c *Column) Clone() *Column {
	return &Column{field: c.field, array: c.array.Clone(), nullCount: c.nullCount}
}

// Release drops the column's reference to its payload.
func (c *Column) Release() {
	c.array.Release()
	c.nullCount = 0
}

// SliceClone copies rows [off, off+n) into a new column with the same field.
// It panics if the window is out of range.
func (c *Column) SliceClone(off, n int) *Column {
	arr := c.array.SliceClone(off, n)
	return &Column{field: c.field, array: arr, nullCount: arr.NullCount()}
}

// Window returns a non-owning view of rows [off, off+n).
func (c *Column) Window(off, n int) Window {
	return c.array.Window(off, n)
}

// Concat appends the rows of other. Both fields must have the same type and
// unit, and a non-nullable column cannot take nulls.
func (c *Column) Concat(other *Column) error {
	if c.field.Type != other.field.Type || c.field.Unit != other.field.Unit || c.array.kind != other.array.kind {
		return errs.Incompatible(c.field.String(), other.field.String(), "cannot concatenate columns")
	}
	if !c.field.Nullable && other.nullCount > 0 {
		return fmt.Errorf("%w: field %q cannot take %d nulls", errs.ErrNullableMismatch, c.field.Name, other.nullCount)
	}

	c.array.ConcatArray(other.array)
	c.nullCount += other.nullCount

	return nil
}

func (c *Column) String() string {
	return fmt.Sprintf("%s %s", c.field, c.array)
}
