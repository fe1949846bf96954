// Package object provides in-memory implementations of the types.Object and
// types.Array interfaces. They hold the loosely typed trees produced by the
// JSON and XML parsers before a tree is read against a schema.
package object

import (
	"strings"

	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

var _ types.Object = new(FieldBuffer)

// FieldBuffer stores a group of fields in memory, in insertion order.
type FieldBuffer struct {
	fields []fieldValue
}

type fieldValue struct {
	Field string
	Value types.Value
}

// NewFieldBuffer creates a FieldBuffer.
func NewFieldBuffer() *FieldBuffer {
	return new(FieldBuffer)
}

// Add a field to the buffer.
func (fb *FieldBuffer) Add(field string, v types.Value) *FieldBuffer {
	fb.fields = append(fb.fields, fieldValue{field, v})
	return fb
}

// ScanObject copies all the fields of o to the buffer.
func (fb *FieldBuffer) ScanObject(o types.Object) error {
	return o.Iterate(func(f string, v types.Value) error {
		fb.Add(strings.Clone(f), v)
		return nil
	})
}

// GetByField returns a value by field. Returns an error if the field doesn't exists.
func (fb FieldBuffer) GetByField(field string) (types.Value, error) {
	for _, fv := range fb.fields {
		if fv.Field == field {
			return fv.Value, nil
		}
	}

	return nil, errors.Wrapf(types.ErrFieldNotFound, "%s not found", field)
}

// Set replaces the value of the first field with the given name, or adds it.
func (fb *FieldBuffer) Set(field string, v types.Value) {
	for i := range fb.fields {
		if fb.fields[i].Field == field {
			fb.fields[i].Value = v
			return
		}
	}

	fb.Add(field, v)
}

// Iterate goes through all the fields of the buffer and calls the given function by passing each one of them.
// If the given function returns an error, the iteration stops.
func (fb FieldBuffer) Iterate(fn func(field string, value types.Value) error) error {
	for _, fv := range fb.fields {
		err := fn(fv.Field, fv.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

// Delete a field from the buffer.
func (fb *FieldBuffer) Delete(field string) error {
	for i := range fb.fields {
		if fb.fields[i].Field == field {
			fb.fields = append(fb.fields[0:i], fb.fields[i+1:]...)
			return nil
		}
	}

	return errors.Wrapf(types.ErrFieldNotFound, "%s not found", field)
}

// Fields returns the field names, in order.
func (fb FieldBuffer) Fields() []string {
	names := make([]string, len(fb.fields))
	for i, fv := range fb.fields {
		names[i] = fv.Field
	}
	return names
}

// Len of the buffer.
func (fb FieldBuffer) Len() int {
	return len(fb.fields)
}

// Reset the buffer.
func (fb *FieldBuffer) Reset() {
	fb.fields = fb.fields[:0]
}

func (fb *FieldBuffer) MarshalJSON() ([]byte, error) {
	return types.MarshalObjectJSON(fb)
}

var _ types.Array = new(ValueBuffer)

// ValueBuffer is an array that holds values in memory.
type ValueBuffer struct {
	Values []types.Value
}

// NewValueBuffer creates a buffer of values.
func NewValueBuffer(values ...types.Value) *ValueBuffer {
	return &ValueBuffer{Values: values}
}

// Iterate over all the values of the buffer. It implements the Array interface.
func (vb *ValueBuffer) Iterate(fn func(i int, value types.Value) error) error {
	for i, v := range vb.Values {
		err := fn(i, v)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByIndex returns a value set at the given index. If the index is out of range it returns an error.
func (vb *ValueBuffer) GetByIndex(i int) (types.Value, error) {
	if i < 0 || i >= len(vb.Values) {
		return nil, types.ErrValueNotFound
	}

	return vb.Values[i], nil
}

// Len returns the length the of array
func (vb *ValueBuffer) Len() int {
	return len(vb.Values)
}

// Append a value to the buffer and return a new buffer.
func (vb *ValueBuffer) Append(v types.Value) *ValueBuffer {
	vb.Values = append(vb.Values, v)
	return vb
}

// ScanArray copies all the values of a to the buffer.
func (vb *ValueBuffer) ScanArray(a types.Array) error {
	return a.Iterate(func(i int, v types.Value) error {
		vb.Values = append(vb.Values, v)
		return nil
	})
}

// Replace the value of the index by v.
func (vb *ValueBuffer) Replace(index int, v types.Value) error {
	if index < 0 || index >= len(vb.Values) {
		return types.ErrValueNotFound
	}

	vb.Values[index] = v
	return nil
}

func (vb *ValueBuffer) MarshalJSON() ([]byte, error) {
	return types.NewArrayValue(vb).MarshalJSON()
}
