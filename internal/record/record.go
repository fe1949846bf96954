// Package record implements the typed records produced by the decoder and
// consumed by the encoder.
package record

import (
	"time"

	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

var _ types.Object = new(Record)

// A Record holds one value per field of its schema, in schema order.
// Records are created by a Builder and never modified.
type Record struct {
	schema *schema.Schema
	values []types.Value
}

// Schema returns the schema of the record.
func (r *Record) Schema() *schema.Schema {
	return r.schema
}

// Get returns the value of the given field.
// If the field does not exist, it returns ErrFieldNotFound.
func (r *Record) Get(field string) (types.Value, error) {
	i := r.schema.Index(field)
	if i < 0 {
		return nil, errors.Wrapf(types.ErrFieldNotFound, "%s not found", field)
	}

	return r.values[i], nil
}

// GetByField implements the types.Object interface.
func (r *Record) GetByField(field string) (types.Value, error) {
	return r.Get(field)
}

// At returns the value of the i-th field.
func (r *Record) At(i int) types.Value {
	return r.values[i]
}

// Iterate goes through all the fields of the record, in schema order.
// If the given function returns an error, the iteration stops.
func (r *Record) Iterate(fn func(field string, value types.Value) error) error {
	for i, f := range r.schema.Fields {
		if err := fn(f.Name, r.values[i]); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.values)
}

// Equal reports whether both records have the same fields and values.
// Values must have the same type to be equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if !r.schema.Equal(other.schema) {
		return false
	}

	for i, v := range r.values {
		ov := other.values[i]
		if types.IsNull(v) || types.IsNull(ov) {
			if types.IsNull(v) != types.IsNull(ov) {
				return false
			}
			continue
		}
		if v.Type() != ov.Type() {
			return false
		}
		ok, err := v.EQ(ov)
		if err != nil || !ok {
			return false
		}
	}

	return true
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return types.MarshalObjectJSON(r)
}

func (r *Record) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return "<invalid record>"
	}
	return string(data)
}

// Builder creates records of a given schema.
type Builder struct {
	schema *schema.Schema
	values []types.Value
}

// NewBuilder returns a builder for records of s.
func NewBuilder(s *schema.Schema) *Builder {
	return &Builder{
		schema: s,
		values: make([]types.Value, s.Len()),
	}
}

// Schema returns the schema of the records built by b.
func (b *Builder) Schema() *schema.Schema {
	return b.schema
}

// Set the value of a field. The value must have the exact type of the
// field, or be null if the field is nullable.
func (b *Builder) Set(field string, v types.Value) error {
	i := b.schema.Index(field)
	if i < 0 {
		return errs.NewSchemaMismatchError(field, "unknown field")
	}

	f := b.schema.Fields[i]
	if types.IsNull(v) {
		if !f.Nullable {
			return errs.NewSchemaMismatchError(field, "null value for a non nullable field")
		}
		v = types.NewNullValue()
	} else if v.Type() != f.Type {
		return errs.NewSchemaMismatchError(field, "expected %s, got %s", f.Type, v.Type())
	}

	b.values[i] = v
	return nil
}

// Build returns the record and resets the builder.
// Unset nullable fields are null, unset non nullable fields are an error.
func (b *Builder) Build() (*Record, error) {
	values := make([]types.Value, len(b.values))
	for i, v := range b.values {
		if v == nil {
			f := b.schema.Fields[i]
			if !f.Nullable {
				b.Reset()
				return nil, errs.NewSchemaMismatchError(f.Name, "missing value for a non nullable field")
			}
			v = types.NewNullValue()
		}
		values[i] = v
	}

	b.Reset()
	return &Record{schema: b.schema, values: values}, nil
}

// Reset clears the values set on the builder.
func (b *Builder) Reset() {
	for i := range b.values {
		b.values[i] = nil
	}
}

// NewValue creates a value whose type is infered from x.
func NewValue(x any) (types.Value, error) {
	if x == nil {
		return types.NewNullValue(), nil
	}
	switch v := x.(type) {
	case types.Value:
		return v, nil
	case int:
		return types.NewBigintValue(int64(v)), nil
	case int32:
		return types.NewIntegerValue(v), nil
	case int64:
		return types.NewBigintValue(v), nil
	case float64:
		return types.NewDoubleValue(v), nil
	case bool:
		return types.NewBooleanValue(v), nil
	case []byte:
		return types.NewBlobValue(v), nil
	case string:
		return types.NewTextValue(v), nil
	case time.Time:
		return types.NewTimestampValue(v), nil
	case *string:
		if v == nil {
			return types.NewNullValue(), nil
		}
		return types.NewTextValue(*v), nil
	}

	return nil, errors.Errorf("unsupported type %T", x)
}
