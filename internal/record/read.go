package record

import (
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

// ReadObject sets on b the fields of s read from the same-named keys of o.
// Unknown keys are ignored. Missing keys are null, which fails on non
// nullable fields. Errors are ParseErrors.
func ReadObject(b *Builder, s *schema.Schema, o types.Object) error {
	for _, f := range s.Fields {
		v, err := o.GetByField(f.Name)
		if errors.Is(err, types.ErrFieldNotFound) {
			v = types.NewNullValue()
		} else if err != nil {
			return errs.NewParseError("", err)
		}

		v, err = Convert(f, v)
		if err != nil {
			return errs.NewParseError("", err)
		}

		if err := b.Set(f.Name, v); err != nil {
			return err
		}
	}

	return nil
}

// FromJSON reads a record of s from a json object.
func FromJSON(s *schema.Schema, data []byte) (*Record, error) {
	v, err := object.ParseJSON(data)
	if err != nil {
		return nil, errs.NewParseError("", err)
	}
	if v.Type() != types.TypeObject {
		return nil, errs.NewParseError("", errors.Errorf("expected a json object, got %s", v.Type()))
	}

	b := NewBuilder(s)
	if err := ReadObject(b, s, types.AsObject(v)); err != nil {
		return nil, err
	}

	return b.Build()
}
