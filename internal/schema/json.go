package schema

import (
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

const (
	logicalTimestampMicros = "timestamp-micros"
	logicalTimestampMillis = "timestamp-millis"
)

var avroTypes = map[string]types.Type{
	"boolean": types.TypeBoolean,
	"int":     types.TypeInteger,
	"long":    types.TypeBigint,
	"double":  types.TypeDouble,
	"float":   types.TypeDouble,
	"string":  types.TypeText,
	"bytes":   types.TypeBlob,
}

func avroName(t types.Type) string {
	switch t {
	case types.TypeBoolean:
		return "boolean"
	case types.TypeInteger:
		return "int"
	case types.TypeBigint, types.TypeTimestamp:
		return "long"
	case types.TypeDouble:
		return "double"
	case types.TypeText:
		return "string"
	case types.TypeBlob:
		return "bytes"
	}

	return t.String()
}

// Parse reads a record schema written in its json form:
//
//	{"type": "record", "name": "output", "fields": [
//	  {"name": "a", "type": "int"},
//	  {"name": "b", "type": ["string", "null"]},
//	  {"name": "t", "type": {"type": "long", "logicalType": "timestamp-micros"}}
//	]}
func Parse(data []byte) (*Schema, error) {
	v, err := object.ParseJSON(data)
	if err != nil {
		return nil, errs.NewConfigurationError("schema", "%v", err)
	}
	if v.Type() != types.TypeObject {
		return nil, errs.NewConfigurationError("schema", "expected an object, got %s", v.Type())
	}
	o := types.AsObject(v)

	if t, err := getString(o, "type"); err != nil || t != "record" {
		return nil, errs.NewConfigurationError("schema", `"type" must be "record"`)
	}

	name, err := getString(o, "name")
	if err != nil {
		name = "output"
	}

	fv, err := o.GetByField("fields")
	if err != nil || fv.Type() != types.TypeArray {
		return nil, errs.NewConfigurationError("schema", `"fields" must be an array`)
	}

	var fields []Field
	err = types.AsArray(fv).Iterate(func(i int, v types.Value) error {
		if v.Type() != types.TypeObject {
			return errors.Errorf("field %d: expected an object", i)
		}

		f, err := parseField(types.AsObject(v))
		if err != nil {
			return errors.Wrapf(err, "field %d", i)
		}
		fields = append(fields, f)
		return nil
	})
	if err != nil {
		return nil, errs.NewConfigurationError("schema", "%v", err)
	}

	return New(name, fields...)
}

func parseField(o types.Object) (Field, error) {
	var f Field

	name, err := getString(o, "name")
	if err != nil {
		return f, err
	}
	f.Name = name

	tv, err := o.GetByField("type")
	if err != nil {
		return f, err
	}

	// a union with null makes the field nullable
	if tv.Type() == types.TypeArray {
		var other []types.Value
		err = types.AsArray(tv).Iterate(func(_ int, v types.Value) error {
			if v.Type() == types.TypeText && types.AsString(v) == "null" {
				f.Nullable = true
				return nil
			}
			other = append(other, v)
			return nil
		})
		if err != nil {
			return f, err
		}
		if len(other) != 1 {
			return f, errors.Errorf("unsupported union for %q", name)
		}
		tv = other[0]
	}

	f.Type, f.Millis, err = parseType(tv)
	if err != nil {
		return f, errors.Wrapf(err, "field %q", name)
	}

	return f, nil
}

// parseType returns the type described by v and whether it is a timestamp
// in milliseconds.
func parseType(v types.Value) (types.Type, bool, error) {
	switch v.Type() {
	case types.TypeText:
		t, ok := avroTypes[types.AsString(v)]
		if !ok {
			return 0, false, errors.Errorf("unsupported type %q", types.AsString(v))
		}
		return t, false, nil
	case types.TypeObject:
		o := types.AsObject(v)
		if lt, err := getString(o, "logicalType"); err == nil {
			switch lt {
			case logicalTimestampMicros:
				return types.TypeTimestamp, false, nil
			case logicalTimestampMillis:
				return types.TypeTimestamp, true, nil
			}
			return 0, false, errors.Errorf("unsupported logical type %q", lt)
		}

		inner, err := o.GetByField("type")
		if err != nil {
			return 0, false, err
		}
		return parseType(inner)
	}

	return 0, false, errors.Errorf("unsupported type definition %s", v)
}

func getString(o types.Object, field string) (string, error) {
	v, err := o.GetByField(field)
	if err != nil {
		return "", err
	}
	if v.Type() != types.TypeText {
		return "", errors.Errorf("%q must be a string", field)
	}

	return types.AsString(v), nil
}

// MarshalJSON writes the json form read by Parse.
func (s *Schema) MarshalJSON() ([]byte, error) {
	fields := object.NewValueBuffer()
	for _, f := range s.Fields {
		var t types.Value = types.NewTextValue(avroName(f.Type))
		if f.Type == types.TypeTimestamp {
			lt := logicalTimestampMicros
			if f.Millis {
				lt = logicalTimestampMillis
			}
			t = types.NewObjectValue(object.NewFieldBuffer().
				Add("type", t).
				Add("logicalType", types.NewTextValue(lt)))
		}
		if f.Nullable {
			t = types.NewArrayValue(object.NewValueBuffer(t, types.NewTextValue("null")))
		}

		fields.Append(types.NewObjectValue(object.NewFieldBuffer().
			Add("name", types.NewTextValue(f.Name)).
			Add("type", t)))
	}

	name := s.Name
	if name == "" {
		name = "output"
	}

	return object.NewFieldBuffer().
		Add("type", types.NewTextValue("record")).
		Add("name", types.NewTextValue(name)).
		Add("fields", types.NewArrayValue(fields)).
		MarshalJSON()
}
