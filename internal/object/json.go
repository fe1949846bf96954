package object

import (
	"math"

	"github.com/buger/jsonparser"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

// ParseJSON parses any json value into a tree of values.
// Objects become FieldBuffers and arrays ValueBuffers. Keys keep
// their document order, duplicates included.
func ParseJSON(data []byte) (types.Value, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid json")
	}

	return parseJSONValue(dataType, value)
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (v types.Value, err error) {
	switch dataType {
	case jsonparser.Null:
		return types.NewNullValue(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return types.NewBooleanValue(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			// fractions, exponents and numbers too big to fit in an int64
			f, err := jsonparser.ParseFloat(data)
			if err != nil {
				return nil, err
			}

			return types.NewDoubleValue(f), nil
		}

		if i < math.MinInt32 || i > math.MaxInt32 {
			return types.NewBigintValue(i), nil
		}

		return types.NewIntegerValue(int32(i)), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return types.NewTextValue(s), nil
	case jsonparser.Array:
		buf := NewValueBuffer()
		err := buf.UnmarshalJSON(data)
		if err != nil {
			return nil, err
		}

		return types.NewArrayValue(buf), nil
	case jsonparser.Object:
		buf := NewFieldBuffer()
		err = buf.UnmarshalJSON(data)
		if err != nil {
			return nil, err
		}

		return types.NewObjectValue(buf), nil
	}

	return nil, errors.Errorf("unsupported JSON type: %v", dataType)
}

func (fb *FieldBuffer) UnmarshalJSON(data []byte) error {
	return jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseJSONValue(dataType, value)
		if err != nil {
			return err
		}

		fb.Add(string(key), v)
		return nil
	})
}

func (vb *ValueBuffer) UnmarshalJSON(data []byte) error {
	var err error
	_, perr := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		if err != nil {
			return
		}

		var v types.Value
		v, err = parseJSONValue(dataType, value)
		if err != nil {
			return
		}

		vb.Append(v)
	})
	if err != nil {
		return err
	}

	return perr
}
