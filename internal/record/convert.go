package record

import (
	"time"

	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

// Convert coerces a value read from a document to the type of f.
// Integers widen, doubles narrow only without loss, text is parsed,
// blobs are read from an array of byte values, a single byte value or
// base64 text, and timestamps from text or from microseconds since the
// Unix epoch (milliseconds for fields marked Millis).
func Convert(f schema.Field, v types.Value) (types.Value, error) {
	if types.IsNull(v) {
		if !f.Nullable {
			return nil, errors.Errorf("field %q: null value for a non nullable field", f.Name)
		}
		return types.NewNullValue(), nil
	}

	if v.Type() == f.Type {
		return v, nil
	}

	var (
		cv  types.Value
		err error
	)

	switch f.Type {
	case types.TypeBoolean:
		if v.Type() == types.TypeText {
			cv, err = v.CastAs(f.Type)
		}
	case types.TypeInteger, types.TypeBigint, types.TypeDouble:
		if v.Type().IsNumber() || v.Type() == types.TypeText {
			cv, err = v.CastAs(f.Type)
		}
	case types.TypeTimestamp:
		switch {
		case v.Type() == types.TypeText:
			cv, err = v.CastAs(f.Type)
		case v.Type().IsInteger() && f.Millis:
			cv = types.NewTimestampValue(time.UnixMilli(types.AsInt64(v)).UTC())
		case v.Type().IsInteger():
			cv, err = types.NewBigintValue(types.AsInt64(v)).CastAs(f.Type)
		}
	case types.TypeBlob:
		switch v.Type() {
		case types.TypeText:
			if b, ok := singleByte(types.AsString(v)); ok {
				cv = types.NewBlobValue([]byte{b})
				break
			}
			cv, err = v.CastAs(f.Type)
		case types.TypeArray:
			cv, err = blobFromArray(types.AsArray(v))
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", f.Name)
	}
	if cv == nil {
		return nil, errors.Errorf("field %q: cannot convert %s to %s", f.Name, v.Type(), f.Type)
	}

	return cv, nil
}

// singleByte reads a one element byte array flattened to text by xml,
// e.g. "7". Standard base64 text is a multiple of four characters long, so
// one to three digits cannot be base64.
func singleByte(s string) (byte, bool) {
	if len(s) == 0 || len(s) > 3 {
		return 0, false
	}

	var n int
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if n > 255 {
		return 0, false
	}

	return byte(n), true
}

func blobFromArray(a types.Array) (types.Value, error) {
	b := make([]byte, 0, a.Len())
	err := a.Iterate(func(i int, v types.Value) error {
		// xml trees hold numbers as text
		if v.Type() == types.TypeText {
			var err error
			v, err = v.CastAs(types.TypeBigint)
			if err != nil {
				return errors.Wrapf(err, "byte %d", i)
			}
		}
		if !v.Type().IsInteger() {
			return errors.Errorf("byte %d: expected an integer, got %s", i, v.Type())
		}
		n := types.AsInt64(v)
		if n < 0 || n > 255 {
			return errors.Errorf("byte %d: %d out of range", i, n)
		}
		b = append(b, byte(n))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return types.NewBlobValue(b), nil
}

// ToObject returns the json equivalent tree of the record: blobs become
// arrays of byte values and timestamps RFC 3339 text.
func ToObject(r *Record) *object.FieldBuffer {
	fb := object.NewFieldBuffer()
	_ = r.Iterate(func(field string, v types.Value) error {
		switch v.Type() {
		case types.TypeBlob:
			vb := object.NewValueBuffer()
			for _, c := range types.AsByteSlice(v) {
				vb.Append(types.NewIntegerValue(int32(c)))
			}
			v = types.NewArrayValue(vb)
		case types.TypeTimestamp:
			v, _ = v.CastAs(types.TypeText)
		}

		fb.Add(field, v)
		return nil
	})

	return fb
}
