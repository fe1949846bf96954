package types

import (
	"bytes"
)

var _ Value = NewArrayValue(nil)

type ArrayValue struct {
	a Array
}

// NewArrayValue returns an ARRAY value.
func NewArrayValue(x Array) *ArrayValue {
	return &ArrayValue{
		a: x,
	}
}

func (v *ArrayValue) V() any {
	return v.a
}

func (v *ArrayValue) Type() Type {
	return TypeArray
}

func (v *ArrayValue) String() string {
	data, _ := v.MarshalJSON()
	return string(data)
}

func (v *ArrayValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')
	err := v.a.Iterate(func(i int, value Value) error {
		if i > 0 {
			buf.WriteByte(',')
		}

		data, err := value.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

func (v *ArrayValue) CastAs(target Type) (Value, error) {
	if target == TypeArray {
		return v, nil
	}

	return nil, castError(v, target)
}

func (v *ArrayValue) EQ(other Value) (bool, error) {
	if other.Type() != TypeArray {
		return false, nil
	}

	oa := AsArray(other)
	if v.a.Len() != oa.Len() {
		return false, nil
	}

	equal := true
	err := v.a.Iterate(func(i int, value Value) error {
		ov, err := oa.GetByIndex(i)
		if err != nil {
			return err
		}
		ok, err := value.EQ(ov)
		if err != nil {
			return err
		}
		if !ok {
			equal = false
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return false, err
	}

	return equal, nil
}
