package types

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// errStop is used to stop an iteration early.
var errStop = errors.New("stop")

var _ Value = NewObjectValue(nil)

type ObjectValue struct {
	o Object
}

// NewObjectValue returns an OBJECT value.
func NewObjectValue(x Object) *ObjectValue {
	return &ObjectValue{
		o: x,
	}
}

func (o *ObjectValue) V() any {
	return o.o
}

func (o *ObjectValue) Type() Type {
	return TypeObject
}

func (o *ObjectValue) String() string {
	data, _ := o.MarshalJSON()
	return string(data)
}

func (o *ObjectValue) MarshalJSON() ([]byte, error) {
	return MarshalObjectJSON(o.o)
}

func (o *ObjectValue) CastAs(target Type) (Value, error) {
	if target == TypeObject {
		return o, nil
	}

	return nil, castError(o, target)
}

func (o *ObjectValue) EQ(other Value) (bool, error) {
	if other.Type() != TypeObject {
		return false, nil
	}

	oo := AsObject(other)
	if o.o.Len() != oo.Len() {
		return false, nil
	}

	equal := true
	err := o.o.Iterate(func(field string, value Value) error {
		ov, err := oo.GetByField(field)
		if errors.Is(err, ErrFieldNotFound) {
			equal = false
			return errStop
		}
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

// MarshalObjectJSON encodes an object to compact json, keeping the field order.
func MarshalObjectJSON(o Object) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	var notFirst bool
	err := o.Iterate(func(f string, v Value) error {
		if notFirst {
			buf.WriteByte(',')
		}
		notFirst = true

		buf.Write(AppendJSONString(nil, f))
		buf.WriteByte(':')

		data, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = buf.Write(data)
		return err
	})
	if err != nil {
		return nil, err
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
