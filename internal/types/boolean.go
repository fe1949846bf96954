package types

import (
	"strconv"
)

var _ Value = NewBooleanValue(false)

type BooleanValue bool

// NewBooleanValue returns a BOOLEAN value.
func NewBooleanValue(x bool) BooleanValue {
	return BooleanValue(x)
}

func (v BooleanValue) V() any {
	return bool(v)
}

func (v BooleanValue) Type() Type {
	return TypeBoolean
}

func (v BooleanValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (v BooleanValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(v))), nil
}

func (v BooleanValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeBoolean:
		return v, nil
	case TypeInteger:
		if bool(v) {
			return NewIntegerValue(1), nil
		}

		return NewIntegerValue(0), nil
	case TypeBigint:
		if bool(v) {
			return NewBigintValue(1), nil
		}

		return NewBigintValue(0), nil
	case TypeText:
		return NewTextValue(v.String()), nil
	}

	return nil, castError(v, target)
}

func (v BooleanValue) EQ(other Value) (bool, error) {
	if other.Type() != TypeBoolean {
		return false, nil
	}

	return bool(v) == AsBool(other), nil
}
