package types

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

var _ Value = NewIntegerValue(0)

type IntegerValue int32

// NewIntegerValue returns an INTEGER value.
func NewIntegerValue(x int32) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int32(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntegerValue) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v IntegerValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeInteger:
		return v, nil
	case TypeBigint:
		return NewBigintValue(int64(v)), nil
	case TypeDouble:
		return NewDoubleValue(float64(v)), nil
	case TypeBoolean:
		return NewBooleanValue(v != 0), nil
	case TypeText:
		return NewTextValue(v.String()), nil
	}

	return nil, castError(v, target)
}

func (v IntegerValue) EQ(other Value) (bool, error) {
	return numberEQ(v, other), nil
}

// fits reports whether x can be stored in T without loss.
func fits[T constraints.Signed](x int64) bool {
	return int64(T(x)) == x
}

// floatFits reports whether f is integral and can be stored in T without loss.
func floatFits[T constraints.Signed](f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return false
	}

	return fits[T](int64(f))
}

func numberEQ(v, other Value) bool {
	switch other.Type() {
	case TypeInteger, TypeBigint:
		if v.Type() == TypeDouble {
			return AsFloat64(v) == float64(AsInt64(other))
		}
		return AsInt64(v) == AsInt64(other)
	case TypeDouble:
		if v.Type() == TypeDouble {
			return AsFloat64(v) == AsFloat64(other)
		}
		return float64(AsInt64(v)) == AsFloat64(other)
	}

	return false
}
