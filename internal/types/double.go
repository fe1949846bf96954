package types

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
)

var _ Value = NewDoubleValue(0)

type DoubleValue float64

// NewDoubleValue returns a DOUBLE value.
func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

// String uses the shortest representation that parses back to the same
// float64.
func (v DoubleValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (v DoubleValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Errorf("cannot encode %v as json", f)
	}

	return []byte(v.String()), nil
}

func (v DoubleValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeDouble:
		return v, nil
	case TypeInteger:
		if !floatFits[int32](float64(v)) {
			return nil, errors.Errorf("cannot cast %s as integer without loss", v)
		}
		return NewIntegerValue(int32(v)), nil
	case TypeBigint:
		if !floatFits[int64](float64(v)) {
			return nil, errors.Errorf("cannot cast %s as bigint without loss", v)
		}
		return NewBigintValue(int64(v)), nil
	case TypeText:
		return NewTextValue(v.String()), nil
	}

	return nil, castError(v, target)
}

func (v DoubleValue) EQ(other Value) (bool, error) {
	return numberEQ(v, other), nil
}
