package types

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

var _ Value = NewBigintValue(0)

type BigintValue int64

// NewBigintValue returns a BIGINT value.
func NewBigintValue(x int64) BigintValue {
	return BigintValue(x)
}

func (v BigintValue) V() any {
	return int64(v)
}

func (v BigintValue) Type() Type {
	return TypeBigint
}

func (v BigintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v BigintValue) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v BigintValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeBigint:
		return v, nil
	case TypeInteger:
		if !fits[int32](int64(v)) {
			return nil, errors.Errorf("integer out of range: %d", int64(v))
		}
		return NewIntegerValue(int32(v)), nil
	case TypeDouble:
		return NewDoubleValue(float64(v)), nil
	case TypeBoolean:
		return NewBooleanValue(v != 0), nil
	case TypeTimestamp:
		// bigint timestamps are microseconds since the Unix epoch
		return NewTimestampValue(time.UnixMicro(int64(v))), nil
	case TypeText:
		return NewTextValue(v.String()), nil
	}

	return nil, castError(v, target)
}

func (v BigintValue) EQ(other Value) (bool, error) {
	return numberEQ(v, other), nil
}
