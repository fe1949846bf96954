package types

import (
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
)

var _ Value = NewTimestampValue(time.Time{})

var (
	epoch   = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro()
	maxTime = math.MaxInt64 - epoch
	minTime = math.MinInt64 + epoch
)

type TimestampValue time.Time

// NewTimestampValue returns a TIMESTAMP value.
func NewTimestampValue(x time.Time) TimestampValue {
	return TimestampValue(x.UTC())
}

func (v TimestampValue) V() any {
	return time.Time(v)
}

func (v TimestampValue) Type() Type {
	return TypeTimestamp
}

func (v TimestampValue) String() string {
	return strconv.Quote(time.Time(v).Format(time.RFC3339Nano))
}

func (v TimestampValue) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v TimestampValue) CastAs(target Type) (Value, error) {
	switch target {
	case TypeTimestamp:
		return v, nil
	case TypeBigint:
		return NewBigintValue(time.Time(v).UnixMicro()), nil
	case TypeText:
		return NewTextValue(time.Time(v).Format(time.RFC3339Nano)), nil
	}

	return nil, castError(v, target)
}

func (v TimestampValue) EQ(other Value) (bool, error) {
	switch other.Type() {
	case TypeTimestamp:
		return time.Time(v).Equal(AsTime(other)), nil
	case TypeText:
		ts, err := ParseTimestamp(AsString(other))
		if err != nil {
			return false, err
		}
		return time.Time(v).Equal(ts), nil
	}

	return false, nil
}

// ParseTimestamp parses RFC 3339 text and falls back to carbon's layout
// detection for the other common date formats.
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		c := carbon.Parse(s, "UTC")
		if c.Error != nil {
			return time.Time{}, errors.Newf("invalid timestamp %q", s)
		}
		ts = c.ToStdTime()
	}

	m := ts.UnixMicro()
	if m > maxTime || m < minTime {
		return time.Time{}, errors.New("timestamp out of range")
	}

	return ts.UTC(), nil
}
