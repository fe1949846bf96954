package types_test

import (
	"math"
	"testing"
	"time"

	"github.com/chaisql/docbridge/internal/types"
	"github.com/stretchr/testify/require"
)

func TestCastAs(t *testing.T) {
	type test struct {
		v, want types.Value
		fails   bool
	}

	ts := time.Date(2021, 1, 1, 10, 5, 59, 123456000, time.UTC)

	boolV := types.NewBooleanValue(true)
	integerV := types.NewIntegerValue(10)
	bigintV := types.NewBigintValue(10)
	doubleV := types.NewDoubleValue(10.5)
	tsV := types.NewTimestampValue(ts)
	textV := types.NewTextValue("foo")
	blobV := types.NewBlobValue([]byte("asdine"))

	check := func(t *testing.T, targetType types.Type, tests []test) {
		t.Helper()

		for _, test := range tests {
			t.Run(test.v.String(), func(t *testing.T) {
				t.Helper()

				got, err := test.v.CastAs(targetType)
				if test.fails {
					require.Error(t, err)
				} else {
					require.NoError(t, err)
					require.Equal(t, test.want, got)
				}
			})
		}
	}

	t.Run("bool", func(t *testing.T) {
		check(t, types.TypeBoolean, []test{
			{boolV, boolV, false},
			{integerV, boolV, false},
			{types.NewIntegerValue(0), types.NewBooleanValue(false), false},
			{doubleV, nil, true},
			{textV, nil, true},
			{types.NewTextValue("true"), boolV, false},
			{types.NewTextValue("off"), types.NewBooleanValue(false), false},
			{types.NewTextValue("Y"), boolV, false},
			{types.NewTextValue("n"), types.NewBooleanValue(false), false},
			{types.NewTextValue("Yes"), boolV, false},
			{types.NewTextValue("nope"), nil, true},
			{blobV, nil, true},
		})
	})

	t.Run("integer", func(t *testing.T) {
		check(t, types.TypeInteger, []test{
			{boolV, types.NewIntegerValue(1), false},
			{integerV, integerV, false},
			{bigintV, integerV, false},
			{types.NewBigintValue(math.MaxInt32 + 1), nil, true},
			{types.NewDoubleValue(10), integerV, false},
			{doubleV, nil, true},
			{types.NewTextValue("10"), integerV, false},
			{types.NewTextValue("10.5"), nil, true},
			{types.NewTextValue("3000000000"), nil, true},
			{textV, nil, true},
			{blobV, nil, true},
		})
	})

	t.Run("bigint", func(t *testing.T) {
		check(t, types.TypeBigint, []test{
			{integerV, bigintV, false},
			{bigintV, bigintV, false},
			{types.NewTextValue("3000000000"), types.NewBigintValue(3000000000), false},
			{tsV, types.NewBigintValue(ts.UnixMicro()), false},
			{types.NewDoubleValue(1e300), nil, true},
			{textV, nil, true},
		})
	})

	t.Run("double", func(t *testing.T) {
		check(t, types.TypeDouble, []test{
			{integerV, types.NewDoubleValue(10), false},
			{bigintV, types.NewDoubleValue(10), false},
			{doubleV, doubleV, false},
			{types.NewTextValue("10.5"), doubleV, false},
			{textV, nil, true},
			{boolV, nil, true},
		})
	})

	t.Run("timestamp", func(t *testing.T) {
		check(t, types.TypeTimestamp, []test{
			{tsV, tsV, false},
			{types.NewTextValue("2021-01-01T10:05:59.123456Z"), tsV, false},
			{types.NewTextValue("2021-01-01T12:05:59.123456+02:00"), tsV, false},
			{types.NewBigintValue(ts.UnixMicro()), tsV, false},
			{textV, nil, true},
			{integerV, nil, true},
		})
	})

	t.Run("text", func(t *testing.T) {
		check(t, types.TypeText, []test{
			{boolV, types.NewTextValue("true"), false},
			{integerV, types.NewTextValue("10"), false},
			{doubleV, types.NewTextValue("10.5"), false},
			{tsV, types.NewTextValue("2021-01-01T10:05:59.123456Z"), false},
			{textV, textV, false},
			{blobV, types.NewTextValue("YXNkaW5l"), false},
		})
	})

	t.Run("blob", func(t *testing.T) {
		check(t, types.TypeBlob, []test{
			{types.NewTextValue("YXNkaW5l"), blobV, false},
			{types.NewTextValue("not base64!"), nil, true},
			{blobV, blobV, false},
			{integerV, nil, true},
		})
	})

	t.Run("null", func(t *testing.T) {
		v, err := types.NewNullValue().CastAs(types.TypeInteger)
		require.NoError(t, err)
		require.True(t, types.IsNull(v))
	})
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		fails bool
	}{
		{"2021-01-01T10:05:59Z", time.Date(2021, 1, 1, 10, 5, 59, 0, time.UTC), false},
		{"2021-01-01 10:05:59", time.Date(2021, 1, 1, 10, 5, 59, 0, time.UTC), false},
		{"2021-01-01", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"yesterday-ish", time.Time{}, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := types.ParseTimestamp(test.input)
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, test.want.Equal(got), "want %s, got %s", test.want, got)
		})
	}
}
