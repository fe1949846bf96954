package record_test

import (
	"testing"
	"time"

	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/testutil"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/stretchr/testify/require"
)

var allTypes = schema.MustNew("output",
	schema.Field{Name: "b", Type: types.TypeBoolean},
	schema.Field{Name: "i", Type: types.TypeInteger},
	schema.Field{Name: "l", Type: types.TypeBigint},
	schema.Field{Name: "d", Type: types.TypeDouble},
	schema.Field{Name: "t", Type: types.TypeTimestamp},
	schema.Field{Name: "s", Type: types.TypeText},
	schema.Field{Name: "blob", Type: types.TypeBlob},
	schema.Field{Name: "n", Type: types.TypeText, Nullable: true},
)

func TestBuilder(t *testing.T) {
	s := schema.MustNew("output",
		schema.Field{Name: "a", Type: types.TypeInteger},
		schema.Field{Name: "b", Type: types.TypeText, Nullable: true},
	)

	t.Run("ok", func(t *testing.T) {
		b := record.NewBuilder(s)
		require.NoError(t, b.Set("a", types.NewIntegerValue(1)))

		r, err := b.Build()
		require.NoError(t, err)
		require.Equal(t, 2, r.Len())
		require.Equal(t, types.NewIntegerValue(1), r.At(0))

		v, err := r.Get("b")
		require.NoError(t, err)
		require.True(t, types.IsNull(v))

		_, err = r.Get("c")
		require.ErrorIs(t, err, types.ErrFieldNotFound)
	})

	t.Run("wrong type", func(t *testing.T) {
		b := record.NewBuilder(s)
		err := b.Set("a", types.NewBigintValue(1))
		require.True(t, errs.IsSchemaMismatch(err))
	})

	t.Run("null on non nullable", func(t *testing.T) {
		b := record.NewBuilder(s)
		err := b.Set("a", types.NewNullValue())
		require.True(t, errs.IsSchemaMismatch(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		b := record.NewBuilder(s)
		err := b.Set("z", types.NewIntegerValue(1))
		require.True(t, errs.IsSchemaMismatch(err))
	})

	t.Run("missing value", func(t *testing.T) {
		b := record.NewBuilder(s)
		require.NoError(t, b.Set("b", types.NewTextValue("x")))
		_, err := b.Build()
		require.True(t, errs.IsSchemaMismatch(err))
	})

	t.Run("reuse", func(t *testing.T) {
		b := record.NewBuilder(s)
		require.NoError(t, b.Set("a", types.NewIntegerValue(1)))
		require.NoError(t, b.Set("b", types.NewTextValue("x")))
		r1, err := b.Build()
		require.NoError(t, err)

		require.NoError(t, b.Set("a", types.NewIntegerValue(2)))
		r2, err := b.Build()
		require.NoError(t, err)

		require.Equal(t, `{"a":1,"b":"x"}`, r1.String())
		require.Equal(t, `{"a":2,"b":null}`, r2.String())
	})
}

func TestReadObject(t *testing.T) {
	ts := time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("coercion", func(t *testing.T) {
		r := testutil.MakeRecord(t, allTypes, `{
			"b": "yes",
			"i": 10,
			"l": 10,
			"d": 10,
			"t": "2021-01-01T10:00:00Z",
			"s": "foo",
			"blob": [1, 2, 255],
			"extra": {"ignored": true}
		}`)

		want := testutil.BuildRecord(t, allTypes,
			true, int32(10), int64(10), float64(10), ts, "foo", []byte{1, 2, 255}, nil)
		testutil.RequireRecordEqual(t, want, r)
	})

	t.Run("text values", func(t *testing.T) {
		r := testutil.MakeRecord(t, allTypes, `{
			"b": "false", "i": "-3", "l": "3000000000", "d": "1.5",
			"t": "2021-01-01 10:00:00", "s": "", "blob": "AQL/", "n": "x"
		}`)

		want := testutil.BuildRecord(t, allTypes,
			false, int32(-3), int64(3000000000), 1.5, ts, "", []byte{1, 2, 255}, "x")
		testutil.RequireRecordEqual(t, want, r)
	})

	t.Run("timestamp from micros", func(t *testing.T) {
		s := schema.MustNew("output", schema.Field{Name: "t", Type: types.TypeTimestamp})
		r := testutil.MakeRecord(t, s, `{"t": 1609495200000000}`)
		require.Equal(t, types.NewTimestampValue(ts), r.At(0))
	})

	tests := []struct {
		name string
		data string
	}{
		{"missing non nullable", `{"i": 1}`},
		{"null non nullable", `{"b": null, "i": 1, "l": 1, "d": 1, "t": "2021-01-01T10:00:00Z", "s": "a", "blob": []}`},
		{"integer overflow", `{"b": true, "i": 3000000000, "l": 1, "d": 1, "t": "2021-01-01T10:00:00Z", "s": "a", "blob": []}`},
		{"fraction to integer", `{"b": true, "i": 1.5, "l": 1, "d": 1, "t": "2021-01-01T10:00:00Z", "s": "a", "blob": []}`},
		{"number to text", `{"b": true, "i": 1, "l": 1, "d": 1, "t": "2021-01-01T10:00:00Z", "s": 1, "blob": []}`},
		{"bad byte", `{"b": true, "i": 1, "l": 1, "d": 1, "t": "2021-01-01T10:00:00Z", "s": "a", "blob": [256]}`},
		{"bad timestamp", `{"b": true, "i": 1, "l": 1, "d": 1, "t": "soon", "s": "a", "blob": []}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := record.FromJSON(allTypes, []byte(test.data))
			require.True(t, errs.IsParse(err), "got %v", err)
		})
	}

	t.Run("not an object", func(t *testing.T) {
		_, err := record.FromJSON(allTypes, []byte(`[1]`))
		require.True(t, errs.IsParse(err))
	})
}

func TestMarshalJSON(t *testing.T) {
	r := testutil.BuildRecord(t, allTypes,
		true, int32(10), int64(3000000000), 1.5, time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC), "a\"b", []byte("bar"), nil)

	data, err := r.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"b":true,"i":10,"l":3000000000,"d":1.5,"t":"2021-01-01T10:00:00Z","s":"a\"b","blob":[98,97,114],"n":null}`, string(data))

	back, err := record.FromJSON(allTypes, data)
	require.NoError(t, err)
	testutil.RequireRecordEqual(t, r, back)
}

func TestDelimited(t *testing.T) {
	s := schema.MustNew("output",
		schema.Field{Name: "name", Type: types.TypeText},
		schema.Field{Name: "age", Type: types.TypeInteger},
	)

	t.Run("parse", func(t *testing.T) {
		b := record.NewBuilder(s)
		require.NoError(t, record.ParseDelimited(b, s, "alice;30", ";"))
		r, err := b.Build()
		require.NoError(t, err)
		testutil.RequireRecordEqual(t, testutil.BuildRecord(t, s, "alice", int32(30)), r)
	})

	t.Run("column count", func(t *testing.T) {
		b := record.NewBuilder(s)
		err := record.ParseDelimited(b, s, "alice;30;x", ";")
		require.True(t, errs.IsSchemaMismatch(err))
	})

	t.Run("bad value", func(t *testing.T) {
		b := record.NewBuilder(s)
		err := record.ParseDelimited(b, s, "alice;thirty", ";")
		require.True(t, errs.IsParse(err))
	})

	t.Run("empty columns", func(t *testing.T) {
		b := record.NewBuilder(s)
		err := record.ParseDelimited(b, s, ";", ";")
		require.True(t, errs.IsParse(err))

		ns := schema.MustNew("output",
			schema.Field{Name: "name", Type: types.TypeText},
			schema.Field{Name: "age", Type: types.TypeInteger, Nullable: true},
		)
		b = record.NewBuilder(ns)
		require.NoError(t, record.ParseDelimited(b, ns, ";", ";"))
		r, err := b.Build()
		require.NoError(t, err)
		require.Equal(t, `{"name":"","age":null}`, r.String())
	})

	t.Run("multi-character delimiter", func(t *testing.T) {
		b := record.NewBuilder(s)
		require.NoError(t, record.ParseDelimited(b, s, "bob||7", "||"))
		r, err := b.Build()
		require.NoError(t, err)
		require.Equal(t, `{"name":"bob","age":7}`, r.String())
	})

	t.Run("round trip", func(t *testing.T) {
		r := testutil.BuildRecord(t, allTypes,
			true, int32(-1), int64(3000000000), 0.1, time.Date(2021, 1, 1, 10, 0, 0, 123000, time.UTC), "x y", []byte{0, 1}, nil)

		line, err := record.FormatDelimited(r, ",")
		require.NoError(t, err)
		require.Equal(t, "true,-1,3000000000,0.1,2021-01-01T10:00:00.000123Z,x y,AAE=,", line)

		b := record.NewBuilder(allTypes)
		require.NoError(t, record.ParseDelimited(b, allTypes, line, ","))
		back, err := b.Build()
		require.NoError(t, err)
		testutil.RequireRecordEqual(t, r, back)
	})
}

func TestToObject(t *testing.T) {
	s := schema.MustNew("output",
		schema.Field{Name: "t", Type: types.TypeTimestamp},
		schema.Field{Name: "blob", Type: types.TypeBlob},
	)
	r := testutil.BuildRecord(t, s, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), []byte{7})

	o := record.ToObject(r)
	data, err := o.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"t":"2021-01-01T00:00:00Z","blob":[7]}`, string(data))
}
