package testutil

import (
	"testing"

	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// MakeSchema parses the json form of a schema.
func MakeSchema(t testing.TB, s string) *schema.Schema {
	t.Helper()

	sc, err := schema.Parse([]byte(s))
	require.NoError(t, err)
	return sc
}

// MakeRecord reads a record of sc from a json object.
func MakeRecord(t testing.TB, sc *schema.Schema, s string) *record.Record {
	t.Helper()

	r, err := record.FromJSON(sc, []byte(s))
	require.NoError(t, err)
	return r
}

// MakeRecords calls MakeRecord for each json object.
func MakeRecords(t testing.TB, sc *schema.Schema, s ...string) []*record.Record {
	t.Helper()

	var records []*record.Record
	for _, v := range s {
		records = append(records, MakeRecord(t, sc, v))
	}
	return records
}

// BuildRecord creates a record of sc from go values, in field order.
func BuildRecord(t testing.TB, sc *schema.Schema, values ...any) *record.Record {
	t.Helper()

	require.Equal(t, sc.Len(), len(values))

	b := record.NewBuilder(sc)
	for i, x := range values {
		v, err := record.NewValue(x)
		require.NoError(t, err)
		require.NoError(t, b.Set(sc.Fields[i].Name, v))
	}

	r, err := b.Build()
	require.NoError(t, err)
	return r
}

// RequireRecordsEqual fails with a diff of the json form of both lists if
// they are not equal.
func RequireRecordsEqual(t testing.TB, want, got []*record.Record) {
	t.Helper()

	equal := len(want) == len(got)
	for i := 0; equal && i < len(want); i++ {
		equal = want[i].Equal(got[i])
	}
	if equal {
		return
	}

	t.Fatalf("records mismatch (-want +got):\n%s", cmp.Diff(dump(want), dump(got)))
}

// RequireRecordEqual is RequireRecordsEqual for a single record.
func RequireRecordEqual(t testing.TB, want, got *record.Record) {
	t.Helper()

	RequireRecordsEqual(t, []*record.Record{want}, []*record.Record{got})
}

type dumpedField struct {
	Name  string
	Type  string
	Value string
}

func dump(records []*record.Record) [][]dumpedField {
	out := make([][]dumpedField, 0, len(records))
	for _, r := range records {
		var fields []dumpedField
		_ = r.Iterate(func(field string, v types.Value) error {
			fields = append(fields, dumpedField{Name: field, Type: v.Type().String(), Value: v.String()})
			return nil
		})
		out = append(out, fields)
	}
	return out
}
