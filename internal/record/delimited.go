package record

import (
	"strings"

	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
)

// ParseDelimited splits line on delim and sets the columns on b, in the
// order of the fields of s. Delimiters are not escaped.
// An empty column is null for nullable fields.
func ParseDelimited(b *Builder, s *schema.Schema, line, delim string) error {
	columns := strings.Split(line, delim)
	if len(columns) != s.Len() {
		return errs.NewSchemaMismatchError("", "expected %d columns, got %d", s.Len(), len(columns))
	}

	for i, f := range s.Fields {
		var v types.Value = types.NewTextValue(columns[i])
		if columns[i] == "" && f.Nullable {
			v = types.NewNullValue()
		}

		v, err := Convert(f, v)
		if err != nil {
			return errs.NewParseError("", err)
		}

		if err := b.Set(f.Name, v); err != nil {
			return err
		}
	}

	return nil
}

// FormatDelimited joins the values of r with delim, in schema order.
// Nulls are empty, blobs are base64 encoded and timestamps RFC 3339.
func FormatDelimited(r *Record, delim string) (string, error) {
	var sb strings.Builder

	for i, v := range r.values {
		if i > 0 {
			sb.WriteString(delim)
		}
		if types.IsNull(v) {
			continue
		}

		tv, err := v.CastAs(types.TypeText)
		if err != nil {
			return "", err
		}
		sb.WriteString(types.AsString(tv))
	}

	return sb.String(), nil
}
