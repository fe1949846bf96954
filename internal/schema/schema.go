// Package schema describes the typed records produced by the decoder and
// consumed by the encoder.
package schema

import (
	"regexp"
	"strings"

	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/types"
)

// DefaultPayloadField is the only field of the default schema.
const DefaultPayloadField = "payload"

var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field describes one field of a record.
type Field struct {
	Name     string
	Type     types.Type
	Nullable bool
	// Millis marks a timestamp field whose integer form counts milliseconds
	// since the Unix epoch instead of microseconds.
	Millis bool
}

func (f Field) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte(' ')
	sb.WriteString(f.Type.String())
	if !f.Nullable {
		sb.WriteString(" not null")
	}
	return sb.String()
}

// Schema is an ordered list of uniquely named fields.
// A schema must not be modified once created.
type Schema struct {
	Name   string
	Fields []Field
}

// New creates a schema, validating the name and type of every field.
func New(name string, fields ...Field) (*Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !fieldNameRe.MatchString(f.Name) {
			return nil, errs.NewSchemaMismatchError(f.Name, "invalid field name")
		}
		if _, ok := seen[f.Name]; ok {
			return nil, errs.NewSchemaMismatchError(f.Name, "duplicate field")
		}
		seen[f.Name] = struct{}{}

		if !f.Type.IsField() {
			return nil, errs.NewSchemaMismatchError(f.Name, "unsupported field type %s", f.Type)
		}
	}

	return &Schema{
		Name:   name,
		Fields: append([]Field(nil), fields...),
	}, nil
}

// MustNew calls New and panics on error.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultSchema = MustNew("output", Field{Name: DefaultPayloadField, Type: types.TypeBlob})

// Default returns the schema used when no schema is configured:
// a single non nullable blob field named "payload".
func Default() *Schema {
	return defaultSchema
}

// IsDefault reports whether s has the same fields as the default schema.
func (s *Schema) IsDefault() bool {
	return s.Equal(defaultSchema)
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	i := s.Index(name)
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Index returns the position of the field with the given name, or -1.
func (s *Schema) Index(name string) int {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.Fields)
}

// Equal compares the fields of both schemas. Names are ignored.
func (s *Schema) Equal(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// Without returns the schema minus the named field, order preserved.
// An empty or unknown name returns s itself.
func (s *Schema) Without(name string) *Schema {
	i := s.Index(name)
	if name == "" || i < 0 {
		return s
	}

	fields := make([]Field, 0, len(s.Fields)-1)
	fields = append(fields, s.Fields[:i]...)
	fields = append(fields, s.Fields[i+1:]...)
	return &Schema{Name: s.Name, Fields: fields}
}

func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range s.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
