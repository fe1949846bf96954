package encoder

import (
	"strings"

	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/google/uuid"
)

// Destination is where a payload must be stored.
type Destination struct {
	Path string
	Kind format.ContentKind
}

// PathBuilder derives destination paths: base, then a name taken from a
// record field or generated, then the extension of the format.
type PathBuilder struct {
	base      string
	nameField string
	format    format.Format
}

// NewPathBuilder returns a path builder. Without nameField, names are
// random UUIDs.
func NewPathBuilder(base, nameField string, f format.Format) (*PathBuilder, error) {
	if _, ok := f.ContentKind(); !ok {
		return nil, errs.NewConfigurationError("format", "unsupported format %s", f)
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &PathBuilder{base: base, nameField: nameField, format: f}, nil
}

// Path returns the destination path of r.
func (pb *PathBuilder) Path(r *record.Record) (string, error) {
	if pb.nameField == "" {
		return pb.base + uuid.NewString() + pb.format.Extension(), nil
	}

	v, err := r.Get(pb.nameField)
	if err != nil {
		return "", errs.NewSchemaMismatchError(pb.nameField, "file name field is not in the record")
	}
	if types.IsNull(v) {
		return "", errs.NewSchemaMismatchError(pb.nameField, "file name is null")
	}

	tv, err := v.CastAs(types.TypeText)
	if err != nil {
		return "", errs.NewSchemaMismatchError(pb.nameField, "%v", err)
	}

	return pb.base + types.AsString(tv) + pb.format.Extension(), nil
}

// Destination returns the path and content kind of the payload of r.
func (pb *PathBuilder) Destination(r *record.Record) (Destination, error) {
	p, err := pb.Path(r)
	if err != nil {
		return Destination{}, err
	}

	kind, _ := pb.format.ContentKind()
	return Destination{Path: p, Kind: kind}, nil
}
