// Package decoder turns stored documents into typed records.
package decoder

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/chaisql/docbridge/internal/document"
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/chaisql/docbridge/internal/xmltree"
	"github.com/cockroachdb/errors"
)

// Config of a decoder.
type Config struct {
	// Schema of the produced records. Nil means schema.Default().
	Schema *schema.Schema
	Format format.Format
	// Delimiter of the DELIMITED format.
	Delimiter string
	// FileNameField, if set, receives the file name of the document.
	FileNameField string
	// PayloadField receives the content of BINARY and TEXT documents.
	PayloadField string
}

// A Decoder decodes documents into records of its schema.
// A Decoder can be reused for many documents but is not safe for
// concurrent use.
type Decoder struct {
	cfg Config
	// declared schema minus the file name field
	modified *schema.Schema
	builder  *record.Builder
}

// New validates the configuration and returns a decoder.
func New(cfg Config) (*Decoder, error) {
	if cfg.Schema == nil {
		cfg.Schema = schema.Default()
	}
	if cfg.Format == 0 {
		cfg.Format = format.Auto
	}

	if cfg.FileNameField != "" {
		f, ok := cfg.Schema.Field(cfg.FileNameField)
		if !ok {
			return nil, errs.NewConfigurationError("fileNameField", "field %q is not in the schema", cfg.FileNameField)
		}
		if f.Type != types.TypeText {
			return nil, errs.NewConfigurationError("fileNameField", "field %q must be of type text, got %s", f.Name, f.Type)
		}
	}

	if !cfg.Schema.IsDefault() {
		switch cfg.Format {
		case format.Delimited:
			if cfg.Delimiter == "" {
				return nil, errs.NewConfigurationError("delimiter", "must be set for format %s", cfg.Format)
			}
		case format.Auto, format.Blob, format.Text:
			if cfg.PayloadField != "" {
				if _, ok := cfg.Schema.Field(cfg.PayloadField); !ok {
					return nil, errs.NewConfigurationError("payloadField", "field %q is not in the schema", cfg.PayloadField)
				}
			}
		}
	}

	return &Decoder{
		cfg:      cfg,
		modified: cfg.Schema.Without(cfg.FileNameField),
		builder:  record.NewBuilder(cfg.Schema),
	}, nil
}

// Schema returns the schema of the decoded records.
func (d *Decoder) Schema() *schema.Schema {
	return d.cfg.Schema
}

// Decode the document into records. The returned slice is never nil.
// Errors are FormatMismatchErrors, ParseErrors or SchemaMismatchErrors and
// no records are returned with them.
func (d *Decoder) Decode(doc *document.Document) ([]*record.Record, error) {
	records, err := d.decode(doc)
	if err != nil {
		return []*record.Record{}, errs.WithPath(err, doc.Path)
	}
	if records == nil {
		records = []*record.Record{}
	}

	return records, nil
}

func (d *Decoder) decode(doc *document.Document) ([]*record.Record, error) {
	if d.cfg.Schema.IsDefault() {
		return d.decodeRaw(doc, schema.DefaultPayloadField, types.NewBlobValue(doc.Content))
	}

	strategy, err := format.Resolve(doc.Kind, d.cfg.Format)
	if err != nil {
		return nil, err
	}

	switch strategy {
	case format.StrategyJSON:
		return d.decodeJSON(doc)
	case format.StrategyXML:
		return d.decodeXML(doc)
	case format.StrategyDelimited:
		return d.decodeDelimited(doc)
	case format.StrategyBinary:
		return d.decodeRaw(doc, d.cfg.PayloadField, types.NewBlobValue(doc.Content))
	case format.StrategyText:
		if !utf8.Valid(doc.Content) {
			return nil, errs.NewParseError("", errors.New("content is not valid UTF-8"))
		}
		return d.decodeRaw(doc, d.cfg.PayloadField, types.NewTextValue(string(doc.Content)))
	}

	return nil, errors.AssertionFailedf("unknown strategy %s", strategy)
}

// decodeRaw returns a single record holding the whole content in the
// payload field.
func (d *Decoder) decodeRaw(doc *document.Document, payloadField string, v types.Value) ([]*record.Record, error) {
	if payloadField == "" {
		return nil, errs.NewConfigurationError("payloadField", "must be set to read %s documents", doc.Kind)
	}

	f, ok := d.cfg.Schema.Field(payloadField)
	if !ok {
		return nil, errs.NewSchemaMismatchError(payloadField, "payload field is not in the schema")
	}

	v, err := record.Convert(f, v)
	if err != nil {
		return nil, errs.NewSchemaMismatchError(payloadField, "%v", err)
	}
	if err := d.builder.Set(payloadField, v); err != nil {
		return nil, err
	}

	r, err := d.build(doc)
	if err != nil {
		return nil, err
	}

	return []*record.Record{r}, nil
}

// build sets the file name field and builds the record.
func (d *Decoder) build(doc *document.Document) (*record.Record, error) {
	if d.cfg.FileNameField != "" {
		err := d.builder.Set(d.cfg.FileNameField, types.NewTextValue(doc.FileName()))
		if err != nil {
			d.builder.Reset()
			return nil, err
		}
	}

	return d.builder.Build()
}

func (d *Decoder) decodeJSON(doc *document.Document) ([]*record.Record, error) {
	if !json.Valid(doc.Content) {
		return nil, errs.NewParseError("", errors.New("invalid json"))
	}

	v, err := object.ParseJSON(doc.Content)
	if err != nil {
		return nil, errs.NewParseError("", err)
	}

	switch v.Type() {
	case types.TypeArray:
		return d.readArray(doc, types.AsArray(v))
	case types.TypeObject:
		r, err := d.readObject(doc, types.AsObject(v))
		if err != nil {
			return nil, err
		}
		return []*record.Record{r}, nil
	}

	return nil, errs.NewParseError("", errors.Errorf("expected a json object or array, got %s", v.Type()))
}

// readArray reads one record per element of a.
func (d *Decoder) readArray(doc *document.Document, a types.Array) ([]*record.Record, error) {
	records := make([]*record.Record, 0, a.Len())

	err := a.Iterate(func(i int, v types.Value) error {
		if v.Type() != types.TypeObject {
			return errs.NewParseError("", errors.Errorf("element %d: expected an object, got %s", i, v.Type()))
		}

		r, err := d.readObject(doc, types.AsObject(v))
		if err != nil {
			return errors.Wrapf(err, "element %d", i)
		}

		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (d *Decoder) readObject(doc *document.Document, o types.Object) (*record.Record, error) {
	if doc.Kind == format.KindXML {
		o = d.emptyElements(o)
	}

	err := record.ReadObject(d.builder, d.modified, o)
	if err != nil {
		d.builder.Reset()
		return nil, err
	}

	return d.build(doc)
}

// emptyElements reads empty xml elements as empty values on non nullable
// text and blob fields. Xml writes an empty string and an empty array the
// same way as a null.
func (d *Decoder) emptyElements(o types.Object) types.Object {
	var fb *object.FieldBuffer
	for _, f := range d.modified.Fields {
		if f.Nullable || (f.Type != types.TypeBlob && f.Type != types.TypeText) {
			continue
		}

		v, err := o.GetByField(f.Name)
		if err != nil || !types.IsNull(v) {
			continue
		}

		if fb == nil {
			fb = object.NewFieldBuffer()
			if err := fb.ScanObject(o); err != nil {
				return o
			}
		}

		var empty types.Value = types.NewTextValue("")
		if f.Type == types.TypeBlob {
			empty = types.NewArrayValue(object.NewValueBuffer())
		}
		fb.Set(f.Name, empty)
	}

	if fb == nil {
		return o
	}
	return fb
}

func (d *Decoder) decodeXML(doc *document.Document) ([]*record.Record, error) {
	tree, err := xmltree.Decode(doc.Content)
	if err != nil {
		return nil, errs.NewParseError("", err)
	}

	return d.unwrap(doc, tree)
}

// unwrap peels the single key wrappers of an xml tree until it finds the
// records:
//   - no keys: no records
//   - several keys: the object is a record
//   - one key holding an array with objects: one record per element
//   - one key holding an object: unwrap that object
//   - one key holding null: the object is a record if the key is a field,
//     otherwise it is an empty wrapper and there are no records
//   - one key holding anything else, including an array of values such as
//     the bytes of a blob: the object is a record
//
// Each step goes one level deeper, so the walk ends.
func (d *Decoder) unwrap(doc *document.Document, o types.Object) ([]*record.Record, error) {
	switch o.Len() {
	case 0:
		return []*record.Record{}, nil
	case 1:
	default:
		return d.readOne(doc, o)
	}

	var (
		key   string
		inner types.Value
	)
	err := o.Iterate(func(k string, v types.Value) error {
		key, inner = k, v
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch inner.Type() {
	case types.TypeArray:
		if hasObject(types.AsArray(inner)) {
			return d.readArray(doc, types.AsArray(inner))
		}
	case types.TypeObject:
		return d.unwrap(doc, types.AsObject(inner))
	case types.TypeNull:
		if _, ok := d.modified.Field(key); !ok {
			return []*record.Record{}, nil
		}
	}

	return d.readOne(doc, o)
}

func hasObject(a types.Array) bool {
	var found bool
	_ = a.Iterate(func(_ int, v types.Value) error {
		if v.Type() == types.TypeObject {
			found = true
		}
		return nil
	})
	return found
}

func (d *Decoder) readOne(doc *document.Document, o types.Object) ([]*record.Record, error) {
	r, err := d.readObject(doc, o)
	if err != nil {
		return nil, err
	}

	return []*record.Record{r}, nil
}

// decodeDelimited reads one record per non empty line. The first invalid
// line fails the whole document.
func (d *Decoder) decodeDelimited(doc *document.Document) ([]*record.Record, error) {
	if d.cfg.Delimiter == "" {
		return nil, errs.NewConfigurationError("delimiter", "must be set to read %s documents", doc.Kind)
	}
	if !utf8.Valid(doc.Content) {
		return nil, errs.NewParseError("", errors.New("content is not valid UTF-8"))
	}

	var records []*record.Record

	lines := bytes.Split(doc.Content, []byte{'\n'})
	for i, line := range lines {
		l := strings.TrimSuffix(string(line), "\r")
		if l == "" {
			continue
		}

		err := record.ParseDelimited(d.builder, d.modified, l, d.cfg.Delimiter)
		if err != nil {
			d.builder.Reset()
			return nil, errs.WithLine(err, i+1)
		}

		r, err := d.build(doc)
		if err != nil {
			return nil, errs.WithLine(err, i+1)
		}

		records = append(records, r)
	}

	return records, nil
}
