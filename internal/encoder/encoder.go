// Package encoder turns typed records into text payloads.
package encoder

import (
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/xmltree"
	"github.com/cockroachdb/errors"
)

// Payload is the serialized form of a record.
type Payload struct {
	Text string
}

// An Encoder serializes records in one format.
// It holds no state and is safe for concurrent use.
type Encoder struct {
	format    format.Format
	delimiter string
}

// New returns an encoder. Only JSON, XML and DELIMITED can be written.
func New(f format.Format, delimiter string) (*Encoder, error) {
	switch f {
	case format.JSON, format.XML:
	case format.Delimited:
		if delimiter == "" {
			return nil, errs.NewConfigurationError("delimiter", "must be set for format %s", f)
		}
	default:
		return nil, errs.NewConfigurationError("format", "unsupported format %s", f)
	}

	return &Encoder{format: f, delimiter: delimiter}, nil
}

// Format returns the format of the payloads.
func (e *Encoder) Format() format.Format {
	return e.format
}

// Encode the record.
func (e *Encoder) Encode(r *record.Record) (Payload, error) {
	var (
		text string
		err  error
	)

	switch e.format {
	case format.JSON:
		var data []byte
		data, err = r.MarshalJSON()
		text = string(data)
	case format.Delimited:
		text, err = record.FormatDelimited(r, e.delimiter)
	case format.XML:
		var data []byte
		data, err = xmltree.Encode(record.ToObject(r))
		text = "<root>" + string(data) + "</root>"
	default:
		return Payload{}, errs.NewConfigurationError("format", "unsupported format %s", e.format)
	}
	if err != nil {
		return Payload{}, errors.Wrapf(err, "cannot encode record as %s", e.format)
	}

	return Payload{Text: text}, nil
}

// EncodeTo encodes the record and returns the destination built by pb.
func (e *Encoder) EncodeTo(r *record.Record, pb *PathBuilder) (Payload, Destination, error) {
	dst, err := pb.Destination(r)
	if err != nil {
		return Payload{}, Destination{}, err
	}

	p, err := e.Encode(r)
	if err != nil {
		return Payload{}, Destination{}, err
	}

	return p, dst, nil
}
