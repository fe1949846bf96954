package dbutil

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/cockroachdb/errors"
)

// ReadRecords reads json objects from r and builds records of sc.
// The reader can be either a stream of json objects or an array of objects.
func ReadRecords(sc *schema.Schema, r io.Reader) ([]*record.Record, error) {
	b := record.NewBuilder(sc)
	var records []*record.Record

	add := func(fb *object.FieldBuffer) error {
		if err := record.ReadObject(b, sc, fb); err != nil {
			b.Reset()
			return errors.Wrapf(err, "object %d", len(records))
		}

		rec, err := b.Build()
		if err != nil {
			return errors.Wrapf(err, "object %d", len(records))
		}

		records = append(records, rec)
		return nil
	}

	rd := bufio.NewReader(r)

	// read first non-white space byte to determine
	// whether we are reading from a json stream or
	// an array of json objects.
	c, err := readByteIgnoreWhitespace(rd)
	if errors.Is(err, io.EOF) {
		return records, nil
	}
	if err != nil {
		return nil, err
	}
	if err := rd.UnreadByte(); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(rd)

	switch c {
	case '{': // json stream
		for {
			var fb object.FieldBuffer
			err := dec.Decode(&fb)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}

			if err := add(&fb); err != nil {
				return nil, err
			}
		}

	case '[': // array of json objects
		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		for dec.More() {
			var fb object.FieldBuffer
			if err := dec.Decode(&fb); err != nil {
				return nil, err
			}

			if err := add(&fb); err != nil {
				return nil, err
			}
		}

		t, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := t.(json.Delim); !ok || d != ']' {
			return nil, errors.Errorf("found %v, but expected ']'", t)
		}

	default:
		return nil, errors.Errorf("found %q, but expected '{' or '['", c)
	}

	return records, nil
}

func readByteIgnoreWhitespace(r *bufio.Reader) (byte, error) {
	var c byte
	var err error

	for {
		c, err = r.ReadByte()
		if err != nil {
			return c, err
		}

		if c != '\n' && c != '\r' && c != ' ' && c != '\t' {
			break
		}
	}

	return c, nil
}
