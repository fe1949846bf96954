// Package xmltree converts XML documents to ordered object trees and back.
//
// Element names become keys. Repeated sibling elements become an array
// stored at the position of the first one. Attributes become keys of the
// element object. Text is kept as a trimmed string, next to child elements
// or attributes it is stored under the "content" key. Empty elements are
// null.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/chaisql/docbridge/internal/object"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/cockroachdb/errors"
)

// ContentKey holds the text of elements that also have children or attributes.
const ContentKey = "content"

type element struct {
	name   string
	fields *object.FieldBuffer
	text   strings.Builder
}

func newElement(name string) *element {
	return &element{name: name, fields: object.NewFieldBuffer()}
}

func (e *element) add(name string, v types.Value) {
	cur, err := e.fields.GetByField(name)
	if err != nil {
		e.fields.Add(name, v)
		return
	}

	// xml values are never arrays, so an array is a previous merge
	if cur.Type() == types.TypeArray {
		types.AsArray(cur).(*object.ValueBuffer).Append(v)
		return
	}

	e.fields.Set(name, types.NewArrayValue(object.NewValueBuffer(cur, v)))
}

func (e *element) value() types.Value {
	text := strings.TrimSpace(e.text.String())
	if e.fields.Len() == 0 {
		if text == "" {
			return types.NewNullValue()
		}
		return types.NewTextValue(text)
	}

	if text != "" {
		e.add(ContentKey, types.NewTextValue(text))
	}
	return types.NewObjectValue(e.fields)
}

// Decode parses an XML document into an object whose keys are the top
// level elements. An empty document returns an empty object.
func Decode(data []byte) (*object.FieldBuffer, error) {
	d := xml.NewDecoder(bytes.NewReader(data))

	doc := newElement("")
	stack := []*element{doc}

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "invalid xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := newElement(t.Name.Local)
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.add(a.Name.Local, types.NewTextValue(a.Value))
			}
			stack = append(stack, el)
		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].add(el.name, el.value())
		case xml.CharData:
			if len(stack) > 1 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if len(stack) != 1 {
		return nil, errors.Newf("invalid xml: unclosed element %q", stack[len(stack)-1].name)
	}

	return doc.fields, nil
}

// Encode writes the fields of o as a sequence of XML elements.
// Nulls and empty arrays are empty elements, other arrays repeated elements.
func Encode(o types.Object) ([]byte, error) {
	var buf bytes.Buffer

	err := encodeObject(&buf, o)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeObject(buf *bytes.Buffer, o types.Object) error {
	return o.Iterate(func(field string, v types.Value) error {
		return encodeValue(buf, field, v)
	})
}

func encodeValue(buf *bytes.Buffer, name string, v types.Value) error {
	switch v.Type() {
	case types.TypeNull:
		buf.WriteByte('<')
		buf.WriteString(name)
		buf.WriteString("/>")
		return nil
	case types.TypeArray:
		a := types.AsArray(v)
		if a.Len() == 0 {
			buf.WriteByte('<')
			buf.WriteString(name)
			buf.WriteString("/>")
			return nil
		}
		return a.Iterate(func(_ int, v types.Value) error {
			return encodeValue(buf, name, v)
		})
	}

	buf.WriteByte('<')
	buf.WriteString(name)
	buf.WriteByte('>')

	switch v.Type() {
	case types.TypeObject:
		if err := encodeObject(buf, types.AsObject(v)); err != nil {
			return err
		}
	default:
		tv, err := v.CastAs(types.TypeText)
		if err != nil {
			return errors.Wrapf(err, "field %q", name)
		}
		if err := xml.EscapeText(buf, []byte(types.AsString(tv))); err != nil {
			return err
		}
	}

	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
	return nil
}
