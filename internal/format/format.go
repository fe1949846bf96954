// Package format defines the configured formats, the content kinds of stored
// documents and the rules deciding which decoding strategy reads a document.
package format

import (
	"path"
	"strings"

	"github.com/chaisql/docbridge/internal/errs"
)

// Format is the format configured on a source or a sink.
type Format uint8

const (
	Auto Format = iota + 1
	JSON
	XML
	Delimited
	Text
	Blob
)

func (f Format) String() string {
	switch f {
	case Auto:
		return "AUTO"
	case JSON:
		return "JSON"
	case XML:
		return "XML"
	case Delimited:
		return "DELIMITED"
	case Text:
		return "TEXT"
	case Blob:
		return "BLOB"
	}

	return "UNKNOWN"
}

// ParseFormat returns the format with the given name, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AUTO":
		return Auto, nil
	case "JSON":
		return JSON, nil
	case "XML":
		return XML, nil
	case "DELIMITED":
		return Delimited, nil
	case "TEXT":
		return Text, nil
	case "BLOB":
		return Blob, nil
	}

	return 0, errs.NewConfigurationError("format", "unknown format for value: %s", s)
}

// Extension returns the file extension of payloads written in this format.
// Formats that can't be written have none.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case XML:
		return ".xml"
	case Delimited:
		return ".txt"
	}

	return ""
}

// ContentKind returns the kind of the documents written in this format.
func (f Format) ContentKind() (ContentKind, bool) {
	switch f {
	case JSON:
		return KindJSON, true
	case XML:
		return KindXML, true
	case Delimited:
		return KindText, true
	}

	return 0, false
}

// ContentKind is the kind of a stored document, as reported by the store.
type ContentKind uint8

const (
	KindJSON ContentKind = iota + 1
	KindXML
	KindText
	KindBinary
)

func (k ContentKind) String() string {
	switch k {
	case KindJSON:
		return "JSON"
	case KindXML:
		return "XML"
	case KindText:
		return "TEXT"
	case KindBinary:
		return "BINARY"
	}

	return "UNKNOWN"
}

// ParseContentKind returns the content kind with the given name, ignoring case.
func ParseContentKind(s string) (ContentKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JSON":
		return KindJSON, nil
	case "XML":
		return KindXML, nil
	case "TEXT":
		return KindText, nil
	case "BINARY":
		return KindBinary, nil
	}

	return 0, errs.NewConfigurationError("kind", "unknown content kind for value: %s", s)
}

// KindFromPath guesses the content kind of a file from its extension.
func KindFromPath(p string) ContentKind {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return KindJSON
	case ".xml":
		return KindXML
	case ".txt", ".csv", ".tsv", ".psv":
		return KindText
	}

	return KindBinary
}
