// Package document defines the stored documents read by the decoder.
package document

import (
	"strings"

	"github.com/chaisql/docbridge/internal/format"
)

// A Document is a stored payload along with the kind reported by its store.
type Document struct {
	Content []byte
	Kind    format.ContentKind
	// Path is the store path, e.g. "/in/a.json".
	Path string
}

// FileName returns the last segment of the path.
func (d *Document) FileName() string {
	if i := strings.LastIndexByte(d.Path, '/'); i >= 0 {
		return d.Path[i+1:]
	}

	return d.Path
}
