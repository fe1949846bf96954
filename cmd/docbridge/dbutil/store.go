package dbutil

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chaisql/docbridge/internal/docstore"
	"github.com/chaisql/docbridge/internal/document"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// OpenStore is a helper function that takes raw unvalidated parameters and opens a store.
func OpenStore(storePath string, logger *zap.Logger) (*docstore.Store, error) {
	if storePath == "" {
		storePath = ":memory:"
	}

	return docstore.Open(storePath, logger)
}

// ImportFiles stores each file under prefix, keeping its base name.
// The content kind is guessed from the extension. It returns the stored paths.
func ImportFiles(s *docstore.Store, prefix string, files []string) ([]string, error) {
	b := s.NewBatch()
	defer b.Close()

	paths := make([]string, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", f)
		}

		p := StorePath(prefix, filepath.Base(f))
		err = b.Put(&document.Document{
			Path:    p,
			Kind:    format.KindFromPath(f),
			Content: content,
		})
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	if err := b.Commit(); err != nil {
		return nil, err
	}

	return paths, nil
}

// StorePath joins prefix and name into an absolute store path.
func StorePath(prefix, name string) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return path.Join(prefix, name)
}

// WriteDocument writes the content of the document stored at p to w.
func WriteDocument(w io.Writer, s *docstore.Store, p string) error {
	doc, err := s.Get(p)
	if err != nil {
		return err
	}

	_, err = w.Write(doc.Content)
	return err
}
