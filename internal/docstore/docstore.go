// Package docstore stores documents in pebble, keyed by their path.
package docstore

import (
	"github.com/chaisql/docbridge/internal/document"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/lib/pebbleutil"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

// ErrDocumentNotFound is returned when no document is stored at a path.
var ErrDocumentNotFound = errors.New("document not found")

// Store is a document store backed by pebble.
// Values are made of one byte holding the content kind, followed by the content.
type Store struct {
	db     *pebble.DB
	logger *zap.Logger
}

// Open the store located at path. If path is ":memory:",
// the store is kept in memory.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts pebble.Options
	opts.Logger = pebbleutil.NewZapLogger(logger)

	if path == ":memory:" {
		opts.FS = vfs.NewMem()
		path = ""
	}

	db, err := pebble.Open(path, &opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open store %q", path)
	}

	logger.Debug("store opened", zap.String("path", path))

	return &Store{db: db, logger: logger}, nil
}

// Close the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores the document at its path. If a document already exists, it is replaced.
func (s *Store) Put(doc *document.Document) error {
	k, v, err := encode(doc)
	if err != nil {
		return err
	}

	return s.db.Set(k, v, pebble.Sync)
}

// Get returns the document stored at path. If not found, returns ErrDocumentNotFound.
func (s *Store) Get(path string) (*document.Document, error) {
	value, closer, err := s.db.Get([]byte(path))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrDocumentNotFound, "%q", path)
		}

		return nil, err
	}
	defer closer.Close()

	return decode(path, value)
}

// Delete the document stored at path. If not found, returns ErrDocumentNotFound.
func (s *Store) Delete(path string) error {
	_, err := s.Get(path)
	if err != nil {
		return err
	}

	return s.db.Delete([]byte(path), pebble.Sync)
}

// Iterate calls fn for every document whose path starts with prefix, in path order.
// If fn returns an error, the iteration stops and returns it.
func (s *Store) Iterate(prefix string, fn func(doc *document.Document) error) error {
	var opts pebble.IterOptions
	if prefix != "" {
		opts.LowerBound = []byte(prefix)
		opts.UpperBound = successor([]byte(prefix))
	}

	it := s.db.NewIter(&opts)

	for it.First(); it.Valid(); it.Next() {
		doc, err := decode(string(it.Key()), it.Value())
		if err != nil {
			_ = it.Close()
			return err
		}

		if err := fn(doc); err != nil {
			_ = it.Close()
			return err
		}
	}

	return it.Close()
}

// NewBatch returns a batch of writes applied atomically on Commit.
func (s *Store) NewBatch() *Batch {
	return &Batch{store: s, batch: s.db.NewBatch()}
}

// A Batch groups document writes.
type Batch struct {
	store *Store
	batch *pebble.Batch
}

// Put adds the document to the batch.
func (b *Batch) Put(doc *document.Document) error {
	k, v, err := encode(doc)
	if err != nil {
		return err
	}

	return b.batch.Set(k, v, nil)
}

// Len returns the number of writes in the batch.
func (b *Batch) Len() int {
	return int(b.batch.Count())
}

// Commit applies the batch and resets it so it can be reused.
func (b *Batch) Commit() error {
	if b.batch.Count() == 0 {
		return nil
	}

	n := b.batch.Count()
	err := b.batch.Commit(pebble.Sync)
	if err != nil {
		return errors.Wrap(err, "commit batch")
	}

	b.store.logger.Debug("batch committed", zap.Uint32("documents", n))
	b.batch.Reset()
	return nil
}

// Close releases the batch. Uncommitted writes are discarded.
func (b *Batch) Close() error {
	return b.batch.Close()
}

func encode(doc *document.Document) ([]byte, []byte, error) {
	if doc.Path == "" {
		return nil, nil, errors.New("cannot store a document without path")
	}
	if !validKind(doc.Kind) {
		return nil, nil, errors.Errorf("cannot store document %q: invalid content kind %d", doc.Path, doc.Kind)
	}

	v := make([]byte, 0, len(doc.Content)+1)
	v = append(v, byte(doc.Kind))
	v = append(v, doc.Content...)
	return []byte(doc.Path), v, nil
}

func decode(path string, v []byte) (*document.Document, error) {
	if len(v) == 0 || !validKind(format.ContentKind(v[0])) {
		return nil, errors.Errorf("corrupted document %q", path)
	}

	content := make([]byte, len(v)-1)
	copy(content, v[1:])

	return &document.Document{
		Path:    path,
		Kind:    format.ContentKind(v[0]),
		Content: content,
	}, nil
}

func validKind(k format.ContentKind) bool {
	switch k {
	case format.KindJSON, format.KindXML, format.KindText, format.KindBinary:
		return true
	}

	return false
}

// successor returns the smallest key greater than every key starting with prefix,
// or nil if there is none.
func successor(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
