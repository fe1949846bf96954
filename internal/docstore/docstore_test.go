package docstore_test

import (
	"testing"

	"github.com/chaisql/docbridge/internal/docstore"
	"github.com/chaisql/docbridge/internal/document"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/testutil/assert"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func openStore(t testing.TB) *docstore.Store {
	t.Helper()

	s, err := docstore.Open(":memory:", nil)
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func paths(t *testing.T, s *docstore.Store, prefix string) []string {
	t.Helper()

	var got []string
	err := s.Iterate(prefix, func(doc *document.Document) error {
		got = append(got, doc.Path)
		return nil
	})
	assert.NoError(t, err)
	return got
}

func TestPutGet(t *testing.T) {
	s := openStore(t)

	doc := document.Document{Path: "/in/a.json", Kind: format.KindJSON, Content: []byte(`{"a":1}`)}
	assert.NoError(t, s.Put(&doc))

	got, err := s.Get("/in/a.json")
	assert.NoError(t, err)
	require.Equal(t, &doc, got)

	t.Run("replace", func(t *testing.T) {
		assert.NoError(t, s.Put(&document.Document{Path: "/in/a.json", Kind: format.KindText, Content: []byte("x")}))

		got, err := s.Get("/in/a.json")
		assert.NoError(t, err)
		require.Equal(t, format.KindText, got.Kind)
		require.Equal(t, []byte("x"), got.Content)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.NoError(t, s.Put(&document.Document{Path: "/in/empty", Kind: format.KindBinary}))

		got, err := s.Get("/in/empty")
		assert.NoError(t, err)
		require.Empty(t, got.Content)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get("/nope")
		require.True(t, errors.Is(err, docstore.ErrDocumentNotFound))
	})

	t.Run("invalid", func(t *testing.T) {
		require.Error(t, s.Put(&document.Document{Kind: format.KindJSON}))
		require.Error(t, s.Put(&document.Document{Path: "/x"}))
	})
}

func TestDelete(t *testing.T) {
	s := openStore(t)

	assert.NoError(t, s.Put(&document.Document{Path: "/a", Kind: format.KindText}))
	assert.NoError(t, s.Delete("/a"))

	_, err := s.Get("/a")
	assert.ErrorIs(t, err, docstore.ErrDocumentNotFound)
	assert.ErrorIs(t, s.Delete("/a"), docstore.ErrDocumentNotFound)
}

func TestIterate(t *testing.T) {
	s := openStore(t)

	for _, p := range []string{"/out/b.xml", "/in/b.json", "/in/a.json", "/inbox/c.txt", "/"} {
		assert.NoError(t, s.Put(&document.Document{Path: p, Kind: format.KindText}))
	}

	require.Equal(t, []string{"/", "/in/a.json", "/in/b.json", "/inbox/c.txt", "/out/b.xml"}, paths(t, s, ""))
	require.Equal(t, []string{"/in/a.json", "/in/b.json"}, paths(t, s, "/in/"))
	require.Equal(t, []string{"/in/a.json", "/in/b.json", "/inbox/c.txt"}, paths(t, s, "/in"))
	require.Empty(t, paths(t, s, "/tmp/"))

	t.Run("stop", func(t *testing.T) {
		stop := errors.New("stop")
		var n int
		err := s.Iterate("", func(doc *document.Document) error {
			n++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		require.Equal(t, 1, n)
	})
}

func TestBatch(t *testing.T) {
	s := openStore(t)

	b := s.NewBatch()
	defer b.Close()

	assert.NoError(t, b.Put(&document.Document{Path: "/out/1.json", Kind: format.KindJSON, Content: []byte("{}")}))
	assert.NoError(t, b.Put(&document.Document{Path: "/out/2.json", Kind: format.KindJSON, Content: []byte("{}")}))
	require.Equal(t, 2, b.Len())

	// nothing is visible before commit
	require.Empty(t, paths(t, s, "/out/"))

	assert.NoError(t, b.Commit())
	require.Equal(t, 0, b.Len())
	require.Equal(t, []string{"/out/1.json", "/out/2.json"}, paths(t, s, "/out/"))

	// the batch can be reused
	assert.NoError(t, b.Put(&document.Document{Path: "/out/3.json", Kind: format.KindJSON, Content: []byte("{}")}))
	assert.NoError(t, b.Commit())
	require.Len(t, paths(t, s, "/out/"), 3)

	assert.NoError(t, b.Commit())
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()

	s, err := docstore.Open(dir, nil)
	assert.NoError(t, err)
	assert.NoError(t, s.Put(&document.Document{Path: "/a.txt", Kind: format.KindText, Content: []byte("hello")}))
	assert.NoError(t, s.Close())

	s, err = docstore.Open(dir, nil)
	assert.NoError(t, err)
	defer s.Close()

	doc, err := s.Get("/a.txt")
	assert.NoError(t, err)
	require.Equal(t, "hello", string(doc.Content))
}
