package dbutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaisql/docbridge/cmd/docbridge/dbutil"
	"github.com/chaisql/docbridge/internal/docstore"
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/testutil"
	"github.com/chaisql/docbridge/internal/types"
	"github.com/stretchr/testify/require"
)

var sc = schema.MustNew("output",
	schema.Field{Name: "name", Type: types.TypeText},
	schema.Field{Name: "n", Type: types.TypeInteger, Nullable: true},
)

func TestReadRecords(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		want  []*record.Record
		fails bool
	}{
		{"single object", `{"name": "a", "n": 1}`, []*record.Record{testutil.BuildRecord(t, sc, "a", int32(1))}, false},
		{"stream", `{"name": "a"} {"name": "b", "n": 2}`, []*record.Record{
			testutil.BuildRecord(t, sc, "a", nil),
			testutil.BuildRecord(t, sc, "b", int32(2)),
		}, false},
		{"array", "\n [{\"name\": \"a\", \"extra\": true}, {\"name\": \"b\"}]", []*record.Record{
			testutil.BuildRecord(t, sc, "a", nil),
			testutil.BuildRecord(t, sc, "b", nil),
		}, false},
		{"empty input", "  ", nil, false},
		{"empty array", "[]", nil, false},
		{"non closed json array", `[{"name":"a"}`, nil, true},
		{"non closed json stream", `{"name":"a"`, nil, true},
		{"scalar", `1`, nil, true},
		{"missing field", `{"n": 1}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dbutil.ReadRecords(sc, strings.NewReader(tt.data))
			if tt.fails {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			testutil.RequireRecordsEqual(t, tt.want, got)
		})
	}

	t.Run("conversion error", func(t *testing.T) {
		_, err := dbutil.ReadRecords(sc, strings.NewReader(`[{"name": "a"}, {"name": "b", "n": "x"}]`))
		require.True(t, errs.IsParse(err), "got %v", err)
		require.Contains(t, err.Error(), "object 1")
	})
}

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"a":1}`,
		"b.xml":  `<a>1</a>`,
		"c.csv":  "1,2",
		"d.bin":  "\x00\x01",
	}
	var names []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		names = append(names, p)
	}

	s, err := dbutil.OpenStore("", nil)
	require.NoError(t, err)
	defer s.Close()

	paths, err := dbutil.ImportFiles(s, "in", names)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	kinds := map[string]format.ContentKind{
		"/in/a.json": format.KindJSON,
		"/in/b.xml":  format.KindXML,
		"/in/c.csv":  format.KindText,
		"/in/d.bin":  format.KindBinary,
	}
	for p, kind := range kinds {
		doc, err := s.Get(p)
		require.NoError(t, err)
		require.Equal(t, kind, doc.Kind, p)
		require.Equal(t, files[filepath.Base(p)], string(doc.Content))
	}

	var buf bytes.Buffer
	require.NoError(t, dbutil.WriteDocument(&buf, s, "/in/b.xml"))
	require.Equal(t, "<a>1</a>", buf.String())

	require.ErrorIs(t, dbutil.WriteDocument(&buf, s, "/in/nope"), docstore.ErrDocumentNotFound)

	t.Run("missing file", func(t *testing.T) {
		_, err := dbutil.ImportFiles(s, "/in", []string{filepath.Join(dir, "nope.json")})
		require.Error(t, err)
	})
}

func TestStorePath(t *testing.T) {
	require.Equal(t, "/in/a.json", dbutil.StorePath("in", "a.json"))
	require.Equal(t, "/in/a.json", dbutil.StorePath("/in/", "a.json"))
	require.Equal(t, "/a.json", dbutil.StorePath("", "a.json"))
}
