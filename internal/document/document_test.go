package document_test

import (
	"testing"

	"github.com/chaisql/docbridge/internal/document"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"/in/a.json": "a.json",
		"a.json":     "a.json",
		"/in/":       "",
		"":           "",
	}

	for p, want := range tests {
		d := document.Document{Path: p}
		require.Equal(t, want, d.FileName(), p)
	}
}
