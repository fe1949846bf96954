package errs_test

import (
	"testing"

	"github.com/chaisql/docbridge/internal/errs"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"format mismatch", errs.NewFormatMismatchError("XML", "BINARY"), "type 'XML' from config is not compatible with type 'BINARY' from document"},
		{"configuration", errs.NewConfigurationError("delimiter", "must be set for format %s", "DELIMITED"), `invalid configuration for "delimiter": must be set for format DELIMITED`},
		{"schema mismatch", errs.NewSchemaMismatchError("age", "expected %s", "integer"), `schema mismatch on field "age": expected integer`},
		{"parse", errs.NewParseError("a/b.json", errors.New("boom")), "cannot parse a/b.json: boom"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.EqualError(t, test.err, test.want)
		})
	}
}

func TestIs(t *testing.T) {
	wrapped := errors.Wrap(errs.NewFormatMismatchError("XML", "BINARY"), "decode")
	require.True(t, errs.IsFormatMismatch(wrapped))
	require.False(t, errs.IsParse(wrapped))

	var e *errs.FormatMismatchError
	require.True(t, errors.As(wrapped, &e))
	require.Equal(t, "XML", e.Format)
	require.Equal(t, "BINARY", e.Kind)

	require.True(t, errs.IsConfiguration(errs.NewConfigurationError("", "bad")))
	require.True(t, errs.IsSchemaMismatch(errs.NewSchemaMismatchError("a", "bad")))
}

func TestWithLine(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		err := errs.WithPath(errs.WithLine(errors.New("bad value"), 3), "in.txt")
		require.True(t, errs.IsParse(err))
		require.EqualError(t, err, "cannot parse in.txt at line 3: bad value")
	})

	t.Run("parse error keeps its line", func(t *testing.T) {
		err := errs.WithLine(&errs.ParseError{Line: 1, Err: errors.New("x")}, 3)
		var pe *errs.ParseError
		require.True(t, errors.As(err, &pe))
		require.Equal(t, 1, pe.Line)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		err := errs.WithLine(errs.NewSchemaMismatchError("a", "bad"), 2)
		require.True(t, errs.IsSchemaMismatch(err))
		require.False(t, errs.IsParse(err))
		require.Contains(t, err.Error(), "line 2")
	})
}
