// Package errs defines the errors returned by the decoder and the encoder.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigurationError is returned when a source or sink setting is invalid.
// Msg may hold several lines when more than one setting failed.
type ConfigurationError struct {
	Property string
	Msg      string
}

func NewConfigurationError(property, format string, args ...any) error {
	return errors.WithStack(&ConfigurationError{
		Property: property,
		Msg:      fmt.Sprintf(format, args...),
	})
}

func (e *ConfigurationError) Error() string {
	if e.Property == "" {
		return "invalid configuration: " + e.Msg
	}

	return fmt.Sprintf("invalid configuration for %q: %s", e.Property, e.Msg)
}

// FormatMismatchError is returned when the configured format can't read the
// content kind of a document.
type FormatMismatchError struct {
	Format string
	Kind   string
}

func NewFormatMismatchError(format, kind string) error {
	return errors.WithStack(&FormatMismatchError{
		Format: format,
		Kind:   kind,
	})
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("type '%s' from config is not compatible with type '%s' from document", e.Format, e.Kind)
}

// ParseError is returned when a document can't be parsed.
// Line is 1-based and zero when unknown.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func NewParseError(path string, err error) error {
	return errors.WithStack(&ParseError{
		Path: path,
		Err:  err,
	})
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("cannot parse %s at line %d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("cannot parse line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("cannot parse document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError is returned when a value doesn't conform to its field.
type SchemaMismatchError struct {
	Field string
	Msg   string
}

func NewSchemaMismatchError(field, format string, args ...any) error {
	return errors.WithStack(&SchemaMismatchError{
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	})
}

func (e *SchemaMismatchError) Error() string {
	if e.Field == "" {
		return "schema mismatch: " + e.Msg
	}

	return fmt.Sprintf("schema mismatch on field %q: %s", e.Field, e.Msg)
}

func IsConfiguration(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

func IsFormatMismatch(err error) bool {
	var e *FormatMismatchError
	return errors.As(err, &e)
}

func IsParse(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func IsSchemaMismatch(err error) bool {
	var e *SchemaMismatchError
	return errors.As(err, &e)
}

// WithPath sets the path of the parse error found in err, if any.
func WithPath(err error, path string) error {
	var e *ParseError
	if errors.As(err, &e) && e.Path == "" {
		e.Path = path
	}

	return err
}

// WithLine sets the line number of the parse error found in err, or turns err
// into a parse error at that line. Schema mismatches are only annotated.
func WithLine(err error, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Line == 0 {
			pe.Line = line
		}
		return err
	}

	if IsSchemaMismatch(err) {
		return errors.Wrapf(err, "line %d", line)
	}

	return errors.WithStack(&ParseError{Line: line, Err: err})
}
