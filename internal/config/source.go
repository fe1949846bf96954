package config

import (
	"fmt"
	"strings"

	"github.com/chaisql/docbridge/internal/decoder"
	"github.com/chaisql/docbridge/internal/errs"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/schema"
	"github.com/chaisql/docbridge/internal/types"
)

// SourceConfig configures how stored documents are read.
type SourceConfig struct {
	// Format: auto, json, xml, delimited, text or blob
	Format string `mapstructure:"format"`
	// Delimiter of the delimited format
	Delimiter string `mapstructure:"delimiter"`
	// Schema of the records, in json. Empty means the default schema.
	Schema string `mapstructure:"schema"`
	// FileField receives the name of the document
	FileField string `mapstructure:"file_field"`
	// PayloadField receives the content of blob and text documents
	PayloadField string `mapstructure:"payload_field"`
	// Prefix of the paths of the documents to read
	Prefix string `mapstructure:"prefix"`
	// Workers decoding documents in parallel
	Workers int `mapstructure:"workers"`
	// SkipInvalid logs and skips documents that fail to decode
	SkipInvalid bool `mapstructure:"skip_invalid"`
}

// failures collects validation failures before returning them as one error.
type failures []string

func (f *failures) add(property, format string, args ...any) {
	*f = append(*f, property+": "+fmt.Sprintf(format, args...))
}

func (f failures) err() error {
	if len(f) == 0 {
		return nil
	}
	return errs.NewConfigurationError("", "%s", strings.Join(f, "; "))
}

func parseSchema(s string) (*schema.Schema, error) {
	if strings.TrimSpace(s) == "" {
		return schema.Default(), nil
	}
	return schema.Parse([]byte(s))
}

// Validate checks every setting and reports all failures at once.
func (c *SourceConfig) Validate() error {
	_, err := c.Decoder()
	return err
}

// Decoder validates the settings and returns the decoder configuration.
func (c *SourceConfig) Decoder() (decoder.Config, error) {
	var fs failures

	f, err := format.ParseFormat(c.Format)
	if err != nil {
		fs.add("format", "unknown format for value: %s", c.Format)
	}
	if f == format.Delimited && c.Delimiter == "" {
		fs.add("delimiter", "must be set for format %s", f)
	}

	sc, err := parseSchema(c.Schema)
	if err != nil {
		fs.add("schema", "invalid schema: %v", err)
		return decoder.Config{}, fs.err()
	}

	if c.FileField != "" {
		ff, ok := sc.Field(c.FileField)
		if !ok {
			fs.add("schema", "schema must contain file field '%s'", c.FileField)
		} else if ff.Type != types.TypeText {
			fs.add("file_field", "file field '%s' must have type string", c.FileField)
		}
	}

	if f != 0 && !sc.IsDefault() {
		c.validatePayload(&fs, sc, f)

		if f == format.Auto {
			for _, field := range sc.Fields {
				if field.Name != c.FileField && !field.Nullable {
					fs.add("schema", "field '%s' must be nullable for 'AUTO' format", field.Name)
				}
			}
		}
	}

	if err := fs.err(); err != nil {
		return decoder.Config{}, err
	}

	return decoder.Config{
		Schema:        sc,
		Format:        f,
		Delimiter:     c.Delimiter,
		FileNameField: c.FileField,
		PayloadField:  c.PayloadField,
	}, nil
}

// validatePayload checks the payload field: TEXT requires a string field,
// AUTO and BLOB a bytes field.
func (c *SourceConfig) validatePayload(fs *failures, sc *schema.Schema, f format.Format) {
	if c.PayloadField == "" {
		return
	}

	pf, ok := sc.Field(c.PayloadField)
	switch {
	case !ok:
		fs.add("schema", "schema must contain payload field '%s'", c.PayloadField)
	case f == format.Text && pf.Type != types.TypeText:
		fs.add("payload_field", "payload field '%s' must have type string", c.PayloadField)
	case (f == format.Auto || f == format.Blob) && pf.Type != types.TypeBlob:
		fs.add("payload_field", "payload field '%s' must have type bytes", c.PayloadField)
	}
}
