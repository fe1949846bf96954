package config

import (
	"github.com/chaisql/docbridge/internal/encoder"
	"github.com/chaisql/docbridge/internal/format"
	"github.com/chaisql/docbridge/internal/schema"
)

// SinkConfig configures how records are written.
type SinkConfig struct {
	// Format: json, xml or delimited
	Format string `mapstructure:"format"`
	// Delimiter of the delimited format
	Delimiter string `mapstructure:"delimiter"`
	// Schema of the written records, in json
	Schema string `mapstructure:"schema"`
	// Path under which documents are written
	Path string `mapstructure:"path"`
	// FileNameField names the documents, random names are used when empty
	FileNameField string `mapstructure:"file_name_field"`
	// BatchSize is the number of documents committed at once
	BatchSize int `mapstructure:"batch_size"`
}

// Sink is a validated sink configuration.
type Sink struct {
	Schema    *schema.Schema
	Encoder   *encoder.Encoder
	Paths     *encoder.PathBuilder
	BatchSize int
}

// Validate checks every setting and reports all failures at once.
func (c *SinkConfig) Validate() error {
	_, err := c.Build()
	return err
}

// Build validates the settings and returns the schema, encoder and path
// builder of the sink.
func (c *SinkConfig) Build() (*Sink, error) {
	var fs failures

	f, err := format.ParseFormat(c.Format)
	if err != nil {
		fs.add("format", "unknown format for value: %s", c.Format)
	} else if _, ok := f.ContentKind(); !ok {
		fs.add("format", "unsupported format %s, must be one of JSON, XML or DELIMITED", f)
	} else if f == format.Delimited && c.Delimiter == "" {
		fs.add("delimiter", "must be set for format %s", f)
	}

	sc, err := parseSchema(c.Schema)
	if err != nil {
		fs.add("schema", "invalid schema: %v", err)
	} else if c.FileNameField != "" {
		if _, ok := sc.Field(c.FileNameField); !ok {
			fs.add("file_name_field", "schema must contain file name field '%s'", c.FileNameField)
		}
	}

	if c.BatchSize <= 0 {
		fs.add("batch_size", "must be positive, got %d", c.BatchSize)
	}

	if err := fs.err(); err != nil {
		return nil, err
	}

	enc, err := encoder.New(f, c.Delimiter)
	if err != nil {
		return nil, err
	}
	paths, err := encoder.NewPathBuilder(c.Path, c.FileNameField, f)
	if err != nil {
		return nil, err
	}

	return &Sink{
		Schema:    sc,
		Encoder:   enc,
		Paths:     paths,
		BatchSize: c.BatchSize,
	}, nil
}
