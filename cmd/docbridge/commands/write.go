package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/chaisql/docbridge/cmd/docbridge/dbutil"
	"github.com/chaisql/docbridge/internal/pipeline"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// NewWriteCommand returns a cli.Command for "docbridge write".
func NewWriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Encode records and store them as documents",
		UsageText: "docbridge write [options] [json...]",
		Description: `
The write command builds records of the sink schema from json objects, encodes them
in the sink format and stores them under the sink path.

Records can be passed as arguments:

$ docbridge write --db ./data '{"id": 1}' '[{"id": 2}, {"id": 3}]'

or as a stream of objects or an array of objects on the standard input:

$ cat records.json | docbridge write --db ./data --config docbridge.yaml`,
		Flags: []cli.Flag{
			configFlag,
			dbFlag,
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			sink, err := e.cfg.Sink.Build()
			if err != nil {
				return err
			}

			var records []*record.Record
			if dbutil.CanReadFromStandardInput() {
				records, err = dbutil.ReadRecords(sink.Schema, os.Stdin)
				if err != nil {
					return err
				}
			} else {
				if c.Args().Len() == 0 {
					return errors.New("no record to write")
				}

				for _, arg := range c.Args().Slice() {
					recs, err := dbutil.ReadRecords(sink.Schema, strings.NewReader(arg))
					if err != nil {
						return err
					}
					records = append(records, recs...)
				}
			}

			w := pipeline.Writer{
				Store:     e.store,
				Encoder:   sink.Encoder,
				Paths:     sink.Paths,
				BatchSize: sink.BatchSize,
				Logger:    e.logger,
			}

			n, err := w.Write(c.Context, records)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%d documents written\n", n)
			return nil
		},
	}
}
