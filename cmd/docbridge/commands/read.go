package commands

import (
	"bufio"

	"github.com/chaisql/docbridge/internal/pipeline"
	"github.com/chaisql/docbridge/internal/record"
	"github.com/urfave/cli/v2"
)

// NewReadCommand returns a cli.Command for "docbridge read".
func NewReadCommand() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Decode stored documents into records",
		UsageText: "docbridge read [options]",
		Description: `
The read command decodes every stored document under the prefix using the source
configuration and prints one json record per line.

$ docbridge read --db ./data --config docbridge.yaml --prefix /in/`,
		Flags: []cli.Flag{
			configFlag,
			dbFlag,
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "only read documents whose path starts with prefix, overrides source.prefix",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "number of documents decoded in parallel, overrides source.workers",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			src := e.cfg.Source
			if c.IsSet("prefix") {
				src.Prefix = c.String("prefix")
			}
			if c.IsSet("workers") {
				src.Workers = c.Int("workers")
			}

			dc, err := src.Decoder()
			if err != nil {
				return err
			}

			r := pipeline.Reader{
				Store:       e.store,
				Decoder:     dc,
				Workers:     src.Workers,
				SkipInvalid: src.SkipInvalid,
				Logger:      e.logger,
			}

			w := bufio.NewWriter(c.App.Writer)
			_, err = r.Run(c.Context, src.Prefix, func(rec *record.Record) error {
				data, err := rec.MarshalJSON()
				if err != nil {
					return err
				}
				if _, err := w.Write(data); err != nil {
					return err
				}
				return w.WriteByte('\n')
			})
			if err != nil {
				return err
			}

			return w.Flush()
		},
	}
}
