package commands

import (
	"github.com/chaisql/docbridge/cmd/docbridge/dbutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// NewCatCommand returns a cli.Command for "docbridge cat".
func NewCatCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "Print a stored document",
		UsageText: "docbridge cat [options] path",
		Flags: []cli.Flag{
			configFlag,
			dbFlag,
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return errors.New("expected exactly one path")
			}

			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			return dbutil.WriteDocument(c.App.Writer, e.store, c.Args().First())
		},
	}
}
