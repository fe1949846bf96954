package commands

import (
	"fmt"

	"github.com/chaisql/docbridge/cmd/docbridge/dbutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewImportCommand returns a cli.Command for "docbridge import".
func NewImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Store files in the document store",
		UsageText: "docbridge import [options] file...",
		Description: `
The import command stores each file under the prefix, keeping its base name.
The content kind is guessed from the extension: .json, .xml, text for .txt, .csv, .tsv
and .psv, binary otherwise.

$ docbridge import --db ./data --prefix /in orders.json customers.csv`,
		Flags: []cli.Flag{
			configFlag,
			dbFlag,
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "path under which files are stored",
				Value:   "/in",
			},
		},
		Action: func(c *cli.Context) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return errors.New("no file to import")
			}

			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.Close()

			paths, err := dbutil.ImportFiles(e.store, c.String("prefix"), files)
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(c.App.Writer, p)
			}
			e.logger.Info("files imported", zap.Int("documents", len(paths)))
			return nil
		},
	}
}
