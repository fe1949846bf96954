package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v2"
)

// NewVersionCommand returns a cli.Command for "docbridge version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows docbridge version",
		Action: func(c *cli.Context) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Fprintln(c.App.Writer, "version not available")
				return nil
			}

			fmt.Fprintf(c.App.Writer, "docbridge %s %s\n", info.Main.Version, info.GoVersion)
			return nil
		},
	}
}
