package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// NewApp creates the docbridge CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "docbridge"
	app.Usage = "Convert stored documents to typed records and back"
	app.EnableBashCompletion = true

	app.Commands = []*cli.Command{
		NewImportCommand(),
		NewReadCommand(),
		NewWriteCommand(),
		NewCatCommand(),
		NewVersionCommand(),
	}

	// inject cancelable context to all commands
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cancel()
		<-ch
	}()

	for i := range app.Commands {
		action := app.Commands[i].Action
		app.Commands[i].Action = func(c *cli.Context) error {
			c.Context = ctx
			return action(c)
		}
	}

	app.After = func(c *cli.Context) error {
		signal.Stop(ch)
		cancel()
		return nil
	}

	return app
}
