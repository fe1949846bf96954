package commands

import (
	"github.com/chaisql/docbridge/cmd/docbridge/dbutil"
	"github.com/chaisql/docbridge/internal/config"
	"github.com/chaisql/docbridge/internal/docstore"
	"github.com/chaisql/docbridge/internal/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path of the configuration file",
		EnvVars: []string{"DOCBRIDGE_CONFIG"},
	}
	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "path of the document store, overrides store.path",
	}
)

// env holds what a command needs to run.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *docstore.Store
}

// setup loads the configuration, builds the logger and opens the store.
func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if p := c.String(dbFlag.Name); p != "" {
		cfg.Store.Path = p
	}

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}

	s, err := dbutil.OpenStore(cfg.Store.Path, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, store: s}, nil
}

func (e *env) Close() error {
	err := e.store.Close()
	_ = e.logger.Sync()
	return err
}
