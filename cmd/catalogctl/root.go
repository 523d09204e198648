package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/config"
	"github.com/kailas-cloud/storecatalog/internal/db"
	"github.com/kailas-cloud/storecatalog/internal/db/driver"
	logpkg "github.com/kailas-cloud/storecatalog/internal/logger"
)

// app carries what subcommands share once the root pre-run has loaded the config.
type app struct {
	cfgFile  string
	env      string
	logLevel string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Store catalog operations tool",
		Long:          "catalogctl waits for the search backend, creates the catalog collections and seeds them from NDJSON files.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is config/<env>.yaml)")
	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "environment name (local, docker, prod)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newWaitCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the config and builds the logger. Commands that talk to the
// backend call it from their PreRunE.
func (a *app) load(*cobra.Command, []string) error {
	var (
		cfg config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadFile(a.cfgFile)
	} else {
		cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := a.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logpkg.NewLogger(a.env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// openReady opens the configured store and waits until it answers.
func (a *app) openReady(cmd *cobra.Command) (db.Store, error) {
	store, err := driver.Open(a.cfg.Search)
	if err != nil {
		return nil, err //nolint:wrapcheck // already names the driver
	}

	s := a.cfg.Search
	if err := db.WaitForReady(cmd.Context(), store, s.ReadinessTimeout(), s.ReadinessInterval()); err != nil {
		store.Close()
		return nil, fmt.Errorf("wait for %s: %w", driver.Name(s), err)
	}
	return store, nil
}
