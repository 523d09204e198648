package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storecatalog/internal/db/driver"
	seeduc "github.com/kailas-cloud/storecatalog/internal/usecase/seed"
	"github.com/kailas-cloud/storecatalog/internal/version"
)

func newWaitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "wait",
		Short:   "Block until the search backend is healthy",
		Args:    cobra.NoArgs,
		PreRunE: a.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openReady(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			a.logger.Info("Search backend is ready", zap.String("driver", driver.Name(a.cfg.Search)))
			return nil
		},
	}
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Short:   "Create the catalog collections that do not exist yet",
		Args:    cobra.NoArgs,
		PreRunE: a.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openReady(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			created, err := seeduc.New(store, a.logger).Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.logger.Info("Migration finished", zap.Strings("created", created))
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		dir     string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "Import the NDJSON seed files into the catalog",
		Args:    cobra.NoArgs,
		PreRunE: a.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.cfg.Seed.Dir
			}

			store, err := a.openReady(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := seeduc.New(store, a.logger)
			if migrate {
				if _, err := svc.Migrate(cmd.Context()); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			stats, err := svc.Seed(cmd.Context(), os.DirFS(dir))
			if err != nil {
				return fmt.Errorf("seed %s: %w", dir, err)
			}
			collections := make([]string, 0, len(stats))
			for c := range stats {
				collections = append(collections, c)
			}
			sort.Strings(collections)
			for _, c := range collections {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", c, stats[c])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the seed files (default is seed.dir from config)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "create missing collections before importing")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "catalogctl", version.String())
		},
	}
}
