// Command pmsctl is the operator console for the project management backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/config"
	"github.com/GoSim-25-26J-441/pms-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/pms-backend/internal/logging"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/pms-backend/internal/seed"
)

var (
	storeKind string
	seedFile  string
	version   = "dev"
)

// app holds what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	stores   *bootstrap.Stores
	projects *service.ProjectService
	people   *service.PersonService
}

var current *app

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pmsctl",
	Short: "Operator console for projects and people",
	Long: `pmsctl searches, edits and advances project records.

Examples:
  # Find projects whose name contains "Mall"
  pmsctl project search Mall

  # Stage two edits and commit them together
  pmsctl project edit 12 --set erf=4521 --set address="12 Main Rd"

  # Try the in-memory store with fixtures
  pmsctl --store memory --seed internal/seed/testdata/seed.yaml project current`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if current != nil {
			current.stores.Close()
			_ = current.log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "postgres", "record store: postgres or memory")
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "YAML fixtures to load first (memory store only)")
	rootCmd.AddCommand(migrateCmd, seedCmd, projectCmd, personCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.App.LogLevel, "console")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var stores *bootstrap.Stores
	switch storeKind {
	case "postgres":
		stores, err = bootstrap.OpenPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
	case "memory":
		stores = bootstrap.OpenMemory()
		if seedFile != "" {
			f, err := seed.Load(seedFile)
			if err != nil {
				return err
			}
			if _, err := seed.Apply(ctx, stores.Repo, f, logger); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown --store %q (want postgres or memory)", storeKind)
	}

	current = &app{
		cfg:      cfg,
		log:      logger,
		stores:   stores,
		projects: service.NewProjectService(stores.Repo, logger),
		people:   service.NewPersonService(stores.Repo, logger),
	}
	return nil
}
