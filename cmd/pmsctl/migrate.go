package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/pms-backend/internal/seed"
	"github.com/GoSim-25-26J-441/pms-backend/internal/storage/postgres"
)

var migratePrint bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and lookup rows",
	Long: `Apply the embedded schema to the configured PostgreSQL database.
Every statement is idempotent so migrate can run on each deploy.

Examples:
  pmsctl migrate
  pmsctl migrate --print > schema.sql`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if migratePrint {
			fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
			return nil
		}
		if current.stores.Pool == nil {
			return errors.New("migrate needs --store postgres")
		}
		if err := postgres.Migrate(cmd.Context(), current.stores.Pool); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("schema applied"))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load people and projects from a YAML fixture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.Load(args[0])
		if err != nil {
			return err
		}
		res, err := seed.Apply(cmd.Context(), current.stores.Repo, f, current.log)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("seeded %d people, %d projects", res.People, res.Projects)))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migratePrint, "print", false, "print the schema instead of applying it")
}
